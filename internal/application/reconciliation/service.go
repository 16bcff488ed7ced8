// Package reconciliation implementa el corte de caja: ajusta el saldo de una cuenta al conteo físico.
package reconciliation

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	ledgerapp "github.com/jhoicas/chronos-ledger/internal/application/ledger"
	"github.com/jhoicas/chronos-ledger/internal/application/ports"
	"github.com/jhoicas/chronos-ledger/internal/domain"
	"github.com/jhoicas/chronos-ledger/internal/domain/entity"
	"github.com/jhoicas/chronos-ledger/internal/domain/repository"
)

// Epsilon diferencias menores se consideran cuadre exacto.
var Epsilon = decimal.RequireFromString("0.01")

// Service cortes de caja.
type Service struct {
	txRunner ports.TxRunner
	ledger   *ledgerapp.Service
	metrics  ports.Metrics
}

// NewService construye el servicio. metrics puede ser nil.
func NewService(txRunner ports.TxRunner, ledger *ledgerapp.Service, metrics ports.Metrics) *Service {
	return &Service{txRunner: txRunner, ledger: ledger, metrics: ports.MetricsOrNop(metrics)}
}

// Input conteo físico de una cuenta.
type Input struct {
	AccountID     string
	PhysicalCount decimal.Decimal
	Note          string
	UserID        string
}

// Result resultado del corte.
type Result struct {
	AccountID       string           `json:"account_id"`
	PreviousBalance decimal.Decimal  `json:"previous_balance"`
	PhysicalCount   decimal.Decimal  `json:"physical_count"`
	Difference      decimal.Decimal  `json:"difference"`
	Balance         decimal.Decimal  `json:"balance"`
	Adjustment      *entity.Movement `json:"adjustment,omitempty"`
}

// Reconcile compara el conteo físico con el saldo. Si |diferencia| < 0.01 no registra nada y la
// diferencia se reporta como 0; si no, registra un ingreso (sobrante) o gasto (faltante) por
// |diferencia| y el saldo queda igual al conteo físico.
func (s *Service) Reconcile(ctx context.Context, in Input) (*Result, error) {
	res, err := s.reconcile(ctx, in)
	if err != nil {
		s.ledger.Reject("reconcile", err)
		return nil, err
	}
	if res.Adjustment != nil {
		s.ledger.Observe(res.Adjustment)
		s.metrics.ReconciliationDifference(res.AccountID, res.Difference)
	}
	return res, nil
}

func (s *Service) reconcile(ctx context.Context, in Input) (*Result, error) {
	if in.PhysicalCount.IsNegative() {
		return nil, &domain.InvalidAmountError{Field: "physical_count", Amount: in.PhysicalCount, Reason: "el conteo físico no puede ser negativo"}
	}
	var res *Result
	err := s.txRunner.Run(ctx, func(tx repository.Repos) error {
		locked, err := ledgerapp.LockAccounts(ctx, tx, in.AccountID)
		if err != nil {
			return err
		}
		acc := locked[in.AccountID]
		diff := in.PhysicalCount.Sub(acc.Balance)
		res = &Result{
			AccountID:       acc.ID,
			PreviousBalance: acc.Balance,
			PhysicalCount:   in.PhysicalCount,
			Difference:      decimal.Zero,
			Balance:         acc.Balance,
		}
		if diff.Abs().LessThan(Epsilon) {
			return nil
		}

		kind := entity.MovementIncome
		note := fmt.Sprintf("corte de caja: sobrante de $%s", diff.StringFixed(2))
		if diff.IsNegative() {
			kind = entity.MovementExpense
			note = fmt.Sprintf("corte de caja: faltante de $%s", diff.Abs().StringFixed(2))
		}
		if in.Note != "" {
			note = note + " (" + in.Note + ")"
		}
		m := &entity.Movement{
			AccountID: acc.ID,
			Kind:      kind,
			Amount:    diff.Abs(),
			Note:      note,
			CreatedBy: in.UserID,
		}
		if err := s.ledger.PostInTx(ctx, tx, m); err != nil {
			return err
		}
		res.Difference = diff
		res.Balance = in.PhysicalCount
		res.Adjustment = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}
