// Package transfer mueve fondos entre dos cuentas de forma atómica con dos movimientos enlazados.
package transfer

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	ledgerapp "github.com/jhoicas/chronos-ledger/internal/application/ledger"
	"github.com/jhoicas/chronos-ledger/internal/application/ports"
	"github.com/jhoicas/chronos-ledger/internal/domain"
	"github.com/jhoicas/chronos-ledger/internal/domain/entity"
	"github.com/jhoicas/chronos-ledger/internal/domain/repository"
)

// Service transferencias entre cuentas.
type Service struct {
	txRunner ports.TxRunner
	ledger   *ledgerapp.Service
}

// NewService construye el servicio sobre el ledger (único mutador de cuentas).
func NewService(txRunner ports.TxRunner, ledger *ledgerapp.Service) *Service {
	return &Service{txRunner: txRunner, ledger: ledger}
}

// Input datos de una transferencia.
type Input struct {
	OriginAccountID      string
	DestinationAccountID string
	Amount               decimal.Decimal
	Note                 string
	UserID               string
}

// Result las dos patas registradas y los saldos resultantes.
type Result struct {
	TransferGroupID    string           `json:"transfer_group_id"`
	Out                *entity.Movement `json:"out"`
	In                 *entity.Movement `json:"in"`
	OriginBalance      decimal.Decimal  `json:"origin_balance"`
	DestinationBalance decimal.Decimal  `json:"destination_balance"`
}

// Transfer valida en orden: monto > 0, origen ≠ destino, ambas cuentas existen, saldo suficiente.
// Ambas cuentas se bloquean en orden ascendente de id y se registran transfer_out y transfer_in
// con el mismo grupo. La suma de saldos de las dos cuentas no cambia.
func (s *Service) Transfer(ctx context.Context, in Input) (*Result, error) {
	res, err := s.transfer(ctx, in)
	if err != nil {
		s.ledger.Reject("transfer", err)
		return nil, err
	}
	s.ledger.Observe(res.Out, res.In)
	return res, nil
}

func (s *Service) transfer(ctx context.Context, in Input) (*Result, error) {
	if !in.Amount.IsPositive() {
		return nil, &domain.InvalidAmountError{Field: "amount", Amount: in.Amount, Reason: "el monto debe ser mayor a 0"}
	}
	if in.OriginAccountID == in.DestinationAccountID {
		return nil, &domain.SameAccountError{AccountID: in.OriginAccountID}
	}

	groupID := uuid.New().String()
	note := in.Note
	if note == "" {
		note = fmt.Sprintf("transferencia %s → %s", in.OriginAccountID, in.DestinationAccountID)
	}
	res := &Result{TransferGroupID: groupID}

	err := s.txRunner.Run(ctx, func(tx repository.Repos) error {
		locked, err := ledgerapp.LockAccounts(ctx, tx, in.OriginAccountID, in.DestinationAccountID)
		if err != nil {
			return err
		}
		origin := locked[in.OriginAccountID]
		dest := locked[in.DestinationAccountID]
		if origin.Balance.LessThan(in.Amount) {
			return &domain.InsufficientFundsError{AccountID: origin.ID, Available: origin.Balance, Requested: in.Amount}
		}

		now := s.ledger.Now()
		out := &entity.Movement{
			AccountID:             origin.ID,
			Kind:                  entity.MovementTransferOut,
			Amount:                in.Amount,
			Timestamp:             now,
			Note:                  note,
			CounterpartyAccountID: dest.ID,
			TransferGroupID:       groupID,
			CreatedBy:             in.UserID,
		}
		inMov := &entity.Movement{
			AccountID:             dest.ID,
			Kind:                  entity.MovementTransferIn,
			Amount:                in.Amount,
			Timestamp:             now,
			Note:                  note,
			CounterpartyAccountID: origin.ID,
			TransferGroupID:       groupID,
			CreatedBy:             in.UserID,
		}
		if err := s.ledger.PostInTx(ctx, tx, out); err != nil {
			return err
		}
		if err := s.ledger.PostInTx(ctx, tx, inMov); err != nil {
			return err
		}
		res.Out, res.In = out, inMov
		res.OriginBalance = origin.Balance.Sub(in.Amount)
		res.DestinationBalance = dest.Balance.Add(in.Amount)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}
