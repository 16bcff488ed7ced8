package ledger

import (
	"context"
	"time"

	"github.com/jhoicas/chronos-ledger/internal/domain"
	"github.com/jhoicas/chronos-ledger/internal/domain/ledger"
	"github.com/jhoicas/chronos-ledger/internal/domain/repository"
)

// RecomputeResult comparación entre los contadores almacenados y los derivados del historial.
type RecomputeResult struct {
	AccountID string        `json:"account_id"`
	Stored    ledger.Totals `json:"stored"`
	Folded    ledger.Totals `json:"folded"`
	Drift     ledger.Delta  `json:"drift"`
	Fixed     bool          `json:"fixed"`
}

// Consistent true si no hay diferencia.
func (r RecomputeResult) Consistent() bool { return r.Drift.IsZero() }

// RecomputeAccount pliega el historial completo de la cuenta y reporta la diferencia con lo almacenado.
// Con fix=true aplica la diferencia como delta relativo bajo bloqueo de fila.
func (s *Service) RecomputeAccount(ctx context.Context, accountID string, fix bool) (*RecomputeResult, error) {
	var res *RecomputeResult
	err := s.txRunner.Run(ctx, func(tx repository.Repos) error {
		locked, err := LockAccounts(ctx, tx, accountID)
		if err != nil {
			return err
		}
		acc := locked[accountID]
		history, err := tx.Movements.ListAllByAccount(ctx, accountID)
		if err != nil {
			return err
		}
		folded := ledger.Recompute(accountID, history)
		drift := ledger.Drift(*acc, folded)
		res = &RecomputeResult{
			AccountID: accountID,
			Stored: ledger.Totals{
				AccountID:    accountID,
				Balance:      acc.Balance,
				TotalIncome:  acc.TotalIncome,
				TotalExpense: acc.TotalExpense,
			},
			Folded: folded,
			Drift:  drift,
		}
		if !fix || drift.IsZero() {
			return nil
		}
		if err := tx.Accounts.ApplyDelta(ctx, accountID, drift); err != nil {
			return err
		}
		res.Fixed = true
		return nil
	})
	if err != nil {
		s.Reject("recompute", err)
		return nil, err
	}
	if !res.Consistent() {
		s.log.Warn().
			Str("account_id", accountID).
			Str("drift_balance", res.Drift.Balance.String()).
			Bool("fixed", res.Fixed).
			Msg("contadores desalineados con el historial")
	}
	return res, nil
}

// Summary resumen de corte de la cuenta en [from, to].
func (s *Service) Summary(ctx context.Context, accountID string, from, to time.Time) (*ledger.Summary, error) {
	if to.Before(from) {
		return nil, &domain.ValidationError{Errors: []string{"el rango de fechas es inválido"}}
	}
	acc, err := s.GetAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	history, err := s.repos.Movements.ListAllByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	sum := ledger.Summarize(*acc, history, from, to)
	return &sum, nil
}
