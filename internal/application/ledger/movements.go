package ledger

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/chronos-ledger/internal/domain"
	"github.com/jhoicas/chronos-ledger/internal/domain/entity"
	"github.com/jhoicas/chronos-ledger/internal/domain/ledger"
	"github.com/jhoicas/chronos-ledger/internal/domain/repository"
)

// ManualInput ingreso o gasto manual sobre una cuenta.
type ManualInput struct {
	AccountID string
	Amount    decimal.Decimal
	Note      string
	UserID    string
}

// RegisterIncome registra un ingreso manual.
func (s *Service) RegisterIncome(ctx context.Context, in ManualInput) (*entity.Movement, error) {
	m, err := s.registerManual(ctx, entity.MovementIncome, in)
	if err != nil {
		s.Reject("income", err)
		return nil, err
	}
	return m, nil
}

// RegisterExpense registra un gasto manual; la cuenta debe tener saldo suficiente.
func (s *Service) RegisterExpense(ctx context.Context, in ManualInput) (*entity.Movement, error) {
	m, err := s.registerManual(ctx, entity.MovementExpense, in)
	if err != nil {
		s.Reject("expense", err)
		return nil, err
	}
	return m, nil
}

func (s *Service) registerManual(ctx context.Context, kind entity.MovementKind, in ManualInput) (*entity.Movement, error) {
	if !in.Amount.IsPositive() {
		return nil, &domain.InvalidAmountError{Field: "amount", Amount: in.Amount, Reason: "el monto debe ser mayor a 0"}
	}
	m := &entity.Movement{
		AccountID: in.AccountID,
		Kind:      kind,
		Amount:    in.Amount,
		Note:      in.Note,
		CreatedBy: in.UserID,
	}
	err := s.txRunner.Run(ctx, func(tx repository.Repos) error {
		locked, err := LockAccounts(ctx, tx, in.AccountID)
		if err != nil {
			return err
		}
		acc := locked[in.AccountID]
		if kind == entity.MovementExpense && acc.Balance.LessThan(in.Amount) {
			return &domain.InsufficientFundsError{AccountID: acc.ID, Available: acc.Balance, Requested: in.Amount}
		}
		return s.PostInTx(ctx, tx, m)
	})
	if err != nil {
		return nil, err
	}
	s.Observe(m)
	return m, nil
}

// DeleteMovement elimina un movimiento aplicando la reversa exacta de su efecto. Si es una pata de
// transferencia, ambas patas se revierten y eliminan en la misma transacción.
// Devuelve los movimientos eliminados.
func (s *Service) DeleteMovement(ctx context.Context, id string) ([]*entity.Movement, error) {
	var removed []*entity.Movement
	err := s.txRunner.Run(ctx, func(tx repository.Repos) error {
		removed = nil
		m, err := tx.Movements.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if m == nil {
			return domain.NewNotFound("movimiento", id)
		}
		legs := []*entity.Movement{m}
		if m.Kind.IsTransfer() && m.TransferGroupID != "" {
			legs, err = tx.Movements.ListByTransferGroup(ctx, m.TransferGroupID)
			if err != nil {
				return err
			}
		}
		ids := make([]string, 0, len(legs))
		for _, l := range legs {
			ids = append(ids, l.AccountID)
		}
		if _, err := LockAccounts(ctx, tx, ids...); err != nil {
			return err
		}
		for _, l := range legs {
			if err := tx.Accounts.ApplyDelta(ctx, l.AccountID, ledger.Inverse(*l)); err != nil {
				return err
			}
			if err := tx.Movements.Delete(ctx, l.ID); err != nil {
				return err
			}
		}
		removed = legs
		return nil
	})
	if err != nil {
		s.Reject("delete_movement", err)
		return nil, err
	}
	for _, l := range removed {
		s.log.Info().
			Str("movement_id", l.ID).
			Str("account_id", l.AccountID).
			Str("kind", string(l.Kind)).
			Str("amount", l.Amount.String()).
			Msg("movimiento eliminado")
	}
	return removed, nil
}
