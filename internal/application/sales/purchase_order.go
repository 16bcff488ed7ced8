package sales

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	ledgerapp "github.com/jhoicas/chronos-ledger/internal/application/ledger"
	"github.com/jhoicas/chronos-ledger/internal/domain"
	"github.com/jhoicas/chronos-ledger/internal/domain/distribution"
	"github.com/jhoicas/chronos-ledger/internal/domain/entity"
	"github.com/jhoicas/chronos-ledger/internal/domain/payment"
	"github.com/jhoicas/chronos-ledger/internal/domain/repository"
	"github.com/jhoicas/chronos-ledger/internal/domain/stock"
)

// CreatePurchaseOrderInput orden de compra a un distribuidor. Con InitialPayment > 0 se registra
// un pago desde SourceAccountID.
type CreatePurchaseOrderInput struct {
	DistributorID   string
	Quantity        int64
	UnitCost        decimal.Decimal
	UnitFreight     *decimal.Decimal
	InitialPayment  decimal.Decimal
	SourceAccountID string
	Note            string
	UserID          string
}

// OrderResult orden creada o actualizada con el movimiento de pago, si lo hubo.
type OrderResult struct {
	Order              *entity.PurchaseOrder
	Payment            *entity.Movement
	DistributorPending decimal.Decimal
}

// CreatePurchaseOrder registra la orden con su deuda (costo + flete) × cantidad y el stock completo.
func (s *Service) CreatePurchaseOrder(ctx context.Context, in CreatePurchaseOrderInput) (*OrderResult, error) {
	res, err := s.createPurchaseOrder(ctx, in)
	if err != nil {
		s.ledger.Reject("create_purchase_order", err)
		return nil, err
	}
	if res.Payment != nil {
		s.ledger.Observe(res.Payment)
	}
	return res, nil
}

func (s *Service) createPurchaseOrder(ctx context.Context, in CreatePurchaseOrderInput) (*OrderResult, error) {
	freight := distribution.FreightDefault
	if in.UnitFreight != nil {
		freight = *in.UnitFreight
	}
	var errs []string
	if in.Quantity <= 0 {
		errs = append(errs, stock.MsgQuantityRequired)
	}
	if in.UnitCost.IsNegative() {
		errs = append(errs, "el costo unitario no puede ser negativo")
	}
	if freight.IsNegative() {
		errs = append(errs, "el flete unitario no puede ser negativo")
	}
	if in.InitialPayment.IsNegative() {
		errs = append(errs, "el pago inicial no puede ser negativo")
	}
	if in.InitialPayment.IsPositive() && in.SourceAccountID == "" {
		errs = append(errs, "el pago inicial requiere una cuenta origen")
	}
	if len(errs) > 0 {
		return nil, &domain.ValidationError{Errors: errs}
	}

	owed := in.UnitCost.Add(freight).Mul(decimal.NewFromInt(in.Quantity))
	if in.InitialPayment.GreaterThan(owed) {
		return nil, &domain.InvalidAmountError{
			Field:  "initial_payment",
			Amount: in.InitialPayment,
			Reason: fmt.Sprintf("excede el total de la orden ($%s)", owed.StringFixed(2)),
		}
	}

	res := &OrderResult{}
	err := s.txRunner.Run(ctx, func(tx repository.Repos) error {
		dist, err := tx.Parties.GetDistributor(ctx, in.DistributorID)
		if err != nil {
			return err
		}
		if dist == nil {
			return domain.NewNotFound("distribuidor", in.DistributorID)
		}
		now := s.ledger.Now()
		order := &entity.PurchaseOrder{
			ID:              uuid.New().String(),
			DistributorID:   dist.ID,
			QuantityOrdered: in.Quantity,
			UnitCost:        in.UnitCost,
			UnitFreight:     freight,
			AmountOwed:      owed,
			AmountPaid:      decimal.Zero,
			StockRemaining:  in.Quantity,
			State:           entity.PaymentPending,
			Note:            in.Note,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if err := tx.Orders.Create(ctx, order); err != nil {
			return err
		}
		if in.InitialPayment.IsPositive() {
			m, err := s.payInTx(ctx, tx, order, in.InitialPayment, in.SourceAccountID, "pago inicial orden "+order.ID, in.UserID)
			if err != nil {
				return err
			}
			res.Payment = m
		}
		pending, err := refreshDistributorBalance(ctx, tx, dist.ID)
		if err != nil {
			return err
		}
		res.Order = order
		res.DistributorPending = pending
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// PayDistributorInput pago de una orden de compra desde una cuenta.
type PayDistributorInput struct {
	PurchaseOrderID string
	Amount          decimal.Decimal
	SourceAccountID string
	Note            string
	UserID          string
}

// PayDistributor registra un pago (egreso) desde la cuenta origen, con verificación de fondos,
// actualiza el estado de la orden y recalcula el saldo del distribuidor.
func (s *Service) PayDistributor(ctx context.Context, in PayDistributorInput) (*OrderResult, error) {
	res, err := s.payDistributor(ctx, in)
	if err != nil {
		s.ledger.Reject("pay_distributor", err)
		return nil, err
	}
	s.ledger.Observe(res.Payment)
	return res, nil
}

func (s *Service) payDistributor(ctx context.Context, in PayDistributorInput) (*OrderResult, error) {
	if !in.Amount.IsPositive() {
		return nil, &domain.InvalidAmountError{Field: "amount", Amount: in.Amount, Reason: "el pago debe ser mayor a 0"}
	}
	res := &OrderResult{}
	err := s.txRunner.Run(ctx, func(tx repository.Repos) error {
		order, err := tx.Orders.GetForUpdate(ctx, in.PurchaseOrderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.NewNotFound("orden de compra", in.PurchaseOrderID)
		}
		if order.State == entity.PaymentComplete {
			return fmt.Errorf("orden %s ya está pagada: %w", order.ID, domain.ErrConflict)
		}
		if remaining := order.AmountRemaining(); in.Amount.GreaterThan(remaining) {
			return &domain.InvalidAmountError{
				Field:  "amount",
				Amount: in.Amount,
				Reason: fmt.Sprintf("excede el saldo pendiente ($%s)", remaining.StringFixed(2)),
			}
		}
		note := in.Note
		if note == "" {
			note = "pago orden " + order.ID
		}
		m, err := s.payInTx(ctx, tx, order, in.Amount, in.SourceAccountID, note, in.UserID)
		if err != nil {
			return err
		}
		pending, err := refreshDistributorBalance(ctx, tx, order.DistributorID)
		if err != nil {
			return err
		}
		res.Order = order
		res.Payment = m
		res.DistributorPending = pending
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// payInTx bloquea la cuenta origen, verifica fondos, registra el pago y actualiza la orden.
func (s *Service) payInTx(ctx context.Context, tx repository.Repos, order *entity.PurchaseOrder, amount decimal.Decimal, accountID, note, userID string) (*entity.Movement, error) {
	locked, err := ledgerapp.LockAccounts(ctx, tx, accountID)
	if err != nil {
		return nil, err
	}
	acc := locked[accountID]
	if acc.Balance.LessThan(amount) {
		return nil, &domain.InsufficientFundsError{AccountID: acc.ID, Available: acc.Balance, Requested: amount}
	}
	now := s.ledger.Now()
	m := &entity.Movement{
		AccountID:       acc.ID,
		Kind:            entity.MovementPayment,
		Amount:          amount,
		Timestamp:       now,
		Note:            note,
		PurchaseOrderID: order.ID,
		CreatedBy:       userID,
	}
	if err := s.ledger.PostInTx(ctx, tx, m); err != nil {
		return nil, err
	}
	order.AmountPaid = order.AmountPaid.Add(amount)
	order.State = payment.Classify(order.AmountOwed, order.AmountPaid)
	order.UpdatedAt = now
	if err := tx.Orders.Update(ctx, order); err != nil {
		return nil, err
	}
	return m, nil
}

// GetPurchaseOrder orden con su stock disponible recalculado desde las ventas.
func (s *Service) GetPurchaseOrder(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	order, err := s.repos.Orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.NewNotFound("orden de compra", id)
	}
	linked, err := s.repos.Sales.ListByPurchaseOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	order.StockRemaining = stock.ComputeRemaining(*order, linked)
	return order, nil
}

// ListPurchaseOrders órdenes más recientes primero.
func (s *Service) ListPurchaseOrders(ctx context.Context, limit, offset int) ([]*entity.PurchaseOrder, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.repos.Orders.List(ctx, limit, offset)
}
