package sales

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/chronos-ledger/internal/domain"
	"github.com/jhoicas/chronos-ledger/internal/domain/distribution"
	"github.com/jhoicas/chronos-ledger/internal/domain/entity"
	"github.com/jhoicas/chronos-ledger/internal/domain/payment"
	"github.com/jhoicas/chronos-ledger/internal/domain/repository"
	"github.com/jhoicas/chronos-ledger/internal/domain/stock"
)

// CreateSaleInput datos de una venta. Precios nil: compra y flete se toman de la orden de compra
// si la hay; sin orden, el flete usa distribution.FreightDefault y el precio de compra es obligatorio.
type CreateSaleInput struct {
	ClientID          string
	PurchaseOrderID   string
	Quantity          int64
	SaleUnitPrice     decimal.Decimal
	PurchaseUnitPrice *decimal.Decimal
	FreightUnitPrice  *decimal.Decimal
	AmountPaid        decimal.Decimal
	Note              string
	UserID            string
}

// SaleResult venta creada o actualizada con los movimientos que generó.
type SaleResult struct {
	Sale       *entity.Sale
	Movements  []*entity.Movement
	Warnings   []string
	ClientDebt decimal.Decimal
}

// Preview calcula distribución, márgenes y validación sin persistir nada.
type Preview struct {
	Distribution entity.Distribution
	Realized     distribution.Proportional
	Margins      distribution.Margins
	Validation   distribution.Validation
}

// PreviewSale simula una venta (sin orden de compra) con los precios dados.
func (s *Service) PreviewSale(in CreateSaleInput) Preview {
	purchase, freight := resolvePrices(in, nil)
	d := distribution.Compute(in.SaleUnitPrice, purchase, freight, in.Quantity)
	return Preview{
		Distribution: d,
		Realized:     distribution.ComputeProportional(d, in.AmountPaid, d.Total),
		Margins:      distribution.ComputeMargins(d),
		Validation: distribution.ValidateSale(distribution.SaleInput{
			Quantity:          in.Quantity,
			SaleUnitPrice:     in.SaleUnitPrice,
			PurchaseUnitPrice: purchase,
			FreightUnitPrice:  freight,
			AmountPaid:        in.AmountPaid,
		}),
	}
}

func resolvePrices(in CreateSaleInput, order *entity.PurchaseOrder) (purchase, freight decimal.Decimal) {
	purchase = decimal.Zero
	freight = distribution.FreightDefault
	if order != nil {
		purchase = order.UnitCost
		freight = order.UnitFreight
	}
	if in.PurchaseUnitPrice != nil {
		purchase = *in.PurchaseUnitPrice
	}
	if in.FreightUnitPrice != nil {
		freight = *in.FreightUnitPrice
	}
	return purchase, freight
}

// CreateSale valida la venta, calcula la distribución GYA, consume stock de la orden de compra
// (bloqueada durante la operación), registra la parte realizada por el pago inicial en las cuentas
// de los buckets y recalcula la deuda del cliente. Todo en una transacción.
func (s *Service) CreateSale(ctx context.Context, in CreateSaleInput) (*SaleResult, error) {
	res, err := s.createSale(ctx, in)
	if err != nil {
		s.ledger.Reject("create_sale", err)
		return nil, err
	}
	s.ledger.Observe(res.Movements...)
	return res, nil
}

func (s *Service) createSale(ctx context.Context, in CreateSaleInput) (*SaleResult, error) {
	if in.PurchaseOrderID == "" && in.PurchaseUnitPrice == nil {
		return nil, &domain.ValidationError{Errors: []string{"el precio de compra es obligatorio para ventas sin orden de compra"}}
	}
	res := &SaleResult{}
	err := s.txRunner.Run(ctx, func(tx repository.Repos) error {
		client, err := tx.Parties.GetClient(ctx, in.ClientID)
		if err != nil {
			return err
		}
		if client == nil {
			return domain.NewNotFound("cliente", in.ClientID)
		}

		var order *entity.PurchaseOrder
		var linked []entity.Sale
		if in.PurchaseOrderID != "" {
			order, err = tx.Orders.GetForUpdate(ctx, in.PurchaseOrderID)
			if err != nil {
				return err
			}
			if order == nil {
				return domain.NewNotFound("orden de compra", in.PurchaseOrderID)
			}
			linked, err = tx.Sales.ListByPurchaseOrder(ctx, order.ID)
			if err != nil {
				return err
			}
		}

		purchase, freight := resolvePrices(in, order)
		v := distribution.ValidateSale(distribution.SaleInput{
			Quantity:          in.Quantity,
			SaleUnitPrice:     in.SaleUnitPrice,
			PurchaseUnitPrice: purchase,
			FreightUnitPrice:  freight,
			AmountPaid:        in.AmountPaid,
		})
		if !v.Valid {
			return &domain.ValidationError{Errors: v.Errors}
		}
		res.Warnings = v.Warnings

		if order != nil {
			available := stock.ComputeRemaining(*order, linked)
			if r := stock.Validate(available, in.Quantity); !r.Valid {
				return &domain.StockInsufficientError{PurchaseOrderID: order.ID, Available: available, Requested: in.Quantity}
			}
		}

		now := s.ledger.Now()
		d := distribution.Compute(in.SaleUnitPrice, purchase, freight, in.Quantity)
		sale := &entity.Sale{
			ID:                uuid.New().String(),
			ClientID:          client.ID,
			PurchaseOrderID:   in.PurchaseOrderID,
			Quantity:          in.Quantity,
			SaleUnitPrice:     in.SaleUnitPrice,
			PurchaseUnitPrice: purchase,
			FreightUnitPrice:  freight,
			Total:             d.Total,
			Distribution:      d,
			AmountPaid:        decimal.Zero,
			AmountRemaining:   d.Total,
			PaymentState:      entity.PaymentPending,
			Note:              in.Note,
			CreatedAt:         now,
			UpdatedAt:         now,
		}
		adv, err := payment.ApplyAdvance(*sale, in.AmountPaid, s.buckets)
		if err != nil {
			return err
		}
		sale.AmountPaid = adv.AmountPaid
		sale.AmountRemaining = adv.AmountRemaining
		sale.PaymentState = adv.State
		if err := tx.Sales.Create(ctx, sale); err != nil {
			return err
		}

		if order != nil {
			order.StockRemaining = stock.ComputeRemaining(*order, append(linked, *sale))
			order.UpdatedAt = now
			if err := tx.Orders.Update(ctx, order); err != nil {
				return err
			}
		}

		note := fmt.Sprintf("pago inicial venta %s", sale.ID)
		posted, err := s.postAdvance(ctx, tx, sale, adv.Movements, note, in.UserID, now)
		if err != nil {
			return err
		}
		debt, err := refreshClientDebt(ctx, tx, client.ID)
		if err != nil {
			return err
		}
		res.Sale = sale
		res.Movements = posted
		res.ClientDebt = debt
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// AdvanceInput abono de un cliente a una venta.
type AdvanceInput struct {
	SaleID string
	Amount decimal.Decimal
	Note   string
	UserID string
}

// RegisterAdvance aplica un abono: rechaza ventas ya completas y montos mayores al saldo pendiente,
// reparte el abono entre los buckets y recalcula la deuda del cliente.
func (s *Service) RegisterAdvance(ctx context.Context, in AdvanceInput) (*SaleResult, error) {
	res, err := s.registerAdvance(ctx, in)
	if err != nil {
		s.ledger.Reject("advance", err)
		return nil, err
	}
	s.ledger.Observe(res.Movements...)
	return res, nil
}

func (s *Service) registerAdvance(ctx context.Context, in AdvanceInput) (*SaleResult, error) {
	if !in.Amount.IsPositive() {
		return nil, &domain.InvalidAmountError{Field: "amount", Amount: in.Amount, Reason: "el abono debe ser mayor a 0"}
	}
	res := &SaleResult{}
	err := s.txRunner.Run(ctx, func(tx repository.Repos) error {
		sale, err := tx.Sales.GetForUpdate(ctx, in.SaleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.NewNotFound("venta", in.SaleID)
		}
		if sale.PaymentState == entity.PaymentComplete {
			return fmt.Errorf("venta %s ya está pagada: %w", sale.ID, domain.ErrConflict)
		}
		if in.Amount.GreaterThan(sale.AmountRemaining) {
			return &domain.InvalidAmountError{
				Field:  "amount",
				Amount: in.Amount,
				Reason: fmt.Sprintf("excede el saldo pendiente ($%s)", sale.AmountRemaining.StringFixed(2)),
			}
		}

		adv, err := payment.ApplyAdvance(*sale, in.Amount, s.buckets)
		if err != nil {
			return err
		}
		now := s.ledger.Now()
		sale.AmountPaid = adv.AmountPaid
		sale.AmountRemaining = adv.AmountRemaining
		sale.PaymentState = adv.State
		sale.UpdatedAt = now
		if err := tx.Sales.UpdatePayment(ctx, sale); err != nil {
			return err
		}

		note := in.Note
		if note == "" {
			note = fmt.Sprintf("abono venta %s", sale.ID)
		}
		posted, err := s.postAdvance(ctx, tx, sale, adv.Movements, note, in.UserID, now)
		if err != nil {
			return err
		}
		debt, err := refreshClientDebt(ctx, tx, sale.ClientID)
		if err != nil {
			return err
		}
		res.Sale = sale
		res.Movements = posted
		res.ClientDebt = debt
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// GetSale venta o NotFoundError.
func (s *Service) GetSale(ctx context.Context, id string) (*entity.Sale, error) {
	sale, err := s.repos.Sales.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.NewNotFound("venta", id)
	}
	return sale, nil
}

// ListSales ventas más recientes primero.
func (s *Service) ListSales(ctx context.Context, limit, offset int) ([]*entity.Sale, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.repos.Sales.List(ctx, limit, offset)
}
