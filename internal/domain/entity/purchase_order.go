package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseOrder orden de compra a un distribuidor; fuente de stock para las ventas.
type PurchaseOrder struct {
	ID              string
	DistributorID   string
	QuantityOrdered int64
	UnitCost        decimal.Decimal
	UnitFreight     decimal.Decimal
	AmountOwed      decimal.Decimal // (UnitCost + UnitFreight) × QuantityOrdered
	AmountPaid      decimal.Decimal
	StockRemaining  int64
	State           PaymentState
	Note            string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// AmountRemaining deuda pendiente con el distribuidor (nunca negativa).
func (o *PurchaseOrder) AmountRemaining() decimal.Decimal {
	r := o.AmountOwed.Sub(o.AmountPaid)
	if r.IsNegative() {
		return decimal.Zero
	}
	return r
}
