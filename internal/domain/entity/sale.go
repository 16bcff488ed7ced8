package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentState estado de pago de una venta u orden de compra.
type PaymentState string

const (
	PaymentPending  PaymentState = "pending"
	PaymentPartial  PaymentState = "partial"
	PaymentComplete PaymentState = "complete"
)

// Distribution reparto GYA de una venta. BucketProfit puede ser negativo (pérdida).
type Distribution struct {
	BucketCost    decimal.Decimal
	BucketFreight decimal.Decimal
	BucketProfit  decimal.Decimal
	Total         decimal.Decimal
}

// Amount devuelve el monto de un bucket.
func (d Distribution) Amount(b Bucket) decimal.Decimal {
	switch b {
	case BucketCost:
		return d.BucketCost
	case BucketFreight:
		return d.BucketFreight
	case BucketProfit:
		return d.BucketProfit
	}
	return decimal.Zero
}

// Sale venta a un cliente, opcionalmente ligada a la orden de compra de la que sale el stock.
type Sale struct {
	ID                string
	ClientID          string
	PurchaseOrderID   string
	Quantity          int64
	SaleUnitPrice     decimal.Decimal
	PurchaseUnitPrice decimal.Decimal
	FreightUnitPrice  decimal.Decimal
	Total             decimal.Decimal
	Distribution      Distribution
	AmountPaid        decimal.Decimal
	AmountRemaining   decimal.Decimal
	PaymentState      PaymentState
	Note              string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
