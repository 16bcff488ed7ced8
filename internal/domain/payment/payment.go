// Package payment contiene la máquina de estados de pago de ventas y órdenes de compra.
// Las transiciones solo avanzan: pending → partial → complete.
package payment

import (
	"github.com/shopspring/decimal"
	"github.com/jhoicas/chronos-ledger/internal/domain"
	"github.com/jhoicas/chronos-ledger/internal/domain/entity"
)

// Classify estado de pago según lo pagado frente al total.
func Classify(total, amountPaid decimal.Decimal) entity.PaymentState {
	switch {
	case !amountPaid.IsPositive():
		return entity.PaymentPending
	case amountPaid.GreaterThanOrEqual(total):
		return entity.PaymentComplete
	default:
		return entity.PaymentPartial
	}
}

// Remaining saldo pendiente, nunca negativo.
func Remaining(total, amountPaid decimal.Decimal) decimal.Decimal {
	r := total.Sub(amountPaid)
	if r.IsNegative() {
		return decimal.Zero
	}
	return r
}

// PendingMovement movimiento calculado pero aún no registrado en el ledger.
type PendingMovement struct {
	AccountID string
	Bucket    entity.Bucket
	Kind      entity.MovementKind
	Amount    decimal.Decimal // con signo: el bucket de utilidades puede ser negativo
}

// Advance resultado de aplicar un abono a una venta.
type Advance struct {
	AmountPaid      decimal.Decimal
	AmountRemaining decimal.Decimal
	State           entity.PaymentState
	Incremental     entity.Distribution
	Movements       []PendingMovement
}

// ApplyAdvance aplica un abono: acumula lo pagado, reclasifica el estado y reparte el abono
// entre los tres buckets en proporción a la distribución completa de la venta (advance/total).
// Abono 0 no produce movimientos; abono negativo es InvalidAmountError.
func ApplyAdvance(sale entity.Sale, advance decimal.Decimal, accounts entity.BucketAccounts) (Advance, error) {
	if advance.IsNegative() {
		return Advance{}, &domain.InvalidAmountError{Field: "advance", Amount: advance, Reason: "el abono no puede ser negativo"}
	}
	paid := sale.AmountPaid.Add(advance)
	out := Advance{
		AmountPaid:      paid,
		AmountRemaining: Remaining(sale.Total, paid),
		State:           Classify(sale.Total, paid),
		Incremental: entity.Distribution{
			BucketCost:    decimal.Zero,
			BucketFreight: decimal.Zero,
			BucketProfit:  decimal.Zero,
			Total:         decimal.Zero,
		},
	}
	if advance.IsZero() || sale.Total.IsZero() {
		return out, nil
	}

	ratio := advance.Div(sale.Total)
	out.Incremental = entity.Distribution{
		BucketCost:    sale.Distribution.BucketCost.Mul(ratio),
		BucketFreight: sale.Distribution.BucketFreight.Mul(ratio),
		BucketProfit:  sale.Distribution.BucketProfit.Mul(ratio),
		Total:         advance,
	}
	out.Movements = make([]PendingMovement, 0, len(entity.Buckets))
	for _, b := range entity.Buckets {
		out.Movements = append(out.Movements, PendingMovement{
			AccountID: accounts.For(b),
			Bucket:    b,
			Kind:      entity.MovementAdvance,
			Amount:    out.Incremental.Amount(b),
		})
	}
	return out, nil
}
