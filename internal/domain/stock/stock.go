// Package stock calcula el inventario disponible de una orden de compra a partir de las
// ventas que la consumen.
package stock

import (
	"github.com/jhoicas/chronos-ledger/internal/domain/entity"
)

// Mensajes de validación.
const (
	MsgQuantityRequired = "la cantidad debe ser mayor a 0"
	MsgInsufficient     = "stock insuficiente"
)

// ComputeRemaining = max(0, cantidad ordenada − Σ cantidades de las ventas que referencian la orden).
// Ventas de otras órdenes se ignoran.
func ComputeRemaining(order entity.PurchaseOrder, sales []entity.Sale) int64 {
	var sold int64
	for _, s := range sales {
		if s.PurchaseOrderID == order.ID {
			sold += s.Quantity
		}
	}
	remaining := order.QuantityOrdered - sold
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Result resultado de validar una cantidad contra el stock disponible.
type Result struct {
	Valid   bool
	Message string
}

// Validate rechaza cantidades no positivas y cantidades mayores a lo disponible.
func Validate(available, requested int64) Result {
	if requested <= 0 {
		return Result{Valid: false, Message: MsgQuantityRequired}
	}
	if requested > available {
		return Result{Valid: false, Message: MsgInsufficient}
	}
	return Result{Valid: true}
}
