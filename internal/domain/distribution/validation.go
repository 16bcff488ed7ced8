package distribution

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// lowMarginPct margen por debajo del cual se advierte al operador.
var lowMarginPct = decimal.NewFromInt(10)

// SaleInput datos de una venta antes de procesarla.
type SaleInput struct {
	Quantity          int64
	SaleUnitPrice     decimal.Decimal
	PurchaseUnitPrice decimal.Decimal
	FreightUnitPrice  decimal.Decimal
	AmountPaid        decimal.Decimal
}

// Validation resultado estructurado: errores bloquean, advertencias solo informan.
type Validation struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// ValidateSale revisa cantidades, precios, margen y monto pagado de una venta.
func ValidateSale(in SaleInput) Validation {
	errs := []string{}
	warns := []string{}

	if in.Quantity <= 0 {
		errs = append(errs, "la cantidad debe ser mayor a 0")
	}
	if !in.SaleUnitPrice.IsPositive() {
		errs = append(errs, "el precio de venta debe ser mayor a 0")
	}
	if in.PurchaseUnitPrice.IsNegative() {
		errs = append(errs, "el precio de compra no puede ser negativo")
	}
	if in.PurchaseUnitPrice.IsZero() {
		warns = append(warns, "el precio de compra es $0, ¿es correcto?")
	}
	if in.FreightUnitPrice.IsNegative() {
		errs = append(errs, "el precio de flete no puede ser negativo")
	}

	if len(errs) == 0 {
		unitProfit := in.SaleUnitPrice.Sub(in.PurchaseUnitPrice).Sub(in.FreightUnitPrice)
		margin := unitProfit.Div(in.SaleUnitPrice).Mul(hundred)
		switch {
		case unitProfit.IsNegative():
			errs = append(errs, fmt.Sprintf("margen negativo: el precio de venta ($%s) es menor que costo ($%s) + flete ($%s)",
				in.SaleUnitPrice.String(), in.PurchaseUnitPrice.String(), in.FreightUnitPrice.String()))
		case unitProfit.IsZero():
			warns = append(warns, "margen cero: no hay ganancia en esta venta")
		case margin.LessThan(lowMarginPct):
			warns = append(warns, fmt.Sprintf("margen bajo (%s%%): considera ajustar precios", margin.StringFixed(1)))
		}
	}

	if in.AmountPaid.IsNegative() {
		errs = append(errs, "el monto pagado no puede ser negativo")
	}
	total := in.SaleUnitPrice.Mul(decimal.NewFromInt(in.Quantity))
	if in.AmountPaid.GreaterThan(total) {
		errs = append(errs, fmt.Sprintf("el monto pagado ($%s) excede el total de venta ($%s)",
			in.AmountPaid.String(), total.String()))
	}

	return Validation{Valid: len(errs) == 0, Errors: errs, Warnings: warns}
}
