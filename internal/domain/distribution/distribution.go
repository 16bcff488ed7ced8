// Package distribution implementa la fórmula GYA: reparto del ingreso de una venta
// entre Bóveda Monte (costo), Fletes y Utilidades. Funciones puras, sin I/O.
package distribution

import (
	"github.com/shopspring/decimal"
	"github.com/jhoicas/chronos-ledger/internal/domain/entity"
)

// FreightDefault flete por unidad cuando la venta no lo especifica.
var FreightDefault = decimal.NewFromInt(500)

var hundred = decimal.NewFromInt(100)

// Compute calcula la distribución GYA:
//
//	Total         = precioVenta × cantidad
//	BucketCost    = precioCompra × cantidad
//	BucketFreight = precioFlete × cantidad
//	BucketProfit  = Total - BucketCost - BucketFreight (puede ser negativo)
//
// La suma de los tres buckets es exactamente Total; cantidad 0 devuelve todo en cero.
func Compute(saleUnitPrice, purchaseUnitPrice, freightUnitPrice decimal.Decimal, quantity int64) entity.Distribution {
	q := decimal.NewFromInt(quantity)
	total := saleUnitPrice.Mul(q)
	cost := purchaseUnitPrice.Mul(q)
	freight := freightUnitPrice.Mul(q)
	return entity.Distribution{
		BucketCost:    cost,
		BucketFreight: freight,
		BucketProfit:  total.Sub(cost).Sub(freight),
		Total:         total,
	}
}

// Proportional capital realizado de una distribución para un monto pagado.
type Proportional struct {
	CapitalCost    decimal.Decimal
	CapitalFreight decimal.Decimal
	CapitalProfit  decimal.Decimal
	Proportion     decimal.Decimal
}

// Sum capital total realizado.
func (p Proportional) Sum() decimal.Decimal {
	return p.CapitalCost.Add(p.CapitalFreight).Add(p.CapitalProfit)
}

// ComputeProportional proyecta la distribución sobre lo pagado: proportion = amountPaid / total
// (0 si total = 0). No recorta amountPaid > total; eso es disciplina del llamador.
func ComputeProportional(d entity.Distribution, amountPaid, total decimal.Decimal) Proportional {
	if total.IsZero() {
		return Proportional{
			CapitalCost:    decimal.Zero,
			CapitalFreight: decimal.Zero,
			CapitalProfit:  decimal.Zero,
			Proportion:     decimal.Zero,
		}
	}
	p := amountPaid.Div(total)
	return Proportional{
		CapitalCost:    d.BucketCost.Mul(p),
		CapitalFreight: d.BucketFreight.Mul(p),
		CapitalProfit:  d.BucketProfit.Mul(p),
		Proportion:     p,
	}
}

// Scale multiplica cada bucket (y el total) por un factor.
func Scale(d entity.Distribution, factor decimal.Decimal) entity.Distribution {
	return entity.Distribution{
		BucketCost:    d.BucketCost.Mul(factor),
		BucketFreight: d.BucketFreight.Mul(factor),
		BucketProfit:  d.BucketProfit.Mul(factor),
		Total:         d.Total.Mul(factor),
	}
}

// Margins márgenes porcentuales de una distribución.
type Margins struct {
	Net   decimal.Decimal // utilidades / total × 100
	Gross decimal.Decimal // utilidades / (costo + flete) × 100
}

// ComputeMargins calcula los márgenes neto y bruto redondeados a 2 decimales.
func ComputeMargins(d entity.Distribution) Margins {
	m := Margins{Net: decimal.Zero, Gross: decimal.Zero}
	if d.Total.IsPositive() {
		m.Net = d.BucketProfit.Div(d.Total).Mul(hundred).Round(2)
	}
	costs := d.BucketCost.Add(d.BucketFreight)
	if costs.IsPositive() {
		m.Gross = d.BucketProfit.Div(costs).Mul(hundred).Round(2)
	}
	return m
}
