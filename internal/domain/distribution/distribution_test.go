package distribution_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/jhoicas/chronos-ledger/internal/domain/distribution"
	"github.com/jhoicas/chronos-ledger/internal/domain/entity"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func assertDec(t *testing.T, want string, got decimal.Decimal, msg ...interface{}) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), "esperado %s, obtenido %s %v", want, got.String(), msg)
}

// ──────────────────────────────────────────────────────────────────────────────
// Compute
// ──────────────────────────────────────────────────────────────────────────────

func TestCompute_VentaEstandar(t *testing.T) {
	d := distribution.Compute(dec("10000"), dec("6300"), dec("500"), 10)

	assertDec(t, "100000", d.Total)
	assertDec(t, "63000", d.BucketCost)
	assertDec(t, "5000", d.BucketFreight)
	assertDec(t, "32000", d.BucketProfit)
}

func TestCompute_SumaIgualATotal(t *testing.T) {
	cases := []struct {
		sale, purchase, freight string
		qty                     int64
	}{
		{"10000", "6300", "500", 10},
		{"1", "3", "2", 7},
		{"0.33", "0.11", "0.07", 3},
		{"999999.99", "0", "0", 1},
		{"5", "5", "0", 1000},
	}
	for _, c := range cases {
		d := distribution.Compute(dec(c.sale), dec(c.purchase), dec(c.freight), c.qty)
		sum := d.BucketCost.Add(d.BucketFreight).Add(d.BucketProfit)
		assert.True(t, sum.Equal(d.Total), "suma de buckets debe ser el total: %+v", c)
	}
}

func TestCompute_UtilidadNegativa(t *testing.T) {
	d := distribution.Compute(dec("100"), dec("90"), dec("20"), 2)
	assertDec(t, "-20", d.BucketProfit)
	assertDec(t, "200", d.Total)
}

func TestCompute_CantidadCero(t *testing.T) {
	d := distribution.Compute(dec("10000"), dec("6300"), dec("500"), 0)
	assert.True(t, d.Total.IsZero())
	assert.True(t, d.BucketCost.IsZero())
	assert.True(t, d.BucketFreight.IsZero())
	assert.True(t, d.BucketProfit.IsZero())
}

// ──────────────────────────────────────────────────────────────────────────────
// ComputeProportional
// ──────────────────────────────────────────────────────────────────────────────

func TestComputeProportional_PagoParcial(t *testing.T) {
	d := distribution.Compute(dec("10000"), dec("6300"), dec("500"), 10)
	p := distribution.ComputeProportional(d, dec("40000"), d.Total)

	assertDec(t, "0.4", p.Proportion)
	assertDec(t, "25200", p.CapitalCost)
	assertDec(t, "2000", p.CapitalFreight)
	assertDec(t, "12800", p.CapitalProfit)
	assertDec(t, "40000", p.Sum())
}

func TestComputeProportional_SumaAproximaPagado(t *testing.T) {
	d := distribution.Compute(dec("333.33"), dec("111.11"), dec("22.22"), 3)
	paid := dec("123.45")
	p := distribution.ComputeProportional(d, paid, d.Total)

	diff := p.Sum().Sub(paid).Abs()
	tolerance := paid.Mul(dec("0.0001"))
	assert.True(t, diff.LessThanOrEqual(tolerance), "diferencia %s fuera de tolerancia", diff.String())
}

func TestComputeProportional_TotalCero(t *testing.T) {
	p := distribution.ComputeProportional(entity.Distribution{}, dec("50"), decimal.Zero)
	assert.True(t, p.Proportion.IsZero())
	assert.True(t, p.Sum().IsZero())
}

func TestComputeProportional_SinRecortar(t *testing.T) {
	d := distribution.Compute(dec("100"), dec("50"), dec("10"), 1)
	p := distribution.ComputeProportional(d, dec("150"), d.Total)
	assertDec(t, "1.5", p.Proportion)
	assertDec(t, "75", p.CapitalCost)
}

// ──────────────────────────────────────────────────────────────────────────────
// Márgenes y validación
// ──────────────────────────────────────────────────────────────────────────────

func TestComputeMargins(t *testing.T) {
	d := distribution.Compute(dec("10000"), dec("6300"), dec("500"), 10)
	m := distribution.ComputeMargins(d)
	assertDec(t, "32", m.Net)
	// 32000 / 68000 × 100 = 47.0588...
	assertDec(t, "47.06", m.Gross)
}

func TestComputeMargins_DenominadoresCero(t *testing.T) {
	m := distribution.ComputeMargins(distribution.Compute(dec("100"), decimal.Zero, decimal.Zero, 0))
	assert.True(t, m.Net.IsZero())
	assert.True(t, m.Gross.IsZero())
}

func TestValidateSale_Valida(t *testing.T) {
	v := distribution.ValidateSale(distribution.SaleInput{
		Quantity:          10,
		SaleUnitPrice:     dec("10000"),
		PurchaseUnitPrice: dec("6300"),
		FreightUnitPrice:  dec("500"),
		AmountPaid:        dec("40000"),
	})
	require.True(t, v.Valid)
	assert.Empty(t, v.Errors)
	assert.Empty(t, v.Warnings)
}

func TestValidateSale_Errores(t *testing.T) {
	v := distribution.ValidateSale(distribution.SaleInput{
		Quantity:          0,
		SaleUnitPrice:     dec("0"),
		PurchaseUnitPrice: dec("-1"),
		FreightUnitPrice:  dec("-1"),
		AmountPaid:        dec("-5"),
	})
	assert.False(t, v.Valid)
	assert.Contains(t, v.Errors, "la cantidad debe ser mayor a 0")
	assert.Contains(t, v.Errors, "el precio de venta debe ser mayor a 0")
	assert.Contains(t, v.Errors, "el monto pagado no puede ser negativo")
}

func TestValidateSale_MargenNegativoYPagoExcedido(t *testing.T) {
	v := distribution.ValidateSale(distribution.SaleInput{
		Quantity:          1,
		SaleUnitPrice:     dec("100"),
		PurchaseUnitPrice: dec("90"),
		FreightUnitPrice:  dec("20"),
		AmountPaid:        dec("101"),
	})
	assert.False(t, v.Valid)
	assert.Len(t, v.Errors, 2)
}

func TestValidateSale_Advertencias(t *testing.T) {
	v := distribution.ValidateSale(distribution.SaleInput{
		Quantity:          1,
		SaleUnitPrice:     dec("100"),
		PurchaseUnitPrice: dec("90"),
		FreightUnitPrice:  dec("5"),
		AmountPaid:        decimal.Zero,
	})
	assert.True(t, v.Valid)
	require.Len(t, v.Warnings, 1)
	assert.Contains(t, v.Warnings[0], "margen bajo")
}
