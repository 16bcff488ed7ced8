package payment_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/jhoicas/chronos-ledger/internal/domain"
	"github.com/jhoicas/chronos-ledger/internal/domain/distribution"
	"github.com/jhoicas/chronos-ledger/internal/domain/entity"
	"github.com/jhoicas/chronos-ledger/internal/domain/payment"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

var accounts = entity.BucketAccounts{Cost: "boveda_monte", Freight: "flete_sur", Profit: "utilidades"}

func newSale(paid string) entity.Sale {
	d := distribution.Compute(dec("10000"), dec("6300"), dec("500"), 10)
	p := dec(paid)
	return entity.Sale{
		ID:              "venta-1",
		Quantity:        10,
		Total:           d.Total,
		Distribution:    d,
		AmountPaid:      p,
		AmountRemaining: payment.Remaining(d.Total, p),
		PaymentState:    payment.Classify(d.Total, p),
	}
}

func TestClassify(t *testing.T) {
	total := dec("100")
	assert.Equal(t, entity.PaymentPending, payment.Classify(total, decimal.Zero))
	assert.Equal(t, entity.PaymentPending, payment.Classify(total, dec("-1")))
	assert.Equal(t, entity.PaymentPartial, payment.Classify(total, dec("0.01")))
	assert.Equal(t, entity.PaymentPartial, payment.Classify(total, dec("99.99")))
	assert.Equal(t, entity.PaymentComplete, payment.Classify(total, dec("100")))
	assert.Equal(t, entity.PaymentComplete, payment.Classify(total, dec("150")))
}

func TestApplyAdvance_Parcial(t *testing.T) {
	sale := newSale("40000")

	res, err := payment.ApplyAdvance(sale, dec("25000"), accounts)
	require.NoError(t, err)

	assert.True(t, dec("65000").Equal(res.AmountPaid))
	assert.True(t, dec("35000").Equal(res.AmountRemaining))
	assert.Equal(t, entity.PaymentPartial, res.State)
	require.Len(t, res.Movements, 3)

	byAccount := map[string]decimal.Decimal{}
	sum := decimal.Zero
	for _, m := range res.Movements {
		assert.Equal(t, entity.MovementAdvance, m.Kind)
		byAccount[m.AccountID] = m.Amount
		sum = sum.Add(m.Amount)
	}
	assert.True(t, dec("15750").Equal(byAccount["boveda_monte"]))
	assert.True(t, dec("1250").Equal(byAccount["flete_sur"]))
	assert.True(t, dec("8000").Equal(byAccount["utilidades"]))
	assert.True(t, dec("25000").Equal(sum), "los movimientos deben sumar el abono")
}

func TestApplyAdvance_Completa(t *testing.T) {
	sale := newSale("40000")
	res, err := payment.ApplyAdvance(sale, dec("60000"), accounts)
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentComplete, res.State)
	assert.True(t, res.AmountRemaining.IsZero())
}

func TestApplyAdvance_ExcedenteRecortaPendiente(t *testing.T) {
	sale := newSale("90000")
	res, err := payment.ApplyAdvance(sale, dec("20000"), accounts)
	require.NoError(t, err)
	assert.True(t, res.AmountRemaining.IsZero())
	assert.Equal(t, entity.PaymentComplete, res.State)
}

func TestApplyAdvance_CeroEsNoOp(t *testing.T) {
	sale := newSale("40000")
	res, err := payment.ApplyAdvance(sale, decimal.Zero, accounts)
	require.NoError(t, err)
	assert.Empty(t, res.Movements)
	assert.True(t, dec("40000").Equal(res.AmountPaid))
	assert.Equal(t, entity.PaymentPartial, res.State)
}

func TestApplyAdvance_NegativoEsError(t *testing.T) {
	sale := newSale("40000")
	_, err := payment.ApplyAdvance(sale, dec("-1"), accounts)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidAmount))
	var typed *domain.InvalidAmountError
	assert.True(t, errors.As(err, &typed))
}

func TestApplyAdvance_EstadoNoRetrocede(t *testing.T) {
	sale := newSale("0")
	states := []entity.PaymentState{sale.PaymentState}
	for _, a := range []string{"10000", "0", "30000", "60000", "0"} {
		res, err := payment.ApplyAdvance(sale, dec(a), accounts)
		require.NoError(t, err)
		sale.AmountPaid = res.AmountPaid
		sale.AmountRemaining = res.AmountRemaining
		sale.PaymentState = res.State
		states = append(states, res.State)
	}
	rank := map[entity.PaymentState]int{entity.PaymentPending: 0, entity.PaymentPartial: 1, entity.PaymentComplete: 2}
	for i := 1; i < len(states); i++ {
		assert.GreaterOrEqual(t, rank[states[i]], rank[states[i-1]], "el estado no debe retroceder")
	}
	assert.Equal(t, entity.PaymentComplete, sale.PaymentState)
}
