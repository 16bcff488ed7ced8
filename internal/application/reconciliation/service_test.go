package reconciliation_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	ledgerapp "github.com/jhoicas/chronos-ledger/internal/application/ledger"
	"github.com/jhoicas/chronos-ledger/internal/application/reconciliation"
	"github.com/jhoicas/chronos-ledger/internal/domain"
	"github.com/jhoicas/chronos-ledger/internal/domain/entity"
	"github.com/jhoicas/chronos-ledger/internal/infrastructure/memory"
	"github.com/jhoicas/chronos-ledger/internal/infrastructure/observability"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func setup(t *testing.T, initial string) (*ledgerapp.Service, *reconciliation.Service) {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	metrics := observability.NewMetrics()
	l := ledgerapp.NewService(store, store.Repos(), metrics, nil)
	_, err := l.CreateAccount(ctx, ledgerapp.CreateAccountInput{ID: "caja"})
	require.NoError(t, err)
	_, err = l.RegisterIncome(ctx, ledgerapp.ManualInput{AccountID: "caja", Amount: dec(initial)})
	require.NoError(t, err)
	return l, reconciliation.NewService(store, l, metrics)
}

func accountState(t *testing.T, l *ledgerapp.Service) *entity.Account {
	t.Helper()
	acc, err := l.GetAccount(context.Background(), "caja")
	require.NoError(t, err)
	assert.True(t, acc.Balance.Equal(acc.TotalIncome.Sub(acc.TotalExpense)))
	return acc
}

func TestReconcile_Faltante(t *testing.T) {
	l, svc := setup(t, "1000")

	res, err := svc.Reconcile(context.Background(), reconciliation.Input{AccountID: "caja", PhysicalCount: dec("950")})
	require.NoError(t, err)

	assert.True(t, dec("-50").Equal(res.Difference))
	require.NotNil(t, res.Adjustment)
	assert.Equal(t, entity.MovementExpense, res.Adjustment.Kind)
	assert.True(t, dec("50").Equal(res.Adjustment.Amount))

	acc := accountState(t, l)
	assert.True(t, dec("950").Equal(acc.Balance))
	assert.True(t, dec("50").Equal(acc.TotalExpense))
}

func TestReconcile_Sobrante(t *testing.T) {
	l, svc := setup(t, "1000")

	res, err := svc.Reconcile(context.Background(), reconciliation.Input{AccountID: "caja", PhysicalCount: dec("1020.5"), Note: "arqueo"})
	require.NoError(t, err)
	assert.True(t, dec("20.5").Equal(res.Difference))
	assert.Equal(t, entity.MovementIncome, res.Adjustment.Kind)
	assert.Contains(t, res.Adjustment.Note, "arqueo")

	acc := accountState(t, l)
	assert.True(t, dec("1020.5").Equal(acc.Balance))
	assert.True(t, dec("1020.5").Equal(acc.TotalIncome))
}

func TestReconcile_DentroDeTolerancia(t *testing.T) {
	l, svc := setup(t, "1000")

	res, err := svc.Reconcile(context.Background(), reconciliation.Input{AccountID: "caja", PhysicalCount: dec("1000.004")})
	require.NoError(t, err)
	assert.True(t, res.Difference.IsZero())
	assert.Nil(t, res.Adjustment)
	assert.True(t, dec("1000").Equal(accountState(t, l).Balance))
}

func TestReconcile_ConteoNegativo(t *testing.T) {
	_, svc := setup(t, "1000")
	_, err := svc.Reconcile(context.Background(), reconciliation.Input{AccountID: "caja", PhysicalCount: dec("-1")})
	assert.True(t, errors.Is(err, domain.ErrInvalidAmount))
}

func TestReconcile_CuentaInexistente(t *testing.T) {
	_, svc := setup(t, "1000")
	_, err := svc.Reconcile(context.Background(), reconciliation.Input{AccountID: "nada", PhysicalCount: dec("1")})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestReconcile_ConteoCeroVaciaLaCuenta(t *testing.T) {
	l, svc := setup(t, "250")
	_, err := svc.Reconcile(context.Background(), reconciliation.Input{AccountID: "caja", PhysicalCount: decimal.Zero})
	require.NoError(t, err)
	assert.True(t, accountState(t, l).Balance.IsZero())
}
