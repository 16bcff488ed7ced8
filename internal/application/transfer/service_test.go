package transfer_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
	ledgerapp "github.com/jhoicas/chronos-ledger/internal/application/ledger"
	"github.com/jhoicas/chronos-ledger/internal/application/transfer"
	"github.com/jhoicas/chronos-ledger/internal/domain"
	"github.com/jhoicas/chronos-ledger/internal/domain/entity"
	"github.com/jhoicas/chronos-ledger/internal/domain/repository"
	"github.com/jhoicas/chronos-ledger/internal/infrastructure/memory"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type fixture struct {
	ledger   *ledgerapp.Service
	transfer *transfer.Service
}

func setup(t *testing.T, balances map[string]string) fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	l := ledgerapp.NewService(store, store.Repos(), nil, nil)
	for id, bal := range balances {
		_, err := l.CreateAccount(ctx, ledgerapp.CreateAccountInput{ID: id})
		require.NoError(t, err)
		if b := dec(bal); b.IsPositive() {
			_, err = l.RegisterIncome(ctx, ledgerapp.ManualInput{AccountID: id, Amount: b})
			require.NoError(t, err)
		}
	}
	return fixture{ledger: l, transfer: transfer.NewService(store, l)}
}

func balance(t *testing.T, f fixture, id string) decimal.Decimal {
	t.Helper()
	acc, err := f.ledger.GetAccount(context.Background(), id)
	require.NoError(t, err)
	return acc.Balance
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenario base: A (100000) → B (50000) por 20000
// ──────────────────────────────────────────────────────────────────────────────

func TestTransfer_EscenarioBase(t *testing.T) {
	f := setup(t, map[string]string{"A": "100000", "B": "50000"})

	res, err := f.transfer.Transfer(context.Background(), transfer.Input{
		OriginAccountID: "A", DestinationAccountID: "B", Amount: dec("20000"), Note: "fondeo",
	})
	require.NoError(t, err)

	assert.True(t, dec("80000").Equal(balance(t, f, "A")))
	assert.True(t, dec("70000").Equal(balance(t, f, "B")))
	assert.True(t, dec("80000").Equal(res.OriginBalance))
	assert.True(t, dec("70000").Equal(res.DestinationBalance))

	assert.Equal(t, entity.MovementTransferOut, res.Out.Kind)
	assert.Equal(t, entity.MovementTransferIn, res.In.Kind)
	assert.True(t, dec("20000").Equal(res.Out.Amount))
	assert.True(t, dec("20000").Equal(res.In.Amount))
	assert.Equal(t, res.TransferGroupID, res.Out.TransferGroupID)
	assert.Equal(t, res.TransferGroupID, res.In.TransferGroupID)
	assert.Equal(t, "B", res.Out.CounterpartyAccountID)
	assert.Equal(t, "A", res.In.CounterpartyAccountID)
}

func TestTransfer_Validaciones(t *testing.T) {
	f := setup(t, map[string]string{"A": "100", "B": "0"})
	ctx := context.Background()

	cases := []struct {
		name string
		in   transfer.Input
		want error
	}{
		{"monto cero", transfer.Input{OriginAccountID: "A", DestinationAccountID: "B", Amount: decimal.Zero}, domain.ErrInvalidAmount},
		{"monto negativo", transfer.Input{OriginAccountID: "A", DestinationAccountID: "B", Amount: dec("-1")}, domain.ErrInvalidAmount},
		{"misma cuenta", transfer.Input{OriginAccountID: "A", DestinationAccountID: "A", Amount: dec("1")}, domain.ErrSameAccount},
		{"origen inexistente", transfer.Input{OriginAccountID: "X", DestinationAccountID: "B", Amount: dec("1")}, domain.ErrNotFound},
		{"destino inexistente", transfer.Input{OriginAccountID: "A", DestinationAccountID: "X", Amount: dec("1")}, domain.ErrNotFound},
		{"fondos insuficientes", transfer.Input{OriginAccountID: "A", DestinationAccountID: "B", Amount: dec("100.01")}, domain.ErrInsufficientFunds},
		// el monto se valida antes que la igualdad de cuentas
		{"orden de validación", transfer.Input{OriginAccountID: "A", DestinationAccountID: "A", Amount: decimal.Zero}, domain.ErrInvalidAmount},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := f.transfer.Transfer(ctx, c.in)
			assert.True(t, errors.Is(err, c.want), "esperado %v, obtenido %v", c.want, err)
		})
	}

	assert.True(t, dec("100").Equal(balance(t, f, "A")), "los rechazos no registran nada")
	assert.True(t, balance(t, f, "B").IsZero())
	movs, err := f.ledger.ListMovements(ctx, repository.MovementFilter{AccountID: "B"})
	require.NoError(t, err)
	assert.Empty(t, movs)
}

func TestTransfer_FondosInsuficientesReportaDisponible(t *testing.T) {
	f := setup(t, map[string]string{"A": "300", "B": "0"})
	_, err := f.transfer.Transfer(context.Background(), transfer.Input{OriginAccountID: "A", DestinationAccountID: "B", Amount: dec("500")})
	var funds *domain.InsufficientFundsError
	require.True(t, errors.As(err, &funds))
	assert.True(t, dec("300").Equal(funds.Available))
}

// ──────────────────────────────────────────────────────────────────────────────
// Concurrencia: conservación y sin sobregiro
// ──────────────────────────────────────────────────────────────────────────────

func TestTransfer_ConcurrenteConservaSaldo(t *testing.T) {
	f := setup(t, map[string]string{"A": "1000", "B": "1000"})
	ctx := context.Background()

	var g errgroup.Group
	for i := 0; i < 40; i++ {
		origin, dest := "A", "B"
		if i%2 == 1 {
			origin, dest = "B", "A"
		}
		g.Go(func() error {
			_, err := f.transfer.Transfer(ctx, transfer.Input{OriginAccountID: origin, DestinationAccountID: dest, Amount: dec("75")})
			if errors.Is(err, domain.ErrInsufficientFunds) {
				return nil
			}
			return err
		})
	}
	require.NoError(t, g.Wait())

	a, b := balance(t, f, "A"), balance(t, f, "B")
	assert.True(t, dec("2000").Equal(a.Add(b)), "la suma de saldos se conserva")
	assert.False(t, a.IsNegative())
	assert.False(t, b.IsNegative())
}

func TestTransfer_ConcurrenteNoSobregira(t *testing.T) {
	f := setup(t, map[string]string{"A": "100", "B": "0"})
	ctx := context.Background()

	var g errgroup.Group
	for i := 0; i < 10; i++ {
		g.Go(func() error {
			_, err := f.transfer.Transfer(ctx, transfer.Input{OriginAccountID: "A", DestinationAccountID: "B", Amount: dec("30")})
			if errors.Is(err, domain.ErrInsufficientFunds) {
				return nil
			}
			return err
		})
	}
	require.NoError(t, g.Wait())

	assert.True(t, dec("10").Equal(balance(t, f, "A")))
	assert.True(t, dec("90").Equal(balance(t, f, "B")))
}
