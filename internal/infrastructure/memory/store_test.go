package memory_test

import (
	"context"
	"errors"
	"testing"
	"unsafe"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
	"github.com/jhoicas/chronos-ledger/internal/domain"
	"github.com/jhoicas/chronos-ledger/internal/domain/entity"
	"github.com/jhoicas/chronos-ledger/internal/domain/ledger"
	"github.com/jhoicas/chronos-ledger/internal/domain/repository"
	"github.com/jhoicas/chronos-ledger/internal/infrastructure/memory"
)

func seedAccount(t *testing.T, s *memory.Store, id string) {
	t.Helper()
	require.NoError(t, s.Repos().Accounts.Create(context.Background(), &entity.Account{
		ID: id, Name: id, Kind: entity.AccountKindManual, Active: true,
		Balance: decimal.Zero, TotalIncome: decimal.Zero, TotalExpense: decimal.Zero,
	}))
}

func TestRun_CommitPublicaCambios(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	seedAccount(t, s, "caja")

	err := s.Run(ctx, func(tx repository.Repos) error {
		return tx.Accounts.ApplyDelta(ctx, "caja", ledger.Delta{Balance: decimal.NewFromInt(10), Income: decimal.NewFromInt(10), Expense: decimal.Zero})
	})
	require.NoError(t, err)

	acc, err := s.Repos().Accounts.GetByID(ctx, "caja")
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(10).Equal(acc.Balance))
}

func TestRun_ErrorDescartaCambios(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	seedAccount(t, s, "caja")
	boom := errors.New("boom")

	err := s.Run(ctx, func(tx repository.Repos) error {
		require.NoError(t, tx.Movements.Create(ctx, &entity.Movement{ID: "m1", AccountID: "caja", Kind: entity.MovementIncome, Amount: decimal.NewFromInt(5)}))
		require.NoError(t, tx.Accounts.ApplyDelta(ctx, "caja", ledger.Delta{Balance: decimal.NewFromInt(5), Income: decimal.NewFromInt(5), Expense: decimal.Zero}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	acc, _ := s.Repos().Accounts.GetByID(ctx, "caja")
	assert.True(t, acc.Balance.IsZero())
	m, err := s.Repos().Movements.GetByID(ctx, "m1")
	require.NoError(t, err)
	assert.Nil(t, m)
}

func TestRepos_NoEncontrado(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()

	acc, err := s.Repos().Accounts.GetByID(ctx, "nada")
	require.NoError(t, err)
	assert.Nil(t, acc)

	err = s.Repos().Accounts.ApplyDelta(ctx, "nada", ledger.Delta{})
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	err = s.Repos().Movements.Delete(ctx, "nada")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestRepos_Duplicado(t *testing.T) {
	s := memory.NewStore()
	seedAccount(t, s, "caja")
	err := s.Repos().Accounts.Create(context.Background(), &entity.Account{ID: "caja"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestRun_Concurrente(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	seedAccount(t, s, "caja")

	var g errgroup.Group
	for i := 0; i < 50; i++ {
		g.Go(func() error {
			return s.Run(ctx, func(tx repository.Repos) error {
				return tx.Accounts.ApplyDelta(ctx, "caja", ledger.Delta{Balance: decimal.NewFromInt(1), Income: decimal.NewFromInt(1), Expense: decimal.Zero})
			})
		})
	}
	require.NoError(t, g.Wait())

	acc, _ := s.Repos().Accounts.GetByID(ctx, "caja")
	assert.True(t, decimal.NewFromInt(50).Equal(acc.Balance))
}

// Los ids que llegan de fiber apuntan a buffers reutilizables; el store no debe retenerlos.
func TestRepos_NoRetieneBuffersDelLlamador(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	seedAccount(t, s, "banco_a")

	buf := []byte("banco_a")
	id := unsafe.String(&buf[0], len(buf))
	repos := s.Repos()
	require.NoError(t, repos.Accounts.ApplyDelta(ctx, id, ledger.Delta{Balance: decimal.NewFromInt(5), Income: decimal.NewFromInt(5), Expense: decimal.Zero}))
	require.NoError(t, repos.Movements.Create(ctx, &entity.Movement{ID: "m1", AccountID: id, Kind: entity.MovementIncome, Amount: decimal.NewFromInt(5)}))

	copy(buf, "banco_b")

	acc, err := repos.Accounts.GetByID(ctx, "banco_a")
	require.NoError(t, err)
	require.NotNil(t, acc)
	assert.Equal(t, "banco_a", acc.ID)
	assert.True(t, decimal.NewFromInt(5).Equal(acc.Balance))

	history, err := repos.Movements.ListAllByAccount(ctx, "banco_a")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "banco_a", history[0].AccountID)
}
