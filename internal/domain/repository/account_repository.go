package repository

import (
	"context"

	"github.com/jhoicas/chronos-ledger/internal/domain/entity"
	"github.com/jhoicas/chronos-ledger/internal/domain/ledger"
)

// AccountRepository define el puerto de persistencia para cuentas bancarias.
// Los contadores solo cambian con ApplyDelta (balance = balance + Δ), nunca por sobrescritura.
type AccountRepository interface {
	Create(ctx context.Context, account *entity.Account) error
	GetByID(ctx context.Context, id string) (*entity.Account, error)
	List(ctx context.Context) ([]*entity.Account, error)
	// GetForUpdate bloquea las filas (SELECT FOR UPDATE) en orden ascendente de id.
	// Las cuentas inexistentes no aparecen en el resultado.
	GetForUpdate(ctx context.Context, ids ...string) (map[string]*entity.Account, error)
	ApplyDelta(ctx context.Context, id string, delta ledger.Delta) error
}
