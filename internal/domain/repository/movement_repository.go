package repository

import (
	"context"
	"time"

	"github.com/jhoicas/chronos-ledger/internal/domain/entity"
)

// MovementFilter criterios para listar movimientos. Campos vacíos no filtran.
type MovementFilter struct {
	AccountID string
	From      *time.Time
	To        *time.Time
	Limit     int
	Offset    int
}

// MovementRepository define el puerto de persistencia para movimientos (inmutables salvo Delete).
type MovementRepository interface {
	Create(ctx context.Context, movement *entity.Movement) error
	GetByID(ctx context.Context, id string) (*entity.Movement, error)
	// ListByTransferGroup devuelve las dos patas de una transferencia.
	ListByTransferGroup(ctx context.Context, groupID string) ([]*entity.Movement, error)
	List(ctx context.Context, filter MovementFilter) ([]*entity.Movement, error)
	// ListAllByAccount historial completo, sin paginar (recálculo).
	ListAllByAccount(ctx context.Context, accountID string) ([]entity.Movement, error)
	Delete(ctx context.Context, id string) error
}
