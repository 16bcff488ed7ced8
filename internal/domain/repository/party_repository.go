package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/chronos-ledger/internal/domain/entity"
)

// PartyRepository clientes y distribuidores con su deuda derivada.
type PartyRepository interface {
	CreateClient(ctx context.Context, client *entity.Client) error
	GetClient(ctx context.Context, id string) (*entity.Client, error)
	ListClients(ctx context.Context) ([]*entity.Client, error)
	SetClientDebt(ctx context.Context, id string, debt decimal.Decimal) error

	CreateDistributor(ctx context.Context, distributor *entity.Distributor) error
	GetDistributor(ctx context.Context, id string) (*entity.Distributor, error)
	ListDistributors(ctx context.Context) ([]*entity.Distributor, error)
	SetDistributorBalance(ctx context.Context, id string, pending decimal.Decimal) error
}
