package repository

import (
	"context"

	"github.com/jhoicas/chronos-ledger/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia para ventas.
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	// GetForUpdate bloquea la venta (abonos concurrentes).
	GetForUpdate(ctx context.Context, id string) (*entity.Sale, error)
	UpdatePayment(ctx context.Context, sale *entity.Sale) error
	ListByPurchaseOrder(ctx context.Context, purchaseOrderID string) ([]entity.Sale, error)
	ListByClient(ctx context.Context, clientID string) ([]entity.Sale, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Sale, error)
}
