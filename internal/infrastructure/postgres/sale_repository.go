package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/chronos-ledger/internal/domain"
	"github.com/jhoicas/chronos-ledger/internal/domain/entity"
	"github.com/jhoicas/chronos-ledger/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación de SaleRepository sobre PostgreSQL.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

const saleColumns = `id, client_id, purchase_order_id, quantity, sale_unit_price, purchase_unit_price, freight_unit_price,
	total, bucket_cost, bucket_freight, bucket_profit, amount_paid, amount_remaining, payment_state, note,
	created_at, updated_at`

func scanSale(row pgx.Row) (*entity.Sale, error) {
	var s entity.Sale
	var orderID *string
	if err := row.Scan(&s.ID, &s.ClientID, &orderID, &s.Quantity, &s.SaleUnitPrice, &s.PurchaseUnitPrice,
		&s.FreightUnitPrice, &s.Total, &s.Distribution.BucketCost, &s.Distribution.BucketFreight,
		&s.Distribution.BucketProfit, &s.AmountPaid, &s.AmountRemaining, &s.PaymentState, &s.Note,
		&s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	s.PurchaseOrderID = deref(orderID)
	s.Distribution.Total = s.Total
	return &s, nil
}

// Create inserta la venta con su distribución congelada.
func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	query := `
		INSERT INTO sales (` + saleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.ClientID, nullable(s.PurchaseOrderID), s.Quantity, s.SaleUnitPrice, s.PurchaseUnitPrice,
		s.FreightUnitPrice, s.Total, s.Distribution.BucketCost, s.Distribution.BucketFreight,
		s.Distribution.BucketProfit, s.AmountPaid, s.AmountRemaining, s.PaymentState, s.Note,
		s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create sale: %w", err)
	}
	return nil
}

// GetByID obtiene una venta; nil, nil si no existe.
func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	return r.get(ctx, `SELECT `+saleColumns+` FROM sales WHERE id = $1`, id)
}

// GetForUpdate igual que GetByID pero bloqueando la fila.
func (r *SaleRepo) GetForUpdate(ctx context.Context, id string) (*entity.Sale, error) {
	return r.get(ctx, `SELECT `+saleColumns+` FROM sales WHERE id = $1 FOR UPDATE`, id)
}

func (r *SaleRepo) get(ctx context.Context, query, id string) (*entity.Sale, error) {
	s, err := scanSale(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return s, nil
}

// UpdatePayment persiste monto pagado, pendiente y estado.
func (r *SaleRepo) UpdatePayment(ctx context.Context, s *entity.Sale) error {
	query := `
		UPDATE sales SET amount_paid = $2, amount_remaining = $3, payment_state = $4, updated_at = $5
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, s.ID, s.AmountPaid, s.AmountRemaining, s.PaymentState, s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update sale payment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFound("venta", s.ID)
	}
	return nil
}

// ListByPurchaseOrder ventas que consumen stock de la orden.
func (r *SaleRepo) ListByPurchaseOrder(ctx context.Context, purchaseOrderID string) ([]entity.Sale, error) {
	return r.listValues(ctx, `SELECT `+saleColumns+` FROM sales WHERE purchase_order_id = $1 ORDER BY created_at`, purchaseOrderID)
}

// ListByClient ventas de un cliente.
func (r *SaleRepo) ListByClient(ctx context.Context, clientID string) ([]entity.Sale, error) {
	return r.listValues(ctx, `SELECT `+saleColumns+` FROM sales WHERE client_id = $1 ORDER BY created_at`, clientID)
}

// List paginado, más recientes primero.
func (r *SaleRepo) List(ctx context.Context, limit, offset int) ([]*entity.Sale, error) {
	rows, err := r.q.Query(ctx, `SELECT `+saleColumns+` FROM sales ORDER BY created_at DESC, id LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func (r *SaleRepo) listValues(ctx context.Context, query, arg string) ([]entity.Sale, error) {
	rows, err := r.q.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var list []entity.Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, *s)
	}
	return list, rows.Err()
}
