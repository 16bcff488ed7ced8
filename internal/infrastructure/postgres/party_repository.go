package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/chronos-ledger/internal/domain"
	"github.com/jhoicas/chronos-ledger/internal/domain/entity"
	"github.com/jhoicas/chronos-ledger/internal/domain/repository"
)

var _ repository.PartyRepository = (*PartyRepo)(nil)

// PartyRepo clientes y distribuidores sobre PostgreSQL.
type PartyRepo struct {
	q Querier
}

// NewPartyRepository construye el adaptador.
func NewPartyRepository(q Querier) *PartyRepo {
	return &PartyRepo{q: q}
}

// ─── Clientes ───────────────────────────────────────────────────────────────

func (r *PartyRepo) CreateClient(ctx context.Context, c *entity.Client) error {
	query := `
		INSERT INTO clients (id, name, phone, total_debt, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query, c.ID, c.Name, c.Phone, c.TotalDebt, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create client: %w", err)
	}
	return nil
}

func (r *PartyRepo) GetClient(ctx context.Context, id string) (*entity.Client, error) {
	query := `SELECT id, name, phone, total_debt, created_at, updated_at FROM clients WHERE id = $1`
	var c entity.Client
	err := r.q.QueryRow(ctx, query, id).Scan(&c.ID, &c.Name, &c.Phone, &c.TotalDebt, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client: %w", err)
	}
	return &c, nil
}

func (r *PartyRepo) ListClients(ctx context.Context) ([]*entity.Client, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name, phone, total_debt, created_at, updated_at FROM clients ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()
	var list []*entity.Client
	for rows.Next() {
		var c entity.Client
		if err := rows.Scan(&c.ID, &c.Name, &c.Phone, &c.TotalDebt, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// SetClientDebt escribe la deuda recalculada (valor derivado, no un contador).
func (r *PartyRepo) SetClientDebt(ctx context.Context, id string, debt decimal.Decimal) error {
	tag, err := r.q.Exec(ctx, `UPDATE clients SET total_debt = $2, updated_at = now() WHERE id = $1`, id, debt)
	if err != nil {
		return fmt.Errorf("set client debt: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFound("cliente", id)
	}
	return nil
}

// ─── Distribuidores ─────────────────────────────────────────────────────────

func (r *PartyRepo) CreateDistributor(ctx context.Context, d *entity.Distributor) error {
	query := `
		INSERT INTO distributors (id, name, phone, pending_balance, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query, d.ID, d.Name, d.Phone, d.PendingBalance, d.CreatedAt, d.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create distributor: %w", err)
	}
	return nil
}

func (r *PartyRepo) GetDistributor(ctx context.Context, id string) (*entity.Distributor, error) {
	query := `SELECT id, name, phone, pending_balance, created_at, updated_at FROM distributors WHERE id = $1`
	var d entity.Distributor
	err := r.q.QueryRow(ctx, query, id).Scan(&d.ID, &d.Name, &d.Phone, &d.PendingBalance, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get distributor: %w", err)
	}
	return &d, nil
}

func (r *PartyRepo) ListDistributors(ctx context.Context) ([]*entity.Distributor, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name, phone, pending_balance, created_at, updated_at FROM distributors ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("list distributors: %w", err)
	}
	defer rows.Close()
	var list []*entity.Distributor
	for rows.Next() {
		var d entity.Distributor
		if err := rows.Scan(&d.ID, &d.Name, &d.Phone, &d.PendingBalance, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan distributor: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

func (r *PartyRepo) SetDistributorBalance(ctx context.Context, id string, pending decimal.Decimal) error {
	tag, err := r.q.Exec(ctx, `UPDATE distributors SET pending_balance = $2, updated_at = now() WHERE id = $1`, id, pending)
	if err != nil {
		return fmt.Errorf("set distributor balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFound("distribuidor", id)
	}
	return nil
}
