package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/chronos-ledger/internal/domain"
	"github.com/jhoicas/chronos-ledger/internal/domain/entity"
	"github.com/jhoicas/chronos-ledger/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación sobre PostgreSQL (usable con pool o tx).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

const movementColumns = `id, account_id, kind, amount, ts, note, counterparty_account_id, transfer_group_id,
	sale_id, purchase_order_id, bucket, created_by`

func scanMovement(row pgx.Row) (*entity.Movement, error) {
	var m entity.Movement
	var counterparty, group, saleID, orderID, bucket, createdBy *string
	if err := row.Scan(&m.ID, &m.AccountID, &m.Kind, &m.Amount, &m.Timestamp, &m.Note,
		&counterparty, &group, &saleID, &orderID, &bucket, &createdBy); err != nil {
		return nil, err
	}
	m.CounterpartyAccountID = deref(counterparty)
	m.TransferGroupID = deref(group)
	m.SaleID = deref(saleID)
	m.PurchaseOrderID = deref(orderID)
	m.Bucket = entity.Bucket(deref(bucket))
	m.CreatedBy = deref(createdBy)
	return &m, nil
}

// Create persiste un movimiento.
func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	query := `
		INSERT INTO movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.AccountID, m.Kind, m.Amount, m.Timestamp, m.Note,
		nullable(m.CounterpartyAccountID), nullable(m.TransferGroupID), nullable(m.SaleID),
		nullable(m.PurchaseOrderID), nullable(string(m.Bucket)), nullable(m.CreatedBy),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento; nil, nil si no existe.
func (r *MovementRepo) GetByID(ctx context.Context, id string) (*entity.Movement, error) {
	m, err := scanMovement(r.q.QueryRow(ctx, `SELECT `+movementColumns+` FROM movements WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return m, nil
}

// ListByTransferGroup las patas de una transferencia.
func (r *MovementRepo) ListByTransferGroup(ctx context.Context, groupID string) ([]*entity.Movement, error) {
	return r.list(ctx, "list by transfer group",
		`SELECT `+movementColumns+` FROM movements WHERE transfer_group_id = $1 ORDER BY account_id`, groupID)
}

// List filtra por cuenta y rango de fechas, más recientes primero.
func (r *MovementRepo) List(ctx context.Context, f repository.MovementFilter) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE TRUE`
	args := []any{}
	pos := 1
	if f.AccountID != "" {
		query += fmt.Sprintf(" AND account_id = $%d", pos)
		args = append(args, f.AccountID)
		pos++
	}
	if f.From != nil {
		query += fmt.Sprintf(" AND ts >= $%d", pos)
		args = append(args, *f.From)
		pos++
	}
	if f.To != nil {
		query += fmt.Sprintf(" AND ts <= $%d", pos)
		args = append(args, *f.To)
		pos++
	}
	query += " ORDER BY ts DESC, id"
	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", pos, pos+1)
		args = append(args, f.Limit, f.Offset)
	}
	return r.list(ctx, "list movements", query, args...)
}

// ListAllByAccount historial completo de la cuenta.
func (r *MovementRepo) ListAllByAccount(ctx context.Context, accountID string) ([]entity.Movement, error) {
	ptrs, err := r.list(ctx, "list account history",
		`SELECT `+movementColumns+` FROM movements WHERE account_id = $1 ORDER BY ts, id`, accountID)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Movement, 0, len(ptrs))
	for _, m := range ptrs {
		out = append(out, *m)
	}
	return out, nil
}

// Delete elimina un movimiento (solo junto con su reversa en la misma tx).
func (r *MovementRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM movements WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete movement: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFound("movimiento", id)
	}
	return nil
}

func (r *MovementRepo) list(ctx context.Context, op, query string, args ...any) ([]*entity.Movement, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()
	var list []*entity.Movement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}
