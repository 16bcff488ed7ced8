package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/chronos-ledger/internal/domain"
	"github.com/jhoicas/chronos-ledger/internal/domain/entity"
	"github.com/jhoicas/chronos-ledger/internal/domain/ledger"
	"github.com/jhoicas/chronos-ledger/internal/domain/repository"
)

var _ repository.AccountRepository = (*AccountRepo)(nil)

// AccountRepo implementación de AccountRepository sobre PostgreSQL (usable con pool o tx).
type AccountRepo struct {
	q Querier
}

// NewAccountRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAccountRepository(q Querier) *AccountRepo {
	return &AccountRepo{q: q}
}

const accountColumns = `id, name, kind, balance, total_income, total_expense, active, created_at, updated_at`

func scanAccount(row pgx.Row) (*entity.Account, error) {
	var a entity.Account
	if err := row.Scan(&a.ID, &a.Name, &a.Kind, &a.Balance, &a.TotalIncome, &a.TotalExpense,
		&a.Active, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}

// Create inserta una cuenta.
func (r *AccountRepo) Create(ctx context.Context, a *entity.Account) error {
	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query, a.ID, a.Name, a.Kind, a.Balance, a.TotalIncome, a.TotalExpense,
		a.Active, a.CreatedAt, a.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create account: %w", err)
	}
	return nil
}

// GetByID obtiene una cuenta; nil, nil si no existe.
func (r *AccountRepo) GetByID(ctx context.Context, id string) (*entity.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`
	a, err := scanAccount(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get account: %w", err)
	}
	return a, nil
}

// List todas las cuentas ordenadas por id.
func (r *AccountRepo) List(ctx context.Context) ([]*entity.Account, error) {
	rows, err := r.q.Query(ctx, `SELECT `+accountColumns+` FROM accounts ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()
	var list []*entity.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

// GetForUpdate bloquea las cuentas (SELECT FOR UPDATE) en orden ascendente de id para que dos
// transferencias cruzadas no se bloqueen mutuamente.
func (r *AccountRepo) GetForUpdate(ctx context.Context, ids ...string) (map[string]*entity.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = ANY($1) ORDER BY id FOR UPDATE`
	rows, err := r.q.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("get accounts for update: %w", err)
	}
	defer rows.Close()
	out := make(map[string]*entity.Account, len(ids))
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		out[a.ID] = a
	}
	return out, rows.Err()
}

// ApplyDelta suma el delta a los contadores (balance = balance + Δ); nunca sobrescribe.
func (r *AccountRepo) ApplyDelta(ctx context.Context, id string, d ledger.Delta) error {
	query := `
		UPDATE accounts
		SET balance = balance + $2, total_income = total_income + $3, total_expense = total_expense + $4, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, id, d.Balance, d.Income, d.Expense)
	if err != nil {
		return fmt.Errorf("apply account delta: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFound("cuenta", id)
	}
	return nil
}
