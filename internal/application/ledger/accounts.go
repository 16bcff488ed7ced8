package ledger

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/chronos-ledger/internal/domain"
	"github.com/jhoicas/chronos-ledger/internal/domain/entity"
	"github.com/jhoicas/chronos-ledger/internal/domain/repository"
)

// CreateAccountInput datos para abrir una cuenta.
type CreateAccountInput struct {
	ID   string
	Name string
	Kind string
}

// CreateAccount abre una cuenta con contadores en cero.
func (s *Service) CreateAccount(ctx context.Context, in CreateAccountInput) (*entity.Account, error) {
	in.ID = strings.TrimSpace(in.ID)
	if in.ID == "" {
		return nil, &domain.ValidationError{Errors: []string{"el id de la cuenta es obligatorio"}}
	}
	if in.Kind == "" {
		in.Kind = entity.AccountKindManual
	}
	if in.Kind != entity.AccountKindManual && in.Kind != entity.AccountKindAutomatic {
		return nil, &domain.ValidationError{Errors: []string{"tipo de cuenta inválido: " + in.Kind}}
	}
	if in.Name == "" {
		in.Name = in.ID
	}
	now := s.now()
	acc := &entity.Account{
		ID:           in.ID,
		Name:         in.Name,
		Kind:         in.Kind,
		Balance:      decimal.Zero,
		TotalIncome:  decimal.Zero,
		TotalExpense: decimal.Zero,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repos.Accounts.Create(ctx, acc); err != nil {
		return nil, err
	}
	s.log.Info().Str("account_id", acc.ID).Str("kind", acc.Kind).Msg("cuenta creada")
	return acc, nil
}

// EnsureBucketAccounts crea las cuentas automáticas de los buckets GYA que aún no existan.
func (s *Service) EnsureBucketAccounts(ctx context.Context, accounts entity.BucketAccounts) error {
	names := map[entity.Bucket]string{
		entity.BucketCost:    "Bóveda Monte",
		entity.BucketFreight: "Fletes",
		entity.BucketProfit:  "Utilidades",
	}
	for _, b := range entity.Buckets {
		id := accounts.For(b)
		existing, err := s.repos.Accounts.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if existing != nil {
			continue
		}
		if _, err := s.CreateAccount(ctx, CreateAccountInput{ID: id, Name: names[b], Kind: entity.AccountKindAutomatic}); err != nil {
			return err
		}
	}
	return nil
}

// GetAccount devuelve la cuenta o NotFoundError.
func (s *Service) GetAccount(ctx context.Context, id string) (*entity.Account, error) {
	acc, err := s.repos.Accounts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if acc == nil {
		return nil, domain.NewNotFound("cuenta", id)
	}
	return acc, nil
}

// ListAccounts todas las cuentas ordenadas por id.
func (s *Service) ListAccounts(ctx context.Context) ([]*entity.Account, error) {
	return s.repos.Accounts.List(ctx)
}

// ListMovements movimientos de una cuenta (o de todas) en un rango, más recientes primero.
func (s *Service) ListMovements(ctx context.Context, filter repository.MovementFilter) ([]*entity.Movement, error) {
	if filter.AccountID != "" {
		if _, err := s.GetAccount(ctx, filter.AccountID); err != nil {
			return nil, err
		}
	}
	if filter.Limit <= 0 || filter.Limit > 500 {
		filter.Limit = 100
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return s.repos.Movements.List(ctx, filter)
}
