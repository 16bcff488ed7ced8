// Package ledger contiene los casos de uso del libro mayor: registro de movimientos,
// ingresos y gastos manuales, borrado con reversa exacta, recálculo y resumen de corte.
package ledger

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/chronos-ledger/internal/application/ports"
	"github.com/jhoicas/chronos-ledger/internal/domain"
	"github.com/jhoicas/chronos-ledger/internal/domain/entity"
	"github.com/jhoicas/chronos-ledger/internal/domain/ledger"
	"github.com/jhoicas/chronos-ledger/internal/domain/repository"
	"github.com/jhoicas/chronos-ledger/pkg/logger"
)

// Service único mutador de cuentas: todo cambio de contadores pasa por PostInTx.
type Service struct {
	txRunner ports.TxRunner
	repos    repository.Repos
	metrics  ports.Metrics
	log      *logger.Logger
	now      func() time.Time
}

// NewService construye el servicio. metrics y log pueden ser nil.
func NewService(txRunner ports.TxRunner, repos repository.Repos, metrics ports.Metrics, log *logger.Logger) *Service {
	return &Service{
		txRunner: txRunner,
		repos:    repos,
		metrics:  ports.MetricsOrNop(metrics),
		log:      logger.OrNop(log).Named("ledger"),
		now:      time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Now hora actual según el reloj del servicio.
func (s *Service) Now() time.Time { return s.now() }

// PostInTx inserta el movimiento y aplica su efecto relativo sobre la cuenta, en la transacción del caller.
// Completa ID y Timestamp si vienen vacíos.
func (s *Service) PostInTx(ctx context.Context, tx repository.Repos, m *entity.Movement) error {
	if !m.Kind.Valid() {
		return &domain.ValidationError{Errors: []string{"tipo de movimiento inválido: " + string(m.Kind)}}
	}
	if !m.Amount.IsPositive() {
		return &domain.InvalidAmountError{Field: "amount", Amount: m.Amount, Reason: "el monto debe ser mayor a 0"}
	}
	if m.AccountID == "" {
		return &domain.ValidationError{Errors: []string{"la cuenta es obligatoria"}}
	}
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if m.Timestamp.IsZero() {
		m.Timestamp = s.now()
	}
	if err := tx.Movements.Create(ctx, m); err != nil {
		return err
	}
	return tx.Accounts.ApplyDelta(ctx, m.AccountID, ledger.Effect(*m))
}

// Observe registra en métricas y log los movimientos ya confirmados.
func (s *Service) Observe(movements ...*entity.Movement) {
	for _, m := range movements {
		s.metrics.MovementPosted(m.Kind, m.Amount)
		s.log.Info().
			Str("movement_id", m.ID).
			Str("account_id", m.AccountID).
			Str("kind", string(m.Kind)).
			Str("amount", m.Amount.String()).
			Msg("movimiento registrado")
	}
}

// Reject registra una operación rechazada.
func (s *Service) Reject(operation string, err error) {
	s.metrics.OperationRejected(operation, reasonOf(err))
	ev := s.log.Warn()
	if domain.Code(err) == "INTERNAL_ERROR" {
		ev = s.log.Error()
	}
	ev.Err(err).Str("operation", operation).Msg("operación rechazada")
}

func reasonOf(err error) string {
	switch domain.Code(err) {
	case "INVALID_AMOUNT":
		return "invalid_amount"
	case "INSUFFICIENT_FUNDS":
		return "insufficient_funds"
	case "SAME_ACCOUNT":
		return "same_account"
	case "INSUFFICIENT_STOCK":
		return "insufficient_stock"
	case "NOT_FOUND":
		return "not_found"
	case "VALIDATION_ERROR":
		return "validation"
	case "CONFLICT":
		return "conflict"
	default:
		return "internal"
	}
}

// LockAccounts bloquea las cuentas en orden ascendente de id y falla con NotFoundError si falta alguna.
func LockAccounts(ctx context.Context, tx repository.Repos, ids ...string) (map[string]*entity.Account, error) {
	sorted := append([]string(nil), ids...)
	sort.Strings(sorted)
	locked, err := tx.Accounts.GetForUpdate(ctx, sorted...)
	if err != nil {
		return nil, err
	}
	for _, id := range sorted {
		if locked[id] == nil {
			return nil, domain.NewNotFound("cuenta", id)
		}
	}
	return locked, nil
}
