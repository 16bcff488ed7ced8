// Package bootstrap arma los servicios del ledger a partir de la configuración; lo comparten
// el API HTTP y ledgerctl.
package bootstrap

import (
	"context"
	"fmt"
	"time"

	ledgerapp "github.com/jhoicas/chronos-ledger/internal/application/ledger"
	"github.com/jhoicas/chronos-ledger/internal/application/ports"
	"github.com/jhoicas/chronos-ledger/internal/application/reconciliation"
	"github.com/jhoicas/chronos-ledger/internal/application/sales"
	"github.com/jhoicas/chronos-ledger/internal/application/transfer"
	"github.com/jhoicas/chronos-ledger/internal/domain/entity"
	"github.com/jhoicas/chronos-ledger/internal/domain/repository"
	"github.com/jhoicas/chronos-ledger/internal/infrastructure/cache"
	"github.com/jhoicas/chronos-ledger/internal/infrastructure/memory"
	"github.com/jhoicas/chronos-ledger/internal/infrastructure/observability"
	"github.com/jhoicas/chronos-ledger/internal/infrastructure/postgres"
	"github.com/jhoicas/chronos-ledger/pkg/config"
	"github.com/jhoicas/chronos-ledger/pkg/logger"
)

// Services casos de uso listos para usar más lo que hay que cerrar al terminar.
type Services struct {
	Ledger         *ledgerapp.Service
	Transfer       *transfer.Service
	Reconciliation *reconciliation.Service
	Sales          *sales.Service
	Metrics        *observability.Metrics
	Buckets        entity.BucketAccounts

	closers []func()
}

// Close libera conexiones en orden inverso a su apertura.
func (s *Services) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
	s.closers = nil
}

// BucketAccounts catálogo bucket → cuenta según la configuración.
func BucketAccounts(cfg config.LedgerConfig) entity.BucketAccounts {
	return entity.BucketAccounts{
		Cost:    cfg.BucketCostAccount,
		Freight: cfg.BucketFreightAccount,
		Profit:  cfg.BucketProfitAccount,
	}
}

// Build abre el almacenamiento (APP_STORAGE), aplica el esquema, construye los servicios y
// garantiza que existan las cuentas automáticas de los buckets.
func Build(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Services, error) {
	log = logger.OrNop(log)
	svc := &Services{Metrics: observability.NewMetrics(), Buckets: BucketAccounts(cfg.Ledger)}

	var (
		txRunner ports.TxRunner
		repos    repository.Repos
	)
	switch cfg.App.Storage {
	case "memory":
		store := memory.NewStore()
		txRunner, repos = store, store.Repos()
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
	case "postgres", "":
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		svc.closers = append(svc.closers, pool.Close)
		if err := postgres.Migrate(ctx, pool); err != nil {
			svc.Close()
			return nil, err
		}
		txRunner, repos = postgres.NewTxRunner(pool), postgres.NewRepos(pool)
	default:
		return nil, fmt.Errorf("almacenamiento desconocido: %q", cfg.App.Storage)
	}

	svc.Ledger = ledgerapp.NewService(txRunner, repos, svc.Metrics, log)
	svc.Transfer = transfer.NewService(txRunner, svc.Ledger)
	svc.Reconciliation = reconciliation.NewService(txRunner, svc.Ledger, svc.Metrics)
	svc.Sales = sales.NewService(txRunner, repos, svc.Ledger, svc.Buckets)

	if err := svc.Ledger.EnsureBucketAccounts(ctx, svc.Buckets); err != nil {
		svc.Close()
		return nil, fmt.Errorf("cuentas de distribución: %w", err)
	}
	return svc, nil
}

// Idempotency store de llaves en Redis; nil (sin idempotencia) si REDIS_ADDR está vacío.
func Idempotency(ctx context.Context, cfg config.RedisConfig, log *logger.Logger) (*cache.IdempotencyStore, func(), error) {
	if cfg.Addr == "" {
		logger.OrNop(log).Info().Msg("REDIS_ADDR vacío: Idempotency-Key deshabilitado")
		return nil, func() {}, nil
	}
	client, err := cache.New(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	ttl := time.Duration(cfg.IdempotencyTTL) * time.Second
	return cache.NewIdempotencyStore(client, ttl), func() { _ = client.Close() }, nil
}
