package ports

import (
	"github.com/shopspring/decimal"
	"github.com/jhoicas/chronos-ledger/internal/domain/entity"
)

// Metrics puerto de salida para métricas de negocio del ledger.
type Metrics interface {
	MovementPosted(kind entity.MovementKind, amount decimal.Decimal)
	OperationRejected(operation, reason string)
	ReconciliationDifference(accountID string, difference decimal.Decimal)
}

// NopMetrics descarta todo; se usa cuando no hay métricas configuradas.
type NopMetrics struct{}

func (NopMetrics) MovementPosted(entity.MovementKind, decimal.Decimal) {}
func (NopMetrics) OperationRejected(string, string)                    {}
func (NopMetrics) ReconciliationDifference(string, decimal.Decimal)    {}

// MetricsOrNop devuelve m o NopMetrics si m es nil.
func MetricsOrNop(m Metrics) Metrics {
	if m == nil {
		return NopMetrics{}
	}
	return m
}
