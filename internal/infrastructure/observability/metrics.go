// Package observability expone métricas Prometheus del ledger y de la capa HTTP.
package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/chronos-ledger/internal/application/ports"
	"github.com/jhoicas/chronos-ledger/internal/domain/entity"
)

var _ ports.Metrics = (*Metrics)(nil)

// Metrics registry propio con contadores de negocio y de HTTP. Un *Metrics nil es válido y no registra nada.
type Metrics struct {
	registry        *prometheus.Registry
	handler         http.Handler
	movementsTotal  *prometheus.CounterVec
	movementsAmount *prometheus.CounterVec
	rejectedTotal   *prometheus.CounterVec
	reconDiff       *prometheus.HistogramVec
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// NewMetrics inicializa el registry y las métricas.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	movements := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ledger_movements_posted_total",
		Help: "Movimientos registrados por tipo.",
	}, []string{"kind"})
	amounts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ledger_movements_amount_total",
		Help: "Suma de montos registrados por tipo.",
	}, []string{"kind"})
	rejected := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ledger_operations_rejected_total",
		Help: "Operaciones rechazadas por operación y motivo.",
	}, []string{"operation", "reason"})
	recon := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ledger_reconciliation_difference",
		Help:    "Diferencia (conteo físico − saldo) en cortes de caja.",
		Buckets: []float64{-10000, -1000, -100, -1, 0, 1, 100, 1000, 10000},
	}, []string{"account"})
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ledger_http_requests_total",
		Help: "Peticiones HTTP por ruta y status.",
	}, []string{"route", "code"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ledger_http_request_duration_seconds",
		Help:    "Duración de peticiones HTTP por ruta.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})
	registry.MustRegister(movements, amounts, rejected, recon, requests, duration)
	return &Metrics{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		movementsTotal:  movements,
		movementsAmount: amounts,
		rejectedTotal:   rejected,
		reconDiff:       recon,
		requestsTotal:   requests,
		requestDuration: duration,
	}
}

// Handler http.Handler para /metrics.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// Registerer expone el registry para métricas adicionales.
func (m *Metrics) Registerer() prometheus.Registerer {
	if m == nil {
		return prometheus.DefaultRegisterer
	}
	return m.registry
}

func (m *Metrics) MovementPosted(kind entity.MovementKind, amount decimal.Decimal) {
	if m == nil {
		return
	}
	m.movementsTotal.WithLabelValues(string(kind)).Inc()
	m.movementsAmount.WithLabelValues(string(kind)).Add(amount.Abs().InexactFloat64())
}

func (m *Metrics) OperationRejected(operation, reason string) {
	if m == nil {
		return
	}
	m.rejectedTotal.WithLabelValues(operation, reason).Inc()
}

func (m *Metrics) ReconciliationDifference(accountID string, difference decimal.Decimal) {
	if m == nil {
		return
	}
	m.reconDiff.WithLabelValues(accountID).Observe(difference.InexactFloat64())
}

// Middleware registra conteo y duración de cada petición Fiber por patrón de ruta.
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if m == nil {
			return c.Next()
		}
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		route := "unknown"
		if r := c.Route(); r != nil && r.Path != "" {
			route = r.Path
		}
		m.requestsTotal.WithLabelValues(route, strconv.Itoa(status)).Inc()
		m.requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
		return err
	}
}
