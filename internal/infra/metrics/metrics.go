package metrics

import (
	"net/http"
	"strconv"
	"time"

	"order-core/internal/domain/outbox"
	"order-core/internal/usecase/shared"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "order_core"

// Metrics implements shared.Metrics on a dedicated registry.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests  *prometheus.CounterVec
	httpLatency   *prometheus.HistogramVec
	checkouts     *prometheus.CounterVec
	webhooks      *prometheus.CounterVec
	transitions   *prometheus.CounterVec
	invalid       *prometheus.CounterVec
	outboxResults *prometheus.CounterVec
}

var _ shared.Metrics = (*Metrics)(nil)

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests.",
		}, []string{"route", "method", "status"}),
		httpLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_ms",
			Help:      "HTTP request latency in milliseconds.",
			Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
		}, []string{"route"}),
		checkouts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checkouts_total",
			Help:      "Checkout attempts by outcome.",
		}, []string{"outcome"}),
		webhooks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "webhooks_total",
			Help:      "Gateway webhook deliveries by reconciliation outcome.",
		}, []string{"outcome", "duplicate"}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_transitions_total",
			Help:      "Applied order state transitions.",
		}, []string{"from", "to"}),
		invalid: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_invalid_transitions_total",
			Help:      "Refused order state transitions.",
		}, []string{"from", "to"}),
		outboxResults: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "outbox_entries_total",
			Help:      "Outbox deliveries by kind and result (done, retry, dead_lettered).",
		}, []string{"kind", "result"}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests, m.httpLatency,
		m.checkouts, m.webhooks,
		m.transitions, m.invalid,
		m.outboxResults,
	)
	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

func (m *Metrics) ObserveRequest(route, method string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	m.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.httpLatency.WithLabelValues(route).Observe(float64(elapsed.Milliseconds()))
}

func (m *Metrics) CheckoutCompleted(outcome string) {
	m.checkouts.WithLabelValues(outcome).Inc()
}

func (m *Metrics) WebhookReconciled(outcome shared.ReconcileOutcome, duplicate bool) {
	m.webhooks.WithLabelValues(string(outcome), strconv.FormatBool(duplicate)).Inc()
}

func (m *Metrics) OrderTransitioned(from, to string) {
	m.transitions.WithLabelValues(from, to).Inc()
}

func (m *Metrics) InvalidTransition(from, to string) {
	m.invalid.WithLabelValues(from, to).Inc()
}

func (m *Metrics) OutboxProcessed(kind outbox.Kind, result string) {
	m.outboxResults.WithLabelValues(string(kind), result).Inc()
}
