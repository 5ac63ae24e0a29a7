//go:build unit

package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"order-core/internal/domain/outbox"
	"order-core/internal/infra/metrics"
	"order-core/internal/usecase/shared"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	m := metrics.New()

	m.CheckoutCompleted("created")
	m.CheckoutCompleted("created")
	m.CheckoutCompleted("out_of_stock")
	m.WebhookReconciled(shared.OutcomeApplied, false)
	m.WebhookReconciled(shared.OutcomeApplied, true)
	m.OrderTransitioned("pending_payment", "paid")
	m.InvalidTransition("paid", "failed")
	m.OutboxProcessed(outbox.KindRefund, "dead_lettered")
	m.ObserveRequest("/api/checkout", http.MethodPost, http.StatusCreated, 12*time.Millisecond)

	assert.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(`
# HELP order_core_checkouts_total Checkout attempts by outcome.
# TYPE order_core_checkouts_total counter
order_core_checkouts_total{outcome="created"} 2
order_core_checkouts_total{outcome="out_of_stock"} 1
`), "order_core_checkouts_total"))

	assert.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(`
# HELP order_core_webhooks_total Gateway webhook deliveries by reconciliation outcome.
# TYPE order_core_webhooks_total counter
order_core_webhooks_total{duplicate="false",outcome="applied"} 1
order_core_webhooks_total{duplicate="true",outcome="applied"} 1
`), "order_core_webhooks_total"))

	count, err := testutil.GatherAndCount(m.Registry(),
		"order_core_order_transitions_total",
		"order_core_order_invalid_transitions_total",
		"order_core_outbox_entries_total",
		"order_core_http_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 4, count)
}

func TestMetrics_Handler(t *testing.T) {
	m := metrics.New()
	m.OrderTransitioned("paid", "shipped")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `order_core_order_transitions_total{from="paid",to="shipped"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}
