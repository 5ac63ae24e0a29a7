package shared

import (
	"context"
	"time"

	"order-core/internal/domain/cart"
	"order-core/internal/domain/money"
	"order-core/internal/domain/outbox"

	"github.com/google/uuid"
)

type CreateIntentRequest struct {
	OrderID        uuid.UUID
	OrderNumber    string
	Amount         money.Money
	Currency       money.Currency
	IdempotencyKey string
}

type CreateIntentResult struct {
	GatewayReference string
	ClientSecret     string
}

type RefundRequest struct {
	OrderID          uuid.UUID
	GatewayReference string
	Amount           money.Money
	Currency         money.Currency
	IdempotencyKey   string
	Reason           string
}

// PaymentGateway fails with errs.ErrGatewayUnavailable (timeouts, transport, 5xx, open breaker)
// or errs.ErrGatewayRejected (4xx).
type PaymentGateway interface {
	CreateIntent(ctx context.Context, req CreateIntentRequest) (CreateIntentResult, error)
	Refund(ctx context.Context, req RefundRequest) error
}

type CartProvider interface {
	Snapshot(ctx context.Context, owner cart.Owner) (cart.Snapshot, error)
}

// Notifier delivers order events to downstream consumers. Failures are retried by the outbox.
type Notifier interface {
	Notify(ctx context.Context, n outbox.NotificationPayload) error
}

type ExpiryScheduler interface {
	Schedule(orderID uuid.UUID, at time.Time)
	Cancel(orderID uuid.UUID)
}

type Metrics interface {
	CheckoutCompleted(outcome string)
	WebhookReconciled(outcome ReconcileOutcome, duplicate bool)
	OrderTransitioned(from, to string)
	InvalidTransition(from, to string)
	OutboxProcessed(kind outbox.Kind, result string)
}

type NopMetrics struct{}

func (NopMetrics) CheckoutCompleted(string)                 {}
func (NopMetrics) WebhookReconciled(ReconcileOutcome, bool) {}
func (NopMetrics) OrderTransitioned(string, string)         {}
func (NopMetrics) InvalidTransition(string, string)         {}
func (NopMetrics) OutboxProcessed(outbox.Kind, string)      {}
