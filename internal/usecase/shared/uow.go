package shared

import (
	"context"
	"time"

	"order-core/internal/domain/cart"
	"order-core/internal/domain/idempotency"
	"order-core/internal/domain/inventory"
	"order-core/internal/domain/order"
	"order-core/internal/domain/outbox"
	"order-core/internal/domain/payment"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: full read-write transaction, retried on serialization failures
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// ReadOnly: consistent snapshot for multi-table reads
	ReadOnly(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

// Tx hands out repositories bound to one transaction. Everything written through
// them commits or rolls back together.
type Tx interface {
	Orders() OrderRepository
	Inventory() InventoryRepository
	PaymentIntents() PaymentIntentRepository
	Idempotency() IdempotencyRepository
	WebhookEvents() WebhookEventRepository
	Outbox() OutboxRepository
}

type OrderRepository interface {
	Create(ctx context.Context, o *order.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error)
	// FindByIDForUpdate locks the row until the transaction ends.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*order.Order, error)
	// UpdateStatus persists o's status and timestamps only if the stored status is still from.
	UpdateStatus(ctx context.Context, o *order.Order, from order.Status) error
	ListByOwner(ctx context.Context, owner cart.Owner, filter OrderFilter) ([]*order.Order, error)
}

type InventoryRepository interface {
	// Reserve decrements available stock for every line or for none. Lines must be normalized.
	Reserve(ctx context.Context, orderID uuid.UUID, lines []inventory.Line, expiresAt time.Time) (inventory.Result, error)
	// Commit moves reserved rows of the order to committed and returns how many moved.
	Commit(ctx context.Context, orderID uuid.UUID) (int, error)
	// Release moves reserved rows to to (released or expired) and returns how many moved.
	Release(ctx context.Context, orderID uuid.UUID, to inventory.Status) (int, error)
	// Restock moves committed rows back to available stock and returns how many moved.
	Restock(ctx context.Context, orderID uuid.UUID) (int, error)
	ReservationsByOrder(ctx context.Context, orderID uuid.UUID) ([]inventory.Reservation, error)
	// ExpiredOrders lists orders holding reserved rows whose expiry is at or before now.
	ExpiredOrders(ctx context.Context, now time.Time, limit int) ([]uuid.UUID, error)
	UpsertStock(ctx context.Context, productID uuid.UUID, name string, available int) (inventory.Stock, error)
	Stock(ctx context.Context, productID uuid.UUID) (inventory.Stock, error)
	ListStock(ctx context.Context) ([]inventory.Stock, error)
}

type PaymentIntentRepository interface {
	Create(ctx context.Context, in payment.Intent) error
	FindByOrderID(ctx context.Context, orderID uuid.UUID) (*payment.Intent, error)
	FindByGatewayReference(ctx context.Context, ref string) (*payment.Intent, error)
	UpdateStatus(ctx context.Context, orderID uuid.UUID, status payment.IntentStatus, at time.Time) error
}

type IdempotencyRepository interface {
	// TryInsert returns false when a record for (scope, key) already exists.
	TryInsert(ctx context.Context, rec idempotency.Record) (bool, error)
	// Get returns nil when no record exists.
	Get(ctx context.Context, scope idempotency.Scope, key string) (*idempotency.Record, error)
	Complete(ctx context.Context, scope idempotency.Scope, key string, orderID *uuid.UUID, response []byte) error
	DeleteExpired(ctx context.Context, scope idempotency.Scope, now time.Time) (int64, error)
}

type WebhookEventRepository interface {
	// Insert returns false when the event id was already recorded.
	Insert(ctx context.Context, ev payment.Event) (bool, error)
	SetOutcome(ctx context.Context, eventID string, outcome ReconcileOutcome, orderID *uuid.UUID) error
}

type OutboxRepository interface {
	// Enqueue returns false when an entry with the same dedup key already exists.
	Enqueue(ctx context.Context, e outbox.Entry) (bool, error)
	// ClaimDue leases up to limit due entries, including processing entries whose lease ran out.
	ClaimDue(ctx context.Context, now time.Time, limit int, leaseUntil time.Time) ([]outbox.Entry, error)
	MarkDone(ctx context.Context, id uuid.UUID, now time.Time) error
	MarkRetry(ctx context.Context, id uuid.UUID, attempts int, next time.Time, lastErr string, now time.Time) error
	MarkDeadLettered(ctx context.Context, id uuid.UUID, attempts int, lastErr string, now time.Time) error
	ListDeadLettered(ctx context.Context, limit int) ([]outbox.Entry, error)
	// Requeue resets a dead-lettered entry to pending with zero attempts.
	Requeue(ctx context.Context, id uuid.UUID, now time.Time) error
}
