package outbox

import (
	"encoding/json"
	"time"

	"order-core/internal/domain/money"
	"order-core/internal/pkg/errs"

	"github.com/google/uuid"
)

type Kind string

const (
	KindRestock      Kind = "inventory.restock"
	KindRefund       Kind = "payment.refund"
	KindNotification Kind = "notification.dispatch"
)

func (k Kind) Valid() bool {
	switch k {
	case KindRestock, KindRefund, KindNotification:
		return true
	}
	return false
}

type Status string

const (
	StatusPending      Status = "pending"
	StatusProcessing   Status = "processing"
	StatusDone         Status = "done"
	StatusDeadLettered Status = "dead_lettered"
)

// Entry is a durable side effect queued in the same transaction as the state change
// that required it.
type Entry struct {
	ID            uuid.UUID
	Kind          Kind
	DedupKey      string
	Payload       []byte
	Status        Status
	Attempts      int
	NextAttemptAt time.Time
	LeaseUntil    *time.Time
	LastError     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewEntry encodes payload as JSON. dedupKey collapses repeated enqueues of the same effect.
func NewEntry(kind Kind, dedupKey string, payload any, now time.Time) (Entry, error) {
	if !kind.Valid() {
		return Entry{}, errs.Mark(errs.Newf("kind %q", kind), errs.ErrUnknownOutboxKind)
	}
	if dedupKey == "" {
		return Entry{}, errs.New("outbox entry needs a dedup key")
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return Entry{}, errs.Wrapf(err, "encode %s payload", kind)
	}
	return Entry{
		ID:            uuid.New(),
		Kind:          kind,
		DedupKey:      dedupKey,
		Payload:       raw,
		Status:        StatusPending,
		NextAttemptAt: now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

func (e Entry) Decode(v any) error {
	if err := json.Unmarshal(e.Payload, v); err != nil {
		return errs.Mark(errs.Wrapf(err, "decode %s payload of entry %s", e.Kind, e.ID), errs.ErrInvalidOutboxPayload)
	}
	return nil
}

type RestockPayload struct {
	OrderID uuid.UUID `json:"order_id"`
	Reason  string    `json:"reason"`
}

type RefundPayload struct {
	OrderID          uuid.UUID      `json:"order_id"`
	GatewayReference string         `json:"gateway_reference,omitempty"`
	AmountMinor      int64          `json:"amount_minor"`
	Currency         money.Currency `json:"currency"`
	Reason           string         `json:"reason"`
}

type NotificationPayload struct {
	OrderID     uuid.UUID `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	Owner       string    `json:"owner"`
	From        string    `json:"from"`
	To          string    `json:"to"`
	Reason      string    `json:"reason,omitempty"`
	At          time.Time `json:"at"`
}

func RestockDedupKey(orderID uuid.UUID) string { return "restock:" + orderID.String() }

func RefundDedupKey(orderID uuid.UUID) string { return "refund:" + orderID.String() }

func NotificationDedupKey(orderID uuid.UUID, to string) string {
	return "notify:" + orderID.String() + ":" + to
}
