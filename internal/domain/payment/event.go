package payment

import (
	"encoding/json"
	"strings"
	"time"

	"order-core/internal/domain/order"
	"order-core/internal/pkg/errs"
	"order-core/internal/pkg/ptr"

	"github.com/google/uuid"
)

type EventType string

const (
	EventPaymentSucceeded EventType = "payment_intent.succeeded"
	EventSessionCompleted EventType = "checkout.session.completed"
	EventPaymentFailed    EventType = "payment_intent.payment_failed"
	EventSessionExpired   EventType = "checkout.session.expired"
	EventPaymentCanceled  EventType = "payment_intent.canceled"
	EventChargeRefunded   EventType = "charge.refunded"
)

type mapping struct {
	target order.Status
	intent IntentStatus
}

// eventTargets is the fixed lookup from gateway vocabulary to order status.
var eventTargets = map[EventType]mapping{
	EventPaymentSucceeded: {target: order.StatusPaid, intent: IntentSucceeded},
	EventSessionCompleted: {target: order.StatusPaid, intent: IntentSucceeded},
	EventPaymentFailed:    {target: order.StatusFailed, intent: IntentFailed},
	EventSessionExpired:   {target: order.StatusFailed, intent: IntentFailed},
	EventPaymentCanceled:  {target: order.StatusCanceled, intent: IntentCanceled},
	EventChargeRefunded:   {target: order.StatusRefunded, intent: IntentRefunded},
}

// TargetStatus returns false for event types this service does not act on.
func TargetStatus(t EventType) (order.Status, bool) {
	m, ok := eventTargets[t]
	return m.target, ok
}

func IntentStatusFor(t EventType) (IntentStatus, bool) {
	m, ok := eventTargets[t]
	return m.intent, ok
}

func (t EventType) IsPaymentSuccess() bool {
	target, ok := TargetStatus(t)
	return ok && target == order.StatusPaid
}

// Event is an inbound gateway notification. It is never mutated after ingestion.
type Event struct {
	ID               string
	Type             EventType
	Payload          []byte
	GatewayReference string
	OrderID          *uuid.UUID
	CreatedAt        time.Time
	ReceivedAt       time.Time
}

type envelope struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Created int64  `json:"created"`
	Data    struct {
		Object struct {
			ID       string            `json:"id"`
			Metadata map[string]string `json:"metadata"`
		} `json:"object"`
	} `json:"data"`
}

// ParseEvent decodes the gateway envelope. The raw body is kept as the payload.
func ParseEvent(body []byte, receivedAt time.Time) (Event, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return Event{}, errs.Mark(errs.Wrap(err, "decode webhook envelope"), errs.ErrInvalidPayload)
	}
	if strings.TrimSpace(env.ID) == "" || strings.TrimSpace(env.Type) == "" {
		return Event{}, errs.Mark(errs.New("webhook envelope missing id or type"), errs.ErrInvalidPayload)
	}

	ev := Event{
		ID:               env.ID,
		Type:             EventType(env.Type),
		Payload:          append([]byte(nil), body...),
		GatewayReference: env.Data.Object.ID,
		ReceivedAt:       receivedAt,
	}
	if env.Created > 0 {
		ev.CreatedAt = time.Unix(env.Created, 0).UTC()
	}
	if raw := env.Data.Object.Metadata["order_id"]; raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return Event{}, errs.Mark(errs.Wrapf(err, "metadata.order_id %q", raw), errs.ErrInvalidPayload)
		}
		ev.OrderID = ptr.To(id)
	}
	return ev, nil
}
