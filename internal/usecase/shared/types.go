package shared

import (
	"time"

	"order-core/internal/domain/order"

	"github.com/google/uuid"
)

// OrderFilter pages newest first. After* is the keyset position of the last row seen.
type OrderFilter struct {
	Status         *order.Status
	AfterCreatedAt *time.Time
	AfterID        uuid.UUID
	Limit          int
}

const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

func (f OrderFilter) Normalize() OrderFilter {
	if f.Limit <= 0 {
		f.Limit = DefaultListLimit
	}
	if f.Limit > MaxListLimit {
		f.Limit = MaxListLimit
	}
	return f
}

// ReconcileOutcome is what happened to one webhook event.
type ReconcileOutcome string

const (
	OutcomeApplied   ReconcileOutcome = "applied"
	OutcomeRejected  ReconcileOutcome = "rejected"
	OutcomeIgnored   ReconcileOutcome = "ignored"
	OutcomeUnmatched ReconcileOutcome = "unmatched"
)

// Trigger describes who asked for a transition.
type Trigger struct {
	Source  TriggerSource
	EventID string
	Reason  string
}

type TriggerSource string

const (
	SourceGateway  TriggerSource = "gateway"
	SourceOperator TriggerSource = "operator"
	SourceCustomer TriggerSource = "customer"
	SourceSystem   TriggerSource = "system"
)

const (
	ReasonGatewayError       = "gateway_error"
	ReasonReservationExpired = "reservation_expired"
	ReasonLatePayment        = "late_payment"
)
