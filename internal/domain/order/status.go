package order

import (
	"order-core/internal/pkg/errs"
)

type Status string

const (
	StatusPendingPayment Status = "pending_payment"
	StatusPaid           Status = "paid"
	StatusShipped        Status = "shipped"
	StatusDelivered      Status = "delivered"
	StatusFailed         Status = "failed"
	StatusCanceled       Status = "canceled"
	StatusRefunded       Status = "refunded"
)

// transitions is the single authority on which status changes are legal.
// A status missing from the map is terminal.
var transitions = map[Status][]Status{
	StatusPendingPayment: {StatusPaid, StatusFailed, StatusCanceled},
	StatusPaid:           {StatusShipped, StatusCanceled, StatusRefunded},
	StatusShipped:        {StatusDelivered},
}

var allStatuses = []Status{
	StatusPendingPayment,
	StatusPaid,
	StatusShipped,
	StatusDelivered,
	StatusFailed,
	StatusCanceled,
	StatusRefunded,
}

func AllStatuses() []Status {
	return append([]Status(nil), allStatuses...)
}

func ParseStatus(s string) (Status, error) {
	for _, st := range allStatuses {
		if string(st) == s {
			return st, nil
		}
	}
	return "", errs.Newf("unknown order status %q", s)
}

func (s Status) String() string { return string(s) }

func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

func (s Status) IsTerminal() bool {
	return len(transitions[s]) == 0
}

type Effect string

const (
	// EffectCommitReservation turns held stock into sold stock.
	EffectCommitReservation Effect = "commit_reservation"
	// EffectReleaseReservation returns held stock to available stock.
	EffectReleaseReservation Effect = "release_reservation"
	// EffectRestock returns sold stock to available stock (queued).
	EffectRestock Effect = "restock"
	// EffectRefund asks the gateway to return the captured payment (queued).
	EffectRefund Effect = "refund"
)

// EffectsFor lists the side effects a legal transition from -> to requires.
func EffectsFor(from, to Status) []Effect {
	switch {
	case to == StatusPaid:
		return []Effect{EffectCommitReservation}
	case from == StatusPendingPayment && (to == StatusFailed || to == StatusCanceled):
		return []Effect{EffectReleaseReservation}
	case from == StatusPaid && (to == StatusCanceled || to == StatusRefunded):
		return []Effect{EffectRestock, EffectRefund}
	default:
		return nil
	}
}
