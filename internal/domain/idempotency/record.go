package idempotency

import (
	"time"

	"order-core/internal/pkg/errs"

	"github.com/google/uuid"
)

type Scope string

const (
	ScopeCheckout Scope = "checkout"
	ScopeWebhook  Scope = "webhook"
)

type Status string

const (
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
)

const MaxKeyLength = 255

// Record remembers the outcome of the first request made under a key.
type Record struct {
	Scope       Scope
	Key         string
	RequestHash string
	Status      Status
	OrderID     *uuid.UUID
	Response    []byte
	CreatedAt   time.Time
	ExpiresAt   time.Time
}

func NewRecord(scope Scope, key, requestHash string, now time.Time, ttl time.Duration) Record {
	return Record{
		Scope:       scope,
		Key:         key,
		RequestHash: requestHash,
		Status:      StatusProcessing,
		CreatedAt:   now,
		ExpiresAt:   now.Add(ttl),
	}
}

func ValidateKey(key string) error {
	if key == "" {
		return errs.ErrIdempotencyKeyRequired
	}
	if len(key) > MaxKeyLength {
		return errs.Mark(errs.Newf("idempotency key longer than %d bytes", MaxKeyLength), errs.ErrIdempotencyKeyRequired)
	}
	return nil
}

func (r Record) Expired(now time.Time) bool {
	return !r.ExpiresAt.IsZero() && !now.Before(r.ExpiresAt)
}

// Replay decides what a repeated request under the same key gets back.
// A nil error with a non-nil order id means the stored result should be returned.
func (r Record) Replay(requestHash string) (*uuid.UUID, error) {
	if r.RequestHash != requestHash {
		return nil, errs.ErrIdempotencyKeyReused
	}
	if r.Status != StatusCompleted || r.OrderID == nil {
		return nil, errs.ErrIdempotencyInProgress
	}
	id := *r.OrderID
	return &id, nil
}
