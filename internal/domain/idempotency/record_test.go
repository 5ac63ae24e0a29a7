//go:build unit

package idempotency_test

import (
	"strings"
	"testing"
	"time"

	"order-core/internal/domain/idempotency"
	"order-core/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord_Replay(t *testing.T) {
	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	orderID := uuid.New()

	completed := idempotency.NewRecord(idempotency.ScopeCheckout, "k1", "hash-a", now, time.Hour)
	completed.Status = idempotency.StatusCompleted
	completed.OrderID = &orderID

	processing := idempotency.NewRecord(idempotency.ScopeCheckout, "k2", "hash-a", now, time.Hour)

	testCases := []struct {
		name          string
		record        idempotency.Record
		hash          string
		expectedError error
	}{
		{name: "success: same request replays", record: completed, hash: "hash-a"},
		{name: "error: different request under same key", record: completed, hash: "hash-b", expectedError: errs.ErrIdempotencyKeyReused},
		{name: "error: first request still running", record: processing, hash: "hash-a", expectedError: errs.ErrIdempotencyInProgress},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.record.Replay(tc.hash)
			if tc.expectedError != nil {
				require.Error(t, err)
				assert.True(t, errs.Is(err, tc.expectedError))
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, orderID, *got)
		})
	}
}

func TestValidateKey(t *testing.T) {
	assert.True(t, errs.Is(idempotency.ValidateKey(""), errs.ErrIdempotencyKeyRequired))
	assert.Error(t, idempotency.ValidateKey(strings.Repeat("k", idempotency.MaxKeyLength+1)))
	assert.NoError(t, idempotency.ValidateKey("checkout-7f3c"))
}

func TestRecord_Expired(t *testing.T) {
	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	r := idempotency.NewRecord(idempotency.ScopeWebhook, "evt_1", "", now, time.Minute)
	assert.False(t, r.Expired(now))
	assert.True(t, r.Expired(now.Add(time.Minute)))
}
