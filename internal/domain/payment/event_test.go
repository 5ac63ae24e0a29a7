//go:build unit

package payment_test

import (
	"fmt"
	"testing"
	"time"

	"order-core/internal/domain/order"
	"order-core/internal/domain/payment"
	"order-core/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTargetStatus(t *testing.T) {
	testCases := []struct {
		eventType payment.EventType
		want      order.Status
		known     bool
	}{
		{eventType: payment.EventPaymentSucceeded, want: order.StatusPaid, known: true},
		{eventType: payment.EventSessionCompleted, want: order.StatusPaid, known: true},
		{eventType: payment.EventPaymentFailed, want: order.StatusFailed, known: true},
		{eventType: payment.EventSessionExpired, want: order.StatusFailed, known: true},
		{eventType: payment.EventPaymentCanceled, want: order.StatusCanceled, known: true},
		{eventType: payment.EventChargeRefunded, want: order.StatusRefunded, known: true},
		{eventType: "customer.updated", known: false},
	}

	for _, tc := range testCases {
		t.Run(string(tc.eventType), func(t *testing.T) {
			got, ok := payment.TargetStatus(tc.eventType)
			assert.Equal(t, tc.known, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseEvent(t *testing.T) {
	orderID := uuid.New()
	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	t.Run("success: metadata carries the order", func(t *testing.T) {
		body := []byte(fmt.Sprintf(`{"id":"evt_1","type":"payment_intent.succeeded","created":1767225600,
			"data":{"object":{"id":"pi_123","metadata":{"order_id":"%s"}}}}`, orderID))
		ev, err := payment.ParseEvent(body, now)
		require.NoError(t, err)
		assert.Equal(t, "evt_1", ev.ID)
		assert.Equal(t, payment.EventPaymentSucceeded, ev.Type)
		assert.Equal(t, "pi_123", ev.GatewayReference)
		require.NotNil(t, ev.OrderID)
		assert.Equal(t, orderID, *ev.OrderID)
		assert.Equal(t, now, ev.ReceivedAt)
		assert.Equal(t, body, ev.Payload)
	})

	t.Run("success: unknown type still parses", func(t *testing.T) {
		ev, err := payment.ParseEvent([]byte(`{"id":"evt_2","type":"customer.created","data":{"object":{}}}`), now)
		require.NoError(t, err)
		assert.Nil(t, ev.OrderID)
	})

	invalid := map[string]string{
		"not json":          `{`,
		"missing id":        `{"type":"charge.refunded"}`,
		"bad order id":      `{"id":"evt_3","type":"charge.refunded","data":{"object":{"metadata":{"order_id":"nope"}}}}`,
		"empty type string": `{"id":"evt_4","type":" "}`,
	}
	for name, body := range invalid {
		t.Run("error: "+name, func(t *testing.T) {
			_, err := payment.ParseEvent([]byte(body), now)
			require.Error(t, err)
			assert.True(t, errs.Is(err, errs.ErrInvalidPayload))
		})
	}
}

func TestVerifySignature(t *testing.T) {
	secret := "whsec_test"
	body := []byte(`{"id":"evt_1"}`)
	signedAt := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	header := payment.Sign(secret, body, signedAt)

	testCases := []struct {
		name    string
		secret  string
		header  string
		body    []byte
		now     time.Time
		wantErr bool
	}{
		{name: "valid", secret: secret, header: header, body: body, now: signedAt.Add(time.Minute)},
		{name: "wrong secret", secret: "other", header: header, body: body, now: signedAt, wantErr: true},
		{name: "tampered body", secret: secret, header: header, body: []byte(`{"id":"evt_2"}`), now: signedAt, wantErr: true},
		{name: "too old", secret: secret, header: header, body: body, now: signedAt.Add(10 * time.Minute), wantErr: true},
		{name: "malformed header", secret: secret, header: "garbage", body: body, now: signedAt, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := payment.VerifySignature(tc.secret, tc.header, tc.body, tc.now, 5*time.Minute)
			if tc.wantErr {
				require.Error(t, err)
				assert.True(t, errs.Is(err, errs.ErrInvalidSignature))
				return
			}
			assert.NoError(t, err)
		})
	}
}
