package payment

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"order-core/internal/domain/money"

	"github.com/google/uuid"
)

type IntentStatus string

const (
	IntentPending   IntentStatus = "pending"
	IntentSucceeded IntentStatus = "succeeded"
	IntentFailed    IntentStatus = "failed"
	IntentCanceled  IntentStatus = "canceled"
	IntentRefunded  IntentStatus = "refunded"
)

// Intent mirrors the gateway's view of a payment. Its status is advisory; only
// reconciled webhook events move the order.
type Intent struct {
	OrderID          uuid.UUID
	GatewayReference string
	ClientSecret     string
	Amount           money.Money
	Currency         money.Currency
	Status           IntentStatus
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// IntentIdempotencyKey is stable per (owner, order) so a retried create never opens a second intent.
func IntentIdempotencyKey(owner string, orderID uuid.UUID) string {
	sum := sha256.Sum256([]byte(owner + ":" + orderID.String()))
	return hex.EncodeToString(sum[:])
}

func RefundIdempotencyKey(orderID uuid.UUID) string {
	return "refund:" + orderID.String()
}
