package errs

import "errors"

// Sentinel errors shared by the domain, usecase and handler layers.
// Concrete errors carry detail and are marked with one of these.
var (
	// Checkout errors
	ErrEmptyCart           = errors.New("empty cart")
	ErrInvalidCart         = errors.New("invalid cart")
	ErrInvalidAddress      = errors.New("invalid address")
	ErrUnsupportedCurrency = errors.New("unsupported currency")
	ErrOutOfStock          = errors.New("out of stock")

	// Idempotency errors
	ErrIdempotencyKeyRequired = errors.New("idempotency key required")
	ErrIdempotencyInProgress  = errors.New("idempotency in progress")
	ErrIdempotencyKeyReused   = errors.New("idempotency key reused with a different request")

	// Order lifecycle errors
	ErrOrderNotFound      = errors.New("order not found")
	ErrInvalidTransition  = errors.New("invalid transition")
	ErrReservationExpired = errors.New("reservation expired")
	ErrProductNotFound    = errors.New("product not found")

	// Gateway errors
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")
	ErrGatewayRejected    = errors.New("payment gateway rejected the request")

	// Webhook errors
	ErrInvalidSignature = errors.New("invalid webhook signature")
	ErrInvalidPayload   = errors.New("invalid webhook payload")

	// Outbox errors
	ErrDeadLettered         = errors.New("outbox entry dead-lettered")
	ErrOutboxEntryNotFound  = errors.New("outbox entry not found")
	ErrUnknownOutboxKind    = errors.New("unknown outbox entry kind")
	ErrInvalidOutboxPayload = errors.New("invalid outbox entry payload")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
