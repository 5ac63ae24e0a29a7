package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type OrderView struct {
	ID              uuid.UUID       `json:"id"`
	Number          string          `json:"number"`
	Owner           string          `json:"owner"`
	Status          string          `json:"status"`
	Currency        string          `json:"currency"`
	Items           []OrderItemView `json:"items"`
	Subtotal        string          `json:"subtotal"`
	Tax             string          `json:"tax"`
	Shipping        string          `json:"shipping"`
	Total           string          `json:"total"`
	ShippingAddress AddressView     `json:"shipping_address"`
	BillingAddress  AddressView     `json:"billing_address"`
	Payment         *PaymentView    `json:"payment,omitempty"`
	PaidAt          *time.Time      `json:"paid_at,omitempty"`
	ShippedAt       *time.Time      `json:"shipped_at,omitempty"`
	DeliveredAt     *time.Time      `json:"delivered_at,omitempty"`
	FailedAt        *time.Time      `json:"failed_at,omitempty"`
	CanceledAt      *time.Time      `json:"canceled_at,omitempty"`
	RefundedAt      *time.Time      `json:"refunded_at,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

type OrderItemView struct {
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	Quantity    int       `json:"quantity"`
	UnitPrice   string    `json:"unit_price"`
	LineTotal   string    `json:"line_total"`
}

type AddressView struct {
	Name       string `json:"name"`
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	Region     string `json:"region,omitempty"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

type PaymentView struct {
	GatewayReference string `json:"gateway_reference"`
	Status           string `json:"status"`
	Amount           string `json:"amount"`
}

type OrderListItem struct {
	ID        uuid.UUID `json:"id"`
	Number    string    `json:"number"`
	Status    string    `json:"status"`
	Currency  string    `json:"currency"`
	Total     string    `json:"total"`
	CreatedAt time.Time `json:"created_at"`
}

type OutboxEntryView struct {
	ID            uuid.UUID `json:"id"`
	Kind          string    `json:"kind"`
	DedupKey      string    `json:"dedup_key"`
	Status        string    `json:"status"`
	Attempts      int       `json:"attempts"`
	LastError     string    `json:"last_error,omitempty"`
	NextAttemptAt time.Time `json:"next_attempt_at"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type StockView struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	Available int       `json:"available"`
	Reserved  int       `json:"reserved"`
	Sold      int       `json:"sold"`
}

type Cursor struct {
	After string `json:"after,omitempty"`
}
