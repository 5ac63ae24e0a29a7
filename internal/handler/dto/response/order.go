package response

import (
	"time"

	"order-core/internal/usecase/commands"
	"order-core/internal/usecase/queries"
)

type AddressResponse struct {
	Name       string `json:"name"`
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	Region     string `json:"region,omitempty"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

type OrderItemResponse struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
	LineTotal   string `json:"line_total"`
}

type PaymentResponse struct {
	GatewayReference string `json:"gateway_reference"`
	Status           string `json:"status"`
	Amount           string `json:"amount"`
}

type OrderResponse struct {
	ID              string              `json:"id"`
	Number          string              `json:"number"`
	Status          string              `json:"status"`
	Currency        string              `json:"currency"`
	Items           []OrderItemResponse `json:"items"`
	Subtotal        string              `json:"subtotal"`
	Tax             string              `json:"tax"`
	Shipping        string              `json:"shipping"`
	Total           string              `json:"total"`
	ShippingAddress AddressResponse     `json:"shipping_address"`
	BillingAddress  AddressResponse     `json:"billing_address"`
	Payment         *PaymentResponse    `json:"payment,omitempty"`
	PaidAt          *time.Time          `json:"paid_at,omitempty"`
	ShippedAt       *time.Time          `json:"shipped_at,omitempty"`
	DeliveredAt     *time.Time          `json:"delivered_at,omitempty"`
	FailedAt        *time.Time          `json:"failed_at,omitempty"`
	CanceledAt      *time.Time          `json:"canceled_at,omitempty"`
	RefundedAt      *time.Time          `json:"refunded_at,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

func FromOrderView(v *queries.OrderView) (*OrderResponse, error) {
	res := &OrderResponse{}
	if err := copyView(res, v); err != nil {
		return nil, err
	}
	return res, nil
}

type OrderListItemResponse struct {
	ID        string    `json:"id"`
	Number    string    `json:"number"`
	Status    string    `json:"status"`
	Currency  string    `json:"currency"`
	Total     string    `json:"total"`
	CreatedAt time.Time `json:"created_at"`
}

type OrderListResponse struct {
	Items      []OrderListItemResponse `json:"items"`
	NextCursor string                  `json:"next_cursor,omitempty"`
}

func FromOrderList(items []*queries.OrderListItem, next *queries.Cursor) (*OrderListResponse, error) {
	res := &OrderListResponse{Items: make([]OrderListItemResponse, 0, len(items))}
	for _, it := range items {
		var out OrderListItemResponse
		if err := copyView(&out, it); err != nil {
			return nil, err
		}
		res.Items = append(res.Items, out)
	}
	if next != nil {
		res.NextCursor = next.After
	}
	return res, nil
}

type CheckoutPaymentResponse struct {
	GatewayReference string `json:"gateway_reference"`
	ClientSecret     string `json:"client_secret,omitempty"`
	Status           string `json:"status"`
}

type CheckoutResponse struct {
	Order    *OrderResponse           `json:"order"`
	Payment  *CheckoutPaymentResponse `json:"payment,omitempty"`
	Replayed bool                     `json:"replayed"`
}

func FromCheckoutResult(r *commands.CheckoutResult) (*CheckoutResponse, error) {
	order, err := FromOrderView(queries.ToOrderView(r.Order, r.Intent))
	if err != nil {
		return nil, err
	}
	res := &CheckoutResponse{Order: order, Replayed: r.Replayed}
	if r.Intent != nil {
		res.Payment = &CheckoutPaymentResponse{
			GatewayReference: r.Intent.GatewayReference,
			ClientSecret:     r.Intent.ClientSecret,
			Status:           string(r.Intent.Status),
		}
	}
	return res, nil
}
