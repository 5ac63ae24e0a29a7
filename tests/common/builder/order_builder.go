//go:build unit || e2e

package builder

import (
	"time"

	"order-core/internal/domain/cart"
	"order-core/internal/domain/money"
	"order-core/internal/domain/order"
	"order-core/internal/domain/payment"

	"github.com/google/uuid"
)

type OrderBuilder struct {
	ID        uuid.UUID
	Owner     cart.Owner
	Currency  money.Currency
	Items     []order.Item
	Shipping  order.Address
	CreatedAt time.Time
}

func NewOrderBuilder() *OrderBuilder {
	return &OrderBuilder{
		ID:       uuid.New(),
		Owner:    cart.UserOwner(uuid.New()),
		Currency: money.USD,
		Items: []order.Item{{
			ProductID:   uuid.New(),
			ProductName: "widget",
			Quantity:    2,
			UnitPrice:   money.MustNew(1250),
		}},
		Shipping:  TestAddress(),
		CreatedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (b *OrderBuilder) With(mutate func(*OrderBuilder)) *OrderBuilder {
	mutate(b)
	return b
}

func (b *OrderBuilder) WithOwner(owner cart.Owner) *OrderBuilder {
	b.Owner = owner
	return b
}

// Build methods
func (b *OrderBuilder) Build() (*order.Order, error) {
	subtotal := money.Zero()
	for _, it := range b.Items {
		subtotal = subtotal.Add(it.LineTotal())
	}
	return order.NewOrder(order.NewOrderParams{
		ID:       b.ID,
		Owner:    b.Owner,
		Currency: b.Currency,
		Items:    b.Items,
		Shipping: b.Shipping,
		Billing:  b.Shipping,
		Totals:   order.NewTotals(subtotal, money.Zero(), money.Zero()),
	}, b.CreatedAt)
}

func (b *OrderBuilder) BuildIntent(o *order.Order) *payment.Intent {
	return &payment.Intent{
		OrderID:          o.ID(),
		GatewayReference: "pi_" + o.ID().String(),
		ClientSecret:     "pi_secret_" + o.ID().String()[:8],
		Amount:           o.Totals().Total,
		Currency:         o.Currency(),
		Status:           payment.IntentPending,
		CreatedAt:        b.CreatedAt,
		UpdatedAt:        b.CreatedAt,
	}
}
