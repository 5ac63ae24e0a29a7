//go:build unit || e2e

package builder

import (
	"time"

	"order-core/internal/domain/cart"
	"order-core/internal/domain/money"
	"order-core/internal/domain/order"
	reqdto "order-core/internal/handler/dto/request"
	"order-core/internal/usecase/commands"

	"github.com/google/uuid"
)

type CheckoutBuilder struct {
	Owner          cart.Owner
	Lines          []cart.Line
	IdempotencyKey string
	Shipping       order.Address
	Billing        order.Address
	Currency       string
	TakenAt        time.Time
}

func NewCheckoutBuilder() *CheckoutBuilder {
	return &CheckoutBuilder{
		Owner:          cart.UserOwner(uuid.New()),
		IdempotencyKey: uuid.NewString(),
		Shipping:       TestAddress(),
		Billing:        TestAddress(),
		Currency:       "USD",
		TakenAt:        time.Now().UTC(),
	}
}

func TestAddress() order.Address {
	return order.Address{
		Name:       "Ada Lovelace",
		Line1:      "1 Main St",
		City:       "Springfield",
		PostalCode: "12345",
		Country:    "US",
	}
}

func (b *CheckoutBuilder) With(mutate func(*CheckoutBuilder)) *CheckoutBuilder {
	mutate(b)
	return b
}

func (b *CheckoutBuilder) WithLine(productID uuid.UUID, quantity int, unitPriceMinor int64) *CheckoutBuilder {
	b.Lines = append(b.Lines, cart.Line{
		ProductID: productID,
		Quantity:  quantity,
		UnitPrice: money.MustNew(unitPriceMinor),
	})
	return b
}

func (b *CheckoutBuilder) WithOwner(owner cart.Owner) *CheckoutBuilder {
	b.Owner = owner
	return b
}

func (b *CheckoutBuilder) WithKey(key string) *CheckoutBuilder {
	b.IdempotencyKey = key
	return b
}

// Build methods
func (b *CheckoutBuilder) BuildSnapshot() (cart.Snapshot, error) {
	return cart.NewSnapshot(b.Owner, b.Lines, b.TakenAt)
}

func (b *CheckoutBuilder) BuildRequest() commands.CheckoutRequest {
	return commands.CheckoutRequest{
		Owner:          b.Owner,
		IdempotencyKey: b.IdempotencyKey,
		Shipping:       b.Shipping,
		Billing:        b.Billing,
		Currency:       b.Currency,
	}
}

func (b *CheckoutBuilder) BuildRequestDTO() reqdto.CheckoutRequest {
	return reqdto.CheckoutRequest{
		Currency:        b.Currency,
		ShippingAddress: addressDTO(b.Shipping),
	}
}

func addressDTO(a order.Address) reqdto.AddressRequest {
	return reqdto.AddressRequest{
		Name:       a.Name,
		Line1:      a.Line1,
		Line2:      a.Line2,
		City:       a.City,
		Region:     a.Region,
		PostalCode: a.PostalCode,
		Country:    a.Country,
	}
}
