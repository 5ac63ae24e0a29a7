package request

import (
	"strings"

	"order-core/internal/domain/order"

	"github.com/jinzhu/copier"
)

type AddressRequest struct {
	Name       string `json:"name" binding:"required,max=200"`
	Line1      string `json:"line1" binding:"required,max=200"`
	Line2      string `json:"line2" binding:"max=200"`
	City       string `json:"city" binding:"required,max=100"`
	Region     string `json:"region" binding:"max=100"`
	PostalCode string `json:"postal_code" binding:"required,max=20"`
	Country    string `json:"country" binding:"required,len=2"`
}

type CheckoutRequest struct {
	Currency        string          `json:"currency" binding:"omitempty,len=3"`
	ShippingAddress AddressRequest  `json:"shipping_address" binding:"required"`
	BillingAddress  *AddressRequest `json:"billing_address,omitempty"`
}

func (r AddressRequest) ToDomain() (order.Address, error) {
	var addr order.Address
	if err := copier.Copy(&addr, &r); err != nil {
		return order.Address{}, err
	}
	addr.Country = strings.ToUpper(addr.Country)
	return addr, nil
}

// Addresses returns the shipping and billing snapshots. Billing defaults to shipping.
func (r CheckoutRequest) Addresses() (shipping, billing order.Address, err error) {
	shipping, err = r.ShippingAddress.ToDomain()
	if err != nil {
		return order.Address{}, order.Address{}, err
	}
	if r.BillingAddress == nil {
		return shipping, shipping, nil
	}
	billing, err = r.BillingAddress.ToDomain()
	if err != nil {
		return order.Address{}, order.Address{}, err
	}
	return shipping, billing, nil
}

func (r CheckoutRequest) NormalizedCurrency() string {
	return strings.ToUpper(strings.TrimSpace(r.Currency))
}
