package order

import (
	"order-core/internal/domain/money"
	"order-core/internal/pkg/errs"

	"github.com/google/uuid"
)

type PricedLine struct {
	ProductID uuid.UUID
	Quantity  int
	UnitPrice money.Money
}

type PricingInput struct {
	Currency money.Currency
	Lines    []PricedLine
	Shipping Address
	Billing  Address
}

type Totals struct {
	Subtotal money.Money
	Tax      money.Money
	Shipping money.Money
	Total    money.Money
}

func NewTotals(subtotal, tax, shipping money.Money) Totals {
	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Shipping: shipping,
		Total:    money.Sum(subtotal, tax, shipping),
	}
}

func (t Totals) Consistent() bool {
	return t.Total.Minor() == t.Subtotal.Minor()+t.Tax.Minor()+t.Shipping.Minor()
}

// PricingCalculator is a pure function of its input.
type PricingCalculator interface {
	ComputeTotals(in PricingInput) (Totals, error)
}

// FlatRateCalculator charges a single tax rate and a flat shipping fee waived above a threshold.
type FlatRateCalculator struct {
	TaxRateBasisPoints    int64
	FlatShipping          money.Money
	FreeShippingThreshold money.Money
}

func (c *FlatRateCalculator) ComputeTotals(in PricingInput) (Totals, error) {
	if len(in.Lines) == 0 {
		return Totals{}, errs.ErrEmptyCart
	}

	subtotal := money.Zero()
	for _, l := range in.Lines {
		if l.Quantity <= 0 {
			return Totals{}, errs.Mark(errs.Newf("product %s: quantity %d", l.ProductID, l.Quantity), errs.ErrInvalidCart)
		}
		subtotal = subtotal.Add(l.UnitPrice.Mul(int64(l.Quantity)))
	}

	shipping := c.FlatShipping
	if !c.FreeShippingThreshold.IsZero() && subtotal.GreaterOrEqual(c.FreeShippingThreshold) {
		shipping = money.Zero()
	}

	return NewTotals(subtotal, subtotal.BasisPoints(c.TaxRateBasisPoints), shipping), nil
}
