package money

import (
	"strings"

	"order-core/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// All supported currencies use two minor digits.
const minorDigits = 2

type Currency string

const (
	USD Currency = "USD"
	EUR Currency = "EUR"
	GBP Currency = "GBP"
)

func ParseCurrency(s string) (Currency, error) {
	c := Currency(strings.ToUpper(strings.TrimSpace(s)))
	switch c {
	case USD, EUR, GBP:
		return c, nil
	default:
		return "", errs.Mark(errs.Newf("unsupported currency %q", s), errs.ErrUnsupportedCurrency)
	}
}

func (c Currency) String() string { return string(c) }

// Money is a non-negative amount in minor units. It never goes through floating point.
type Money struct {
	minor int64
}

func New(minor int64) (Money, error) {
	if minor < 0 {
		return Money{}, errs.Newf("money cannot be negative: %d", minor)
	}
	return Money{minor: minor}, nil
}

// MustNew is for constants and tests.
func MustNew(minor int64) Money {
	m, err := New(minor)
	if err != nil {
		panic(err)
	}
	return m
}

func Zero() Money { return Money{} }

// FromDecimal rounds half away from zero to two places, matching how amounts are displayed.
func FromDecimal(d decimal.Decimal) (Money, error) {
	if d.IsNegative() {
		return Money{}, errs.Newf("money cannot be negative: %s", d.String())
	}
	return Money{minor: d.Round(minorDigits).Shift(minorDigits).IntPart()}, nil
}

func Parse(s string) (Money, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return Money{}, errs.Wrapf(err, "parse money %q", s)
	}
	return FromDecimal(d)
}

func (m Money) Minor() int64 { return m.minor }

func (m Money) Decimal() decimal.Decimal {
	return decimal.New(m.minor, -minorDigits)
}

func (m Money) String() string {
	return m.Decimal().StringFixed(minorDigits)
}

func (m Money) Add(other Money) Money {
	return Money{minor: m.minor + other.minor}
}

func (m Money) Mul(qty int64) Money {
	return Money{minor: m.minor * qty}
}

// BasisPoints returns m * bps / 10000 rounded half up.
func (m Money) BasisPoints(bps int64) Money {
	if bps <= 0 {
		return Money{}
	}
	return Money{minor: (m.minor*bps + 5000) / 10000}
}

func (m Money) IsZero() bool { return m.minor == 0 }

func (m Money) GreaterOrEqual(other Money) bool { return m.minor >= other.minor }

func Sum(ms ...Money) Money {
	var total int64
	for _, m := range ms {
		total += m.minor
	}
	return Money{minor: total}
}
