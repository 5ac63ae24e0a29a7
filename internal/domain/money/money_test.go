//go:build unit

package money_test

import (
	"testing"

	"order-core/internal/domain/money"
	"order-core/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name      string
		input     string
		wantMinor int64
		wantErr   bool
	}{
		{name: "whole amount", input: "12", wantMinor: 1200},
		{name: "two decimals", input: "19.99", wantMinor: 1999},
		{name: "rounds half up", input: "0.005", wantMinor: 1},
		{name: "rounds down below half", input: "0.004", wantMinor: 0},
		{name: "negative rejected", input: "-1.00", wantErr: true},
		{name: "garbage rejected", input: "abc", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m, err := money.Parse(tc.input)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantMinor, m.Minor())
		})
	}
}

func TestMoney_Arithmetic(t *testing.T) {
	price := money.MustNew(1999)

	assert.Equal(t, int64(5997), price.Mul(3).Minor())
	assert.Equal(t, "59.97", price.Mul(3).String())
	assert.Equal(t, int64(2499), price.Add(money.MustNew(500)).Minor())
	assert.Equal(t, int64(200), price.BasisPoints(1000).Minor(), "10% of 19.99 rounds half up to 2.00")
	assert.True(t, money.Sum(price, price).Decimal().Equal(decimal.RequireFromString("39.98")))
}

func TestParseCurrency(t *testing.T) {
	c, err := money.ParseCurrency(" eur ")
	require.NoError(t, err)
	assert.Equal(t, money.EUR, c)

	_, err = money.ParseCurrency("JPY")
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.ErrUnsupportedCurrency))
}
