//go:build unit

package order_test

import (
	"testing"
	"time"

	"order-core/internal/domain/cart"
	"order-core/internal/domain/money"
	"order-core/internal/domain/order"
	"order-core/internal/pkg/errs"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testNow     = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	testAddress = order.Address{
		Name:       "Ada Lovelace",
		Line1:      "12 Analytical St",
		City:       "London",
		PostalCode: "N1 9GU",
		Country:    "GB",
	}
)

func newPendingOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(order.NewOrderParams{
		Owner:    cart.UserOwner(uuid.New()),
		Currency: money.USD,
		Items: []order.Item{
			{ProductID: uuid.New(), ProductName: "Widget", Quantity: 2, UnitPrice: money.MustNew(1500)},
		},
		Shipping: testAddress,
		Billing:  testAddress,
		Totals:   order.NewTotals(money.MustNew(3000), money.MustNew(300), money.MustNew(500)),
	}, testNow)
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	base := order.NewOrderParams{
		Owner:    cart.UserOwner(uuid.New()),
		Currency: money.USD,
		Items:    []order.Item{{ProductID: uuid.New(), ProductName: "Widget", Quantity: 1, UnitPrice: money.MustNew(100)}},
		Shipping: testAddress,
		Billing:  testAddress,
		Totals:   order.NewTotals(money.MustNew(100), money.Zero(), money.Zero()),
	}

	testCases := []struct {
		name    string
		mutate  func(p *order.NewOrderParams)
		wantErr error
	}{
		{name: "success", mutate: func(*order.NewOrderParams) {}},
		{name: "error: no items", mutate: func(p *order.NewOrderParams) { p.Items = nil }, wantErr: errs.ErrEmptyCart},
		{name: "error: invalid shipping address", mutate: func(p *order.NewOrderParams) { p.Shipping.Line1 = "" }, wantErr: errs.ErrInvalidAddress},
		{name: "error: invalid billing country", mutate: func(p *order.NewOrderParams) { p.Billing.Country = "GBR" }, wantErr: errs.ErrInvalidAddress},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := base
			tc.mutate(&p)
			o, err := order.NewOrder(p, testNow)
			if tc.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errs.Is(err, tc.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, order.StatusPendingPayment, o.Status())
			assert.Regexp(t, `^ORD-[0-9A-Z]{26}$`, o.Number())
			assert.Empty(t, cmp.Diff(order.Timestamps{}, o.Timestamps()))
		})
	}

	t.Run("error: inconsistent totals", func(t *testing.T) {
		p := base
		p.Totals = order.Totals{Subtotal: money.MustNew(100), Total: money.MustNew(99)}
		_, err := order.NewOrder(p, testNow)
		require.Error(t, err)
	})
}

func TestStatus_TransitionTableCompleteness(t *testing.T) {
	allowed := map[order.Status][]order.Status{
		order.StatusPendingPayment: {order.StatusPaid, order.StatusFailed, order.StatusCanceled},
		order.StatusPaid:           {order.StatusShipped, order.StatusCanceled, order.StatusRefunded},
		order.StatusShipped:        {order.StatusDelivered},
	}

	for _, from := range order.AllStatuses() {
		for _, to := range order.AllStatuses() {
			want := false
			for _, a := range allowed[from] {
				if a == to {
					want = true
				}
			}
			assert.Equal(t, want, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}

	for _, terminal := range []order.Status{order.StatusDelivered, order.StatusFailed, order.StatusCanceled, order.StatusRefunded} {
		assert.True(t, terminal.IsTerminal(), terminal)
	}
	assert.False(t, order.StatusPendingPayment.IsTerminal())
}

func TestOrder_Transition(t *testing.T) {
	t.Run("invalid transition leaves the order unchanged", func(t *testing.T) {
		o := newPendingOrder(t)
		_, err := o.Transition(order.StatusShipped, testNow)
		require.Error(t, err)
		assert.True(t, errs.Is(err, errs.ErrInvalidTransition))

		var ite *order.InvalidTransitionError
		require.ErrorAs(t, err, &ite)
		assert.Equal(t, order.StatusPendingPayment, ite.From)
		assert.Equal(t, order.StatusShipped, ite.To)
		assert.Equal(t, order.StatusPendingPayment, o.Status())
		assert.Equal(t, testNow, o.UpdatedAt())
	})

	t.Run("paid sets paid_at once and commits the reservation", func(t *testing.T) {
		o := newPendingOrder(t)
		paidAt := testNow.Add(time.Minute)

		tr, err := o.Transition(order.StatusPaid, paidAt)
		require.NoError(t, err)
		assert.Equal(t, []order.Effect{order.EffectCommitReservation}, tr.Effects)
		require.NotNil(t, o.Timestamps().PaidAt)
		assert.Equal(t, paidAt, *o.Timestamps().PaidAt)

		_, err = o.Transition(order.StatusPaid, paidAt.Add(time.Hour))
		require.Error(t, err, "re-entering paid is not in the table")
		assert.Equal(t, paidAt, *o.Timestamps().PaidAt)
	})

	t.Run("effects per transition", func(t *testing.T) {
		testCases := []struct {
			path []order.Status
			want []order.Effect
		}{
			{path: []order.Status{order.StatusFailed}, want: []order.Effect{order.EffectReleaseReservation}},
			{path: []order.Status{order.StatusCanceled}, want: []order.Effect{order.EffectReleaseReservation}},
			{path: []order.Status{order.StatusPaid, order.StatusCanceled}, want: []order.Effect{order.EffectRestock, order.EffectRefund}},
			{path: []order.Status{order.StatusPaid, order.StatusRefunded}, want: []order.Effect{order.EffectRestock, order.EffectRefund}},
			{path: []order.Status{order.StatusPaid, order.StatusShipped}, want: nil},
			{path: []order.Status{order.StatusPaid, order.StatusShipped, order.StatusDelivered}, want: nil},
		}

		for _, tc := range testCases {
			o := newPendingOrder(t)
			var last order.Transition
			for _, st := range tc.path {
				var err error
				last, err = o.Transition(st, testNow)
				require.NoError(t, err)
			}
			assert.Equal(t, tc.want, last.Effects, "%v", tc.path)
		}
	})

	t.Run("late failure after paid is rejected", func(t *testing.T) {
		o := newPendingOrder(t)
		_, err := o.Transition(order.StatusPaid, testNow)
		require.NoError(t, err)

		_, err = o.Transition(order.StatusFailed, testNow)
		assert.True(t, errs.Is(err, errs.ErrInvalidTransition))
		assert.Equal(t, order.StatusPaid, o.Status())
		assert.Nil(t, o.Timestamps().FailedAt)
	})
}

func TestFlatRateCalculator(t *testing.T) {
	calc := &order.FlatRateCalculator{
		TaxRateBasisPoints:    825,
		FlatShipping:          money.MustNew(500),
		FreeShippingThreshold: money.MustNew(5000),
	}

	testCases := []struct {
		name  string
		lines []order.PricedLine
		want  order.Totals
	}{
		{
			name:  "below threshold pays shipping",
			lines: []order.PricedLine{{ProductID: uuid.New(), Quantity: 2, UnitPrice: money.MustNew(999)}},
			want:  order.NewTotals(money.MustNew(1998), money.MustNew(165), money.MustNew(500)),
		},
		{
			name:  "at threshold ships free",
			lines: []order.PricedLine{{ProductID: uuid.New(), Quantity: 5, UnitPrice: money.MustNew(1000)}},
			want:  order.NewTotals(money.MustNew(5000), money.MustNew(413), money.Zero()),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := calc.ComputeTotals(order.PricingInput{Currency: money.USD, Lines: tc.lines})
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.True(t, got.Consistent())
		})
	}

	_, err := calc.ComputeTotals(order.PricingInput{Currency: money.USD})
	assert.True(t, errs.Is(err, errs.ErrEmptyCart))
}
