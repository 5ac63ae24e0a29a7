//go:build unit

package commands_test

import (
	"context"
	"sync"
	"testing"

	"order-core/internal/domain/cart"
	"order-core/internal/domain/inventory"
	"order-core/internal/domain/order"
	"order-core/internal/domain/outbox"
	"order-core/internal/domain/payment"
	"order-core/internal/pkg/errs"
	"order-core/internal/usecase/commands"
	"order-core/internal/usecase/shared"
	"order-core/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestCheckout_PlacesOrderAndHoldsStock(t *testing.T) {
	h := newHarness(t)
	product := h.seedProduct(t, 10)
	h.expectIntents()

	res := h.place(t, product, 2)

	require.NotNil(t, res.Order)
	require.NotNil(t, res.Intent)
	assert.False(t, res.Replayed)
	assert.Equal(t, order.StatusPendingPayment, res.Order.Status())
	assert.Equal(t, int64(5000), res.Order.Totals().Subtotal.Minor())
	assert.Equal(t, int64(500), res.Order.Totals().Tax.Minor())
	assert.Equal(t, int64(500), res.Order.Totals().Shipping.Minor())
	assert.Equal(t, int64(6000), res.Order.Totals().Total.Minor())
	assert.Equal(t, "pi_"+res.Order.ID().String(), res.Intent.GatewayReference)
	assert.Equal(t, payment.IntentPending, h.intent(t, res.Order.ID()).Status)

	s := h.stock(t, product)
	assert.Equal(t, 8, s.Available)
	assert.Equal(t, 2, s.Reserved)
	assert.Equal(t, 0, s.Sold)
	assert.Equal(t, 1, h.timers.Pending())
}

func TestCheckout_ReadsCartFromProvider(t *testing.T) {
	h := newHarness(t)
	product := h.seedProduct(t, 3)
	h.expectIntents()

	b := builder.NewCheckoutBuilder().WithLine(product, 1, 1200)
	snap, err := b.BuildSnapshot()
	require.NoError(t, err)
	h.carts.EXPECT().Snapshot(gomock.Any(), b.Owner).Return(snap, nil)

	res, err := h.checkout.Checkout(context.Background(), b.BuildRequest())
	require.NoError(t, err)
	assert.Equal(t, b.Owner, res.Order.Owner())
	assert.Equal(t, 2, h.stock(t, product).Available)
}

func TestCheckout_Validation(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(b *builder.CheckoutBuilder, product uuid.UUID)
		errIs  error
	}{
		{
			name:   "empty cart",
			mutate: func(b *builder.CheckoutBuilder, _ uuid.UUID) { b.Lines = nil },
			errIs:  errs.ErrEmptyCart,
		},
		{
			name:   "missing idempotency key",
			mutate: func(b *builder.CheckoutBuilder, _ uuid.UUID) { b.IdempotencyKey = "" },
			errIs:  errs.ErrIdempotencyKeyRequired,
		},
		{
			name:   "unsupported currency",
			mutate: func(b *builder.CheckoutBuilder, _ uuid.UUID) { b.Currency = "JPY" },
			errIs:  errs.ErrUnsupportedCurrency,
		},
		{
			name:   "shipping address without city",
			mutate: func(b *builder.CheckoutBuilder, _ uuid.UUID) { b.Shipping.City = "" },
			errIs:  errs.ErrInvalidAddress,
		},
		{
			name: "unknown product",
			mutate: func(b *builder.CheckoutBuilder, _ uuid.UUID) {
				b.Lines = nil
				b.WithLine(uuid.New(), 1, 100)
			},
			errIs: errs.ErrProductNotFound,
		},
		{
			name: "more than available",
			mutate: func(b *builder.CheckoutBuilder, product uuid.UUID) {
				b.Lines = nil
				b.WithLine(product, 6, 100)
			},
			errIs: errs.ErrOutOfStock,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t)
			product := h.seedProduct(t, 5)

			b := builder.NewCheckoutBuilder().WithLine(product, 1, 100)
			tc.mutate(b, product)
			snap, err := b.BuildSnapshot()
			require.NoError(t, err)

			res, err := h.checkout.CheckoutSnapshot(context.Background(), snap, b.BuildRequest())
			require.Error(t, err)
			assert.Nil(t, res)
			assert.True(t, errs.Is(err, tc.errIs), "got %v", err)

			assert.Equal(t, 5, h.stock(t, product).Available)
			assert.Equal(t, 0, h.timers.Pending())
		})
	}
}

func TestCheckout_OutOfStockNamesShortLines(t *testing.T) {
	h := newHarness(t)
	product := h.seedProduct(t, 1)

	b := builder.NewCheckoutBuilder().WithLine(product, 3, 100)
	snap, err := b.BuildSnapshot()
	require.NoError(t, err)

	_, err = h.checkout.CheckoutSnapshot(context.Background(), snap, b.BuildRequest())

	var oos *inventory.OutOfStockError
	require.ErrorAs(t, err, &oos)
	require.Len(t, oos.Lines, 1)
	assert.Equal(t, product, oos.Lines[0].ProductID)
	assert.Equal(t, 3, oos.Lines[0].Requested)
	assert.Equal(t, 1, oos.Lines[0].Available)
}

func TestCheckout_ConcurrentBuyersOfLastUnit(t *testing.T) {
	h := newHarness(t)
	product := h.seedProduct(t, 1)
	h.expectIntents()

	const buyers = 8
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		placed   []*commands.CheckoutResult
		failures []error
	)
	for i := 0; i < buyers; i++ {
		b := builder.NewCheckoutBuilder().WithLine(product, 1, 2500)
		snap, err := b.BuildSnapshot()
		require.NoError(t, err)

		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := h.checkout.CheckoutSnapshot(context.Background(), snap, b.BuildRequest())
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failures = append(failures, err)
				return
			}
			placed = append(placed, res)
		}()
	}
	wg.Wait()

	require.Len(t, placed, 1)
	require.Len(t, failures, buyers-1)
	for _, err := range failures {
		assert.True(t, errs.Is(err, errs.ErrOutOfStock), "got %v", err)
	}

	s := h.stock(t, product)
	assert.Equal(t, 0, s.Available)
	assert.Equal(t, 1, s.Reserved)
	assert.Equal(t, 1, s.OnHand())
}

func TestCheckout_IdempotentReplay(t *testing.T) {
	h := newHarness(t)
	product := h.seedProduct(t, 10)
	h.gateway.EXPECT().
		CreateIntent(gomock.Any(), gomock.Any()).
		Return(shared.CreateIntentResult{GatewayReference: "pi_once", ClientSecret: "cs_once"}, nil).
		Times(1)

	b := builder.NewCheckoutBuilder().WithLine(product, 2, 2500)
	snap, err := b.BuildSnapshot()
	require.NoError(t, err)

	first, err := h.checkout.CheckoutSnapshot(context.Background(), snap, b.BuildRequest())
	require.NoError(t, err)
	second, err := h.checkout.CheckoutSnapshot(context.Background(), snap, b.BuildRequest())
	require.NoError(t, err)

	assert.False(t, first.Replayed)
	assert.True(t, second.Replayed)
	assert.Equal(t, first.Order.ID(), second.Order.ID())
	require.NotNil(t, second.Intent)
	assert.Equal(t, "pi_once", second.Intent.GatewayReference)
	assert.Equal(t, 8, h.stock(t, product).Available)

	t.Run("same key with a different cart is refused", func(t *testing.T) {
		other := builder.NewCheckoutBuilder().
			WithOwner(b.Owner).
			WithKey(b.IdempotencyKey).
			WithLine(product, 3, 2500)
		otherSnap, err := other.BuildSnapshot()
		require.NoError(t, err)

		_, err = h.checkout.CheckoutSnapshot(context.Background(), otherSnap, other.BuildRequest())
		assert.True(t, errs.Is(err, errs.ErrIdempotencyKeyReused), "got %v", err)
		assert.Equal(t, 8, h.stock(t, product).Available)
	})

	t.Run("same key from another owner is a new checkout", func(t *testing.T) {
		h.expectIntents()
		other := builder.NewCheckoutBuilder().WithKey(b.IdempotencyKey).WithLine(product, 1, 2500)
		otherSnap, err := other.BuildSnapshot()
		require.NoError(t, err)

		res, err := h.checkout.CheckoutSnapshot(context.Background(), otherSnap, other.BuildRequest())
		require.NoError(t, err)
		assert.False(t, res.Replayed)
		assert.NotEqual(t, first.Order.ID(), res.Order.ID())
	})
}

func TestCheckout_ConcurrentRetriesShareOneOrder(t *testing.T) {
	h := newHarness(t)
	product := h.seedProduct(t, 10)
	h.expectIntents()

	b := builder.NewCheckoutBuilder().WithLine(product, 1, 2500)
	snap, err := b.BuildSnapshot()
	require.NoError(t, err)

	const retries = 6
	ids := make(chan uuid.UUID, retries)
	var wg sync.WaitGroup
	for i := 0; i < retries; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := h.checkout.CheckoutSnapshot(context.Background(), snap, b.BuildRequest())
			if assert.NoError(t, err) {
				ids <- res.Order.ID()
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := map[uuid.UUID]struct{}{}
	for id := range ids {
		seen[id] = struct{}{}
	}
	assert.Len(t, seen, 1)
	assert.Equal(t, 9, h.stock(t, product).Available)
}

func TestCheckout_GatewayTimeoutFailsOrderAndRestoresStock(t *testing.T) {
	h := newHarness(t)
	product := h.seedProduct(t, 4)
	h.gateway.EXPECT().
		CreateIntent(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ shared.CreateIntentRequest) (shared.CreateIntentResult, error) {
			<-ctx.Done()
			return shared.CreateIntentResult{}, ctx.Err()
		}).
		Times(1)

	b := builder.NewCheckoutBuilder().WithLine(product, 2, 2500)
	snap, err := b.BuildSnapshot()
	require.NoError(t, err)

	res, err := h.checkout.CheckoutSnapshot(context.Background(), snap, b.BuildRequest())
	require.Error(t, err)
	assert.Nil(t, res)
	assert.True(t, errs.Is(err, errs.ErrGatewayUnavailable), "got %v", err)

	s := h.stock(t, product)
	assert.Equal(t, 4, s.Available)
	assert.Equal(t, 0, s.Reserved)
	assert.Equal(t, 0, h.timers.Pending())

	// A retry with the same key reports the failed order instead of charging again.
	replay, err := h.checkout.CheckoutSnapshot(context.Background(), snap, b.BuildRequest())
	require.NoError(t, err)
	assert.True(t, replay.Replayed)
	assert.Equal(t, order.StatusFailed, replay.Order.Status())
	assert.Nil(t, replay.Intent)

	notes := h.outboxByKind(outbox.KindNotification)
	require.Len(t, notes, 1)
	var n outbox.NotificationPayload
	require.NoError(t, notes[0].Decode(&n))
	assert.Equal(t, string(order.StatusFailed), n.To)
	assert.Equal(t, shared.ReasonGatewayError, n.Reason)
}

func TestCheckout_GatewayRejectionKeepsItsKind(t *testing.T) {
	h := newHarness(t)
	product := h.seedProduct(t, 2)
	h.gateway.EXPECT().
		CreateIntent(gomock.Any(), gomock.Any()).
		Return(shared.CreateIntentResult{}, errs.Mark(errs.New("card_declined"), errs.ErrGatewayRejected))

	b := builder.NewCheckoutBuilder().WithLine(product, 1, 2500)
	snap, err := b.BuildSnapshot()
	require.NoError(t, err)

	_, err = h.checkout.CheckoutSnapshot(context.Background(), snap, b.BuildRequest())
	assert.True(t, errs.Is(err, errs.ErrGatewayRejected))
	assert.False(t, errs.Is(err, errs.ErrGatewayUnavailable))
	assert.Equal(t, 2, h.stock(t, product).Available)
}

func TestCheckout_SessionOwner(t *testing.T) {
	h := newHarness(t)
	product := h.seedProduct(t, 2)
	h.expectIntents()

	owner, err := cart.SessionOwner("sess-42")
	require.NoError(t, err)
	b := builder.NewCheckoutBuilder().WithOwner(owner).WithLine(product, 1, 2500)
	snap, err := b.BuildSnapshot()
	require.NoError(t, err)

	res, err := h.checkout.CheckoutSnapshot(context.Background(), snap, b.BuildRequest())
	require.NoError(t, err)
	assert.True(t, res.Order.IsOwnedBy(owner))
}
