//go:build unit

package cartstore_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"order-core/internal/domain/cart"
	"order-core/internal/domain/money"
	"order-core/internal/infra/cartstore"
	"order-core/internal/pkg/clock"
	"order-core/internal/pkg/config"
	"order-core/internal/pkg/errs"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newStore(t *testing.T) (*cartstore.RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return cartstore.NewRedisStore(client, config.RedisConfig{KeyPrefix: "cart:"}, clock.NewMockClock(now), logger), mr
}

func TestRedisStore_Snapshot(t *testing.T) {
	owner := cart.UserOwner(uuid.New())
	product := uuid.New()

	testCases := []struct {
		name  string
		raw   string
		check func(t *testing.T, snap cart.Snapshot, err error)
	}{
		{
			name: "success: lines with decimal prices",
			raw:  `{"lines":[{"product_id":"` + product.String() + `","quantity":2,"unit_price":"12.50"}]}`,
			check: func(t *testing.T, snap cart.Snapshot, err error) {
				require.NoError(t, err)
				require.Equal(t, 1, snap.Len())
				assert.Equal(t, int64(1250), snap.Lines()[0].UnitPrice.Minor())
				assert.Equal(t, int64(2500), snap.Subtotal().Minor())
				assert.Equal(t, owner, snap.Owner())
				assert.Equal(t, now, snap.TakenAt())
			},
		},
		{
			name: "error: duplicate product lines",
			raw: `{"lines":[{"product_id":"` + product.String() + `","quantity":1,"unit_price":"1"},` +
				`{"product_id":"` + product.String() + `","quantity":1,"unit_price":"1"}]}`,
			check: func(t *testing.T, _ cart.Snapshot, err error) {
				assert.True(t, errs.Is(err, errs.ErrInvalidCart), "got %v", err)
			},
		},
		{
			name: "error: negative price",
			raw:  `{"lines":[{"product_id":"` + product.String() + `","quantity":1,"unit_price":"-3"}]}`,
			check: func(t *testing.T, _ cart.Snapshot, err error) {
				assert.True(t, errs.Is(err, errs.ErrInvalidCart), "got %v", err)
			},
		},
		{
			name: "error: not json",
			raw:  `lines=1`,
			check: func(t *testing.T, _ cart.Snapshot, err error) {
				assert.True(t, errs.Is(err, errs.ErrInvalidCart), "got %v", err)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			store, mr := newStore(t)
			require.NoError(t, mr.Set("cart:"+owner.String(), tc.raw))

			snap, err := store.Snapshot(context.Background(), owner)
			tc.check(t, snap, err)
		})
	}
}

func TestRedisStore_MissingCartIsEmpty(t *testing.T) {
	store, _ := newStore(t)
	owner, err := cart.SessionOwner("sess_1")
	require.NoError(t, err)

	snap, err := store.Snapshot(context.Background(), owner)
	require.NoError(t, err)
	assert.True(t, snap.IsEmpty())
}

func TestRedisStore_Put(t *testing.T) {
	store, mr := newStore(t)
	owner, err := cart.SessionOwner("sess_2")
	require.NoError(t, err)
	lines := []cart.Line{{ProductID: uuid.New(), Quantity: 3, UnitPrice: money.MustNew(999)}}

	require.NoError(t, store.Put(context.Background(), owner, lines))
	assert.True(t, mr.Exists("cart:session:sess_2"))
	assert.Positive(t, mr.TTL("cart:session:sess_2"))

	snap, err := store.Snapshot(context.Background(), owner)
	require.NoError(t, err)
	assert.Equal(t, lines, snap.Lines())
}

func TestRedisStore_Unreachable(t *testing.T) {
	store, mr := newStore(t)
	mr.Close()

	_, err := store.Snapshot(context.Background(), cart.UserOwner(uuid.New()))
	require.Error(t, err)
	assert.False(t, errs.Is(err, errs.ErrInvalidCart))
	assert.Error(t, store.Ping(context.Background()))
}
