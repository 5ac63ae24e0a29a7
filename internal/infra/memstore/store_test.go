//go:build unit

package memstore_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"order-core/internal/domain/cart"
	"order-core/internal/domain/inventory"
	"order-core/internal/domain/money"
	"order-core/internal/domain/order"
	"order-core/internal/domain/outbox"
	"order-core/internal/infra"
	"order-core/internal/infra/memstore"
	"order-core/internal/pkg/errs"
	"order-core/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUoW(t *testing.T) (shared.UnitOfWork, *memstore.Store) {
	t.Helper()
	store := memstore.New(slog.New(slog.NewTextHandler(io.Discard, nil)))
	return memstore.NewUnitOfWork(store), store
}

func seedStock(t *testing.T, uow shared.UnitOfWork, available int) uuid.UUID {
	t.Helper()
	id := uuid.New()
	err := uow.Within(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		_, err := tx.Inventory().UpsertStock(ctx, id, "widget", available)
		return err
	})
	require.NoError(t, err)
	return id
}

func stockOf(t *testing.T, uow shared.UnitOfWork, id uuid.UUID) inventory.Stock {
	t.Helper()
	var s inventory.Stock
	err := uow.ReadOnly(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		var err error
		s, err = tx.Inventory().Stock(ctx, id)
		return err
	})
	require.NoError(t, err)
	return s
}

func TestInventory_ReserveIsAllOrNothing(t *testing.T) {
	uow, _ := newUoW(t)
	plenty := seedStock(t, uow, 10)
	scarce := seedStock(t, uow, 1)
	expires := time.Now().Add(time.Minute)

	lines, err := inventory.NormalizeLines([]inventory.Line{
		{ProductID: plenty, Quantity: 3},
		{ProductID: scarce, Quantity: 2},
	})
	require.NoError(t, err)

	err = uow.Within(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		_, err := tx.Inventory().Reserve(ctx, uuid.New(), lines, expires)
		return err
	})
	require.Error(t, err)

	var oos *inventory.OutOfStockError
	require.ErrorAs(t, err, &oos)
	require.Len(t, oos.Lines, 1)
	assert.Equal(t, scarce, oos.Lines[0].ProductID)
	assert.Equal(t, 1, oos.Lines[0].Available)

	assert.Equal(t, 10, stockOf(t, uow, plenty).Available)
	assert.Equal(t, 1, stockOf(t, uow, scarce).Available)
}

func TestInventory_CommitReleaseRestock(t *testing.T) {
	uow, _ := newUoW(t)
	product := seedStock(t, uow, 5)
	orderID := uuid.New()
	ctx := context.Background()

	require.NoError(t, uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		_, err := tx.Inventory().Reserve(ctx, orderID, []inventory.Line{{ProductID: product, Quantity: 2}}, time.Now().Add(time.Minute))
		return err
	}))
	assert.Equal(t, inventory.Stock{ProductID: product, Name: "widget", Available: 3, Reserved: 2}, stockOf(t, uow, product))

	var moved int
	require.NoError(t, uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		moved, err = tx.Inventory().Commit(ctx, orderID)
		return err
	}))
	assert.Equal(t, 1, moved)
	assert.Equal(t, 2, stockOf(t, uow, product).Sold)

	// Releasing a committed reservation is a no-op.
	require.NoError(t, uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		moved, err = tx.Inventory().Release(ctx, orderID, inventory.StatusReleased)
		return err
	}))
	assert.Zero(t, moved)

	for i := 0; i < 2; i++ {
		require.NoError(t, uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			_, err := tx.Inventory().Restock(ctx, orderID)
			return err
		}))
	}
	s := stockOf(t, uow, product)
	assert.Equal(t, 5, s.Available)
	assert.Zero(t, s.Sold)
	assert.Zero(t, s.Reserved)
}

func TestUnitOfWork_RollsBackOnError(t *testing.T) {
	uow, _ := newUoW(t)
	product := seedStock(t, uow, 4)
	boom := errs.New("boom")

	err := uow.Within(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Inventory().Reserve(ctx, uuid.New(), []inventory.Line{{ProductID: product, Quantity: 4}}, time.Now()); err != nil {
			return err
		}
		return boom
	})
	assert.True(t, errs.Is(err, boom))
	assert.Equal(t, 4, stockOf(t, uow, product).Available)
}

func TestUnitOfWork_ReadOnlyRejectsWrites(t *testing.T) {
	uow, _ := newUoW(t)
	err := uow.ReadOnly(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		_, err := tx.Inventory().UpsertStock(ctx, uuid.New(), "x", 1)
		return err
	})
	assert.True(t, infra.IsKind(err, infra.KindDBFailure))
}

func TestOutbox_ClaimReclaimsExpiredLease(t *testing.T) {
	uow, store := newUoW(t)
	ctx := context.Background()
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	entry, err := outbox.NewEntry(outbox.KindRestock, "restock:a", outbox.RestockPayload{}, now)
	require.NoError(t, err)

	claim := func(at time.Time) []outbox.Entry {
		var got []outbox.Entry
		require.NoError(t, uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			var err error
			got, err = tx.Outbox().ClaimDue(ctx, at, 10, at.Add(time.Minute))
			return err
		}))
		return got
	}

	require.NoError(t, uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		inserted, err := tx.Outbox().Enqueue(ctx, entry)
		require.True(t, inserted)
		return err
	}))
	require.NoError(t, uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		inserted, err := tx.Outbox().Enqueue(ctx, entry)
		assert.False(t, inserted, "same dedup key must collapse")
		return err
	}))

	assert.Len(t, claim(now), 1)
	assert.Empty(t, claim(now.Add(30*time.Second)), "lease still held")
	assert.Len(t, claim(now.Add(2*time.Minute)), 1, "lease expired")

	entries := store.OutboxEntries()
	require.Len(t, entries, 1)
	assert.Equal(t, outbox.StatusProcessing, entries[0].Status)
}

func TestOrders_ListByOwnerPagesNewestFirst(t *testing.T) {
	uow, _ := newUoW(t)
	ctx := context.Background()
	owner := cart.UserOwner(uuid.New())
	base := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	var ids []uuid.UUID
	for i := 0; i < 3; i++ {
		o, err := order.NewOrder(order.NewOrderParams{
			Owner:    owner,
			Currency: money.USD,
			Items:    []order.Item{{ProductID: uuid.New(), ProductName: "p", Quantity: 1, UnitPrice: money.MustNew(100)}},
			Shipping: testAddress(),
			Billing:  testAddress(),
			Totals:   order.NewTotals(money.MustNew(100), money.Zero(), money.Zero()),
		}, base.Add(time.Duration(i)*time.Minute))
		require.NoError(t, err)
		require.NoError(t, uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			return tx.Orders().Create(ctx, o)
		}))
		ids = append(ids, o.ID())
	}

	var page []*order.Order
	require.NoError(t, uow.ReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		page, err = tx.Orders().ListByOwner(ctx, owner, shared.OrderFilter{Limit: 2})
		return err
	}))
	require.Len(t, page, 2)
	assert.Equal(t, ids[2], page[0].ID())
	assert.Equal(t, ids[1], page[1].ID())

	after := page[1].CreatedAt()
	require.NoError(t, uow.ReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		page, err = tx.Orders().ListByOwner(ctx, owner, shared.OrderFilter{Limit: 2, AfterCreatedAt: &after, AfterID: page[1].ID()})
		return err
	}))
	require.Len(t, page, 1)
	assert.Equal(t, ids[0], page[0].ID())
}

func testAddress() order.Address {
	return order.Address{Name: "Ada", Line1: "1 Main St", City: "Springfield", PostalCode: "12345", Country: "US"}
}
