//go:build unit

package repository_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"order-core/internal/domain/cart"
	"order-core/internal/domain/money"
	"order-core/internal/domain/order"
	"order-core/tests/common/builder"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

var (
	ctx        = context.Background()
	testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))
	testNow    = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
)

type mockDBTX struct{}

func (m *mockDBTX) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (m *mockDBTX) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}

func (m *mockDBTX) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	panic("mockDBTX.QueryRow was called unexpectedly. Use sqlc mock instead.")
}

func newTestOrder(t *testing.T) *order.Order {
	t.Helper()
	price := money.MustNew(2500)
	o, err := order.NewOrder(order.NewOrderParams{
		Owner:    cart.UserOwner(uuid.New()),
		Currency: money.USD,
		Items: []order.Item{
			{ProductID: uuid.New(), ProductName: "widget", Quantity: 2, UnitPrice: price},
			{ProductID: uuid.New(), ProductName: "gadget", Quantity: 1, UnitPrice: price},
		},
		Shipping: builder.TestAddress(),
		Billing:  builder.TestAddress(),
		Totals:   order.NewTotals(money.MustNew(7500), money.MustNew(750), money.MustNew(0)),
	}, testNow)
	require.NoError(t, err)
	return o
}
