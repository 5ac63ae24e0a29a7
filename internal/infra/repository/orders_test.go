//go:build unit

package repository_test

import (
	"errors"
	"testing"

	"order-core/internal/domain/order"
	"order-core/internal/infra"
	"order-core/internal/infra/repository"
	"order-core/internal/infra/repository/converter"
	sqlc "order-core/internal/infra/sqlc/generated"
	"order-core/internal/usecase/shared"
	repositorymock "order-core/tests/mock/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// storedRows renders o the way the order tables would hold it.
func storedRows(o *order.Order) (sqlc.Orders, []sqlc.OrderItems, []sqlc.OrderAddresses) {
	p := converter.OrderToCreateParams(o)
	row := sqlc.Orders{
		ID:            p.ID,
		Number:        p.Number,
		OwnerKind:     p.OwnerKind,
		OwnerID:       p.OwnerID,
		Currency:      p.Currency,
		SubtotalMinor: p.SubtotalMinor,
		TaxMinor:      p.TaxMinor,
		ShippingMinor: p.ShippingMinor,
		TotalMinor:    p.TotalMinor,
		Status:        p.Status,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
	var items []sqlc.OrderItems
	for _, it := range converter.OrderItemParams(o) {
		items = append(items, sqlc.OrderItems(it))
	}
	var addrs []sqlc.OrderAddresses
	for _, a := range converter.OrderAddressParams(o) {
		addrs = append(addrs, sqlc.OrderAddresses(a))
	}
	return row, items, addrs
}

func TestOrderRepository_Create(t *testing.T) {
	testCases := []struct {
		name       string
		setupMock  func(*repositorymock.MockOrderWriteQueries, sqlc.DBTX)
		expectKind infra.RepositoryErrorKind
	}{
		{
			name: "success: order, items and both addresses are written",
			setupMock: func(mock *repositorymock.MockOrderWriteQueries, tx sqlc.DBTX) {
				mock.EXPECT().CreateOrder(ctx, tx, gomock.Any()).Return(nil)
				mock.EXPECT().InsertOrderItem(ctx, tx, gomock.Any()).Return(nil).Times(2)
				mock.EXPECT().InsertOrderAddress(ctx, tx, gomock.Any()).Return(nil).Times(2)
			},
		},
		{
			name: "error: duplicate order id",
			setupMock: func(mock *repositorymock.MockOrderWriteQueries, tx sqlc.DBTX) {
				dup := &pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"}
				mock.EXPECT().CreateOrder(ctx, tx, gomock.Any()).Return(dup)
			},
			expectKind: infra.KindDuplicateKey,
		},
		{
			name: "error: item references an unknown product",
			setupMock: func(mock *repositorymock.MockOrderWriteQueries, tx sqlc.DBTX) {
				fk := &pgconn.PgError{Code: "23503", Message: "violates foreign key constraint"}
				mock.EXPECT().CreateOrder(ctx, tx, gomock.Any()).Return(nil)
				mock.EXPECT().InsertOrderItem(ctx, tx, gomock.Any()).Return(fk)
			},
			expectKind: infra.KindForeignKeyViolated,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockQueries := repositorymock.NewMockOrderWriteQueries(ctrl)
			mockDB := &mockDBTX{}
			repo := repository.NewOrderRepository(mockQueries, mockDB, testLogger)
			tc.setupMock(mockQueries, mockDB)

			err := repo.Create(ctx, newTestOrder(t))

			if tc.expectKind != "" {
				require.Error(t, err)
				assert.True(t, infra.IsKind(err, tc.expectKind), "got %v", err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestOrderRepository_FindByID(t *testing.T) {
	o := newTestOrder(t)
	row, items, addrs := storedRows(o)

	t.Run("success: order is rebuilt with items and addresses", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockQueries := repositorymock.NewMockOrderWriteQueries(ctrl)
		mockDB := &mockDBTX{}
		repo := repository.NewOrderRepository(mockQueries, mockDB, testLogger)

		mockQueries.EXPECT().GetOrder(ctx, mockDB, o.ID()).Return(row, nil)
		mockQueries.EXPECT().ListOrderItems(ctx, mockDB, []uuid.UUID{o.ID()}).Return(items, nil)
		mockQueries.EXPECT().ListOrderAddresses(ctx, mockDB, []uuid.UUID{o.ID()}).Return(addrs, nil)

		got, err := repo.FindByID(ctx, o.ID())
		require.NoError(t, err)
		assert.Equal(t, o.Params(), got.Params())
	})

	t.Run("error: missing order is not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockQueries := repositorymock.NewMockOrderWriteQueries(ctrl)
		mockDB := &mockDBTX{}
		repo := repository.NewOrderRepository(mockQueries, mockDB, testLogger)

		mockQueries.EXPECT().GetOrderForUpdate(ctx, mockDB, o.ID()).Return(sqlc.Orders{}, pgx.ErrNoRows)

		_, err := repo.FindByIDForUpdate(ctx, o.ID())
		assert.True(t, infra.IsKind(err, infra.KindNotFound), "got %v", err)
	})

	t.Run("error: unreadable currency is a db failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockQueries := repositorymock.NewMockOrderWriteQueries(ctrl)
		mockDB := &mockDBTX{}
		repo := repository.NewOrderRepository(mockQueries, mockDB, testLogger)

		bad := row
		bad.Currency = "XXX"
		mockQueries.EXPECT().GetOrder(ctx, mockDB, o.ID()).Return(bad, nil)
		mockQueries.EXPECT().ListOrderItems(ctx, mockDB, gomock.Any()).Return(items, nil)
		mockQueries.EXPECT().ListOrderAddresses(ctx, mockDB, gomock.Any()).Return(addrs, nil)

		_, err := repo.FindByID(ctx, o.ID())
		assert.True(t, infra.IsKind(err, infra.KindDBFailure), "got %v", err)
	})
}

func TestOrderRepository_UpdateStatus(t *testing.T) {
	testCases := []struct {
		name       string
		rows       int64
		err        error
		expectKind infra.RepositoryErrorKind
	}{
		{name: "success: stored status matched", rows: 1},
		{name: "error: stored status moved on", rows: 0, expectKind: infra.KindNotFound},
		{name: "error: database failure", err: errors.New("connection reset"), expectKind: infra.KindDBFailure},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockQueries := repositorymock.NewMockOrderWriteQueries(ctrl)
			mockDB := &mockDBTX{}
			repo := repository.NewOrderRepository(mockQueries, mockDB, testLogger)

			o := newTestOrder(t)
			_, err := o.Transition(order.StatusPaid, testNow)
			require.NoError(t, err)

			mockQueries.EXPECT().
				UpdateOrderStatus(ctx, mockDB, gomock.Any()).
				DoAndReturn(func(_ any, _ sqlc.DBTX, arg sqlc.UpdateOrderStatusParams) (int64, error) {
					assert.Equal(t, string(order.StatusPaid), arg.Status)
					assert.Equal(t, string(order.StatusPendingPayment), arg.FromStatus)
					assert.True(t, arg.PaidAt.Valid)
					assert.False(t, arg.ShippedAt.Valid)
					return tc.rows, tc.err
				})

			err = repo.UpdateStatus(ctx, o, order.StatusPendingPayment)
			if tc.expectKind != "" {
				assert.True(t, infra.IsKind(err, tc.expectKind), "got %v", err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestOrderRepository_ListByOwner(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockQueries := repositorymock.NewMockOrderWriteQueries(ctrl)
	mockDB := &mockDBTX{}
	repo := repository.NewOrderRepository(mockQueries, mockDB, testLogger)

	first, second := newTestOrder(t), newTestOrder(t)
	row1, items1, addrs1 := storedRows(first)
	row2, items2, addrs2 := storedRows(second)
	paid := order.StatusPaid
	after := testNow

	mockQueries.EXPECT().
		ListOrdersByOwner(ctx, mockDB, gomock.Any()).
		DoAndReturn(func(_ any, _ sqlc.DBTX, arg sqlc.ListOrdersByOwnerParams) ([]sqlc.Orders, error) {
			assert.Equal(t, string(first.Owner().Kind), arg.OwnerKind)
			assert.Equal(t, "paid", arg.Status.String)
			assert.True(t, arg.AfterCreatedAt.Valid)
			assert.Equal(t, int32(shared.MaxListLimit), arg.RowLimit)
			return []sqlc.Orders{row1, row2}, nil
		})
	mockQueries.EXPECT().ListOrderItems(ctx, mockDB, []uuid.UUID{first.ID(), second.ID()}).Return(append(items1, items2...), nil)
	mockQueries.EXPECT().ListOrderAddresses(ctx, mockDB, []uuid.UUID{first.ID(), second.ID()}).Return(append(addrs1, addrs2...), nil)

	got, err := repo.ListByOwner(ctx, first.Owner(), shared.OrderFilter{Status: &paid, AfterCreatedAt: &after, Limit: 500})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Len(t, got[0].Items(), 2)
	assert.Equal(t, second.ID(), got[1].ID())
	assert.Equal(t, second.ShippingAddress(), got[1].ShippingAddress())
}
