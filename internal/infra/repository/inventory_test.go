//go:build unit

package repository_test

import (
	"errors"
	"testing"
	"time"

	"order-core/internal/domain/inventory"
	"order-core/internal/infra"
	"order-core/internal/infra/repository"
	sqlc "order-core/internal/infra/sqlc/generated"
	"order-core/internal/pkg/errs"
	repositorymock "order-core/tests/mock/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func sortedLines(t *testing.T, lines ...inventory.Line) []inventory.Line {
	t.Helper()
	out, err := inventory.NormalizeLines(lines)
	require.NoError(t, err)
	return out
}

func TestInventoryRepository_Reserve(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	orderID := uuid.New()
	expiresAt := testNow.Add(15 * time.Minute)

	testCases := []struct {
		name      string
		products  []sqlc.Products
		lockErr   error
		setupMock func(*repositorymock.MockInventoryWriteQueries, sqlc.DBTX)
		check     func(t *testing.T, res inventory.Result, err error)
	}{
		{
			name:     "success: every line is taken and recorded",
			products: []sqlc.Products{{ID: a, Name: "widget", Available: 5}, {ID: b, Name: "gadget", Available: 1}},
			setupMock: func(mock *repositorymock.MockInventoryWriteQueries, tx sqlc.DBTX) {
				mock.EXPECT().TakeAvailableStock(ctx, tx, gomock.Any()).Return(int64(1), nil).Times(2)
				mock.EXPECT().
					InsertReservation(ctx, tx, gomock.Any()).
					DoAndReturn(func(_ any, _ sqlc.DBTX, arg sqlc.InsertReservationParams) error {
						assert.Equal(t, orderID, arg.OrderID)
						assert.Equal(t, string(inventory.StatusReserved), arg.Status)
						assert.Equal(t, expiresAt, arg.ExpiresAt.Time)
						return nil
					}).
					Times(2)
			},
			check: func(t *testing.T, res inventory.Result, err error) {
				require.NoError(t, err)
				require.Len(t, res.Reservations, 2)
				names := res.ProductNames()
				assert.Equal(t, "widget", names[a])
				assert.Equal(t, "gadget", names[b])
				assert.Equal(t, expiresAt, res.ExpiresAt)
			},
		},
		{
			name:      "error: short lines are all reported and nothing is taken",
			products:  []sqlc.Products{{ID: a, Name: "widget", Available: 1}, {ID: b, Name: "gadget", Available: 0}},
			setupMock: func(*repositorymock.MockInventoryWriteQueries, sqlc.DBTX) {},
			check: func(t *testing.T, _ inventory.Result, err error) {
				var oos *inventory.OutOfStockError
				require.True(t, errors.As(err, &oos), "got %v", err)
				assert.Len(t, oos.Lines, 2)
				assert.True(t, errs.Is(err, errs.ErrOutOfStock))
			},
		},
		{
			name:      "error: unknown product",
			products:  []sqlc.Products{{ID: a, Name: "widget", Available: 5}},
			setupMock: func(*repositorymock.MockInventoryWriteQueries, sqlc.DBTX) {},
			check: func(t *testing.T, _ inventory.Result, err error) {
				assert.True(t, errs.Is(err, errs.ErrProductNotFound), "got %v", err)
				assert.True(t, infra.IsKind(err, infra.KindNotFound))
			},
		},
		{
			name:     "error: second reservation for the same order",
			products: []sqlc.Products{{ID: a, Name: "widget", Available: 5}, {ID: b, Name: "gadget", Available: 5}},
			setupMock: func(mock *repositorymock.MockInventoryWriteQueries, tx sqlc.DBTX) {
				dup := &pgconn.PgError{Code: "23505"}
				mock.EXPECT().TakeAvailableStock(ctx, tx, gomock.Any()).Return(int64(1), nil)
				mock.EXPECT().InsertReservation(ctx, tx, gomock.Any()).Return(dup)
			},
			check: func(t *testing.T, _ inventory.Result, err error) {
				assert.True(t, infra.IsKind(err, infra.KindDuplicateKey), "got %v", err)
			},
		},
		{
			name:      "error: lock failure",
			lockErr:   &pgconn.PgError{Code: "40P01"},
			setupMock: func(*repositorymock.MockInventoryWriteQueries, sqlc.DBTX) {},
			check: func(t *testing.T, _ inventory.Result, err error) {
				assert.True(t, infra.IsKind(err, infra.KindDBFailure), "got %v", err)
				var pgErr *pgconn.PgError
				assert.True(t, errors.As(err, &pgErr), "pg error must stay reachable for retries")
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockQueries := repositorymock.NewMockInventoryWriteQueries(ctrl)
			mockDB := &mockDBTX{}
			repo := repository.NewInventoryRepository(mockQueries, mockDB, testLogger)

			lines := sortedLines(t, inventory.Line{ProductID: a, Quantity: 2}, inventory.Line{ProductID: b, Quantity: 1})
			mockQueries.EXPECT().LockProducts(ctx, mockDB, gomock.Len(2)).Return(tc.products, tc.lockErr)
			tc.setupMock(mockQueries, mockDB)

			res, err := repo.Reserve(ctx, orderID, lines, expiresAt)
			tc.check(t, res, err)
		})
	}
}

func TestInventoryRepository_Settle(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockQueries := repositorymock.NewMockInventoryWriteQueries(ctrl)
	mockDB := &mockDBTX{}
	repo := repository.NewInventoryRepository(mockQueries, mockDB, testLogger)
	orderID := uuid.New()

	mockQueries.EXPECT().CommitReservations(ctx, mockDB, gomock.Any()).Return(int64(2), nil)
	moved, err := repo.Commit(ctx, orderID)
	require.NoError(t, err)
	assert.Equal(t, 2, moved)

	mockQueries.EXPECT().
		ReleaseReservations(ctx, mockDB, gomock.Any()).
		DoAndReturn(func(_ any, _ sqlc.DBTX, arg sqlc.ReleaseReservationsParams) (int64, error) {
			assert.Equal(t, string(inventory.StatusExpired), arg.ToStatus)
			assert.Equal(t, orderID, arg.OrderID)
			return 0, nil
		})
	moved, err = repo.Release(ctx, orderID, inventory.StatusExpired)
	require.NoError(t, err)
	assert.Zero(t, moved)

	_, err = repo.Release(ctx, orderID, inventory.StatusCommitted)
	assert.Error(t, err)

	mockQueries.EXPECT().RestockReservations(ctx, mockDB, gomock.Any()).Return(int64(0), errors.New("connection reset"))
	_, err = repo.Restock(ctx, orderID)
	assert.True(t, infra.IsKind(err, infra.KindDBFailure), "got %v", err)
}

func TestInventoryRepository_Stock(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockQueries := repositorymock.NewMockInventoryWriteQueries(ctrl)
	mockDB := &mockDBTX{}
	repo := repository.NewInventoryRepository(mockQueries, mockDB, testLogger)
	id := uuid.New()

	t.Run("negative stock is refused before the query", func(t *testing.T) {
		_, err := repo.UpsertStock(ctx, id, "widget", -1)
		assert.True(t, infra.IsKind(err, infra.KindCheckViolated), "got %v", err)
	})

	t.Run("upsert returns the counters", func(t *testing.T) {
		mockQueries.EXPECT().
			UpsertProductStock(ctx, mockDB, gomock.Any()).
			Return(sqlc.Products{ID: id, Name: "widget", Available: 7, Reserved: 2, Sold: 1}, nil)
		s, err := repo.UpsertStock(ctx, id, "widget", 7)
		require.NoError(t, err)
		assert.Equal(t, inventory.Stock{ProductID: id, Name: "widget", Available: 7, Reserved: 2, Sold: 1}, s)
		assert.Equal(t, 10, s.OnHand())
	})

	t.Run("unknown product is not found", func(t *testing.T) {
		mockQueries.EXPECT().GetProduct(ctx, mockDB, id).Return(sqlc.Products{}, pgx.ErrNoRows)
		_, err := repo.Stock(ctx, id)
		assert.True(t, infra.IsKind(err, infra.KindNotFound), "got %v", err)
	})

	t.Run("expired orders default to no limit", func(t *testing.T) {
		due := []uuid.UUID{uuid.New()}
		mockQueries.EXPECT().
			ListExpiredReservationOrders(ctx, mockDB, gomock.Any()).
			DoAndReturn(func(_ any, _ sqlc.DBTX, arg sqlc.ListExpiredReservationOrdersParams) ([]uuid.UUID, error) {
				assert.Equal(t, int32(1<<31-1), arg.RowLimit)
				assert.Equal(t, testNow, arg.Now.Time)
				return due, nil
			})
		got, err := repo.ExpiredOrders(ctx, testNow, 0)
		require.NoError(t, err)
		assert.Equal(t, due, got)
	})
}
