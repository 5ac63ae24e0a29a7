package repository

import (
	"context"
	"log/slog"
	"math"
	"time"

	"order-core/internal/domain/inventory"
	"order-core/internal/infra"
	"order-core/internal/infra/repository/converter"
	sqlc "order-core/internal/infra/sqlc/generated"
	"order-core/internal/pkg/errs"
	"order-core/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type InventoryWriteQueries interface {
	LockProducts(ctx context.Context, db sqlc.DBTX, ids []uuid.UUID) ([]sqlc.Products, error)
	TakeAvailableStock(ctx context.Context, db sqlc.DBTX, arg sqlc.TakeAvailableStockParams) (int64, error)
	InsertReservation(ctx context.Context, db sqlc.DBTX, arg sqlc.InsertReservationParams) error
	CommitReservations(ctx context.Context, db sqlc.DBTX, arg sqlc.CommitReservationsParams) (int64, error)
	ReleaseReservations(ctx context.Context, db sqlc.DBTX, arg sqlc.ReleaseReservationsParams) (int64, error)
	RestockReservations(ctx context.Context, db sqlc.DBTX, arg sqlc.RestockReservationsParams) (int64, error)
	ListReservationsByOrder(ctx context.Context, db sqlc.DBTX, orderID uuid.UUID) ([]sqlc.InventoryReservations, error)
	ListExpiredReservationOrders(ctx context.Context, db sqlc.DBTX, arg sqlc.ListExpiredReservationOrdersParams) ([]uuid.UUID, error)
	UpsertProductStock(ctx context.Context, db sqlc.DBTX, arg sqlc.UpsertProductStockParams) (sqlc.Products, error)
	GetProduct(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Products, error)
	ListProducts(ctx context.Context, db sqlc.DBTX) ([]sqlc.Products, error)
}

type InventoryRepository struct {
	queries InventoryWriteQueries
	db      sqlc.DBTX
	logger  *slog.Logger
}

func NewInventoryRepository(queries InventoryWriteQueries, db sqlc.DBTX, logger *slog.Logger) *InventoryRepository {
	return &InventoryRepository{
		queries: queries,
		db:      db,
		logger:  logger,
	}
}

// Reserve locks the product rows in id order, checks every line, then takes stock
// with a conditional update per product. Lines arrive sorted by product id.
func (r *InventoryRepository) Reserve(ctx context.Context, orderID uuid.UUID, lines []inventory.Line, expiresAt time.Time) (inventory.Result, error) {
	ids := make([]uuid.UUID, len(lines))
	for i, l := range lines {
		ids[i] = l.ProductID
	}
	locked, err := r.queries.LockProducts(ctx, r.db, ids)
	if err != nil {
		return inventory.Result{}, infra.ClassifyErr(r.logger, "failed to lock products", err)
	}
	products := make(map[uuid.UUID]sqlc.Products, len(locked))
	for _, p := range locked {
		products[p.ID] = p
	}

	var short []inventory.ShortLine
	for _, l := range lines {
		p, ok := products[l.ProductID]
		if !ok {
			return inventory.Result{}, errs.Mark(
				infra.WrapRepoErr(r.logger, infra.KindNotFound, "product "+l.ProductID.String(), nil),
				errs.ErrProductNotFound)
		}
		if int(p.Available) < l.Quantity {
			short = append(short, inventory.ShortLine{ProductID: l.ProductID, Requested: l.Quantity, Available: int(p.Available)})
		}
	}
	if len(short) > 0 {
		return inventory.Result{}, &inventory.OutOfStockError{Lines: short}
	}

	now := time.Now().UTC()
	rows := make([]inventory.Reservation, len(lines))
	for i, l := range lines {
		n, err := r.queries.TakeAvailableStock(ctx, r.db, sqlc.TakeAvailableStockParams{
			Quantity:  pgconv.IntToInt32(l.Quantity),
			UpdatedAt: pgconv.TimeToPgtype(now),
			ID:        l.ProductID,
		})
		if err != nil {
			return inventory.Result{}, infra.ClassifyErr(r.logger, "failed to take stock", err)
		}
		if n == 0 {
			// The row is locked, so this only happens if the lock was lost.
			p := products[l.ProductID]
			return inventory.Result{}, &inventory.OutOfStockError{Lines: []inventory.ShortLine{
				{ProductID: l.ProductID, Requested: l.Quantity, Available: int(p.Available)},
			}}
		}

		rows[i] = inventory.Reservation{
			OrderID:     orderID,
			ProductID:   l.ProductID,
			ProductName: products[l.ProductID].Name,
			Quantity:    l.Quantity,
			Status:      inventory.StatusReserved,
			ExpiresAt:   expiresAt,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := r.queries.InsertReservation(ctx, r.db, converter.ReservationToInsertParams(rows[i])); err != nil {
			return inventory.Result{}, infra.ClassifyErr(r.logger, "failed to insert reservation", err)
		}
	}

	return inventory.Result{
		OrderID:      orderID,
		Reservations: rows,
		ExpiresAt:    expiresAt,
	}, nil
}

func (r *InventoryRepository) Commit(ctx context.Context, orderID uuid.UUID) (int, error) {
	n, err := r.queries.CommitReservations(ctx, r.db, sqlc.CommitReservationsParams{
		UpdatedAt: pgconv.TimeToPgtype(time.Now().UTC()),
		OrderID:   orderID,
	})
	if err != nil {
		return 0, infra.ClassifyErr(r.logger, "failed to commit reservation", err)
	}
	return int(n), nil
}

func (r *InventoryRepository) Release(ctx context.Context, orderID uuid.UUID, to inventory.Status) (int, error) {
	if to != inventory.StatusReleased && to != inventory.StatusExpired {
		return 0, errs.Newf("cannot release a reservation to %s", to)
	}
	n, err := r.queries.ReleaseReservations(ctx, r.db, sqlc.ReleaseReservationsParams{
		ToStatus:  string(to),
		UpdatedAt: pgconv.TimeToPgtype(time.Now().UTC()),
		OrderID:   orderID,
	})
	if err != nil {
		return 0, infra.ClassifyErr(r.logger, "failed to release reservation", err)
	}
	return int(n), nil
}

func (r *InventoryRepository) Restock(ctx context.Context, orderID uuid.UUID) (int, error) {
	n, err := r.queries.RestockReservations(ctx, r.db, sqlc.RestockReservationsParams{
		UpdatedAt: pgconv.TimeToPgtype(time.Now().UTC()),
		OrderID:   orderID,
	})
	if err != nil {
		return 0, infra.ClassifyErr(r.logger, "failed to restock reservation", err)
	}
	return int(n), nil
}

func (r *InventoryRepository) ReservationsByOrder(ctx context.Context, orderID uuid.UUID) ([]inventory.Reservation, error) {
	rows, err := r.queries.ListReservationsByOrder(ctx, r.db, orderID)
	if err != nil {
		return nil, infra.ClassifyErr(r.logger, "failed to list reservations", err)
	}
	out := make([]inventory.Reservation, len(rows))
	for i, row := range rows {
		out[i] = converter.ReservationFromRow(row)
	}
	return out, nil
}

func (r *InventoryRepository) ExpiredOrders(ctx context.Context, now time.Time, limit int) ([]uuid.UUID, error) {
	if limit <= 0 {
		limit = math.MaxInt32
	}
	ids, err := r.queries.ListExpiredReservationOrders(ctx, r.db, sqlc.ListExpiredReservationOrdersParams{
		Now:      pgconv.TimeToPgtype(now),
		RowLimit: pgconv.IntToInt32(limit),
	})
	if err != nil {
		return nil, infra.ClassifyErr(r.logger, "failed to list expired reservations", err)
	}
	return ids, nil
}

func (r *InventoryRepository) UpsertStock(ctx context.Context, productID uuid.UUID, name string, available int) (inventory.Stock, error) {
	if available < 0 {
		return inventory.Stock{}, infra.WrapRepoErr(r.logger, infra.KindCheckViolated, "negative available stock", nil)
	}
	row, err := r.queries.UpsertProductStock(ctx, r.db, sqlc.UpsertProductStockParams{
		ID:        productID,
		Name:      name,
		Available: pgconv.IntToInt32(available),
		UpdatedAt: pgconv.TimeToPgtype(time.Now().UTC()),
	})
	if err != nil {
		return inventory.Stock{}, infra.ClassifyErr(r.logger, "failed to upsert stock", err)
	}
	return converter.StockFromRow(row), nil
}

func (r *InventoryRepository) Stock(ctx context.Context, productID uuid.UUID) (inventory.Stock, error) {
	row, err := r.queries.GetProduct(ctx, r.db, productID)
	if err != nil {
		return inventory.Stock{}, infra.ClassifyErr(r.logger, "product "+productID.String(), err)
	}
	return converter.StockFromRow(row), nil
}

func (r *InventoryRepository) ListStock(ctx context.Context) ([]inventory.Stock, error) {
	rows, err := r.queries.ListProducts(ctx, r.db)
	if err != nil {
		return nil, infra.ClassifyErr(r.logger, "failed to list stock", err)
	}
	out := make([]inventory.Stock, len(rows))
	for i, row := range rows {
		out[i] = converter.StockFromRow(row)
	}
	return out, nil
}
