package repository

import (
	"context"
	"log/slog"

	"order-core/internal/domain/cart"
	"order-core/internal/domain/order"
	"order-core/internal/infra"
	"order-core/internal/infra/repository/converter"
	sqlc "order-core/internal/infra/sqlc/generated"
	"order-core/internal/pkg/pgconv"
	"order-core/internal/usecase/shared"

	"github.com/google/uuid"
)

type OrderWriteQueries interface {
	CreateOrder(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateOrderParams) error
	InsertOrderItem(ctx context.Context, db sqlc.DBTX, arg sqlc.InsertOrderItemParams) error
	InsertOrderAddress(ctx context.Context, db sqlc.DBTX, arg sqlc.InsertOrderAddressParams) error
	GetOrder(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Orders, error)
	GetOrderForUpdate(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Orders, error)
	ListOrderItems(ctx context.Context, db sqlc.DBTX, orderIds []uuid.UUID) ([]sqlc.OrderItems, error)
	ListOrderAddresses(ctx context.Context, db sqlc.DBTX, orderIds []uuid.UUID) ([]sqlc.OrderAddresses, error)
	UpdateOrderStatus(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateOrderStatusParams) (int64, error)
	ListOrdersByOwner(ctx context.Context, db sqlc.DBTX, arg sqlc.ListOrdersByOwnerParams) ([]sqlc.Orders, error)
}

type OrderRepository struct {
	queries OrderWriteQueries
	db      sqlc.DBTX
	logger  *slog.Logger
}

func NewOrderRepository(queries OrderWriteQueries, db sqlc.DBTX, logger *slog.Logger) *OrderRepository {
	return &OrderRepository{
		queries: queries,
		db:      db,
		logger:  logger,
	}
}

func (r *OrderRepository) Create(ctx context.Context, o *order.Order) error {
	if err := r.queries.CreateOrder(ctx, r.db, converter.OrderToCreateParams(o)); err != nil {
		return infra.ClassifyErr(r.logger, "failed to create order", err)
	}
	for _, item := range converter.OrderItemParams(o) {
		if err := r.queries.InsertOrderItem(ctx, r.db, item); err != nil {
			return infra.ClassifyErr(r.logger, "failed to insert order item", err)
		}
	}
	for _, addr := range converter.OrderAddressParams(o) {
		if err := r.queries.InsertOrderAddress(ctx, r.db, addr); err != nil {
			return infra.ClassifyErr(r.logger, "failed to insert order address", err)
		}
	}
	return nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	row, err := r.queries.GetOrder(ctx, r.db, id)
	if err != nil {
		return nil, infra.ClassifyErr(r.logger, "order "+id.String(), err)
	}
	return r.hydrateOne(ctx, row)
}

func (r *OrderRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	row, err := r.queries.GetOrderForUpdate(ctx, r.db, id)
	if err != nil {
		return nil, infra.ClassifyErr(r.logger, "order "+id.String(), err)
	}
	return r.hydrateOne(ctx, row)
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, o *order.Order, from order.Status) error {
	n, err := r.queries.UpdateOrderStatus(ctx, r.db, converter.OrderToStatusParams(o, from))
	if err != nil {
		return infra.ClassifyErr(r.logger, "failed to update order status", err)
	}
	if n == 0 {
		return infra.WrapRepoErr(r.logger, infra.KindNotFound, "order "+o.ID().String()+" in status "+string(from), nil)
	}
	return nil
}

func (r *OrderRepository) ListByOwner(ctx context.Context, owner cart.Owner, filter shared.OrderFilter) ([]*order.Order, error) {
	filter = filter.Normalize()
	params := sqlc.ListOrdersByOwnerParams{
		OwnerKind:      string(owner.Kind),
		OwnerID:        owner.ID,
		AfterCreatedAt: pgconv.TimePtrToPgtype(filter.AfterCreatedAt),
		AfterID:        filter.AfterID,
		RowLimit:       pgconv.IntToInt32(filter.Limit),
	}
	if filter.Status != nil {
		params.Status = pgconv.StringToPgtype(string(*filter.Status))
	}

	rows, err := r.queries.ListOrdersByOwner(ctx, r.db, params)
	if err != nil {
		return nil, infra.ClassifyErr(r.logger, "failed to list orders", err)
	}
	return r.hydrate(ctx, rows)
}

func (r *OrderRepository) hydrateOne(ctx context.Context, row sqlc.Orders) (*order.Order, error) {
	out, err := r.hydrate(ctx, []sqlc.Orders{row})
	if err != nil {
		return nil, err
	}
	return out[0], nil
}

// hydrate loads items and addresses for all rows in two queries.
func (r *OrderRepository) hydrate(ctx context.Context, rows []sqlc.Orders) ([]*order.Order, error) {
	if len(rows) == 0 {
		return []*order.Order{}, nil
	}
	ids := make([]uuid.UUID, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}

	items, err := r.queries.ListOrderItems(ctx, r.db, ids)
	if err != nil {
		return nil, infra.ClassifyErr(r.logger, "failed to load order items", err)
	}
	addresses, err := r.queries.ListOrderAddresses(ctx, r.db, ids)
	if err != nil {
		return nil, infra.ClassifyErr(r.logger, "failed to load order addresses", err)
	}

	itemsByOrder := make(map[uuid.UUID][]sqlc.OrderItems, len(rows))
	for _, it := range items {
		itemsByOrder[it.OrderID] = append(itemsByOrder[it.OrderID], it)
	}
	addrByOrder := make(map[uuid.UUID][]sqlc.OrderAddresses, len(rows))
	for _, a := range addresses {
		addrByOrder[a.OrderID] = append(addrByOrder[a.OrderID], a)
	}

	out := make([]*order.Order, len(rows))
	for i, row := range rows {
		o, err := converter.OrderFromRows(row, itemsByOrder[row.ID], addrByOrder[row.ID])
		if err != nil {
			return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to decode order", err)
		}
		out[i] = o
	}
	return out, nil
}
