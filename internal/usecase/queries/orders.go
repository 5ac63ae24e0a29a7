package queries

import (
	"context"

	"order-core/internal/domain/cart"
	"order-core/internal/domain/order"
	"order-core/internal/domain/payment"
	"order-core/internal/infra"
	"order-core/internal/pkg/errs"
	"order-core/internal/usecase/shared"

	"github.com/google/uuid"
)

type ListOrdersParams struct {
	Status *order.Status
	After  *Cursor
	Limit  int
}

type OrderQueries interface {
	// GetByID hides orders of other owners behind ErrOrderNotFound.
	GetByID(ctx context.Context, owner cart.Owner, id uuid.UUID) (*OrderView, error)
	GetByIDSystem(ctx context.Context, id uuid.UUID) (*OrderView, error)
	ListByOwner(ctx context.Context, owner cart.Owner, params ListOrdersParams) ([]*OrderListItem, *Cursor, error)
}

type orderQueriesImpl struct {
	uow shared.UnitOfWork
}

func NewOrderQueries(uow shared.UnitOfWork) OrderQueries {
	return &orderQueriesImpl{uow: uow}
}

func (q *orderQueriesImpl) GetByID(ctx context.Context, owner cart.Owner, id uuid.UUID) (*OrderView, error) {
	o, intent, err := q.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !o.IsOwnedBy(owner) {
		return nil, errs.Mark(errs.Newf("order %s not owned by caller", id), errs.ErrOrderNotFound)
	}
	return ToOrderView(o, intent), nil
}

func (q *orderQueriesImpl) GetByIDSystem(ctx context.Context, id uuid.UUID) (*OrderView, error) {
	o, intent, err := q.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToOrderView(o, intent), nil
}

func (q *orderQueriesImpl) load(ctx context.Context, id uuid.UUID) (*order.Order, *payment.Intent, error) {
	var (
		o      *order.Order
		intent *payment.Intent
	)
	err := q.uow.ReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		if o, err = tx.Orders().FindByID(ctx, id); err != nil {
			return err
		}
		intent, err = tx.PaymentIntents().FindByOrderID(ctx, id)
		if infra.IsKind(err, infra.KindNotFound) {
			return nil
		}
		return err
	})
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, nil, errs.Mark(err, errs.ErrOrderNotFound)
		}
		return nil, nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return o, intent, nil
}

func (q *orderQueriesImpl) ListByOwner(ctx context.Context, owner cart.Owner, params ListOrdersParams) ([]*OrderListItem, *Cursor, error) {
	filter := shared.OrderFilter{Status: params.Status, Limit: params.Limit}.Normalize()
	if params.After != nil && params.After.After != "" {
		at, id, err := DecodeAfterCursor(params.After.After)
		if err != nil {
			return nil, nil, errs.Mark(err, ErrInvalidCursor)
		}
		filter.AfterCreatedAt = &at
		filter.AfterID = id
	}

	var orders []*order.Order
	err := q.uow.ReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		orders, err = tx.Orders().ListByOwner(ctx, owner, filter)
		return err
	})
	if err != nil {
		return nil, nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	items := make([]*OrderListItem, len(orders))
	for i, o := range orders {
		items[i] = &OrderListItem{
			ID:        o.ID(),
			Number:    o.Number(),
			Status:    string(o.Status()),
			Currency:  string(o.Currency()),
			Total:     o.Totals().Total.String(),
			CreatedAt: o.CreatedAt(),
		}
	}

	var next *Cursor
	if len(orders) == filter.Limit {
		last := orders[len(orders)-1]
		next = &Cursor{After: EncodeAfterCursor(last.CreatedAt(), last.ID())}
	}
	return items, next, nil
}

var ErrInvalidCursor = errs.New("invalid cursor")

func ToOrderView(o *order.Order, intent *payment.Intent) *OrderView {
	items := o.Items()
	itemViews := make([]OrderItemView, len(items))
	for i, it := range items {
		itemViews[i] = OrderItemView{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice.String(),
			LineTotal:   it.LineTotal().String(),
		}
	}

	totals := o.Totals()
	ts := o.Timestamps()
	view := &OrderView{
		ID:              o.ID(),
		Number:          o.Number(),
		Owner:           o.Owner().String(),
		Status:          string(o.Status()),
		Currency:        string(o.Currency()),
		Items:           itemViews,
		Subtotal:        totals.Subtotal.String(),
		Tax:             totals.Tax.String(),
		Shipping:        totals.Shipping.String(),
		Total:           totals.Total.String(),
		ShippingAddress: addressView(o.ShippingAddress()),
		BillingAddress:  addressView(o.BillingAddress()),
		PaidAt:          ts.PaidAt,
		ShippedAt:       ts.ShippedAt,
		DeliveredAt:     ts.DeliveredAt,
		FailedAt:        ts.FailedAt,
		CanceledAt:      ts.CanceledAt,
		RefundedAt:      ts.RefundedAt,
		CreatedAt:       o.CreatedAt(),
		UpdatedAt:       o.UpdatedAt(),
	}
	if intent != nil {
		view.Payment = &PaymentView{
			GatewayReference: intent.GatewayReference,
			Status:           string(intent.Status),
			Amount:           intent.Amount.String(),
		}
	}
	return view
}

func addressView(a order.Address) AddressView {
	return AddressView{
		Name:       a.Name,
		Line1:      a.Line1,
		Line2:      a.Line2,
		City:       a.City,
		Region:     a.Region,
		PostalCode: a.PostalCode,
		Country:    a.Country,
	}
}
