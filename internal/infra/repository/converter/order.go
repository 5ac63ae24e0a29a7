package converter

import (
	"order-core/internal/domain/cart"
	"order-core/internal/domain/money"
	"order-core/internal/domain/order"
	sqlc "order-core/internal/infra/sqlc/generated"
	"order-core/internal/pkg/errs"
	"order-core/internal/pkg/pgconv"

	"github.com/google/uuid"
)

func OrderToCreateParams(o *order.Order) sqlc.CreateOrderParams {
	t := o.Totals()
	return sqlc.CreateOrderParams{
		ID:            o.ID(),
		Number:        o.Number(),
		OwnerKind:     string(o.Owner().Kind),
		OwnerID:       o.Owner().ID,
		Currency:      o.Currency().String(),
		SubtotalMinor: t.Subtotal.Minor(),
		TaxMinor:      t.Tax.Minor(),
		ShippingMinor: t.Shipping.Minor(),
		TotalMinor:    t.Total.Minor(),
		Status:        string(o.Status()),
		CreatedAt:     pgconv.TimeToPgtype(o.CreatedAt()),
		UpdatedAt:     pgconv.TimeToPgtype(o.UpdatedAt()),
	}
}

func OrderItemParams(o *order.Order) []sqlc.InsertOrderItemParams {
	items := o.Items()
	out := make([]sqlc.InsertOrderItemParams, len(items))
	for i, it := range items {
		out[i] = sqlc.InsertOrderItemParams{
			OrderID:        o.ID(),
			Position:       pgconv.IntToInt32(i),
			ProductID:      it.ProductID,
			ProductName:    it.ProductName,
			Quantity:       pgconv.IntToInt32(it.Quantity),
			UnitPriceMinor: it.UnitPrice.Minor(),
		}
	}
	return out
}

func OrderAddressParams(o *order.Order) []sqlc.InsertOrderAddressParams {
	return []sqlc.InsertOrderAddressParams{
		addressParams(o.ID(), order.AddressShipping, o.ShippingAddress()),
		addressParams(o.ID(), order.AddressBilling, o.BillingAddress()),
	}
}

func addressParams(orderID uuid.UUID, kind order.AddressKind, a order.Address) sqlc.InsertOrderAddressParams {
	return sqlc.InsertOrderAddressParams{
		OrderID:    orderID,
		Kind:       string(kind),
		Name:       a.Name,
		Line1:      a.Line1,
		Line2:      a.Line2,
		City:       a.City,
		Region:     a.Region,
		PostalCode: a.PostalCode,
		Country:    a.Country,
	}
}

func OrderToStatusParams(o *order.Order, from order.Status) sqlc.UpdateOrderStatusParams {
	ts := o.Timestamps()
	return sqlc.UpdateOrderStatusParams{
		Status:      string(o.Status()),
		PaidAt:      pgconv.TimePtrToPgtype(ts.PaidAt),
		ShippedAt:   pgconv.TimePtrToPgtype(ts.ShippedAt),
		DeliveredAt: pgconv.TimePtrToPgtype(ts.DeliveredAt),
		FailedAt:    pgconv.TimePtrToPgtype(ts.FailedAt),
		CanceledAt:  pgconv.TimePtrToPgtype(ts.CanceledAt),
		RefundedAt:  pgconv.TimePtrToPgtype(ts.RefundedAt),
		UpdatedAt:   pgconv.TimeToPgtype(o.UpdatedAt()),
		ID:          o.ID(),
		FromStatus:  string(from),
	}
}

// OrderFromRows rebuilds an order from its row plus its own item and address rows.
func OrderFromRows(row sqlc.Orders, items []sqlc.OrderItems, addresses []sqlc.OrderAddresses) (*order.Order, error) {
	currency, err := money.ParseCurrency(row.Currency)
	if err != nil {
		return nil, errs.Wrapf(err, "order %s", row.ID)
	}

	amounts := make([]money.Money, 0, 4)
	for _, minor := range []int64{row.SubtotalMinor, row.TaxMinor, row.ShippingMinor, row.TotalMinor} {
		m, err := money.New(minor)
		if err != nil {
			return nil, errs.Wrapf(err, "order %s totals", row.ID)
		}
		amounts = append(amounts, m)
	}

	p := order.ReconstructParams{
		ID:       row.ID,
		Number:   row.Number,
		Owner:    cart.Owner{Kind: cart.OwnerKind(row.OwnerKind), ID: row.OwnerID},
		Currency: currency,
		Totals: order.Totals{
			Subtotal: amounts[0],
			Tax:      amounts[1],
			Shipping: amounts[2],
			Total:    amounts[3],
		},
		Status: order.Status(row.Status),
		Timestamps: order.Timestamps{
			PaidAt:      pgconv.TimePtrFromPgtype(row.PaidAt),
			ShippedAt:   pgconv.TimePtrFromPgtype(row.ShippedAt),
			DeliveredAt: pgconv.TimePtrFromPgtype(row.DeliveredAt),
			FailedAt:    pgconv.TimePtrFromPgtype(row.FailedAt),
			CanceledAt:  pgconv.TimePtrFromPgtype(row.CanceledAt),
			RefundedAt:  pgconv.TimePtrFromPgtype(row.RefundedAt),
		},
		CreatedAt: pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt: pgconv.TimeFromPgtype(row.UpdatedAt),
	}

	p.Items = make([]order.Item, len(items))
	for i, it := range items {
		price, err := money.New(it.UnitPriceMinor)
		if err != nil {
			return nil, errs.Wrapf(err, "order %s item %d", row.ID, it.Position)
		}
		p.Items[i] = order.Item{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    int(it.Quantity),
			UnitPrice:   price,
		}
	}

	for _, a := range addresses {
		addr := order.Address{
			Name:       a.Name,
			Line1:      a.Line1,
			Line2:      a.Line2,
			City:       a.City,
			Region:     a.Region,
			PostalCode: a.PostalCode,
			Country:    a.Country,
		}
		switch order.AddressKind(a.Kind) {
		case order.AddressShipping:
			p.Shipping = addr
		case order.AddressBilling:
			p.Billing = addr
		}
	}

	return order.Reconstruct(p), nil
}
