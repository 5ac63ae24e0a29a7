package memstore

import (
	"bytes"
	"context"
	"sort"
	"time"

	"order-core/internal/domain/inventory"
	"order-core/internal/infra"
	"order-core/internal/pkg/errs"

	"github.com/google/uuid"
)

type inventoryRepo struct{ tx *memTx }

func (r *inventoryRepo) Reserve(_ context.Context, orderID uuid.UUID, lines []inventory.Line, expiresAt time.Time) (inventory.Result, error) {
	if err := r.tx.writable("reserve"); err != nil {
		return inventory.Result{}, err
	}
	st := r.tx.st()
	if len(st.reservations[orderID]) > 0 {
		return inventory.Result{}, r.tx.duplicate("reservation for order " + orderID.String())
	}

	// Check every line before touching any counter so failure leaves no trace.
	var short []inventory.ShortLine
	for _, l := range lines {
		p, ok := st.products[l.ProductID]
		if !ok {
			return inventory.Result{}, errs.Mark(r.tx.notFound("product "+l.ProductID.String()), errs.ErrProductNotFound)
		}
		if p.Available < l.Quantity {
			short = append(short, inventory.ShortLine{ProductID: l.ProductID, Requested: l.Quantity, Available: p.Available})
		}
	}
	if len(short) > 0 {
		return inventory.Result{}, &inventory.OutOfStockError{Lines: short}
	}

	now := time.Now().UTC()
	rows := make([]inventory.Reservation, len(lines))
	for i, l := range lines {
		p := st.products[l.ProductID]
		p.Available -= l.Quantity
		p.Reserved += l.Quantity
		st.products[l.ProductID] = p

		rows[i] = inventory.Reservation{
			OrderID:     orderID,
			ProductID:   l.ProductID,
			ProductName: p.Name,
			Quantity:    l.Quantity,
			Status:      inventory.StatusReserved,
			ExpiresAt:   expiresAt,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
	}
	st.reservations[orderID] = rows

	return inventory.Result{
		OrderID:      orderID,
		Reservations: append([]inventory.Reservation(nil), rows...),
		ExpiresAt:    expiresAt,
	}, nil
}

func (r *inventoryRepo) Commit(_ context.Context, orderID uuid.UUID) (int, error) {
	return r.move(orderID, inventory.StatusReserved, inventory.StatusCommitted, func(p *inventory.Stock, q int) {
		p.Reserved -= q
		p.Sold += q
	})
}

func (r *inventoryRepo) Release(_ context.Context, orderID uuid.UUID, to inventory.Status) (int, error) {
	return r.move(orderID, inventory.StatusReserved, to, func(p *inventory.Stock, q int) {
		p.Reserved -= q
		p.Available += q
	})
}

func (r *inventoryRepo) Restock(_ context.Context, orderID uuid.UUID) (int, error) {
	return r.move(orderID, inventory.StatusCommitted, inventory.StatusRestocked, func(p *inventory.Stock, q int) {
		p.Sold -= q
		p.Available += q
	})
}

// move is the conditional status update shared by commit, release and restock.
// Rows not in from are left alone, which makes every caller idempotent.
func (r *inventoryRepo) move(orderID uuid.UUID, from, to inventory.Status, adjust func(p *inventory.Stock, q int)) (int, error) {
	if err := r.tx.writable("move reservation"); err != nil {
		return 0, err
	}
	st := r.tx.st()
	rows := st.reservations[orderID]
	moved := 0
	for i := range rows {
		if rows[i].Status != from {
			continue
		}
		p, ok := st.products[rows[i].ProductID]
		if !ok {
			return 0, infra.WrapRepoErr(r.tx.store.logger, infra.KindForeignKeyViolated, "product "+rows[i].ProductID.String(), nil)
		}
		adjust(&p, rows[i].Quantity)
		st.products[rows[i].ProductID] = p
		rows[i].Status = to
		rows[i].UpdatedAt = time.Now().UTC()
		moved++
	}
	return moved, nil
}

func (r *inventoryRepo) ReservationsByOrder(_ context.Context, orderID uuid.UUID) ([]inventory.Reservation, error) {
	return append([]inventory.Reservation(nil), r.tx.st().reservations[orderID]...), nil
}

func (r *inventoryRepo) ExpiredOrders(_ context.Context, now time.Time, limit int) ([]uuid.UUID, error) {
	type due struct {
		orderID   uuid.UUID
		expiresAt time.Time
	}
	var found []due
	for orderID, rows := range r.tx.st().reservations {
		for _, row := range rows {
			if row.Status == inventory.StatusReserved && !row.ExpiresAt.After(now) {
				found = append(found, due{orderID: orderID, expiresAt: row.ExpiresAt})
				break
			}
		}
	}
	sort.Slice(found, func(i, j int) bool {
		if !found[i].expiresAt.Equal(found[j].expiresAt) {
			return found[i].expiresAt.Before(found[j].expiresAt)
		}
		return bytes.Compare(found[i].orderID[:], found[j].orderID[:]) < 0
	})
	if limit > 0 && len(found) > limit {
		found = found[:limit]
	}

	ids := make([]uuid.UUID, len(found))
	for i, d := range found {
		ids[i] = d.orderID
	}
	return ids, nil
}

func (r *inventoryRepo) UpsertStock(_ context.Context, productID uuid.UUID, name string, available int) (inventory.Stock, error) {
	if err := r.tx.writable("upsert stock"); err != nil {
		return inventory.Stock{}, err
	}
	if available < 0 {
		return inventory.Stock{}, infra.WrapRepoErr(r.tx.store.logger, infra.KindCheckViolated, "negative available stock", nil)
	}
	st := r.tx.st()
	p, ok := st.products[productID]
	if !ok {
		p = inventory.Stock{ProductID: productID}
	}
	if name != "" {
		p.Name = name
	}
	p.Available = available
	st.products[productID] = p
	return p, nil
}

func (r *inventoryRepo) Stock(_ context.Context, productID uuid.UUID) (inventory.Stock, error) {
	p, ok := r.tx.st().products[productID]
	if !ok {
		return inventory.Stock{}, r.tx.notFound("product " + productID.String())
	}
	return p, nil
}

func (r *inventoryRepo) ListStock(_ context.Context) ([]inventory.Stock, error) {
	out := make([]inventory.Stock, 0, len(r.tx.st().products))
	for _, p := range r.tx.st().products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return bytes.Compare(out[i].ProductID[:], out[j].ProductID[:]) < 0
	})
	return out, nil
}
