package memstore

import (
	"bytes"
	"context"
	"sort"
	"time"

	"order-core/internal/domain/cart"
	"order-core/internal/domain/order"
	"order-core/internal/usecase/shared"

	"github.com/google/uuid"
)

type orderRepo struct{ tx *memTx }

func (r *orderRepo) Create(_ context.Context, o *order.Order) error {
	if err := r.tx.writable("create order"); err != nil {
		return err
	}
	st := r.tx.st()
	if _, ok := st.orders[o.ID()]; ok {
		return r.tx.duplicate("order " + o.ID().String())
	}
	p := o.Params()
	// Postgres keeps microseconds; keyset cursors rely on matching precision.
	p.CreatedAt = p.CreatedAt.Truncate(time.Microsecond)
	p.UpdatedAt = p.UpdatedAt.Truncate(time.Microsecond)
	st.orders[o.ID()] = p
	return nil
}

func (r *orderRepo) FindByID(_ context.Context, id uuid.UUID) (*order.Order, error) {
	p, ok := r.tx.st().orders[id]
	if !ok {
		return nil, r.tx.notFound("order " + id.String())
	}
	return order.Reconstruct(p), nil
}

// FindByIDForUpdate needs no row lock: the transaction already holds the store.
func (r *orderRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	return r.FindByID(ctx, id)
}

func (r *orderRepo) UpdateStatus(_ context.Context, o *order.Order, from order.Status) error {
	if err := r.tx.writable("update order status"); err != nil {
		return err
	}
	st := r.tx.st()
	stored, ok := st.orders[o.ID()]
	if !ok || stored.Status != from {
		return r.tx.notFound("order " + o.ID().String() + " in status " + string(from))
	}
	next := o.Params()
	stored.Status = next.Status
	stored.Timestamps = next.Timestamps
	stored.UpdatedAt = next.UpdatedAt
	st.orders[o.ID()] = stored
	return nil
}

func (r *orderRepo) ListByOwner(_ context.Context, owner cart.Owner, filter shared.OrderFilter) ([]*order.Order, error) {
	filter = filter.Normalize()

	var rows []order.ReconstructParams
	for _, p := range r.tx.st().orders {
		if p.Owner != owner {
			continue
		}
		if filter.Status != nil && p.Status != *filter.Status {
			continue
		}
		if filter.AfterCreatedAt != nil && !olderThan(p, *filter.AfterCreatedAt, filter.AfterID) {
			continue
		}
		rows = append(rows, p)
	}

	sort.Slice(rows, func(i, j int) bool {
		return olderThan(rows[j], rows[i].CreatedAt, rows[i].ID)
	})
	if len(rows) > filter.Limit {
		rows = rows[:filter.Limit]
	}

	out := make([]*order.Order, len(rows))
	for i, p := range rows {
		out[i] = order.Reconstruct(p)
	}
	return out, nil
}

// olderThan reports whether p comes after the keyset position (at, id) in newest-first order.
func olderThan(p order.ReconstructParams, at time.Time, id uuid.UUID) bool {
	if !p.CreatedAt.Equal(at) {
		return p.CreatedAt.Before(at)
	}
	return bytes.Compare(p.ID[:], id[:]) < 0
}
