package memstore

import (
	"context"
	"time"

	"order-core/internal/domain/idempotency"

	"github.com/google/uuid"
)

type idempotencyRepo struct{ tx *memTx }

func (r *idempotencyRepo) TryInsert(_ context.Context, rec idempotency.Record) (bool, error) {
	if err := r.tx.writable("insert idempotency record"); err != nil {
		return false, err
	}
	st := r.tx.st()
	k := idemKey{scope: rec.Scope, key: rec.Key}
	if _, ok := st.idempotency[k]; ok {
		return false, nil
	}
	st.idempotency[k] = rec
	return true, nil
}

func (r *idempotencyRepo) Get(_ context.Context, scope idempotency.Scope, key string) (*idempotency.Record, error) {
	rec, ok := r.tx.st().idempotency[idemKey{scope: scope, key: key}]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (r *idempotencyRepo) Complete(_ context.Context, scope idempotency.Scope, key string, orderID *uuid.UUID, response []byte) error {
	if err := r.tx.writable("complete idempotency record"); err != nil {
		return err
	}
	st := r.tx.st()
	k := idemKey{scope: scope, key: key}
	rec, ok := st.idempotency[k]
	if !ok {
		return r.tx.notFound("idempotency record " + key)
	}
	rec.Status = idempotency.StatusCompleted
	rec.OrderID = orderID
	rec.Response = response
	st.idempotency[k] = rec
	return nil
}

func (r *idempotencyRepo) DeleteExpired(_ context.Context, scope idempotency.Scope, now time.Time) (int64, error) {
	if err := r.tx.writable("delete idempotency records"); err != nil {
		return 0, err
	}
	st := r.tx.st()
	var n int64
	for k, rec := range st.idempotency {
		if k.scope == scope && rec.Expired(now) {
			delete(st.idempotency, k)
			n++
		}
	}
	return n, nil
}
