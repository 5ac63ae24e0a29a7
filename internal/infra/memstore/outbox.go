package memstore

import (
	"bytes"
	"context"
	"sort"
	"time"

	"order-core/internal/domain/outbox"

	"github.com/google/uuid"
)

type outboxRepo struct{ tx *memTx }

func (r *outboxRepo) Enqueue(_ context.Context, e outbox.Entry) (bool, error) {
	if err := r.tx.writable("enqueue outbox entry"); err != nil {
		return false, err
	}
	st := r.tx.st()
	if _, ok := st.outboxDedup[e.DedupKey]; ok {
		return false, nil
	}
	st.outbox[e.ID] = e
	st.outboxDedup[e.DedupKey] = e.ID
	return true, nil
}

func (r *outboxRepo) ClaimDue(_ context.Context, now time.Time, limit int, leaseUntil time.Time) ([]outbox.Entry, error) {
	if err := r.tx.writable("claim outbox entries"); err != nil {
		return nil, err
	}
	st := r.tx.st()

	var due []outbox.Entry
	for _, e := range st.outbox {
		switch {
		case e.Status == outbox.StatusPending && !e.NextAttemptAt.After(now):
		case e.Status == outbox.StatusProcessing && e.LeaseUntil != nil && !e.LeaseUntil.After(now):
		default:
			continue
		}
		due = append(due, e)
	}
	sortEntries(due, func(e outbox.Entry) time.Time { return e.NextAttemptAt }, false)
	if limit > 0 && len(due) > limit {
		due = due[:limit]
	}

	for i := range due {
		lease := leaseUntil
		due[i].Status = outbox.StatusProcessing
		due[i].LeaseUntil = &lease
		due[i].UpdatedAt = now
		st.outbox[due[i].ID] = due[i]
	}
	return due, nil
}

func (r *outboxRepo) MarkDone(_ context.Context, id uuid.UUID, now time.Time) error {
	return r.update(id, func(e *outbox.Entry) {
		e.Status = outbox.StatusDone
		e.LeaseUntil = nil
		e.UpdatedAt = now
	})
}

func (r *outboxRepo) MarkRetry(_ context.Context, id uuid.UUID, attempts int, next time.Time, lastErr string, now time.Time) error {
	return r.update(id, func(e *outbox.Entry) {
		e.Status = outbox.StatusPending
		e.Attempts = attempts
		e.NextAttemptAt = next
		e.LastError = lastErr
		e.LeaseUntil = nil
		e.UpdatedAt = now
	})
}

func (r *outboxRepo) MarkDeadLettered(_ context.Context, id uuid.UUID, attempts int, lastErr string, now time.Time) error {
	return r.update(id, func(e *outbox.Entry) {
		e.Status = outbox.StatusDeadLettered
		e.Attempts = attempts
		e.LastError = lastErr
		e.LeaseUntil = nil
		e.UpdatedAt = now
	})
}

func (r *outboxRepo) ListDeadLettered(_ context.Context, limit int) ([]outbox.Entry, error) {
	var out []outbox.Entry
	for _, e := range r.tx.st().outbox {
		if e.Status == outbox.StatusDeadLettered {
			out = append(out, e)
		}
	}
	sortEntries(out, func(e outbox.Entry) time.Time { return e.UpdatedAt }, true)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *outboxRepo) Requeue(_ context.Context, id uuid.UUID, now time.Time) error {
	if err := r.tx.writable("requeue outbox entry"); err != nil {
		return err
	}
	st := r.tx.st()
	e, ok := st.outbox[id]
	if !ok || e.Status != outbox.StatusDeadLettered {
		return r.tx.notFound("dead-lettered outbox entry " + id.String())
	}
	e.Status = outbox.StatusPending
	e.Attempts = 0
	e.NextAttemptAt = now
	e.LastError = ""
	e.UpdatedAt = now
	st.outbox[id] = e
	return nil
}

func (r *outboxRepo) update(id uuid.UUID, fn func(e *outbox.Entry)) error {
	if err := r.tx.writable("update outbox entry"); err != nil {
		return err
	}
	st := r.tx.st()
	e, ok := st.outbox[id]
	if !ok {
		return r.tx.notFound("outbox entry " + id.String())
	}
	fn(&e)
	st.outbox[id] = e
	return nil
}

func sortEntries(entries []outbox.Entry, key func(outbox.Entry) time.Time, desc bool) {
	sort.Slice(entries, func(i, j int) bool {
		a, b := key(entries[i]), key(entries[j])
		if !a.Equal(b) {
			if desc {
				return a.After(b)
			}
			return a.Before(b)
		}
		return bytes.Compare(entries[i].ID[:], entries[j].ID[:]) < 0
	})
}

// OutboxEntries lists every entry regardless of status, oldest first.
func (s *Store) OutboxEntries() []outbox.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]outbox.Entry, 0, len(s.st.outbox))
	for _, e := range s.st.outbox {
		out = append(out, e)
	}
	sortEntries(out, func(e outbox.Entry) time.Time { return e.CreatedAt }, false)
	return out
}
