package repository

import (
	"bytes"
	"context"
	"log/slog"
	"math"
	"sort"
	"time"

	"order-core/internal/domain/outbox"
	"order-core/internal/infra"
	"order-core/internal/infra/repository/converter"
	sqlc "order-core/internal/infra/sqlc/generated"
	"order-core/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type OutboxWriteQueries interface {
	EnqueueOutboxEntry(ctx context.Context, db sqlc.DBTX, arg sqlc.EnqueueOutboxEntryParams) (int64, error)
	ClaimDueOutboxEntries(ctx context.Context, db sqlc.DBTX, arg sqlc.ClaimDueOutboxEntriesParams) ([]sqlc.OutboxEntries, error)
	MarkOutboxDone(ctx context.Context, db sqlc.DBTX, arg sqlc.MarkOutboxDoneParams) (int64, error)
	MarkOutboxRetry(ctx context.Context, db sqlc.DBTX, arg sqlc.MarkOutboxRetryParams) (int64, error)
	MarkOutboxDeadLettered(ctx context.Context, db sqlc.DBTX, arg sqlc.MarkOutboxDeadLetteredParams) (int64, error)
	ListDeadLetteredOutboxEntries(ctx context.Context, db sqlc.DBTX, rowLimit int32) ([]sqlc.OutboxEntries, error)
	RequeueOutboxEntry(ctx context.Context, db sqlc.DBTX, arg sqlc.RequeueOutboxEntryParams) (int64, error)
}

type OutboxRepository struct {
	queries OutboxWriteQueries
	db      sqlc.DBTX
	logger  *slog.Logger
}

func NewOutboxRepository(queries OutboxWriteQueries, db sqlc.DBTX, logger *slog.Logger) *OutboxRepository {
	return &OutboxRepository{
		queries: queries,
		db:      db,
		logger:  logger,
	}
}

func (r *OutboxRepository) Enqueue(ctx context.Context, e outbox.Entry) (bool, error) {
	n, err := r.queries.EnqueueOutboxEntry(ctx, r.db, converter.EntryToEnqueueParams(e))
	if err != nil {
		return false, infra.ClassifyErr(r.logger, "failed to enqueue outbox entry", err)
	}
	return n > 0, nil
}

// ClaimDue skips rows another worker holds locked, so concurrent claimers never share an entry.
func (r *OutboxRepository) ClaimDue(ctx context.Context, now time.Time, limit int, leaseUntil time.Time) ([]outbox.Entry, error) {
	if limit <= 0 {
		limit = math.MaxInt32
	}
	rows, err := r.queries.ClaimDueOutboxEntries(ctx, r.db, sqlc.ClaimDueOutboxEntriesParams{
		Now:        pgconv.TimeToPgtype(now),
		RowLimit:   pgconv.IntToInt32(limit),
		LeaseUntil: pgconv.TimeToPgtype(leaseUntil),
	})
	if err != nil {
		return nil, infra.ClassifyErr(r.logger, "failed to claim outbox entries", err)
	}

	out := make([]outbox.Entry, len(rows))
	for i, row := range rows {
		out[i] = converter.EntryFromRow(row)
	}
	// UPDATE ... RETURNING has no defined order.
	sort.Slice(out, func(i, j int) bool {
		if !out[i].NextAttemptAt.Equal(out[j].NextAttemptAt) {
			return out[i].NextAttemptAt.Before(out[j].NextAttemptAt)
		}
		return bytes.Compare(out[i].ID[:], out[j].ID[:]) < 0
	})
	return out, nil
}

func (r *OutboxRepository) MarkDone(ctx context.Context, id uuid.UUID, now time.Time) error {
	n, err := r.queries.MarkOutboxDone(ctx, r.db, sqlc.MarkOutboxDoneParams{
		Now: pgconv.TimeToPgtype(now),
		ID:  id,
	})
	return r.checkUpdated("mark outbox entry done", id, n, err)
}

func (r *OutboxRepository) MarkRetry(ctx context.Context, id uuid.UUID, attempts int, next time.Time, lastErr string, now time.Time) error {
	n, err := r.queries.MarkOutboxRetry(ctx, r.db, sqlc.MarkOutboxRetryParams{
		Attempts:      pgconv.IntToInt32(attempts),
		NextAttemptAt: pgconv.TimeToPgtype(next),
		LastError:     lastErr,
		Now:           pgconv.TimeToPgtype(now),
		ID:            id,
	})
	return r.checkUpdated("schedule outbox retry", id, n, err)
}

func (r *OutboxRepository) MarkDeadLettered(ctx context.Context, id uuid.UUID, attempts int, lastErr string, now time.Time) error {
	n, err := r.queries.MarkOutboxDeadLettered(ctx, r.db, sqlc.MarkOutboxDeadLetteredParams{
		Attempts:  pgconv.IntToInt32(attempts),
		LastError: lastErr,
		Now:       pgconv.TimeToPgtype(now),
		ID:        id,
	})
	return r.checkUpdated("dead-letter outbox entry", id, n, err)
}

func (r *OutboxRepository) ListDeadLettered(ctx context.Context, limit int) ([]outbox.Entry, error) {
	if limit <= 0 {
		limit = math.MaxInt32
	}
	rows, err := r.queries.ListDeadLetteredOutboxEntries(ctx, r.db, pgconv.IntToInt32(limit))
	if err != nil {
		return nil, infra.ClassifyErr(r.logger, "failed to list dead-lettered entries", err)
	}
	out := make([]outbox.Entry, len(rows))
	for i, row := range rows {
		out[i] = converter.EntryFromRow(row)
	}
	return out, nil
}

func (r *OutboxRepository) Requeue(ctx context.Context, id uuid.UUID, now time.Time) error {
	n, err := r.queries.RequeueOutboxEntry(ctx, r.db, sqlc.RequeueOutboxEntryParams{
		Now: pgconv.TimeToPgtype(now),
		ID:  id,
	})
	if err != nil {
		return infra.ClassifyErr(r.logger, "failed to requeue outbox entry", err)
	}
	if n == 0 {
		return infra.WrapRepoErr(r.logger, infra.KindNotFound, "dead-lettered outbox entry "+id.String(), nil)
	}
	return nil
}

func (r *OutboxRepository) checkUpdated(op string, id uuid.UUID, n int64, err error) error {
	if err != nil {
		return infra.ClassifyErr(r.logger, "failed to "+op, err)
	}
	if n == 0 {
		return infra.WrapRepoErr(r.logger, infra.KindNotFound, "outbox entry "+id.String(), nil)
	}
	return nil
}
