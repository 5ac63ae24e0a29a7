package repository

import (
	"context"
	"log/slog"
	"time"

	"order-core/internal/domain/idempotency"
	"order-core/internal/infra"
	"order-core/internal/infra/repository/converter"
	sqlc "order-core/internal/infra/sqlc/generated"
	"order-core/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type IdempotencyWriteQueries interface {
	TryInsertIdempotencyRecord(ctx context.Context, db sqlc.DBTX, arg sqlc.TryInsertIdempotencyRecordParams) (int64, error)
	GetIdempotencyRecord(ctx context.Context, db sqlc.DBTX, arg sqlc.GetIdempotencyRecordParams) (sqlc.IdempotencyRecords, error)
	CompleteIdempotencyRecord(ctx context.Context, db sqlc.DBTX, arg sqlc.CompleteIdempotencyRecordParams) (int64, error)
	DeleteExpiredIdempotencyRecords(ctx context.Context, db sqlc.DBTX, arg sqlc.DeleteExpiredIdempotencyRecordsParams) (int64, error)
}

type IdempotencyRepository struct {
	queries IdempotencyWriteQueries
	db      sqlc.DBTX
	logger  *slog.Logger
}

func NewIdempotencyRepository(queries IdempotencyWriteQueries, db sqlc.DBTX, logger *slog.Logger) *IdempotencyRepository {
	return &IdempotencyRepository{
		queries: queries,
		db:      db,
		logger:  logger,
	}
}

// TryInsert relies on ON CONFLICT DO NOTHING: a concurrent insert of the same key
// blocks until the first transaction ends, then reports false.
func (r *IdempotencyRepository) TryInsert(ctx context.Context, rec idempotency.Record) (bool, error) {
	n, err := r.queries.TryInsertIdempotencyRecord(ctx, r.db, converter.RecordToInsertParams(rec))
	if err != nil {
		return false, infra.ClassifyErr(r.logger, "failed to insert idempotency record", err)
	}
	return n > 0, nil
}

func (r *IdempotencyRepository) Get(ctx context.Context, scope idempotency.Scope, key string) (*idempotency.Record, error) {
	row, err := r.queries.GetIdempotencyRecord(ctx, r.db, sqlc.GetIdempotencyRecordParams{
		Scope: string(scope),
		Key:   key,
	})
	if pgconv.IsNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, infra.ClassifyErr(r.logger, "failed to get idempotency record", err)
	}
	return converter.RecordFromRow(row), nil
}

func (r *IdempotencyRepository) Complete(ctx context.Context, scope idempotency.Scope, key string, orderID *uuid.UUID, response []byte) error {
	n, err := r.queries.CompleteIdempotencyRecord(ctx, r.db, sqlc.CompleteIdempotencyRecordParams{
		OrderID:  pgconv.UUIDPtrToPgtype(orderID),
		Response: response,
		Scope:    string(scope),
		Key:      key,
	})
	if err != nil {
		return infra.ClassifyErr(r.logger, "failed to complete idempotency record", err)
	}
	if n == 0 {
		return infra.WrapRepoErr(r.logger, infra.KindNotFound, "idempotency record "+key, nil)
	}
	return nil
}

func (r *IdempotencyRepository) DeleteExpired(ctx context.Context, scope idempotency.Scope, now time.Time) (int64, error) {
	count, err := r.queries.DeleteExpiredIdempotencyRecords(ctx, r.db, sqlc.DeleteExpiredIdempotencyRecordsParams{
		Scope: string(scope),
		Now:   pgconv.TimeToPgtype(now),
	})
	if err != nil {
		return 0, infra.ClassifyErr(r.logger, "failed to delete expired idempotency records", err)
	}
	return count, nil
}
