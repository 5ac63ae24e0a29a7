package converter

import (
	"order-core/internal/domain/idempotency"
	sqlc "order-core/internal/infra/sqlc/generated"
	"order-core/internal/pkg/pgconv"
)

func RecordToInsertParams(rec idempotency.Record) sqlc.TryInsertIdempotencyRecordParams {
	return sqlc.TryInsertIdempotencyRecordParams{
		Scope:       string(rec.Scope),
		Key:         rec.Key,
		RequestHash: rec.RequestHash,
		Status:      string(rec.Status),
		OrderID:     pgconv.UUIDPtrToPgtype(rec.OrderID),
		Response:    rec.Response,
		CreatedAt:   pgconv.TimeToPgtype(rec.CreatedAt),
		ExpiresAt:   pgconv.OptionalTimeToPgtype(rec.ExpiresAt),
	}
}

func RecordFromRow(row sqlc.IdempotencyRecords) *idempotency.Record {
	return &idempotency.Record{
		Scope:       idempotency.Scope(row.Scope),
		Key:         row.Key,
		RequestHash: row.RequestHash,
		Status:      idempotency.Status(row.Status),
		OrderID:     pgconv.UUIDPtrFromPgtype(row.OrderID),
		Response:    row.Response,
		CreatedAt:   pgconv.TimeFromPgtype(row.CreatedAt),
		ExpiresAt:   pgconv.TimeFromPgtype(row.ExpiresAt),
	}
}
