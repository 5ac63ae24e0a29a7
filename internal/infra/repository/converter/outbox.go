package converter

import (
	"order-core/internal/domain/outbox"
	sqlc "order-core/internal/infra/sqlc/generated"
	"order-core/internal/pkg/pgconv"
)

func EntryToEnqueueParams(e outbox.Entry) sqlc.EnqueueOutboxEntryParams {
	return sqlc.EnqueueOutboxEntryParams{
		ID:            e.ID,
		Kind:          string(e.Kind),
		DedupKey:      e.DedupKey,
		Payload:       e.Payload,
		Status:        string(e.Status),
		Attempts:      pgconv.IntToInt32(e.Attempts),
		NextAttemptAt: pgconv.TimeToPgtype(e.NextAttemptAt),
		CreatedAt:     pgconv.TimeToPgtype(e.CreatedAt),
		UpdatedAt:     pgconv.TimeToPgtype(e.UpdatedAt),
	}
}

func EntryFromRow(row sqlc.OutboxEntries) outbox.Entry {
	return outbox.Entry{
		ID:            row.ID,
		Kind:          outbox.Kind(row.Kind),
		DedupKey:      row.DedupKey,
		Payload:       row.Payload,
		Status:        outbox.Status(row.Status),
		Attempts:      int(row.Attempts),
		NextAttemptAt: pgconv.TimeFromPgtype(row.NextAttemptAt),
		LeaseUntil:    pgconv.TimePtrFromPgtype(row.LeaseUntil),
		LastError:     row.LastError,
		CreatedAt:     pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt:     pgconv.TimeFromPgtype(row.UpdatedAt),
	}
}
