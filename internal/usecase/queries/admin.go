package queries

import (
	"context"

	"order-core/internal/domain/outbox"
	"order-core/internal/pkg/errs"
	"order-core/internal/usecase/shared"
)

type AdminQueries interface {
	DeadLetters(ctx context.Context, limit int) ([]*OutboxEntryView, error)
	Stock(ctx context.Context) ([]*StockView, error)
}

type adminQueriesImpl struct {
	uow shared.UnitOfWork
}

func NewAdminQueries(uow shared.UnitOfWork) AdminQueries {
	return &adminQueriesImpl{uow: uow}
}

func (q *adminQueriesImpl) DeadLetters(ctx context.Context, limit int) ([]*OutboxEntryView, error) {
	limit = shared.OrderFilter{Limit: limit}.Normalize().Limit

	var entries []outbox.Entry
	err := q.uow.ReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		entries, err = tx.Outbox().ListDeadLettered(ctx, limit)
		return err
	})
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	views := make([]*OutboxEntryView, len(entries))
	for i, e := range entries {
		views[i] = &OutboxEntryView{
			ID:            e.ID,
			Kind:          string(e.Kind),
			DedupKey:      e.DedupKey,
			Status:        string(e.Status),
			Attempts:      e.Attempts,
			LastError:     e.LastError,
			NextAttemptAt: e.NextAttemptAt,
			CreatedAt:     e.CreatedAt,
			UpdatedAt:     e.UpdatedAt,
		}
	}
	return views, nil
}

func (q *adminQueriesImpl) Stock(ctx context.Context) ([]*StockView, error) {
	var views []*StockView
	err := q.uow.ReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		stock, err := tx.Inventory().ListStock(ctx)
		if err != nil {
			return err
		}
		views = make([]*StockView, len(stock))
		for i, s := range stock {
			views[i] = &StockView{
				ProductID: s.ProductID,
				Name:      s.Name,
				Available: s.Available,
				Reserved:  s.Reserved,
				Sold:      s.Sold,
			}
		}
		return nil
	})
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return views, nil
}
