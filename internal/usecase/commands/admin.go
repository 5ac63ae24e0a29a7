package commands

import (
	"context"
	"log/slog"

	"order-core/internal/domain/inventory"
	"order-core/internal/infra"
	"order-core/internal/pkg/clock"
	"order-core/internal/pkg/errs"
	"order-core/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrNegativeStock = errs.New("stock level must not be negative")

type AdminCommands interface {
	RequeueDeadLetter(ctx context.Context, entryID uuid.UUID) error
	SetStock(ctx context.Context, productID uuid.UUID, name string, available int) (inventory.Stock, error)
}

type adminUseCaseImpl struct {
	uow    shared.UnitOfWork
	clock  clock.Clock
	logger *slog.Logger
}

func NewAdminUseCase(uow shared.UnitOfWork, clk clock.Clock, logger *slog.Logger) AdminCommands {
	return &adminUseCaseImpl{uow: uow, clock: clk, logger: logger}
}

func (uc *adminUseCaseImpl) RequeueDeadLetter(ctx context.Context, entryID uuid.UUID) error {
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Outbox().Requeue(ctx, entryID, uc.clock.Now())
	})
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return errs.Mark(err, errs.ErrOutboxEntryNotFound)
		}
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	uc.logger.InfoContext(ctx, "dead letter requeued", "entry_id", entryID)
	return nil
}

// SetStock overwrites available stock; reserved and sold counts are untouched.
func (uc *adminUseCaseImpl) SetStock(ctx context.Context, productID uuid.UUID, name string, available int) (inventory.Stock, error) {
	if available < 0 {
		return inventory.Stock{}, ErrNegativeStock
	}
	var stock inventory.Stock
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		stock, err = tx.Inventory().UpsertStock(ctx, productID, name, available)
		return err
	})
	if err != nil {
		return inventory.Stock{}, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	uc.logger.InfoContext(ctx, "stock set", "product_id", productID, "available", available)
	return stock, nil
}
