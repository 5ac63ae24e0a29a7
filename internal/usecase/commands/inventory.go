package commands

import (
	"context"
	"log/slog"
	"time"

	"order-core/internal/domain/inventory"
	"order-core/internal/infra"
	"order-core/internal/pkg/errs"
	"order-core/internal/usecase/shared"

	"github.com/google/uuid"
)

// InventoryReserver holds, commits, releases and restocks stock for an order.
// Every method runs inside the caller's transaction so stock moves commit with the
// order change that caused them.
type InventoryReserver interface {
	Reserve(ctx context.Context, tx shared.Tx, orderID uuid.UUID, lines []inventory.Line, now time.Time) (inventory.Result, error)
	Commit(ctx context.Context, tx shared.Tx, orderID uuid.UUID) error
	Release(ctx context.Context, tx shared.Tx, orderID uuid.UUID) error
	Expire(ctx context.Context, tx shared.Tx, orderID uuid.UUID) error
	Restock(ctx context.Context, tx shared.Tx, orderID uuid.UUID) error
}

type inventoryReserverImpl struct {
	ttl    time.Duration
	logger *slog.Logger
}

func NewInventoryReserver(ttl time.Duration, logger *slog.Logger) InventoryReserver {
	return &inventoryReserverImpl{ttl: ttl, logger: logger}
}

func (r *inventoryReserverImpl) Reserve(
	ctx context.Context,
	tx shared.Tx,
	orderID uuid.UUID,
	lines []inventory.Line,
	now time.Time,
) (inventory.Result, error) {
	normalized, err := inventory.NormalizeLines(lines)
	if err != nil {
		return inventory.Result{}, err
	}

	res, err := tx.Inventory().Reserve(ctx, orderID, normalized, now.Add(r.ttl))
	if err != nil {
		if errs.Is(err, errs.ErrOutOfStock) || errs.Is(err, errs.ErrProductNotFound) {
			return inventory.Result{}, err
		}
		return inventory.Result{}, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return res, nil
}

// Commit is idempotent. Rows already released or expired yield errs.ErrReservationExpired.
func (r *inventoryReserverImpl) Commit(ctx context.Context, tx shared.Tx, orderID uuid.UUID) error {
	moved, err := tx.Inventory().Commit(ctx, orderID)
	if err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if moved > 0 {
		return nil
	}

	rows, err := tx.Inventory().ReservationsByOrder(ctx, orderID)
	if err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	for _, row := range rows {
		switch row.Status {
		case inventory.StatusCommitted, inventory.StatusRestocked:
			return nil
		}
	}
	if len(rows) == 0 {
		return errs.Mark(errs.Newf("order %s has no reservation", orderID), errs.ErrReservationExpired)
	}
	return errs.Mark(errs.Newf("reservation for order %s already %s", orderID, rows[0].Status), errs.ErrReservationExpired)
}

// Release treats an already released or expired reservation as done.
func (r *inventoryReserverImpl) Release(ctx context.Context, tx shared.Tx, orderID uuid.UUID) error {
	return r.settle(ctx, tx, orderID, inventory.StatusReleased)
}

func (r *inventoryReserverImpl) Expire(ctx context.Context, tx shared.Tx, orderID uuid.UUID) error {
	return r.settle(ctx, tx, orderID, inventory.StatusExpired)
}

func (r *inventoryReserverImpl) settle(ctx context.Context, tx shared.Tx, orderID uuid.UUID, to inventory.Status) error {
	moved, err := tx.Inventory().Release(ctx, orderID, to)
	if err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if moved == 0 {
		r.logger.Debug("reservation already settled", "order_id", orderID, "target", to)
	}
	return nil
}

func (r *inventoryReserverImpl) Restock(ctx context.Context, tx shared.Tx, orderID uuid.UUID) error {
	moved, err := tx.Inventory().Restock(ctx, orderID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil
		}
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if moved > 0 {
		r.logger.Info("stock returned", "order_id", orderID, "lines", moved)
	}
	return nil
}
