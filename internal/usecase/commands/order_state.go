package commands

import (
	"context"
	"log/slog"

	"order-core/internal/domain/order"
	"order-core/internal/domain/outbox"
	"order-core/internal/infra"
	"order-core/internal/pkg/clock"
	"order-core/internal/pkg/errs"
	"order-core/internal/pkg/keylock"
	"order-core/internal/usecase/shared"

	"github.com/google/uuid"
)

// OrderStateMachine is the only writer of order status.
type OrderStateMachine interface {
	// Transition locks the order, applies target in its own transaction and runs
	// post-commit hooks.
	Transition(ctx context.Context, orderID uuid.UUID, target order.Status, trig shared.Trigger) (*order.Order, error)
	// Apply performs target inside tx. The caller must hold the order lock and call
	// AfterCommit once tx has committed.
	Apply(ctx context.Context, tx shared.Tx, o *order.Order, target order.Status, trig shared.Trigger) (order.Transition, error)
	AfterCommit(tr order.Transition)
	// EnqueueRefund queues a gateway refund for the order's captured amount.
	EnqueueRefund(ctx context.Context, tx shared.Tx, o *order.Order, reason string) error
	// ExpireReservation fails a still-pending order whose reservation ran out.
	// It reports false when the order had already left PendingPayment.
	ExpireReservation(ctx context.Context, orderID uuid.UUID) (bool, error)
	Lock(orderID uuid.UUID) (unlock func())
}

type orderStateMachineImpl struct {
	uow       shared.UnitOfWork
	inventory InventoryReserver
	expiry    shared.ExpiryScheduler
	metrics   shared.Metrics
	locks     *keylock.Locker[uuid.UUID]
	clock     clock.Clock
	logger    *slog.Logger
}

func NewOrderStateMachine(
	uow shared.UnitOfWork,
	inventory InventoryReserver,
	expiry shared.ExpiryScheduler,
	metrics shared.Metrics,
	clk clock.Clock,
	logger *slog.Logger,
) OrderStateMachine {
	return &orderStateMachineImpl{
		uow:       uow,
		inventory: inventory,
		expiry:    expiry,
		metrics:   metrics,
		locks:     keylock.New[uuid.UUID](),
		clock:     clk,
		logger:    logger,
	}
}

func (sm *orderStateMachineImpl) Lock(orderID uuid.UUID) func() {
	return sm.locks.Lock(orderID)
}

func (sm *orderStateMachineImpl) Transition(
	ctx context.Context,
	orderID uuid.UUID,
	target order.Status,
	trig shared.Trigger,
) (*order.Order, error) {
	unlock := sm.Lock(orderID)
	defer unlock()

	var (
		o  *order.Order
		tr order.Transition
	)
	err := sm.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		o, err = loadForUpdate(ctx, tx, orderID)
		if err != nil {
			return err
		}
		tr, err = sm.Apply(ctx, tx, o, target, trig)
		return err
	})
	if err != nil {
		return nil, err
	}

	sm.AfterCommit(tr)
	return o, nil
}

func (sm *orderStateMachineImpl) Apply(
	ctx context.Context,
	tx shared.Tx,
	o *order.Order,
	target order.Status,
	trig shared.Trigger,
) (order.Transition, error) {
	from := o.Status()
	tr, err := o.Transition(target, sm.clock.Now())
	if err != nil {
		sm.logger.WarnContext(ctx, "rejected order transition",
			"order_id", o.ID(),
			"from", from,
			"to", target,
			"source", trig.Source,
			"event_id", trig.EventID)
		sm.metrics.InvalidTransition(string(from), string(target))
		return order.Transition{}, err
	}

	// Stock effects run before the status write so a failed commit leaves nothing behind.
	for _, eff := range tr.Effects {
		if err := sm.applyEffect(ctx, tx, o, eff, trig); err != nil {
			return order.Transition{}, errs.Wrapf(err, "%s for order %s", eff, o.ID())
		}
	}

	if err := tx.Orders().UpdateStatus(ctx, o, from); err != nil {
		// Not absorbable: effects above may already be written in tx.
		return order.Transition{}, errs.Mark(errs.Wrapf(err, "persist status of order %s", o.ID()), errs.ErrDatabaseOperationFailed)
	}

	if err := sm.enqueueNotification(ctx, tx, o, tr, trig); err != nil {
		return order.Transition{}, err
	}

	sm.logger.InfoContext(ctx, "order transitioned",
		"order_id", o.ID(),
		"from", tr.From,
		"to", tr.To,
		"source", trig.Source,
		"reason", trig.Reason)
	return tr, nil
}

func (sm *orderStateMachineImpl) applyEffect(
	ctx context.Context,
	tx shared.Tx,
	o *order.Order,
	eff order.Effect,
	trig shared.Trigger,
) error {
	switch eff {
	case order.EffectCommitReservation:
		return sm.inventory.Commit(ctx, tx, o.ID())

	case order.EffectReleaseReservation:
		if trig.Reason == shared.ReasonReservationExpired {
			return sm.inventory.Expire(ctx, tx, o.ID())
		}
		return sm.inventory.Release(ctx, tx, o.ID())

	case order.EffectRestock:
		entry, err := outbox.NewEntry(outbox.KindRestock, outbox.RestockDedupKey(o.ID()),
			outbox.RestockPayload{OrderID: o.ID(), Reason: string(o.Status())}, sm.clock.Now())
		if err != nil {
			return err
		}
		return enqueue(ctx, tx, entry)

	case order.EffectRefund:
		// The gateway already moved the money when it tells us about a refund.
		if trig.Source == shared.SourceGateway && o.Status() == order.StatusRefunded {
			return nil
		}
		return sm.EnqueueRefund(ctx, tx, o, string(o.Status()))
	}
	return errs.Newf("unhandled effect %q", eff)
}

func (sm *orderStateMachineImpl) EnqueueRefund(ctx context.Context, tx shared.Tx, o *order.Order, reason string) error {
	payload := outbox.RefundPayload{
		OrderID:     o.ID(),
		AmountMinor: o.Totals().Total.Minor(),
		Currency:    o.Currency(),
		Reason:      reason,
	}
	intent, err := tx.PaymentIntents().FindByOrderID(ctx, o.ID())
	switch {
	case err == nil:
		payload.GatewayReference = intent.GatewayReference
		payload.AmountMinor = intent.Amount.Minor()
	case infra.IsKind(err, infra.KindNotFound):
	default:
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	entry, err := outbox.NewEntry(outbox.KindRefund, outbox.RefundDedupKey(o.ID()), payload, sm.clock.Now())
	if err != nil {
		return err
	}
	return enqueue(ctx, tx, entry)
}

func (sm *orderStateMachineImpl) enqueueNotification(
	ctx context.Context,
	tx shared.Tx,
	o *order.Order,
	tr order.Transition,
	trig shared.Trigger,
) error {
	entry, err := outbox.NewEntry(outbox.KindNotification, outbox.NotificationDedupKey(o.ID(), string(tr.To)),
		outbox.NotificationPayload{
			OrderID:     o.ID(),
			OrderNumber: o.Number(),
			Owner:       o.Owner().String(),
			From:        string(tr.From),
			To:          string(tr.To),
			Reason:      trig.Reason,
			At:          tr.At,
		}, sm.clock.Now())
	if err != nil {
		return err
	}
	return enqueue(ctx, tx, entry)
}

func (sm *orderStateMachineImpl) AfterCommit(tr order.Transition) {
	if tr.From == "" {
		return
	}
	if tr.From == order.StatusPendingPayment {
		sm.expiry.Cancel(tr.OrderID)
	}
	sm.metrics.OrderTransitioned(string(tr.From), string(tr.To))
}

func (sm *orderStateMachineImpl) ExpireReservation(ctx context.Context, orderID uuid.UUID) (bool, error) {
	_, err := sm.Transition(ctx, orderID, order.StatusFailed, shared.Trigger{
		Source: shared.SourceSystem,
		Reason: shared.ReasonReservationExpired,
	})
	switch {
	case err == nil:
		return true, nil
	case errs.Is(err, errs.ErrInvalidTransition):
		// Paid or canceled first; the timer lost the race.
		return false, sm.settleStrayReservation(ctx, orderID)
	default:
		return false, err
	}
}

// settleStrayReservation finishes reserved rows still held by an order that
// already left pending_payment. Paid orders keep the stock, the rest return it.
func (sm *orderStateMachineImpl) settleStrayReservation(ctx context.Context, orderID uuid.UUID) error {
	return sm.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		o, err := loadForUpdate(ctx, tx, orderID)
		if err != nil {
			return err
		}
		switch o.Status() {
		case order.StatusPendingPayment:
			return nil
		case order.StatusPaid, order.StatusShipped, order.StatusDelivered:
			return sm.inventory.Commit(ctx, tx, orderID)
		default:
			return sm.inventory.Release(ctx, tx, orderID)
		}
	})
}

func loadForUpdate(ctx context.Context, tx shared.Tx, orderID uuid.UUID) (*order.Order, error) {
	o, err := tx.Orders().FindByIDForUpdate(ctx, orderID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(errs.Wrapf(err, "order %s", orderID), errs.ErrOrderNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return o, nil
}

func enqueue(ctx context.Context, tx shared.Tx, entry outbox.Entry) error {
	if _, err := tx.Outbox().Enqueue(ctx, entry); err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return nil
}
