package commands

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"order-core/internal/domain/idempotency"
	"order-core/internal/domain/order"
	"order-core/internal/domain/payment"
	"order-core/internal/infra"
	"order-core/internal/pkg/clock"
	"order-core/internal/pkg/errs"
	"order-core/internal/pkg/ptr"
	"order-core/internal/usecase/shared"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

type ReconcileResult struct {
	EventID   string                  `json:"event_id"`
	EventType string                  `json:"event_type"`
	Outcome   shared.ReconcileOutcome `json:"outcome"`
	OrderID   *uuid.UUID              `json:"order_id,omitempty"`
	From      string                  `json:"from,omitempty"`
	To        string                  `json:"to,omitempty"`
	Detail    string                  `json:"detail,omitempty"`
	Duplicate bool                    `json:"duplicate"`
}

// WebhookCommands reconciles gateway events with order state. Only infrastructure
// failures surface as errors; every domain-level outcome is recorded and acknowledged.
type WebhookCommands interface {
	Handle(ctx context.Context, ev payment.Event) (*ReconcileResult, error)
}

type webhookUseCaseImpl struct {
	uow          shared.UnitOfWork
	stateMachine OrderStateMachine
	metrics      shared.Metrics
	flight       singleflight.Group
	clock        clock.Clock
	logger       *slog.Logger
}

func NewWebhookUseCase(
	uow shared.UnitOfWork,
	stateMachine OrderStateMachine,
	metrics shared.Metrics,
	clk clock.Clock,
	logger *slog.Logger,
) WebhookCommands {
	return &webhookUseCaseImpl{
		uow:          uow,
		stateMachine: stateMachine,
		metrics:      metrics,
		clock:        clk,
		logger:       logger,
	}
}

func (uc *webhookUseCaseImpl) Handle(ctx context.Context, ev payment.Event) (*ReconcileResult, error) {
	// Concurrent deliveries of one event inside this process share a single run.
	v, err, _ := uc.flight.Do(ev.ID, func() (any, error) {
		return uc.handle(context.WithoutCancel(ctx), ev)
	})
	if err != nil {
		return nil, err
	}
	res := *v.(*ReconcileResult)
	uc.metrics.WebhookReconciled(res.Outcome, res.Duplicate)
	return &res, nil
}

func (uc *webhookUseCaseImpl) handle(ctx context.Context, ev payment.Event) (*ReconcileResult, error) {
	if prior, err := uc.recorded(ctx, ev.ID); err != nil || prior != nil {
		return prior, err
	}

	orderID, err := uc.resolveOrder(ctx, ev)
	if err != nil {
		return nil, err
	}
	if orderID != nil {
		unlock := uc.stateMachine.Lock(*orderID)
		defer unlock()
	}

	var (
		res     *ReconcileResult
		applied order.Transition
	)
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, applied = nil, order.Transition{}

		inserted, err := tx.WebhookEvents().Insert(ctx, ev)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if !inserted {
			res, err = loadRecorded(ctx, tx, ev.ID)
			if err == nil && res == nil {
				// Event row exists but its outcome is not visible yet.
				res = &ReconcileResult{EventID: ev.ID, EventType: string(ev.Type), Outcome: shared.OutcomeIgnored, Duplicate: true}
			}
			return err
		}

		res, applied, err = uc.reconcile(ctx, tx, ev, orderID)
		if err != nil {
			return err
		}
		return uc.record(ctx, tx, ev, res)
	})
	if err != nil {
		uc.logger.ErrorContext(ctx, "webhook reconciliation failed",
			"event_id", ev.ID,
			"event_type", ev.Type,
			"error", err.Error())
		return nil, err
	}

	if !res.Duplicate {
		uc.stateMachine.AfterCommit(applied)
		uc.logger.InfoContext(ctx, "webhook reconciled",
			"event_id", ev.ID,
			"event_type", ev.Type,
			"outcome", res.Outcome,
			"order_id", res.OrderID)
	}
	return res, nil
}

func (uc *webhookUseCaseImpl) reconcile(
	ctx context.Context,
	tx shared.Tx,
	ev payment.Event,
	orderID *uuid.UUID,
) (*ReconcileResult, order.Transition, error) {
	res := &ReconcileResult{EventID: ev.ID, EventType: string(ev.Type), OrderID: orderID}

	target, known := payment.TargetStatus(ev.Type)
	if !known {
		res.Outcome = shared.OutcomeIgnored
		res.Detail = "event type not handled"
		return res, order.Transition{}, nil
	}
	if orderID == nil {
		res.Outcome = shared.OutcomeUnmatched
		res.Detail = "no order reference"
		return res, order.Transition{}, nil
	}

	o, err := loadForUpdate(ctx, tx, *orderID)
	if err != nil {
		if errs.Is(err, errs.ErrOrderNotFound) {
			res.Outcome = shared.OutcomeUnmatched
			res.Detail = "order not found"
			return res, order.Transition{}, nil
		}
		return nil, order.Transition{}, err
	}
	from := o.Status()
	res.From = string(from)

	if err := uc.adoptIntent(ctx, tx, o, ev); err != nil {
		return nil, order.Transition{}, err
	}

	tr, err := uc.stateMachine.Apply(ctx, tx, o, target, shared.Trigger{
		Source:  shared.SourceGateway,
		EventID: ev.ID,
		Reason:  string(ev.Type),
	})
	switch {
	case err == nil:
		res.Outcome = shared.OutcomeApplied
		res.To = string(tr.To)

	case errs.Is(err, errs.ErrInvalidTransition), errs.Is(err, errs.ErrReservationExpired):
		res.Outcome = shared.OutcomeRejected
		res.To = string(target)
		res.Detail = err.Error()
		if ev.Type.IsPaymentSuccess() && (from == order.StatusFailed || from == order.StatusCanceled || errs.Is(err, errs.ErrReservationExpired)) {
			// Money was captured for an order that will never ship.
			if err := uc.stateMachine.EnqueueRefund(ctx, tx, o, shared.ReasonLatePayment); err != nil {
				return nil, order.Transition{}, err
			}
			res.Detail += "; refund queued"
		}

	default:
		return nil, order.Transition{}, err
	}

	if status, ok := payment.IntentStatusFor(ev.Type); ok && res.Outcome == shared.OutcomeApplied {
		if err := tx.PaymentIntents().UpdateStatus(ctx, *orderID, status, uc.clock.Now()); err != nil && !infra.IsKind(err, infra.KindNotFound) {
			return nil, order.Transition{}, errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
	}
	return res, tr, nil
}

// adoptIntent records the gateway's intent for an order that has none on file,
// which happens when intent creation timed out after the gateway accepted it.
// Later refunds read the reference from this row.
func (uc *webhookUseCaseImpl) adoptIntent(ctx context.Context, tx shared.Tx, o *order.Order, ev payment.Event) error {
	if ev.GatewayReference == "" {
		return nil
	}
	_, err := tx.PaymentIntents().FindByOrderID(ctx, o.ID())
	switch {
	case err == nil:
		return nil
	case !infra.IsKind(err, infra.KindNotFound):
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	status, ok := payment.IntentStatusFor(ev.Type)
	if !ok {
		status = payment.IntentPending
	}
	now := uc.clock.Now()
	err = tx.PaymentIntents().Create(ctx, payment.Intent{
		OrderID:          o.ID(),
		GatewayReference: ev.GatewayReference,
		Amount:           o.Totals().Total,
		Currency:         o.Currency(),
		Status:           status,
		CreatedAt:        now,
		UpdatedAt:        now,
	})
	if err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	uc.logger.WarnContext(ctx, "adopted payment intent from webhook",
		"order_id", o.ID(),
		"gateway_reference", ev.GatewayReference,
		"event_id", ev.ID)
	return nil
}

func (uc *webhookUseCaseImpl) record(ctx context.Context, tx shared.Tx, ev payment.Event, res *ReconcileResult) error {
	if err := tx.WebhookEvents().SetOutcome(ctx, ev.ID, res.Outcome, res.OrderID); err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	body, err := json.Marshal(res)
	if err != nil {
		return errs.Wrap(err, "encode reconcile result")
	}
	rec := idempotency.NewRecord(idempotency.ScopeWebhook, ev.ID, string(ev.Type), uc.clock.Now(), 0)
	rec.ExpiresAt = time.Time{}
	rec.Status = idempotency.StatusCompleted
	rec.OrderID = res.OrderID
	rec.Response = body
	if _, err := tx.Idempotency().TryInsert(ctx, rec); err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return nil
}

// recorded is a cheap pre-check outside the per-order lock.
func (uc *webhookUseCaseImpl) recorded(ctx context.Context, eventID string) (*ReconcileResult, error) {
	var res *ReconcileResult
	err := uc.uow.ReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		res, err = loadRecorded(ctx, tx, eventID)
		return err
	})
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return res, nil
}

func (uc *webhookUseCaseImpl) resolveOrder(ctx context.Context, ev payment.Event) (*uuid.UUID, error) {
	if ev.OrderID != nil {
		id := *ev.OrderID
		return &id, nil
	}
	if ev.GatewayReference == "" {
		return nil, nil
	}

	var orderID *uuid.UUID
	err := uc.uow.ReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		intent, err := tx.PaymentIntents().FindByGatewayReference(ctx, ev.GatewayReference)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return nil
			}
			return err
		}
		orderID = ptr.To(intent.OrderID)
		return nil
	})
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return orderID, nil
}

func loadRecorded(ctx context.Context, tx shared.Tx, eventID string) (*ReconcileResult, error) {
	rec, err := tx.Idempotency().Get(ctx, idempotency.ScopeWebhook, eventID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if rec == nil {
		return nil, nil
	}
	var res ReconcileResult
	if err := json.Unmarshal(rec.Response, &res); err != nil {
		return nil, errs.Wrapf(err, "decode recorded outcome of %s", eventID)
	}
	res.Duplicate = true
	return &res, nil
}
