package commands

import (
	"context"

	"order-core/internal/domain/cart"
	"order-core/internal/domain/order"
	"order-core/internal/infra"
	"order-core/internal/pkg/errs"
	"order-core/internal/usecase/shared"

	"github.com/google/uuid"
)

type OrderCommands interface {
	// Cancel is the customer-facing cancel; other owners' orders look absent.
	Cancel(ctx context.Context, orderID uuid.UUID, owner cart.Owner) (*order.Order, error)
	Ship(ctx context.Context, orderID uuid.UUID, reason string) (*order.Order, error)
	Deliver(ctx context.Context, orderID uuid.UUID, reason string) (*order.Order, error)
	Refund(ctx context.Context, orderID uuid.UUID, reason string) (*order.Order, error)
	CancelAsOperator(ctx context.Context, orderID uuid.UUID, reason string) (*order.Order, error)
}

type orderUseCaseImpl struct {
	uow          shared.UnitOfWork
	stateMachine OrderStateMachine
}

func NewOrderUseCase(uow shared.UnitOfWork, stateMachine OrderStateMachine) OrderCommands {
	return &orderUseCaseImpl{uow: uow, stateMachine: stateMachine}
}

func (uc *orderUseCaseImpl) Cancel(ctx context.Context, orderID uuid.UUID, owner cart.Owner) (*order.Order, error) {
	var o *order.Order
	err := uc.uow.ReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		o, err = tx.Orders().FindByID(ctx, orderID)
		return err
	})
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrOrderNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if !o.IsOwnedBy(owner) {
		return nil, errs.Mark(errs.Newf("order %s not owned by caller", orderID), errs.ErrOrderNotFound)
	}

	return uc.stateMachine.Transition(ctx, orderID, order.StatusCanceled, shared.Trigger{
		Source: shared.SourceCustomer,
		Reason: "customer_request",
	})
}

func (uc *orderUseCaseImpl) Ship(ctx context.Context, orderID uuid.UUID, reason string) (*order.Order, error) {
	return uc.operator(ctx, orderID, order.StatusShipped, reason)
}

func (uc *orderUseCaseImpl) Deliver(ctx context.Context, orderID uuid.UUID, reason string) (*order.Order, error) {
	return uc.operator(ctx, orderID, order.StatusDelivered, reason)
}

func (uc *orderUseCaseImpl) Refund(ctx context.Context, orderID uuid.UUID, reason string) (*order.Order, error) {
	return uc.operator(ctx, orderID, order.StatusRefunded, reason)
}

func (uc *orderUseCaseImpl) CancelAsOperator(ctx context.Context, orderID uuid.UUID, reason string) (*order.Order, error) {
	return uc.operator(ctx, orderID, order.StatusCanceled, reason)
}

func (uc *orderUseCaseImpl) operator(ctx context.Context, orderID uuid.UUID, target order.Status, reason string) (*order.Order, error) {
	if reason == "" {
		reason = "operator_" + string(target)
	}
	return uc.stateMachine.Transition(ctx, orderID, target, shared.Trigger{
		Source: shared.SourceOperator,
		Reason: reason,
	})
}
