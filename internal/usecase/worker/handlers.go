package worker

import (
	"context"

	"order-core/internal/domain/money"
	"order-core/internal/domain/outbox"
	"order-core/internal/domain/payment"
	"order-core/internal/pkg/errs"
	"order-core/internal/usecase/commands"
	"order-core/internal/usecase/shared"
)

// NewHandlers binds each outbox kind to the collaborator that carries it out.
func NewHandlers(
	uow shared.UnitOfWork,
	reserver commands.InventoryReserver,
	gateway shared.PaymentGateway,
	notifier shared.Notifier,
) map[outbox.Kind]Handler {
	return map[outbox.Kind]Handler{
		outbox.KindRestock:      restockHandler(uow, reserver),
		outbox.KindRefund:       refundHandler(gateway),
		outbox.KindNotification: notificationHandler(notifier),
	}
}

func restockHandler(uow shared.UnitOfWork, reserver commands.InventoryReserver) Handler {
	return func(ctx context.Context, e outbox.Entry) error {
		var p outbox.RestockPayload
		if err := e.Decode(&p); err != nil {
			return err
		}
		return uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			return reserver.Restock(ctx, tx, p.OrderID)
		})
	}
}

func refundHandler(gateway shared.PaymentGateway) Handler {
	return func(ctx context.Context, e outbox.Entry) error {
		var p outbox.RefundPayload
		if err := e.Decode(&p); err != nil {
			return err
		}
		amount, err := money.New(p.AmountMinor)
		if err != nil {
			return errs.Mark(err, errs.ErrInvalidOutboxPayload)
		}
		if p.GatewayReference == "" {
			return errs.Mark(errs.Newf("refund for order %s has no gateway reference", p.OrderID), errs.ErrInvalidOutboxPayload)
		}
		return gateway.Refund(ctx, shared.RefundRequest{
			OrderID:          p.OrderID,
			GatewayReference: p.GatewayReference,
			Amount:           amount,
			Currency:         p.Currency,
			IdempotencyKey:   payment.RefundIdempotencyKey(p.OrderID),
			Reason:           p.Reason,
		})
	}
}

func notificationHandler(notifier shared.Notifier) Handler {
	return func(ctx context.Context, e outbox.Entry) error {
		var p outbox.NotificationPayload
		if err := e.Decode(&p); err != nil {
			return err
		}
		return notifier.Notify(ctx, p)
	}
}
