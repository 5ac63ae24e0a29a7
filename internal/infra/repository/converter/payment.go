package converter

import (
	"order-core/internal/domain/money"
	"order-core/internal/domain/payment"
	sqlc "order-core/internal/infra/sqlc/generated"
	"order-core/internal/pkg/errs"
	"order-core/internal/pkg/pgconv"
)

func IntentToCreateParams(in payment.Intent) sqlc.CreatePaymentIntentParams {
	return sqlc.CreatePaymentIntentParams{
		OrderID:          in.OrderID,
		GatewayReference: in.GatewayReference,
		ClientSecret:     in.ClientSecret,
		AmountMinor:      in.Amount.Minor(),
		Currency:         in.Currency.String(),
		Status:           string(in.Status),
		CreatedAt:        pgconv.TimeToPgtype(in.CreatedAt),
		UpdatedAt:        pgconv.TimeToPgtype(in.UpdatedAt),
	}
}

func IntentFromRow(row sqlc.PaymentIntents) (*payment.Intent, error) {
	amount, err := money.New(row.AmountMinor)
	if err != nil {
		return nil, errs.Wrapf(err, "payment intent for order %s", row.OrderID)
	}
	currency, err := money.ParseCurrency(row.Currency)
	if err != nil {
		return nil, errs.Wrapf(err, "payment intent for order %s", row.OrderID)
	}
	return &payment.Intent{
		OrderID:          row.OrderID,
		GatewayReference: row.GatewayReference,
		ClientSecret:     row.ClientSecret,
		Amount:           amount,
		Currency:         currency,
		Status:           payment.IntentStatus(row.Status),
		CreatedAt:        pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt:        pgconv.TimeFromPgtype(row.UpdatedAt),
	}, nil
}

func EventToInsertParams(ev payment.Event) sqlc.InsertWebhookEventParams {
	return sqlc.InsertWebhookEventParams{
		ID:               ev.ID,
		Type:             string(ev.Type),
		GatewayReference: ev.GatewayReference,
		OrderID:          pgconv.UUIDPtrToPgtype(ev.OrderID),
		Payload:          ev.Payload,
		CreatedAt:        pgconv.OptionalTimeToPgtype(ev.CreatedAt),
		ReceivedAt:       pgconv.TimeToPgtype(ev.ReceivedAt),
	}
}
