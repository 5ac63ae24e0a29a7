package repository

import (
	"context"
	"log/slog"
	"time"

	"order-core/internal/domain/payment"
	"order-core/internal/infra"
	"order-core/internal/infra/repository/converter"
	sqlc "order-core/internal/infra/sqlc/generated"
	"order-core/internal/pkg/pgconv"
	"order-core/internal/usecase/shared"

	"github.com/google/uuid"
)

type PaymentWriteQueries interface {
	CreatePaymentIntent(ctx context.Context, db sqlc.DBTX, arg sqlc.CreatePaymentIntentParams) error
	GetPaymentIntentByOrder(ctx context.Context, db sqlc.DBTX, orderID uuid.UUID) (sqlc.PaymentIntents, error)
	GetPaymentIntentByReference(ctx context.Context, db sqlc.DBTX, gatewayReference string) (sqlc.PaymentIntents, error)
	UpdatePaymentIntentStatus(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdatePaymentIntentStatusParams) (int64, error)
}

type PaymentIntentRepository struct {
	queries PaymentWriteQueries
	db      sqlc.DBTX
	logger  *slog.Logger
}

func NewPaymentIntentRepository(queries PaymentWriteQueries, db sqlc.DBTX, logger *slog.Logger) *PaymentIntentRepository {
	return &PaymentIntentRepository{
		queries: queries,
		db:      db,
		logger:  logger,
	}
}

func (r *PaymentIntentRepository) Create(ctx context.Context, in payment.Intent) error {
	if err := r.queries.CreatePaymentIntent(ctx, r.db, converter.IntentToCreateParams(in)); err != nil {
		return infra.ClassifyErr(r.logger, "failed to create payment intent", err)
	}
	return nil
}

func (r *PaymentIntentRepository) FindByOrderID(ctx context.Context, orderID uuid.UUID) (*payment.Intent, error) {
	row, err := r.queries.GetPaymentIntentByOrder(ctx, r.db, orderID)
	if err != nil {
		return nil, infra.ClassifyErr(r.logger, "payment intent for order "+orderID.String(), err)
	}
	return r.decode(row)
}

func (r *PaymentIntentRepository) FindByGatewayReference(ctx context.Context, ref string) (*payment.Intent, error) {
	row, err := r.queries.GetPaymentIntentByReference(ctx, r.db, ref)
	if err != nil {
		return nil, infra.ClassifyErr(r.logger, "payment intent "+ref, err)
	}
	return r.decode(row)
}

func (r *PaymentIntentRepository) UpdateStatus(ctx context.Context, orderID uuid.UUID, status payment.IntentStatus, at time.Time) error {
	n, err := r.queries.UpdatePaymentIntentStatus(ctx, r.db, sqlc.UpdatePaymentIntentStatusParams{
		Status:    string(status),
		UpdatedAt: pgconv.TimeToPgtype(at),
		OrderID:   orderID,
	})
	if err != nil {
		return infra.ClassifyErr(r.logger, "failed to update payment intent", err)
	}
	if n == 0 {
		return infra.WrapRepoErr(r.logger, infra.KindNotFound, "payment intent for order "+orderID.String(), nil)
	}
	return nil
}

func (r *PaymentIntentRepository) decode(row sqlc.PaymentIntents) (*payment.Intent, error) {
	in, err := converter.IntentFromRow(row)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to decode payment intent", err)
	}
	return in, nil
}

type WebhookEventWriteQueries interface {
	InsertWebhookEvent(ctx context.Context, db sqlc.DBTX, arg sqlc.InsertWebhookEventParams) (int64, error)
	SetWebhookEventOutcome(ctx context.Context, db sqlc.DBTX, arg sqlc.SetWebhookEventOutcomeParams) (int64, error)
}

type WebhookEventRepository struct {
	queries WebhookEventWriteQueries
	db      sqlc.DBTX
	logger  *slog.Logger
}

func NewWebhookEventRepository(queries WebhookEventWriteQueries, db sqlc.DBTX, logger *slog.Logger) *WebhookEventRepository {
	return &WebhookEventRepository{
		queries: queries,
		db:      db,
		logger:  logger,
	}
}

func (r *WebhookEventRepository) Insert(ctx context.Context, ev payment.Event) (bool, error) {
	n, err := r.queries.InsertWebhookEvent(ctx, r.db, converter.EventToInsertParams(ev))
	if err != nil {
		return false, infra.ClassifyErr(r.logger, "failed to record webhook event", err)
	}
	return n > 0, nil
}

func (r *WebhookEventRepository) SetOutcome(ctx context.Context, eventID string, outcome shared.ReconcileOutcome, orderID *uuid.UUID) error {
	n, err := r.queries.SetWebhookEventOutcome(ctx, r.db, sqlc.SetWebhookEventOutcomeParams{
		Outcome: pgconv.StringToPgtype(string(outcome)),
		OrderID: pgconv.UUIDPtrToPgtype(orderID),
		ID:      eventID,
	})
	if err != nil {
		return infra.ClassifyErr(r.logger, "failed to set webhook outcome", err)
	}
	if n == 0 {
		return infra.WrapRepoErr(r.logger, infra.KindNotFound, "webhook event "+eventID, nil)
	}
	return nil
}
