//go:build unit

package repository_test

import (
	"encoding/json"
	"testing"

	"order-core/internal/domain/money"
	"order-core/internal/domain/payment"
	"order-core/internal/infra"
	"order-core/internal/infra/repository"
	sqlc "order-core/internal/infra/sqlc/generated"
	"order-core/internal/pkg/pgconv"
	"order-core/internal/usecase/shared"
	repositorymock "order-core/tests/mock/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestPaymentIntentRepository_RoundTrip(t *testing.T) {
	ctrl := gomock.NewController(t)
	q := repositorymock.NewMockPaymentWriteQueries(ctrl)
	repo := repository.NewPaymentIntentRepository(q, &mockDBTX{}, testLogger)

	in := payment.Intent{
		OrderID:          uuid.New(),
		GatewayReference: "pi_123",
		ClientSecret:     "pi_123_secret",
		Amount:           money.MustNew(2750),
		Currency:         money.USD,
		Status:           payment.IntentPending,
		CreatedAt:        testNow,
		UpdatedAt:        testNow,
	}

	var stored sqlc.CreatePaymentIntentParams
	q.EXPECT().CreatePaymentIntent(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, _ sqlc.DBTX, arg sqlc.CreatePaymentIntentParams) error {
			stored = arg
			return nil
		})
	require.NoError(t, repo.Create(ctx, in))
	assert.Equal(t, int64(2750), stored.AmountMinor)
	assert.Equal(t, "USD", stored.Currency)

	q.EXPECT().GetPaymentIntentByReference(gomock.Any(), gomock.Any(), "pi_123").Return(sqlc.PaymentIntents{
		OrderID:          stored.OrderID,
		GatewayReference: stored.GatewayReference,
		ClientSecret:     stored.ClientSecret,
		AmountMinor:      stored.AmountMinor,
		Currency:         stored.Currency,
		Status:           stored.Status,
		CreatedAt:        stored.CreatedAt,
		UpdatedAt:        stored.UpdatedAt,
	}, nil)

	got, err := repo.FindByGatewayReference(ctx, "pi_123")
	require.NoError(t, err)
	assert.Equal(t, in, *got)
}

func TestPaymentIntentRepository_Errors(t *testing.T) {
	testCases := []struct {
		name   string
		setup  func(q *repositorymock.MockPaymentWriteQueries)
		call   func(r *repository.PaymentIntentRepository) error
		expect infra.RepositoryErrorKind
	}{
		{
			name: "unknown reference",
			setup: func(q *repositorymock.MockPaymentWriteQueries) {
				q.EXPECT().GetPaymentIntentByReference(gomock.Any(), gomock.Any(), "pi_missing").Return(sqlc.PaymentIntents{}, pgx.ErrNoRows)
			},
			call: func(r *repository.PaymentIntentRepository) error {
				_, err := r.FindByGatewayReference(ctx, "pi_missing")
				return err
			},
			expect: infra.KindNotFound,
		},
		{
			name: "second intent for the same order",
			setup: func(q *repositorymock.MockPaymentWriteQueries) {
				q.EXPECT().CreatePaymentIntent(gomock.Any(), gomock.Any(), gomock.Any()).Return(&pgconn.PgError{Code: "23505"})
			},
			call: func(r *repository.PaymentIntentRepository) error {
				return r.Create(ctx, payment.Intent{OrderID: uuid.New(), Amount: money.MustNew(1), Currency: money.USD})
			},
			expect: infra.KindDuplicateKey,
		},
		{
			name: "status update for a missing intent",
			setup: func(q *repositorymock.MockPaymentWriteQueries) {
				q.EXPECT().UpdatePaymentIntentStatus(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), nil)
			},
			call: func(r *repository.PaymentIntentRepository) error {
				return r.UpdateStatus(ctx, uuid.New(), payment.IntentSucceeded, testNow)
			},
			expect: infra.KindNotFound,
		},
		{
			name: "corrupt stored currency",
			setup: func(q *repositorymock.MockPaymentWriteQueries) {
				q.EXPECT().GetPaymentIntentByOrder(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(sqlc.PaymentIntents{AmountMinor: 100, Currency: "XXX"}, nil)
			},
			call: func(r *repository.PaymentIntentRepository) error {
				_, err := r.FindByOrderID(ctx, uuid.New())
				return err
			},
			expect: infra.KindDBFailure,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			q := repositorymock.NewMockPaymentWriteQueries(ctrl)
			tc.setup(q)

			err := tc.call(repository.NewPaymentIntentRepository(q, &mockDBTX{}, testLogger))
			require.Error(t, err)
			assert.True(t, infra.IsKind(err, tc.expect), "got %v", err)
		})
	}
}

func TestWebhookEventRepository(t *testing.T) {
	orderID := uuid.New()
	ev := payment.Event{
		ID:               "evt_1",
		Type:             payment.EventPaymentSucceeded,
		GatewayReference: "pi_123",
		OrderID:          &orderID,
		Payload:          json.RawMessage(`{"id":"evt_1"}`),
		ReceivedAt:       testNow,
	}

	t.Run("insert reports a first delivery", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		q := repositorymock.NewMockWebhookEventWriteQueries(ctrl)
		q.EXPECT().InsertWebhookEvent(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, _ sqlc.DBTX, arg sqlc.InsertWebhookEventParams) (int64, error) {
				assert.Equal(t, "evt_1", arg.ID)
				assert.Equal(t, pgconv.UUIDToPgtype(orderID), arg.OrderID)
				assert.False(t, arg.CreatedAt.Valid, "zero gateway timestamp is stored as NULL")
				return 1, nil
			})

		inserted, err := repository.NewWebhookEventRepository(q, &mockDBTX{}, testLogger).Insert(ctx, ev)
		require.NoError(t, err)
		assert.True(t, inserted)
	})

	t.Run("insert reports a redelivery", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		q := repositorymock.NewMockWebhookEventWriteQueries(ctrl)
		q.EXPECT().InsertWebhookEvent(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), nil)

		inserted, err := repository.NewWebhookEventRepository(q, &mockDBTX{}, testLogger).Insert(ctx, ev)
		require.NoError(t, err)
		assert.False(t, inserted)
	})

	t.Run("outcome without an order", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		q := repositorymock.NewMockWebhookEventWriteQueries(ctrl)
		q.EXPECT().SetWebhookEventOutcome(gomock.Any(), gomock.Any(), sqlc.SetWebhookEventOutcomeParams{
			Outcome: pgconv.StringToPgtype(string(shared.OutcomeUnmatched)),
			OrderID: pgconv.UUIDPtrToPgtype(nil),
			ID:      "evt_1",
		}).Return(int64(1), nil)

		err := repository.NewWebhookEventRepository(q, &mockDBTX{}, testLogger).SetOutcome(ctx, "evt_1", shared.OutcomeUnmatched, nil)
		require.NoError(t, err)
	})

	t.Run("outcome for an unrecorded event", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		q := repositorymock.NewMockWebhookEventWriteQueries(ctrl)
		q.EXPECT().SetWebhookEventOutcome(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), nil)

		err := repository.NewWebhookEventRepository(q, &mockDBTX{}, testLogger).SetOutcome(ctx, "evt_x", shared.OutcomeApplied, &orderID)
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})
}
