//go:build unit

package commands_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"order-core/internal/domain/inventory"
	"order-core/internal/domain/money"
	"order-core/internal/domain/order"
	"order-core/internal/domain/outbox"
	"order-core/internal/domain/payment"
	"order-core/internal/infra/memstore"
	"order-core/internal/pkg/clock"
	"order-core/internal/usecase/commands"
	"order-core/internal/usecase/shared"
	"order-core/internal/usecase/worker"
	"order-core/tests/common/builder"
	sharedmock "order-core/tests/mock/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	reservationTTL = 15 * time.Minute
	gatewayTimeout = 50 * time.Millisecond
)

var startTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type harness struct {
	uow      shared.UnitOfWork
	store    *memstore.Store
	clock    *clock.MockClock
	gateway  *sharedmock.MockPaymentGateway
	carts    *sharedmock.MockCartProvider
	timers   *worker.ExpiryTimers
	reserver commands.InventoryReserver
	sm       commands.OrderStateMachine
	checkout commands.CheckoutCommands
	webhooks commands.WebhookCommands
	orders   commands.OrderCommands
	admin    commands.AdminCommands
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := memstore.New(logger)
	uow := memstore.NewUnitOfWork(store)
	clk := clock.NewMockClock(startTime)
	ctrl := gomock.NewController(t)
	gateway := sharedmock.NewMockPaymentGateway(ctrl)
	carts := sharedmock.NewMockCartProvider(ctrl)
	timers := worker.NewExpiryTimers(clk)
	t.Cleanup(timers.Stop)

	reserver := commands.NewInventoryReserver(reservationTTL, logger)
	sm := commands.NewOrderStateMachine(uow, reserver, timers, shared.NopMetrics{}, clk, logger)
	pricing := &order.FlatRateCalculator{
		TaxRateBasisPoints:    1000,
		FlatShipping:          money.MustNew(500),
		FreeShippingThreshold: money.MustNew(10000),
	}

	return &harness{
		uow:      uow,
		store:    store,
		clock:    clk,
		gateway:  gateway,
		carts:    carts,
		timers:   timers,
		reserver: reserver,
		sm:       sm,
		checkout: commands.NewCheckoutUseCase(uow, carts, reserver, pricing, gateway, sm, timers, shared.NopMetrics{},
			commands.CheckoutSettings{DefaultCurrency: "USD", IdempotencyTTL: 24 * time.Hour, GatewayTimeout: gatewayTimeout},
			clk, logger),
		webhooks: commands.NewWebhookUseCase(uow, sm, shared.NopMetrics{}, clk, logger),
		orders:   commands.NewOrderUseCase(uow, sm),
		admin:    commands.NewAdminUseCase(uow, clk, logger),
	}
}

func (h *harness) seedProduct(t *testing.T, available int) uuid.UUID {
	t.Helper()
	id := uuid.New()
	_, err := h.admin.SetStock(context.Background(), id, "widget-"+id.String()[:8], available)
	require.NoError(t, err)
	return id
}

func (h *harness) stock(t *testing.T, productID uuid.UUID) inventory.Stock {
	t.Helper()
	var s inventory.Stock
	err := h.uow.ReadOnly(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		var err error
		s, err = tx.Inventory().Stock(ctx, productID)
		return err
	})
	require.NoError(t, err)
	return s
}

func (h *harness) order(t *testing.T, id uuid.UUID) *order.Order {
	t.Helper()
	var o *order.Order
	err := h.uow.ReadOnly(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		var err error
		o, err = tx.Orders().FindByID(ctx, id)
		return err
	})
	require.NoError(t, err)
	return o
}

func (h *harness) intent(t *testing.T, orderID uuid.UUID) *payment.Intent {
	t.Helper()
	var in *payment.Intent
	err := h.uow.ReadOnly(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		var err error
		in, err = tx.PaymentIntents().FindByOrderID(ctx, orderID)
		return err
	})
	require.NoError(t, err)
	return in
}

func (h *harness) outboxByKind(kind outbox.Kind) []outbox.Entry {
	var out []outbox.Entry
	for _, e := range h.store.OutboxEntries() {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

// expectIntents lets the gateway accept any number of intents, each referenced by order id.
func (h *harness) expectIntents() {
	h.gateway.EXPECT().
		CreateIntent(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req shared.CreateIntentRequest) (shared.CreateIntentResult, error) {
			return shared.CreateIntentResult{
				GatewayReference: "pi_" + req.OrderID.String(),
				ClientSecret:     "secret_" + req.OrderID.String(),
			}, nil
		}).
		AnyTimes()
}

// place checks out quantity units of productID for a fresh owner.
func (h *harness) place(t *testing.T, productID uuid.UUID, quantity int) *commands.CheckoutResult {
	t.Helper()
	b := builder.NewCheckoutBuilder().WithLine(productID, quantity, 2500)
	snap, err := b.BuildSnapshot()
	require.NoError(t, err)
	res, err := h.checkout.CheckoutSnapshot(context.Background(), snap, b.BuildRequest())
	require.NoError(t, err)
	return res
}

func gatewayEvent(id string, typ payment.EventType, orderID uuid.UUID) payment.Event {
	return payment.Event{
		ID:               id,
		Type:             typ,
		GatewayReference: "pi_" + orderID.String(),
		OrderID:          &orderID,
		CreatedAt:        startTime,
		ReceivedAt:       startTime,
	}
}
