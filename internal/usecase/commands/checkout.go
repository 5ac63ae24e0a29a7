package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"time"

	"order-core/internal/domain/cart"
	"order-core/internal/domain/idempotency"
	"order-core/internal/domain/inventory"
	"order-core/internal/domain/money"
	"order-core/internal/domain/order"
	"order-core/internal/domain/payment"
	"order-core/internal/infra"
	"order-core/internal/pkg/clock"
	"order-core/internal/pkg/errs"
	"order-core/internal/usecase/shared"

	"github.com/google/uuid"
)

type CheckoutRequest struct {
	Owner          cart.Owner
	IdempotencyKey string
	Shipping       order.Address
	Billing        order.Address
	// Currency falls back to the configured default when empty.
	Currency string
}

type CheckoutResult struct {
	Order    *order.Order
	Intent   *payment.Intent
	Replayed bool
}

type CheckoutCommands interface {
	// Checkout reads the owner's cart and places an order from it.
	Checkout(ctx context.Context, req CheckoutRequest) (*CheckoutResult, error)
	// CheckoutSnapshot places an order from an already frozen cart.
	CheckoutSnapshot(ctx context.Context, snap cart.Snapshot, req CheckoutRequest) (*CheckoutResult, error)
}

type CheckoutSettings struct {
	DefaultCurrency string
	IdempotencyTTL  time.Duration
	GatewayTimeout  time.Duration
}

type checkoutUseCaseImpl struct {
	uow          shared.UnitOfWork
	carts        shared.CartProvider
	reserver     InventoryReserver
	pricing      order.PricingCalculator
	gateway      shared.PaymentGateway
	stateMachine OrderStateMachine
	expiry       shared.ExpiryScheduler
	metrics      shared.Metrics
	settings     CheckoutSettings
	clock        clock.Clock
	logger       *slog.Logger
}

func NewCheckoutUseCase(
	uow shared.UnitOfWork,
	carts shared.CartProvider,
	reserver InventoryReserver,
	pricing order.PricingCalculator,
	gateway shared.PaymentGateway,
	stateMachine OrderStateMachine,
	expiry shared.ExpiryScheduler,
	metrics shared.Metrics,
	settings CheckoutSettings,
	clk clock.Clock,
	logger *slog.Logger,
) CheckoutCommands {
	if settings.GatewayTimeout <= 0 {
		settings.GatewayTimeout = 5 * time.Second
	}
	return &checkoutUseCaseImpl{
		uow:          uow,
		carts:        carts,
		reserver:     reserver,
		pricing:      pricing,
		gateway:      gateway,
		stateMachine: stateMachine,
		expiry:       expiry,
		metrics:      metrics,
		settings:     settings,
		clock:        clk,
		logger:       logger,
	}
}

func (uc *checkoutUseCaseImpl) Checkout(ctx context.Context, req CheckoutRequest) (*CheckoutResult, error) {
	snap, err := uc.carts.Snapshot(ctx, req.Owner)
	if err != nil {
		return nil, errs.Wrap(err, "load cart")
	}
	return uc.CheckoutSnapshot(ctx, snap, req)
}

func (uc *checkoutUseCaseImpl) CheckoutSnapshot(ctx context.Context, snap cart.Snapshot, req CheckoutRequest) (*CheckoutResult, error) {
	res, err := uc.checkout(ctx, snap, req)
	uc.metrics.CheckoutCompleted(checkoutOutcome(res, err))
	return res, err
}

func (uc *checkoutUseCaseImpl) checkout(ctx context.Context, snap cart.Snapshot, req CheckoutRequest) (*CheckoutResult, error) {
	if snap.IsEmpty() {
		return nil, errs.ErrEmptyCart
	}
	if err := idempotency.ValidateKey(req.IdempotencyKey); err != nil {
		return nil, err
	}
	currency, err := uc.resolveCurrency(req.Currency)
	if err != nil {
		return nil, err
	}
	if err := req.Shipping.Validate(order.AddressShipping); err != nil {
		return nil, err
	}
	if err := req.Billing.Validate(order.AddressBilling); err != nil {
		return nil, err
	}

	key := scopedKey(snap.Owner(), req.IdempotencyKey)
	requestHash := checkoutRequestHash(snap, currency, req.Shipping, req.Billing)

	if replay, err := uc.lookupReplay(ctx, key, requestHash); err != nil || replay != nil {
		return replay, err
	}

	placed, replay, err := uc.placeOrder(ctx, snap, req, currency, key, requestHash)
	if err != nil || replay != nil {
		return replay, err
	}

	return uc.requestPayment(ctx, placed)
}

func (uc *checkoutUseCaseImpl) resolveCurrency(raw string) (money.Currency, error) {
	if raw == "" {
		raw = uc.settings.DefaultCurrency
	}
	return money.ParseCurrency(raw)
}

func (uc *checkoutUseCaseImpl) lookupReplay(ctx context.Context, key, requestHash string) (*CheckoutResult, error) {
	var rec *idempotency.Record
	err := uc.uow.ReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		rec, err = tx.Idempotency().Get(ctx, idempotency.ScopeCheckout, key)
		return err
	})
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if rec == nil || rec.Expired(uc.clock.Now()) {
		return nil, nil
	}
	return uc.replay(ctx, *rec, requestHash)
}

func (uc *checkoutUseCaseImpl) replay(ctx context.Context, rec idempotency.Record, requestHash string) (*CheckoutResult, error) {
	orderID, err := rec.Replay(requestHash)
	if err != nil {
		return nil, err
	}

	res := &CheckoutResult{Replayed: true}
	err = uc.uow.ReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		o, err := tx.Orders().FindByID(ctx, *orderID)
		if err != nil {
			return err
		}
		res.Order = o

		intent, err := tx.PaymentIntents().FindByOrderID(ctx, *orderID)
		switch {
		case err == nil:
			res.Intent = intent
		case !infra.IsKind(err, infra.KindNotFound):
			return err
		}
		return nil
	})
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrOrderNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return res, nil
}

type placedOrder struct {
	order     *order.Order
	expiresAt time.Time
}

// placeOrder claims the key, reserves stock and writes the order in one transaction.
// Any failure rolls all three back.
func (uc *checkoutUseCaseImpl) placeOrder(
	ctx context.Context,
	snap cart.Snapshot,
	req CheckoutRequest,
	currency money.Currency,
	key, requestHash string,
) (*placedOrder, *CheckoutResult, error) {
	var (
		placed   *placedOrder
		existing *idempotency.Record
	)

	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		placed, existing = nil, nil
		now := uc.clock.Now()

		claimed, err := uc.claimKey(ctx, tx, key, requestHash, now)
		if err != nil {
			return err
		}
		if claimed != nil {
			existing = claimed
			return nil
		}

		orderID := uuid.New()
		reserved, err := uc.reserver.Reserve(ctx, tx, orderID, reservationLines(snap), now)
		if err != nil {
			return err
		}

		o, err := uc.buildOrder(orderID, snap, req, currency, reserved, now)
		if err != nil {
			return err
		}
		if err := tx.Orders().Create(ctx, o); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		id := o.ID()
		if err := tx.Idempotency().Complete(ctx, idempotency.ScopeCheckout, key, &id, nil); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		placed = &placedOrder{order: o, expiresAt: reserved.ExpiresAt}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	if existing != nil {
		res, err := uc.replay(ctx, *existing, requestHash)
		return nil, res, err
	}

	uc.expiry.Schedule(placed.order.ID(), placed.expiresAt)
	uc.logger.InfoContext(ctx, "order placed",
		"order_id", placed.order.ID(),
		"order_number", placed.order.Number(),
		"owner", snap.Owner().String(),
		"total", placed.order.Totals().Total.String(),
		"reservation_expires_at", placed.expiresAt)
	return placed, nil, nil
}

// claimKey returns the stored record when another request already owns key.
func (uc *checkoutUseCaseImpl) claimKey(
	ctx context.Context,
	tx shared.Tx,
	key, requestHash string,
	now time.Time,
) (*idempotency.Record, error) {
	rec := idempotency.NewRecord(idempotency.ScopeCheckout, key, requestHash, now, uc.settings.IdempotencyTTL)

	inserted, err := tx.Idempotency().TryInsert(ctx, rec)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if inserted {
		return nil, nil
	}

	current, err := tx.Idempotency().Get(ctx, idempotency.ScopeCheckout, key)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if current != nil && !current.Expired(now) {
		return current, nil
	}

	// Stale key from an earlier window: clear it and take over.
	if _, err := tx.Idempotency().DeleteExpired(ctx, idempotency.ScopeCheckout, now); err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if inserted, err = tx.Idempotency().TryInsert(ctx, rec); err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if !inserted {
		return nil, errs.ErrIdempotencyInProgress
	}
	return nil, nil
}

func (uc *checkoutUseCaseImpl) buildOrder(
	orderID uuid.UUID,
	snap cart.Snapshot,
	req CheckoutRequest,
	currency money.Currency,
	reserved inventory.Result,
	now time.Time,
) (*order.Order, error) {
	names := reserved.ProductNames()
	lines := snap.Lines()
	items := make([]order.Item, len(lines))
	priced := make([]order.PricedLine, len(lines))
	for i, l := range lines {
		items[i] = order.Item{
			ProductID:   l.ProductID,
			ProductName: names[l.ProductID],
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
		}
		priced[i] = order.PricedLine{ProductID: l.ProductID, Quantity: l.Quantity, UnitPrice: l.UnitPrice}
	}

	totals, err := uc.pricing.ComputeTotals(order.PricingInput{
		Currency: currency,
		Lines:    priced,
		Shipping: req.Shipping,
		Billing:  req.Billing,
	})
	if err != nil {
		return nil, err
	}

	return order.NewOrder(order.NewOrderParams{
		ID:       orderID,
		Owner:    snap.Owner(),
		Currency: currency,
		Items:    items,
		Shipping: req.Shipping,
		Billing:  req.Billing,
		Totals:   totals,
	}, now)
}

// requestPayment opens the gateway intent. Any failure, timeouts included, fails the
// order and releases its stock in one transaction.
func (uc *checkoutUseCaseImpl) requestPayment(ctx context.Context, placed *placedOrder) (*CheckoutResult, error) {
	o := placed.order

	gctx, cancel := context.WithTimeout(ctx, uc.settings.GatewayTimeout)
	created, gwErr := uc.gateway.CreateIntent(gctx, shared.CreateIntentRequest{
		OrderID:        o.ID(),
		OrderNumber:    o.Number(),
		Amount:         o.Totals().Total,
		Currency:       o.Currency(),
		IdempotencyKey: payment.IntentIdempotencyKey(o.Owner().String(), o.ID()),
	})
	cancel()

	if gwErr != nil {
		if !errs.Is(gwErr, errs.ErrGatewayRejected) {
			gwErr = errs.Mark(gwErr, errs.ErrGatewayUnavailable)
		}
		uc.logger.Warn("payment intent failed, failing order",
			"order_id", o.ID(),
			"error", gwErr.Error())

		// Compensation must run even if the caller went away.
		cctx := context.WithoutCancel(ctx)
		if _, err := uc.stateMachine.Transition(cctx, o.ID(), order.StatusFailed, shared.Trigger{
			Source: shared.SourceSystem,
			Reason: shared.ReasonGatewayError,
		}); err != nil {
			uc.logger.Error("failed to release reservation after gateway failure; expiry will reclaim it",
				"order_id", o.ID(),
				"error", err.Error())
		}
		return nil, gwErr
	}

	now := uc.clock.Now()
	intent := &payment.Intent{
		OrderID:          o.ID(),
		GatewayReference: created.GatewayReference,
		ClientSecret:     created.ClientSecret,
		Amount:           o.Totals().Total,
		Currency:         o.Currency(),
		Status:           payment.IntentPending,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.PaymentIntents().Create(ctx, *intent)
	})
	if err != nil {
		// The gateway echoes order_id in webhook metadata, so reconciliation still finds the order.
		uc.logger.Error("failed to record payment intent",
			"order_id", o.ID(),
			"gateway_reference", created.GatewayReference,
			"error", err.Error())
	}

	return &CheckoutResult{Order: o, Intent: intent}, nil
}

func reservationLines(snap cart.Snapshot) []inventory.Line {
	lines := snap.Lines()
	out := make([]inventory.Line, len(lines))
	for i, l := range lines {
		out[i] = inventory.Line{ProductID: l.ProductID, Quantity: l.Quantity}
	}
	return out
}

func scopedKey(owner cart.Owner, key string) string {
	return owner.String() + "|" + key
}

func checkoutRequestHash(snap cart.Snapshot, currency money.Currency, shipping, billing order.Address) string {
	addresses, _ := json.Marshal([]order.Address{shipping, billing})
	h := sha256.New()
	h.Write([]byte(snap.Fingerprint()))
	h.Write([]byte{0})
	h.Write([]byte(currency))
	h.Write([]byte{0})
	h.Write(addresses)
	return hex.EncodeToString(h.Sum(nil))
}

func checkoutOutcome(res *CheckoutResult, err error) string {
	switch {
	case err == nil && res != nil && res.Replayed:
		return "replayed"
	case err == nil:
		return "created"
	case errs.Is(err, errs.ErrEmptyCart):
		return "empty_cart"
	case errs.Is(err, errs.ErrOutOfStock):
		return "out_of_stock"
	case errs.Is(err, errs.ErrGatewayRejected):
		return "gateway_rejected"
	case errs.Is(err, errs.ErrGatewayUnavailable):
		return "gateway_unavailable"
	case errs.Is(err, errs.ErrIdempotencyKeyReused), errs.Is(err, errs.ErrIdempotencyInProgress):
		return "idempotency_conflict"
	default:
		return "error"
	}
}
