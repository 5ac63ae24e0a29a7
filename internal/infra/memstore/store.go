// Package memstore is a process-local storage driver with the same transactional
// semantics as the Postgres driver. Transactions are serialized and roll back
// by restoring a copy of the state taken at begin.
package memstore

import (
	"context"
	"log/slog"
	"sync"

	"order-core/internal/domain/idempotency"
	"order-core/internal/domain/inventory"
	"order-core/internal/domain/order"
	"order-core/internal/domain/outbox"
	"order-core/internal/domain/payment"
	"order-core/internal/infra"
	"order-core/internal/usecase/shared"

	"github.com/google/uuid"
)

type idemKey struct {
	scope idempotency.Scope
	key   string
}

type webhookRow struct {
	event   payment.Event
	outcome shared.ReconcileOutcome
	orderID *uuid.UUID
}

type state struct {
	products     map[uuid.UUID]inventory.Stock
	reservations map[uuid.UUID][]inventory.Reservation
	orders       map[uuid.UUID]order.ReconstructParams
	intents      map[uuid.UUID]payment.Intent
	idempotency  map[idemKey]idempotency.Record
	webhooks     map[string]webhookRow
	outbox       map[uuid.UUID]outbox.Entry
	outboxDedup  map[string]uuid.UUID
}

func newState() *state {
	return &state{
		products:     make(map[uuid.UUID]inventory.Stock),
		reservations: make(map[uuid.UUID][]inventory.Reservation),
		orders:       make(map[uuid.UUID]order.ReconstructParams),
		intents:      make(map[uuid.UUID]payment.Intent),
		idempotency:  make(map[idemKey]idempotency.Record),
		webhooks:     make(map[string]webhookRow),
		outbox:       make(map[uuid.UUID]outbox.Entry),
		outboxDedup:  make(map[string]uuid.UUID),
	}
}

func (s *state) clone() *state {
	c := newState()
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.reservations {
		c.reservations[k] = append([]inventory.Reservation(nil), v...)
	}
	for k, v := range s.orders {
		c.orders[k] = v
	}
	for k, v := range s.intents {
		c.intents[k] = v
	}
	for k, v := range s.idempotency {
		c.idempotency[k] = v
	}
	for k, v := range s.webhooks {
		c.webhooks[k] = v
	}
	for k, v := range s.outbox {
		c.outbox[k] = v
	}
	for k, v := range s.outboxDedup {
		c.outboxDedup[k] = v
	}
	return c
}

type Store struct {
	mu     sync.Mutex
	st     *state
	logger *slog.Logger
}

func New(logger *slog.Logger) *Store {
	return &Store{st: newState(), logger: logger}
}

// UnitOfWork serializes transactions on s. Nested calls deadlock, so callers
// must never open a transaction from inside another.
type UnitOfWork struct {
	store *Store
}

func NewUnitOfWork(store *Store) shared.UnitOfWork {
	return &UnitOfWork{store: store}
}

func (u *UnitOfWork) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s := u.store
	s.mu.Lock()
	defer s.mu.Unlock()

	before := s.st.clone()
	if err := fn(ctx, &memTx{store: s}); err != nil {
		s.st = before
		return err
	}
	return nil
}

func (u *UnitOfWork) ReadOnly(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s := u.store
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(ctx, &memTx{store: s, readOnly: true})
}

type memTx struct {
	store    *Store
	readOnly bool
}

func (t *memTx) Orders() shared.OrderRepository                 { return &orderRepo{t} }
func (t *memTx) Inventory() shared.InventoryRepository          { return &inventoryRepo{t} }
func (t *memTx) PaymentIntents() shared.PaymentIntentRepository { return &intentRepo{t} }
func (t *memTx) Idempotency() shared.IdempotencyRepository      { return &idempotencyRepo{t} }
func (t *memTx) WebhookEvents() shared.WebhookEventRepository   { return &webhookRepo{t} }
func (t *memTx) Outbox() shared.OutboxRepository                { return &outboxRepo{t} }

func (t *memTx) st() *state { return t.store.st }

func (t *memTx) writable(op string) error {
	if t.readOnly {
		return infra.WrapRepoErr(t.store.logger, infra.KindDBFailure, op+" in read-only transaction", nil)
	}
	return nil
}

func (t *memTx) notFound(msg string) error {
	return infra.WrapRepoErr(t.store.logger, infra.KindNotFound, msg, nil)
}

func (t *memTx) duplicate(msg string) error {
	return infra.WrapRepoErr(t.store.logger, infra.KindDuplicateKey, msg, nil)
}
