package cartstore

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"order-core/internal/domain/cart"
	"order-core/internal/domain/money"
	"order-core/internal/pkg/clock"
	"order-core/internal/pkg/config"
	"order-core/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const defaultTTL = 7 * 24 * time.Hour

// document is the JSON the cart service keeps under cart:<owner>.
type document struct {
	Lines     []lineDocument `json:"lines"`
	UpdatedAt time.Time      `json:"updated_at"`
}

type lineDocument struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
	UnitPrice string    `json:"unit_price"`
}

// RedisStore reads live carts from Redis and freezes them into snapshots.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	clock  clock.Clock
	logger *slog.Logger
}

func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

func NewRedisStore(client *redis.Client, cfg config.RedisConfig, clk clock.Clock, logger *slog.Logger) *RedisStore {
	prefix := cfg.KeyPrefix
	if prefix == "" {
		prefix = "cart:"
	}
	return &RedisStore{
		client: client,
		prefix: prefix,
		ttl:    defaultTTL,
		clock:  clk,
		logger: logger,
	}
}

func (s *RedisStore) key(owner cart.Owner) string {
	return s.prefix + owner.String()
}

// Snapshot returns an empty snapshot when the owner has no cart; checkout rejects it.
func (s *RedisStore) Snapshot(ctx context.Context, owner cart.Owner) (cart.Snapshot, error) {
	raw, err := s.client.Get(ctx, s.key(owner)).Bytes()
	if errs.Is(err, redis.Nil) {
		return cart.NewSnapshot(owner, nil, s.clock.Now())
	}
	if err != nil {
		return cart.Snapshot{}, errs.Wrapf(err, "read cart for %s", owner)
	}

	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		s.logger.Warn("unreadable cart document", "owner", owner.String(), "error", err.Error())
		return cart.Snapshot{}, errs.Mark(errs.Wrapf(err, "decode cart for %s", owner), errs.ErrInvalidCart)
	}

	lines := make([]cart.Line, len(doc.Lines))
	for i, l := range doc.Lines {
		price, err := money.Parse(l.UnitPrice)
		if err != nil {
			return cart.Snapshot{}, errs.Mark(errs.Wrapf(err, "line %d of cart for %s", i, owner), errs.ErrInvalidCart)
		}
		lines[i] = cart.Line{ProductID: l.ProductID, Quantity: l.Quantity, UnitPrice: price}
	}
	return cart.NewSnapshot(owner, lines, s.clock.Now())
}

// Put replaces the owner's cart. The storefront owns cart edits; Put backs test fixtures.
func (s *RedisStore) Put(ctx context.Context, owner cart.Owner, lines []cart.Line) error {
	doc := document{Lines: make([]lineDocument, len(lines)), UpdatedAt: s.clock.Now()}
	for i, l := range lines {
		doc.Lines[i] = lineDocument{ProductID: l.ProductID, Quantity: l.Quantity, UnitPrice: l.UnitPrice.String()}
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return errs.Wrap(err, "encode cart")
	}
	if err := s.client.Set(ctx, s.key(owner), raw, s.ttl).Err(); err != nil {
		return errs.Wrapf(err, "write cart for %s", owner)
	}
	return nil
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
