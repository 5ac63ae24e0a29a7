package bootstrap

import (
	"context"
	"log/slog"

	"order-core/internal/infra/cartstore"
	"order-core/internal/infra/notify"
	"order-core/internal/pkg/clock"
	"order-core/internal/pkg/config"
	"order-core/internal/usecase/shared"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var MessagingModule = fx.Module("messaging",
	fx.Provide(
		NewRedisClient,
		fx.Annotate(
			NewCartStore,
			fx.As(new(shared.CartProvider)),
		),
		NewNotifier,
	),
)

func NewRedisClient(lc fx.Lifecycle, cfg config.Config) *redis.Client {
	client := cartstore.NewRedisClient(cfg.Redis)
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})
	return client
}

func NewCartStore(client *redis.Client, cfg config.Config, clk clock.Clock, logger *slog.Logger) *cartstore.RedisStore {
	return cartstore.NewRedisStore(client, cfg.Redis, clk, logger)
}

type closingNotifier interface {
	shared.Notifier
	Close() error
}

// NewNotifier picks the transport named by NOTIFY_DRIVER and closes it on shutdown.
func NewNotifier(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (shared.Notifier, error) {
	var n closingNotifier
	switch cfg.Notify.Driver {
	case config.NotifyDriverKafka:
		n = notify.NewKafkaNotifier(notify.NewKafkaWriter(cfg.Notify), cfg.Notify.KafkaTopic, logger)
	case config.NotifyDriverRabbitMQ:
		r, err := notify.DialRabbitMQ(cfg.Notify.RabbitURL, cfg.Notify.RabbitExchange, logger)
		if err != nil {
			return nil, err
		}
		n = r
	default:
		n = notify.NewLogNotifier(logger)
	}

	logger.Info("Notifier configured", slog.String("driver", cfg.Notify.Driver))
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return n.Close()
		},
	})
	return n, nil
}
