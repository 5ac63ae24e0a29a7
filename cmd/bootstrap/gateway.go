package bootstrap

import (
	"log/slog"

	"order-core/internal/infra/gateway"
	"order-core/internal/infra/metrics"
	"order-core/internal/pkg/clock"
	"order-core/internal/pkg/config"
	"order-core/internal/usecase/shared"

	"go.uber.org/fx"
)

var GatewayModule = fx.Module("gateway",
	fx.Provide(
		fx.Annotate(
			NewGatewayClient,
			fx.As(new(shared.PaymentGateway)),
		),
		metrics.New,
		func(m *metrics.Metrics) shared.Metrics { return m },
		clock.NewRealClock,
	),
)

func NewGatewayClient(cfg config.Config, logger *slog.Logger) *gateway.Client {
	return gateway.NewClient(gateway.SettingsFromConfig(cfg.Gateway), logger)
}
