package components

import (
	"log/slog"

	"order-core/internal/domain/money"
	"order-core/internal/domain/order"
	"order-core/internal/pkg/config"
	"order-core/internal/usecase"
	"order-core/internal/usecase/commands"
	"order-core/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	NewPricingCalculator,
	NewInventoryReserver,
	NewCheckoutSettings,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewOrderStateMachine,
		commands.NewCheckoutUseCase,
		commands.NewOrderUseCase,
		commands.NewWebhookUseCase,
		commands.NewAdminUseCase,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewOrderQueries,
		queries.NewAdminQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)

func NewPricingCalculator(cfg config.Config) (order.PricingCalculator, error) {
	shipping, err := money.New(cfg.Pricing.FlatShippingMinor)
	if err != nil {
		return nil, err
	}
	threshold, err := money.New(cfg.Pricing.FreeShippingThresholdMinor)
	if err != nil {
		return nil, err
	}
	return &order.FlatRateCalculator{
		TaxRateBasisPoints:    cfg.Pricing.TaxRateBasisPoints,
		FlatShipping:          shipping,
		FreeShippingThreshold: threshold,
	}, nil
}

func NewInventoryReserver(cfg config.Config, logger *slog.Logger) commands.InventoryReserver {
	return commands.NewInventoryReserver(cfg.Checkout.ReservationTTL, logger)
}

func NewCheckoutSettings(cfg config.Config) commands.CheckoutSettings {
	return commands.CheckoutSettings{
		DefaultCurrency: cfg.Checkout.DefaultCurrency,
		IdempotencyTTL:  cfg.Checkout.IdempotencyTTL,
		GatewayTimeout:  cfg.Gateway.Timeout,
	}
}
