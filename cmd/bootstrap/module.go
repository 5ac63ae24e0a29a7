package bootstrap

import (
	"order-core/cmd/bootstrap/components"

	"go.uber.org/fx"
)

// Module is everything the API process needs apart from the HTTP engine.
var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	DBModule,
	JWTModule,
	GatewayModule,
	MessagingModule,
	components.UseCaseModule,
	WorkerModule,
	RunWorkersModule,
	components.HandlerModule,
)

// CLIModule is the API graph minus HTTP and running workers; operator commands
// populate the pieces they need from it.
var CLIModule = fx.Options(
	ConfigModule,
	LoggerModule,
	DBModule,
	JWTModule,
	GatewayModule,
	MessagingModule,
	components.UseCaseModule,
	WorkerModule,
)
