package bootstrap

import (
	"context"
	"log/slog"

	"order-core/internal/domain/outbox"
	"order-core/internal/pkg/clock"
	"order-core/internal/pkg/config"
	"order-core/internal/usecase/commands"
	"order-core/internal/usecase/shared"
	"order-core/internal/usecase/worker"

	"go.uber.org/fx"
)

var WorkerModule = fx.Module("workers",
	fx.Provide(
		worker.NewExpiryTimers,
		func(t *worker.ExpiryTimers) shared.ExpiryScheduler { return t },
		worker.NewHandlers,
		NewBackoffPolicy,
		NewOutboxWorker,
		NewSweeper,
		NewRunner,
	),
)

// RunWorkersModule starts the background workers with the application.
var RunWorkersModule = fx.Module("workers/run",
	fx.Invoke(startWorkers),
)

func NewBackoffPolicy(cfg config.Config) outbox.BackoffPolicy {
	return outbox.BackoffPolicy{
		Base:        cfg.Outbox.BaseBackoff,
		Max:         cfg.Outbox.MaxBackoff,
		MaxAttempts: cfg.Outbox.MaxAttempts,
		Jitter:      outbox.CryptoJitter,
	}
}

func NewOutboxWorker(
	uow shared.UnitOfWork,
	handlers map[outbox.Kind]worker.Handler,
	policy outbox.BackoffPolicy,
	cfg config.Config,
	m shared.Metrics,
	clk clock.Clock,
	logger *slog.Logger,
) *worker.OutboxWorker {
	return worker.NewOutboxWorker(uow, handlers, policy, worker.OutboxConfig{
		PollInterval: cfg.Outbox.PollInterval,
		BatchSize:    cfg.Outbox.BatchSize,
		Concurrency:  cfg.Outbox.Concurrency,
		Lease:        cfg.Outbox.Lease,
	}, m, clk, logger)
}

func NewSweeper(
	uow shared.UnitOfWork,
	stateMachine commands.OrderStateMachine,
	timers *worker.ExpiryTimers,
	cfg config.Config,
	clk clock.Clock,
	logger *slog.Logger,
) *worker.Sweeper {
	return worker.NewSweeper(uow, stateMachine, timers, worker.SweeperConfig{
		Interval:  cfg.Expiry.SweepInterval,
		BatchSize: cfg.Expiry.BatchSize,
	}, clk, logger)
}

func NewRunner(logger *slog.Logger, outboxWorker *worker.OutboxWorker, sweeper *worker.Sweeper) *worker.Runner {
	return worker.NewRunner(logger, outboxWorker, sweeper)
}

func startWorkers(lc fx.Lifecycle, runner *worker.Runner, timers *worker.ExpiryTimers) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			runner.Start(ctx)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			timers.Stop()
			return runner.Stop(ctx)
		},
	})
}
