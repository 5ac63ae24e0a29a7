package worker

import (
	"context"
	"log/slog"
	"time"

	"order-core/internal/domain/outbox"
	"order-core/internal/pkg/clock"
	"order-core/internal/pkg/errs"
	"order-core/internal/usecase/shared"

	"golang.org/x/sync/errgroup"
)

// Handler performs the side effect of one outbox entry. Handlers must be idempotent:
// an entry whose lease lapses is delivered again.
type Handler func(ctx context.Context, e outbox.Entry) error

type OutboxConfig struct {
	PollInterval time.Duration
	BatchSize    int
	Concurrency  int
	Lease        time.Duration
}

type OutboxWorker struct {
	uow      shared.UnitOfWork
	handlers map[outbox.Kind]Handler
	policy   outbox.BackoffPolicy
	cfg      OutboxConfig
	metrics  shared.Metrics
	clock    clock.Clock
	logger   *slog.Logger
}

func NewOutboxWorker(
	uow shared.UnitOfWork,
	handlers map[outbox.Kind]Handler,
	policy outbox.BackoffPolicy,
	cfg OutboxConfig,
	metrics shared.Metrics,
	clk clock.Clock,
	logger *slog.Logger,
) *OutboxWorker {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 32
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = time.Second
	}
	if cfg.Lease <= 0 {
		cfg.Lease = time.Minute
	}
	return &OutboxWorker{
		uow:      uow,
		handlers: handlers,
		policy:   policy,
		cfg:      cfg,
		metrics:  metrics,
		clock:    clk,
		logger:   logger,
	}
}

func (w *OutboxWorker) Name() string { return "outbox" }

func (w *OutboxWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if _, err := w.ProcessBatch(ctx); err != nil && ctx.Err() == nil {
				w.logger.Error("outbox batch failed", "error", err.Error())
			}
		case <-ctx.Done():
			return nil
		}
	}
}

// ProcessBatch claims due entries and runs them. It returns how many were claimed.
func (w *OutboxWorker) ProcessBatch(ctx context.Context) (int, error) {
	now := w.clock.Now()

	var claimed []outbox.Entry
	err := w.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		claimed, err = tx.Outbox().ClaimDue(ctx, now, w.cfg.BatchSize, now.Add(w.cfg.Lease))
		return err
	})
	if err != nil {
		return 0, errs.Wrap(err, "claim outbox entries")
	}

	// One entry failing to settle must not cancel its neighbours.
	var g errgroup.Group
	g.SetLimit(w.cfg.Concurrency)
	for _, e := range claimed {
		e := e
		g.Go(func() error {
			return w.execute(ctx, e)
		})
	}
	return len(claimed), g.Wait()
}

func (w *OutboxWorker) execute(ctx context.Context, e outbox.Entry) error {
	handler, ok := w.handlers[e.Kind]
	var runErr error
	if !ok {
		runErr = errs.Mark(errs.Newf("no handler for %q", e.Kind), errs.ErrUnknownOutboxKind)
	} else {
		runErr = handler(ctx, e)
	}

	now := w.clock.Now()
	if runErr == nil {
		w.metrics.OutboxProcessed(e.Kind, "done")
		return w.settle(ctx, func(ctx context.Context, repo shared.OutboxRepository) error {
			return repo.MarkDone(ctx, e.ID, now)
		})
	}

	outcome := w.policy.Fail(e, now)
	if isPermanent(runErr) {
		outcome.DeadLettered = true
	}

	if outcome.DeadLettered {
		w.logger.Error("outbox entry dead-lettered",
			"entry_id", e.ID,
			"kind", e.Kind,
			"attempts", outcome.Attempts,
			"error", runErr.Error())
		w.metrics.OutboxProcessed(e.Kind, "dead_lettered")
		return w.settle(ctx, func(ctx context.Context, repo shared.OutboxRepository) error {
			return repo.MarkDeadLettered(ctx, e.ID, outcome.Attempts, runErr.Error(), now)
		})
	}

	w.logger.Warn("outbox entry failed, retrying",
		"entry_id", e.ID,
		"kind", e.Kind,
		"attempts", outcome.Attempts,
		"next_attempt_at", outcome.NextAttemptAt,
		"error", runErr.Error())
	w.metrics.OutboxProcessed(e.Kind, "retry")
	return w.settle(ctx, func(ctx context.Context, repo shared.OutboxRepository) error {
		return repo.MarkRetry(ctx, e.ID, outcome.Attempts, outcome.NextAttemptAt, runErr.Error(), now)
	})
}

// settle records the result even when the worker is shutting down, so a finished
// effect is not re-run after its lease expires.
func (w *OutboxWorker) settle(ctx context.Context, fn func(ctx context.Context, repo shared.OutboxRepository) error) error {
	return w.uow.Within(context.WithoutCancel(ctx), func(ctx context.Context, tx shared.Tx) error {
		return fn(ctx, tx.Outbox())
	})
}

func isPermanent(err error) bool {
	return errs.Is(err, errs.ErrGatewayRejected) ||
		errs.Is(err, errs.ErrUnknownOutboxKind) ||
		errs.Is(err, errs.ErrInvalidOutboxPayload)
}
