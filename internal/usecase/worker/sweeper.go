package worker

import (
	"context"
	"log/slog"
	"time"

	"order-core/internal/domain/idempotency"
	"order-core/internal/pkg/clock"
	"order-core/internal/usecase/commands"
	"order-core/internal/usecase/shared"

	"github.com/google/uuid"
)

type SweeperConfig struct {
	Interval  time.Duration
	BatchSize int
}

// Sweeper fails orders whose reservation ran out. It reacts to in-process timers
// and also scans storage so expiries survive restarts.
type Sweeper struct {
	uow          shared.UnitOfWork
	stateMachine commands.OrderStateMachine
	timers       *ExpiryTimers
	cfg          SweeperConfig
	clock        clock.Clock
	logger       *slog.Logger
}

func NewSweeper(
	uow shared.UnitOfWork,
	stateMachine commands.OrderStateMachine,
	timers *ExpiryTimers,
	cfg SweeperConfig,
	clk clock.Clock,
	logger *slog.Logger,
) *Sweeper {
	if cfg.Interval <= 0 {
		cfg.Interval = 30 * time.Second
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 100
	}
	return &Sweeper{
		uow:          uow,
		stateMachine: stateMachine,
		timers:       timers,
		cfg:          cfg,
		clock:        clk,
		logger:       logger,
	}
}

func (s *Sweeper) Name() string { return "expiry-sweeper" }

func (s *Sweeper) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	s.sweepLogged(ctx)
	for {
		select {
		case orderID := <-s.timers.Fired():
			_, _ = s.expire(ctx, orderID)
		case <-ticker.C:
			s.sweepLogged(ctx)
		case <-ctx.Done():
			return nil
		}
	}
}

func (s *Sweeper) sweepLogged(ctx context.Context) {
	if _, err := s.SweepOnce(ctx); err != nil && ctx.Err() == nil {
		s.logger.Error("expiry sweep failed", "error", err.Error())
	}
}

type SweepReport struct {
	Expired            int
	IdempotencyDeleted int64
}

// SweepOnce expires every overdue reservation batch by batch and drops stale checkout keys.
func (s *Sweeper) SweepOnce(ctx context.Context) (SweepReport, error) {
	var report SweepReport
	for {
		var due []uuid.UUID
		err := s.uow.ReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
			var err error
			due, err = tx.Inventory().ExpiredOrders(ctx, s.clock.Now(), s.cfg.BatchSize)
			return err
		})
		if err != nil {
			return report, err
		}

		// Orders that already left pending_payment get their stray rows settled,
		// so they drop out of the next batch even though nothing expired.
		handled := 0
		for _, id := range due {
			expired, err := s.expire(ctx, id)
			if err != nil {
				continue
			}
			handled++
			if expired {
				report.Expired++
			}
		}
		if len(due) < s.cfg.BatchSize || handled == 0 {
			break
		}
	}

	err := s.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		report.IdempotencyDeleted, err = tx.Idempotency().DeleteExpired(ctx, idempotency.ScopeCheckout, s.clock.Now())
		return err
	})
	return report, err
}

func (s *Sweeper) expire(ctx context.Context, orderID uuid.UUID) (bool, error) {
	expired, err := s.stateMachine.ExpireReservation(ctx, orderID)
	if err != nil {
		s.logger.Error("failed to expire reservation", "order_id", orderID, "error", err.Error())
		return false, err
	}
	if expired {
		s.logger.Info("reservation expired", "order_id", orderID)
	}
	return expired, nil
}
