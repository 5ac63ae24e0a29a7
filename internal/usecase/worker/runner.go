package worker

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"
)

type Worker interface {
	Name() string
	Run(ctx context.Context) error
}

// Runner starts background workers together and stops them together.
type Runner struct {
	workers []Worker
	logger  *slog.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	group  *errgroup.Group
}

func NewRunner(logger *slog.Logger, workers ...Worker) *Runner {
	return &Runner{workers: workers, logger: logger}
}

func (r *Runner) Start(parent context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.group != nil {
		return
	}

	ctx, cancel := context.WithCancel(context.WithoutCancel(parent))
	g, gctx := errgroup.WithContext(ctx)
	for _, w := range r.workers {
		w := w
		g.Go(func() error {
			r.logger.Info("worker started", "worker", w.Name())
			err := w.Run(gctx)
			r.logger.Info("worker stopped", "worker", w.Name())
			return err
		})
	}
	r.cancel = cancel
	r.group = g
}

func (r *Runner) Stop(ctx context.Context) error {
	r.mu.Lock()
	cancel, g := r.cancel, r.group
	r.cancel, r.group = nil, nil
	r.mu.Unlock()
	if g == nil {
		return nil
	}

	cancel()
	done := make(chan error, 1)
	go func() { done <- g.Wait() }()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
