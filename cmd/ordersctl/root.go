package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"text/tabwriter"
	"time"

	"order-core/cmd/bootstrap"
	"order-core/internal/pkg/config"
	"order-core/internal/usecase/commands"
	"order-core/internal/usecase/queries"
	"order-core/internal/usecase/worker"

	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

const (
	exitFailure      = 1
	exitCommandError = 2
)

var validFormats = []string{"text", "json"}

type rootOptions struct {
	format  string
	timeout time.Duration
}

// usageError marks bad invocations so they exit with exitCommandError.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func exitCode(err error) int {
	var u usageError
	if errors.As(err, &u) {
		return exitCommandError
	}
	return exitFailure
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "ordersctl",
		Short: "Operate an order-core deployment",
		Long: `Operator commands for order-core. Configuration comes from the same
environment variables as the API process.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if !slices.Contains(validFormats, opts.format) {
				return usageError{fmt.Errorf("invalid format %q: must be one of %v", opts.format, validFormats)}
			}
			return nil
		},
	}

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})

	cmd.PersistentFlags().StringVar(&opts.format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", time.Minute, "overall command timeout")

	cmd.AddCommand(newMigrateCommand(opts))
	cmd.AddCommand(newStockCommand(opts))
	cmd.AddCommand(newDeadLettersCommand(opts))
	cmd.AddCommand(newExpireCommand(opts))
	cmd.AddCommand(newTokenCommand(opts))

	return cmd
}

// services is what the data commands pull out of the application graph.
type services struct {
	admin   commands.AdminCommands
	adminQ  queries.AdminQueries
	sweeper *worker.Sweeper
	logger  *slog.Logger
}

// withServices builds the application graph against Postgres, runs fn and
// shuts the graph down again.
func withServices(cmd *cobra.Command, opts *rootOptions, fn func(ctx context.Context, s services) error) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	if cfg.Store.Driver != config.StoreDriverPostgres {
		return usageError{fmt.Errorf("ordersctl needs STORE_DRIVER=%s, got %q", config.StoreDriverPostgres, cfg.Store.Driver)}
	}

	var s services
	app := fx.New(
		fx.NopLogger,
		bootstrap.CLIModule,
		fx.Populate(&s.admin, &s.adminQ, &s.sweeper, &s.logger),
	)
	if err := app.Err(); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
	defer cancel()
	if err := app.Start(ctx); err != nil {
		return err
	}
	defer func() {
		stopCtx, stop := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
		defer stop()
		_ = app.Stop(stopCtx)
	}()

	return fn(ctx, s)
}

// render writes v as indented JSON, or hands a tabwriter to text.
func render(w io.Writer, opts *rootOptions, v any, text func(tw *tabwriter.Writer)) error {
	if opts.format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	text(tw)
	return tw.Flush()
}
