package main

import (
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"

	"order-core/internal/infra/migrations"
	"order-core/internal/pkg/config"

	"github.com/spf13/cobra"
)

func newMigrateCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back the Postgres schema",
	}

	var steps int
	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migrations",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			url, logger, err := migrateTarget()
			if err != nil {
				return err
			}
			if steps <= 0 {
				return usageError{fmt.Errorf("--steps must be positive, got %d", steps)}
			}
			return migrations.Down(url, steps, logger)
		},
	}
	down.Flags().IntVar(&steps, "steps", 1, "number of migrations to roll back")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply every pending migration",
			Args:  cobra.NoArgs,
			RunE: func(_ *cobra.Command, _ []string) error {
				url, logger, err := migrateTarget()
				if err != nil {
					return err
				}
				return migrations.Up(url, logger)
			},
		},
		down,
		&cobra.Command{
			Use:   "version",
			Short: "Print the applied schema version",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				url, _, err := migrateTarget()
				if err != nil {
					return err
				}
				v, dirty, err := migrations.Version(url)
				if err != nil {
					return err
				}
				out := struct {
					Version uint `json:"version"`
					Dirty   bool `json:"dirty"`
				}{v, dirty}
				return render(cmd.OutOrStdout(), opts, out, func(tw *tabwriter.Writer) {
					fmt.Fprintf(tw, "version\t%d\ndirty\t%t\n", v, dirty)
				})
			},
		},
	)
	return cmd
}

func migrateTarget() (string, *slog.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return "", nil, err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	return cfg.DB.BuildMigrateURL(), logger, nil
}
