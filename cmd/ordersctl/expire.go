package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newExpireCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "expire",
		Short: "Reservation expiry maintenance",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "sweep",
		Short: "Fail every order whose reservation has lapsed and drop stale checkout keys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withServices(cmd, opts, func(ctx context.Context, s services) error {
				report, err := s.sweeper.SweepOnce(ctx)
				if err != nil {
					return err
				}
				out := struct {
					Expired            int   `json:"expired"`
					IdempotencyDeleted int64 `json:"idempotency_deleted"`
				}{report.Expired, report.IdempotencyDeleted}
				return render(cmd.OutOrStdout(), opts, out, func(tw *tabwriter.Writer) {
					fmt.Fprintf(tw, "expired orders\t%d\nidempotency keys deleted\t%d\n", out.Expired, out.IdempotencyDeleted)
				})
			})
		},
	})
	return cmd
}
