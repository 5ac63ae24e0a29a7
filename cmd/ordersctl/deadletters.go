package main

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"order-core/internal/handler/dto/response"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newDeadLettersCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "dead-letters",
		Aliases: []string{"dlq"},
		Short:   "Inspect and requeue outbox entries that exhausted their retries",
	}

	var limit int
	list := &cobra.Command{
		Use:   "list",
		Short: "List dead-lettered outbox entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if limit < 1 {
				return usageError{fmt.Errorf("--limit must be positive, got %d", limit)}
			}
			return withServices(cmd, opts, func(ctx context.Context, s services) error {
				entries, err := s.adminQ.DeadLetters(ctx, limit)
				if err != nil {
					return err
				}
				out, err := response.FromDeadLetters(entries)
				if err != nil {
					return err
				}
				return render(cmd.OutOrStdout(), opts, out, func(tw *tabwriter.Writer) {
					fmt.Fprintln(tw, "ID\tKIND\tATTEMPTS\tUPDATED\tLAST ERROR")
					for _, e := range out {
						fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n", e.ID, e.Kind, e.Attempts, e.UpdatedAt.Format(time.RFC3339), e.LastError)
					}
				})
			})
		},
	}
	list.Flags().IntVar(&limit, "limit", 50, "maximum number of entries")

	requeue := &cobra.Command{
		Use:   "requeue <entry-id>",
		Short: "Put a dead-lettered entry back on the queue with a fresh attempt budget",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return usageError{fmt.Errorf("entry id %q: %w", args[0], err)}
			}
			return withServices(cmd, opts, func(ctx context.Context, s services) error {
				if err := s.admin.RequeueDeadLetter(ctx, id); err != nil {
					return err
				}
				s.logger.Info("Dead letter requeued", "entry_id", id.String())
				fmt.Fprintf(cmd.OutOrStdout(), "requeued %s\n", id)
				return nil
			})
		},
	}

	cmd.AddCommand(list, requeue)
	return cmd
}
