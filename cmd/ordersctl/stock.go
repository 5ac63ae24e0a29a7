package main

import (
	"context"
	"fmt"
	"strconv"
	"text/tabwriter"

	"order-core/internal/handler/dto/response"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newStockCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stock",
		Short: "Inspect and adjust product stock",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "List available, reserved and sold units per product",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withServices(cmd, opts, func(ctx context.Context, s services) error {
				views, err := s.adminQ.Stock(ctx)
				if err != nil {
					return err
				}
				out, err := response.FromStockViews(views)
				if err != nil {
					return err
				}
				return render(cmd.OutOrStdout(), opts, out, func(tw *tabwriter.Writer) {
					fmt.Fprintln(tw, "PRODUCT\tNAME\tAVAILABLE\tRESERVED\tSOLD")
					for _, v := range out {
						fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\n", v.ProductID, v.Name, v.Available, v.Reserved, v.Sold)
					}
				})
			})
		},
	})

	var name string
	set := &cobra.Command{
		Use:   "set <product-id> <available>",
		Short: "Set the available units of a product, creating it if needed",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			productID, available, err := parseStockArgs(args)
			if err != nil {
				return err
			}
			return withServices(cmd, opts, func(ctx context.Context, s services) error {
				stock, err := s.admin.SetStock(ctx, productID, name, available)
				if err != nil {
					return err
				}
				out := response.FromStock(stock)
				return render(cmd.OutOrStdout(), opts, out, func(tw *tabwriter.Writer) {
					fmt.Fprintf(tw, "%s\t%s\tavailable=%d\n", out.ProductID, out.Name, out.Available)
				})
			})
		},
	}
	set.Flags().StringVar(&name, "name", "", "product name (kept when empty)")
	cmd.AddCommand(set)

	return cmd
}

func parseStockArgs(args []string) (uuid.UUID, int, error) {
	productID, err := uuid.Parse(args[0])
	if err != nil {
		return uuid.Nil, 0, usageError{fmt.Errorf("product id %q: %w", args[0], err)}
	}
	available, err := strconv.Atoi(args[1])
	if err != nil || available < 0 {
		return uuid.Nil, 0, usageError{fmt.Errorf("available must be a non-negative integer, got %q", args[1])}
	}
	return productID, available, nil
}
