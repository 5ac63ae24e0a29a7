package main

import (
	"fmt"
	"time"

	"order-core/internal/pkg/config"
	"order-core/internal/pkg/jwt"
	"order-core/internal/usecase"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// newTokenCommand mints bearer tokens for local runs and smoke tests.
func newTokenCommand(_ *rootOptions) *cobra.Command {
	var (
		subject string
		role    string
		ttl     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a signed bearer token for a user id and role",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := uuid.Parse(subject); err != nil {
				return usageError{fmt.Errorf("--subject must be a uuid: %w", err)}
			}
			r, err := usecase.ParseRole(role)
			if err != nil {
				return usageError{err}
			}
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}

			token, err := jwt.NewService(cfg.JWT.Secret).GenerateToken(subject, r.String(), ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "", "user id placed in the sub claim (required)")
	_ = cmd.MarkFlagRequired("subject")
	cmd.Flags().StringVar(&role, "role", string(usecase.RoleCustomer), "customer|operator|admin")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "token lifetime")

	return cmd
}
