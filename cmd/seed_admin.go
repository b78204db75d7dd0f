package main

import (
	"context"
	"fmt"

	"gage_backend/internal/models"
	"gage_backend/internal/service"

	"github.com/spf13/cobra"
)

type seedAdminOptions struct {
	Email    string
	Password string
	Name     string
	Plant    string
}

func newSeedAdminCommand(rootOpts *rootOptions) *cobra.Command {
	opts := &seedAdminOptions{}

	cmd := &cobra.Command{
		Use:          "seed-admin",
		Short:        "Create the first admin customer",
		Long:         "Creates an admin customer directly in the warehouse so the admin-only create route can be used.",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			in, err := service.CustomerInputFrom(map[string]any{
				"email":     opts.Email,
				"full_name": opts.Name,
				"role":      models.RoleAdmin,
				"plant":     opts.Plant,
				"password":  opts.Password,
			})
			if err != nil {
				return err
			}

			a, err := bootstrap(ctx, rootOpts)
			if err != nil {
				return err
			}
			defer func() { _ = a.close() }()

			cust, err := service.NewCustomerService(a.repos.Customers).Bootstrap(ctx, in)
			if err != nil {
				return fmt.Errorf("seed admin: %w", err)
			}
			a.log.Infow("admin seeded", "email", cust.Email, "plant", cust.Plant)
			fmt.Fprintf(cmd.OutOrStdout(), "created admin %s (%s)\n", cust.Email, cust.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Email, "email", "", "admin email (required)")
	cmd.Flags().StringVar(&opts.Password, "password", "", "admin password (required)")
	cmd.Flags().StringVar(&opts.Name, "name", "Administrator", "full name")
	cmd.Flags().StringVar(&opts.Plant, "plant", "", "plant assignment (required)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	_ = cmd.MarkFlagRequired("plant")

	return cmd
}
