package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newCheckCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:          "check",
		Short:        "Resolve secrets and ping the warehouse",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			a, err := bootstrap(ctx, opts)
			if err != nil {
				return err
			}
			defer func() { _ = a.close() }()

			if err := a.services.Warehouse.Ping(ctx); err != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "warehouse: failed (%v)\n", err)
				return fmt.Errorf("warehouse ping: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "warehouse: connected (%s)\n", a.cfg.Warehouse.Driver)
			return nil
		},
	}
}
