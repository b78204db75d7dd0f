package main

import (
	"github.com/spf13/cobra"
)

// rootOptions holds global flags for all commands.
type rootOptions struct {
	ConfigDir string
	EnvFile   string
}

// newRootCommand creates the root command of the gage CLI.
func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "gage",
		Short: "Gage plant backend",
		Long:  "REST backend over the Databricks SQL warehouse holding customer and plant data.",
		// Running the bare binary starts the server.
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), opts)
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigDir, "config", "configs", "directory holding config.yml")
	cmd.PersistentFlags().StringVar(&opts.EnvFile, "env-file", ".env", "dotenv file loaded before config")

	cmd.AddCommand(newServeCommand(opts))
	cmd.AddCommand(newCheckCommand(opts))
	cmd.AddCommand(newSeedAdminCommand(opts))

	return cmd
}
