package main

import (
	"github.com/spf13/cobra"
)

const defaultConfigPath = "config/config.yaml"

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chainhealth",
		Short: "Composite blockchain health score",
		Long: `chainhealth rates how exposed a proof-of-work chain is to rented hashrate
and recent reorganizations, combining both into a single 0 to 5 score.

Run "serve" for the HTTP API and the periodic monitor, or "check" for a
single scoring cycle printed to stdout.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringP("config", "c", defaultConfigPath,
		"config file path (empty uses built-in defaults)")

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewCheckCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}
