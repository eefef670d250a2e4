// Package cli wires the pipeline services into the prospect command tree.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/arclight-labs/prospect-cli/internal/adapters/driven/config"
	"github.com/arclight-labs/prospect-cli/internal/logger"
)

var (
	verbose    bool
	jsonLogs   bool
	configPath string

	// cfg is loaded before any subcommand runs.
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "prospect",
	Short: "Outbound lead collection and outreach dispatch",
	Long: `prospect runs a two-stage outbound pipeline.

The collect command searches a people directory with a filter recipe,
drops excluded and already-seen candidates, enriches the rest and appends
them to a CSV lead file. The dispatch command sends outreach email to the
most senior deliverable leads under daily and per-company quotas, with
every attempt recorded in a durable ledger.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		if err := logger.Initialize(verbose, jsonLogs); err != nil {
			return err
		}
		var err error
		cfg, err = config.Load(configPath)
		return err
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&jsonLogs, "json-logs", false, "emit logs as JSON")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.prospect/config.toml)")
}

// Execute runs the root command.
func Execute() error {
	defer logger.Sync()
	return rootCmd.Execute()
}
