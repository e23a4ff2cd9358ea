package main

import (
	"github.com/spf13/cobra"

	"critpath/internal/config"
	"critpath/internal/logging"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	flagConfig    string
	flagLogLevel  string
	flagLogFormat string

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "critpath",
	Short: "Critical path discovery for service topologies",
	Long: "critpath ingests per-service call statistics for a time window and produces\n" +
		"a ranked set of named critical request paths for dashboards and diagnostics.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		level, err := logging.ParseLevel(flagLogLevel)
		if err != nil {
			return err
		}
		logging.Init(level, flagLogFormat)

		cfg, err = config.Load(flagConfig)
		return err
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", ".critpath.yaml", "Config file path")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", "text", "Log format (text, json)")

	rootCmd.AddCommand(discoverCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(pathsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.Version = version
}
