package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"critpath/internal/discovery"
	"critpath/internal/format"
)

var flagAnalyzeOutput string

var analyzeCmd = &cobra.Command{
	Use:   "analyze <service,service,...>",
	Short: "Build a single ad hoc path from an ordered service list",
	Long: `Builds one path record from a comma-separated service list, entry point
first. No topology lookup happens, so the metrics are zero-valued; use
discover for metric-backed paths.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&flagAnalyzeOutput, "output", "o", "table", "Output format (table, markdown, json)")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	services, err := splitServices(args[0])
	if err != nil {
		return err
	}

	// The generator is never consulted for ad hoc paths.
	orch := discovery.NewOrchestrator(nil)
	path := orch.AnalyzePath(services)

	switch flagAnalyzeOutput {
	case "json":
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(path)
	case "table", "markdown":
		mode := format.ASCII
		if flagAnalyzeOutput == "markdown" {
			mode = format.Markdown
		}
		fmt.Fprintln(cmd.OutOrStdout(), format.PathTable(mode, []discovery.CriticalPath{path}))
		return nil
	default:
		return fmt.Errorf("unknown output format %q", flagAnalyzeOutput)
	}
}
