package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"critpath/internal/format"
	"critpath/internal/store"
)

var flagPathsRun int64

var pathsCmd = &cobra.Command{
	Use:   "paths",
	Short: "List saved discovery runs and their paths",
	RunE:  runPaths,
}

func init() {
	pathsCmd.Flags().Int64Var(&flagPathsRun, "run", 0, "Show the paths of one run instead of the run list")
	pathsCmd.Flags().StringVar(&flagDB, "db", "", "Store DB path (default from config, then "+store.DefaultDBPath+")")
}

func runPaths(cmd *cobra.Command, _ []string) error {
	st, err := store.Open(dbPath())
	if err != nil {
		return err
	}
	defer st.Close()

	if flagPathsRun > 0 {
		return printRunPaths(cmd, st, flagPathsRun)
	}

	runs, err := st.ListRuns()
	if err != nil {
		return err
	}
	t := format.NewTable(format.ASCII)
	t.Header("RUN", "CREATED", "WINDOW", "STRATEGY", "SOURCE", "PATHS")
	for _, r := range runs {
		t.Row(r.ID, r.CreatedAt, r.StartTime+" .. "+r.EndTime, r.DiscoveredBy,
			format.Truncate(r.Source, 40), r.PathCount)
	}
	fmt.Fprintln(cmd.OutOrStdout(), t.String())
	return nil
}

func printRunPaths(cmd *cobra.Command, st store.Store, runID int64) error {
	if _, err := st.GetRun(runID); err != nil {
		return err
	}
	recs, err := st.ListPathsByRun(runID)
	if err != nil {
		return err
	}
	t := format.NewTable(format.ASCII)
	t.Header("ID", "NAME", "PATH", "PRIORITY", "SEVERITY", "ERR%")
	t.Columns(format.ColumnConfig{Number: 3, Align: format.AlignLeft, MaxWidth: 60})
	for _, rec := range recs {
		t.Row(rec.PathID, format.Truncate(rec.Name, 32), strings.Join(rec.Services, " → "),
			rec.Priority, fmt.Sprintf("%.2f", rec.Severity), fmt.Sprintf("%.2f", rec.ErrorRate*100))
	}
	fmt.Fprintln(cmd.OutOrStdout(), t.String())
	return nil
}
