package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"critpath/internal/config"
	"critpath/internal/discovery"
	"critpath/internal/format"
	"critpath/internal/logging"
	"critpath/internal/store"
	"critpath/internal/topology"
)

var (
	flagSnapshots []string
	flagFetch     bool
	flagStart     string
	flagEnd       string
	flagOutput    string
	flagSave      bool
	flagDB        string
)

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Discover critical paths from topology snapshots",
	Long: `Runs one discovery per snapshot. Snapshots come from files (--snapshot,
repeatable) or from the configured collector (--fetch with --start/--end).
Multiple snapshots are discovered concurrently; each discovery is independent.`,
	RunE: runDiscover,
}

func init() {
	discoverCmd.Flags().StringArrayVar(&flagSnapshots, "snapshot", nil, "Topology snapshot file (JSON or YAML, repeatable)")
	discoverCmd.Flags().BoolVar(&flagFetch, "fetch", false, "Fetch the snapshot from the configured collector")
	discoverCmd.Flags().StringVar(&flagStart, "start", "", "Window start (RFC3339)")
	discoverCmd.Flags().StringVar(&flagEnd, "end", "", "Window end (RFC3339)")
	discoverCmd.Flags().StringVarP(&flagOutput, "output", "o", "table", "Output format (table, markdown, json)")
	discoverCmd.Flags().BoolVar(&flagSave, "save", false, "Persist results to the store")
	discoverCmd.Flags().StringVar(&flagDB, "db", "", "Store DB path (default from config, then "+store.DefaultDBPath+")")
}

type discoverResult struct {
	source string
	window topology.TimeRange
	paths  []discovery.CriticalPath
}

func runDiscover(cmd *cobra.Command, _ []string) error {
	if len(flagSnapshots) == 0 && !flagFetch {
		return fmt.Errorf("nothing to discover: pass --snapshot or --fetch")
	}

	orch, err := buildOrchestrator(cfg)
	if err != nil {
		return err
	}

	snapshots, err := collectSnapshots(cmd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	results := make([]discoverResult, len(snapshots))
	g, gctx := errgroup.WithContext(ctx)
	for i, snap := range snapshots {
		g.Go(func() error {
			paths, err := orch.DiscoverCriticalPaths(gctx, snap.snapshot.Services, snap.snapshot.TimeRange)
			if err != nil {
				return fmt.Errorf("%s: %w", snap.source, err)
			}
			results[i] = discoverResult{source: snap.source, window: snap.snapshot.TimeRange, paths: paths}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if flagSave {
		if err := saveResults(results); err != nil {
			return err
		}
	}

	return printResults(cmd, results)
}

type namedSnapshot struct {
	source   string
	snapshot *topology.Snapshot
}

func collectSnapshots(cmd *cobra.Command) ([]namedSnapshot, error) {
	var snapshots []namedSnapshot
	for _, path := range flagSnapshots {
		snap, err := topology.LoadSnapshot(path)
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, namedSnapshot{source: path, snapshot: snap})
	}

	if flagFetch {
		if cfg.Collector.Endpoint == "" {
			return nil, fmt.Errorf("--fetch requires a collector endpoint in the config")
		}
		start, end, ok, err := parseWindow(flagStart, flagEnd)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("--fetch requires --start and --end")
		}
		key, err := config.ReadAPIKey(cfg.Collector.APIKeyPath)
		if err != nil {
			return nil, err
		}
		client, err := topology.NewClient(cfg.Collector.Endpoint, key,
			topology.WithLogger(logging.New("collector")))
		if err != nil {
			return nil, err
		}
		snap, err := client.FetchSnapshot(cmd.Context(), topology.TimeRange{StartTime: start, EndTime: end})
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, namedSnapshot{source: cfg.Collector.Endpoint, snapshot: snap})
	}
	return snapshots, nil
}

func saveResults(results []discoverResult) error {
	st, err := store.Open(dbPath())
	if err != nil {
		return err
	}
	defer st.Close()

	for _, res := range results {
		discoveredBy := ""
		if len(res.paths) > 0 {
			discoveredBy = res.paths[0].Metadata.DiscoveredBy
		}
		runID, err := st.CreateRun(&store.Run{
			StartTime:    res.window.StartTime.UTC().Format(time.RFC3339),
			EndTime:      res.window.EndTime.UTC().Format(time.RFC3339),
			DiscoveredBy: discoveredBy,
			Source:       res.source,
			PathCount:    len(res.paths),
		})
		if err != nil {
			return err
		}
		for _, p := range res.paths {
			if _, err := st.SavePath(store.RecordFromPath(runID, p)); err != nil {
				return err
			}
		}
		logging.New("store").Info("saved discovery run", "run_id", runID, "paths", len(res.paths))
	}
	return nil
}

func printResults(cmd *cobra.Command, results []discoverResult) error {
	switch flagOutput {
	case "json":
		all := make(map[string][]discovery.CriticalPath, len(results))
		for _, res := range results {
			all[res.source] = res.paths
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(all)
	case "table", "markdown":
		mode := format.ASCII
		if flagOutput == "markdown" {
			mode = format.Markdown
		}
		for _, res := range results {
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%d paths)\n%s\n",
				res.source, len(res.paths), format.PathTable(mode, res.paths))
		}
		return nil
	default:
		return fmt.Errorf("unknown output format %q", flagOutput)
	}
}

func dbPath() string {
	if flagDB != "" {
		return flagDB
	}
	if cfg != nil && cfg.Store.Path != "" {
		return cfg.Store.Path
	}
	return store.DefaultDBPath
}
