package main

import (
	"context"
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"critpath/internal/logging"
	"critpath/internal/mcp"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

var flagMetricsListen string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server over stdio",
	Long: `Starts an MCP server over stdin/stdout exposing the discovery tools.
The server monitors for parent process death: when the MCP client disconnects,
the server self-terminates to prevent zombie processes.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagMetricsListen, "metrics-listen", "", "Expose Prometheus metrics on this address (e.g. :9090)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	orch, err := buildOrchestrator(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	mcp.WatchParent(ctx, cancel)

	logger := logging.New("mcp")
	if flagMetricsListen != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		go func() {
			err := http.ListenAndServe(flagMetricsListen, mux)
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics listener failed", "error", err)
			}
		}()
		logger.Info("metrics listener started", "addr", flagMetricsListen)
	}

	srv := mcp.NewServer(orch, version)
	logger.Info("starting critpath MCP server over stdio (parent watchdog active)")
	return srv.MCPServer.Run(ctx, &sdkmcp.StdioTransport{})
}
