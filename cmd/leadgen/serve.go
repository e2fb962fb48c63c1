package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/leadgen/internal/config"
	"github.com/jonathan/leadgen/internal/engine"
	"github.com/jonathan/leadgen/internal/server"
)

var (
	servePort        int
	serveMaxSessions int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start an HTTP server that exposes analysis sessions, progress streaming (SSE),
dashboards and exports. Every session owns its own engine.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCmd.Flags().IntVar(&serveMaxSessions, "max-sessions", 0, "Sessions kept before the least recently used is dropped (default 256)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd, func(cfg *config.Config) {
		if cmd.Flags().Changed("port") {
			cfg.Port = servePort
		}
		if cmd.Flags().Changed("max-sessions") {
			cfg.MaxSessions = serveMaxSessions
		}
	})
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	// Fail fast on missing credentials before accepting requests.
	probe, err := buildEngine(ctx, cfg)
	if err != nil {
		return err
	}
	closeEngine(probe)

	srv, err := server.New(server.Config{
		Port:        cfg.Port,
		MaxSessions: cfg.MaxSessions,
		RateLimit:   cfg.RateLimit,
		RateBurst:   cfg.RateBurst,
		NewEngine: func() (engine.Engine, error) {
			return buildEngine(ctx, cfg)
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
