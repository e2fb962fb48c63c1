// Package main provides the leadgen command-line interface.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	configPath  string
	verbose     bool
	logLevel    string
	engineName  string
	profilesDir string
)

var rootCmd = &cobra.Command{
	Use:   "leadgen",
	Short: "Company investment lead analysis",
	Long: `leadgen researches a company, extracts a structured investment profile and
renders it as a dashboard, a report or an export file.

Configuration can be loaded from a JSON or TOML file using --config. Command-line
flags override config file values.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a config file (.json or .toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print detailed debug information")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().StringVar(&engineName, "engine", "", "Analysis engine: live or offline")
	rootCmd.PersistentFlags().StringVar(&profilesDir, "profiles", "", "Directory of <slug>.json profiles (selects the offline engine)")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
