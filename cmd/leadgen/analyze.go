package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/leadgen/internal/config"
	"github.com/jonathan/leadgen/internal/export"
	"github.com/jonathan/leadgen/internal/metrics"
	"github.com/jonathan/leadgen/internal/observability"
	"github.com/jonathan/leadgen/internal/session"
)

var analyzeCommand = &cobra.Command{
	Use:   "analyze <company>",
	Short: "Analyze a company and print its investment dashboard",
	Long: `Researches the company, extracts its investment profile and prints the
overview, investment, financial, growth and team sections.

With --export the profile is also written to --out as json, markdown, text,
html or pdf.`,
	RunE: runAnalyze,
}

var (
	analyzeMaxRetries int
	analyzeDelayMin   float64
	analyzeDelayMax   float64
	analyzeExport     string
	analyzeOut        string
)

func init() {
	addRunFlags(analyzeCommand, &analyzeMaxRetries, &analyzeDelayMin, &analyzeDelayMax)
	analyzeCommand.Flags().StringVarP(&analyzeExport, "export", "e", "", "Also export the profile: json, markdown, text, html or pdf")
	analyzeCommand.Flags().StringVarP(&analyzeOut, "out", "o", "", "Output directory for exports")

	rootCmd.AddCommand(analyzeCommand)
}

// addRunFlags registers the retry and delay flags shared by analysis commands.
func addRunFlags(cmd *cobra.Command, retries *int, delayMin, delayMax *float64) {
	cmd.Flags().IntVar(retries, "max-retries", 0, "Attempts per request (1-5, default 3)")
	cmd.Flags().Float64Var(delayMin, "delay-min", 0, "Minimum pause between requests in seconds (0.5-5.0, default 1.0)")
	cmd.Flags().Float64Var(delayMax, "delay-max", 0, "Maximum pause between requests in seconds (0.5-5.0, default 3.0)")
}

// runOverrides applies the shared run flags that were explicitly set.
func runOverrides(cmd *cobra.Command, cfg *config.Config, retries int, delayMin, delayMax float64) {
	if cmd.Flags().Changed("max-retries") {
		cfg.MaxRetries = retries
	}
	if cmd.Flags().Changed("delay-min") {
		cfg.DelayMin = delayMin
	}
	if cmd.Flags().Changed("delay-max") {
		cfg.DelayMax = delayMax
	}
}

// companyArg joins the positional arguments, falling back to the config.
func companyArg(args []string, cfg config.Config) string {
	if company := strings.TrimSpace(strings.Join(args, " ")); company != "" {
		return company
	}
	return cfg.Company
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	exportRequested := cmd.Flags().Changed("export")
	cfg, err := resolveConfig(cmd, func(cfg *config.Config) {
		runOverrides(cmd, cfg, analyzeMaxRetries, analyzeDelayMin, analyzeDelayMax)
		exportRequested = exportRequested || cfg.ExportFormat != ""
		if cmd.Flags().Changed("export") {
			cfg.ExportFormat = analyzeExport
		}
		if cmd.Flags().Changed("out") {
			cfg.OutputDir = analyzeOut
		}
	})
	if err != nil {
		return err
	}

	var format export.Format
	if exportRequested {
		if format, err = export.ParseFormat(cfg.ExportFormat); err != nil {
			return err
		}
	}

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	eng, err := buildEngine(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeEngine(eng)

	sess := session.New(eng)
	req := session.RunRequest{
		Company:    companyArg(args, cfg),
		MaxRetries: cfg.MaxRetries,
		DelayMin:   cfg.DelayMin,
		DelayMax:   cfg.DelayMax,
		OnProgress: progressPrinter(cmd, cfg.Verbose),
	}

	_, _ = fmt.Fprintf(out, "Analyzing %s (max retries %d, delay %s)\n", req.Company, req.MaxRetries, req.DelayRange())
	result, err := sess.Run(ctx, req)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	observability.NewPrinter(out).PrintDashboard(result.Company, metrics.BuildDashboard(result.Profile))

	if !exportRequested {
		return nil
	}
	artifact, err := sess.Export(ctx, format)
	if err != nil {
		return err
	}
	path, err := writeArtifact(cfg.OutputDir, artifact)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out, "Exported %s\n", path)
	return nil
}

// progressPrinter prints a line whenever the progress label changes. Every
// step is printed when verbose.
func progressPrinter(cmd *cobra.Command, verbose bool) session.ProgressCallback {
	out := cmd.ErrOrStderr()
	last := ""
	return func(ev session.ProgressEvent) {
		if ev.Label == last && !verbose {
			return
		}
		last = ev.Label
		_, _ = fmt.Fprintf(out, "[%3d%%] %s\n", ev.Step*100/ev.Total, ev.Label)
	}
}
