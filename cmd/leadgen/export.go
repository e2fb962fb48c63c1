package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/leadgen/internal/config"
	"github.com/jonathan/leadgen/internal/export"
	"github.com/jonathan/leadgen/internal/session"
)

var exportCommand = &cobra.Command{
	Use:   "export <company>",
	Short: "Analyze a company and write only the export file",
	Long: `Runs the same analysis as "analyze" without printing the dashboard and writes
"<company>_analysis.<ext>" to --out.`,
	RunE: runExport,
}

var (
	exportMaxRetries int
	exportDelayMin   float64
	exportDelayMax   float64
	exportFormat     string
	exportOut        string
)

func init() {
	addRunFlags(exportCommand, &exportMaxRetries, &exportDelayMin, &exportDelayMax)
	exportCommand.Flags().StringVarP(&exportFormat, "format", "f", "", "Export format: json, markdown, text, html or pdf (default json)")
	exportCommand.Flags().StringVarP(&exportOut, "out", "o", "", "Output directory (default current directory)")

	rootCmd.AddCommand(exportCommand)
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, func(cfg *config.Config) {
		runOverrides(cmd, cfg, exportMaxRetries, exportDelayMin, exportDelayMax)
		if cmd.Flags().Changed("format") {
			cfg.ExportFormat = exportFormat
		}
		if cmd.Flags().Changed("out") {
			cfg.OutputDir = exportOut
		}
	})
	if err != nil {
		return err
	}

	format, err := export.ParseFormat(cfg.ExportFormat)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	eng, err := buildEngine(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeEngine(eng)

	sess := session.New(eng)
	if _, err := sess.Run(ctx, session.RunRequest{
		Company:    companyArg(args, cfg),
		MaxRetries: cfg.MaxRetries,
		DelayMin:   cfg.DelayMin,
		DelayMax:   cfg.DelayMax,
	}); err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	artifact, err := sess.Export(ctx, format)
	if err != nil {
		return err
	}
	path, err := writeArtifact(cfg.OutputDir, artifact)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}
