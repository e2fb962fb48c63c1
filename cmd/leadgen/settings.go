package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/leadgen/internal/config"
	"github.com/jonathan/leadgen/internal/engine"
	"github.com/jonathan/leadgen/internal/export"
	"github.com/jonathan/leadgen/internal/fetch"
	"github.com/jonathan/leadgen/internal/llm"
	"github.com/jonathan/leadgen/internal/observability"
	"github.com/jonathan/leadgen/internal/research"
)

// resolveConfig loads the config file, applies flags that were explicitly
// set, fills secrets from the environment and then defaults. The override
// callback applies command-specific flags.
func resolveConfig(cmd *cobra.Command, override func(cfg *config.Config)) (config.Config, error) {
	var cfg config.Config
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		if err := loaded.Validate(); err != nil {
			return cfg, err
		}
		cfg = *loaded
	}

	flags := cmd.Flags()
	if flags.Changed("verbose") {
		cfg.Verbose = verbose
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if flags.Changed("profiles") {
		cfg.ProfilesDir = profilesDir
		cfg.Engine = config.EngineOffline
	}
	if flags.Changed("engine") {
		cfg.Engine = engineName
	}
	if override != nil {
		override(&cfg)
	}

	cfg.ApplyEnv()
	cfg = cfg.MergeWithDefaults(config.Defaults())
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	observability.SetupLogger(cmd.ErrOrStderr(), cfg.LogLevel, cfg.Verbose)
	if configPath != "" && cfg.Verbose {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Loaded config from: %s\n", configPath)
	}
	return cfg, nil
}

// buildEngine creates the engine selected by cfg.
func buildEngine(ctx context.Context, cfg config.Config) (engine.Engine, error) {
	if cfg.Engine == config.EngineOffline {
		if cfg.ProfilesDir == "" {
			return nil, fmt.Errorf("the offline engine requires --profiles or %s", config.EnvProfilesDir)
		}
		return engine.NewOffline(cfg.ProfilesDir)
	}

	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%s environment variable or api_key config is required", config.EnvGeminiAPIKey)
	}
	if cfg.SearchAPIKey == "" || cfg.SearchCX == "" {
		return nil, fmt.Errorf("%s and %s environment variables are required", config.EnvSearchAPIKey, config.EnvSearchCX)
	}

	llmCfg := llm.DefaultConfig()
	if cfg.Model != "" {
		llmCfg = llmCfg.WithModel(llm.TierStandard, cfg.Model)
	}
	client, err := llm.NewGeminiClient(ctx, llmCfg, cfg.APIKey)
	if err != nil {
		return nil, err
	}
	searcher, err := research.NewGoogleSearcher(ctx, cfg.SearchAPIKey, cfg.SearchCX)
	if err != nil {
		_ = client.Close()
		return nil, err
	}

	fetcherCfg := fetch.DefaultCachedFetcherConfig()
	fetcherCfg.UseBrowser = cfg.UseBrowser

	eng, err := research.New(research.Options{
		Searcher:     searcher,
		Fetcher:      fetch.NewCachedFetcher(fetcherCfg),
		LLM:          client,
		CacheSize:    cfg.CacheSize,
		MaxSitePages: cfg.MaxSitePages,
	})
	if err != nil {
		_ = client.Close()
		return nil, err
	}
	return eng, nil
}

// closeEngine releases engines that hold clients.
// localFilename makes name safe to use as a single path element.
func localFilename(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', 0:
			return '_'
		}
		return r
	}, name)
}

func closeEngine(eng engine.Engine) {
	if c, ok := eng.(interface{ Close() error }); ok {
		_ = c.Close()
	}
}

// writeArtifact saves a into dir and returns its path. Path separators in the
// suggested filename are replaced so the file always lands directly in dir.
func writeArtifact(dir string, a *export.Artifact) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(dir, localFilename(a.Filename))
	if err := os.WriteFile(path, a.Data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
