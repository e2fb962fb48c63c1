// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Environment variables read by ApplyEnv.
const (
	EnvGeminiAPIKey = "GEMINI_API_KEY"
	EnvSearchAPIKey = "GOOGLE_SEARCH_API_KEY"
	EnvSearchCX     = "GOOGLE_SEARCH_CX"
	EnvProfilesDir  = "LEADGEN_PROFILES_DIR"
)

// Engine names
const (
	EngineLive    = "live"
	EngineOffline = "offline"
)

// Config represents the CLI configuration that can be loaded from a JSON or TOML file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Run
	Company    string  `json:"company,omitempty" toml:"company"`
	MaxRetries int     `json:"max_retries,omitempty" toml:"max_retries"`
	DelayMin   float64 `json:"delay_min,omitempty" toml:"delay_min"` // Seconds
	DelayMax   float64 `json:"delay_max,omitempty" toml:"delay_max"` // Seconds

	// Output
	ExportFormat string `json:"export_format,omitempty" toml:"export_format"`
	OutputDir    string `json:"output_dir,omitempty" toml:"output_dir"`

	// Engine
	Engine       string `json:"engine,omitempty" toml:"engine"`             // "live" or "offline"
	ProfilesDir  string `json:"profiles_dir,omitempty" toml:"profiles_dir"` // Fixture directory for the offline engine
	APIKey       string `json:"api_key,omitempty" toml:"api_key"`           // Gemini API key
	SearchAPIKey string `json:"search_api_key,omitempty" toml:"search_api_key"`
	SearchCX     string `json:"search_cx,omitempty" toml:"search_cx"`
	UseBrowser   bool   `json:"use_browser,omitempty" toml:"use_browser"` // Headless fallback for script-rendered pages
	CacheSize    int    `json:"cache_size,omitempty" toml:"cache_size"`
	Model        string `json:"model,omitempty" toml:"model"`                   // Gemini model for extraction
	MaxSitePages int    `json:"max_site_pages,omitempty" toml:"max_site_pages"` // Company-site links followed per run

	// Logging
	Verbose  bool   `json:"verbose,omitempty" toml:"verbose"`
	LogLevel string `json:"log_level,omitempty" toml:"log_level"`

	// Server
	Port        int     `json:"port,omitempty" toml:"port"`
	MaxSessions int     `json:"max_sessions,omitempty" toml:"max_sessions"`
	RateLimit   float64 `json:"rate_limit,omitempty" toml:"rate_limit"` // Requests per second per client
	RateBurst   int     `json:"rate_burst,omitempty" toml:"rate_burst"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		MaxRetries:   3,
		DelayMin:     1.0,
		DelayMax:     3.0,
		ExportFormat: "json",
		OutputDir:    ".",
		Engine:       EngineLive,
		CacheSize:    64,
		MaxSitePages: 3,
		LogLevel:     "info",
		Port:         8080,
		MaxSessions:  256,
		RateLimit:    5,
		RateBurst:    10,
	}
}

// LoadConfig loads configuration from a JSON or TOML file, chosen by extension.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config TOML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// ApplyEnv fills secrets and paths that are still empty from the environment.
func (c *Config) ApplyEnv() {
	if c.APIKey == "" {
		c.APIKey = os.Getenv(EnvGeminiAPIKey)
	}
	if c.SearchAPIKey == "" {
		c.SearchAPIKey = os.Getenv(EnvSearchAPIKey)
	}
	if c.SearchCX == "" {
		c.SearchCX = os.Getenv(EnvSearchCX)
	}
	if c.ProfilesDir == "" {
		c.ProfilesDir = os.Getenv(EnvProfilesDir)
	}
}

// Validate checks that the configuration has valid values.
// Zero values are accepted since they are filled by MergeWithDefaults.
func (c *Config) Validate() error {
	if c.MaxRetries != 0 && (c.MaxRetries < 1 || c.MaxRetries > 5) {
		return fmt.Errorf("config error: 'max_retries' must be between 1 and 5")
	}
	for name, v := range map[string]float64{"delay_min": c.DelayMin, "delay_max": c.DelayMax} {
		if v != 0 && (v < 0.5 || v > 5.0) {
			return fmt.Errorf("config error: '%s' must be between 0.5 and 5.0", name)
		}
	}
	if c.DelayMin != 0 && c.DelayMax != 0 && c.DelayMin > c.DelayMax {
		return fmt.Errorf("config error: 'delay_min' must not exceed 'delay_max'")
	}

	switch c.Engine {
	case "", EngineLive, EngineOffline:
	default:
		return fmt.Errorf("config error: 'engine' must be %q or %q", EngineLive, EngineOffline)
	}
	if c.Engine == EngineOffline && c.ProfilesDir != "" {
		if _, err := os.Stat(c.ProfilesDir); os.IsNotExist(err) {
			return fmt.Errorf("config error: profiles directory not found: %s", c.ProfilesDir)
		}
	}

	if c.CacheSize < 0 {
		return fmt.Errorf("config error: 'cache_size' must be non-negative")
	}
	if c.MaxSitePages < 0 {
		return fmt.Errorf("config error: 'max_site_pages' must be non-negative")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.MaxSessions < 0 {
		return fmt.Errorf("config error: 'max_sessions' must be non-negative")
	}
	if c.RateLimit < 0 || c.RateBurst < 0 {
		return fmt.Errorf("config error: 'rate_limit' and 'rate_burst' must be non-negative")
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Company == "" {
		result.Company = defaults.Company
	}
	if result.ExportFormat == "" {
		result.ExportFormat = defaults.ExportFormat
	}
	if result.OutputDir == "" {
		result.OutputDir = defaults.OutputDir
	}
	if result.Engine == "" {
		result.Engine = defaults.Engine
	}
	if result.ProfilesDir == "" {
		result.ProfilesDir = defaults.ProfilesDir
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.SearchAPIKey == "" {
		result.SearchAPIKey = defaults.SearchAPIKey
	}
	if result.SearchCX == "" {
		result.SearchCX = defaults.SearchCX
	}
	if result.Model == "" {
		result.Model = defaults.Model
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}

	// Numeric fields: use default if zero
	if result.MaxRetries == 0 {
		result.MaxRetries = defaults.MaxRetries
	}
	// Delay bounds default independently; a defaulted bound never inverts the range.
	switch {
	case result.DelayMin == 0 && result.DelayMax == 0:
		result.DelayMin, result.DelayMax = defaults.DelayMin, defaults.DelayMax
	case result.DelayMin == 0:
		result.DelayMin = min(defaults.DelayMin, result.DelayMax)
	case result.DelayMax == 0:
		result.DelayMax = max(defaults.DelayMax, result.DelayMin)
	}
	if result.CacheSize == 0 {
		result.CacheSize = defaults.CacheSize
	}
	if result.MaxSitePages == 0 {
		result.MaxSitePages = defaults.MaxSitePages
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.MaxSessions == 0 {
		result.MaxSessions = defaults.MaxSessions
	}
	if result.RateLimit == 0 {
		result.RateLimit = defaults.RateLimit
	}
	if result.RateBurst == 0 {
		result.RateBurst = defaults.RateBurst
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
