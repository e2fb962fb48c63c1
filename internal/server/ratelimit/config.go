package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// EndpointConfig limits one route. A Path ending in "/" matches every path
// below it.
type EndpointConfig struct {
	Path   string
	Method string
	Limit  int // requests per Window, 0 means unlimited
	Window time.Duration
	Burst  int // defaults to Limit
}

// rate returns the steady refill rate.
func (c EndpointConfig) rate() rate.Limit {
	if c.Window <= 0 {
		return rate.Inf
	}
	return rate.Limit(float64(c.Limit) / c.Window.Seconds())
}

func (c EndpointConfig) burst() int {
	if c.Burst > 0 {
		return c.Burst
	}
	return max(c.Limit, 1)
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	Default         EndpointConfig
	CleanupInterval time.Duration
	IdleTimeout     time.Duration
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	EndpointConfigs []EndpointConfig
}

// LoadConfig builds a configuration with a default of perSecond requests
// per second and the given burst. RATE_LIMIT_ENABLED, RATE_LIMIT_WHITELIST
// and RATE_LIMIT_BLACKLIST are read from the environment.
func LoadConfig(perSecond float64, burst int) *Config {
	cfg := DefaultConfig()
	if perSecond > 0 {
		cfg.Default = EndpointConfig{Limit: int(perSecond * 60), Window: time.Minute, Burst: burst}
	}
	if v, err := strconv.ParseBool(os.Getenv("RATE_LIMIT_ENABLED")); err == nil {
		cfg.Enabled = v
	}
	cfg.Whitelist = parseIPList(os.Getenv("RATE_LIMIT_WHITELIST"))
	cfg.Blacklist = parseIPList(os.Getenv("RATE_LIMIT_BLACKLIST"))
	return cfg
}

// DefaultConfig returns an enabled configuration allowing 300 requests a minute.
func DefaultConfig() *Config {
	return &Config{
		Enabled:         true,
		Default:         EndpointConfig{Limit: 300, Window: time.Minute, Burst: 10},
		CleanupInterval: 5 * time.Minute,
		IdleTimeout:     time.Hour,
		Whitelist:       map[string]bool{},
		Blacklist:       map[string]bool{},
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs limits the routes that start an analysis.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		{Path: "/health", Method: "GET", Limit: 0},
		{Path: "/sessions/", Method: "POST", Limit: 30, Window: time.Hour, Burst: 3},
		{Path: "/batch", Method: "POST", Limit: 10, Window: time.Hour, Burst: 2},
	}
}

// MatchEndpoint returns the configuration for path and method, or nil.
// Exact paths win over prefixes.
func MatchEndpoint(path, method string, configs []EndpointConfig) *EndpointConfig {
	for i := range configs {
		if configs[i].Method == method && configs[i].Path == path {
			return &configs[i]
		}
	}
	for i := range configs {
		c := &configs[i]
		if c.Method == method && strings.HasSuffix(c.Path, "/") && strings.HasPrefix(path, c.Path) {
			return c
		}
	}
	return nil
}

func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
