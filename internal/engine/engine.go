// Package engine defines the analysis-engine contract consumed by the session
// orchestrator and exporter, plus the pieces every engine shares: retry
// settings, report rendering and an offline fixture engine.
package engine

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/jonathan/leadgen/internal/types"
)

// ReportFormat selects the prose report layout.
type ReportFormat string

// Report formats
const (
	ReportMarkdown ReportFormat = "markdown"
	ReportText     ReportFormat = "text"
)

// Retry and delay bounds accepted by engines.
const (
	MinRetries     = 1
	MaxRetries     = 5
	DefaultRetries = 3
	MinDelay       = 0.5
	MaxDelay       = 5.0
)

// DelayRange is the pause window, in seconds, between an engine's own requests.
type DelayRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// DefaultDelayRange is the pause window used when none is configured.
var DefaultDelayRange = DelayRange{Min: 1.0, Max: 3.0}

// Valid reports whether the range is ordered and within [0.5, 5.0].
func (r DelayRange) Valid() bool {
	return r.Min >= MinDelay && r.Max <= MaxDelay && r.Min <= r.Max
}

// WithDefaults fills each zero bound from def. A defaulted bound that would
// invert the range follows the bound that was given.
func (r DelayRange) WithDefaults(def DelayRange) DelayRange {
	switch {
	case r.Min == 0 && r.Max == 0:
		return def
	case r.Min == 0:
		r.Min = min(def.Min, r.Max)
	case r.Max == 0:
		r.Max = max(def.Max, r.Min)
	}
	return r
}

func (r DelayRange) String() string {
	return fmt.Sprintf("%.1fs-%.1fs", r.Min, r.Max)
}

// Engine produces profiles and prose reports for companies.
//
// ExtractCompanyProfile is all-or-nothing: it returns a complete profile or an
// error. The retry count and delay range are read by the engine on its next call.
type Engine interface {
	ExtractCompanyProfile(ctx context.Context, company string) (*types.Profile, error)
	GenerateLeadReport(ctx context.Context, company string, format ReportFormat) (string, error)
	SetMaxRetries(n int)
	SetDelayRange(r DelayRange)
}

// Settings is the mutable configuration surface shared by engines.
type Settings struct {
	mu         sync.RWMutex
	maxRetries int
	delay      DelayRange
}

// SetMaxRetries stores the retry count. Values outside [1,5] are clamped.
func (s *Settings) SetMaxRetries(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.maxRetries = min(max(n, MinRetries), MaxRetries)
}

// SetDelayRange stores the pause window. Invalid ranges are ignored.
func (s *Settings) SetDelayRange(r DelayRange) {
	if !r.Valid() {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delay = r
}

// MaxRetries returns the configured retry count, or DefaultRetries.
func (s *Settings) MaxRetries() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.maxRetries == 0 {
		return DefaultRetries
	}
	return s.maxRetries
}

// DelayRange returns the configured pause window, or DefaultDelayRange.
func (s *Settings) DelayRange() DelayRange {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.delay == (DelayRange{}) {
		return DefaultDelayRange
	}
	return s.delay
}

// Slug turns a company name into a stable lookup key.
func Slug(company string) string {
	var sb strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(company)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			sb.WriteRune(r)
			dash = false
		case !dash && sb.Len() > 0:
			sb.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(sb.String(), "-")
}
