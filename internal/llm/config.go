// Package llm provides the Gemini client used for company profile extraction
// and helpers for turning model output into valid JSON.
package llm

// ModelTier represents the complexity/capability level of a model
type ModelTier string

const (
	// TierLite is for short classification tasks
	TierLite ModelTier = "lite"
	// TierStandard is for structured extraction
	TierStandard ModelTier = "standard"
	// TierAdvanced is for long multi-source synthesis
	TierAdvanced ModelTier = "advanced"
)

// Provider represents an LLM provider
type Provider string

// ProviderGemini is the Google Gemini provider
const ProviderGemini Provider = "gemini"

// DefaultTemperature keeps extraction output stable across runs.
const DefaultTemperature float32 = 0.1

// Config holds the model configuration
type Config struct {
	Provider    Provider
	Models      map[ModelTier]string
	Temperature float32
}

// DefaultConfig returns the default Gemini configuration
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
		Temperature: DefaultTemperature,
	}
}

// GetModel returns the model name for a given tier
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	// Fallback chain: standard, then lite
	for _, fallback := range []ModelTier{TierStandard, TierLite} {
		if model, ok := c.Models[fallback]; ok {
			return model
		}
	}
	return ""
}

// WithModel returns a copy of the config with model set for tier
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	out := &Config{
		Provider:    c.Provider,
		Models:      make(map[ModelTier]string, len(c.Models)+1),
		Temperature: c.Temperature,
	}
	for k, v := range c.Models {
		out.Models[k] = v
	}
	out.Models[tier] = model
	return out
}
