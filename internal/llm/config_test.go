package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, ProviderGemini, config.Provider)
	assert.Equal(t, "gemini-2.5-flash-lite", config.GetModel(TierLite))
	assert.Equal(t, "gemini-2.5-flash", config.GetModel(TierStandard))
	assert.Equal(t, "gemini-2.5-pro", config.GetModel(TierAdvanced))
	assert.Equal(t, DefaultTemperature, config.Temperature)
}

func TestGetModel_Fallback(t *testing.T) {
	config := &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite: "fallback-model",
		},
	}

	assert.Equal(t, "fallback-model", config.GetModel(TierAdvanced))
	assert.Equal(t, "fallback-model", config.GetModel("unknown"))
}

func TestGetModel_EmptyConfig(t *testing.T) {
	config := &Config{Provider: ProviderGemini, Models: map[ModelTier]string{}}
	assert.Empty(t, config.GetModel(TierStandard))
}

func TestWithModel(t *testing.T) {
	base := DefaultConfig()
	custom := base.WithModel(TierStandard, "gemini-custom")

	assert.Equal(t, "gemini-custom", custom.GetModel(TierStandard))
	assert.Equal(t, "gemini-2.5-flash", base.GetModel(TierStandard), "original must not change")
	assert.Equal(t, base.Temperature, custom.Temperature)
}
