package llm

// ModelTier represents the capability level of a model.
type ModelTier string

const (
	// TierLite is for simple tasks: classification, short judgements.
	TierLite ModelTier = "lite"
	// TierStandard is for moderate reasoning with structured output.
	TierStandard ModelTier = "standard"
)

// Config holds model selection for a provider.
type Config struct {
	Models map[ModelTier]string
}

// DefaultGeminiConfig returns the default Gemini model tiers. Pair
// evaluation runs on the lite tier; it is a short structured judgement,
// not long-form generation.
func DefaultGeminiConfig() *Config {
	return &Config{
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
		},
	}
}

// Model returns the model name for a tier, falling back across tiers when
// one is not configured.
func (c *Config) Model(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return ""
}
