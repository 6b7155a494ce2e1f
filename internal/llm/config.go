// Package llm wraps the Gemini API behind a small client abstraction so
// the scoring engine does not depend on a concrete provider.
package llm

// ModelTier represents the capability level requested for a call.
type ModelTier string

const (
	// TierStandard is for structured scoring output.
	TierStandard ModelTier = "standard"
	// TierAdvanced is for detailed analysis and bullet rewriting.
	TierAdvanced ModelTier = "advanced"
)

// Config holds the model configuration.
type Config struct {
	Models map[ModelTier]string
}

// DefaultConfig returns the stock Gemini model mapping.
func DefaultConfig() *Config {
	return &Config{
		Models: map[ModelTier]string{
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
	}
}

// GetModel returns the model name for a tier, falling back to standard.
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	return c.Models[TierStandard]
}
