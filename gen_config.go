package autoblogger

import "time"

// Model represents a specific text generation model.
type Model string

// String returns the model identifier.
func (m Model) String() string {
	return string(m)
}

// GenerateConfig holds per-call options for content generation.
type GenerateConfig struct {
	// Model to use for generation (if empty, uses manager's default)
	Model Model

	// Temperature controls randomness (0.0-2.0)
	Temperature *float32

	// MaxOutputTokens caps the response length (0 = provider default)
	MaxOutputTokens int

	// Metadata to attach to requests (for logging/tracking)
	Metadata map[string]string

	// WaitOnRateLimit, if true, causes the Manager to wait for bucket
	// capacity when rate limited locally. If false, a RateLimitError is
	// returned immediately (the retry policy may still recover it).
	WaitOnRateLimit bool

	// MaxWaitDuration is the maximum time to wait when WaitOnRateLimit is
	// true. Zero means no limit.
	MaxWaitDuration time.Duration
}

// WithModel returns a copy of the config with the specified model.
func (c *GenerateConfig) WithModel(model Model) *GenerateConfig {
	if c == nil {
		return &GenerateConfig{Model: model}
	}
	out := *c
	out.Model = model
	return &out
}

// DefaultGenerateConfig returns a GenerateConfig with sensible defaults.
func DefaultGenerateConfig() *GenerateConfig {
	temp := float32(0.9)
	return &GenerateConfig{
		Model:       ModelDefault,
		Temperature: &temp,
	}
}
