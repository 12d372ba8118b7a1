package autoblogger

// RateLimits defines rate limiting parameters for a model.
// Zero values mean the dimension is unlimited.
type RateLimits struct {
	TokensPerMinute   int
	RequestsPerMinute int
	TokensPerDay      int
}

// Pricing defines cost information for a model.
type Pricing struct {
	InputTokensPerMillion  float64
	OutputTokensPerMillion float64
}

// ModelInfo contains complete metadata for a model.
type ModelInfo struct {
	// Identity
	Name         string   // Public model name (e.g., "gemini-flash")
	Provider     Provider // Which provider serves this model
	APIModelName string   // Actual API name (e.g., "gemini-2.5-flash")

	// Constraints
	ContextLength   int
	MaxOutputTokens int

	// Rate Limits
	RateLimits RateLimits

	// Pricing
	Pricing Pricing
}
