package gemini

import "github.com/mhpenta/autoblogger"

// GeminiFlashInfo is the model info for Gemini 2.5 Flash, the default
// model for article generation. Limits reflect the free tier; paid tiers
// should override via the manager's registries.
var GeminiFlashInfo = autoblogger.ModelInfo{
	Name:         "gemini-flash",
	Provider:     autoblogger.ProviderGeminiAPI,
	APIModelName: APIModelGeminiFlash,

	ContextLength:   1048576, // 1M tokens
	MaxOutputTokens: 65536,

	RateLimits: autoblogger.RateLimits{
		TokensPerMinute:   250000,
		RequestsPerMinute: 10,
		TokensPerDay:      6000000,
	},

	// Pricing as of mid-2025 for prompts ≤200K tokens.
	Pricing: autoblogger.Pricing{
		InputTokensPerMillion:  0.30,
		OutputTokensPerMillion: 2.50,
	},
}

// GeminiProInfo is the model info for Gemini 2.5 Pro, for longer or more
// demanding articles.
var GeminiProInfo = autoblogger.ModelInfo{
	Name:         "gemini-pro",
	Provider:     autoblogger.ProviderGeminiAPI,
	APIModelName: APIModelGeminiPro,

	ContextLength:   1048576, // 1M tokens
	MaxOutputTokens: 65536,

	RateLimits: autoblogger.RateLimits{
		TokensPerMinute:   250000,
		RequestsPerMinute: 5,
		TokensPerDay:      3000000,
	},

	Pricing: autoblogger.Pricing{
		InputTokensPerMillion:  1.25,
		OutputTokensPerMillion: 10.00,
	},
}
