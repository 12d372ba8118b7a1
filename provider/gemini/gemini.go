// Package gemini provides a TextGenerator implementation using Google's
// Gemini API.
//
// This provider uses the Gemini API backend via the official Go SDK:
// https://github.com/googleapis/go-genai
//
// For Vertex AI or other Google Cloud backends, a separate provider
// implementation could be created using the same SDK with a different
// backend configuration.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"time"

	"google.golang.org/genai"

	"github.com/mhpenta/autoblogger"
)

// Model name constants - the actual API model names.
const (
	// APIModelGeminiFlash is the actual API name for Gemini 2.5 Flash.
	APIModelGeminiFlash = "gemini-2.5-flash"

	// APIModelGeminiPro is the actual API name for Gemini 2.5 Pro.
	APIModelGeminiPro = "gemini-2.5-pro"
)

// Generator implements TextGenerator using Google's Gemini API.
type Generator struct {
	client *genai.Client
}

// Ensure Generator implements the interface.
var _ autoblogger.TextGenerator = (*Generator)(nil)

// New creates a new Generator from a ProviderConfig.
func New(ctx context.Context, config *autoblogger.ProviderConfig) (*Generator, error) {
	if config == nil {
		config = &autoblogger.ProviderConfig{}
	}

	clientCfg := &genai.ClientConfig{
		Backend: genai.BackendGeminiAPI,
	}

	if config.APIKey != "" {
		clientCfg.APIKey = config.APIKey
	}
	// If APIKey is empty, the SDK will try GOOGLE_API_KEY or GEMINI_API_KEY env vars

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Generator{
		client: client,
	}, nil
}

// NewWithAPIKey creates a generator with an API key for Gemini API.
func NewWithAPIKey(ctx context.Context, apiKey string) (*Generator, error) {
	return New(ctx, &autoblogger.ProviderConfig{
		Provider: autoblogger.ProviderGeminiAPI,
		APIKey:   apiKey,
	})
}

// Generate produces text from a prompt.
func (g *Generator) Generate(ctx context.Context, prompt string, config *autoblogger.GenerateConfig) (*autoblogger.GenerateResult, error) {
	if err := autoblogger.ValidatePrompt(prompt); err != nil {
		return nil, err
	}

	if config == nil {
		config = autoblogger.DefaultGenerateConfig()
	}

	modelName := g.resolveModel(config)

	contents := []*genai.Content{
		{
			Parts: []*genai.Part{
				{Text: prompt},
			},
		},
	}

	genConfig := buildGenerateContentConfig(config)

	result, err := g.client.Models.GenerateContent(ctx, modelName, contents, genConfig)
	if err != nil {
		return nil, wrapAPIError(err, modelName)
	}

	return parseResult(result)
}

// Models returns the model definitions supported by this provider.
// The first model (Gemini Flash) is the default.
func (g *Generator) Models() []autoblogger.ModelInfo {
	return []autoblogger.ModelInfo{
		GeminiFlashInfo,
		GeminiProInfo,
	}
}

// Close releases any resources held by the generator.
func (g *Generator) Close() error {
	// The genai.Client doesn't require explicit closing in the current SDK
	return nil
}

// resolveModel determines which API model name to use.
// Falls back to the first model (default) if none specified.
func (g *Generator) resolveModel(config *autoblogger.GenerateConfig) string {
	if config != nil && config.Model != "" {
		return string(config.Model)
	}
	models := g.Models()
	if len(models) == 0 {
		return APIModelGeminiFlash
	}
	return models[0].APIModelName
}

// buildGenerateContentConfig converts our config to Gemini's GenerateContentConfig format.
func buildGenerateContentConfig(config *autoblogger.GenerateConfig) *genai.GenerateContentConfig {
	genConfig := &genai.GenerateContentConfig{}

	if config.Temperature != nil {
		genConfig.Temperature = genai.Ptr(*config.Temperature)
	}

	if config.MaxOutputTokens > 0 {
		genConfig.MaxOutputTokens = int32(config.MaxOutputTokens)
	}

	return genConfig
}

// parseResult converts a Gemini response to our result type.
func parseResult(result *genai.GenerateContentResponse) (*autoblogger.GenerateResult, error) {
	if result == nil || len(result.Candidates) == 0 {
		return nil, errors.New("empty response from model")
	}

	genResult := &autoblogger.GenerateResult{}

	for _, candidate := range result.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part.Text != "" {
				genResult.Content += part.Text
			}
		}
	}

	if result.UsageMetadata != nil {
		genResult.UsageMetadata = &autoblogger.UsageMetadata{
			PromptTokens:     int(result.UsageMetadata.PromptTokenCount),
			CandidatesTokens: int(result.UsageMetadata.CandidatesTokenCount),
			TotalTokens:      int(result.UsageMetadata.TotalTokenCount),
		}
	}

	return genResult, nil
}

// wrapAPIError normalizes errors from the Gemini API: rate limit responses
// become RateLimitError and retryable server failures become a temporary
// ProviderError; everything else passes through wrapped.
func wrapAPIError(err error, model string) error {
	if err == nil {
		return nil
	}

	var apiErr genai.APIError
	if !errors.As(err, &apiErr) {
		return fmt.Errorf("generation failed: %w", err)
	}

	if apiErr.Code == 429 || apiErr.Status == "RESOURCE_EXHAUSTED" {
		return &autoblogger.RateLimitError{
			RetryAfter: 60 * time.Second, // Default; API doesn't reliably provide Retry-After
			LimitType:  "requests",
			Model:      model,
			Err:        err,
		}
	}

	if apiErr.Code >= 500 || apiErr.Status == "UNAVAILABLE" || apiErr.Status == "DEADLINE_EXCEEDED" {
		return &autoblogger.ProviderError{
			Provider:   string(autoblogger.ProviderGeminiAPI),
			StatusCode: apiErr.Code,
			Temporary:  true,
			Err:        err,
		}
	}

	return &autoblogger.ProviderError{
		Provider:   string(autoblogger.ProviderGeminiAPI),
		StatusCode: apiErr.Code,
		Err:        err,
	}
}
