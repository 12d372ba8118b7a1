package autoblogger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mhpenta/autoblogger/ratelimiter"
	"github.com/mhpenta/autoblogger/retry"
	"github.com/mhpenta/autoblogger/seo"
)

const (
	ModelGeminiFlash Model = "gemini-flash" // Gemini 2.5 Flash
	ModelCanned      Model = "canned"       // Offline template provider

	ModelDefault Model = ModelGeminiFlash
)

// Provider represents a model provider/backend.
type Provider string

const (
	ProviderGeminiAPI Provider = "gemini"
	ProviderCanned    Provider = "canned"
)

// ProviderConfig configures a specific provider.
type ProviderConfig struct {
	// Provider type
	Provider Provider

	// APIKey for authentication
	APIKey string

	// BaseURL for custom endpoints (optional)
	BaseURL string
}

// ModelMapping maps a model identifier to its provider and actual model name.
type ModelMapping struct {
	Provider        Provider
	ActualModelName string
}

// Manager routes article generation to the appropriate provider based on
// the Model in GenerateConfig, enforcing per-model request and token rate
// limits and retrying transient failures.
type Manager struct {
	// Model to provider mapping
	modelMappings map[Model]ModelMapping

	// Provider instances
	providers map[Provider]TextGenerator

	// Default model to use when config.Model is empty
	defaultModel Model

	// Rate limiting: one bucket per model in each registry, request counts
	// in one and estimated tokens in the other.
	requestLimits *ratelimiter.Registry
	tokenLimits   *ratelimiter.Registry

	// Model info (per model)
	modelInfo map[Model]*ModelInfo

	// Retry policy for provider calls
	retryPolicy retry.Policy

	// Publisher for finished articles (optional)
	publisher Publisher

	// SEO analyzer for scoring generated articles (optional)
	seoAnalyzer *seo.Analyzer

	tokenEstimator TokenEstimator

	// Logger for structured logging (optional)
	logger *slog.Logger

	// Titles already generated this process, used to avoid duplicates.
	generatedTitles map[string]bool

	mu sync.RWMutex
}

// Ensure Manager implements the interface.
var _ TextGenerator = (*Manager)(nil)

// New creates a new Manager.
func New() *Manager {
	// The default registry config is valid, so construction cannot fail.
	requests, _ := ratelimiter.NewRegistry(ratelimiter.DefaultConfig())
	tokens, _ := ratelimiter.NewRegistry(ratelimiter.DefaultConfig())

	return &Manager{
		logger:          slog.Default(),
		modelMappings:   make(map[Model]ModelMapping),
		providers:       make(map[Provider]TextGenerator),
		requestLimits:   requests,
		tokenLimits:     tokens,
		modelInfo:       make(map[Model]*ModelInfo),
		retryPolicy:     retry.DefaultPolicy().WithRetryIf(RetryableFailure),
		tokenEstimator:  NewSimpleTokenEstimator(),
		generatedTitles: make(map[string]bool),
		defaultModel:    ModelDefault,
	}
}

// RegisterModel registers a model with full info (including rate limits).
// Buckets sized from the model's published limits are installed in both
// registries; use Registries() to swap in custom limiters.
func (m *Manager) RegisterModel(model Model, mapping ModelMapping, info *ModelInfo) *Manager {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.modelMappings[model] = mapping
	m.modelInfo[model] = info

	if rpm := info.RateLimits.RequestsPerMinute; rpm > 0 {
		// A full minute's worth of requests, refilled once per minute.
		_ = m.requestLimits.Configure(string(model), ratelimiter.Config{
			Capacity:     rpm,
			RefillRate:   float64(rpm),
			RefillPeriod: time.Minute,
		})
	}
	if tpm := info.RateLimits.TokensPerMinute; tpm > 0 {
		_ = m.tokenLimits.Configure(string(model), ratelimiter.Config{
			Capacity:     tpm,
			RefillRate:   float64(tpm),
			RefillPeriod: time.Minute,
		})
	}

	return m
}

// Registries exposes the request and token limiter registries so callers
// can install custom limiters (e.g. a distributed implementation).
func (m *Manager) Registries() (requests, tokens *ratelimiter.Registry) {
	return m.requestLimits, m.tokenLimits
}

// SetDefaultModel sets the default model used when config.Model is empty.
func (m *Manager) SetDefaultModel(model Model) *Manager {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.defaultModel = model
	return m
}

// SetLogger sets a structured logger for the manager.
func (m *Manager) SetLogger(logger *slog.Logger) *Manager {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.logger = logger
	return m
}

// SetPublisher sets the publisher used by Publish.
func (m *Manager) SetPublisher(publisher Publisher) *Manager {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.publisher = publisher
	return m
}

// SetRetryPolicy replaces the retry policy used for provider calls.
func (m *Manager) SetRetryPolicy(policy retry.Policy) *Manager {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.retryPolicy = policy
	return m
}

// SetSEOAnalyzer enables SEO scoring and optimization of generated articles.
func (m *Manager) SetSEOAnalyzer(analyzer *seo.Analyzer) *Manager {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.seoAnalyzer = analyzer
	return m
}

// Generate produces raw text from a prompt, routing to the provider that
// serves the configured model. Most callers want GenerateArticle instead.
func (m *Manager) Generate(ctx context.Context, prompt string, config *GenerateConfig) (*GenerateResult, error) {
	if config == nil {
		config = DefaultGenerateConfig()
	}
	if err := ValidatePrompt(prompt); err != nil {
		return nil, err
	}

	model := m.resolveModel(config)
	start := time.Now()

	m.logger.Debug("starting generation",
		"model", string(model),
		"prompt_length", len(prompt),
	)

	result, err := m.generateWithRetry(ctx, model, prompt, config)
	duration := time.Since(start)

	if err != nil {
		m.logger.Error("generation failed",
			"model", string(model),
			"duration_ms", duration.Milliseconds(),
			"error", err.Error(),
		)
		return nil, err
	}

	logAttrs := []any{
		"model", string(model),
		"duration_ms", duration.Milliseconds(),
		"content_length", len(result.Content),
	}
	if result.UsageMetadata != nil {
		logAttrs = append(logAttrs,
			"prompt_tokens", result.UsageMetadata.PromptTokens,
			"response_tokens", result.UsageMetadata.CandidatesTokens,
			"total_tokens", result.UsageMetadata.TotalTokens,
		)
	}
	m.logger.Info("generation completed", logAttrs...)

	return result, nil
}

// GenerateArticle produces a complete article for a blog: builds a varied
// prompt from the blog config, generates content with rate limiting and
// retries, extracts and dedupes the title, and scores the result when an
// SEO analyzer is configured.
func (m *Manager) GenerateArticle(ctx context.Context, blog *BlogConfig, config *GenerateConfig) (*Article, error) {
	if blog == nil {
		return nil, errors.New("blog config is required")
	}
	blog.ApplyDefaults()
	if err := blog.Validate(); err != nil {
		return nil, fmt.Errorf("invalid blog config: %w", err)
	}

	prompt := buildPrompt(blog)
	return m.generateArticleFromPrompt(ctx, blog, prompt, config)
}

// GenerateArticleWithPrompt produces an article from a user-supplied
// prompt, enhanced with freshness directives. The blog config supplies
// keywords and the blog ID but does not shape the prompt.
func (m *Manager) GenerateArticleWithPrompt(ctx context.Context, blog *BlogConfig, customPrompt string, config *GenerateConfig) (*Article, error) {
	if blog == nil {
		return nil, errors.New("blog config is required")
	}
	if err := ValidatePrompt(customPrompt); err != nil {
		return nil, err
	}

	prompt := enhanceCustomPrompt(customPrompt)
	return m.generateArticleFromPrompt(ctx, blog, prompt, config)
}

func (m *Manager) generateArticleFromPrompt(ctx context.Context, blog *BlogConfig, prompt string, config *GenerateConfig) (*Article, error) {
	if config == nil {
		config = DefaultGenerateConfig()
	}

	model := m.resolveModel(config)
	start := time.Now()

	m.logger.Debug("starting article generation",
		"blog_id", blog.ID,
		"model", string(model),
		"prompt_length", len(prompt),
	)

	result, err := m.generateWithRetry(ctx, model, prompt, config)
	duration := time.Since(start)

	if err != nil {
		m.logger.Error("article generation failed",
			"blog_id", blog.ID,
			"model", string(model),
			"duration_ms", duration.Milliseconds(),
			"error", err.Error(),
		)
		return nil, err
	}

	title, content := splitTitle(result.Content, blog.Niche)
	title = m.uniqueTitle(title)

	article := &Article{
		ID:              "art_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:8],
		Title:           title,
		Content:         content,
		MetaDescription: metaDescription(content),
		Keywords:        blog.Keywords,
		WordCount:       len(strings.Fields(content)),
		BlogID:          blog.ID,
		Model:           string(model),
		CreatedAt:       time.Now(),
	}

	m.mu.RLock()
	analyzer := m.seoAnalyzer
	m.mu.RUnlock()

	if analyzer != nil {
		doc := analyzer.Optimize(seo.Document{
			ID:              article.ID,
			Title:           article.Title,
			Content:         article.Content,
			MetaDescription: article.MetaDescription,
			Keywords:        article.Keywords,
			CreatedAt:       article.CreatedAt,
		})
		analysis := analyzer.Analyze(doc)

		article.Title = doc.Title
		article.Content = doc.Content
		article.MetaDescription = doc.MetaDescription
		article.SEOScore = analysis.Score
	}

	logAttrs := []any{
		"blog_id", blog.ID,
		"model", string(model),
		"duration_ms", duration.Milliseconds(),
		"article_id", article.ID,
		"word_count", article.WordCount,
	}
	if result.UsageMetadata != nil {
		logAttrs = append(logAttrs,
			"prompt_tokens", result.UsageMetadata.PromptTokens,
			"response_tokens", result.UsageMetadata.CandidatesTokens,
			"total_tokens", result.UsageMetadata.TotalTokens,
		)
	}
	m.logger.Info("article generated", logAttrs...)

	return article, nil
}

// generateWithRetry performs the rate-limited provider call under the
// manager's retry policy. The rate limit check runs inside the retried
// operation so that a locally denied request backs off and tries again.
func (m *Manager) generateWithRetry(ctx context.Context, model Model, prompt string, config *GenerateConfig) (*GenerateResult, error) {
	gen, actualConfig, err := m.getGeneratorForConfig(config)
	if err != nil {
		return nil, err
	}

	return retry.DoValue(ctx, m.retryPolicy, func(ctx context.Context) (*GenerateResult, error) {
		if err := m.checkRateLimit(ctx, model, config, prompt); err != nil {
			m.logger.Warn("rate limit hit",
				"model", string(model),
				"error", err.Error(),
			)
			return nil, err
		}

		result, err := gen.Generate(ctx, prompt, actualConfig)
		if err != nil {
			return nil, err
		}

		if err := ValidateArticleContent(result.Content); err != nil {
			// Terminal: the classifier will not retry empty output.
			return nil, fmt.Errorf("%w: %v", ErrEmptyContent, err)
		}
		return result, nil
	})
}

// Publish sends the article to the configured publisher.
func (m *Manager) Publish(ctx context.Context, article *Article) (*PublishResult, error) {
	m.mu.RLock()
	publisher := m.publisher
	m.mu.RUnlock()

	if publisher == nil {
		return nil, ErrPublisherNotConfigured
	}

	result, err := publisher.Publish(ctx, article)
	if err != nil {
		m.logger.Error("publish failed",
			"article_id", article.ID,
			"error", err.Error(),
		)
		return nil, err
	}

	m.logger.Info("article published",
		"article_id", article.ID,
		"url", result.URL,
	)
	return result, nil
}

// Models returns all registered model definitions.
func (m *Manager) Models() []ModelInfo {
	m.mu.RLock()
	defer m.mu.RUnlock()

	models := make([]ModelInfo, 0, len(m.modelInfo))
	for _, info := range m.modelInfo {
		models = append(models, *info)
	}
	return models
}

// ListModels returns all registered model identifiers.
func (m *Manager) ListModels() []Model {
	m.mu.RLock()
	defer m.mu.RUnlock()

	models := make([]Model, 0, len(m.modelMappings))
	for model := range m.modelMappings {
		models = append(models, model)
	}
	return models
}

// GetModelProvider returns the provider for a model.
func (m *Manager) GetModelProvider(model Model) (Provider, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	mapping, ok := m.modelMappings[model]
	if !ok {
		return "", false
	}
	return mapping.Provider, true
}

// GetModelInfo returns model information for a specific model.
func (m *Manager) GetModelInfo(model Model) (*ModelInfo, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	info, ok := m.modelInfo[model]
	return info, ok
}

// Close releases all provider resources.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var errs []error
	for provider, gen := range m.providers {
		if err := gen.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing %s: %w", provider, err))
		}
	}
	m.providers = make(map[Provider]TextGenerator)

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// checkRateLimit charges the model's request and token buckets, waiting
// when the config asks for it.
func (m *Manager) checkRateLimit(ctx context.Context, model Model, config *GenerateConfig, prompt string) error {
	const tokenBuffer = 100

	m.mu.RLock()
	info := m.modelInfo[model]
	m.mu.RUnlock()

	// Models without published limits (and unregistered models) are not
	// throttled locally.
	if info == nil {
		return nil
	}

	if info.RateLimits.RequestsPerMinute > 0 {
		requests := m.requestLimits.Get(string(model))
		if config.WaitOnRateLimit {
			if err := requests.WaitAndAcquire(ctx, 1, config.MaxWaitDuration); err != nil {
				return err
			}
		} else if !requests.Acquire(1) {
			return &RateLimitError{
				RetryAfter: requests.WaitTime(),
				LimitType:  "requests",
				Model:      string(model),
			}
		}
	}

	if info.RateLimits.TokensPerMinute > 0 {
		tokens := m.tokenLimits.Get(string(model))
		estimatedTokens := m.tokenEstimator.EstimateTokens(prompt) + tokenBuffer
		if config.WaitOnRateLimit {
			return tokens.WaitAndAcquire(ctx, estimatedTokens, config.MaxWaitDuration)
		}
		if !tokens.Acquire(estimatedTokens) {
			return &RateLimitError{
				RetryAfter: tokens.WaitTime(),
				LimitType:  "tokens",
				Model:      string(model),
			}
		}
	}

	return nil
}

// resolveModel determines the actual model to use.
func (m *Manager) resolveModel(config *GenerateConfig) Model {
	model := ModelDefault
	if config != nil && config.Model != "" {
		model = config.Model
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if model == ModelDefault {
		model = m.defaultModel
	}

	return model
}

// getGeneratorForConfig returns the appropriate generator and adjusted config.
func (m *Manager) getGeneratorForConfig(config *GenerateConfig) (TextGenerator, *GenerateConfig, error) {
	model := m.resolveModel(config)

	m.mu.RLock()
	mapping, ok := m.modelMappings[model]
	m.mu.RUnlock()

	if !ok {
		return nil, nil, fmt.Errorf("%w: %s", ErrModelNotRegistered, model)
	}

	gen, err := m.getProvider(mapping.Provider)
	if err != nil {
		return nil, nil, err
	}

	actualConfig := config
	if actualConfig == nil {
		actualConfig = DefaultGenerateConfig()
	}
	configCopy := *actualConfig
	configCopy.Model = Model(mapping.ActualModelName)

	return gen, &configCopy, nil
}

// getProvider returns the provider instance for the given provider type.
func (m *Manager) getProvider(provider Provider) (TextGenerator, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	gen, ok := m.providers[provider]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrProviderNotConfigured, provider)
	}
	return gen, nil
}

// uniqueTitle dedupes titles within this process, appending a part number
// or, past part 10, the date.
func (m *Manager) uniqueTitle(title string) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := strings.ToLower(title)
	if !m.generatedTitles[key] {
		m.generatedTitles[key] = true
		return title
	}

	for i := 2; i <= 10; i++ {
		candidate := fmt.Sprintf("%s - Part %d", title, i)
		if !m.generatedTitles[strings.ToLower(candidate)] {
			m.generatedTitles[strings.ToLower(candidate)] = true
			return candidate
		}
	}

	candidate := fmt.Sprintf("%s - %s", title, time.Now().Format("January 2, 2006"))
	m.generatedTitles[strings.ToLower(candidate)] = true
	return candidate
}

// splitTitle extracts the article title from generated markdown. A leading
// H1 becomes the title and is removed from the body; otherwise the first
// non-empty line is used, and a niche-based fallback covers the rest.
func splitTitle(content, niche string) (title, body string) {
	lines := strings.Split(strings.TrimSpace(content), "\n")

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, "# ") {
			title = strings.TrimSpace(strings.TrimPrefix(trimmed, "# "))
			body = strings.TrimSpace(strings.Join(lines[i+1:], "\n"))
			return title, body
		}
		// First non-empty line, stripped of any formatting.
		title = strings.Trim(trimmed, "#* ")
		if len(title) > 100 {
			title = title[:100]
		}
		return title, strings.TrimSpace(content)
	}

	return fmt.Sprintf("Insights on %s", niche), strings.TrimSpace(content)
}

// metaDescription derives a meta description from the first real paragraph.
func metaDescription(content string) string {
	for _, para := range strings.Split(content, "\n\n") {
		trimmed := strings.TrimSpace(para)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		clean := strings.Trim(trimmed, "*_ ")
		if len(clean) > 160 {
			clean = clean[:157] + "..."
		}
		return clean
	}
	return ""
}
