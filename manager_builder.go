package autoblogger

import (
	"log/slog"

	"github.com/mhpenta/autoblogger/ratelimiter"
	"github.com/mhpenta/autoblogger/retry"
	"github.com/mhpenta/autoblogger/seo"
)

// ManagerOption configures the Manager.
type ManagerOption func(*Manager)

// WithLogger sets a structured logger for the manager.
func WithLogger(logger *slog.Logger) ManagerOption {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithPublisher sets the publisher used by Publish.
func WithPublisher(publisher Publisher) ManagerOption {
	return func(m *Manager) {
		m.publisher = publisher
	}
}

// WithDefaultModel sets the default model used when config.Model is empty.
func WithDefaultModel(model Model) ManagerOption {
	return func(m *Manager) {
		m.defaultModel = model
	}
}

// WithRetryPolicy replaces the retry policy used for provider calls.
func WithRetryPolicy(policy retry.Policy) ManagerOption {
	return func(m *Manager) {
		m.retryPolicy = policy
	}
}

// WithSEOAnalyzer enables SEO scoring of generated articles.
func WithSEOAnalyzer(analyzer *seo.Analyzer) ManagerOption {
	return func(m *Manager) {
		m.seoAnalyzer = analyzer
	}
}

// WithRegistries replaces the request and token limiter registries. Both
// must be non-nil. Buckets sized from model info are not re-created in the
// new registries; configure them via Registry.Configure as needed.
func WithRegistries(requests, tokens *ratelimiter.Registry) ManagerOption {
	return func(m *Manager) {
		m.requestLimits = requests
		m.tokenLimits = tokens
	}
}

// NewManager creates a Manager with the given provider and options,
// registering every model the provider serves.
//
// Example:
//
//	gen, err := gemini.NewWithAPIKey(ctx, apiKey)
//	if err != nil {
//	    return err
//	}
//	manager := autoblogger.NewManager(gen)
//
// With options:
//
//	manager := autoblogger.NewManager(gen,
//	    autoblogger.WithLogger(slog.Default()),
//	    autoblogger.WithPublisher(filePublisher),
//	)
func NewManager(defaultProvider TextGenerator, opts ...ManagerOption) *Manager {
	m := New()

	models := defaultProvider.Models()
	for i := range models {
		info := &models[i]

		m.providers[info.Provider] = defaultProvider

		m.RegisterModel(Model(info.Name),
			ModelMapping{
				Provider:        info.Provider,
				ActualModelName: info.APIModelName,
			},
			info)
	}

	if len(models) > 0 {
		m.defaultModel = Model(models[0].Name)
	}
	for _, opt := range opts {
		opt(m)
	}

	return m
}
