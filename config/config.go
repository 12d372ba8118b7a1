// Package config loads application configuration for the autoblogger CLI
// and web dashboard from a config file plus environment variables. Secrets
// (API keys, the dashboard signing key) come only from the environment and
// are masked when logged.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/mhpenta/autoblogger"
)

// App is the top-level application configuration.
type App struct {
	// Provider selects the text-generation backend: "gemini" or "canned".
	Provider string `mapstructure:"provider"`

	// Publisher selects where finished articles go. Only "file" is bundled.
	Publisher string `mapstructure:"publisher"`

	// Environment is "development" or "production".
	Environment string `mapstructure:"environment"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `mapstructure:"log_level"`

	MaxPostsPerDay        int `mapstructure:"max_posts_per_day"`
	RequestTimeoutSeconds int `mapstructure:"request_timeout_seconds"`

	Blogs []autoblogger.BlogConfig `mapstructure:"blogs"`

	Limits Limits `mapstructure:"limits"`
	Retry  Retry  `mapstructure:"retry"`
	Web    Web    `mapstructure:"web"`

	Site Site `mapstructure:"site"`

	// Secrets, loaded from the environment, never from the config file.
	GeminiAPIKey string `mapstructure:"-"`
}

// Limits configures local rate limiting.
type Limits struct {
	// Requests and Tokens map model names to bucket configs, overriding the
	// buckets derived from model info (e.g. to run under a stricter budget
	// than the API allows).
	Requests map[string]Bucket `mapstructure:"requests"`
	Tokens   map[string]Bucket `mapstructure:"tokens"`

	// IPRequestsPerMinute throttles dashboard clients per address.
	IPRequestsPerMinute int `mapstructure:"ip_requests_per_minute"`

	// CleanupIntervalSeconds gates sweeps of idle addresses.
	CleanupIntervalSeconds int `mapstructure:"cleanup_interval_seconds"`
}

// Bucket mirrors ratelimiter.Config in config-file form.
type Bucket struct {
	Capacity            int     `mapstructure:"capacity"`
	RefillRate          float64 `mapstructure:"refill_rate"`
	RefillPeriodSeconds float64 `mapstructure:"refill_period_seconds"`
}

// RefillPeriod returns the refill period as a duration, defaulting to one
// second.
func (b Bucket) RefillPeriod() time.Duration {
	if b.RefillPeriodSeconds <= 0 {
		return time.Second
	}
	return time.Duration(b.RefillPeriodSeconds * float64(time.Second))
}

// Retry configures the provider retry policy.
type Retry struct {
	MaxAttempts       int     `mapstructure:"max_attempts"`
	BackoffBase       float64 `mapstructure:"backoff_base"`
	BackoffMaxSeconds float64 `mapstructure:"backoff_max_seconds"`
	Jitter            bool    `mapstructure:"jitter"`
}

// Web configures the dashboard server.
type Web struct {
	Addr      string `mapstructure:"addr"`
	OutputDir string `mapstructure:"output_dir"`
	DataDir   string `mapstructure:"data_dir"`

	// SecretKey signs dashboard auth tokens. Loaded from the environment.
	SecretKey string `mapstructure:"-"`

	// TokenTTLMinutes bounds auth token lifetime.
	TokenTTLMinutes int `mapstructure:"token_ttl_minutes"`
}

// Site identifies the publishing site for SEO schema markup.
type Site struct {
	Name    string `mapstructure:"name"`
	URL     string `mapstructure:"url"`
	LogoURL string `mapstructure:"logo_url"`
}

// Default returns a config suitable for local development with the canned
// provider.
func Default() *App {
	return &App{
		Provider:              "canned",
		Publisher:             "file",
		Environment:           "development",
		LogLevel:              "info",
		MaxPostsPerDay:        10,
		RequestTimeoutSeconds: 120,
		Limits: Limits{
			IPRequestsPerMinute:    60,
			CleanupIntervalSeconds: 300,
		},
		Retry: Retry{
			MaxAttempts:       3,
			BackoffBase:       2,
			BackoffMaxSeconds: 60,
			Jitter:            true,
		},
		Web: Web{
			Addr:            ":8080",
			OutputDir:       "output",
			DataDir:         "data",
			TokenTTLMinutes: 60,
		},
	}
}

// Load reads configuration from the given file (YAML, optional) and the
// environment. A missing config file is not an error; missing required
// secrets for the selected provider are.
func Load(path string) (*App, error) {
	// .env is a convenience for development; absence is fine.
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("AUTOBLOGGER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	app := Default()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("autoblogger")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("config")
	}

	if err := v.ReadInConfig(); err != nil {
		if path != "" {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		// Without an explicit path, running purely on defaults plus
		// environment variables is supported.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	if err := v.Unmarshal(app); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	app.GeminiAPIKey = firstEnv("GEMINI_API_KEY", "GOOGLE_API_KEY")
	app.Web.SecretKey = os.Getenv("AUTOBLOGGER_SECRET_KEY")

	if err := app.Validate(); err != nil {
		return nil, err
	}
	return app, nil
}

// Validate checks cross-field constraints.
func (a *App) Validate() error {
	switch a.Provider {
	case "gemini":
		if a.GeminiAPIKey == "" {
			return errors.New("provider gemini requires GEMINI_API_KEY or GOOGLE_API_KEY")
		}
	case "canned":
	default:
		return fmt.Errorf("unknown provider %q", a.Provider)
	}

	if a.Publisher != "file" {
		return fmt.Errorf("unknown publisher %q", a.Publisher)
	}

	if a.Limits.IPRequestsPerMinute < 1 {
		return errors.New("ip_requests_per_minute must be at least 1")
	}
	if a.Retry.MaxAttempts < 1 {
		return errors.New("retry max_attempts must be at least 1")
	}

	seen := make(map[string]bool, len(a.Blogs))
	for i := range a.Blogs {
		blog := &a.Blogs[i]
		blog.ApplyDefaults()
		if err := blog.Validate(); err != nil {
			return fmt.Errorf("blog %q: %w", blog.ID, err)
		}
		if seen[blog.ID] {
			return fmt.Errorf("duplicate blog id %q", blog.ID)
		}
		seen[blog.ID] = true
	}

	return nil
}

// Blog returns the blog config with the given ID.
func (a *App) Blog(id string) (*autoblogger.BlogConfig, bool) {
	for i := range a.Blogs {
		if a.Blogs[i].ID == id {
			return &a.Blogs[i], true
		}
	}
	return nil, false
}

// RequestTimeout returns the per-request timeout as a duration.
func (a *App) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 2 * time.Minute
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// CleanupInterval returns the IP limiter sweep interval as a duration.
func (l Limits) CleanupInterval() time.Duration {
	if l.CleanupIntervalSeconds <= 0 {
		return 5 * time.Minute
	}
	return time.Duration(l.CleanupIntervalSeconds) * time.Second
}

// BackoffMax returns the retry delay cap as a duration.
func (r Retry) BackoffMax() time.Duration {
	if r.BackoffMaxSeconds <= 0 {
		return time.Minute
	}
	return time.Duration(r.BackoffMaxSeconds * float64(time.Second))
}

// TokenTTL returns the dashboard token lifetime as a duration.
func (w Web) TokenTTL() time.Duration {
	if w.TokenTTLMinutes <= 0 {
		return time.Hour
	}
	return time.Duration(w.TokenTTLMinutes) * time.Minute
}

// MaskSecret shortens a secret for logging: first and last four characters
// for long values, stars otherwise.
func MaskSecret(value string) string {
	if value == "" {
		return ""
	}
	if len(value) > 12 {
		return value[:4] + "..." + value[len(value)-4:]
	}
	return "***"
}

func firstEnv(keys ...string) string {
	for _, key := range keys {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}
	return ""
}
