// Command autoblogger generates blog articles from the command line and
// serves the dashboard API.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mhpenta/autoblogger"
	"github.com/mhpenta/autoblogger/config"
	"github.com/mhpenta/autoblogger/provider/canned"
	"github.com/mhpenta/autoblogger/provider/gemini"
	"github.com/mhpenta/autoblogger/publisher/file"
	"github.com/mhpenta/autoblogger/ratelimiter"
	"github.com/mhpenta/autoblogger/retry"
	"github.com/mhpenta/autoblogger/seo"
	"github.com/mhpenta/autoblogger/web"
)

var (
	cfgFile string
	appCfg  *config.App
	logger  *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "autoblogger",
	Short: "Automated blog content generation",
	Long: `Autoblogger generates SEO-scored blog articles from per-blog
configuration, publishes them as HTML and Markdown files, and serves a
dashboard API for remote generation and article management.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		appCfg, err = config.Load(cfgFile)
		if err != nil {
			return err
		}
		logger = newLogger(appCfg.LogLevel)
		slog.SetDefault(logger)
		logger.Debug("configuration loaded",
			"provider", appCfg.Provider,
			"blogs", len(appCfg.Blogs),
			"gemini_key", config.MaskSecret(appCfg.GeminiAPIKey),
		)
		return nil
	},
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate and publish one article for a blog",
	RunE:  runGenerate,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dashboard API",
	RunE:  runServe,
}

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List registered models and their limits",
	RunE:  runModels,
}

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint a dashboard access token",
	RunE:  runToken,
}

var (
	flagBlog    string
	flagModel   string
	flagPrompt  string
	flagWait    bool
	flagSubject string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: autoblogger.yaml)")

	generateCmd.Flags().StringVar(&flagBlog, "blog", "", "blog ID to generate for (required)")
	generateCmd.Flags().StringVar(&flagModel, "model", "", "model override")
	generateCmd.Flags().StringVar(&flagPrompt, "prompt", "", "custom prompt instead of the blog's generated one")
	generateCmd.Flags().BoolVar(&flagWait, "wait", false, "wait for rate limit capacity instead of failing")
	_ = generateCmd.MarkFlagRequired("blog")

	tokenCmd.Flags().StringVar(&flagSubject, "subject", "cli", "token subject")

	rootCmd.AddCommand(generateCmd, serveCmd, modelsCmd, tokenCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

// buildManager is the composition root: provider, publisher, limits, retry
// policy, and SEO analyzer assembled from configuration.
func buildManager(ctx context.Context) (*autoblogger.Manager, error) {
	var provider autoblogger.TextGenerator
	var err error

	switch appCfg.Provider {
	case "gemini":
		provider, err = gemini.NewWithAPIKey(ctx, appCfg.GeminiAPIKey)
		if err != nil {
			return nil, fmt.Errorf("creating gemini provider: %w", err)
		}
	default:
		provider = canned.New()
	}

	publisher, err := file.New(appCfg.Web.OutputDir)
	if err != nil {
		return nil, err
	}
	if err := publisher.CheckWritable(); err != nil {
		return nil, err
	}

	analyzer := seo.NewAnalyzer(seo.SiteInfo{
		Name:    appCfg.Site.Name,
		URL:     appCfg.Site.URL,
		LogoURL: appCfg.Site.LogoURL,
	})

	policy := retry.Policy{
		MaxAttempts: appCfg.Retry.MaxAttempts,
		BackoffBase: appCfg.Retry.BackoffBase,
		BackoffMax:  appCfg.Retry.BackoffMax(),
		Jitter:      appCfg.Retry.Jitter,
		RetryIf:     autoblogger.RetryableFailure,
	}

	manager := autoblogger.NewManager(provider,
		autoblogger.WithLogger(logger),
		autoblogger.WithPublisher(publisher),
		autoblogger.WithSEOAnalyzer(analyzer),
		autoblogger.WithRetryPolicy(policy),
	)

	// Config-file bucket overrides take precedence over model defaults.
	requests, tokens := manager.Registries()
	for name, bucket := range appCfg.Limits.Requests {
		if err := requests.Configure(name, bucketConfig(bucket)); err != nil {
			return nil, fmt.Errorf("request limit %q: %w", name, err)
		}
	}
	for name, bucket := range appCfg.Limits.Tokens {
		if err := tokens.Configure(name, bucketConfig(bucket)); err != nil {
			return nil, fmt.Errorf("token limit %q: %w", name, err)
		}
	}

	return manager, nil
}

func bucketConfig(b config.Bucket) ratelimiter.Config {
	return ratelimiter.Config{
		Capacity:     b.Capacity,
		RefillRate:   b.RefillRate,
		RefillPeriod: b.RefillPeriod(),
	}
}

func runGenerate(cmd *cobra.Command, args []string) error {
	blog, ok := appCfg.Blog(flagBlog)
	if !ok {
		return fmt.Errorf("unknown blog %q", flagBlog)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), appCfg.RequestTimeout())
	defer cancel()

	manager, err := buildManager(ctx)
	if err != nil {
		return err
	}
	defer manager.Close()

	genCfg := autoblogger.DefaultGenerateConfig()
	if flagModel != "" {
		genCfg = genCfg.WithModel(autoblogger.Model(flagModel))
	}
	genCfg.WaitOnRateLimit = flagWait
	genCfg.MaxWaitDuration = appCfg.RequestTimeout()

	var article *autoblogger.Article
	if flagPrompt != "" {
		article, err = manager.GenerateArticleWithPrompt(ctx, blog, flagPrompt, genCfg)
	} else {
		article, err = manager.GenerateArticle(ctx, blog, genCfg)
	}
	if err != nil {
		return err
	}

	result, err := manager.Publish(ctx, article)
	if err != nil {
		return err
	}

	fmt.Printf("Generated %q (%d words, SEO score %d)\n", article.Title, article.WordCount, article.SEOScore)
	for _, path := range result.Paths {
		fmt.Println("  " + path)
	}
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	if appCfg.Web.SecretKey == "" {
		key, err := web.GenerateSecretKey()
		if err != nil {
			return err
		}
		return fmt.Errorf("AUTOBLOGGER_SECRET_KEY is not set; generated one you can use: %s", key)
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	manager, err := buildManager(ctx)
	if err != nil {
		return err
	}
	defer manager.Close()

	store, err := web.NewArticleStore(appCfg.Web.DataDir)
	if err != nil {
		return err
	}

	ipLimiter, err := ratelimiter.NewIPRateLimiter(
		appCfg.Limits.IPRequestsPerMinute,
		appCfg.Limits.CleanupInterval(),
	)
	if err != nil {
		return err
	}

	server, err := web.NewServer(web.Config{
		Manager:         manager,
		Store:           store,
		Analyzer:        seo.NewAnalyzer(seo.SiteInfo{Name: appCfg.Site.Name, URL: appCfg.Site.URL, LogoURL: appCfg.Site.LogoURL}),
		Blogs:           appCfg.Blogs,
		IPLimiter:       ipLimiter,
		SecretKey:       appCfg.Web.SecretKey,
		GenerateTimeout: appCfg.RequestTimeout(),
		Logger:          logger,
	})
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start(appCfg.Web.Addr)
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
		return nil
	case err := <-errCh:
		return err
	}
}

func runModels(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	manager, err := buildManager(ctx)
	if err != nil {
		return err
	}
	defer manager.Close()

	for _, info := range manager.Models() {
		fmt.Printf("%-16s provider=%-8s api=%-24s rpm=%-6d tpm=%d\n",
			info.Name, info.Provider, info.APIModelName,
			info.RateLimits.RequestsPerMinute, info.RateLimits.TokensPerMinute)
	}
	return nil
}

func runToken(cmd *cobra.Command, args []string) error {
	if appCfg.Web.SecretKey == "" {
		return fmt.Errorf("AUTOBLOGGER_SECRET_KEY is not set")
	}
	token, err := web.CreateAccessToken(appCfg.Web.SecretKey, flagSubject, appCfg.Web.TokenTTL())
	if err != nil {
		return err
	}
	fmt.Println(token)
	return nil
}
