// Package web serves the dashboard API: article generation, stored article
// management, and on-demand SEO analysis, behind token auth and per-address
// rate limiting.
package web

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mhpenta/autoblogger"
	"github.com/mhpenta/autoblogger/ratelimiter"
	"github.com/mhpenta/autoblogger/seo"
)

// Config holds server dependencies and settings.
type Config struct {
	Manager   *autoblogger.Manager
	Store     *ArticleStore
	Analyzer  *seo.Analyzer
	Blogs     []autoblogger.BlogConfig
	IPLimiter *ratelimiter.IPRateLimiter

	// SecretKey signs access tokens. Required.
	SecretKey string

	// GenerateTimeout bounds a single article generation request.
	GenerateTimeout time.Duration

	Logger *slog.Logger
}

// Server is the dashboard HTTP server.
type Server struct {
	router  *gin.Engine
	manager *autoblogger.Manager
	store   *ArticleStore
	seo     *seo.Analyzer
	blogs   []autoblogger.BlogConfig
	timeout time.Duration
	logger  *slog.Logger
}

// NewServer builds the server and its routes.
func NewServer(cfg Config) (*Server, error) {
	if cfg.Manager == nil {
		return nil, errors.New("manager is required")
	}
	if cfg.Store == nil {
		return nil, errors.New("article store is required")
	}
	if cfg.SecretKey == "" {
		return nil, errors.New("secret key is required")
	}
	if cfg.IPLimiter == nil {
		return nil, errors.New("ip limiter is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.GenerateTimeout <= 0 {
		cfg.GenerateTimeout = 2 * time.Minute
	}

	s := &Server{
		manager: cfg.Manager,
		store:   cfg.Store,
		seo:     cfg.Analyzer,
		blogs:   cfg.Blogs,
		timeout: cfg.GenerateTimeout,
		logger:  cfg.Logger,
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(SecurityHeaders())

	router.GET("/health", s.health)

	api := router.Group("/api")
	api.Use(RateLimit(cfg.IPLimiter), TokenAuth(cfg.SecretKey))
	{
		api.GET("/articles", s.listArticles)
		api.GET("/articles/:id", s.getArticle)
		api.DELETE("/articles/:id", s.deleteArticle)

		api.POST("/generate", s.generate)
		api.POST("/generate/custom", s.generateCustom)

		api.GET("/blogs", s.listBlogs)
		api.POST("/seo-analysis", s.analyzeSEO)
	}

	s.router = router
	return s, nil
}

// Router returns the gin engine, primarily for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start runs the server on addr, blocking until it exits.
func (s *Server) Start(addr string) error {
	s.logger.Info("starting dashboard server", "addr", addr)
	return s.router.Run(addr)
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now(),
	})
}

func (s *Server) listArticles(c *gin.Context) {
	articles, err := s.store.List()
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"articles": articles})
}

func (s *Server) getArticle(c *gin.Context) {
	article, err := s.store.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrArticleNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "article not found"})
			return
		}
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"article": article})
}

func (s *Server) deleteArticle(c *gin.Context) {
	id := c.Param("id")
	if err := s.store.Delete(id); err != nil {
		if errors.Is(err, ErrArticleNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "article not found"})
			return
		}
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

type generateRequest struct {
	BlogID string `json:"blog_id" binding:"required"`
	Model  string `json:"model"`
	Wait   bool   `json:"wait_on_rate_limit"`
}

func (s *Server) generate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	blog, ok := s.blogForID(req.BlogID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown blog: " + req.BlogID})
		return
	}

	cfg := autoblogger.DefaultGenerateConfig()
	if req.Model != "" {
		cfg = cfg.WithModel(autoblogger.Model(req.Model))
	}
	cfg.WaitOnRateLimit = req.Wait
	cfg.MaxWaitDuration = s.timeout

	ctx, cancel := contextWithTimeout(c, s.timeout)
	defer cancel()

	article, err := s.manager.GenerateArticle(ctx, blog, cfg)
	if err != nil {
		s.writeGenerationError(c, err)
		return
	}

	if err := s.store.Save(article); err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"article": article})
}

type generateCustomRequest struct {
	BlogID string `json:"blog_id" binding:"required"`
	Prompt string `json:"prompt" binding:"required"`
	Model  string `json:"model"`
	Wait   bool   `json:"wait_on_rate_limit"`
}

func (s *Server) generateCustom(c *gin.Context) {
	var req generateCustomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	blog, ok := s.blogForID(req.BlogID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown blog: " + req.BlogID})
		return
	}

	cfg := autoblogger.DefaultGenerateConfig()
	if req.Model != "" {
		cfg = cfg.WithModel(autoblogger.Model(req.Model))
	}
	cfg.WaitOnRateLimit = req.Wait
	cfg.MaxWaitDuration = s.timeout

	ctx, cancel := contextWithTimeout(c, s.timeout)
	defer cancel()

	article, err := s.manager.GenerateArticleWithPrompt(ctx, blog, req.Prompt, cfg)
	if err != nil {
		s.writeGenerationError(c, err)
		return
	}

	if err := s.store.Save(article); err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"article": article})
}

func (s *Server) listBlogs(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"blogs": s.blogs})
}

type seoAnalysisRequest struct {
	Title           string   `json:"title" binding:"required"`
	Content         string   `json:"content" binding:"required"`
	MetaDescription string   `json:"meta_description"`
	Keywords        []string `json:"keywords"`
}

func (s *Server) analyzeSEO(c *gin.Context) {
	if s.seo == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "seo analysis not configured"})
		return
	}

	var req seoAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	analysis := s.seo.Analyze(seo.Document{
		Title:           req.Title,
		Content:         req.Content,
		MetaDescription: req.MetaDescription,
		Keywords:        req.Keywords,
	})

	c.JSON(http.StatusOK, gin.H{
		"analysis": gin.H{
			"keyword_density":         analysis.KeywordDensity,
			"meta_description_length": analysis.MetaDescriptionLength,
			"title_length":            analysis.TitleLength,
			"headings":                analysis.Headings,
			"internal_links":          analysis.InternalLinks,
			"external_links":          analysis.ExternalLinks,
			"readability_score":       analysis.Readability,
			"seo_score":               analysis.Score,
			"recommendations":         analysis.Recommendations,
		},
	})
}

func contextWithTimeout(c *gin.Context, d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), d)
}

func (s *Server) blogForID(id string) (*autoblogger.BlogConfig, bool) {
	for i := range s.blogs {
		if s.blogs[i].ID == id {
			return &s.blogs[i], true
		}
	}
	return nil, false
}

func (s *Server) writeError(c *gin.Context, err error) {
	s.logger.Error("handler error", "path", c.FullPath(), "error", err.Error())
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

// writeGenerationError maps generation failures to client-meaningful
// statuses: rate limits become 429, bad input becomes 400.
func (s *Server) writeGenerationError(c *gin.Context, err error) {
	switch {
	case autoblogger.IsRateLimitError(err):
		c.Header("Retry-After", "60")
		c.JSON(http.StatusTooManyRequests, gin.H{"error": err.Error()})
	case errors.Is(err, autoblogger.ErrEmptyPrompt),
		errors.Is(err, autoblogger.ErrPromptTooLong):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		s.writeError(c, err)
	}
}
