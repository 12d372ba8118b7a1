package autoblogger

import (
	"strings"
	"testing"
)

func validBlogConfig() *BlogConfig {
	return &BlogConfig{
		ID:             "garden",
		Niche:          "sustainable gardening",
		TargetAudience: "urban gardeners",
		Tone:           "friendly",
		PostsPerWeek:   2,
		Keywords:       []string{"composting", "native plants"},
		WordCount:      1200,
	}
}

func TestBlogConfig_Validate(t *testing.T) {
	if err := validBlogConfig().Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*BlogConfig)
	}{
		{"empty id", func(b *BlogConfig) { b.ID = "" }},
		{"long id", func(b *BlogConfig) { b.ID = strings.Repeat("x", maxBlogIDLength+1) }},
		{"short niche", func(b *BlogConfig) { b.Niche = "ab" }},
		{"short audience", func(b *BlogConfig) { b.TargetAudience = "me" }},
		{"short tone", func(b *BlogConfig) { b.Tone = "ok" }},
		{"zero posts", func(b *BlogConfig) { b.PostsPerWeek = 0 }},
		{"too many posts", func(b *BlogConfig) { b.PostsPerWeek = 8 }},
		{"too many keywords", func(b *BlogConfig) { b.Keywords = make([]string, maxKeywords+1) }},
		{"short keyword", func(b *BlogConfig) { b.Keywords = []string{"x"} }},
		{"low word count", func(b *BlogConfig) { b.WordCount = MinWordCount - 1 }},
		{"high word count", func(b *BlogConfig) { b.WordCount = MaxWordCount + 1 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validBlogConfig()
			tc.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestBlogConfig_ApplyDefaults(t *testing.T) {
	cfg := &BlogConfig{
		ID:             "garden",
		Niche:          "sustainable gardening",
		TargetAudience: "urban gardeners",
	}
	cfg.ApplyDefaults()

	if cfg.Tone != "professional" {
		t.Errorf("tone = %q", cfg.Tone)
	}
	if cfg.PostsPerWeek != 1 {
		t.Errorf("posts per week = %d", cfg.PostsPerWeek)
	}
	if cfg.WordCount != 1000 {
		t.Errorf("word count = %d", cfg.WordCount)
	}
	if cfg.PublishTo != "file" {
		t.Errorf("publish to = %q", cfg.PublishTo)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}
