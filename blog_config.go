package autoblogger

import (
	"errors"
	"fmt"
)

// Blog config validation bounds.
const (
	maxBlogIDLength   = 50
	minNicheLength    = 3
	maxNicheLength    = 100
	minAudienceLength = 3
	maxAudienceLength = 100
	minToneLength     = 3
	maxToneLength     = 50
	maxKeywords       = 10
	minKeywordLength  = 2
	MinWordCount      = 500
	MaxWordCount      = 3000
)

// BlogConfig describes a single blog the manager generates content for.
type BlogConfig struct {
	ID             string   `json:"id" mapstructure:"id"`
	Niche          string   `json:"niche" mapstructure:"niche"`
	TargetAudience string   `json:"target_audience" mapstructure:"target_audience"`
	Tone           string   `json:"tone" mapstructure:"tone"`
	PostsPerWeek   int      `json:"posts_per_week" mapstructure:"posts_per_week"`
	Keywords       []string `json:"keywords" mapstructure:"keywords"`
	WordCount      int      `json:"word_count" mapstructure:"word_count"`
	PublishTo      string   `json:"publish_to" mapstructure:"publish_to"`

	// Business information (optional), woven into prompts when present.
	BusinessName    string   `json:"business_name,omitempty" mapstructure:"business_name"`
	BusinessPhone   string   `json:"business_phone,omitempty" mapstructure:"business_phone"`
	BusinessWebsite string   `json:"business_website,omitempty" mapstructure:"business_website"`
	ServiceAreas    string   `json:"service_areas,omitempty" mapstructure:"service_areas"`
	Specialties     []string `json:"specialties,omitempty" mapstructure:"specialties"`
}

// ApplyDefaults fills zero-valued optional fields.
func (b *BlogConfig) ApplyDefaults() {
	if b.Tone == "" {
		b.Tone = "professional"
	}
	if b.PostsPerWeek == 0 {
		b.PostsPerWeek = 1
	}
	if b.WordCount == 0 {
		b.WordCount = 1000
	}
	if b.PublishTo == "" {
		b.PublishTo = "file"
	}
}

// Validate checks the config against the same bounds the dashboard enforces.
func (b *BlogConfig) Validate() error {
	if b.ID == "" || len(b.ID) > maxBlogIDLength {
		return fmt.Errorf("blog id must be 1-%d characters", maxBlogIDLength)
	}
	if len(b.Niche) < minNicheLength || len(b.Niche) > maxNicheLength {
		return fmt.Errorf("niche must be %d-%d characters", minNicheLength, maxNicheLength)
	}
	if len(b.TargetAudience) < minAudienceLength || len(b.TargetAudience) > maxAudienceLength {
		return fmt.Errorf("target audience must be %d-%d characters", minAudienceLength, maxAudienceLength)
	}
	if len(b.Tone) < minToneLength || len(b.Tone) > maxToneLength {
		return fmt.Errorf("tone must be %d-%d characters", minToneLength, maxToneLength)
	}
	if b.PostsPerWeek < 1 || b.PostsPerWeek > 7 {
		return errors.New("posts per week must be between 1 and 7")
	}
	if len(b.Keywords) > maxKeywords {
		return fmt.Errorf("at most %d keywords allowed", maxKeywords)
	}
	for _, kw := range b.Keywords {
		if len(kw) < minKeywordLength {
			return fmt.Errorf("keyword %q too short: keywords must be at least %d characters", kw, minKeywordLength)
		}
	}
	if b.WordCount < MinWordCount || b.WordCount > MaxWordCount {
		return fmt.Errorf("word count must be between %d and %d", MinWordCount, MaxWordCount)
	}
	return nil
}
