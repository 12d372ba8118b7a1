package autoblogger

import "time"

// Article is a generated blog post.
type Article struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Content         string    `json:"content"`
	MetaDescription string    `json:"meta_description"`
	Keywords        []string  `json:"keywords"`
	WordCount       int       `json:"word_count"`
	BlogID          string    `json:"blog_id"`
	Model           string    `json:"model,omitempty"`
	CreatedAt       time.Time `json:"created_at"`

	// SEOScore is 0 until an analyzer has scored the article.
	SEOScore int `json:"seo_score,omitempty"`
}

// GenerateResult holds the raw output of a text-generation request.
type GenerateResult struct {
	// Content is the generated text, typically markdown.
	Content string

	// UsageMetadata contains token/billing information, if the provider
	// reports it.
	UsageMetadata *UsageMetadata
}

// UsageMetadata contains usage information for billing and monitoring.
type UsageMetadata struct {
	PromptTokens     int
	CandidatesTokens int
	TotalTokens      int
}
