package autoblogger

import (
	"context"
	"time"
)

// Publisher is an interface for pushing finished articles to a destination.
// The bundled implementation writes HTML and Markdown files; implementations
// can wrap CMS clients (WordPress, Medium, etc.) with this interface.
type Publisher interface {
	// Publish sends the article to the destination and returns where it
	// ended up.
	Publish(ctx context.Context, article *Article) (*PublishResult, error)
}

// PublishResult contains information about a published article.
type PublishResult struct {
	// URL where the published article can be accessed
	URL string

	// Paths are the files or objects the publisher wrote
	Paths []string

	// Message is a human-readable summary
	Message string

	// PublishedAt is when publication completed
	PublishedAt time.Time
}
