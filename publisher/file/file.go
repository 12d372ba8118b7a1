// Package file implements a Publisher that saves articles as HTML and
// Markdown files in an output directory. It is the default publisher for
// testing and manual publishing workflows.
package file

import (
	"context"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mhpenta/autoblogger"
)

const maxFilenameLength = 100

// Publisher writes articles to the local filesystem.
type Publisher struct {
	outputDir string
}

// Ensure Publisher implements autoblogger.Publisher.
var _ autoblogger.Publisher = (*Publisher)(nil)

// New creates a publisher writing into outputDir, creating it if needed.
func New(outputDir string) (*Publisher, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	return &Publisher{outputDir: outputDir}, nil
}

// Publish saves the article as <timestamp>_<title>.html and .md.
func (p *Publisher) Publish(ctx context.Context, article *autoblogger.Article) (*autoblogger.PublishResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	base := fmt.Sprintf("%s_%s",
		time.Now().Format("20060102_150405"),
		sanitizeFilename(article.Title))

	htmlPath := filepath.Join(p.outputDir, base+".html")
	htmlContent, err := renderHTML(article)
	if err != nil {
		return nil, fmt.Errorf("rendering html: %w", err)
	}
	if err := os.WriteFile(htmlPath, []byte(htmlContent), 0o644); err != nil {
		return nil, fmt.Errorf("writing html: %w", err)
	}

	mdPath := filepath.Join(p.outputDir, base+".md")
	if err := os.WriteFile(mdPath, []byte(renderMarkdown(article)), 0o644); err != nil {
		return nil, fmt.Errorf("writing markdown: %w", err)
	}

	abs, err := filepath.Abs(htmlPath)
	if err != nil {
		abs = htmlPath
	}

	return &autoblogger.PublishResult{
		URL:         "file://" + abs,
		Paths:       []string{htmlPath, mdPath},
		Message:     fmt.Sprintf("article saved as %s and %s", filepath.Base(htmlPath), filepath.Base(mdPath)),
		PublishedAt: time.Now(),
	}, nil
}

// CheckWritable verifies the output directory accepts writes.
func (p *Publisher) CheckWritable() error {
	probe := filepath.Join(p.outputDir, ".write_probe")
	if err := os.WriteFile(probe, []byte("probe"), 0o644); err != nil {
		return fmt.Errorf("output directory not writable: %w", err)
	}
	return os.Remove(probe)
}

// Preview renders the article's HTML without writing it anywhere.
func (p *Publisher) Preview(article *autoblogger.Article) (string, error) {
	return renderHTML(article)
}

// sanitizeFilename strips characters that are unsafe on common filesystems
// and bounds the length.
func sanitizeFilename(name string) string {
	replacer := strings.NewReplacer(
		"<", "_", ">", "_", ":", "_", `"`, "_",
		"/", "_", `\`, "_", "|", "_", "?", "_", "*", "_",
	)
	name = replacer.Replace(name)
	if len(name) > maxFilenameLength {
		name = name[:maxFilenameLength]
	}
	return strings.TrimSpace(name)
}

var htmlTemplate = template.Must(template.New("article").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}}</title>
    <meta name="description" content="{{.MetaDescription}}">
    <meta name="keywords" content="{{.KeywordList}}">
    <style>
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
            line-height: 1.6;
            max-width: 800px;
            margin: 0 auto;
            padding: 20px;
            color: #333;
        }
        h1 { color: #2c3e50; border-bottom: 2px solid #3498db; padding-bottom: 10px; }
        .meta { color: #7f8c8d; font-size: 0.9em; margin-bottom: 30px; }
        .content { line-height: 1.8; }
        .content h2, .content h3 { color: #34495e; margin-top: 25px; }
        .content p { margin-bottom: 15px; }
    </style>
</head>
<body>
    <h1>{{.Title}}</h1>
    <div class="meta">
        <p><strong>Published:</strong> {{.Published}}</p>
        <p><strong>Word Count:</strong> {{.WordCount}}</p>
        <p><strong>Keywords:</strong> {{.KeywordList}}</p>
    </div>
    <div class="content">
{{.Content}}
    </div>
</body>
</html>
`))

type articleView struct {
	Title           string
	MetaDescription string
	KeywordList     string
	Published       string
	WordCount       int
	Content         string
}

func renderHTML(article *autoblogger.Article) (string, error) {
	var b strings.Builder
	err := htmlTemplate.Execute(&b, articleView{
		Title:           article.Title,
		MetaDescription: article.MetaDescription,
		KeywordList:     strings.Join(article.Keywords, ", "),
		Published:       article.CreatedAt.Format("January 2, 2006"),
		WordCount:       article.WordCount,
		Content:         article.Content,
	})
	if err != nil {
		return "", err
	}
	return b.String(), nil
}

func renderMarkdown(article *autoblogger.Article) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", article.Title)
	fmt.Fprintf(&b, "**Published:** %s  \n", article.CreatedAt.Format("January 2, 2006"))
	fmt.Fprintf(&b, "**Word Count:** %d  \n", article.WordCount)
	fmt.Fprintf(&b, "**Keywords:** %s\n\n", strings.Join(article.Keywords, ", "))
	b.WriteString("---\n\n")
	b.WriteString(article.Content)
	b.WriteString("\n")
	return b.String()
}
