package file

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mhpenta/autoblogger"
)

func testArticle() *autoblogger.Article {
	return &autoblogger.Article{
		ID:              "art_test1234",
		Title:           "Composting for Beginners",
		Content:         "Composting turns kitchen scraps into free fertilizer for your garden beds.",
		MetaDescription: "A beginner's guide to composting kitchen scraps.",
		Keywords:        []string{"composting", "gardening"},
		WordCount:       11,
		BlogID:          "garden",
		CreatedAt:       time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestPublish_WritesBothFormats(t *testing.T) {
	dir := t.TempDir()
	pub, err := New(dir)
	if err != nil {
		t.Fatal(err)
	}

	result, err := pub.Publish(context.Background(), testArticle())
	if err != nil {
		t.Fatalf("publish failed: %v", err)
	}

	if len(result.Paths) != 2 {
		t.Fatalf("expected 2 files, got %d", len(result.Paths))
	}

	var sawHTML, sawMD bool
	for _, path := range result.Paths {
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("reading %s: %v", path, err)
		}
		switch filepath.Ext(path) {
		case ".html":
			sawHTML = true
			if !strings.Contains(string(data), "<title>Composting for Beginners</title>") {
				t.Error("html missing title tag")
			}
			if !strings.Contains(string(data), "composting, gardening") {
				t.Error("html missing keywords")
			}
		case ".md":
			sawMD = true
			if !strings.HasPrefix(string(data), "# Composting for Beginners") {
				t.Error("markdown missing title heading")
			}
		}
	}
	if !sawHTML || !sawMD {
		t.Errorf("missing output format: html=%v md=%v", sawHTML, sawMD)
	}

	if !strings.HasPrefix(result.URL, "file://") {
		t.Errorf("url = %q, want file:// prefix", result.URL)
	}
}

func TestPublish_CancelledContext(t *testing.T) {
	pub, err := New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := pub.Publish(ctx, testArticle()); err == nil {
		t.Error("expected error for cancelled context")
	}
}

func TestSanitizeFilename(t *testing.T) {
	got := sanitizeFilename(`What's New: 2025 <Guide>?`)
	for _, c := range `<>:"/\|?*` {
		if strings.ContainsRune(got, c) {
			t.Errorf("sanitized name still contains %q: %s", c, got)
		}
	}

	long := sanitizeFilename(strings.Repeat("a", 200))
	if len(long) > maxFilenameLength {
		t.Errorf("sanitized name too long: %d", len(long))
	}
}

func TestCheckWritable(t *testing.T) {
	pub, err := New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := pub.CheckWritable(); err != nil {
		t.Errorf("temp dir should be writable: %v", err)
	}
}

func TestPreview_DoesNotWrite(t *testing.T) {
	dir := t.TempDir()
	pub, err := New(dir)
	if err != nil {
		t.Fatal(err)
	}

	html, err := pub.Preview(testArticle())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(html, "Composting for Beginners") {
		t.Error("preview missing article title")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("preview wrote %d files", len(entries))
	}
}
