package canned

import (
	"context"
	"strings"
	"testing"

	"github.com/mhpenta/autoblogger"
)

func TestGenerate_TopicSelection(t *testing.T) {
	g := New()
	defer g.Close()

	cases := []struct {
		prompt string
		want   string
	}{
		{"Write a guide about home networking for small offices.", "Networking Solutions"},
		{"Smart lighting scenes for every room.", "Smart Lighting"},
		{"Why security cameras deter burglars.", "Home Security"},
		{"Sustainable gardening for beginners.", "Sustainable Gardening"},
		{"An essay about something else entirely.", "Modern Technology"},
	}

	for _, tc := range cases {
		result, err := g.Generate(context.Background(), tc.prompt, nil)
		if err != nil {
			t.Fatalf("prompt %q: %v", tc.prompt, err)
		}
		if !strings.Contains(result.Content, tc.want) {
			t.Errorf("prompt %q: content does not mention %q", tc.prompt, tc.want)
		}
	}
}

func TestGenerate_ValidOutput(t *testing.T) {
	g := New()
	defer g.Close()

	result, err := g.Generate(context.Background(), "Write about home automation basics.", nil)
	if err != nil {
		t.Fatal(err)
	}

	if !strings.HasPrefix(result.Content, "# ") {
		t.Error("content missing leading H1 title")
	}
	if err := autoblogger.ValidateArticleContent(result.Content); err != nil {
		t.Errorf("canned content fails validation: %v", err)
	}
	if result.UsageMetadata == nil || result.UsageMetadata.TotalTokens == 0 {
		t.Error("usage metadata not populated")
	}
}

func TestGenerate_RejectsEmptyPrompt(t *testing.T) {
	g := New()
	defer g.Close()

	if _, err := g.Generate(context.Background(), "", nil); err == nil {
		t.Error("expected error for empty prompt")
	}
}

func TestGenerate_CancelledContext(t *testing.T) {
	g := New()
	defer g.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := g.Generate(ctx, "Write about anything.", nil); err == nil {
		t.Error("expected error for cancelled context")
	}
}

func TestModels(t *testing.T) {
	g := New()
	models := g.Models()
	if len(models) != 1 {
		t.Fatalf("expected 1 model, got %d", len(models))
	}
	if models[0].Name != "canned" {
		t.Errorf("model name = %q", models[0].Name)
	}
	if models[0].RateLimits.RequestsPerMinute != 0 {
		t.Error("canned model should have no rate limits")
	}
}
