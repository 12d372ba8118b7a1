package autoblogger

import (
	"strings"
	"testing"
)

func TestBuildPrompt_IncludesBlogDetails(t *testing.T) {
	blog := validBlogConfig()
	prompt := buildPrompt(blog)

	for _, want := range []string{
		blog.TargetAudience,
		blog.Tone,
		"1200 words",
		"composting, native plants",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestBuildPrompt_BusinessInfo(t *testing.T) {
	blog := validBlogConfig()
	blog.BusinessName = "Green Thumb Landscaping"
	blog.ServiceAreas = "Portland metro"

	prompt := buildPrompt(blog)
	if !strings.Contains(prompt, "Green Thumb Landscaping") {
		t.Error("prompt missing business name")
	}
	if !strings.Contains(prompt, "Portland metro") {
		t.Error("prompt missing service areas")
	}

	plain := buildPrompt(validBlogConfig())
	if strings.Contains(plain, "Green Thumb") {
		t.Error("business section leaked into plain prompt")
	}
}

func TestBuildPrompt_KnownNicheTopics(t *testing.T) {
	blog := validBlogConfig()
	blog.Niche = "sustainable gardening"

	known := nicheTopics["sustainable gardening"]
	prompt := buildPrompt(blog)

	var found bool
	for _, topic := range known {
		if strings.Contains(prompt, topic) {
			found = true
			break
		}
	}
	if !found {
		t.Error("prompt does not use any curated topic for a known niche")
	}
}

func TestBuildPrompt_GenericNicheFallback(t *testing.T) {
	blog := validBlogConfig()
	blog.Niche = "artisanal cheesemaking"

	prompt := buildPrompt(blog)
	if !strings.Contains(prompt, "artisanal cheesemaking") {
		t.Error("generic topics should mention the niche itself")
	}
}

func TestEnhanceCustomPrompt(t *testing.T) {
	custom := "Write about rainwater collection systems."
	enhanced := enhanceCustomPrompt(custom)

	if !strings.HasPrefix(enhanced, custom) {
		t.Error("original prompt not preserved at the start")
	}
	if !strings.Contains(enhanced, "unique and fresh") {
		t.Error("freshness directives missing")
	}
	if len(enhanced) <= len(custom) {
		t.Error("enhancement added nothing")
	}
}

func TestBuildPrompt_Varies(t *testing.T) {
	blog := validBlogConfig()

	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		seen[buildPrompt(blog)] = true
	}
	if len(seen) < 2 {
		t.Error("20 prompts were all identical; variation pools not applied")
	}
}
