package seo

import (
	"strings"
	"testing"
	"time"
)

const wellFormedContent = `# Garden Planning Basics

Gardening is a rewarding hobby. A garden gives you fresh food. Gardening
also helps you relax after work.

## Choosing Plants

Pick plants suited to your soil. Native plants need less care. Visit a
[local nursery](/nurseries) for advice.

## Watering

Water deeply but not often. See the [watering guide](https://example.com/water)
for details.`

func TestAnalyze_KeywordDensity(t *testing.T) {
	a := NewAnalyzer(SiteInfo{})

	analysis := a.Analyze(Document{
		Title:    "Garden Planning Basics",
		Content:  wellFormedContent,
		Keywords: []string{"gardening", "plants"},
	})

	density, ok := analysis.KeywordDensity["gardening"]
	if !ok {
		t.Fatal("no density entry for keyword")
	}
	if density <= 0 {
		t.Errorf("density for present keyword = %v, want > 0", density)
	}

	missing := a.Analyze(Document{
		Content:  wellFormedContent,
		Keywords: []string{"blockchain"},
	})
	if missing.KeywordDensity["blockchain"] != 0 {
		t.Errorf("density for absent keyword = %v, want 0", missing.KeywordDensity["blockchain"])
	}
}

func TestAnalyze_Headings(t *testing.T) {
	a := NewAnalyzer(SiteInfo{})
	analysis := a.Analyze(Document{Content: wellFormedContent})

	if analysis.Headings["h1"] != 1 {
		t.Errorf("h1 count = %d, want 1", analysis.Headings["h1"])
	}
	if analysis.Headings["h2"] != 2 {
		t.Errorf("h2 count = %d, want 2", analysis.Headings["h2"])
	}
	if analysis.Headings["h3"] != 0 {
		t.Errorf("h3 count = %d, want 0", analysis.Headings["h3"])
	}
}

func TestAnalyze_Links(t *testing.T) {
	a := NewAnalyzer(SiteInfo{})
	analysis := a.Analyze(Document{Content: wellFormedContent})

	if analysis.InternalLinks != 1 {
		t.Errorf("internal links = %d, want 1", analysis.InternalLinks)
	}
	if analysis.ExternalLinks != 1 {
		t.Errorf("external links = %d, want 1", analysis.ExternalLinks)
	}
}

func TestReadability_Bounds(t *testing.T) {
	simple := Readability("The cat sat. The dog ran. We like pets. Pets are fun.")
	if simple < 60 {
		t.Errorf("simple prose readability = %v, want >= 60", simple)
	}

	if got := Readability(""); got != 0 {
		t.Errorf("empty content readability = %v, want 0", got)
	}

	for _, content := range []string{wellFormedContent, strings.Repeat("incomprehensibility ", 50) + "."} {
		score := Readability(content)
		if score < 0 || score > 100 {
			t.Errorf("readability %v out of [0, 100]", score)
		}
	}
}

func TestAnalyze_ScoreRange(t *testing.T) {
	a := NewAnalyzer(SiteInfo{})

	docs := []Document{
		{},
		{Title: "Short", Content: "Tiny."},
		{
			Title:           "Garden Planning Basics for First Time Growers",
			Content:         wellFormedContent,
			MetaDescription: strings.Repeat("Plan your first garden with confidence. ", 4)[:140],
			Keywords:        []string{"gardening"},
		},
	}

	for i, doc := range docs {
		score := a.Analyze(doc).Score
		if score < 0 || score > 100 {
			t.Errorf("doc %d: score %d out of [0, 100]", i, score)
		}
	}
}

func TestAnalyze_Recommendations(t *testing.T) {
	a := NewAnalyzer(SiteInfo{})

	analysis := a.Analyze(Document{
		Title:   "Hi",
		Content: "No headings here. Just one plain paragraph of text for the analyzer.",
	})

	if len(analysis.Recommendations) == 0 {
		t.Fatal("expected recommendations for a weak document")
	}

	var sawTitle, sawHeading bool
	for _, rec := range analysis.Recommendations {
		if strings.Contains(rec, "Title too short") {
			sawTitle = true
		}
		if strings.Contains(rec, "H1") {
			sawHeading = true
		}
	}
	if !sawTitle {
		t.Error("missing short-title recommendation")
	}
	if !sawHeading {
		t.Error("missing H1 recommendation")
	}
}

func TestOptimize_MetaDescription(t *testing.T) {
	a := NewAnalyzer(SiteInfo{})

	doc := a.Optimize(Document{
		Title:           "Garden Planning Basics for First Time Growers",
		Content:         wellFormedContent,
		MetaDescription: "Too short.",
		Keywords:        []string{"gardening"},
	})

	if len(doc.MetaDescription) <= len("Too short.") {
		t.Errorf("meta description not enhanced: %q", doc.MetaDescription)
	}
	if len(doc.MetaDescription) > 160 {
		t.Errorf("meta description too long: %d chars", len(doc.MetaDescription))
	}
}

func TestOptimize_TitleKeyword(t *testing.T) {
	a := NewAnalyzer(SiteInfo{})

	doc := a.Optimize(Document{
		Title:    "Basics", // short, missing keyword
		Content:  wellFormedContent,
		Keywords: []string{"gardening"},
	})

	if !strings.Contains(strings.ToLower(doc.Title), "gardening") {
		t.Errorf("keyword not injected into short title: %q", doc.Title)
	}
}

func TestOptimize_SchemaMarkup(t *testing.T) {
	site := SiteInfo{Name: "Example Blog", URL: "https://blog.example.com", LogoURL: "https://blog.example.com/logo.png"}
	doc := Document{
		ID:        "art_1234",
		Title:     "Garden Planning Basics for First Time Growers",
		Content:   wellFormedContent,
		Keywords:  []string{"gardening"},
		CreatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}

	withSite := NewAnalyzer(site).Optimize(doc)
	if !strings.Contains(withSite.Content, "application/ld+json") {
		t.Error("schema markup missing when site info configured")
	}
	if !strings.Contains(withSite.Content, "Example Blog") {
		t.Error("schema markup missing site name")
	}

	withoutSite := NewAnalyzer(SiteInfo{}).Optimize(doc)
	if strings.Contains(withoutSite.Content, "application/ld+json") {
		t.Error("schema markup emitted without site info")
	}
}

func TestCountSyllables(t *testing.T) {
	cases := []struct {
		word string
		want int
	}{
		{"cat", 1},
		{"water", 2},
		{"gardening", 3},
		{"the", 1},
		{"xyz", 1}, // no vowels still counts as one
	}
	for _, tc := range cases {
		if got := countSyllables(tc.word); got != tc.want {
			t.Errorf("countSyllables(%q) = %d, want %d", tc.word, got, tc.want)
		}
	}
}
