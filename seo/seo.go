// Package seo provides heuristic SEO analysis and light optimization for
// markdown articles: keyword density, heading structure, link counts, a
// simplified Flesch Reading Ease score, and an aggregate 0-100 score.
package seo

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Document is the slice of an article the analyzer looks at.
type Document struct {
	ID              string
	Title           string
	Content         string
	MetaDescription string
	Keywords        []string
	CreatedAt       time.Time
}

// Analysis holds the results of analyzing a document.
type Analysis struct {
	KeywordDensity        map[string]float64
	MetaDescriptionLength int
	TitleLength           int
	Headings              map[string]int
	InternalLinks         int
	ExternalLinks         int
	Readability           float64
	Score                 int
	Recommendations       []string
}

// SiteInfo identifies the publishing site for schema markup.
type SiteInfo struct {
	Name    string
	URL     string
	LogoURL string
}

// Analyzer scores and optimizes documents.
type Analyzer struct {
	site SiteInfo
}

// NewAnalyzer creates an analyzer. Site info is only needed for the schema
// markup emitted by Optimize; a zero value disables it.
func NewAnalyzer(site SiteInfo) *Analyzer {
	return &Analyzer{site: site}
}

var (
	markdownSyntax  = regexp.MustCompile("[#*`\\[\\]()]")
	sentenceSplit   = regexp.MustCompile(`[.!?]+`)
	markdownLink    = regexp.MustCompile(`\[[^\]]+\]\(([^)]+)\)`)
	headingPatterns = map[string]*regexp.Regexp{
		"h1": regexp.MustCompile(`(?m)^# `),
		"h2": regexp.MustCompile(`(?m)^## `),
		"h3": regexp.MustCompile(`(?m)^### `),
		"h4": regexp.MustCompile(`(?m)^#### `),
		"h5": regexp.MustCompile(`(?m)^##### `),
		"h6": regexp.MustCompile(`(?m)^###### `),
	}
)

// Analyze computes all SEO heuristics for a document.
func (a *Analyzer) Analyze(doc Document) Analysis {
	density := keywordDensity(doc.Content, doc.Keywords)
	headings := countHeadings(doc.Content)
	internal, external := countLinks(doc.Content)
	readability := Readability(doc.Content)

	score := calculateScore(density, len(doc.MetaDescription), len(doc.Title), headings, readability)

	return Analysis{
		KeywordDensity:        density,
		MetaDescriptionLength: len(doc.MetaDescription),
		TitleLength:           len(doc.Title),
		Headings:              headings,
		InternalLinks:         internal,
		ExternalLinks:         external,
		Readability:           readability,
		Score:                 score,
		Recommendations:       recommendations(density, len(doc.MetaDescription), len(doc.Title), headings, readability, score),
	}
}

// keywordDensity returns each keyword's occurrence percentage over the
// cleaned word count.
func keywordDensity(content string, keywords []string) map[string]float64 {
	clean := markdownSyntax.ReplaceAllString(strings.ToLower(content), "")
	totalWords := len(strings.Fields(clean))

	density := make(map[string]float64, len(keywords))
	for _, kw := range keywords {
		if totalWords == 0 {
			density[kw] = 0
			continue
		}
		count := strings.Count(clean, strings.ToLower(kw))
		density[kw] = float64(count) / float64(totalWords) * 100
	}
	return density
}

func countHeadings(content string) map[string]int {
	headings := make(map[string]int, len(headingPatterns))
	for level, re := range headingPatterns {
		headings[level] = len(re.FindAllString(content, -1))
	}
	return headings
}

func countLinks(content string) (internal, external int) {
	for _, m := range markdownLink.FindAllStringSubmatch(content, -1) {
		url := m[1]
		switch {
		case strings.HasPrefix(url, "http://"), strings.HasPrefix(url, "https://"):
			external++
		case strings.HasPrefix(url, "mailto:"), strings.HasPrefix(url, "tel:"):
			// Neither internal nor external.
		default:
			internal++
		}
	}
	return internal, external
}

// Readability computes a simplified Flesch Reading Ease score, clamped to
// [0, 100]. Higher is easier to read.
func Readability(content string) float64 {
	clean := markdownSyntax.ReplaceAllString(content, "")

	sentences := 0
	for _, s := range sentenceSplit.Split(clean, -1) {
		if strings.TrimSpace(s) != "" {
			sentences++
		}
	}

	words := strings.Fields(clean)
	wordCount := len(words)
	if sentences == 0 || wordCount == 0 {
		return 0
	}

	syllables := 0
	for _, w := range words {
		syllables += countSyllables(w)
	}

	score := 206.835 - 1.015*(float64(wordCount)/float64(sentences)) - 84.6*(float64(syllables)/float64(wordCount))
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// titleCase upper-cases the first letter of each word.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func countSyllables(word string) int {
	word = strings.ToLower(word)

	count := 0
	prevWasVowel := false
	for _, c := range word {
		isVowel := strings.ContainsRune("aeiouy", c)
		if isVowel && !prevWasVowel {
			count++
		}
		prevWasVowel = isVowel
	}

	// Silent trailing 'e'.
	if strings.HasSuffix(word, "e") && count > 1 {
		count--
	}

	if count < 1 {
		return 1
	}
	return count
}

// calculateScore weighs the heuristics into a 0-100 score:
// keyword density 30, meta description 20, title 15, headings 20,
// readability 15.
func calculateScore(density map[string]float64, metaLen, titleLen int, headings map[string]int, readability float64) int {
	score := 0

	if len(density) > 0 {
		sum := 0.0
		for _, d := range density {
			sum += d
		}
		avg := sum / float64(len(density))
		switch {
		case avg >= 1.0 && avg <= 3.0:
			score += 30
		case avg >= 0.5 && avg <= 5.0:
			score += 20
		default:
			score += 10
		}
	}

	switch {
	case metaLen >= 120 && metaLen <= 160:
		score += 20
	case metaLen >= 100 && metaLen <= 180:
		score += 15
	default:
		score += 5
	}

	switch {
	case titleLen >= 30 && titleLen <= 60:
		score += 15
	case titleLen >= 20 && titleLen <= 70:
		score += 10
	default:
		score += 5
	}

	if headings["h1"] == 1 {
		score += 10
	}
	if headings["h2"] >= 2 {
		score += 10
	}

	switch {
	case readability >= 60:
		score += 15
	case readability >= 40:
		score += 10
	default:
		score += 5
	}

	if score > 100 {
		return 100
	}
	return score
}

func recommendations(density map[string]float64, metaLen, titleLen int, headings map[string]int, readability float64, score int) []string {
	var recs []string

	if len(density) > 0 {
		sum := 0.0
		for _, d := range density {
			sum += d
		}
		avg := sum / float64(len(density))
		if avg < 1.0 {
			recs = append(recs, "Increase keyword density - aim for 1-3%")
		} else if avg > 3.0 {
			recs = append(recs, "Reduce keyword density - aim for 1-3%")
		}
	}

	if metaLen < 120 {
		recs = append(recs, "Meta description too short - aim for 120-160 characters")
	} else if metaLen > 160 {
		recs = append(recs, "Meta description too long - aim for 120-160 characters")
	}

	if titleLen < 30 {
		recs = append(recs, "Title too short - aim for 30-60 characters")
	} else if titleLen > 60 {
		recs = append(recs, "Title too long - aim for 30-60 characters")
	}

	if headings["h1"] != 1 {
		recs = append(recs, "Use exactly one H1 heading")
	}
	if headings["h2"] < 2 {
		recs = append(recs, "Add more H2 headings for better structure")
	}

	if readability < 40 {
		recs = append(recs, "Improve readability - use shorter sentences and simpler words")
	}

	if score < 60 {
		recs = append(recs, "Overall SEO score is low - review all recommendations")
	}

	return recs
}

// Optimize applies light fixes: lengthens short meta descriptions, nudges
// title length into range, prepends schema.org markup (when site info is
// configured), and works the primary keyword into the first paragraph.
func (a *Analyzer) Optimize(doc Document) Document {
	if len(doc.MetaDescription) < 120 {
		doc.MetaDescription = a.enhanceMetaDescription(doc)
	}
	if len(doc.Title) < 30 || len(doc.Title) > 60 {
		doc.Title = optimizeTitle(doc)
	}
	doc.Content = injectPrimaryKeyword(doc)
	if a.site.Name != "" {
		doc.Content = a.schemaMarkup(doc) + doc.Content
	}
	return doc
}

func (a *Analyzer) enhanceMetaDescription(doc Document) string {
	paragraphs := strings.Split(doc.Content, "\n\n")
	if len(paragraphs) == 0 {
		return doc.MetaDescription
	}

	first := markdownSyntax.ReplaceAllString(strings.TrimSpace(paragraphs[0]), "")
	topic := "technology solutions"
	if len(doc.Keywords) > 0 {
		topic = doc.Keywords[0]
	}

	enhanced := first + " Learn more about " + topic + "."
	if len(enhanced) > 160 {
		enhanced = enhanced[:157] + "..."
	}
	return enhanced
}

func optimizeTitle(doc Document) string {
	title := doc.Title

	if len(title) < 30 && len(doc.Keywords) > 0 {
		kw := doc.Keywords[0]
		if !strings.Contains(strings.ToLower(title), strings.ToLower(kw)) {
			title = title + ": " + titleCase(kw)
		}
	}

	if len(title) > 60 {
		words := strings.Fields(title)
		var kept []string
		length := 0
		for _, w := range words {
			if length+len(w)+1 > 60 {
				break
			}
			kept = append(kept, w)
			length += len(w) + 1
		}
		title = strings.Join(kept, " ")
		if !strings.HasSuffix(title, ".") && !strings.HasSuffix(title, "!") && !strings.HasSuffix(title, "?") {
			title += "..."
		}
	}

	return title
}

func injectPrimaryKeyword(doc Document) string {
	if len(doc.Keywords) == 0 {
		return doc.Content
	}
	primary := doc.Keywords[0]

	paragraphs := strings.SplitN(doc.Content, "\n\n", 2)
	first := paragraphs[0]
	if strings.Contains(strings.ToLower(first), strings.ToLower(primary)) {
		return doc.Content
	}

	enhanced := first + " " + titleCase(primary) + " matters here."
	if len(paragraphs) == 1 {
		return enhanced
	}
	return enhanced + "\n\n" + paragraphs[1]
}

func (a *Analyzer) schemaMarkup(doc Document) string {
	return fmt.Sprintf(`<script type="application/ld+json">
{
  "@context": "https://schema.org",
  "@type": "Article",
  "headline": %q,
  "description": %q,
  "author": {"@type": "Organization", "name": %q, "url": %q},
  "publisher": {"@type": "Organization", "name": %q, "logo": {"@type": "ImageObject", "url": %q}},
  "datePublished": %q,
  "dateModified": %q,
  "mainEntityOfPage": {"@type": "WebPage", "@id": %q},
  "keywords": %q
}
</script>
`,
		doc.Title, doc.MetaDescription,
		a.site.Name, a.site.URL,
		a.site.Name, a.site.LogoURL,
		doc.CreatedAt.Format(time.RFC3339), doc.CreatedAt.Format(time.RFC3339),
		a.site.URL+"/blog/"+doc.ID,
		strings.Join(doc.Keywords, ", "))
}
