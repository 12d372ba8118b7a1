package autoblogger

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"
)

// Variation pools keep repeated generations for the same blog from
// collapsing into near-duplicate articles.
var (
	angleVariations = []string{
		"comprehensive guide",
		"detailed analysis",
		"practical tips and insights",
		"expert recommendations",
		"step-by-step approach",
		"in-depth exploration",
		"professional advice",
		"industry best practices",
	}

	focusVariations = []string{
		"focusing on practical applications",
		"emphasizing real-world benefits",
		"highlighting key advantages",
		"covering essential aspects",
		"providing actionable insights",
		"addressing common challenges",
		"offering expert solutions",
		"delivering valuable information",
	}

	trendingContexts = []string{
		"current trends and developments",
		"emerging technologies and solutions",
		"latest industry insights",
		"modern approaches and techniques",
		"contemporary best practices",
		"cutting-edge strategies",
		"innovative solutions",
		"advanced methodologies",
	}
)

func timeVariations(now time.Time, audience string) []string {
	return []string{
		fmt.Sprintf("in %d", now.Year()),
		fmt.Sprintf("for %s", now.Format("January 2006")),
		"in the current market",
		fmt.Sprintf("for today's %s", audience),
		"in the modern era",
	}
}

// nicheTopics maps well-known niches to concrete article topics. Niches
// without an entry get generic variations derived from the niche itself.
var nicheTopics = map[string][]string{
	"smart home technology and automation": {
		"smart home security systems",
		"home automation for energy efficiency",
		"voice-controlled smart devices",
		"smart lighting solutions",
		"home theater automation",
		"smart home networking",
		"commercial AV integration",
		"smart home maintenance",
	},
	"sustainable gardening": {
		"eco-friendly gardening techniques",
		"organic pest control methods",
		"water-efficient gardening",
		"composting for beginners",
		"native plant landscaping",
		"seasonal garden planning",
		"pollinator-friendly gardens",
		"urban gardening solutions",
	},
}

func topicVariations(niche string) []string {
	if topics, ok := nicheTopics[strings.ToLower(niche)]; ok {
		return topics
	}
	return []string{
		fmt.Sprintf("advanced %s techniques", niche),
		fmt.Sprintf("beginner-friendly %s", niche),
		fmt.Sprintf("%s best practices", niche),
		fmt.Sprintf("common %s mistakes", niche),
		fmt.Sprintf("%s troubleshooting", niche),
		fmt.Sprintf("professional %s services", niche),
		fmt.Sprintf("%s cost analysis", niche),
		fmt.Sprintf("%s maintenance tips", niche),
	}
}

func pick(items []string) string {
	return items[rand.IntN(len(items))]
}

// buildPrompt assembles the generation prompt for a blog from its config,
// with rotating topic, angle and focus elements.
func buildPrompt(blog *BlogConfig) string {
	now := time.Now()

	topic := pick(topicVariations(blog.Niche))
	angle := pick(angleVariations)
	focus := pick(focusVariations)
	trending := pick(trendingContexts)
	timeContext := pick(timeVariations(now, blog.TargetAudience))

	var b strings.Builder
	fmt.Fprintf(&b, "Write a %s about %s %s.\n\n", angle, topic, timeContext)
	fmt.Fprintf(&b, "Target audience: %s\n", blog.TargetAudience)
	fmt.Fprintf(&b, "Tone: %s\n", blog.Tone)
	fmt.Fprintf(&b, "Word count: approximately %d words\n", blog.WordCount)
	fmt.Fprintf(&b, "Keywords to include: %s\n\n", strings.Join(blog.Keywords, ", "))

	b.WriteString("The article should be:\n")
	b.WriteString("- Well-structured with clear headings\n")
	b.WriteString("- Informative and engaging\n")
	b.WriteString("- SEO-friendly with natural keyword integration\n")
	b.WriteString("- Practical and actionable\n")
	fmt.Fprintf(&b, "- %s\n", focus)
	fmt.Fprintf(&b, "- Covering %s\n\n", trending)

	b.WriteString("Format the article with proper headings (H2, H3) and include:\n")
	b.WriteString("- An engaging introduction that hooks the reader\n")
	b.WriteString("- Main content sections with subheadings\n")
	b.WriteString("- Practical tips or actionable advice\n")
	b.WriteString("- A compelling conclusion with clear next steps\n\n")

	if blog.BusinessName != "" {
		fmt.Fprintf(&b, "Written for %s", blog.BusinessName)
		if blog.ServiceAreas != "" {
			fmt.Fprintf(&b, ", serving %s", blog.ServiceAreas)
		}
		b.WriteString(".\n\n")
	}

	b.WriteString("Do not include any meta information or instructions in the output - just the article content.")
	return b.String()
}

// enhanceCustomPrompt appends freshness directives to a user-supplied
// prompt so repeated runs diverge.
func enhanceCustomPrompt(customPrompt string) string {
	now := time.Now()

	var b strings.Builder
	b.WriteString(strings.TrimSpace(customPrompt))
	b.WriteString("\n\nIMPORTANT: Make this article unique and fresh by:\n")
	fmt.Fprintf(&b, "- %s\n", pick(focusVariations))
	fmt.Fprintf(&b, "- Covering %s\n", pick(trendingContexts))
	fmt.Fprintf(&b, "- Writing as a %s %s\n", pick(angleVariations), pick(timeVariations(now, "readers")))
	b.WriteString("- Including specific examples and real-world applications\n")
	b.WriteString("- Providing actionable insights readers can implement immediately\n")
	return b.String()
}
