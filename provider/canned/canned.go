// Package canned provides an offline TextGenerator that serves pre-written
// articles keyed by topic words found in the prompt. It needs no API key,
// which makes it useful for demos, local development, and as a fallback
// when no real provider is configured.
package canned

import (
	"context"
	"strings"

	"github.com/mhpenta/autoblogger"
)

// Generator implements TextGenerator with built-in content.
type Generator struct{}

var _ autoblogger.TextGenerator = (*Generator)(nil)

// New creates a canned generator.
func New() *Generator {
	return &Generator{}
}

// Generate returns the canned article whose topic best matches the prompt.
func (g *Generator) Generate(ctx context.Context, prompt string, config *autoblogger.GenerateConfig) (*autoblogger.GenerateResult, error) {
	if err := autoblogger.ValidatePrompt(prompt); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	content := contentForTopic(extractTopic(prompt))

	return &autoblogger.GenerateResult{
		Content: content,
		UsageMetadata: &autoblogger.UsageMetadata{
			PromptTokens:     len(strings.Fields(prompt)),
			CandidatesTokens: len(strings.Fields(content)),
			TotalTokens:      len(strings.Fields(prompt)) + len(strings.Fields(content)),
		},
	}, nil
}

// Models returns the single canned model.
func (g *Generator) Models() []autoblogger.ModelInfo {
	return []autoblogger.ModelInfo{CannedInfo}
}

// Close releases nothing; the generator holds no resources.
func (g *Generator) Close() error {
	return nil
}

// CannedInfo describes the offline model. No rate limits apply.
var CannedInfo = autoblogger.ModelInfo{
	Name:         "canned",
	Provider:     autoblogger.ProviderCanned,
	APIModelName: "canned",
}

// extractTopic finds the first known topic word in the prompt.
func extractTopic(prompt string) string {
	lower := strings.ToLower(prompt)
	for _, topic := range []string{"networking", "lighting", "automation", "security", "gardening"} {
		if strings.Contains(lower, topic) {
			return topic
		}
	}
	return ""
}

func contentForTopic(topic string) string {
	switch topic {
	case "networking":
		return networkingContent
	case "lighting":
		return lightingContent
	case "automation":
		return automationContent
	case "security":
		return securityContent
	case "gardening":
		return gardeningContent
	default:
		return defaultContent
	}
}

const networkingContent = `# Professional Networking Solutions for Modern Businesses

Transform your business with professional networking solutions that deliver reliable, high-speed connectivity. Modern business networking systems provide the foundation for productivity, collaboration, and growth in today's digital economy.

## Why Professional Networking Matters

A growing business depends on its network for everything from point-of-sale systems to video conferencing. Professionally designed networks provide:

- **Reliable Performance**: Enterprise-grade equipment sized for your actual load
- **Security Integration**: Advanced firewall and segmentation protocols
- **Scalable Architecture**: Room to grow without replacing the core
- **Centralized Management**: One dashboard for the whole infrastructure

## Core Components of a Business Network

### Structured Cabling

Clean, labeled, and documented cabling is the difference between a five-minute fix and a five-hour outage. Category 6A cabling supports current gigabit needs and future 10-gigabit upgrades.

### Enterprise Wireless

Business wireless goes beyond a single router. Controller-managed access points provide seamless roaming, guest isolation, and coverage engineered from a site survey rather than guesswork.

### Network Security

Comprehensive security for business networks includes:

- Next-generation firewalls with intrusion prevention
- VLAN segmentation separating guests, staff, and devices
- VPN access for remote workers
- Regular security audits and firmware updates

## Working With Professionals

Certified networking professionals ensure your system is designed for your space, documented for the future, and supported when something goes wrong. Look for installers who provide as-built documentation and ongoing monitoring.

## Conclusion

Professional networking installation transforms your business with reliable, secure connectivity. The investment pays dividends through improved productivity, enhanced security, and scalable growth. Start with a professional assessment of your current infrastructure and build from there.`

const lightingContent = `# Smart Lighting Control: Comfort, Efficiency, and Ambiance

Transform your home with intelligent lighting control systems that enhance comfort, efficiency, and ambiance. Modern smart lighting provides unprecedented control and energy savings while creating the perfect atmosphere for every occasion.

## The Case for Smart Lighting

Lighting is the most-used system in any home, and the one with the most untapped potential. Smart lighting delivers:

- **Energy Savings**: LED fixtures with occupancy sensing cut lighting costs dramatically
- **Scene Control**: One touch sets the whole room for dinner, movies, or reading
- **Scheduling**: Lights that follow your day, including vacation security patterns
- **Longevity**: Soft-start dimming extends bulb and fixture life

## Choosing a System

### Wireless Retrofit

Smart switches and bulbs replace existing hardware without rewiring. Ideal for existing homes, these systems install in a weekend and grow one room at a time.

### Centralized Control

New construction and major remodels can use panelized lighting, moving the switching hardware to a closet and leaving elegant keypads on the wall.

## Design Tips That Matter

- Layer ambient, task, and accent lighting rather than relying on one bright source
- Put exterior lights on astronomic schedules that track sunset year-round
- Use warm dimming in bedrooms and living spaces for better evenings
- Keep manual overrides obvious so guests are never confused

## Getting Started

Begin with the rooms you use most. A living room scene controller and a few dimmers demonstrate the value immediately, and every major platform allows expansion later.

## Conclusion

Smart lighting control is one of the highest-impact upgrades available for a modern home. With thoughtful design and professional installation, it delivers daily comfort and measurable energy savings for years.`

const automationContent = `# Home Automation: A Practical Guide to a Smarter Home

Home automation has matured from novelty to necessity. A well-designed smart home saves energy, improves security, and removes daily friction, all while staying simple enough for every member of the household to use.

## What Automation Actually Does

The best automations are the ones you stop noticing:

- Thermostats that learn your schedule and trim heating and cooling costs
- Locks that secure themselves when the last person leaves
- Lights that greet you in the evening and shut off behind you
- Shades that track the sun to cut glare and heat

## Building on a Solid Foundation

### Start With the Network

Every smart device depends on reliable wireless coverage. Before adding devices, make sure your network reaches every corner where a sensor or switch will live.

### Pick a Platform

Choose one primary control platform and buy devices certified for it. A single well-integrated system beats a drawer full of separate apps.

### Automate Gradually

Begin with schedules and simple triggers. Add presence-based and sensor-driven automation once the basics have earned the household's trust.

## Common Mistakes to Avoid

- Automating before fixing weak Wi-Fi coverage
- Mixing incompatible ecosystems and hoping a bridge will fix it
- Removing manual controls that family and guests expect
- Ignoring battery maintenance on wireless sensors

## Conclusion

A smart home is built, not bought. Start with a reliable network, choose a coherent platform, and add automation where it removes real friction. The result is a home that quietly works for you every day.`

const securityContent = `# Modern Home Security: Layers That Actually Protect

Effective home security is built in layers, from deterrence at the curb to detection inside the home. Modern systems combine cameras, sensors, and smart integration to protect what matters without turning your home into a fortress.

## The Layered Approach

### Deterrence

Visible cameras, good exterior lighting, and signage stop most problems before they start. Motion-activated lighting at entries is the cheapest security upgrade available.

### Perimeter Detection

Door and window sensors remain the backbone of any alarm system. Glass-break detectors cover the gaps, and smart locks report whether doors are actually secured.

### Video Verification

Modern cameras do more than record:

- **Person Detection**: Alerts for people, not headlights and house cats
- **Package Monitoring**: Notifications when deliveries arrive and when they leave
- **Two-Way Audio**: Speak to visitors from anywhere
- **Local and Cloud Storage**: Footage survives both outages and theft

## Professional Monitoring vs. Self-Monitoring

Professional monitoring dispatches help when you cannot respond; self-monitoring costs nothing but depends entirely on your attention. Many households combine both, with professional coverage during travel.

## Privacy Considerations

Keep cameras outside or in clearly public areas of the home, secure every device with unique credentials, and prefer systems that support local storage for sensitive areas.

## Conclusion

Security is a system, not a gadget. Combine deterrence, detection, and verification in layers, keep the system maintained, and it will protect your home for years with very little daily attention.`

const gardeningContent = `# Sustainable Gardening: Eco-Friendly Practices for Every Space

As interest in sustainability grows, gardeners are leading the charge in creating environmentally friendly spaces that beautify neighborhoods while contributing to a healthier planet. Sustainable gardening works with nature rather than against it.

## Why Sustainable Gardening Matters

Sustainable gardening goes beyond growing plants. It builds ecosystems that support local wildlife, reduce waste, and minimize environmental impact, whether you tend a suburban yard or a balcony of containers.

## Essential Practices

### Choose Native Plants

Native plants are adapted to your local climate and require less water, fertilizer, and maintenance, while providing essential habitat for local wildlife and pollinators.

### Compost Kitchen Scraps

Turn food waste into nutrient-rich compost. A simple bin diverts waste from the landfill and produces free fertilizer for your beds.

### Collect Rainwater

Rain barrels capture roof runoff for irrigation, cutting water bills and easing pressure on municipal supplies during dry spells.

### Use Organic Pest Control

Companion planting, beneficial insects, and organic sprays handle most pest problems without harming the pollinators your garden depends on.

### Mulch Everything

Mulch retains moisture, suppresses weeds, and feeds the soil as it breaks down. Two to three inches around plantings transforms water use.

## Getting Started

Start small. A few containers of herbs, one compost bin, and a single rain barrel teach the rhythms of sustainable gardening without overwhelming a beginner. Expand as each practice becomes habit.

## Conclusion

Every sustainable choice compounds. Native plants feed the pollinators that improve your harvest; compost feeds the soil that reduces your watering. Begin with one change this season and build a garden that gives back more than it takes.`

const defaultContent = `# Getting More From Modern Technology: A Practical Guide

Technology promises convenience but often delivers complexity. The difference between the two is planning: understanding what you need, choosing tools that work together, and adopting them at a pace that sticks.

## Start With the Problem

The best technology purchases begin with a problem, not a product. Before buying anything, write down what currently wastes your time or money. Solutions chosen this way get used; gadgets bought on impulse gather dust.

## Principles That Apply Everywhere

### Buy Systems, Not Gadgets

Devices that share a platform multiply each other's value. Devices that each demand their own app multiply frustration instead.

### Favor Open Standards

Products built on open standards outlive their manufacturers' attention spans. Proprietary ecosystems are bets on a single company's roadmap.

### Plan for Maintenance

Everything with firmware needs updates. Choose products from vendors with a track record of long support windows, and schedule a quarterly hour to apply updates.

## Making Changes Stick

- Introduce one change at a time and live with it for a month
- Keep the old way working until the new way has earned trust
- Document what you set up, including passwords and settings, somewhere you will find them in two years

## When to Bring in Professionals

Complex installations reward professional design: whole-home networks, integrated security, and anything involving wiring inside walls. The cost of expert help is small against the cost of redoing amateur work.

## Conclusion

Technology serves you best when chosen deliberately, installed properly, and maintained regularly. Solve real problems, favor coherent systems, and upgrade at the pace of your own confidence.`
