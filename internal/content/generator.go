package content

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/angelmondragon/storefrontz-backend/pkg/logger"
)

// Input carries the structured business facts the generator writes copy from.
type Input struct {
	BusinessName        string
	BusinessType        string
	Location            string
	Services            []string
	TargetAudience      string
	ExistingDescription string
}

// GeneratedContent is the marketing copy produced for a store. Every field is
// always populated: missing or unusable model output is replaced field-by-field
// with the deterministic template built from the input.
type GeneratedContent struct {
	Description        string
	Tagline            string
	Policies           []string
	MarketingContent   string
	PricingSuggestions []string
	UsedFallback       bool
}

// TextGenerator is the outbound capability the generator depends on.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// Generator produces store marketing copy. Generate never returns an error:
// generation failures degrade to template content.
type Generator interface {
	Generate(ctx context.Context, input Input) GeneratedContent
}

type generator struct {
	textGen TextGenerator
	log     *logger.Logger
}

// NewGenerator builds a content generator over the provided text capability.
func NewGenerator(textGen TextGenerator, log *logger.Logger) (Generator, error) {
	if textGen == nil {
		return nil, fmt.Errorf("text generator required")
	}
	return &generator{textGen: textGen, log: log}, nil
}

const fallbackTagline = "Quality Service Always"

var fallbackPolicies = []string{
	"Customer satisfaction guaranteed",
	"Professional and reliable service",
	"Competitive pricing",
	"Quality assured",
}

func (g *generator) Generate(ctx context.Context, input Input) GeneratedContent {
	raw, err := g.textGen.GenerateText(ctx, buildPrompt(input))
	if err != nil {
		g.warn(ctx, "content generation call failed, using fallback copy", err)
		return g.fallbackContent(input, false)
	}

	obj, ok := firstJSONObject(raw)
	if !ok {
		g.warn(ctx, "content generation response has no JSON object, using fallback copy", nil)
		return g.fallbackContent(input, true)
	}

	var parsed struct {
		Description        string   `json:"description"`
		Tagline            string   `json:"tagline"`
		Policies           []string `json:"policies"`
		MarketingContent   string   `json:"marketingContent"`
		PricingSuggestions []string `json:"pricingSuggestions"`
	}
	if err := json.Unmarshal([]byte(obj), &parsed); err != nil {
		g.warn(ctx, "content generation response unparsable, using fallback copy", err)
		return g.fallbackContent(input, true)
	}

	out := GeneratedContent{
		Description:        strings.TrimSpace(parsed.Description),
		Tagline:            strings.TrimSpace(parsed.Tagline),
		Policies:           trimAll(parsed.Policies),
		MarketingContent:   strings.TrimSpace(parsed.MarketingContent),
		PricingSuggestions: trimAll(parsed.PricingSuggestions),
	}
	if out.Description == "" {
		out.Description = fallbackDescription(input, false)
		out.UsedFallback = true
	}
	if out.Tagline == "" {
		out.Tagline = fallbackTagline
		out.UsedFallback = true
	}
	if len(out.Policies) == 0 {
		out.Policies = append([]string(nil), fallbackPolicies...)
		out.UsedFallback = true
	}
	if out.MarketingContent == "" {
		out.MarketingContent = fallbackMarketing(input)
		out.UsedFallback = true
	}
	return out
}

// fallbackContent is the wholesale template used when the call or the parse
// fails. Parse failures get a slightly longer description so the page still
// reads like copy instead of a bare greeting.
func (g *generator) fallbackContent(input Input, parseFailure bool) GeneratedContent {
	return GeneratedContent{
		Description:      fallbackDescription(input, parseFailure),
		Tagline:          fallbackTagline,
		Policies:         append([]string(nil), fallbackPolicies...),
		MarketingContent: fallbackMarketing(input),
		UsedFallback:     true,
	}
}

func fallbackDescription(input Input, parseFailure bool) string {
	desc := fmt.Sprintf("Welcome to %s - your trusted %s in %s.", input.BusinessName, input.BusinessType, input.Location)
	if parseFailure {
		desc += " We provide excellent service with professional expertise."
	}
	return desc
}

func fallbackMarketing(input Input) string {
	return fmt.Sprintf("Visit %s for the best %s services in %s!", input.BusinessName, input.BusinessType, input.Location)
}

func buildPrompt(input Input) string {
	audience := strings.TrimSpace(input.TargetAudience)
	if audience == "" {
		audience = "Local customers"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Create professional business content for this %s business:\n\n", input.BusinessType)
	fmt.Fprintf(&sb, "Business Name: %s\n", input.BusinessName)
	fmt.Fprintf(&sb, "Business Type: %s\n", input.BusinessType)
	fmt.Fprintf(&sb, "Location: %s\n", input.Location)
	fmt.Fprintf(&sb, "Services: %s\n", strings.Join(input.Services, ", "))
	fmt.Fprintf(&sb, "Target Audience: %s\n", audience)
	if desc := strings.TrimSpace(input.ExistingDescription); desc != "" {
		fmt.Fprintf(&sb, "Existing Description: %s\n", desc)
	}
	sb.WriteString("\nGenerate realistic, industry-specific content in JSON format:\n")
	sb.WriteString("{\n")
	sb.WriteString("  \"description\": \"A compelling 2-3 sentence business description that highlights what makes this business special and trustworthy\",\n")
	sb.WriteString("  \"tagline\": \"A catchy, memorable tagline (max 8 words)\",\n")
	sb.WriteString("  \"policies\": [\n")
	fmt.Fprintf(&sb, "    \"Professional policy relevant to %s\",\n", input.BusinessType)
	sb.WriteString("    \"Customer service policy\",\n")
	sb.WriteString("    \"Quality assurance policy\",\n")
	sb.WriteString("    \"Pricing/warranty policy\"\n")
	sb.WriteString("  ],\n")
	sb.WriteString("  \"marketingContent\": \"An engaging promotional message that encourages customers to choose this business (1-2 sentences)\"\n")
	sb.WriteString("}\n\n")
	fmt.Fprintf(&sb, "Make it specific to %s businesses and relevant to %s. Use professional, engaging language that builds trust.", input.BusinessType, input.Location)
	return sb.String()
}

// firstJSONObject extracts the first balanced top-level JSON object from free
// text, skipping braces inside string literals.
func firstJSONObject(text string) (string, bool) {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return "", false
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}
	return "", false
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		out = append(out, v)
	}
	return out
}

func (g *generator) warn(ctx context.Context, msg string, err error) {
	if g.log == nil {
		return
	}
	if err != nil {
		g.log.Error(ctx, msg, err)
		return
	}
	g.log.Warn(ctx, msg)
}
