package batchgen

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"flowz-server/internal/domain"
)

// buildFieldPrompt constructs the text prompt for a single non-image field.
// SEO fields are seeded with the product title so generated metadata stays
// anchored to the catalog entry.
func buildFieldPrompt(field domain.FieldType, pc domain.ProductContext, s domain.GenerationSettings) string {
	sb := &strings.Builder{}
	fmt.Fprintf(sb, "You are an e-commerce copywriter. Write in a %s tone, language %q.\n", s.Tone, s.Language)
	writeProductBlock(sb, pc)

	switch field {
	case domain.FieldTitle:
		fmt.Fprintf(sb, "Task: write a product title of at most %d words.", s.TitleMaxWords)
	case domain.FieldShortDescription:
		fmt.Fprintf(sb, "Task: write a short product description of at most %d words.", s.ShortDescMaxWords)
	case domain.FieldDescription:
		fmt.Fprintf(sb, "Task: write a detailed product description of at most %d words.", s.DescMaxWords)
	case domain.FieldSEOTitle:
		fmt.Fprintf(sb, "Task: write an SEO page title (max 60 characters) for the product %q.", pc.Title)
	case domain.FieldMetaDescription:
		fmt.Fprintf(sb, "Task: write an SEO meta description (max 160 characters) for the product %q.", pc.Title)
	case domain.FieldSKU:
		fmt.Fprintf(sb, "Task: propose a SKU following the %q format, based on category %q and title %q.",
			s.SKUFormat, firstCategory(pc), pc.Title)
	}

	sb.WriteString("\nRespond with the final text only: no quotes, no markdown, no explanations.")
	return sb.String()
}

// buildAltTextPrompt constructs the alt-text prompt for one product image.
// When withImage is true the image bytes accompany the prompt as a vision
// part; otherwise the model works from the product context alone.
func buildAltTextPrompt(pc domain.ProductContext, s domain.GenerationSettings, imageURL string, withImage bool) string {
	sb := &strings.Builder{}
	fmt.Fprintf(sb, "You are an accessibility specialist. Write in language %q.\n", s.Language)
	writeProductBlock(sb, pc)
	if withImage {
		sb.WriteString("Task: write concise alt text (max 125 characters) describing the attached product image.")
	} else {
		fmt.Fprintf(sb, "Task: write concise alt text (max 125 characters) for the product image at %s.", imageURL)
	}
	sb.WriteString("\nRespond with the final text only: no quotes, no markdown, no explanations.")
	return sb.String()
}

func writeProductBlock(sb *strings.Builder, pc domain.ProductContext) {
	fmt.Fprintf(sb, "Product: %s\n", displayTitle(pc))
	if pc.ShortDescription != "" {
		fmt.Fprintf(sb, "Summary: %s\n", pc.ShortDescription)
	}
	if pc.Description != "" {
		fmt.Fprintf(sb, "Details: %s\n", pc.Description)
	}
	if pc.Price > 0 {
		fmt.Fprintf(sb, "Price: %.2f\n", pc.Price)
	}
	if pc.SKU != "" {
		fmt.Fprintf(sb, "Current SKU: %s\n", pc.SKU)
	}
	if len(pc.Categories) > 0 {
		fmt.Fprintf(sb, "Categories: %s\n", strings.Join(pc.Categories, ", "))
	}
	if len(pc.Tags) > 0 {
		fmt.Fprintf(sb, "Tags: %s\n", strings.Join(pc.Tags, ", "))
	}
	for key, value := range pc.Attributes {
		fmt.Fprintf(sb, "Attribute %s: %s\n", key, value)
	}
}

func displayTitle(pc domain.ProductContext) string {
	title := strings.TrimSpace(pc.Title)
	if title != "" {
		return title
	}
	if cat := firstCategory(pc); cat != "" {
		return cases.Title(language.Und).String(cat) + " product"
	}
	return "Untitled product"
}

func firstCategory(pc domain.ProductContext) string {
	if len(pc.Categories) > 0 {
		return pc.Categories[0]
	}
	return ""
}

// sanitizeResult normalizes raw model output into a storable field value:
// code fences, wrapping quotes and surrounding whitespace are stripped.
func sanitizeResult(raw string) string {
	text := trimCodeFence(strings.TrimSpace(raw))
	text = strings.Trim(text, "\"'")
	return strings.TrimSpace(text)
}

func trimCodeFence(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSpace(text)
	if idx := strings.LastIndex(text, "```"); idx >= 0 {
		text = text[:idx]
	}
	return strings.TrimSpace(text)
}

// previewMaxLen bounds the preview string carried on field_complete events.
const previewMaxLen = 100

func preview(text string) string {
	if len(text) <= previewMaxLen {
		return text
	}
	return text[:previewMaxLen]
}
