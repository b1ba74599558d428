package batchgen

import (
	"strings"
	"testing"

	"flowz-server/internal/domain"
)

func promptSettings() domain.GenerationSettings {
	s := domain.GenerationSettings{Tone: "playful", Language: "id", TitleMaxWords: 12}
	s.Normalize("id")
	return s
}

func TestBuildFieldPromptCarriesLimits(t *testing.T) {
	pc := domain.ProductContext{Title: "Walnut Desk Organizer", Categories: []string{"office"}}
	s := promptSettings()

	title := buildFieldPrompt(domain.FieldTitle, pc, s)
	if !strings.Contains(title, "at most 12 words") {
		t.Fatalf("title prompt missing limit: %q", title)
	}
	if !strings.Contains(title, "playful") || !strings.Contains(title, `"id"`) {
		t.Fatalf("title prompt missing tone or language: %q", title)
	}

	seoTitle := buildFieldPrompt(domain.FieldSEOTitle, pc, s)
	if !strings.Contains(seoTitle, "max 60 characters") || !strings.Contains(seoTitle, "Walnut Desk Organizer") {
		t.Fatalf("seo title prompt = %q", seoTitle)
	}

	meta := buildFieldPrompt(domain.FieldMetaDescription, pc, s)
	if !strings.Contains(meta, "max 160 characters") {
		t.Fatalf("meta prompt = %q", meta)
	}

	sku := buildFieldPrompt(domain.FieldSKU, pc, s)
	if !strings.Contains(sku, "category-number") || !strings.Contains(sku, "office") {
		t.Fatalf("sku prompt = %q", sku)
	}
}

func TestBuildAltTextPromptModes(t *testing.T) {
	pc := domain.ProductContext{Title: "Walnut Desk Organizer"}
	s := promptSettings()

	withImage := buildAltTextPrompt(pc, s, "https://cdn.example.com/a.jpg", true)
	if !strings.Contains(withImage, "attached product image") {
		t.Fatalf("vision prompt = %q", withImage)
	}
	withoutImage := buildAltTextPrompt(pc, s, "https://cdn.example.com/a.jpg", false)
	if !strings.Contains(withoutImage, "https://cdn.example.com/a.jpg") {
		t.Fatalf("text prompt = %q", withoutImage)
	}
}

func TestDisplayTitleFallsBackToCategory(t *testing.T) {
	pc := domain.ProductContext{Categories: []string{"garden tools"}}
	if got := displayTitle(pc); got != "Garden Tools product" {
		t.Fatalf("displayTitle = %q", got)
	}
	if got := displayTitle(domain.ProductContext{}); got != "Untitled product" {
		t.Fatalf("displayTitle = %q", got)
	}
}

func TestSanitizeResult(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"  Plain title  ", "Plain title"},
		{`"Quoted title"`, "Quoted title"},
		{"```json\nFenced value\n```", "Fenced value"},
		{"```\nFenced value\n```", "Fenced value"},
		{"'Single quoted'", "Single quoted"},
	}
	for _, tc := range cases {
		if got := sanitizeResult(tc.in); got != tc.want {
			t.Fatalf("sanitizeResult(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestPreviewTruncates(t *testing.T) {
	long := strings.Repeat("a", 250)
	if got := preview(long); len(got) != previewMaxLen {
		t.Fatalf("preview length = %d, want %d", len(got), previewMaxLen)
	}
	if got := preview("short"); got != "short" {
		t.Fatalf("preview = %q", got)
	}
}
