package batchgen

import (
	"reflect"
	"testing"

	"flowz-server/internal/domain"
)

func TestMergeDraftPreservesUnknownKeys(t *testing.T) {
	existing := map[string]any{
		"title":        "Old Title",
		"custom_field": "kept",
		"seo":          map[string]any{"keywords": "desk, walnut"},
	}
	merged := MergeDraft(existing, &FieldDraft{
		Title:    "New Title",
		SEOTitle: "Walnut Desk Organizer | Shop",
	})

	if merged["title"] != "New Title" {
		t.Fatalf("title = %v", merged["title"])
	}
	if merged["custom_field"] != "kept" {
		t.Fatalf("custom_field = %v", merged["custom_field"])
	}
	seo, ok := merged["seo"].(map[string]any)
	if !ok {
		t.Fatalf("seo = %T", merged["seo"])
	}
	if seo["keywords"] != "desk, walnut" {
		t.Fatalf("seo.keywords = %v", seo["keywords"])
	}
	if seo["title"] != "Walnut Desk Organizer | Shop" {
		t.Fatalf("seo.title = %v", seo["title"])
	}
	// The input map must not be mutated.
	if existing["title"] != "Old Title" {
		t.Fatalf("existing mutated: %v", existing["title"])
	}
}

func TestMergeDraftEmptyFieldsLeaveExisting(t *testing.T) {
	existing := map[string]any{"title": "Kept", "sku": "SKU-1"}
	merged := MergeDraft(existing, &FieldDraft{})
	if !reflect.DeepEqual(merged, existing) {
		t.Fatalf("merged = %v, want %v", merged, existing)
	}
}

func TestMergeDraftReplacesImagesWholesale(t *testing.T) {
	existing := map[string]any{
		"images": []any{
			map[string]any{"url": "https://cdn.example.com/old.jpg", "alt": "old"},
			map[string]any{"url": "https://cdn.example.com/stale.jpg"},
		},
	}
	merged := MergeDraft(existing, &FieldDraft{
		Images: []domain.ProductImage{
			{URL: "https://cdn.example.com/a.jpg", Alt: "new alt"},
		},
	})
	images, ok := merged["images"].([]any)
	if !ok {
		t.Fatalf("images = %T", merged["images"])
	}
	if len(images) != 1 {
		t.Fatalf("images length = %d, want 1", len(images))
	}
	entry := images[0].(map[string]any)
	if entry["url"] != "https://cdn.example.com/a.jpg" || entry["alt"] != "new alt" {
		t.Fatalf("entry = %v", entry)
	}
}

func TestMergeDraftSEODescriptionOnly(t *testing.T) {
	merged := MergeDraft(nil, &FieldDraft{SEODescription: "Meta text"})
	seo, ok := merged["seo"].(map[string]any)
	if !ok {
		t.Fatalf("seo = %T", merged["seo"])
	}
	if seo["description"] != "Meta text" {
		t.Fatalf("seo.description = %v", seo["description"])
	}
	if _, present := seo["title"]; present {
		t.Fatal("seo.title must not be set")
	}
}
