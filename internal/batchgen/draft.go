package batchgen

import (
	"flowz-server/internal/domain"
)

// FieldDraft accumulates the values generated for one product during a
// single loop iteration. It is merged into the product's stored draft and
// then discarded.
type FieldDraft struct {
	Title            string
	ShortDescription string
	Description      string
	SEOTitle         string
	SEODescription   string
	SKU              string
	Images           []domain.ProductImage
}

func (d *FieldDraft) setField(field domain.FieldType, value string) {
	switch field {
	case domain.FieldTitle:
		d.Title = value
	case domain.FieldShortDescription:
		d.ShortDescription = value
	case domain.FieldDescription:
		d.Description = value
	case domain.FieldSEOTitle:
		d.SEOTitle = value
	case domain.FieldMetaDescription:
		d.SEODescription = value
	case domain.FieldSKU:
		d.SKU = value
	}
}

// MergeDraft folds a field draft into existing draft content without
// touching unrelated keys. Scalar fields shallow-merge, SEO values nest
// under "seo", and a generated image set replaces the "images" array
// wholesale.
func MergeDraft(existing map[string]any, d *FieldDraft) map[string]any {
	merged := make(map[string]any, len(existing)+4)
	for k, v := range existing {
		merged[k] = v
	}

	if d.Title != "" {
		merged["title"] = d.Title
	}
	if d.ShortDescription != "" {
		merged["short_description"] = d.ShortDescription
	}
	if d.Description != "" {
		merged["description"] = d.Description
	}
	if d.SKU != "" {
		merged["sku"] = d.SKU
	}

	if d.SEOTitle != "" || d.SEODescription != "" {
		seo := make(map[string]any)
		if prev, ok := merged["seo"].(map[string]any); ok {
			for k, v := range prev {
				seo[k] = v
			}
		}
		if d.SEOTitle != "" {
			seo["title"] = d.SEOTitle
		}
		if d.SEODescription != "" {
			seo["description"] = d.SEODescription
		}
		merged["seo"] = seo
	}

	if d.Images != nil {
		images := make([]any, 0, len(d.Images))
		for _, img := range d.Images {
			entry := map[string]any{"url": img.URL}
			if img.Alt != "" {
				entry["alt"] = img.Alt
			}
			images = append(images, entry)
		}
		merged["images"] = images
	}

	return merged
}
