package domain

import (
	"encoding/json"
	"strings"
	"time"
)

// ProductImage is one image attached to a product draft.
type ProductImage struct {
	URL string `json:"url"`
	Alt string `json:"alt,omitempty"`
}

// Product mirrors the catalog row the orchestrator reads. WorkingContent is
// the live published content; DraftContent holds not-yet-published,
// AI-proposed values.
type Product struct {
	ID             string
	StoreID        string
	Title          string
	SKU            string
	Price          float64
	ImageURL       string
	Categories     []string
	Tags           []string
	Attributes     map[string]string
	WorkingContent map[string]any
	DraftContent   map[string]any
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ProductVersion is a stored snapshot of a product's draft content. Versions
// are plain rows; restore copies a snapshot back into the draft.
type ProductVersion struct {
	ID        string
	ProductID string
	Version   int
	Snapshot  json.RawMessage
	CreatedBy string
	CreatedAt time.Time
}

// ProductContext is the normalized input handed to the prompt builder. Every
// field falls back through working content to catalog metadata.
type ProductContext struct {
	ProductID        string
	Title            string
	ShortDescription string
	Description      string
	SKU              string
	Price            float64
	ImageURL         string
	Categories       []string
	Tags             []string
	Attributes       map[string]string
	Images           []ProductImage
}

// BuildProductContext flattens a product row into the context used for
// prompt construction, preferring working content over catalog metadata.
func BuildProductContext(p *Product) ProductContext {
	ctx := ProductContext{
		ProductID:  p.ID,
		Title:      p.Title,
		SKU:        p.SKU,
		Price:      p.Price,
		ImageURL:   p.ImageURL,
		Categories: p.Categories,
		Tags:       p.Tags,
		Attributes: p.Attributes,
	}
	wc := p.WorkingContent
	if v := contentString(wc, "title"); v != "" {
		ctx.Title = v
	}
	ctx.ShortDescription = contentString(wc, "short_description")
	ctx.Description = contentString(wc, "description")
	if v := contentString(wc, "sku"); v != "" {
		ctx.SKU = v
	}
	if v, ok := wc["price"].(float64); ok && v > 0 {
		ctx.Price = v
	}
	ctx.Images = contentImages(wc)
	if len(ctx.Images) > 0 && ctx.ImageURL == "" {
		ctx.ImageURL = ctx.Images[0].URL
	}
	return ctx
}

func contentString(content map[string]any, key string) string {
	if content == nil {
		return ""
	}
	v, _ := content[key].(string)
	return strings.TrimSpace(v)
}

func contentImages(content map[string]any) []ProductImage {
	raw, ok := content["images"].([]any)
	if !ok {
		return nil
	}
	var images []ProductImage
	for _, entry := range raw {
		m, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		img := ProductImage{}
		img.URL, _ = m["url"].(string)
		img.Alt, _ = m["alt"].(string)
		if strings.TrimSpace(img.URL) == "" {
			continue
		}
		images = append(images, img)
	}
	return images
}
