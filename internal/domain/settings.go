package domain

import "strings"

// Generation defaults applied by GenerationSettings.Normalize.
const (
	DefaultTone                = "professional"
	DefaultLanguage            = "en"
	DefaultTitleMaxWords       = 15
	DefaultShortDescMaxWords   = 50
	DefaultDescriptionMaxWords = 200
	MaxTitleWordsCeiling       = 30
	MaxShortDescWordsCeiling   = 120
	MaxDescriptionWordsCeiling = 600
	DefaultSKUFormat           = "category-number"
)

// GenerationSettings carries the knobs a batch run applies to every prompt.
type GenerationSettings struct {
	Model             string `json:"model"`
	Tone              string `json:"tone"`
	Language          string `json:"language"`
	TitleMaxWords     int    `json:"title_max_words"`
	ShortDescMaxWords int    `json:"short_description_max_words"`
	DescMaxWords      int    `json:"description_max_words"`
	SKUFormat         string `json:"sku_format"`
	ImageAnalysis     bool   `json:"image_analysis"`
}

// Normalize fills defaults and clamps limits. The preferred locale, resolved
// from the request, becomes the generation language unless one was chosen
// explicitly.
func (s *GenerationSettings) Normalize(preferredLocale string) {
	if s == nil {
		return
	}
	s.Tone = strings.TrimSpace(s.Tone)
	if s.Tone == "" {
		s.Tone = DefaultTone
	}
	s.Language = strings.TrimSpace(strings.ToLower(s.Language))
	if s.Language == "" {
		s.Language = strings.TrimSpace(strings.ToLower(preferredLocale))
	}
	if s.Language == "" {
		s.Language = DefaultLanguage
	}
	if s.TitleMaxWords <= 0 {
		s.TitleMaxWords = DefaultTitleMaxWords
	}
	if s.TitleMaxWords > MaxTitleWordsCeiling {
		s.TitleMaxWords = MaxTitleWordsCeiling
	}
	if s.ShortDescMaxWords <= 0 {
		s.ShortDescMaxWords = DefaultShortDescMaxWords
	}
	if s.ShortDescMaxWords > MaxShortDescWordsCeiling {
		s.ShortDescMaxWords = MaxShortDescWordsCeiling
	}
	if s.DescMaxWords <= 0 {
		s.DescMaxWords = DefaultDescriptionMaxWords
	}
	if s.DescMaxWords > MaxDescriptionWordsCeiling {
		s.DescMaxWords = MaxDescriptionWordsCeiling
	}
	if strings.TrimSpace(s.SKUFormat) == "" {
		s.SKUFormat = DefaultSKUFormat
	}
}
