package domain

import "testing"

func TestNormalizeFillsDefaults(t *testing.T) {
	s := &GenerationSettings{}
	s.Normalize("")

	if s.Tone != DefaultTone {
		t.Fatalf("Tone = %q, want %q", s.Tone, DefaultTone)
	}
	if s.Language != DefaultLanguage {
		t.Fatalf("Language = %q, want %q", s.Language, DefaultLanguage)
	}
	if s.TitleMaxWords != DefaultTitleMaxWords {
		t.Fatalf("TitleMaxWords = %d, want %d", s.TitleMaxWords, DefaultTitleMaxWords)
	}
	if s.ShortDescMaxWords != DefaultShortDescMaxWords {
		t.Fatalf("ShortDescMaxWords = %d, want %d", s.ShortDescMaxWords, DefaultShortDescMaxWords)
	}
	if s.DescMaxWords != DefaultDescriptionMaxWords {
		t.Fatalf("DescMaxWords = %d, want %d", s.DescMaxWords, DefaultDescriptionMaxWords)
	}
	if s.SKUFormat != DefaultSKUFormat {
		t.Fatalf("SKUFormat = %q, want %q", s.SKUFormat, DefaultSKUFormat)
	}
}

func TestNormalizeLanguageFromLocale(t *testing.T) {
	s := &GenerationSettings{}
	s.Normalize("ID")
	if s.Language != "id" {
		t.Fatalf("Language = %q, want %q", s.Language, "id")
	}

	explicit := &GenerationSettings{Language: "EN"}
	explicit.Normalize("id")
	if explicit.Language != "en" {
		t.Fatalf("explicit Language = %q, want %q", explicit.Language, "en")
	}
}

func TestNormalizeClampsWordLimits(t *testing.T) {
	s := &GenerationSettings{
		TitleMaxWords:     1000,
		ShortDescMaxWords: 1000,
		DescMaxWords:      10000,
	}
	s.Normalize("en")

	if s.TitleMaxWords != MaxTitleWordsCeiling {
		t.Fatalf("TitleMaxWords = %d, want %d", s.TitleMaxWords, MaxTitleWordsCeiling)
	}
	if s.ShortDescMaxWords != MaxShortDescWordsCeiling {
		t.Fatalf("ShortDescMaxWords = %d, want %d", s.ShortDescMaxWords, MaxShortDescWordsCeiling)
	}
	if s.DescMaxWords != MaxDescriptionWordsCeiling {
		t.Fatalf("DescMaxWords = %d, want %d", s.DescMaxWords, MaxDescriptionWordsCeiling)
	}
}

func TestNormalizeKeepsChosenValues(t *testing.T) {
	s := &GenerationSettings{
		Tone:          " playful ",
		Language:      "id",
		TitleMaxWords: 8,
		SKUFormat:     "prefix-number",
	}
	s.Normalize("en")

	if s.Tone != "playful" {
		t.Fatalf("Tone = %q, want %q", s.Tone, "playful")
	}
	if s.Language != "id" {
		t.Fatalf("Language = %q, want %q", s.Language, "id")
	}
	if s.TitleMaxWords != 8 {
		t.Fatalf("TitleMaxWords = %d, want 8", s.TitleMaxWords)
	}
	if s.SKUFormat != "prefix-number" {
		t.Fatalf("SKUFormat = %q, want %q", s.SKUFormat, "prefix-number")
	}
}

func TestNormalizeNilReceiver(t *testing.T) {
	var s *GenerationSettings
	s.Normalize("en")
}
