package detail

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/albapepper/pokeview/internal/i18n"
	"github.com/albapepper/pokeview/internal/pokeapi"
	"github.com/albapepper/pokeview/internal/translate"
)

// Variant is one language-tagged text.
type Variant struct {
	Language string
	Text     string
}

// Select picks the best variant for lang: exact language, then English,
// then the first non-empty entry, then the first entry. An empty set yields
// the zero Variant. Select never fails.
func Select(lang string, variants []Variant) Variant {
	if len(variants) == 0 {
		return Variant{}
	}
	for _, v := range variants {
		if v.Language == lang && v.Text != "" {
			return v
		}
	}
	for _, v := range variants {
		if v.Language == i18n.English && v.Text != "" {
			return v
		}
	}
	for _, v := range variants {
		if v.Text != "" {
			return v
		}
	}
	return variants[0]
}

var flavorTextReplacer = strings.NewReplacer("\n", " ", "\f", " ", "\r", " ")

// CleanFlavorText replaces the line and page breaks the games embed in
// flavor text with spaces.
func CleanFlavorText(s string) string {
	return strings.TrimSpace(flavorTextReplacer.Replace(s))
}

// FlavorVariants converts species flavor text entries into variants.
func FlavorVariants(s *pokeapi.Species) []Variant {
	if s == nil {
		return nil
	}
	out := make([]Variant, 0, len(s.FlavorTextEntries))
	for _, e := range s.FlavorTextEntries {
		out = append(out, Variant{Language: e.Language.Name, Text: e.FlavorText})
	}
	return out
}

// GenusVariants converts species genera into variants.
func GenusVariants(s *pokeapi.Species) []Variant {
	if s == nil {
		return nil
	}
	out := make([]Variant, 0, len(s.Genera))
	for _, g := range s.Genera {
		out = append(out, Variant{Language: g.Language.Name, Text: g.Genus})
	}
	return out
}

// Localizer selects display text and best-effort translates it.
type Localizer struct {
	translator translate.Translator
	timeout    time.Duration
	logger     *slog.Logger
}

// NewLocalizer creates a Localizer. A nil translator disables translation.
func NewLocalizer(tr translate.Translator, timeout time.Duration, logger *slog.Logger) *Localizer {
	if tr == nil {
		tr = translate.Disabled{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Localizer{translator: tr, timeout: timeout, logger: logger}
}

// Describe selects the flavor text for lang and, when the chosen variant is
// in another language, asks for a translation. A successful translation
// gets the localized provenance note; any failure returns the untranslated
// text without it.
func (l *Localizer) Describe(ctx context.Context, lang string, variants []Variant) Description {
	desc, _ := l.describe(ctx, lang, variants)
	return desc
}

// describe is Describe that also reports whether the result is final. It is
// not final when a translation was needed and the request failed; a
// disabled translator is final.
func (l *Localizer) describe(ctx context.Context, lang string, variants []Variant) (Description, bool) {
	chosen := Select(lang, variants)
	text := CleanFlavorText(chosen.Text)
	desc := Description{Text: text, SourceLanguage: chosen.Language}
	if text == "" || chosen.Language == lang {
		return desc, true
	}

	source := chosen.Language
	if source == "" {
		source = i18n.English
	}

	tctx := ctx
	if l.timeout > 0 {
		var cancel context.CancelFunc
		tctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	translated, err := l.translator.Translate(tctx, text, source, lang)
	if err != nil {
		l.logger.Debug("translation unavailable, keeping source text", "source", source, "target", lang, "error", err)
		return desc, errors.Is(err, translate.ErrDisabled)
	}
	translated = strings.TrimSpace(translated)
	if translated == "" {
		return desc, false
	}
	if translated == text {
		return desc, true
	}

	desc.Text = translated + i18n.Label(lang, "auto_translation_note")
	desc.Translated = true
	return desc, true
}
