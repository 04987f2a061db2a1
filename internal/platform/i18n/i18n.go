// Package i18n defines the supported languages for nominaweb surfaces.
package i18n

import (
	"strings"

	"golang.org/x/text/language"

	"github.com/nominaweb/nominaweb/internal/platform/i18n/catalog"
)

var (
	spanish = language.MustParse("es-CO")
	english = language.MustParse("en-US")

	supported = []language.Tag{spanish, english}
	matcher   = language.NewMatcher(supported)
)

// DefaultTag returns the default language tag.
func DefaultTag() language.Tag {
	return spanish
}

// SupportedTags returns the supported language tags, default first.
func SupportedTags() []language.Tag {
	out := make([]language.Tag, len(supported))
	copy(out, supported)
	return out
}

// ParseTag parses value and reports whether it maps to a supported language.
func ParseTag(value string) (language.Tag, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return DefaultTag(), false
	}
	tag, err := language.Parse(value)
	if err != nil {
		return DefaultTag(), false
	}
	matched, _, confidence := matcher.Match(tag)
	if confidence == language.No {
		return DefaultTag(), false
	}
	return normalize(matched), true
}

// MatchTags picks the best supported tag for a preference list.
func MatchTags(tags []language.Tag) language.Tag {
	if len(tags) == 0 {
		return DefaultTag()
	}
	matched, _, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return DefaultTag()
	}
	return normalize(matched)
}

// Ready reports whether the embedded catalogs registered successfully.
func Ready() bool {
	return catalog.Default().HasLocale(catalog.BaseLocale)
}

// The matcher may return tags carrying -u extensions; map back to the
// canonical supported tag.
func normalize(tag language.Tag) language.Tag {
	base, _ := tag.Base()
	for _, candidate := range supported {
		candidateBase, _ := candidate.Base()
		if candidateBase == base {
			return candidate
		}
	}
	return DefaultTag()
}
