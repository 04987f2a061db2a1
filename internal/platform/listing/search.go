package listing

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold lowercases s and strips combining marks so "Peña" and "pena" compare
// equal.
func Fold(s string) string {
	if s == "" {
		return ""
	}
	folder := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(folder, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(strings.TrimSpace(folded))
}

// SearchPredicate matches items whose searchable fields contain every word of
// term. An empty term matches everything.
func SearchPredicate[T any](schema Schema[T], term string) Predicate[T] {
	words := strings.Fields(Fold(term))
	if len(words) == 0 {
		return func(T) bool { return true }
	}
	searchable := make([]Field[T], 0, len(schema.Fields))
	for _, field := range schema.Fields {
		if field.Searchable && field.Type == TypeString {
			searchable = append(searchable, field)
		}
	}
	return func(item T) bool {
		var haystack strings.Builder
		for _, field := range searchable {
			value, _ := field.Value(item).(string)
			haystack.WriteString(Fold(value))
			haystack.WriteByte(' ')
		}
		text := haystack.String()
		for _, word := range words {
			if !strings.Contains(text, word) {
				return false
			}
		}
		return true
	}
}
