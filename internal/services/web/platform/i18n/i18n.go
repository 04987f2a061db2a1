// Package i18n resolves the request language and message printer for web
// pages.
package i18n

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	platformi18n "github.com/nominaweb/nominaweb/internal/platform/i18n"
)

const (
	// LangParam is the query parameter used to select a language.
	LangParam = "lang"
	// LangCookieName stores the user's language preference.
	LangCookieName = "nw_lang"
)

// Localizer exposes translated formatting used by templates and handlers.
type Localizer interface {
	Sprintf(key message.Reference, args ...any) string
}

// LanguageOption represents a supported language option in the nav bar.
type LanguageOption struct {
	Tag    string
	Label  string
	URL    string
	Active bool
}

// Printer returns a message printer for the supplied tag.
func Printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag)
}

// ResolveTag determines the language for the request from the lang query
// parameter, the language cookie, and Accept-Language, in that order. The
// bool reports whether the query parameter chose the tag and should be
// persisted.
func ResolveTag(r *http.Request, fallback language.Tag) (language.Tag, bool) {
	if fallback == language.Und {
		fallback = platformi18n.DefaultTag()
	}
	if r == nil {
		return fallback, false
	}
	if r.URL != nil {
		if value := strings.TrimSpace(r.URL.Query().Get(LangParam)); value != "" {
			if tag, ok := platformi18n.ParseTag(value); ok {
				return tag, true
			}
		}
	}
	if cookie, err := r.Cookie(LangCookieName); err == nil {
		if tag, ok := platformi18n.ParseTag(cookie.Value); ok {
			return tag, false
		}
	}
	if accept := strings.TrimSpace(r.Header.Get("Accept-Language")); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil {
			for _, candidate := range tags {
				if tag, ok := platformi18n.ParseTag(candidate.String()); ok {
					return tag, false
				}
			}
		}
	}
	return fallback, false
}

// SetLanguageCookie persists the selected language on the response.
func SetLanguageCookie(w http.ResponseWriter, tag language.Tag) {
	if w == nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     LangCookieName,
		Value:    tag.String(),
		Path:     "/",
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		SameSite: http.SameSiteLaxMode,
	})
}

// ResolveLocalizer returns the request printer and language string and
// persists an explicit lang query choice.
func ResolveLocalizer(w http.ResponseWriter, r *http.Request, fallback language.Tag) (*message.Printer, string) {
	tag, persist := ResolveTag(r, fallback)
	if persist {
		SetLanguageCookie(w, tag)
	}
	return Printer(tag), tag.String()
}

// LanguageURL returns the current URL with the language param updated.
func LanguageURL(path string, rawQuery string, tag string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		path = "/"
	}
	query, err := url.ParseQuery(rawQuery)
	if err != nil {
		query = url.Values{}
	}
	query.Set(LangParam, tag)
	return (&url.URL{Path: path, RawQuery: query.Encode()}).String()
}

// LanguageOptions lists the supported languages with switch URLs for the
// current page.
func LanguageOptions(loc Localizer, active string, path string, rawQuery string) []LanguageOption {
	activeTag, ok := platformi18n.ParseTag(active)
	if !ok {
		activeTag = platformi18n.DefaultTag()
	}
	supported := platformi18n.SupportedTags()
	options := make([]LanguageOption, 0, len(supported))
	for _, tag := range supported {
		label := tag.String()
		if loc != nil {
			if resolved := strings.TrimSpace(loc.Sprintf(LanguageKeyLabel(tag))); resolved != "" {
				label = resolved
			}
		}
		options = append(options, LanguageOption{
			Tag:    tag.String(),
			Label:  label,
			URL:    LanguageURL(path, rawQuery, tag.String()),
			Active: tag == activeTag,
		})
	}
	return options
}

// LanguageKeyLabel maps a language tag to its catalog label key.
func LanguageKeyLabel(tag language.Tag) string {
	base, _ := tag.Base()
	return "core.language." + base.String()
}
