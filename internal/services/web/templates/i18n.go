// Package templates renders the nominaweb layout, list, form and detail
// components as templ components.
package templates

import (
	"fmt"

	"golang.org/x/text/message"
)

// Localizer provides translated strings for the nominaweb components. The
// request's message.Printer, resolved by the web i18n middleware, satisfies it.
type Localizer interface {
	Sprintf(key message.Reference, args ...any) string
}

// T returns a translated string. Without a localizer, as in component tests,
// the key itself is formatted with args.
func T(loc Localizer, key message.Reference, args ...any) string {
	if loc != nil {
		return loc.Sprintf(key, args...)
	}
	if keyString, ok := key.(string); ok {
		if len(args) > 0 {
			return fmt.Sprintf(keyString, args...)
		}
		return keyString
	}
	return ""
}
