// Package static embeds the nominaweb stylesheet and the HTMX glue script
// served under /static/.
package static

import "embed"

// FS holds app.css and app.js.
//
//go:embed *.css *.js
var FS embed.FS
