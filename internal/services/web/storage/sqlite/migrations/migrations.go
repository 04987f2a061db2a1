// Package migrations embeds the audit store schema.
package migrations

import "embed"

// FS holds the SQL migration files applied by the sqlite store.
//
//go:embed *.sql
var FS embed.FS
