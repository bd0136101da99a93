// Package migrations embeds the goose SQL migrations for each supported
// database dialect.
package migrations

import "embed"

// FS holds the migration files. Each dialect lives in its own directory.
//
//go:embed postgres/*.sql sqlite/*.sql
var FS embed.FS

