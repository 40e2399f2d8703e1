// Package migrations embeds the SQL schema so the binary can migrate
// the database at startup.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
