// Package migrations embeds the SQL schema migrations for the ledger store.
package migrations

import "embed"

// FS holds the numbered .up.sql migration files.
//
//go:embed *.sql
var FS embed.FS
