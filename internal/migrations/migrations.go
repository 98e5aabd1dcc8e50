// Package migrations embeds the SQL schema of the service.
package migrations

import "embed"

// FS holds the golang-migrate files, see Dir
//
//go:embed sql/*.sql
var FS embed.FS

// Dir is the directory inside FS containing the migrations
const Dir = "sql"
