// Package migrations embeds the archive schema files so the binary needs
// no external migration directory at deploy time.
package migrations

import "embed"

//go:embed sqlite/*.sql
var SqliteMigrations embed.FS

//go:embed postgres/*.sql
var PostgresMigrations embed.FS
