// Package migrations embeds the forward-only SQL migrations applied by
// goose at server startup.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
