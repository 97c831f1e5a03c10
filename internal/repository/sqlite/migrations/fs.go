// Package migrations holds the SQLite schema migrations, embedded at
// build time and applied in filename order.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
