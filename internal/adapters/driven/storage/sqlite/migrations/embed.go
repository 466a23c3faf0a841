// Package migrations holds the versioned history schema, applied in file
// name order by the sqlite store.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
