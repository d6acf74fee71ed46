package migrations

import "embed"

// FS holds the ordered *.up.sql schema files.
//
//go:embed *.up.sql
var FS embed.FS
