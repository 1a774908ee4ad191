package migrations

import "embed"

// FS embeds the SQL migration files in this directory; the iofs source
// driver reads them when migrations run at startup.
//
//go:embed *.sql
var FS embed.FS

// Version is the schema version Migrate targets.
const Version = 1
