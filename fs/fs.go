// Package appfs embeds the static files shipped with the binaries:
// SQL migrations, email templates and the common passwords list.
package appfs

import "embed"

//go:embed migrations/*.sql all:templates common-passwords.txt.gz
var FS embed.FS

const (
	MigrationsDir     = "migrations"
	EmailTemplatesDir = "templates/email"
	CommonPasswords   = "common-passwords.txt.gz"
)
