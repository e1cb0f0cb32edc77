// Package migrations содержит SQL-миграции схемы в формате golang-migrate.
package migrations

import "embed"

// FS — встроенные файлы миграций (NNNNNN_name.up.sql / .down.sql).
//
//go:embed *.sql
var FS embed.FS
