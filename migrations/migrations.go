// Package migrations osadza pliki SQL w binarce narzędzia migracyjnego.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
