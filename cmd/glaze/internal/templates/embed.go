// Package templates provides embedded template files for project
// creation.
package templates

import "embed"

//go:embed init
var files embed.FS

// ReadFile returns the named template's contents.
func ReadFile(name string) ([]byte, error) {
	return files.ReadFile(name)
}
