// Package render — JSON renderer.
// Produces the Standard Notes import file for a package.
package render

import (
	"github.com/gaurav-prasanna/onestandard/core/model"
)

// JSONRenderer renders the package in the import format.
type JSONRenderer struct{}

// NewJSONRenderer creates a JSONRenderer.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

// Render returns the package document indented the way model.Package.Write
// lays it out on disk.
func (r *JSONRenderer) Render(pkg *model.Package) ([]byte, error) {
	return pkg.JSON(model.WithIndent(model.FileIndent))
}

// Extension returns the file extension for JSON output.
func (r *JSONRenderer) Extension() string {
	return ".json"
}
