// Package output handles file naming and writing for onestandard outputs.
// The package file keeps its configured name; digests are named after the
// tag, e.g. "Work Notes" → Work_Notes.md.
package output

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gaurav-prasanna/onestandard/core/model"
)

// Writer writes outputs to disk.
type Writer struct {
	OutputDir string
}

// New creates a Writer targeting the given output directory.
// If outputDir is empty, it defaults to the current working directory.
func New(outputDir string) (*Writer, error) {
	if outputDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		outputDir = wd
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	return &Writer{OutputDir: outputDir}, nil
}

// WritePackage stores a rendered package as name inside the output directory.
// Failures wrap model.ErrPersist.
func (w *Writer) WritePackage(data []byte, name string) (string, error) {
	path := filepath.Join(w.OutputDir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("%w %s: %w", model.ErrPersist, path, err)
	}
	return path, nil
}

// WriteDigest writes rendered data for the given tag title.
func (w *Writer) WriteDigest(title string, data []byte, ext string) (string, error) {
	name := sanitize(title)
	if name == "" {
		name = "notes"
	}
	path := filepath.Join(w.OutputDir, name+ext)

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", path, err)
	}
	return path, nil
}

// sanitize replaces characters outside [A-Za-z0-9_-] with underscores.
func sanitize(s string) string {
	out := []rune(s)
	for i, ch := range out {
		switch {
		case ch >= 'a' && ch <= 'z', ch >= 'A' && ch <= 'Z', ch >= '0' && ch <= '9', ch == '-', ch == '_':
		default:
			out[i] = '_'
		}
	}
	return string(out)
}
