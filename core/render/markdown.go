// Package render provides output renderers for exported packages.
// This file implements the Markdown digest: every tag becomes a top-level
// heading and every note a second-level heading followed by its body.
package render

import (
	"strings"

	"github.com/gaurav-prasanna/onestandard/core/model"
)

// MarkdownRenderer writes all records of a package into one Markdown file.
type MarkdownRenderer struct{}

// NewMarkdownRenderer creates a MarkdownRenderer.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{}
}

// Render returns the digest in package order.
func (r *MarkdownRenderer) Render(pkg *model.Package) ([]byte, error) {
	var b strings.Builder
	for _, item := range pkg.Items() {
		switch item.ContentType {
		case model.TypeTag:
			b.WriteString("# " + item.Content.Title + "\n\n")
		case model.TypeNote:
			b.WriteString("## " + item.Content.Title + "\n\n")
			if body := noteText(item); body != "" {
				b.WriteString(strings.TrimRight(body, "\n") + "\n\n")
			}
		}
	}
	return []byte(b.String()), nil
}

// Extension returns the file extension for Markdown output.
func (r *MarkdownRenderer) Extension() string {
	return ".md"
}

func noteText(item model.Item) string {
	if item.Content.Text == nil {
		return ""
	}
	return *item.Content.Text
}
