// Package core defines the pipeline interfaces for onestandard.
// Each stage of the conversion is a small, testable interface:
// fetch → extract → normalize → model → render.
package core

import (
	"context"
	"iter"

	"github.com/PuerkitoBio/goquery"
	"github.com/gaurav-prasanna/onestandard/core/model"
)

// FetchResult holds the decoded markup of an exported notebook.
type FetchResult struct {
	Path string
	HTML string
}

// NoteParts is one note split positionally into its regions.
// Content is nil when the note only has a title and headers.
type NoteParts struct {
	Title   *goquery.Selection
	Headers *goquery.Selection
	Content *goquery.Selection
}

// RawNote is a cleaned note ready to become a model.Note.
type RawNote struct {
	Title    string
	Markdown string
	Markup   string // cleaned content markup the Markdown was produced from
	Headers  *goquery.Selection
}

// Fetcher reads an exported notebook from disk.
type Fetcher interface {
	Fetch(ctx context.Context, path string) (*FetchResult, error)
}

// Extractor yields the notes of a parsed document in document order.
// The sequence is finite and can only be consumed once per call.
type Extractor interface {
	Notes(doc *goquery.Document) iter.Seq[NoteParts]
}

// Converter turns an HTML fragment into Markdown.
type Converter interface {
	Convert(html string) (string, error)
}

// Normalizer cleans the regions of a note into a RawNote.
type Normalizer interface {
	Normalize(parts NoteParts) (RawNote, error)
}

// Renderer turns a package into an output artifact.
type Renderer interface {
	Render(pkg *model.Package) ([]byte, error)
	// Extension returns the file extension for this renderer (e.g. ".md", ".pdf").
	Extension() string
}
