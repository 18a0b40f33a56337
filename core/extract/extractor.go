// Package extract implements the Extractor interface.
// It locates notes inside an exported OneNote page by:
//  1. Scanning every <div> in document order for a note marker
//  2. Splitting the marker's first inner <div> into title, headers and content
//
// A note that cannot be split is logged and skipped.
package extract

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/gaurav-prasanna/onestandard/core"
)

// NoteStyle is the exact style attribute OneNote's exporter writes on the
// container of every note. The "3D" prefix is a quoted-printable leftover
// and is part of the value the parser sees.
const NoteStyle = "3D'direction:ltr;border-width:100%'"

var (
	// ErrMalformedNote is returned when a marker has no title and headers.
	ErrMalformedNote = errors.New("malformed note")
	// ErrParse is returned when the document cannot be parsed.
	ErrParse = errors.New("parsing HTML")
)

// Marker reports whether a container starts a note.
type Marker func(s *goquery.Selection) bool

// StyleMarker matches containers whose style attribute equals style exactly.
func StyleMarker(style string) Marker {
	return func(s *goquery.Selection) bool {
		v, ok := s.Attr("style")
		return ok && v == style
	}
}

// Parse reads r into a document.
func Parse(r io.Reader) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return doc, nil
}

// ParseString parses html into a document.
func ParseString(html string) (*goquery.Document, error) {
	return Parse(strings.NewReader(html))
}

// NoteExtractor finds note markers and splits them into regions.
type NoteExtractor struct {
	marker Marker
	logger *slog.Logger
}

// Option customizes a NoteExtractor.
type Option func(*NoteExtractor)

// WithMarker replaces the default NoteStyle match.
func WithMarker(m Marker) Option {
	return func(e *NoteExtractor) { e.marker = m }
}

// WithLogger sets the logger malformed notes are reported to.
func WithLogger(l *slog.Logger) Option {
	return func(e *NoteExtractor) { e.logger = l }
}

// New creates a NoteExtractor matching NoteStyle.
func New(opts ...Option) *NoteExtractor {
	e := &NoteExtractor{
		marker: StyleMarker(NoteStyle),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Notes yields the parts of every well-formed note in document order.
func (e *NoteExtractor) Notes(doc *goquery.Document) iter.Seq[core.NoteParts] {
	return func(yield func(core.NoteParts) bool) {
		doc.Find("div").EachWithBreak(func(_ int, s *goquery.Selection) bool {
			if !e.marker(s) {
				return true
			}
			parts, err := SplitParts(s)
			if err != nil {
				e.logger.Warn("could not parse note", "error", err, "note_text", noteText(s))
				return true
			}
			return yield(parts)
		})
	}
}

// SplitParts splits a marker into its regions. The first inner <div> of the
// marker holds the regions as its own <div> children: the first is the
// title, the second the headers and the third, if present, the content.
func SplitParts(marker *goquery.Selection) (core.NoteParts, error) {
	inner := marker.Find("div").First()
	if inner.Length() == 0 {
		return core.NoteParts{}, fmt.Errorf("%w: no inner container", ErrMalformedNote)
	}

	children := inner.ChildrenFiltered("div")
	n := children.Length()
	if n < 2 {
		return core.NoteParts{}, fmt.Errorf("%w: expected at least 2 regions, got %d", ErrMalformedNote, n)
	}

	parts := core.NoteParts{
		Title:   children.Eq(0),
		Headers: children.Eq(1),
	}
	if n > 2 {
		parts.Content = children.Eq(2)
	}
	return parts, nil
}

func noteText(marker *goquery.Selection) string {
	inner := marker.Find("div").First()
	if inner.Length() == 0 {
		return marker.Text()
	}
	return inner.Text()
}
