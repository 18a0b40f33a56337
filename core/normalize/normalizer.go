// Package normalize implements the Normalizer interface.
// It cleans the text OneNote leaves in exported notes and converts the
// note body into Markdown, the format notes are stored in.
package normalize

import (
	"fmt"
	"html"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/gaurav-prasanna/onestandard/core"
)

// Replacement is a literal substring substitution.
type Replacement struct {
	Old string
	New string
}

// DefaultReplacements returns the substitutions applied by FixLine, in order:
// soft line breaks become spaces, then "= " and "-" artifacts are dropped.
// A fresh slice is returned on every call.
func DefaultReplacements() []Replacement {
	return []Replacement{
		{Old: "\n", New: " "},
		{Old: "= ", New: ""},
		{Old: "-", New: ""},
	}
}

// FixLine trims line, applies replacements in order and unescapes HTML
// entities. An empty replacements list means DefaultReplacements.
func FixLine(line string, replacements []Replacement) string {
	if len(replacements) == 0 {
		replacements = DefaultReplacements()
	}
	line = strings.TrimSpace(line)
	for _, r := range replacements {
		line = strings.ReplaceAll(line, r.Old, r.New)
	}
	return html.UnescapeString(line)
}

// StripLinebreaks turns each pair of newlines into one in a single pass,
// so a run of four newlines ends up as two.
func StripLinebreaks(text string) string {
	return strings.ReplaceAll(text, "\n\n", "\n")
}

// NoteNormalizer turns note regions into a core.RawNote.
type NoteNormalizer struct {
	converter    core.Converter
	replacements []Replacement
}

// Option customizes a NoteNormalizer.
type Option func(*NoteNormalizer)

// WithConverter replaces the HTML to Markdown converter.
func WithConverter(c core.Converter) Option {
	return func(n *NoteNormalizer) { n.converter = c }
}

// WithReplacements replaces DefaultReplacements. The slice is copied.
func WithReplacements(r []Replacement) Option {
	return func(n *NoteNormalizer) {
		n.replacements = append([]Replacement(nil), r...)
	}
}

// New creates a NoteNormalizer using MarkdownConverter.
func New(opts ...Option) *NoteNormalizer {
	n := &NoteNormalizer{
		converter:    NewMarkdownConverter(),
		replacements: DefaultReplacements(),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Normalize cleans the title, cleans the content markup and converts it to
// Markdown. The headers are passed through untouched.
func (n *NoteNormalizer) Normalize(parts core.NoteParts) (core.RawNote, error) {
	var title string
	if parts.Title != nil {
		title = FixLine(parts.Title.Text(), n.replacements)
	}

	markup, err := outerHTML(parts.Content)
	if err != nil {
		return core.RawNote{}, err
	}
	markup = FixLine(markup, n.replacements)

	markdown, err := n.converter.Convert(markup)
	if err != nil {
		return core.RawNote{}, fmt.Errorf("note %q: %w", title, err)
	}

	return core.RawNote{
		Title:    title,
		Markdown: StripLinebreaks(markdown),
		Markup:   markup,
		Headers:  parts.Headers,
	}, nil
}

// outerHTML renders s including its own tag. A missing region renders as "".
func outerHTML(s *goquery.Selection) (string, error) {
	if s == nil || s.Length() == 0 {
		return "", nil
	}
	out, err := goquery.OuterHtml(s)
	if err != nil {
		return "", fmt.Errorf("serializing content: %w", err)
	}
	return out, nil
}
