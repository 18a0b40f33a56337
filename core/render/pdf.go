// Package render — PDF renderer.
// Prints a package as a PDF digest using gofpdf: tags as section titles,
// each note as a heading followed by its Markdown body rendered line by line.
package render

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/gaurav-prasanna/onestandard/core/model"
	"github.com/jung-kurt/gofpdf"
)

var (
	boldMarkers   = regexp.MustCompile(`\*\*|__`)
	italicMarkers = regexp.MustCompile(`(?:^|\s)\*([^*]+)\*(?:\s|$)`)
	inlineCode    = regexp.MustCompile("`([^`]+)`")
	inlineLink    = regexp.MustCompile(`\[([^\]]*)\]\([^)]+\)`)
	orderedItem   = regexp.MustCompile(`^\d+\.\s`)
)

// PDFRenderer renders a package as a PDF document.
type PDFRenderer struct{}

// NewPDFRenderer creates a PDFRenderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

// Render converts the package into PDF bytes.
func (r *PDFRenderer) Render(pkg *model.Package) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	// Core fonts are cp1252; translate from UTF-8.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for _, item := range pkg.Items() {
		switch item.ContentType {
		case model.TypeTag:
			pdf.SetFont("Helvetica", "B", 20)
			pdf.MultiCell(0, 9, tr(item.Content.Title), "", "L", false)
			pdf.Ln(6)
		case model.TypeNote:
			renderHeading(pdf, tr(item.Content.Title), 1)
			pdf.SetFont("Helvetica", "I", 8)
			pdf.SetTextColor(100, 100, 100)
			pdf.MultiCell(0, 4, item.CreatedAt, "", "L", false)
			pdf.SetTextColor(0, 0, 0)
			pdf.Ln(2)
			renderBody(pdf, tr, noteText(item))
			pdf.Ln(6)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for PDF output.
func (r *PDFRenderer) Extension() string {
	return ".pdf"
}

// renderBody writes Markdown lines, nesting note headings one level down.
func renderBody(pdf *gofpdf.Fpdf, tr func(string) string, markdown string) {
	inCodeBlock := false
	for _, line := range strings.Split(markdown, "\n") {
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "```") {
			inCodeBlock = !inCodeBlock
			pdf.Ln(2)
			continue
		}

		switch {
		case inCodeBlock:
			pdf.SetFont("Courier", "", 9)
			pdf.SetFillColor(245, 245, 245)
			pdf.MultiCell(0, 4.5, tr(line), "", "L", true)
		case trimmed == "":
			pdf.Ln(3)
		case strings.HasPrefix(trimmed, "#"):
			level := len(trimmed) - len(strings.TrimLeft(trimmed, "#"))
			renderHeading(pdf, tr(strings.TrimSpace(strings.TrimLeft(trimmed, "# "))), level+1)
		case strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* "):
			pdf.SetFont("Helvetica", "", 10)
			pdf.MultiCell(0, 5, tr("• "+cleanInlineMarkdown(trimmed[2:])), "", "L", false)
		case orderedItem.MatchString(trimmed):
			pdf.SetFont("Helvetica", "", 10)
			pdf.MultiCell(0, 5, tr(cleanInlineMarkdown(trimmed)), "", "L", false)
		default:
			pdf.SetFont("Helvetica", "", 10)
			pdf.MultiCell(0, 5, tr(cleanInlineMarkdown(line)), "", "L", false)
		}
	}
}

// renderHeading sets the font size based on heading level and writes text.
func renderHeading(pdf *gofpdf.Fpdf, text string, level int) {
	sizes := map[int]float64{1: 16, 2: 14, 3: 12, 4: 11, 5: 10}
	size, ok := sizes[level]
	if !ok {
		size = 10
	}
	pdf.Ln(3)
	pdf.SetFont("Helvetica", "B", size)
	pdf.MultiCell(0, size*0.6, cleanInlineMarkdown(text), "", "L", false)
	pdf.Ln(1)
}

// cleanInlineMarkdown strips inline Markdown formatting.
func cleanInlineMarkdown(text string) string {
	text = boldMarkers.ReplaceAllString(text, "")
	text = italicMarkers.ReplaceAllString(text, " $1 ")
	text = inlineCode.ReplaceAllString(text, "$1")
	text = inlineLink.ReplaceAllString(text, "$1")
	return strings.TrimSpace(text)
}
