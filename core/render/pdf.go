// PDF renderer.
// Lays out a Document as a styled PDF using gofpdf: title and source,
// then the Markdown body with headings, paragraphs, lists and code blocks.

package render

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/gaurav-prasanna/docmind/core"
	"github.com/jung-kurt/gofpdf"
)

var (
	numberedItem = regexp.MustCompile(`^\d+\.\s`)
	italicSpan   = regexp.MustCompile(`(?:^|\s)[*_]([^*_]+)[*_](?:\s|$)`)
	inlineCode   = regexp.MustCompile("`([^`]+)`")
	inlineLink   = regexp.MustCompile(`\[([^\]]*)\]\([^)]+\)`)
)

// PDFRenderer renders a Document as a PDF.
type PDFRenderer struct{}

// NewPDFRenderer creates a PDFRenderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

// Render converts the Document into PDF bytes.
func (r *PDFRenderer) Render(doc *core.Document) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.SetTitle(doc.Title, true)
	pdf.AddPage()
	// Core fonts are cp1252.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 18)
	pdf.MultiCell(0, 8, tr(doc.Title), "", "L", false)
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "I", 9)
	pdf.SetTextColor(100, 100, 100)
	pdf.MultiCell(0, 5, tr("Source: "+doc.URL), "", "L", false)
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(6)

	writeMarkdown(pdf, tr, markdownBody(doc))

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

// writeMarkdown lays out Markdown line by line.
func writeMarkdown(pdf *gofpdf.Fpdf, tr func(string) string, markdown string) {
	inCodeBlock := false

	for _, line := range strings.Split(markdown, "\n") {
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "```") {
			inCodeBlock = !inCodeBlock
			pdf.Ln(2)
			continue
		}

		if inCodeBlock {
			pdf.SetFont("Courier", "", 9)
			pdf.SetFillColor(245, 245, 245)
			pdf.MultiCell(0, 4.5, tr(line), "", "L", true)
			continue
		}

		switch {
		case trimmed == "":
			pdf.Ln(3)
		case strings.HasPrefix(line, "#"):
			level := len(line) - len(strings.TrimLeft(line, "#"))
			renderHeading(pdf, tr(strings.TrimSpace(strings.TrimLeft(line, "# "))), level)
		case strings.HasPrefix(trimmed, "- "), strings.HasPrefix(trimmed, "* "):
			pdf.SetFont("Helvetica", "", 10)
			pdf.MultiCell(0, 5, tr("• "+cleanInlineMarkdown(trimmed[2:])), "", "L", false)
		case numberedItem.MatchString(trimmed):
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
	sizes := map[int]float64{1: 18, 2: 15, 3: 13, 4: 12, 5: 11, 6: 10}
	size, ok := sizes[level]
	if !ok {
		size = 10
	}
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", size)
	pdf.MultiCell(0, size*0.6, cleanInlineMarkdown(text), "", "L", false)
	pdf.Ln(2)
}

// cleanInlineMarkdown strips inline Markdown formatting for PDF rendering.
func cleanInlineMarkdown(text string) string {
	text = strings.ReplaceAll(text, "**", "")
	text = strings.ReplaceAll(text, "__", "")
	text = italicSpan.ReplaceAllString(text, " $1 ")
	text = inlineCode.ReplaceAllString(text, "$1")
	text = inlineLink.ReplaceAllString(text, "$1")
	return strings.TrimSpace(text)
}
