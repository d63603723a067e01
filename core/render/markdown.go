// Package render provides output renderers for a Document.
// This file implements the Markdown renderer.
package render

import (
	"fmt"
	"strings"

	"github.com/gaurav-prasanna/docmind/core"
)

// MarkdownRenderer writes the Document as Markdown. When the pipeline
// produced a Markdown rendition of the page it is used as the body;
// otherwise the body is rebuilt from the section outline.
type MarkdownRenderer struct{}

// NewMarkdownRenderer creates a MarkdownRenderer.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{}
}

// Render converts the Document into Markdown bytes.
func (r *MarkdownRenderer) Render(doc *core.Document) ([]byte, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", doc.Title)
	fmt.Fprintf(&b, "Source: %s\n\n", doc.URL)
	b.WriteString(markdownBody(doc))
	return []byte(b.String()), nil
}

// markdownBody renders everything below the title and source line.
func markdownBody(doc *core.Document) string {
	var b strings.Builder

	if len(doc.Insights) > 0 {
		fmt.Fprintf(&b, "_%s_\n\n", strings.Join(doc.Insights, " · "))
	}

	switch {
	case doc.Markdown != "":
		b.WriteString(doc.Markdown)
		b.WriteString("\n\n")
	case len(doc.StructuredContent.Sections) > 0:
		for _, s := range doc.StructuredContent.Sections {
			// The document title already occupies level 1.
			level := min(s.Level+1, 6)
			fmt.Fprintf(&b, "%s %s\n\n%s\n\n", strings.Repeat("#", level), s.Heading, s.Content)
		}
	default:
		b.WriteString(doc.Content)
		b.WriteString("\n\n")
	}

	if len(doc.CodeBlocks) > 0 {
		b.WriteString("## Code examples\n\n")
		for _, c := range doc.CodeBlocks {
			fmt.Fprintf(&b, "%s\n\n```%s\n%s\n```\n\n", c.Context, c.Language, c.Code)
		}
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}

// Extension returns the file extension for Markdown output.
func (r *MarkdownRenderer) Extension() string {
	return ".md"
}
