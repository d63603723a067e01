package render

import (
	"fmt"
	"strings"

	"github.com/gaurav-prasanna/docmind/core"
)

// GroundingContext flattens a Document into the text block an assistant
// is grounded on. Code blocks are numbered from 1.
func GroundingContext(doc *core.Document) string {
	var b strings.Builder
	fmt.Fprintf(&b, "DOCUMENT TITLE: %s\n\n", doc.Title)
	fmt.Fprintf(&b, "DOCUMENT CONTENT:\n%s\n\n", doc.Content)

	if len(doc.CodeBlocks) > 0 {
		b.WriteString("CODE EXAMPLES:\n")
		for i, block := range doc.CodeBlocks {
			fmt.Fprintf(&b, "Code %d (%s):\n%s\n\n", i+1, block.Language, block.Code)
		}
	}
	return b.String()
}

// ContextRenderer writes the grounding context as plain text.
type ContextRenderer struct{}

// NewContextRenderer creates a ContextRenderer.
func NewContextRenderer() *ContextRenderer {
	return &ContextRenderer{}
}

// Render returns the grounding context.
func (r *ContextRenderer) Render(doc *core.Document) ([]byte, error) {
	return []byte(GroundingContext(doc)), nil
}

// Extension returns the file extension for context output.
func (r *ContextRenderer) Extension() string {
	return ".context.txt"
}
