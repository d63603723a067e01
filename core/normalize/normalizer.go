// Package normalize turns extracted content into the forms the Document
// carries: whitespace-collapsed plain text bounded at a sentence boundary,
// and, on request, Markdown.
package normalize

import (
	"fmt"
	"regexp"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/gaurav-prasanna/docmind/core"
)

var (
	whitespaceRun = regexp.MustCompile(core.SpaceClass + `+`)
	blankLines    = regexp.MustCompile(`\n` + core.SpaceClass + `*\n`)
)

// Text collapses whitespace and bounds the result to core.MaxContentChars.
// It reports whether truncation happened.
func Text(raw string) (string, bool) {
	text := whitespaceRun.ReplaceAllString(raw, " ")
	text = blankLines.ReplaceAllString(text, "\n")
	text = strings.TrimSpace(text)
	return Truncate(text, core.MaxContentChars, core.SentenceCutoffFloor)
}

// Truncate cuts text to limit runes. When the last '.' inside the cut
// lies beyond floor, the text ends right after it; otherwise the hard cut
// is kept.
func Truncate(text string, limit, floor int) (string, bool) {
	runes := []rune(text)
	if len(runes) <= limit {
		return text, false
	}
	runes = runes[:limit]

	for i := len(runes) - 1; i > floor; i-- {
		if runes[i] == '.' {
			return string(runes[:i+1]), true
		}
	}
	return string(runes), true
}

// MarkdownNormalizer converts HTML to Markdown using html-to-markdown.
type MarkdownNormalizer struct{}

// NewMarkdown creates a MarkdownNormalizer.
func NewMarkdown() *MarkdownNormalizer {
	return &MarkdownNormalizer{}
}

// Normalize converts a cleaned HTML fragment into Markdown.
func (n *MarkdownNormalizer) Normalize(html string) (string, error) {
	markdown, err := htmltomarkdown.ConvertString(html)
	if err != nil {
		return "", fmt.Errorf("converting HTML to markdown: %w", err)
	}
	return strings.TrimSpace(markdown), nil
}
