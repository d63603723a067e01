// Package extract isolates the substantive parts of a parsed page:
//  1. Code fragments, scanned over the untouched tree
//  2. Boilerplate removal (scripts, navigation, ads, ...)
//  3. The best content container, chosen from a fixed candidate order
//  4. A heading outline of that container
package extract

import (
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/gaurav-prasanna/docmind/core"
	"github.com/gaurav-prasanna/docmind/core/markup"
	"github.com/rs/zerolog"
)

// noiseSelectors are removed from the whole tree before the content
// container is chosen.
var noiseSelectors = []string{
	"script", "style",
	"nav", "header", "footer", "aside",
	".advertisement", ".ads",
}

// contentCandidates are tried in order; the first whose text is long
// enough wins.
var contentCandidates = []string{
	"article",
	"main",
	".content",
	".post-content",
	".entry-content",
	".article-content",
	".documentation",
	".doc-content",
	"body",
}

// minContentChars is the trimmed text length a candidate must exceed.
const minContentChars = 100

// Result holds everything pulled out of one tree.
type Result struct {
	CodeBlocks []core.CodeBlock
	// Content is the chosen container, already stripped of boilerplate.
	Content *goquery.Selection
	// Selector names the candidate that won, "body" on fallback.
	Selector string
	Sections []core.Section
}

// HTMLExtractor runs the extraction steps in their required order.
type HTMLExtractor struct {
	log zerolog.Logger
}

// New creates an HTMLExtractor.
func New(log zerolog.Logger) *HTMLExtractor {
	return &HTMLExtractor{log: log}
}

// Extract scans the tree for code, strips boilerplate from it, then picks
// and outlines the content container. The tree is modified.
func (e *HTMLExtractor) Extract(tree *markup.Tree) *Result {
	// Code must be collected before anything is removed.
	blocks := ExtractCode(tree)

	removed := StripBoilerplate(tree)
	content, selector := SelectContent(tree)
	sections := Outline(content)

	e.log.Debug().
		Int("code_blocks", len(blocks)).
		Int("removed", removed).
		Str("selector", selector).
		Int("sections", len(sections)).
		Msg("extracted")

	return &Result{
		CodeBlocks: blocks,
		Content:    content,
		Selector:   selector,
		Sections:   sections,
	}
}

// StripBoilerplate removes non-content elements from the tree.
func StripBoilerplate(tree *markup.Tree) int {
	return tree.Strip(noiseSelectors...)
}

// SelectContent returns the first candidate container whose trimmed text
// exceeds minContentChars, or the body when none does.
func SelectContent(tree *markup.Tree) (*goquery.Selection, string) {
	for _, selector := range contentCandidates {
		sel := tree.Find(selector).First()
		if sel.Length() == 0 {
			continue
		}
		if utf8.RuneCountInString(markup.Text(sel)) > minContentChars {
			return sel, selector
		}
	}
	return tree.Body(), "body"
}
