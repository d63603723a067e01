// Package markup wraps a parsed HTML page in a queryable tree.
// The page is parsed once; callers select with CSS selectors, walk
// siblings and descendants, read text and attributes, and strip
// boilerplate subtrees in place.
package markup

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/gaurav-prasanna/docmind/core"
	"golang.org/x/net/html"
)

// HeadingSelector matches every heading level.
const HeadingSelector = "h1, h2, h3, h4, h5, h6"

// Tree is an in-memory HTML document.
type Tree struct {
	doc *goquery.Document
}

// Parse builds a Tree from raw markup. Parsing is tolerant: malformed
// markup is repaired the way browsers repair it.
func Parse(raw string) (*Tree, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: parsing HTML: %w", core.ErrParseFailure, err)
	}
	return &Tree{doc: doc}, nil
}

// Find selects elements matching a CSS selector.
func (t *Tree) Find(selector string) *goquery.Selection {
	return t.doc.Find(selector)
}

// FindMatcher selects elements with a precompiled matcher.
func (t *Tree) FindMatcher(m goquery.Matcher) *goquery.Selection {
	return t.doc.FindMatcher(m)
}

// Body returns the <body> element. The HTML parser always creates one.
func (t *Tree) Body() *goquery.Selection {
	return t.doc.Find("body").First()
}

// Strip removes every element matching the selectors and returns how
// many were removed. Removal is permanent for this tree.
func (t *Tree) Strip(selectors ...string) int {
	removed := 0
	for _, sel := range selectors {
		found := t.doc.Find(sel)
		removed += found.Length()
		found.Remove()
	}
	return removed
}

// Title returns the trimmed <title>, falling back to the first <h1>.
// Empty when neither exists.
func (t *Tree) Title() string {
	if title := Text(t.doc.Find("title").First()); title != "" {
		return title
	}
	return Text(t.doc.Find("h1").First())
}

// OuterHTML serializes a selection, used for Markdown conversion.
func OuterHTML(sel *goquery.Selection) (string, error) {
	return goquery.OuterHtml(sel)
}

// Text returns the trimmed text content of a selection.
func Text(sel *goquery.Selection) string {
	return strings.TrimSpace(sel.Text())
}

// ClassOf returns the class attribute of the first element, or of its
// parent when the element carries none.
func ClassOf(sel *goquery.Selection) string {
	if class, _ := sel.Attr("class"); class != "" {
		return class
	}
	class, _ := sel.Parent().Attr("class")
	return class
}

// HeadingLevel reports the level of an h1–h6 element, or 0.
func HeadingLevel(sel *goquery.Selection) int {
	if sel.Length() == 0 {
		return 0
	}
	node := sel.Get(0)
	if node.Type != html.ElementNode || len(node.Data) != 2 || node.Data[0] != 'h' {
		return 0
	}
	level, err := strconv.Atoi(node.Data[1:])
	if err != nil || level < 1 || level > 6 {
		return 0
	}
	return level
}
