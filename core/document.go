package core

import "unicode"

// Limits applied while assembling a Document. Lengths count runes.
const (
	MaxTitleChars          = 200
	MaxContentChars        = 15000
	SentenceCutoffFloor    = 10000
	MaxSectionContentChars = 500
	MaxCodeContextChars    = 100
	MinCodeChars           = 10
	MaxInsights            = 6

	UntitledDocument   = "Untitled Document"
	DefaultCodeContext = "Code example"
)

// Document is the structured record produced by the extraction pipeline.
// It is never mutated after assembly.
type Document struct {
	Title             string            `json:"title"`
	Content           string            `json:"content"`
	StructuredContent StructuredContent `json:"structuredContent"`
	CodeBlocks        []CodeBlock       `json:"codeBlocks"`
	URL               string            `json:"url"`
	Insights          []string          `json:"insights"`

	// Markdown is the content subtree converted to Markdown. Only set when
	// the pipeline was asked for it.
	Markdown string `json:"markdown,omitempty"`
}

// StructuredContent is the heading outline of the content subtree.
type StructuredContent struct {
	Sections []Section `json:"sections"`
}

// Section represents a heading and the text that follows it.
type Section struct {
	Heading string `json:"heading"`
	Content string `json:"content"`
	Level   int    `json:"level"`
}

// CodeBlock is a source-code fragment found in the page.
type CodeBlock struct {
	Language string `json:"language"`
	Code     string `json:"code"`
	Context  string `json:"context"`
	// Element is the selector that matched the fragment.
	Element string `json:"element"`
}

// SpaceClass is a regexp character class for the whitespace a browser
// script's \s matches: ASCII whitespace, vertical tab, Unicode space
// separators, line and paragraph separators, and the byte-order mark.
const SpaceClass = `[\s\v\p{Zs}\x{2028}\x{2029}\x{FEFF}]`

// IsSpace is the rune form of SpaceClass. It also accepts U+0085, as
// unicode.IsSpace does.
func IsSpace(r rune) bool {
	return unicode.IsSpace(r) || r == '\uFEFF'
}

// Truncate returns at most n runes of s.
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
