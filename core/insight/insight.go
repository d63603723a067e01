// Package insight derives short descriptive tags from a document's text
// and code blocks.
package insight

import (
	"regexp"
	"strings"

	"github.com/gaurav-prasanna/docmind/core"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// wordsPerMinute is the reading speed used for the reading-time tag.
const wordsPerMinute = 200

// maxLanguages caps the languages listed in the summary tag.
const maxLanguages = 3

type topic struct {
	label   string
	pattern *regexp.Regexp
}

// topics are tested in order against both the content and the title.
var topics = []topic{
	{"API Documentation", regexp.MustCompile(`(?i)api|endpoint|rest|graphql`)},
	{"Tutorial", regexp.MustCompile(`(?i)tutorial|guide|how.?to|step.?by.?step`)},
	{"Frontend Development", regexp.MustCompile(`(?i)react|vue|angular|javascript|typescript`)},
	{"Programming", regexp.MustCompile(`(?i)python|java|golang|rust|c\+\+`)},
	{"Database", regexp.MustCompile(`(?i)database|sql|mongodb|postgresql`)},
	{"DevOps", regexp.MustCompile(`(?i)docker|kubernetes|deployment|devops`)},
	{"AI/ML", regexp.MustCompile(`(?i)machine.?learning|ai|neural.?network`)},
}

var printer = message.NewPrinter(language.English)

// Generate builds the ordered insight list and slices it to core.MaxInsights.
func Generate(content, title string, blocks []core.CodeBlock) []string {
	words := WordCount(content)

	insights := []string{
		printer.Sprintf("%d words", words),
		printer.Sprintf("%d min read", ReadingMinutes(words)),
	}

	if len(blocks) > 0 {
		insights = append(insights,
			printer.Sprintf("%d code examples", len(blocks)),
			"Languages: "+strings.Join(Languages(blocks, maxLanguages), ", "),
		)
	}

	for _, t := range topics {
		if t.pattern.MatchString(content) || t.pattern.MatchString(title) {
			insights = append(insights, t.label)
		}
	}

	if len(insights) > core.MaxInsights {
		insights = insights[:core.MaxInsights]
	}
	return insights
}

// WordCount counts whitespace-delimited tokens.
func WordCount(content string) int {
	return len(strings.Fields(content))
}

// ReadingMinutes rounds words/200 up.
func ReadingMinutes(words int) int {
	return (words + wordsPerMinute - 1) / wordsPerMinute
}

// Languages returns up to limit distinct languages in order of first use.
func Languages(blocks []core.CodeBlock, limit int) []string {
	seen := make(map[string]bool, len(blocks))
	var langs []string
	for _, b := range blocks {
		if seen[b.Language] {
			continue
		}
		seen[b.Language] = true
		langs = append(langs, b.Language)
		if len(langs) == limit {
			break
		}
	}
	return langs
}
