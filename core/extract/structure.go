package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/gaurav-prasanna/docmind/core"
	"github.com/gaurav-prasanna/docmind/core/markup"
)

var headingMatcher = cascadia.MustCompile(markup.HeadingSelector)

// Outline walks the headings under content in document order. A section's
// text is every following sibling element up to the next heading of any
// level. Sections with an empty heading or body are dropped.
func Outline(content *goquery.Selection) []core.Section {
	sections := []core.Section{}

	content.FindMatcher(headingMatcher).Each(func(_ int, h *goquery.Selection) {
		heading := markup.Text(h)

		parts := h.NextUntilMatcher(headingMatcher).Map(func(_ int, s *goquery.Selection) string {
			return markup.Text(s)
		})
		body := strings.TrimSpace(strings.Join(parts, " "))

		if heading == "" || body == "" {
			return
		}
		sections = append(sections, core.Section{
			Heading: heading,
			Content: core.Truncate(body, core.MaxSectionContentChars),
			Level:   markup.HeadingLevel(h),
		})
	})
	return sections
}
