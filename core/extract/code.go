package extract

import (
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/gaurav-prasanna/docmind/core"
	"github.com/gaurav-prasanna/docmind/core/markup"
)

type codeRule struct {
	selector string
	matcher  cascadia.Selector
}

func rule(selector string) codeRule {
	return codeRule{selector: selector, matcher: cascadia.MustCompile(selector)}
}

// codeRules are evaluated in order; a fragment is attributed to the
// first rule that reached it.
var codeRules = []codeRule{
	rule("pre code"),
	rule("code"),
	rule(".highlight pre"),
	rule(".code-block"),
	rule(`[class*="language-"]`),
	rule(".hljs"),
}

var (
	contextScope  = cascadia.MustCompile("section, article, div")
	contextSource = cascadia.MustCompile(markup.HeadingSelector + ", p")
)

// ExtractCode collects unique code fragments longer than core.MinCodeChars.
func ExtractCode(tree *markup.Tree) []core.CodeBlock {
	blocks := []core.CodeBlock{}
	seen := make(map[string]bool)

	for _, r := range codeRules {
		tree.FindMatcher(r.matcher).Each(func(_ int, s *goquery.Selection) {
			code := markup.Text(s)
			if utf8.RuneCountInString(code) <= core.MinCodeChars || seen[code] {
				return
			}
			seen[code] = true

			blocks = append(blocks, core.CodeBlock{
				Language: DetectLanguage(markup.ClassOf(s), code),
				Code:     code,
				Context:  codeContext(s),
				Element:  r.selector,
			})
		})
	}
	return blocks
}

// codeContext finds the first heading or paragraph inside the nearest
// enclosing section, article or div.
func codeContext(s *goquery.Selection) string {
	scope := s.ClosestMatcher(contextScope)
	text := markup.Text(scope.FindMatcher(contextSource).First())
	if text == "" {
		return core.DefaultCodeContext
	}
	return core.Truncate(text, core.MaxCodeContextChars)
}
