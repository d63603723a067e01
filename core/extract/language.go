package extract

import (
	"regexp"
	"strings"

	"github.com/gaurav-prasanna/docmind/core"
)

// PlainText is the language reported when nothing else matches.
const PlainText = "text"

var classLanguage = regexp.MustCompile(`(?i)(?:language-|lang-)([a-zA-Z0-9]+)`)

// abbreviation maps class-string substrings to languages, checked in order.
var abbreviations = []struct {
	token    string
	language string
}{
	{"js", "javascript"},
	{"ts", "typescript"},
	{"py", "python"},
	{"rb", "ruby"},
	{"sh", "bash"},
	{"yml", "yaml"},
}

// languageRule is one step of the content-based cascade.
type languageRule struct {
	language string
	match    func(code string) bool
}

// compile widens \s in pattern to core.SpaceClass.
func compile(pattern string) *regexp.Regexp {
	return regexp.MustCompile(strings.ReplaceAll(pattern, `\s`, core.SpaceClass))
}

func matches(pattern string) func(string) bool {
	return compile(pattern).MatchString
}

var (
	jsonShape = compile(`^\s*\{|\}$`)

	languageRules = []languageRule{
		{"javascript", matches(`^(?:import\s+.*from|const\s+.*=|function\s+\w+|class\s+\w+)`)},
		{"python", matches(`^(?:def\s+\w+|import\s+\w+|from\s+\w+\s+import)`)},
		{"php", matches(`^(?:<\?php|namespace\s+|class\s+\w+)`)},
		{"c", matches(`^(?:#include|int\s+main|void\s+\w+)`)},
		{"java", matches(`^(?:public\s+class|import\s+java)`)},
		{"html", matches(`^\s*<[^>]+>`)},
		{"json", func(code string) bool {
			return jsonShape.MatchString(code) && strings.Contains(code, ":")
		}},
	}
)

// DetectLanguage resolves a fragment's language from its class string,
// then from its content. It never returns an empty string.
func DetectLanguage(class, code string) string {
	if lang := LanguageFromClass(class); lang != "" {
		return lang
	}
	return LanguageFromContent(code)
}

// LanguageFromClass reads a language-<id> or lang-<id> token, then
// falls back to well-known abbreviations. Empty when neither is present.
func LanguageFromClass(class string) string {
	if m := classLanguage.FindStringSubmatch(class); m != nil {
		return strings.ToLower(m[1])
	}
	for _, abbr := range abbreviations {
		if strings.Contains(class, abbr.token) {
			return abbr.language
		}
	}
	return ""
}

// LanguageFromContent applies the ordered heuristic rules; first match wins.
func LanguageFromContent(code string) string {
	code = strings.TrimFunc(code, core.IsSpace)
	for _, rule := range languageRules {
		if rule.match(code) {
			return rule.language
		}
	}
	return PlainText
}
