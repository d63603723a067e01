package assistant

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/gaurav-prasanna/docmind/core"
)

const (
	defaultDescription  = "I found information in the document that addresses your question."
	fallbackDescription = "I found relevant information in the document."
	fallbackCodeLabel   = "Code from document"

	maxFallbackChars  = 500
	maxFallbackBlocks = 2
)

var fencedJSON = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)\\s*```")

// Reply is the structured answer returned to the caller.
type Reply struct {
	Description string        `json:"description"`
	Steps       []string      `json:"steps,omitempty"`
	CodeBlocks  []CodeSnippet `json:"codeBlocks"`
	ExactMatch  bool          `json:"exactMatch"`
	NotFound    bool          `json:"notFound"`

	// Repairs names the fields ParseReply had to coerce.
	Repairs []string `json:"-"`
}

// CodeSnippet is a code sample quoted in a reply.
type CodeSnippet struct {
	Language    string `json:"language"`
	Code        string `json:"code"`
	Description string `json:"description"`
}

// ParseReply pulls the JSON object out of a model reply and repairs
// fields of the wrong shape, listing them in Reply.Repairs. Values of the
// wrong type are kept where they have a meaning: a non-string description
// keeps its JSON text and non-boolean flags take their truthiness. It
// fails only when no JSON object decodes.
func ParseReply(text string) (*Reply, error) {
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal([]byte(isolateJSON(text)), &fields); err != nil {
		return nil, fmt.Errorf("decoding reply: %w", err)
	}

	reply := &Reply{CodeBlocks: []CodeSnippet{}}

	if raw, ok := fields["description"]; ok {
		if err := json.Unmarshal(raw, &reply.Description); err != nil && truthy(raw) {
			reply.Description = string(raw)
			reply.repaired("description")
		}
	}
	if reply.Description == "" {
		reply.Description = defaultDescription
	}

	if raw, ok := fields["steps"]; ok {
		if err := json.Unmarshal(raw, &reply.Steps); err != nil {
			reply.Steps = []string{}
			reply.repaired("steps")
		}
	}

	if raw, ok := fields["codeBlocks"]; ok {
		var blocks []CodeSnippet
		if err := json.Unmarshal(raw, &blocks); err == nil && blocks != nil {
			reply.CodeBlocks = blocks
		} else {
			reply.repaired("codeBlocks")
		}
	}

	reply.ExactMatch = reply.flag(fields, "exactMatch")
	reply.NotFound = reply.flag(fields, "notFound")

	return reply, nil
}

func (r *Reply) repaired(field string) {
	r.Repairs = append(r.Repairs, field)
}

func (r *Reply) flag(fields map[string]json.RawMessage, name string) bool {
	raw, ok := fields[name]
	if !ok {
		return false
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return b
	}
	r.repaired(name)
	return truthy(raw)
}

// truthy mirrors how a browser script would test the value: null, false,
// 0 and "" are false, everything else true.
func truthy(raw json.RawMessage) bool {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return false
	}
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case float64:
		return x != 0
	case string:
		return x != ""
	default:
		return true
	}
}

// isolateJSON strips a fenced block and anything outside the outermost
// braces.
func isolateJSON(text string) string {
	clean := strings.TrimSpace(text)

	if strings.Contains(clean, "```") {
		if m := fencedJSON.FindStringSubmatch(clean); m != nil {
			clean = strings.TrimSpace(m[1])
		}
	}

	start := strings.Index(clean, "{")
	end := strings.LastIndex(clean, "}")
	if start != -1 && end > start {
		clean = clean[start : end+1]
	}
	return clean
}

// FallbackReply is used when the model's text cannot be decoded. It keeps
// the start of the text and quotes the document's first code blocks.
func FallbackReply(text string, doc *core.Document) *Reply {
	description := fallbackDescription
	if text != "" {
		description = core.Truncate(text, maxFallbackChars) + "..."
	}

	blocks := []CodeSnippet{}
	for i, b := range doc.CodeBlocks {
		if i == maxFallbackBlocks {
			break
		}
		lang := b.Language
		if lang == "" {
			lang = "text"
		}
		label := b.Context
		if label == "" {
			label = fallbackCodeLabel
		}
		blocks = append(blocks, CodeSnippet{Language: lang, Code: b.Code, Description: label})
	}

	return &Reply{
		Description: description,
		CodeBlocks:  blocks,
	}
}
