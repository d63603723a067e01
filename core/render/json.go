// JSON renderer.
// Serializes the Document exactly as the HTTP surface returns it.

package render

import (
	"encoding/json"
	"fmt"

	"github.com/gaurav-prasanna/docmind/core"
)

// JSONRenderer produces indented JSON output from a Document.
type JSONRenderer struct{}

// NewJSONRenderer creates a JSONRenderer.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

// Render marshals the Document.
func (r *JSONRenderer) Render(doc *core.Document) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling JSON: %w", err)
	}
	return data, nil
}

// Extension returns the file extension for JSON output.
func (r *JSONRenderer) Extension() string {
	return ".json"
}
