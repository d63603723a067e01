// Package output writes rendered documents to disk. File names are
// derived from the document URL (e.g. example_com_docs_intro.md).
package output

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/gaurav-prasanna/docmind/core"
)

// Writer writes rendered output to disk.
type Writer struct {
	OutputDir string
}

// New creates a Writer targeting the given output directory.
// If outputDir is empty, it defaults to the current working directory.
func New(outputDir string) (*Writer, error) {
	if outputDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		outputDir = wd
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	return &Writer{OutputDir: outputDir}, nil
}

// Write stores data for doc and returns the written path.
func (w *Writer) Write(doc *core.Document, data []byte, ext string) (string, error) {
	path := filepath.Join(w.OutputDir, Filename(doc)+ext)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", path, err)
	}
	return path, nil
}

// Filename converts the document URL into a flat file name, falling back
// to the title when the URL carries no host.
func Filename(doc *core.Document) string {
	parsed, err := url.Parse(doc.URL)
	if err != nil || parsed.Host == "" {
		name := sanitize(strings.ToLower(doc.Title))
		if strings.Trim(name, "_") == "" {
			return "document"
		}
		return name
	}

	parts := []string{sanitize(parsed.Host)}
	if path := strings.Trim(parsed.Path, "/"); path != "" {
		for _, seg := range strings.Split(path, "/") {
			parts = append(parts, sanitize(seg))
		}
	}
	return strings.Join(parts, "_")
}

// sanitize replaces non-alphanumeric characters with underscores.
func sanitize(s string) string {
	var b strings.Builder
	for _, ch := range s {
		if (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9') {
			b.WriteRune(ch)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}
