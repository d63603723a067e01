package output

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gaurav-prasanna/docmind/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilename(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		doc  core.Document
		want string
	}{
		{"host only", core.Document{URL: "https://example.com"}, "example_com"},
		{"with path", core.Document{URL: "https://example.com/docs/intro/"}, "example_com_docs_intro"},
		{"port", core.Document{URL: "http://localhost:8080/a.html"}, "localhost_8080_a_html"},
		{"title fallback", core.Document{URL: "not-a-url", Title: "Install Guide"}, "install_guide"},
		{"empty", core.Document{}, "document"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Filename(&tt.doc))
		})
	}
}

func TestWriter_Write(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "nested", "out")
	w, err := New(dir)
	require.NoError(t, err)

	path, err := w.Write(&core.Document{URL: "https://example.com/guide"}, []byte("hello"), ".md")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "example_com_guide.md"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}
