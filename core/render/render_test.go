package render

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/gaurav-prasanna/docmind/core"
	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDoc() *core.Document {
	return &core.Document{
		Title:   "Install Guide",
		Content: "Install the tool. Then run it.",
		StructuredContent: core.StructuredContent{Sections: []core.Section{
			{Heading: "Install", Content: "Install the tool.", Level: 1},
			{Heading: "Run", Content: "Then run it.", Level: 2},
		}},
		CodeBlocks: []core.CodeBlock{
			{Language: "bash", Code: "pip install docmind", Context: "Install", Element: "pre code"},
			{Language: "python", Code: "import docmind\ndocmind.run()", Context: "Run", Element: "pre code"},
		},
		URL:      "https://example.com/install",
		Insights: []string{"6 words", "1 min read"},
	}
}

func TestGroundingContext(t *testing.T) {
	t.Parallel()

	want := "DOCUMENT TITLE: Install Guide\n\n" +
		"DOCUMENT CONTENT:\nInstall the tool. Then run it.\n\n" +
		"CODE EXAMPLES:\n" +
		"Code 1 (bash):\npip install docmind\n\n" +
		"Code 2 (python):\nimport docmind\ndocmind.run()\n\n"
	assert.Equal(t, want, GroundingContext(sampleDoc()))
}

func TestGroundingContext_NoCode(t *testing.T) {
	t.Parallel()

	doc := sampleDoc()
	doc.CodeBlocks = nil
	assert.NotContains(t, GroundingContext(doc), "CODE EXAMPLES")

	out, err := NewContextRenderer().Render(doc)
	require.NoError(t, err)
	assert.Equal(t, GroundingContext(doc), string(out))
}

func TestJSONRenderer(t *testing.T) {
	t.Parallel()

	out, err := NewJSONRenderer().Render(sampleDoc())
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out, &decoded))
	for _, key := range []string{"title", "content", "structuredContent", "codeBlocks", "url", "insights"} {
		assert.Contains(t, decoded, key)
	}
	assert.Equal(t, ".json", NewJSONRenderer().Extension())
}

func TestMarkdownRenderer_FromSections(t *testing.T) {
	t.Parallel()

	out, err := NewMarkdownRenderer().Render(sampleDoc())
	require.NoError(t, err)
	md := string(out)

	assert.True(t, strings.HasPrefix(md, "# Install Guide\n\nSource: https://example.com/install\n\n"))
	assert.Contains(t, md, "## Install\n\nInstall the tool.")
	assert.Contains(t, md, "### Run\n\nThen run it.")
	assert.Contains(t, md, "```python\nimport docmind\ndocmind.run()\n```")
	assert.Contains(t, md, "_6 words · 1 min read_")
}

func TestMarkdownRenderer_PrefersRendition(t *testing.T) {
	t.Parallel()

	doc := sampleDoc()
	doc.Markdown = "## From the page\n\nConverted body."
	out, err := NewMarkdownRenderer().Render(doc)
	require.NoError(t, err)
	assert.Contains(t, string(out), "Converted body.")
	assert.NotContains(t, string(out), "### Run")
}

func TestMarkdownRenderer_FallsBackToContent(t *testing.T) {
	t.Parallel()

	doc := sampleDoc()
	doc.StructuredContent.Sections = nil
	out, err := NewMarkdownRenderer().Render(doc)
	require.NoError(t, err)
	assert.Contains(t, string(out), "Install the tool. Then run it.")
}

func TestPDFRenderer(t *testing.T) {
	t.Parallel()

	out, err := NewPDFRenderer().Render(sampleDoc())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
	assert.Equal(t, ".pdf", NewPDFRenderer().Extension())
}

func TestCleanInlineMarkdown(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "bold and code and link", cleanInlineMarkdown("**bold** and `code` and [link](https://x.y)"))
}

type fakeEmbedder struct {
	got openai.EmbeddingRequest
	err error
}

func (f *fakeEmbedder) CreateEmbeddings(ctx context.Context, conv openai.EmbeddingRequestConverter) (openai.EmbeddingResponse, error) {
	if err := ctx.Err(); err != nil {
		return openai.EmbeddingResponse{}, err
	}
	if f.err != nil {
		return openai.EmbeddingResponse{}, f.err
	}
	f.got = conv.Convert()
	inputs := f.got.Input.([]string)
	resp := openai.EmbeddingResponse{}
	for i := range inputs {
		resp.Data = append(resp.Data, openai.Embedding{Index: i, Embedding: []float32{float32(i), 0.5}})
	}
	return resp, nil
}

func TestEmbeddingsRenderer(t *testing.T) {
	t.Parallel()

	emb := &fakeEmbedder{}
	out, err := NewEmbeddingsRenderer(emb, "nomic-embed-text", 3).Render(sampleDoc())
	require.NoError(t, err)

	text := string(out)
	assert.Contains(t, text, "# model: nomic-embed-text")
	assert.Contains(t, text, "--- chunk 1 ---\nTEXT:\nInstall the tool.")
	assert.Contains(t, text, "--- chunk 2 ---\nTEXT:\nThen run it.")
	assert.Contains(t, text, "VECTOR:\n[1.0000, 0.5000]")
	assert.Equal(t, openai.EmbeddingModel("nomic-embed-text"), emb.got.Model)
}

func TestEmbeddingsRenderer_Errors(t *testing.T) {
	t.Parallel()

	doc := sampleDoc()
	doc.Content = ""
	_, err := NewEmbeddingsRenderer(&fakeEmbedder{}, "m", 3).Render(doc)
	require.Error(t, err)

	_, err = NewEmbeddingsRenderer(&fakeEmbedder{err: errors.New("down")}, "m", 3).Render(sampleDoc())
	require.Error(t, err)
}

func TestEmbeddingsRenderer_HonorsCallerContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	emb := &fakeEmbedder{}
	_, err := NewEmbeddingsRenderer(emb, "m", 3).WithContext(ctx).Render(sampleDoc())
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
