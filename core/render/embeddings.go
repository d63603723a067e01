// Embeddings renderer.
// Chunks the Document content and embeds each chunk through an
// OpenAI-compatible embeddings endpoint (Ollama serves one at /v1).
// Output is a human-readable .embeddings.txt file.

package render

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gaurav-prasanna/docmind/core"
	"github.com/gaurav-prasanna/docmind/core/chunk"
	"github.com/gaurav-prasanna/docmind/core/llm"
	openai "github.com/sashabaranov/go-openai"
)

const embeddingTimeout = 60 * time.Second

// EmbeddingsRenderer generates embeddings from content chunks.
type EmbeddingsRenderer struct {
	Model     string
	ChunkSize int
	embedder  llm.Embedder
	ctx       context.Context
}

// NewEmbeddingsRenderer creates an EmbeddingsRenderer.
func NewEmbeddingsRenderer(embedder llm.Embedder, model string, chunkSize int) *EmbeddingsRenderer {
	return &EmbeddingsRenderer{
		Model:     model,
		ChunkSize: chunkSize,
		embedder:  embedder,
	}
}

// WithContext bounds the embeddings call by ctx in addition to the
// renderer's own timeout.
func (r *EmbeddingsRenderer) WithContext(ctx context.Context) *EmbeddingsRenderer {
	r.ctx = ctx
	return r
}

// Render chunks the content, embeds each chunk, and produces
// the human-readable .embeddings.txt output.
func (r *EmbeddingsRenderer) Render(doc *core.Document) ([]byte, error) {
	chunks := chunk.New(r.ChunkSize).Chunk(doc.Content)
	if len(chunks) == 0 {
		return nil, fmt.Errorf("no content to embed")
	}

	parent := r.ctx
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithTimeout(parent, embeddingTimeout)
	defer cancel()

	resp, err := r.embedder.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: chunks,
		Model: openai.EmbeddingModel(r.Model),
	})
	if err != nil {
		return nil, fmt.Errorf("embedding %d chunks: %w", len(chunks), err)
	}
	if len(resp.Data) != len(chunks) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(chunks), len(resp.Data))
	}

	var buf strings.Builder
	fmt.Fprintf(&buf, "# source: %s\n", doc.URL)
	fmt.Fprintf(&buf, "# title: %s\n", doc.Title)
	fmt.Fprintf(&buf, "# model: %s\n", r.Model)
	fmt.Fprintf(&buf, "# chunk_size: %d\n\n", r.ChunkSize)

	for _, e := range resp.Data {
		if e.Index < 0 || e.Index >= len(chunks) {
			return nil, fmt.Errorf("embedding index %d out of range", e.Index)
		}
		fmt.Fprintf(&buf, "--- chunk %d ---\n", e.Index+1)
		fmt.Fprintf(&buf, "TEXT:\n%s\n\n", chunks[e.Index])

		vecStrs := make([]string, len(e.Embedding))
		for j, v := range e.Embedding {
			vecStrs[j] = fmt.Sprintf("%.4f", v)
		}
		fmt.Fprintf(&buf, "VECTOR:\n[%s]\n\n", strings.Join(vecStrs, ", "))
	}

	return []byte(buf.String()), nil
}

// Extension returns the file extension for embeddings output.
func (r *EmbeddingsRenderer) Extension() string {
	return ".embeddings.txt"
}
