// Package llm adapts OpenAI-compatible backends to the small interfaces
// the assistant and the embeddings renderer depend on.
package llm

import (
	"context"

	openai "github.com/sashabaranov/go-openai"
)

// Client is the minimal interface needed to call a chat model.
type Client interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Embedder produces vector embeddings.
type Embedder interface {
	CreateEmbeddings(ctx context.Context, conv openai.EmbeddingRequestConverter) (openai.EmbeddingResponse, error)
}

// Endpoint describes one OpenAI-compatible backend.
type Endpoint struct {
	BaseURL string
	APIKey  string
	Model   string
}

// OpenAIProvider adapts *openai.Client to Client and Embedder.
type OpenAIProvider struct {
	Inner *openai.Client
}

// NewProvider builds a provider for an endpoint. An empty BaseURL keeps
// the library default.
func NewProvider(e Endpoint) *OpenAIProvider {
	cfg := openai.DefaultConfig(e.APIKey)
	if e.BaseURL != "" {
		cfg.BaseURL = e.BaseURL
	}
	return &OpenAIProvider{Inner: openai.NewClientWithConfig(cfg)}
}

func (p *OpenAIProvider) CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	return p.Inner.CreateChatCompletion(ctx, request)
}

func (p *OpenAIProvider) CreateEmbeddings(ctx context.Context, conv openai.EmbeddingRequestConverter) (openai.EmbeddingResponse, error) {
	return p.Inner.CreateEmbeddings(ctx, conv)
}
