// Package assistant answers questions about a Document using a chat model
// that is instructed to stay within the document's content.
package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/gaurav-prasanna/docmind/core"
	"github.com/gaurav-prasanna/docmind/core/llm"
	"github.com/gaurav-prasanna/docmind/core/render"
	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
)

// Model choices understood by Answer.
const (
	ModelGroq   = "groq"
	ModelGemini = "gemini"
)

const defaultTemperature = 0.1

// Turn is one prior message in the conversation.
type Turn struct {
	// Type is "user" for questions; anything else is an assistant reply.
	Type    string `json:"type"`
	Content string `json:"content"`
}

// Backend binds a chat client to the model it should call.
type Backend struct {
	Client llm.Client
	Model  string
}

// Assistant routes a conversation to one of its backends.
type Assistant struct {
	backends    map[string]Backend
	temperature float32
	log         zerolog.Logger
}

// Option configures an Assistant.
type Option func(*Assistant)

// WithLogger attaches a logger.
func WithLogger(l zerolog.Logger) Option {
	return func(a *Assistant) { a.log = l }
}

// WithTemperature overrides the sampling temperature.
func WithTemperature(t float32) Option {
	return func(a *Assistant) { a.temperature = t }
}

// New creates an Assistant. backends is keyed by model choice.
func New(backends map[string]Backend, opts ...Option) *Assistant {
	a := &Assistant{
		backends:    backends,
		temperature: defaultTemperature,
		log:         zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// backendFor maps a model choice to a backend; anything other than
// gemini selects groq.
func (a *Assistant) backendFor(choice string) (string, Backend, bool) {
	name := ModelGroq
	if choice == ModelGemini {
		name = ModelGemini
	}
	b, ok := a.backends[name]
	return name, b, ok && b.Client != nil
}

// Answer asks the selected model about doc, given the conversation so far.
// The last turn is normally the user's question.
func (a *Assistant) Answer(ctx context.Context, doc *core.Document, history []Turn, modelChoice string) (*Reply, error) {
	if doc == nil || len(history) == 0 {
		return nil, fmt.Errorf("%w: messages and document are required", core.ErrValidationFailure)
	}

	name, backend, ok := a.backendFor(modelChoice)
	if !ok {
		return nil, fmt.Errorf("%w: model %q is not configured", core.ErrAssistantFailure, name)
	}

	req := openai.ChatCompletionRequest{
		Model:       backend.Model,
		Messages:    buildMessages(doc, history),
		Temperature: a.temperature,
	}

	resp, err := backend.Client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s completion: %w", core.ErrAssistantFailure, name, err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: %s returned no choices", core.ErrAssistantFailure, name)
	}

	text := resp.Choices[0].Message.Content
	reply, err := ParseReply(text)
	if err != nil {
		a.log.Warn().Err(err).Str("model", name).Msg("reply was not valid JSON, using fallback")
		reply = FallbackReply(text, doc)
	}
	if len(reply.Repairs) > 0 {
		a.log.Debug().Str("model", name).Strs("fields", reply.Repairs).Msg("repaired reply fields")
	}

	a.log.Debug().
		Str("model", name).
		Int("turns", len(history)).
		Bool("not_found", reply.NotFound).
		Msg("answered")
	return reply, nil
}

func buildMessages(doc *core.Document, history []Turn) []openai.ChatCompletionMessage {
	messages := make([]openai.ChatCompletionMessage, 0, len(history)+1)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: SystemPrompt(doc),
	})
	for _, turn := range history {
		role := openai.ChatMessageRoleAssistant
		if turn.Type == "user" {
			role = openai.ChatMessageRoleUser
		}
		messages = append(messages, openai.ChatCompletionMessage{Role: role, Content: turn.Content})
	}
	return messages
}

// SystemPrompt embeds the grounding context and the reply contract.
func SystemPrompt(doc *core.Document) string {
	var b strings.Builder
	b.WriteString("You are DocuMind, an AI assistant that analyzes documents. ")
	b.WriteString("Answer questions based ONLY on the provided document content.\n\n")
	b.WriteString("DOCUMENT:\n")
	b.WriteString(render.GroundingContext(doc))
	b.WriteString(`
INSTRUCTIONS:
1. Answer only from the document content
2. Be helpful and accurate
3. Include code examples if relevant
4. Provide step-by-step instructions if asked

RESPONSE FORMAT - Return ONLY valid JSON:
{
  "description": "Your detailed answer based on the document",
  "steps": ["Include only if user asks for how-to or steps"],
  "codeBlocks": [
    {
      "language": "javascript",
      "code": "actual code from document",
      "description": "what this code does"
    }
  ],
  "exactMatch": true,
  "notFound": false
}

If information is not found, set "notFound": true and provide the closest relevant information.`)
	return b.String()
}
