// Package provider routes generation requests to external LLM services.
// Adapters never surface transport or auth failures: every attempt resolves
// to a Reply that is either available or not, and the caller decides whether
// to fall back to the offline engine.
package provider

import (
	"context"
	"strings"
	"time"
)

// Message roles mirror the chat-completion convention.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Provider names accepted by the Router. Anything else resolves to offline
// behavior.
const (
	NameOffline   = "offline"
	NameOpenAI    = "openai"
	NameGroq      = "groq"
	NameAnthropic = "anthropic"
	NameGemini    = "gemini"
)

const (
	defaultTimeout     = 30 * time.Second
	defaultTemperature = 0.2
	maxReplyTokens     = 800
)

// Message is one turn of a conversation sent to a provider.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Reply is the outcome of a single provider attempt. Available is false when
// the provider has no credential, the call failed, or the response was
// malformed; the zero value means "unavailable".
type Reply struct {
	Text      string
	Available bool
}

// Generator is the single capability every adapter implements.
type Generator interface {
	Generate(ctx context.Context, messages []Message) Reply
}

// Config is a snapshot of provider credentials and model choices, resolved
// once per Router construction so tests never need environment mutation.
type Config struct {
	OpenAIKey      string
	OpenAIModel    string
	GroqKey        string
	GroqModel      string
	AnthropicKey   string
	AnthropicModel string
	GeminiKey      string
	GeminiModel    string
}

// Router dispatches by provider name over a closed lookup table.
type Router struct {
	generators map[string]Generator
}

// NewRouter wires one adapter per known vendor from the given snapshot.
func NewRouter(cfg Config) *Router {
	return &Router{
		generators: map[string]Generator{
			NameOpenAI:    newOpenAIGenerator(cfg.OpenAIKey, cfg.OpenAIModel, ""),
			NameGroq:      newOpenAIGenerator(cfg.GroqKey, groqModel(cfg.GroqModel), groqBaseURL),
			NameAnthropic: newAnthropicGenerator(cfg.AnthropicKey, cfg.AnthropicModel, ""),
			NameGemini:    newGeminiGenerator(cfg.GeminiKey, cfg.GeminiModel, ""),
		},
	}
}

// Generate tries the named provider once. Unknown names, "offline", and the
// empty string return an unavailable Reply without attempting any call.
func (r *Router) Generate(ctx context.Context, name string, messages []Message) Reply {
	gen, ok := r.generators[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Reply{}
	}
	return gen.Generate(ctx, messages)
}
