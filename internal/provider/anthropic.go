package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

const (
	anthropicBaseURL      = "https://api.anthropic.com"
	anthropicVersion      = "2023-06-01"
	defaultAnthropicModel = "claude-3-5-haiku-latest"
)

// anthropicGenerator calls the Anthropic Messages API over plain HTTP.
type anthropicGenerator struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

func newAnthropicGenerator(apiKey, model, baseURL string) *anthropicGenerator {
	if model == "" {
		model = defaultAnthropicModel
	}
	if baseURL == "" {
		baseURL = anthropicBaseURL
	}
	return &anthropicGenerator{
		apiKey:  apiKey,
		model:   model,
		baseURL: baseURL,
		client:  &http.Client{Timeout: defaultTimeout},
	}
}

type anthropicRequest struct {
	Model       string             `json:"model"`
	MaxTokens   int                `json:"max_tokens"`
	Temperature float64            `json:"temperature"`
	System      string             `json:"system"`
	Messages    []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

func (g *anthropicGenerator) Generate(ctx context.Context, messages []Message) Reply {
	if g.apiKey == "" {
		return Reply{}
	}

	system, content := foldAnthropicMessages(messages)
	body, err := json.Marshal(anthropicRequest{
		Model:       g.model,
		MaxTokens:   maxReplyTokens,
		Temperature: defaultTemperature,
		System:      system,
		Messages:    []anthropicMessage{{Role: RoleUser, Content: content}},
	})
	if err != nil {
		return Reply{}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/v1/messages", bytes.NewReader(body))
	if err != nil {
		return Reply{}
	}
	req.Header.Set("x-api-key", g.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return Reply{}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Reply{}
	}

	var parsed anthropicResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return Reply{}
	}
	if len(parsed.Content) == 0 || parsed.Content[0].Text == "" {
		return Reply{}
	}
	return Reply{Text: parsed.Content[0].Text, Available: true}
}

// foldAnthropicMessages extracts the system prompt and folds the remaining
// turns into one user message, marking assistant turns as context.
func foldAnthropicMessages(messages []Message) (system, content string) {
	var parts []string
	for _, m := range messages {
		switch m.Role {
		case RoleSystem:
			system = m.Content
		case RoleAssistant:
			parts = append(parts, "Assistant: "+m.Content)
		default:
			parts = append(parts, m.Content)
		}
	}
	if system == "" {
		system = "You are a helpful assistant."
	}
	return system, strings.Join(parts, "\n\n")
}
