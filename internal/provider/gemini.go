package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

const (
	geminiBaseURL      = "https://generativelanguage.googleapis.com"
	defaultGeminiModel = "gemini-1.5-flash"
)

// geminiGenerator calls the Gemini generateContent API over plain HTTP.
type geminiGenerator struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

func newGeminiGenerator(apiKey, model, baseURL string) *geminiGenerator {
	if model == "" {
		model = defaultGeminiModel
	}
	if baseURL == "" {
		baseURL = geminiBaseURL
	}
	return &geminiGenerator{
		apiKey:  apiKey,
		model:   model,
		baseURL: baseURL,
		client:  &http.Client{Timeout: defaultTimeout},
	}
}

type geminiRequest struct {
	Contents         []geminiContent `json:"contents"`
	GenerationConfig geminiGenConfig `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (g *geminiGenerator) Generate(ctx context.Context, messages []Message) Reply {
	if g.apiKey == "" {
		return Reply{}
	}

	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: flattenPrompt(messages)}}}},
		GenerationConfig: geminiGenConfig{
			Temperature:     defaultTemperature,
			MaxOutputTokens: maxReplyTokens,
		},
	})
	if err != nil {
		return Reply{}
	}

	url := g.baseURL + "/v1beta/models/" + g.model + ":generateContent?key=" + g.apiKey
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return Reply{}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return Reply{}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Reply{}
	}

	var parsed geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return Reply{}
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return Reply{}
	}
	text := parsed.Candidates[0].Content.Parts[0].Text
	if text == "" {
		return Reply{}
	}
	return Reply{Text: text, Available: true}
}

// flattenPrompt concatenates the system prompt and user turns into a single
// prompt string; Gemini receives one combined content block.
func flattenPrompt(messages []Message) string {
	var parts []string
	for _, m := range messages {
		switch m.Role {
		case RoleSystem:
			parts = append([]string{m.Content}, parts...)
		case RoleUser:
			parts = append(parts, m.Content)
		}
	}
	return strings.TrimSpace(strings.Join(parts, "\n\n"))
}
