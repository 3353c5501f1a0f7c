package provider

import (
	"context"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const (
	groqBaseURL      = "https://api.groq.com/openai/v1"
	defaultGroqModel = "llama-3.1-70b-versatile"
)

// openAIGenerator speaks the OpenAI Chat Completions protocol. Groq exposes
// the same wire format, so both vendors share this adapter with different
// base URLs.
type openAIGenerator struct {
	client *openai.Client
	model  openai.ChatModel
}

func newOpenAIGenerator(apiKey, model, baseURL string) *openAIGenerator {
	if apiKey == "" {
		return &openAIGenerator{}
	}
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	if model == "" {
		model = openai.ChatModelGPT4oMini
	}
	cli := openai.NewClient(opts...)
	return &openAIGenerator{client: &cli, model: openai.ChatModel(model)}
}

func groqModel(model string) string {
	if model == "" {
		return defaultGroqModel
	}
	return model
}

func (g *openAIGenerator) Generate(ctx context.Context, messages []Message) Reply {
	if g == nil || g.client == nil {
		return Reply{}
	}
	reqCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	resp, err := g.client.Chat.Completions.New(reqCtx, openai.ChatCompletionNewParams{
		Model:       g.model,
		Messages:    toChatParams(messages),
		Temperature: openai.Float(defaultTemperature),
		MaxTokens:   openai.Int(maxReplyTokens),
	})
	if err != nil {
		return Reply{}
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return Reply{}
	}
	return Reply{Text: resp.Choices[0].Message.Content, Available: true}
}

func toChatParams(messages []Message) []openai.ChatCompletionMessageParamUnion {
	params := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case RoleSystem:
			params = append(params, openai.ChatCompletionMessageParamUnion{
				OfSystem: &openai.ChatCompletionSystemMessageParam{
					Content: openai.ChatCompletionSystemMessageParamContentUnion{
						OfString: openai.String(m.Content),
					},
				},
			})
		case RoleAssistant:
			params = append(params, openai.ChatCompletionMessageParamUnion{
				OfAssistant: &openai.ChatCompletionAssistantMessageParam{
					Content: openai.ChatCompletionAssistantMessageParamContentUnion{
						OfString: openai.String(m.Content),
					},
				},
			})
		default:
			params = append(params, openai.ChatCompletionMessageParamUnion{
				OfUser: &openai.ChatCompletionUserMessageParam{
					Content: openai.ChatCompletionUserMessageParamContentUnion{
						OfString: openai.String(m.Content),
					},
				},
			})
		}
	}
	return params
}
