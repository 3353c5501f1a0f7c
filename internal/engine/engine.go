// Package engine exposes the two public operations of the system:
// summarization and contextual chat. Each call first attempts the requested
// external provider and converges on the offline synthesis engine whenever
// the provider is unavailable, so every call returns a usable result.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"research-agent/internal/provider"
	"research-agent/internal/synthesis"
)

// Modes accepted by Summarize and Chat. Anything other than "eli5" is
// treated as default.
const (
	ModeDefault = "default"
	ModeEli5    = "eli5"
)

// maxPromptWords bounds how much text is shipped to an external provider.
// The offline path always sees the full input.
const maxPromptWords = 4000

const (
	summarizeSystemPrompt = "You summarize scientific papers clearly and concisely. " +
		"Also extract 3-5 key insights as bullets."
	eli5SystemSuffix = " Explain like I'm five without losing the main ideas."
	chatSystemPrompt = "Answer questions using the given paper context. If unsure, say so."
)

// Router is the provider dispatch capability the engine depends on.
type Router interface {
	Generate(ctx context.Context, name string, messages []provider.Message) provider.Reply
}

// Engine is stateless and safe for concurrent use.
type Engine struct {
	router Router
	log    *slog.Logger
}

func New(router Router, log *slog.Logger) *Engine {
	return &Engine{router: router, log: log}
}

// Summarize produces a summary plus key-insight bullets for the given text.
// A successful provider reply is parsed heuristically; otherwise the
// deterministic extractor runs.
func (e *Engine) Summarize(ctx context.Context, text, mode, providerName string) synthesis.Result {
	eli5 := strings.EqualFold(mode, ModeEli5)

	system := summarizeSystemPrompt
	if eli5 {
		system += eli5SystemSuffix
	}
	user := fmt.Sprintf(
		"Summarize the following scientific abstract or excerpt in 6-8 sentences. "+
			"Then list 3-5 key insights as bullets.\n\nTEXT:\n%s",
		clipWords(text, maxPromptWords),
	)
	messages := []provider.Message{
		{Role: provider.RoleSystem, Content: system},
		{Role: provider.RoleUser, Content: user},
	}

	if reply := e.router.Generate(ctx, providerName, messages); reply.Available {
		return parseSummaryReply(reply.Text)
	}
	e.log.Debug("provider unavailable, summarizing offline", "provider", providerName)
	return synthesis.Summarize(text, synthesis.DefaultMaxSentences, eli5)
}

// Chat answers a question about a context. A provider reply is returned
// verbatim; the fallback is lexical retrieval over the context sentences.
func (e *Engine) Chat(ctx context.Context, contextText, question, mode, providerName string, history []provider.Message) string {
	eli5 := strings.EqualFold(mode, ModeEli5)

	messages := make([]provider.Message, 0, len(history)+2)
	messages = append(messages, provider.Message{Role: provider.RoleSystem, Content: chatSystemPrompt})
	messages = append(messages, history...)
	messages = append(messages, provider.Message{
		Role:    provider.RoleUser,
		Content: fmt.Sprintf("Context:\n%s\n\nQuestion: %s", clipWords(contextText, maxPromptWords), question),
	})

	if reply := e.router.Generate(ctx, providerName, messages); reply.Available {
		return reply.Text
	}
	e.log.Debug("provider unavailable, answering offline", "provider", providerName)
	return synthesis.Respond(contextText, question, eli5)
}

// parseSummaryReply splits a free-form provider reply into summary and
// bullets: the first blank-line block is the summary, bullet-marked lines
// anywhere become the insights, and with no bullet markers the second and
// third blocks are used instead. A reply with neither yields empty bullets.
func parseSummaryReply(reply string) synthesis.Result {
	blocks := strings.Split(strings.TrimSpace(reply), "\n\n")
	summary := strings.TrimSpace(blocks[0])

	var bullets []string
	for _, line := range strings.Split(reply, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "-") || strings.HasPrefix(trimmed, "*") || strings.HasPrefix(trimmed, "•") {
			bullets = append(bullets, strings.Trim(trimmed, "-*• "))
		}
	}
	if len(bullets) == 0 {
		end := len(blocks)
		if end > 3 {
			end = 3
		}
		for _, block := range blocks[1:end] {
			if b := strings.TrimSpace(block); b != "" {
				bullets = append(bullets, b)
			}
		}
	}
	if len(bullets) > 5 {
		bullets = bullets[:5]
	}
	if bullets == nil {
		bullets = []string{}
	}
	return synthesis.Result{Summary: summary, KeyInsights: bullets, Bullets: bullets}
}

func clipWords(text string, max int) string {
	words := strings.Fields(text)
	if len(words) <= max {
		return text
	}
	return strings.Join(words[:max], " ")
}
