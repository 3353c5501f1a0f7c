package engine

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"research-agent/internal/provider"
	"research-agent/internal/synthesis"
)

func newTestEngine(router Router) *Engine {
	return New(router, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestSummarizeUsesProviderReply(t *testing.T) {
	router := new(MockRouter)
	router.On("Generate", mock.Anything, "openai", mock.Anything).
		Return(provider.Reply{
			Text:      "A tight summary paragraph.\n\n- first insight\n- second insight",
			Available: true,
		}).Once()

	res := newTestEngine(router).Summarize(context.Background(), "Some abstract text.", ModeDefault, "openai")

	assert.Equal(t, "A tight summary paragraph.", res.Summary)
	assert.Equal(t, []string{"first insight", "second insight"}, res.Bullets)
	assert.Equal(t, res.KeyInsights, res.Bullets)
	router.AssertExpectations(t)
}

func TestSummarizeFallsBackOffline(t *testing.T) {
	router := new(MockRouter)
	router.On("Generate", mock.Anything, "openai", mock.Anything).
		Return(provider.Reply{}).Once()

	text := "Deep learning models are powerful. Our method outperforms baselines."
	res := newTestEngine(router).Summarize(context.Background(), text, ModeDefault, "openai")

	// The fallback must equal the pure-offline result for the same input.
	want := synthesis.Summarize(text, synthesis.DefaultMaxSentences, false)
	assert.Equal(t, want, res)
	router.AssertExpectations(t)
}

func TestSummarizeSendsEli5Framing(t *testing.T) {
	router := new(MockRouter)
	router.On("Generate", mock.Anything, "groq", mock.MatchedBy(func(msgs []provider.Message) bool {
		return len(msgs) == 2 &&
			msgs[0].Role == provider.RoleSystem &&
			strings.Contains(msgs[0].Content, "Explain like I'm five")
	})).Return(provider.Reply{Text: "Simple words.", Available: true}).Once()

	newTestEngine(router).Summarize(context.Background(), "Some text.", ModeEli5, "groq")
	router.AssertExpectations(t)
}

func TestChatReturnsProviderReplyVerbatim(t *testing.T) {
	router := new(MockRouter)
	router.On("Generate", mock.Anything, "anthropic", mock.MatchedBy(func(msgs []provider.Message) bool {
		// system + history (2) + new user turn
		return len(msgs) == 4 && msgs[3].Role == provider.RoleUser
	})).Return(provider.Reply{Text: "verbatim answer\nwith newlines", Available: true}).Once()

	history := []provider.Message{
		{Role: provider.RoleUser, Content: "earlier question"},
		{Role: provider.RoleAssistant, Content: "earlier answer"},
	}
	got := newTestEngine(router).Chat(context.Background(), "Some context.", "A question?", ModeDefault, "anthropic", history)

	assert.Equal(t, "verbatim answer\nwith newlines", got)
	router.AssertExpectations(t)
}

func TestChatFallsBackToRetrieval(t *testing.T) {
	router := new(MockRouter)
	router.On("Generate", mock.Anything, "offline", mock.Anything).
		Return(provider.Reply{}).Once()

	contextText := "The model uses attention. Attention improves accuracy."
	got := newTestEngine(router).Chat(context.Background(), contextText, "How does attention help accuracy?", ModeDefault, "offline", nil)

	want := synthesis.Respond(contextText, "How does attention help accuracy?", false)
	assert.Equal(t, want, got)
}

func TestParseSummaryReply(t *testing.T) {
	tests := []struct {
		name        string
		reply       string
		wantSummary string
		wantBullets []string
	}{
		{
			name:        "bullet markers across the reply",
			reply:       "Summary here.\n\nKey points:\n- one\n* two\n• three",
			wantSummary: "Summary here.",
			wantBullets: []string{"one", "two", "three"},
		},
		{
			name:        "no bullets falls back to blocks two and three",
			reply:       "Summary block.\n\nSecond block.\n\nThird block.\n\nFourth block.",
			wantSummary: "Summary block.",
			wantBullets: []string{"Second block.", "Third block."},
		},
		{
			name:        "no blank lines and no bullets yields empty bullets",
			reply:       "Just one paragraph with nothing else.",
			wantSummary: "Just one paragraph with nothing else.",
			wantBullets: []string{},
		},
		{
			name:        "bullets capped at five",
			reply:       "S.\n\n- a\n- b\n- c\n- d\n- e\n- f",
			wantSummary: "S.",
			wantBullets: []string{"a", "b", "c", "d", "e"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := parseSummaryReply(tt.reply)
			assert.Equal(t, tt.wantSummary, res.Summary)
			assert.Equal(t, tt.wantBullets, res.Bullets)
			assert.Equal(t, res.KeyInsights, res.Bullets)
		})
	}
}

func TestClipWords(t *testing.T) {
	assert.Equal(t, "a b", clipWords("a b", 10))
	assert.Equal(t, "a b c", clipWords("a b c d e", 3))
	require.Equal(t, "", clipWords("", 3))
}
