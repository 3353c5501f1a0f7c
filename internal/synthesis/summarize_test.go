package synthesis

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreSentencesNormalized(t *testing.T) {
	sentences := []string{
		"attention attention attention",
		"attention model",
		"the and or",
	}
	scores := ScoreSentences(sentences)
	require.Len(t, scores, 3)

	// "attention" appears 4 times and is the max frequency; the first
	// sentence is pure repetitions of it, so it scores exactly 1.
	assert.InDelta(t, 1.0, scores[0], 1e-9)
	assert.Greater(t, scores[0], scores[1])
	// All-stopword sentence has no tokens.
	assert.Zero(t, scores[2])
	for _, s := range scores {
		assert.GreaterOrEqual(t, s, 0.0)
		assert.LessOrEqual(t, s, 1.0)
	}
}

func TestScoreSentencesEmptyTable(t *testing.T) {
	scores := ScoreSentences([]string{"the and or", "is was were"})
	assert.Equal(t, []float64{0, 0}, scores)
}

func TestSummarizePicksInsightsByCue(t *testing.T) {
	text := "Deep learning models are powerful. Our method outperforms baselines. We also show robustness."
	res := Summarize(text, 2, false)

	assert.Equal(t, "Deep learning models are powerful. Our method outperforms baselines.", res.Summary)
	assert.Contains(t, res.KeyInsights, "Our method outperforms baselines.")
	assert.Equal(t, res.KeyInsights, res.Bullets)
	assert.LessOrEqual(t, len(res.Bullets), 5)
}

func TestSummarizePreservesSourceOrder(t *testing.T) {
	text := "Alpha beta gamma. Common common common words. Delta epsilon zeta. Common common appears again."
	res := Summarize(text, 2, false)

	sentences := SplitSentences(text)
	// The summary must be a subsequence of the source sentences.
	last := -1
	for _, s := range SplitSentences(res.Summary) {
		pos := -1
		for i, orig := range sentences {
			if i > last && orig == s {
				pos = i
				break
			}
		}
		require.GreaterOrEqual(t, pos, 0, "summary sentence %q not found after position %d", s, last)
		last = pos
	}
}

func TestSummarizeEmptyText(t *testing.T) {
	res := Summarize("", 5, false)
	assert.Equal(t, "", res.Summary)
	assert.Empty(t, res.KeyInsights)
	assert.Empty(t, res.Bullets)
}

func TestSummarizeTiesFavorEarlierSentence(t *testing.T) {
	// All sentences are tied at score 1; only the first should be kept.
	text := "Alpha beta. Gamma delta. Epsilon zeta."
	res := Summarize(text, 1, false)
	assert.Equal(t, "Alpha beta.", res.Summary)
}

func TestSummarizeInsightFallbackToChosen(t *testing.T) {
	text := "Alpha beta gamma. Delta epsilon zeta."
	res := Summarize(text, 1, false)
	// No cue words anywhere, so bullets fall back to the selected sentences.
	assert.Equal(t, SplitSentences(res.Summary), res.Bullets)
}

func TestSummarizeClipsLongInsights(t *testing.T) {
	long := "We propose " + strings.Repeat("verylongword ", 30) + "here."
	res := Summarize(long, 5, false)
	require.NotEmpty(t, res.Bullets)
	assert.LessOrEqual(t, len(res.Bullets[0]), clipTargetLen+3)
	assert.True(t, strings.HasSuffix(res.Bullets[0], "..."))
}

func TestSummarizeEli5AppliesSimplifier(t *testing.T) {
	text := "We utilize a novel methodology. Our architecture outperforms baselines."
	res := Summarize(text, 5, true)
	assert.NotContains(t, res.Summary, "utilize")
	assert.Contains(t, res.Summary, "use")
	assert.Contains(t, res.Summary, "method")
	for _, b := range res.Bullets {
		assert.NotContains(t, b, "architecture")
	}
}
