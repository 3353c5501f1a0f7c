package synthesis

import (
	"sort"
	"strings"
)

// DefaultMaxSentences bounds summary length when the caller has no opinion.
const DefaultMaxSentences = 5

const maxInsights = 5

// insightCues mark sentences that likely state a contribution or finding.
// Matched case-insensitively as substrings, so "improv" catches both
// "improve" and "improvements".
var insightCues = []string{
	"we ", "our ", "propos", "introduc", "method", "result", "outperform", "improv",
}

// Result is the structured outcome of a summarization call. KeyInsights and
// Bullets are always the same sequence, exposed under both names for caller
// convenience.
type Result struct {
	Summary     string   `json:"summary"`
	KeyInsights []string `json:"key_insights"`
	Bullets     []string `json:"bullets"`
}

// Summarize builds an extractive summary: the maxSentences highest-scoring
// sentences joined in their original order, plus up to five insight bullets
// harvested by lexical cues. When eli5 is set, both summary and bullets are
// passed through Simplify.
func Summarize(text string, maxSentences int, eli5 bool) Result {
	if maxSentences <= 0 {
		maxSentences = DefaultMaxSentences
	}

	sentences := SplitSentences(text)
	if len(sentences) == 0 {
		return Result{Summary: strings.TrimSpace(text), KeyInsights: []string{}, Bullets: []string{}}
	}

	scores := ScoreSentences(sentences)
	order := make([]int, len(sentences))
	for i := range order {
		order[i] = i
	}
	// Stable sort so tied scores favor the earlier sentence.
	sort.SliceStable(order, func(a, b int) bool { return scores[order[a]] > scores[order[b]] })
	if len(order) > maxSentences {
		order = order[:maxSentences]
	}
	// Summaries must read in source order, not score order.
	sort.Ints(order)

	chosen := make([]string, len(order))
	for i, idx := range order {
		chosen[i] = sentences[idx]
	}
	summary := strings.Join(chosen, " ")

	insights := harvestInsights(sentences)
	if len(insights) == 0 {
		insights = chosen
	}
	if len(insights) > maxInsights {
		insights = insights[:maxInsights]
	}
	bullets := make([]string, len(insights))
	for i, s := range insights {
		bullets[i] = clipSentence(s)
	}

	if eli5 {
		summary = Simplify(summary)
		for i := range bullets {
			bullets[i] = Simplify(bullets[i])
		}
	}
	return Result{Summary: summary, KeyInsights: bullets, Bullets: bullets}
}

// harvestInsights scans every sentence, not just the selected ones, for
// contribution cues.
func harvestInsights(sentences []string) []string {
	var insights []string
	for _, s := range sentences {
		lower := strings.ToLower(s)
		for _, cue := range insightCues {
			if strings.Contains(lower, cue) {
				insights = append(insights, s)
				break
			}
		}
	}
	return insights
}
