package synthesis

import (
	"regexp"
	"strings"
)

const (
	maxSentenceLen = 220
	clipTargetLen  = 200
)

// eli5Replacements maps jargon to plain-language substitutes. Matching is
// whole-word and case-insensitive, so trigger words embedded in longer words
// ("utilization") are left alone.
var eli5Replacements = map[string]string{
	"utilize":       "use",
	"approximately": "about",
	"methodology":   "method",
	"optimization":  "improving",
	"architecture":  "design",
	"parameters":    "settings",
	"algorithm":     "set of steps",
	"demonstrate":   "show",
	"significant":   "big",
	"objective":     "goal",
	"hypothesis":    "idea",
	"complex":       "hard",
	"simplify":      "make easier",
	"evaluation":    "testing",
	"robust":        "reliable",
}

var eli5Pattern = buildEli5Pattern()

func buildEli5Pattern() *regexp.Regexp {
	words := make([]string, 0, len(eli5Replacements))
	for w := range eli5Replacements {
		words = append(words, w)
	}
	return regexp.MustCompile(`(?i)\b(` + strings.Join(words, "|") + `)\b`)
}

// Simplify rewrites text into a plain-language register: whole-word lexical
// substitution followed by clipping of overlong sentences. It is purely
// textual and idempotent once no trigger words remain.
func Simplify(text string) string {
	out := eli5Pattern.ReplaceAllStringFunc(text, func(m string) string {
		if repl, ok := eli5Replacements[strings.ToLower(m)]; ok {
			return repl
		}
		return m
	})

	sentences := SplitSentences(out)
	clipped := make([]string, len(sentences))
	for i, s := range sentences {
		clipped[i] = clipSentence(s)
	}
	return strings.Join(clipped, " ")
}

// clipSentence shortens sentences longer than 220 characters to their first
// 200 characters plus an ellipsis.
func clipSentence(s string) string {
	if len(s) <= maxSentenceLen {
		return s
	}
	return strings.TrimRight(s[:clipTargetLen], " ") + "..."
}
