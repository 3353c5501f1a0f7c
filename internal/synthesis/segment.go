// Package synthesis implements the deterministic text engine: sentence
// segmentation, frequency-based extractive summarization, plain-language
// rewriting, and token-overlap question answering. It has no external
// dependencies and never fails; every function returns a usable value for
// any input.
package synthesis

import (
	"regexp"
	"strings"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// SplitSentences normalizes whitespace and splits text into sentences at
// '.', '!' or '?' followed by whitespace. Empty fragments are dropped.
func SplitSentences(text string) []string {
	text = whitespaceRun.ReplaceAllString(strings.TrimSpace(text), " ")
	if text == "" {
		return nil
	}

	var sentences []string
	start := 0
	for i := 0; i < len(text)-1; i++ {
		c := text[i]
		if (c == '.' || c == '!' || c == '?') && text[i+1] == ' ' {
			if s := strings.TrimSpace(text[start : i+1]); s != "" {
				sentences = append(sentences, s)
			}
			start = i + 2
		}
	}
	if s := strings.TrimSpace(text[start:]); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}
