package synthesis

import (
	"regexp"
	"strings"
)

var wordPattern = regexp.MustCompile(`[A-Za-z][A-Za-z\-']+`)

// stopwords are filtered out before any frequency counting. The set covers
// articles, conjunctions, common prepositions and auxiliary verbs.
var stopwords = buildStopwords()

func buildStopwords() map[string]struct{} {
	const list = "a an the and or but if while with without within on in at " +
		"for of to from by into over under about as is are was were be been " +
		"being this that these those it its it's their there here such using " +
		"use used than then when where which who whom whose what why how can " +
		"may might should would could our we you your they them do does did " +
		"done not no yes also more most much many few several each per via " +
		"among between across against above below before after during until " +
		"unless because therefore however moreover nonetheless otherwise instead"
	set := make(map[string]struct{})
	for _, w := range strings.Fields(list) {
		set[w] = struct{}{}
	}
	return set
}

// Tokenize extracts lowercase word tokens (letters with internal hyphens or
// apostrophes) and drops stopwords. Duplicates are kept; frequency counting
// downstream is additive.
func Tokenize(text string) []string {
	matches := wordPattern.FindAllString(strings.ToLower(text), -1)
	tokens := make([]string, 0, len(matches))
	for _, m := range matches {
		if _, skip := stopwords[m]; skip {
			continue
		}
		tokens = append(tokens, m)
	}
	return tokens
}
