package synthesis

import (
	"sort"
	"strings"
)

const (
	// NoContextAnswer is returned when the context has no sentences at all.
	NoContextAnswer = "I don't have enough information to answer."

	answerLeadIn   = "Here is what the paper says: "
	noMatchLeadIn  = "Based on the abstract, I cannot find a direct answer. The paper discusses: "
	maxAnswerSents = 3
)

// Respond answers a question against a context by lexical retrieval: context
// sentences are ranked by the size of their token overlap with the question
// and the best matches are quoted back in source order. With no positive
// overlap the first two context sentences are returned as background instead.
func Respond(contextText, question string, eli5 bool) string {
	sentences := SplitSentences(contextText)
	if len(sentences) == 0 {
		if eli5 {
			return Simplify(NoContextAnswer)
		}
		return NoContextAnswer
	}

	query := make(map[string]struct{})
	for _, t := range Tokenize(question) {
		query[t] = struct{}{}
	}

	overlaps := make([]int, len(sentences))
	for i, s := range sentences {
		seen := make(map[string]struct{})
		for _, t := range Tokenize(s) {
			if _, dup := seen[t]; dup {
				continue
			}
			seen[t] = struct{}{}
			if _, ok := query[t]; ok {
				overlaps[i]++
			}
		}
	}

	order := make([]int, len(sentences))
	for i := range order {
		order[i] = i
	}
	// Stable: ties keep the original relative order.
	sort.SliceStable(order, func(a, b int) bool { return overlaps[order[a]] > overlaps[order[b]] })

	var picked []int
	for _, idx := range order {
		if overlaps[idx] == 0 || len(picked) == maxAnswerSents {
			break
		}
		picked = append(picked, idx)
	}

	var answer string
	if len(picked) == 0 {
		background := sentences
		if len(background) > 2 {
			background = background[:2]
		}
		answer = noMatchLeadIn + strings.Join(background, " ")
	} else {
		sort.Ints(picked)
		top := make([]string, len(picked))
		for i, idx := range picked {
			top[i] = sentences[idx]
		}
		answer = answerLeadIn + strings.Join(top, " ")
	}

	if eli5 {
		return Simplify(answer)
	}
	return answer
}
