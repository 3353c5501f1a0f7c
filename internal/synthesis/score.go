package synthesis

// ScoreSentences assigns each sentence a salience score in [0, 1]: the sum of
// its token frequencies across the whole input, normalized by the sentence's
// token count and the highest single-token frequency. Sentences without
// tokens score 0, and an all-stopword input yields all zeros.
func ScoreSentences(sentences []string) []float64 {
	freq := make(map[string]int)
	for _, s := range sentences {
		for _, t := range Tokenize(s) {
			freq[t]++
		}
	}

	scores := make([]float64, len(sentences))
	if len(freq) == 0 {
		return scores
	}
	maxFreq := 0
	for _, n := range freq {
		if n > maxFreq {
			maxFreq = n
		}
	}

	for i, s := range sentences {
		tokens := Tokenize(s)
		if len(tokens) == 0 {
			continue
		}
		sum := 0
		for _, t := range tokens {
			sum += freq[t]
		}
		scores[i] = float64(sum) / float64(len(tokens)*maxFreq)
	}
	return scores
}
