package synthesis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitSentences(t *testing.T) {
	got := SplitSentences("First sentence. Second one!  Third\n\tone?")
	assert.Equal(t, []string{"First sentence.", "Second one!", "Third one?"}, got)
}

func TestSplitSentencesEmptyInput(t *testing.T) {
	assert.Empty(t, SplitSentences(""))
	assert.Empty(t, SplitSentences("   \n\t  "))
}

func TestSplitSentencesNoTerminator(t *testing.T) {
	got := SplitSentences("a fragment without punctuation")
	assert.Equal(t, []string{"a fragment without punctuation"}, got)
}

func TestSplitSentencesCollapsesWhitespace(t *testing.T) {
	got := SplitSentences("  Padded   with    runs. Trailing space. ")
	assert.Equal(t, []string{"Padded with runs.", "Trailing space."}, got)
}

func TestTokenizeFiltersStopwords(t *testing.T) {
	got := Tokenize("The model uses state-of-the-art attention and a robust design")
	assert.Equal(t, []string{"model", "uses", "state-of-the-art", "attention", "robust", "design"}, got)
}

func TestTokenizeLowercasesAndKeepsDuplicates(t *testing.T) {
	got := Tokenize("Attention attention ATTENTION")
	assert.Equal(t, []string{"attention", "attention", "attention"}, got)
}

func TestTokenizeSymbolOnlyInput(t *testing.T) {
	assert.Empty(t, Tokenize("42 + 17 = 59 !!!"))
}
