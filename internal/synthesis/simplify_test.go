package synthesis

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimplifySubstitutesWholeWords(t *testing.T) {
	got := Simplify("We utilize a complex methodology.")
	assert.Equal(t, "We use a hard method.", got)
}

func TestSimplifyIsCaseInsensitive(t *testing.T) {
	got := Simplify("UTILIZE the settings. Utilize them well.")
	assert.Equal(t, "use the settings. use them well.", got)
}

func TestSimplifyLeavesSubstringsAlone(t *testing.T) {
	// "utilization" contains "utilize"-adjacent letters but is not listed.
	got := Simplify("The utilization rate is high.")
	assert.Equal(t, "The utilization rate is high.", got)

	got = Simplify("Robustness matters.")
	assert.Equal(t, "Robustness matters.", got)
}

func TestSimplifyClipsLongSentences(t *testing.T) {
	long := "Start " + strings.Repeat("word ", 60) + "end."
	got := Simplify(long)
	assert.True(t, strings.HasSuffix(got, "..."))
	assert.LessOrEqual(t, len(got), clipTargetLen+3)
}

func TestSimplifyIdempotent(t *testing.T) {
	inputs := []string{
		"We utilize a robust algorithm for evaluation.",
		"Plain text with no trigger words at all.",
		"",
	}
	for _, in := range inputs {
		once := Simplify(in)
		assert.Equal(t, once, Simplify(once))
	}
}
