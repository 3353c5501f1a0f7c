package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"research-agent/internal/synthesis"
)

func TestNoOpCacheAlwaysMisses(t *testing.T) {
	c := NewNoOp()
	ctx := context.Background()

	got, err := c.GetSynthesis(ctx, "any")
	assert.NoError(t, err)
	assert.Nil(t, got)

	err = c.SetSynthesis(ctx, "any", &synthesis.Result{Summary: "s"}, time.Minute)
	assert.NoError(t, err)

	// Still a miss after a write.
	got, err = c.GetSynthesis(ctx, "any")
	assert.NoError(t, err)
	assert.Nil(t, got)

	assert.NoError(t, c.Close())
}

func TestKeyDeterministic(t *testing.T) {
	a := Key("text", "default", "offline")
	b := Key("text", "default", "offline")
	assert.Equal(t, a, b)
}

func TestKeyDistinguishesInputs(t *testing.T) {
	base := Key("text", "default", "offline")
	assert.NotEqual(t, base, Key("text2", "default", "offline"))
	assert.NotEqual(t, base, Key("text", "eli5", "offline"))
	assert.NotEqual(t, base, Key("text", "default", "openai"))
	// Field separators prevent boundary ambiguity.
	assert.NotEqual(t, Key("ab", "c", ""), Key("a", "bc", ""))
}
