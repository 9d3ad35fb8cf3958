package converter

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestState(t *testing.T, cfg Config, input string) *state {
	t.Helper()
	return &state{Converter: newTestConverter(t, cfg), ctx: context.Background(), keys: newPlaceholders(input)}
}

func TestShieldReplacesMathScripts(t *testing.T) {
	input := "<p>a</p><SCRIPT type=\"text/x-mathjax-config\">\nMathJax.Hub.Config({});\n</SCRIPT><script>track()</script><script>katex.render(x)</script>"
	s := newTestState(t, DefaultConfig(), input)

	shielded := s.shield(input)

	require.Len(t, s.keys.order, 2)
	assert.Equal(t, "<SCRIPT type=\"text/x-mathjax-config\">\nMathJax.Hub.Config({});\n</SCRIPT>", s.keys.scripts[s.keys.order[0]])
	assert.Equal(t, "<script>katex.render(x)</script>", s.keys.scripts[s.keys.order[1]])
	assert.Equal(t, "<p>a</p>"+s.keys.order[0]+"<script>track()</script>"+s.keys.order[1], shielded)
	for _, key := range s.keys.order {
		assert.Equal(t, 1, strings.Count(shielded, key))
		assert.NotContains(t, input, key)
	}
}

func TestShieldMoreMarker(t *testing.T) {
	input := "<p>a<!--more-->b</p><!--more-->"
	s := newTestState(t, DefaultConfig(), input)

	shielded := s.shield(input)

	assert.Equal(t, 2, strings.Count(shielded, s.keys.more))
	assert.NotContains(t, shielded, MoreMarker)
	assert.Empty(t, s.keys.order)
}

func TestShieldNoMatchIsNoop(t *testing.T) {
	input := "<p>nothing to protect</p><script>alert(1)</script>"
	s := newTestState(t, DefaultConfig(), input)

	assert.Equal(t, input, s.shield(input))
}

func TestShieldDisabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ShieldMath = false
	cfg.PreserveMoreMarker = false
	input := "<script>MathJax.typeset()</script><!--more-->"
	s := newTestState(t, cfg, input)

	assert.Equal(t, input, s.shield(input))
}

func TestPlaceholderKeysAreDistinct(t *testing.T) {
	p := newPlaceholders("")
	var keys []string
	for i := 0; i < 12; i++ {
		keys = append(keys, p.addScript("<script>x</script>"))
	}
	keys = append(keys, p.more)

	for i, a := range keys {
		for j, b := range keys {
			if i != j {
				assert.NotContains(t, a, b)
			}
		}
	}
}

func TestSplitKeys(t *testing.T) {
	p := newPlaceholders("")
	k0 := p.addScript("<script>a</script>")
	k1 := p.addScript("<script>b</script>")

	assert.Equal(t, []string{k0, "\n  ", k1}, p.splitKeys(k0+"\n  "+k1))
	assert.Equal(t, []string{k0, "\n", p.more, " tail"}, p.splitKeys(k0+"\n"+p.more+" tail"))
	assert.Equal(t, []string{"text"}, p.splitKeys("text"))
	assert.Nil(t, p.splitKeys(""))

	assert.True(t, p.isScriptKey(k1))
	assert.False(t, p.isScriptKey(p.more))
	assert.False(t, p.isScriptKey("text"))
}

func TestCustomMathSignatures(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MathSignatures = []string{"AsciiMath"}
	input := "<script>asciimath.render()</script><script>MathJax.typeset()</script>"
	s := newTestState(t, cfg, input)

	s.shield(input)
	require.Len(t, s.keys.order, 1)
	assert.Equal(t, "<script>asciimath.render()</script>", s.keys.scripts[s.keys.order[0]])
}
