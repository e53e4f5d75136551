package transformer

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineBreakRandomizer_Shape(t *testing.T) {
	src := "var a = 1;\nvar b = 2;\nconsole.log(a + b);"
	lines := strings.Split(src, "\n")
	gaps := make(map[int]bool)

	for seed := int64(0); seed < 30; seed++ {
		out := NewLineBreakRandomizer(rand.New(rand.NewSource(seed))).Apply(src)
		got := strings.Split(out, "\n")

		i := 0
		for _, line := range lines {
			require.Less(t, i, len(got))
			require.Equal(t, line, got[i])
			i++

			gap := 0
			for i < len(got) && got[i] == "" {
				gap++
				i++
			}
			require.True(t, gap == 1 || gap == 2, "line %q followed by %d empty lines", line, gap)
			gaps[gap] = true
		}
		assert.Equal(t, len(got), i)
	}

	assert.True(t, gaps[1] && gaps[2], "both gap sizes should occur, got %v", gaps)
}

func TestLineBreakRandomizer_NoTokenChanges(t *testing.T) {
	src := "function f(){return 1;}\n  if (x) { y(); }"
	out := NewLineBreakRandomizer(rand.New(rand.NewSource(4))).Apply(src)

	assert.Equal(t, strings.ReplaceAll(src, "\n", ""), strings.ReplaceAll(out, "\n", ""))
}

func TestLineBreakRandomizer_Seeded(t *testing.T) {
	src := "a\nb\nc\nd"
	first := NewLineBreakRandomizer(rand.New(rand.NewSource(99))).Apply(src)
	second := NewLineBreakRandomizer(rand.New(rand.NewSource(99))).Apply(src)

	assert.Equal(t, first, second)
}
