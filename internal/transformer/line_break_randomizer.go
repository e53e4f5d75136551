package transformer

import (
	"math/rand"
	"strings"
)

// LineBreakRandomizer follows every line with one or two empty lines,
// chosen independently per line. Tokens are never touched.
type LineBreakRandomizer struct {
	random *rand.Rand
}

// NewLineBreakRandomizer creates a randomizer drawing from random.
func NewLineBreakRandomizer(random *rand.Rand) *LineBreakRandomizer {
	return &LineBreakRandomizer{random: random}
}

// Name implements Pass.
func (l *LineBreakRandomizer) Name() string { return PassRandomizeLineBreaks }

// Apply implements Pass.
func (l *LineBreakRandomizer) Apply(src string) string {
	lines := strings.Split(src, "\n")
	out := make([]string, 0, len(lines)*3)
	for _, line := range lines {
		out = append(out, line)
		for n := 1 + l.random.Intn(2); n > 0; n-- {
			out = append(out, "")
		}
	}
	return strings.Join(out, "\n")
}
