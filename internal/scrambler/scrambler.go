// Package scrambler generates replacement identifiers and keeps the
// per-run table mapping original names to them.
package scrambler

import (
	"fmt"
	"math/rand"
	"strings"
)

const (
	// Characters for generated names. The first character never comes from
	// the digits so a generated name is always a valid identifier.
	firstChars = "abcdefghi"
	allChars   = firstChars + "0123456789"

	// Limits on the total generated length, inclusive.
	minNameLen = 3
	maxNameLen = 7

	maxRegenAttempts = 50
)

// Generator produces fresh identifier names from a random source.
// It is not safe for concurrent use; each pipeline run owns one.
type Generator struct {
	rnd *rand.Rand
}

// NewGenerator creates a generator drawing from rnd.
func NewGenerator(rnd *rand.Rand) *Generator {
	return &Generator{rnd: rnd}
}

// Generate returns a name matching ^[a-i][a-i0-9]{2,6}$. Names are not
// checked for uniqueness; the Table is the only guard against remapping.
func (g *Generator) Generate() string {
	var name string
	for attempt := 0; attempt < maxRegenAttempts; attempt++ {
		name = g.generateOnce()
		if !IsReserved(name) {
			return name
		}
	}
	return name
}

func (g *Generator) generateOnce() string {
	length := minNameLen + g.rnd.Intn(maxNameLen-minNameLen+1)

	sb := strings.Builder{}
	sb.Grow(length)
	sb.WriteByte(firstChars[g.rnd.Intn(len(firstChars))])
	for i := 1; i < length; i++ {
		sb.WriteByte(allChars[g.rnd.Intn(len(allChars))])
	}
	return sb.String()
}

// Mapping is one original -> obfuscated pair of a Table.
type Mapping struct {
	Original   string `yaml:"original"`
	Obfuscated string `yaml:"obfuscated"`
}

// Table maps original identifiers to their replacements for one run.
// Entries keep insertion order and are never remapped once recorded.
type Table struct {
	gen     *Generator
	entries map[string]string
	order   []string
}

// NewTable creates an empty table whose replacements come from gen.
func NewTable(gen *Generator) *Table {
	return &Table{
		gen:     gen,
		entries: make(map[string]string),
	}
}

// Scramble returns the replacement for name, generating and recording one
// on first use.
func (t *Table) Scramble(name string) string {
	if scrambled, exists := t.entries[name]; exists {
		return scrambled
	}
	scrambled := t.gen.Generate()
	t.entries[name] = scrambled
	t.order = append(t.order, name)
	return scrambled
}

// Lookup returns the recorded replacement for name, if any.
func (t *Table) Lookup(name string) (string, bool) {
	scrambled, ok := t.entries[name]
	return scrambled, ok
}

// Len returns the number of recorded names.
func (t *Table) Len() int {
	return len(t.order)
}

// Mappings returns the recorded pairs in insertion order.
func (t *Table) Mappings() []Mapping {
	out := make([]Mapping, 0, len(t.order))
	for _, original := range t.order {
		out = append(out, Mapping{Original: original, Obfuscated: t.entries[original]})
	}
	return out
}

// Unscramble finds the original name for a generated one in a list of
// mappings, typically loaded from an exported identifier map.
func Unscramble(mappings []Mapping, scrambled string) (string, error) {
	for _, m := range mappings {
		if m.Obfuscated == scrambled {
			return m.Original, nil
		}
	}
	return "", fmt.Errorf("name %q not found in identifier map", scrambled)
}
