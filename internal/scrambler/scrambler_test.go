package scrambler

import (
	"math/rand"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var generatedName = regexp.MustCompile(`^[a-i][a-i0-9]{2,6}$`)

// Helper to create a table with a fixed seed
func createTestTable(t *testing.T, seed int64) *Table {
	t.Helper()
	return NewTable(NewGenerator(rand.New(rand.NewSource(seed))))
}

func TestGenerateShape(t *testing.T) {
	gen := NewGenerator(rand.New(rand.NewSource(1)))
	lengths := make(map[int]bool)

	for i := 0; i < 2000; i++ {
		name := gen.Generate()
		require.Regexp(t, generatedName, name)
		assert.False(t, IsReserved(name), "generated reserved word %q", name)
		lengths[len(name)] = true
	}

	// Every length between the limits shows up over enough draws.
	for l := minNameLen; l <= maxNameLen; l++ {
		assert.True(t, lengths[l], "length %d never generated", l)
	}
}

func TestScrambleConsistency(t *testing.T) {
	table := createTestTable(t, 42)

	first := table.Scramble("total")
	second := table.Scramble("total")
	other := table.Scramble("count")

	assert.Equal(t, first, second, "a mapped name must never be remapped")
	assert.NotEqual(t, "total", first)
	assert.Regexp(t, generatedName, other)
	assert.Equal(t, 2, table.Len())
}

func TestLookup(t *testing.T) {
	table := createTestTable(t, 7)

	_, ok := table.Lookup("missing")
	assert.False(t, ok)

	scrambled := table.Scramble("present")
	got, ok := table.Lookup("present")
	assert.True(t, ok)
	assert.Equal(t, scrambled, got)
}

func TestMappingsInsertionOrder(t *testing.T) {
	table := createTestTable(t, 3)
	names := []string{"zeta", "alpha", "mid", "alpha", "beta"}
	for _, n := range names {
		table.Scramble(n)
	}

	mappings := table.Mappings()
	require.Len(t, mappings, 4)
	assert.Equal(t, []string{"zeta", "alpha", "mid", "beta"}, []string{
		mappings[0].Original, mappings[1].Original, mappings[2].Original, mappings[3].Original,
	})
	for _, m := range mappings {
		got, _ := table.Lookup(m.Original)
		assert.Equal(t, got, m.Obfuscated)
	}
}

func TestSeededTablesAreReproducible(t *testing.T) {
	a := createTestTable(t, 99)
	b := createTestTable(t, 99)
	for _, n := range []string{"x", "y", "z"} {
		assert.Equal(t, a.Scramble(n), b.Scramble(n))
	}
}

func TestIsReserved(t *testing.T) {
	testCases := []struct {
		name     string
		reserved bool
	}{
		{"function", true},
		{"let", true},
		{"typeof", true},
		{"undefined", true},
		{"Function", false},
		{"abc", false},
		{"userList", false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.reserved, IsReserved(tc.name))
		})
	}
}

func TestMapFileRoundTrip(t *testing.T) {
	table := createTestTable(t, 11)
	table.Scramble("calculateSum")
	table.Scramble("numbers")

	filePath := filepath.Join(t.TempDir(), "map.yaml")
	require.NoError(t, SaveMap(filePath, "example.js", table.Mappings()))

	mf, err := LoadMap(filePath)
	require.NoError(t, err)
	assert.Equal(t, "example.js", mf.Source)
	assert.Equal(t, table.Mappings(), mf.Identifiers)

	scrambled, _ := table.Lookup("numbers")
	original, err := Unscramble(mf.Identifiers, scrambled)
	require.NoError(t, err)
	assert.Equal(t, "numbers", original)

	_, err = Unscramble(mf.Identifiers, "notthere")
	assert.Error(t, err)
}

func TestLoadMapErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadMap(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	badVersion := filepath.Join(dir, "old.yaml")
	require.NoError(t, os.WriteFile(badVersion, []byte("version: v0\nidentifiers: []\n"), 0644))
	_, err = LoadMap(badVersion)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "incompatible")

	garbage := filepath.Join(dir, "garbage.yaml")
	require.NoError(t, os.WriteFile(garbage, []byte("identifiers: {"), 0644))
	_, err = LoadMap(garbage)
	assert.Error(t, err)
}
