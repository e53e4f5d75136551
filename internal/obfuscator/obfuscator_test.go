package obfuscator_test

import (
	"math/rand"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/whit3rabbit/trash-code/internal/config"
	"github.com/whit3rabbit/trash-code/internal/jsrunner"
	"github.com/whit3rabbit/trash-code/internal/obfuscator"
	"github.com/whit3rabbit/trash-code/internal/transformer"
)

const namePattern = `[a-i][a-i0-9]{2,6}`

var (
	addShape = regexp.MustCompile(`^function (` + namePattern + `)\((` + namePattern + `), (` + namePattern + `)\)\{return (` + namePattern + `)\+(` + namePattern + `);\}$`)

	// First line of the dead-code output when the counter starts at zero.
	firstSnippet = regexp.MustCompile(`^(?:var _0 = [0-9.e+-]+ \+ [0-9.e+-]+;|if \(1 > 2\) \{ console\.log\('dead code'\); \}|for \(var _i0 = 0; _i0 < 0; _i0\+\+\) \{\}|var _temp0 = function\(\) \{ return false; \};)$`)
)

// Helper function to create a temporary file with content
func createTempFile(t *testing.T, dir, content string) string {
	t.Helper()
	tmpFile, err := os.CreateTemp(dir, "test_*.js")
	require.NoError(t, err)
	_, err = tmpFile.WriteString(content)
	require.NoError(t, err)
	require.NoError(t, tmpFile.Close())
	return tmpFile.Name()
}

func seeded(seed int64) obfuscator.Option {
	return obfuscator.WithRand(rand.New(rand.NewSource(seed)))
}

func TestPipeline_AllPassesDisabled(t *testing.T) {
	src := "// keep me\nfunction add(a,b){return a+b;}\n\n\nvar s = 'x';\n"

	for _, cfg := range []config.ObfuscationConfig{
		{},
		{RandomSpaces: true},
		{SwapKeywords: true},
	} {
		result := obfuscator.New(cfg).Run(src)

		assert.Equal(t, src, result.Output)
		assert.Empty(t, result.Passes)
		assert.Empty(t, result.Identifiers)
	}
}

func TestPipeline_RenameOnly(t *testing.T) {
	p := obfuscator.New(config.ObfuscationConfig{Variables: true}, seeded(42))

	result := p.Run("function add(a,b){return a+b;}")

	m := addShape.FindStringSubmatch(result.Output)
	require.NotNil(t, m, "unexpected output %q", result.Output)
	assert.Equal(t, m[2], m[4])
	assert.Equal(t, m[3], m[5])
	assert.Equal(t, []string{transformer.PassRenameIdentifiers}, result.Passes)

	require.Len(t, result.Identifiers, 3)
	assert.Equal(t, "add", result.Identifiers[0].Original)
	assert.Equal(t, m[1], result.Identifiers[0].Obfuscated)
	assert.Equal(t, "a", result.Identifiers[1].Original)
	assert.Equal(t, m[2], result.Identifiers[1].Obfuscated)
	assert.Equal(t, "b", result.Identifiers[2].Original)
	assert.Equal(t, m[3], result.Identifiers[2].Obfuscated)
}

func TestPipeline_StringsOnly(t *testing.T) {
	p := obfuscator.New(config.ObfuscationConfig{Strings: true})

	assert.Equal(t, `console.log("\x68\x69");`, p.Obfuscate(`console.log("hi");`))
}

func TestPipeline_DeadCodeOnly(t *testing.T) {
	src := "console.log(1);"

	for seed := int64(0); seed < 20; seed++ {
		out := obfuscator.New(config.ObfuscationConfig{DeadCode: true}, seeded(seed)).Obfuscate(src)

		snippet, rest, ok := strings.Cut(out, "\n")
		require.True(t, ok)
		assert.Regexp(t, firstSnippet, snippet)
		assert.Equal(t, src, rest)
	}
}

func TestPipeline_StripOnly(t *testing.T) {
	p := obfuscator.New(config.ObfuscationConfig{Minify: true})

	assert.Equal(t, "var x=1;", p.Obfuscate("// hi\nvar x=1;"))
}

func TestPipeline_PassOrder(t *testing.T) {
	result := obfuscator.New(config.DefaultObfuscation(), seeded(1)).Run("var x = 'a';")

	assert.Equal(t, []string{
		transformer.PassRenameIdentifiers,
		transformer.PassEncodeStrings,
		transformer.PassInjectDeadCode,
		transformer.PassStripComments,
		transformer.PassRandomizeLineBreaks,
	}, result.Passes)
}

// Dead code is injected after string encoding and before stripping, so its
// literal stays readable and the stripper removes the blank lines around it.
func TestPipeline_DeadCodeAndStrip(t *testing.T) {
	cfg := config.ObfuscationConfig{Strings: true, DeadCode: true, Minify: true}

	for seed := int64(0); seed < 20; seed++ {
		out := obfuscator.New(cfg, seeded(seed)).Obfuscate("// header\n\n\nvar s = 'ab';\n")

		lines := strings.Split(out, "\n")
		require.Len(t, lines, 2, "unexpected output %q", out)
		assert.Regexp(t, firstSnippet, lines[0])
		assert.Equal(t, `var s = '\x61\x62';`, lines[1])
	}
}

func TestPipeline_FreshContextPerRun(t *testing.T) {
	p := obfuscator.New(config.ObfuscationConfig{Variables: true, DeadCode: true}, seeded(7))
	src := "var total = 1;\nconsole.log(total);"

	for i := 0; i < 10; i++ {
		result := p.Run(src)

		snippet, _, _ := strings.Cut(result.Output, "\n")
		assert.Regexp(t, firstSnippet, snippet, "the counter must restart on every run")
		require.Len(t, result.Identifiers, 1)
		assert.Equal(t, "total", result.Identifiers[0].Original)
	}
}

func TestPipeline_SeededRunsAreReproducible(t *testing.T) {
	src, err := os.ReadFile(filepath.Join("testdata", "example.js"))
	require.NoError(t, err)

	first := obfuscator.New(config.DefaultObfuscation(), seeded(2024)).Obfuscate(string(src))
	second := obfuscator.New(config.DefaultObfuscation(), seeded(2024)).Obfuscate(string(src))

	assert.Equal(t, first, second)
	assert.NotEqual(t, string(src), first)
}

func TestPipeline_FullRunOnExample(t *testing.T) {
	src, err := os.ReadFile(filepath.Join("testdata", "example.js"))
	require.NoError(t, err)

	result := obfuscator.New(config.DefaultObfuscation(), seeded(3)).Run(string(src))
	out := result.Output

	for _, name := range []string{"calculateSum", "numbers", "total", "greet", "person", "punctuation", "message", "scores", "label"} {
		assert.NotRegexp(t, regexp.MustCompile(`\b`+name+`\b`), out, "%s should be renamed", name)
	}
	assert.NotContains(t, out, "Builds a greeting line")
	assert.NotContains(t, out, "Hello")
	assert.Contains(t, out, `'\x48\x65\x6c\x6c\x6f\x2c\x20'`)
	assert.Contains(t, out, "console.log(")
	assert.Contains(t, out, ".length")
	assert.Contains(t, out, ".join(")
	assert.NotContains(t, out, "\n\n\n\n", "line breaks add at most two empty lines")
	assert.Len(t, result.Identifiers, 10)
}

func TestPipeline_IndependentPipelinesConcurrently(t *testing.T) {
	const workers = 8
	outputs := make([]string, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p := obfuscator.New(config.ObfuscationConfig{Variables: true, Strings: true}, seeded(int64(i)))
			for n := 0; n < 50; n++ {
				outputs[i] = p.Obfuscate("function add(a,b){return a+b;}")
			}
		}(i)
	}
	wg.Wait()

	for i, out := range outputs {
		assert.Regexp(t, addShape, out, "worker %d", i)
	}
}

func TestProcessFile(t *testing.T) {
	dir := t.TempDir()
	filePath := createTempFile(t, dir, "/* c */\nvar x = 1;\n")

	result, err := obfuscator.ProcessFile(filePath, obfuscator.New(config.ObfuscationConfig{Minify: true}))
	require.NoError(t, err)
	assert.Equal(t, "var x = 1;", result.Output)

	_, err = obfuscator.ProcessFile(filepath.Join(dir, "missing.js"), obfuscator.New(config.ObfuscationConfig{}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.js")
}

func TestDefaultOutputPath(t *testing.T) {
	testCases := []struct {
		input  string
		suffix string
		want   string
	}{
		{"app.js", ".trash", "app.trash.js"},
		{filepath.Join("src", "app.min.js"), ".trash", filepath.Join("src", "app.min.trash.js")},
		{"script", ".trash", "script.trash"},
		{"app.js", "", "app.trash.js"},
		{"app.mjs", ".obf", "app.obf.mjs"},
	}
	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.want, obfuscator.DefaultOutputPath(tc.input, tc.suffix))
		})
	}
}

func TestResolveOutputPath(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "app.js")

	got, err := obfuscator.ResolveOutputPath(input, "", ".trash")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "app.trash.js"), got)

	got, err = obfuscator.ResolveOutputPath(input, filepath.Join(dir, "out.js"), ".trash")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "out.js"), got)

	_, err = obfuscator.ResolveOutputPath(input, filepath.Join(dir, ".", "app.js"), ".trash")
	assert.Error(t, err)
}

func TestIntegration_NodeOutputUnchanged(t *testing.T) {
	testCases := []struct {
		name string
		cfg  config.ObfuscationConfig
	}{
		{name: "all passes", cfg: config.DefaultObfuscation()},
		{name: "rename and strings", cfg: config.ObfuscationConfig{Variables: true, Strings: true}},
		{name: "dead code and strip", cfg: config.ObfuscationConfig{DeadCode: true, Minify: true}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			runner := jsrunner.NewNodeRunner(t)
			original, obfuscated, code := runner.IntegrationTest(filepath.Join("testdata", "example.js"), tc.cfg, seeded(11))
			assert.Equal(t, original, obfuscated, "obfuscated code:\n%s", code)
		})
	}
}
