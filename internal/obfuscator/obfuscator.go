// Package obfuscator orchestrates the transformation passes and holds the
// per-run context they share.
package obfuscator

import (
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/whit3rabbit/trash-code/internal/config"
	"github.com/whit3rabbit/trash-code/internal/scrambler"
	"github.com/whit3rabbit/trash-code/internal/transformer"
)

// Pipeline applies the enabled passes to JavaScript source in a fixed order:
// rename identifiers, encode strings, inject dead code, strip comments,
// randomize line breaks.
//
// A Pipeline owns its random source and must not be used from two
// goroutines at once. Separate pipelines share nothing.
type Pipeline struct {
	cfg    config.ObfuscationConfig
	random *rand.Rand
}

// Option customizes a Pipeline.
type Option func(*Pipeline)

// WithRand makes the pipeline draw every random choice from r.
// Tests use it with a fixed seed.
func WithRand(r *rand.Rand) Option {
	return func(p *Pipeline) {
		p.random = r
	}
}

// New creates a pipeline for cfg. The configuration is copied; later
// changes to the caller's value have no effect.
func New(cfg config.ObfuscationConfig, opts ...Option) *Pipeline {
	p := &Pipeline{cfg: cfg}
	for _, opt := range opts {
		opt(p)
	}
	if p.random == nil {
		p.random = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return p
}

// Config returns the pass toggles the pipeline was built with.
func (p *Pipeline) Config() config.ObfuscationConfig {
	return p.cfg
}

// Result is the outcome of one pipeline run.
type Result struct {
	Output      string
	Identifiers []scrambler.Mapping // Renamed identifiers, in the order they were first seen
	Passes      []string            // Names of the passes that ran, in order
}

// runContext is the state shared by the passes of a single run.
type runContext struct {
	table   *scrambler.Table
	counter *transformer.Counter
}

func (p *Pipeline) newRunContext() *runContext {
	return &runContext{
		table:   scrambler.NewTable(scrambler.NewGenerator(p.random)),
		counter: &transformer.Counter{},
	}
}

// passes builds the enabled passes for one run, in pipeline order.
func (p *Pipeline) passes(rc *runContext) []transformer.Pass {
	var passes []transformer.Pass
	if p.cfg.Variables {
		renamer := transformer.NewIdentifierRenamer(rc.table, p.random)
		renamer.SwapKeywords = p.cfg.SwapKeywords
		passes = append(passes, renamer)
	}
	if p.cfg.Strings {
		passes = append(passes, transformer.NewStringEncoder())
	}
	if p.cfg.DeadCode {
		passes = append(passes, transformer.NewDeadCodeInjector(rc.counter, p.random))
	}
	if p.cfg.Minify {
		passes = append(passes, transformer.NewCommentStripper())
	}
	if p.cfg.RandomLineBreaks {
		passes = append(passes, transformer.NewLineBreakRandomizer(p.random))
	}
	return passes
}

// Obfuscate transforms src and returns the result. It never fails.
func (p *Pipeline) Obfuscate(src string) string {
	return p.Run(src).Output
}

// Run transforms src like Obfuscate and also reports what happened.
// Every call starts from an empty identifier table and counter.
func (p *Pipeline) Run(src string) Result {
	slog.Debug("starting obfuscation",
		"variables", p.cfg.Variables,
		"strings", p.cfg.Strings,
		"dead_code", p.cfg.DeadCode,
		"minify", p.cfg.Minify,
		"random_line_breaks", p.cfg.RandomLineBreaks,
		"swap_keywords", p.cfg.SwapKeywords,
		"input_len", len(src))
	if p.cfg.RandomSpaces {
		slog.Debug("random_spaces is reserved and has no effect")
	}

	rc := p.newRunContext()
	result := Result{Output: src}
	for _, pass := range p.passes(rc) {
		before := len(result.Output)
		result.Output = pass.Apply(result.Output)
		result.Passes = append(result.Passes, pass.Name())
		slog.Debug("pass applied", "pass", pass.Name(), "before", before, "after", len(result.Output))
	}
	result.Identifiers = rc.table.Mappings()
	return result
}

// ProcessFile reads filePath and runs it through p.
func ProcessFile(filePath string, p *Pipeline) (Result, error) {
	src, err := os.ReadFile(filePath)
	if err != nil {
		return Result{}, fmt.Errorf("error reading file %s: %w", filePath, err)
	}
	return p.Run(string(src)), nil
}

// DefaultOutputPath derives the output path for input by inserting suffix
// before its extension: app.js -> app.trash.js, app -> app.trash.
func DefaultOutputPath(input, suffix string) string {
	if suffix == "" {
		suffix = config.DefaultOutputSuffix
	}
	ext := filepath.Ext(input)
	if ext == "" {
		return input + suffix
	}
	return strings.TrimSuffix(input, ext) + suffix + ext
}

// ResolveOutputPath returns output, or the default path for input when
// output is empty. It refuses a path that names the input file itself.
func ResolveOutputPath(input, output, suffix string) (string, error) {
	if output == "" {
		output = DefaultOutputPath(input, suffix)
	}
	if samePath(input, output) {
		return "", fmt.Errorf("output path %s would overwrite the input", output)
	}
	return output, nil
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}
