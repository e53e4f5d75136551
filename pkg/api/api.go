// Package api provides the public API for using trash-code as a library.
//
// The API exposes the same pipeline as the command-line tool: JavaScript
// source goes in as a string or a file and obfuscated source comes out.
//
// Basic usage example:
//
//	obf, err := api.NewObfuscator(api.Options{
//	    ConfigOverrides: map[string]interface{}{"obfuscation.dead_code": false},
//	})
//	if err != nil {
//	    log.Fatalf("Failed to create obfuscator: %v", err)
//	}
//
//	result, err := obf.ObfuscateCode("function add(a, b) { return a + b; }")
//	if err != nil {
//	    log.Fatalf("Failed to obfuscate code: %v", err)
//	}
//
//	fmt.Println(result) // Prints obfuscated JavaScript
package api

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sync"

	"github.com/whit3rabbit/trash-code/internal/config"
	"github.com/whit3rabbit/trash-code/internal/obfuscator"
	"github.com/whit3rabbit/trash-code/internal/scrambler"
)

// PrintInfo prints formatted information to stdout, respecting the Testing flag.
// This function forwards to the internal config.PrintInfo function.
func PrintInfo(format string, args ...interface{}) {
	config.PrintInfo(format, args...)
}

// Options represents configuration options for creating a new Obfuscator instance.
type Options struct {
	// ConfigPath is the path to a YAML configuration file.
	// If empty, trash-code.yaml in the working directory is used when present,
	// and the defaults otherwise.
	ConfigPath string

	// Silent suppresses informational messages.
	Silent bool

	// ConfigOverrides sets individual configuration keys, using the same
	// dotted names as the YAML file, e.g. "obfuscation.strings": false.
	// Unknown keys are rejected.
	ConfigOverrides map[string]interface{}

	// Seed makes every random choice reproducible when non-zero.
	Seed int64
}

// IdentifierMapping pairs an original identifier with its replacement.
type IdentifierMapping struct {
	Original   string
	Obfuscated string
}

// Result is the detailed outcome of obfuscating one piece of source.
type Result struct {
	Code        string
	Identifiers []IdentifierMapping // In the order they were first renamed
	Passes      []string            // Names of the passes that ran
}

// Obfuscator is the obfuscation engine. It is safe for concurrent use;
// calls are serialized.
type Obfuscator struct {
	// Config holds the configuration settings for obfuscation
	Config *config.Config

	mu       sync.Mutex
	pipeline *obfuscator.Pipeline
}

// NewObfuscator creates a new Obfuscator instance using the provided options.
//
// Returns an error if the configuration cannot be loaded or is invalid.
func NewObfuscator(options Options) (*Obfuscator, error) {
	cfg, err := config.LoadConfigWithOverrides(options.ConfigPath, options.ConfigOverrides)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if options.Silent {
		cfg.Silent = true
	}

	var opts []obfuscator.Option
	if options.Seed != 0 {
		opts = append(opts, obfuscator.WithRand(rand.New(rand.NewSource(options.Seed))))
	}

	return &Obfuscator{
		Config:   cfg,
		pipeline: obfuscator.New(cfg.Obfuscation, opts...),
	}, nil
}

// ObfuscateCode obfuscates a string of JavaScript and returns the result.
// The error is always nil for text input; it is kept for symmetry with the
// file operations.
func (o *Obfuscator) ObfuscateCode(code string) (string, error) {
	result, err := o.Run(code)
	if err != nil {
		return "", err
	}
	return result.Code, nil
}

// Run obfuscates code and reports the renamed identifiers and passes.
func (o *Obfuscator) Run(code string) (*Result, error) {
	o.mu.Lock()
	res := o.pipeline.Run(code)
	o.mu.Unlock()
	return newResult(res), nil
}

// ObfuscateFile obfuscates a JavaScript file and returns the obfuscated code.
func (o *Obfuscator) ObfuscateFile(filePath string) (string, error) {
	src, err := os.ReadFile(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to obfuscate file %s: %w", filePath, err)
	}
	return o.ObfuscateCode(string(src))
}

// ObfuscateFileToFile obfuscates a JavaScript file and writes the result to
// outputPath, creating its directory if needed. An empty outputPath means
// the default next to the input (app.js -> app.trash.js).
//
// Returns the path written.
func (o *Obfuscator) ObfuscateFileToFile(inputPath, outputPath string) (string, error) {
	outputPath, err := obfuscator.ResolveOutputPath(inputPath, outputPath, o.Config.OutputSuffix)
	if err != nil {
		return "", err
	}

	result, err := o.ObfuscateFile(inputPath)
	if err != nil {
		return "", err
	}

	outputDir := filepath.Dir(outputPath)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
	}
	if err := os.WriteFile(outputPath, []byte(result), 0644); err != nil {
		return "", fmt.Errorf("failed to write to output file %s: %w", outputPath, err)
	}

	return outputPath, nil
}

// LookupOriginalName loads an identifier map written by the CLI's
// --emit-map flag and returns the original name behind a generated one.
func LookupOriginalName(mapPath, name string) (string, error) {
	m, err := scrambler.LoadMap(mapPath)
	if err != nil {
		return "", err
	}
	return scrambler.Unscramble(m.Identifiers, name)
}

// SaveIdentifierMap writes identifiers to mapPath in the format read by
// LookupOriginalName. source names the file the identifiers came from.
func SaveIdentifierMap(mapPath, source string, identifiers []IdentifierMapping) error {
	mappings := make([]scrambler.Mapping, 0, len(identifiers))
	for _, id := range identifiers {
		mappings = append(mappings, scrambler.Mapping{Original: id.Original, Obfuscated: id.Obfuscated})
	}
	return scrambler.SaveMap(mapPath, source, mappings)
}

func newResult(res obfuscator.Result) *Result {
	out := &Result{
		Code:   res.Output,
		Passes: res.Passes,
	}
	for _, m := range res.Identifiers {
		out.Identifiers = append(out.Identifiers, IdentifierMapping{Original: m.Original, Obfuscated: m.Obfuscated})
	}
	return out
}
