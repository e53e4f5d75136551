// Package jsrunner runs JavaScript through node for integration tests.
package jsrunner

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/whit3rabbit/trash-code/internal/config"
	"github.com/whit3rabbit/trash-code/internal/obfuscator"
)

// NodeRunner provides utilities for running node in integration tests
type NodeRunner struct {
	T *testing.T
}

// NewNodeRunner creates a new node runner for integration tests
func NewNodeRunner(t *testing.T) *NodeRunner {
	return &NodeRunner{T: t}
}

// SkipIfNodeNotAvailable skips the test if node is not installed
func (r *NodeRunner) SkipIfNodeNotAvailable() {
	if _, err := exec.LookPath("node"); err != nil {
		r.T.Skip("node not available, skipping integration test")
	}
}

// RunJS executes a JavaScript file and returns its combined output
func (r *NodeRunner) RunJS(file string) (string, error) {
	r.T.Helper()
	cmd := exec.Command("node", file)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

// ObfuscateFile obfuscates inputFile and writes the result next to the
// test's temporary files. It returns the output path and the code.
func (r *NodeRunner) ObfuscateFile(inputFile string, cfg config.ObfuscationConfig, opts ...obfuscator.Option) (string, string, error) {
	r.T.Helper()

	result, err := obfuscator.ProcessFile(inputFile, obfuscator.New(cfg, opts...))
	if err != nil {
		return "", "", err
	}

	outputFile := filepath.Join(r.T.TempDir(), obfuscator.DefaultOutputPath(filepath.Base(inputFile), ""))
	if err := os.WriteFile(outputFile, []byte(result.Output), 0644); err != nil {
		return "", "", err
	}
	r.T.Logf("Wrote obfuscated file to: %s", outputFile)

	return outputFile, result.Output, nil
}

// IntegrationTest obfuscates inputFile with cfg, runs both versions and
// returns their outputs along with the obfuscated code. The test is
// skipped when node is missing.
func (r *NodeRunner) IntegrationTest(inputFile string, cfg config.ObfuscationConfig, opts ...obfuscator.Option) (string, string, string) {
	r.T.Helper()
	r.SkipIfNodeNotAvailable()

	absPath, err := filepath.Abs(inputFile)
	require.NoError(r.T, err, "Error getting absolute path")

	obfuscatedFile, obfuscatedCode, err := r.ObfuscateFile(absPath, cfg, opts...)
	require.NoError(r.T, err, "Error obfuscating %s", absPath)

	originalOutput, err := r.RunJS(absPath)
	require.NoError(r.T, err, "Original script failed: %s", originalOutput)

	obfuscatedOutput, err := r.RunJS(obfuscatedFile)
	require.NoError(r.T, err, "Obfuscated script failed: %s\n--- code ---\n%s", obfuscatedOutput, obfuscatedCode)

	return normalizeNewlines(originalOutput), normalizeNewlines(obfuscatedOutput), obfuscatedCode
}

func normalizeNewlines(s string) string {
	return strings.ReplaceAll(s, "\r\n", "\n")
}
