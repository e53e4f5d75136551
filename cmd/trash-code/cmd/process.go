package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/whit3rabbit/trash-code/internal/config"
	"github.com/whit3rabbit/trash-code/internal/obfuscator"
	"github.com/whit3rabbit/trash-code/internal/scrambler"
	"github.com/whit3rabbit/trash-code/internal/verify"
)

// processInput obfuscates one file with its own pipeline and writes the
// result. output and mapPath may be empty.
func processInput(input, output, mapPath string, cfg *config.Config) (fileReport, error) {
	targetFile, err := obfuscator.ResolveOutputPath(input, output, cfg.OutputSuffix)
	if err != nil {
		return fileReport{}, err
	}

	src, err := os.ReadFile(input)
	if err != nil {
		return fileReport{}, fmt.Errorf("error reading file %s: %w", input, err)
	}
	slog.Debug("processing file", "input", input, "output", targetFile)

	result := obfuscator.New(cfg.Obfuscation).Run(string(src))

	if cfg.Verify {
		if err := verify.New().Compare(string(src), result.Output); err != nil {
			if !errors.Is(err, verify.ErrInputInvalid) {
				return fileReport{}, fmt.Errorf("verification failed for %s: %w", input, err)
			}
			slog.Warn("input does not parse, writing output unverified", "file", input, "error", err)
		}
	}

	if dir := filepath.Dir(targetFile); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fileReport{}, fmt.Errorf("error creating output directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(targetFile, []byte(result.Output), 0644); err != nil {
		return fileReport{}, fmt.Errorf("error writing to output file %s: %w", targetFile, err)
	}

	if mapPath != "" {
		if err := scrambler.SaveMap(mapPath, input, result.Identifiers); err != nil {
			return fileReport{}, err
		}
		slog.Debug("identifier map written", "file", mapPath, "identifiers", len(result.Identifiers))
	}

	return fileReport{
		Input:         input,
		Output:        targetFile,
		OriginalLen:   jsLength(string(src)),
		ObfuscatedLen: jsLength(result.Output),
		Passes:        result.Passes,
		Identifiers:   len(result.Identifiers),
	}, nil
}

// jsLength counts UTF-16 code units, the way String.prototype.length does.
func jsLength(s string) int {
	n := 0
	for _, r := range s {
		if r > 0xFFFF {
			n += 2
		} else {
			n++
		}
	}
	return n
}
