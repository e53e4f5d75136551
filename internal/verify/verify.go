// Package verify checks that JavaScript source still parses, using the
// tdewolff minifier's parser.
package verify

import (
	"errors"
	"fmt"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/js"
)

const mediaType = "application/javascript"

// ErrInputInvalid is returned by Compare when the original source does not
// parse, so the output cannot be judged against it.
var ErrInputInvalid = errors.New("input is not valid JavaScript")

// Checker parses JavaScript. The zero value is not usable; use New.
type Checker struct {
	m *minify.M
}

// New creates a Checker.
func New() *Checker {
	m := minify.New()
	m.AddFunc(mediaType, js.Minify)
	return &Checker{m: m}
}

// Check returns the parse error for src, if any.
func (c *Checker) Check(src string) error {
	if _, err := c.m.String(mediaType, src); err != nil {
		return fmt.Errorf("syntax check failed: %w", err)
	}
	return nil
}

// Compare checks output and, when it fails, input as well. A broken output
// for a valid input is an error. If the input is broken too, the returned
// error wraps ErrInputInvalid.
func (c *Checker) Compare(input, output string) error {
	outErr := c.Check(output)
	if outErr == nil {
		return nil
	}
	if inErr := c.Check(input); inErr != nil {
		return fmt.Errorf("%w: %v", ErrInputInvalid, inErr)
	}
	return fmt.Errorf("obfuscated output does not parse: %w", outErr)
}
