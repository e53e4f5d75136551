package transformer

import (
	"regexp"
	"strings"
)

var (
	lineCommentPattern  = regexp.MustCompile(`//[^\r\n]*`)
	blockCommentPattern = regexp.MustCompile(`(?s)/\*.*?\*/`)
	newlineRunPattern   = regexp.MustCompile(`\n+`)
)

// CommentStripper removes comments and blank lines.
//
// Comments are found lexically: a "//" or "/*" inside a string, template or
// regular expression literal is treated as a comment too, and the rest of
// that line or block is removed. When string encoding runs first, quoted
// literals are already hex-escaped and no longer contain these sequences.
//
// Only comments and empty lines are removed. Indentation and interior
// whitespace are kept as written.
type CommentStripper struct{}

// NewCommentStripper creates a comment and whitespace stripper.
func NewCommentStripper() *CommentStripper {
	return &CommentStripper{}
}

// Name implements Pass.
func (c *CommentStripper) Name() string { return PassStripComments }

// Apply implements Pass.
func (c *CommentStripper) Apply(src string) string {
	result := lineCommentPattern.ReplaceAllLiteralString(src, "")
	result = blockCommentPattern.ReplaceAllLiteralString(result, "")
	result = strings.TrimSpace(result)
	result = newlineRunPattern.ReplaceAllLiteralString(result, "\n")
	return strings.TrimSpace(result)
}
