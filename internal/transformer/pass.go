// Package transformer holds the text-rewriting passes of the pipeline.
//
// Every pass works on raw source text with regular expressions; none of them
// parses JavaScript. A pass receives one buffer and returns a new one and
// never fails: input it does not recognise is returned unchanged.
package transformer

import (
	"regexp"
	"strings"
)

// Pass is one independently toggleable rewrite stage.
type Pass interface {
	// Name identifies the pass in logs and run reports.
	Name() string
	// Apply returns the rewritten buffer.
	Apply(src string) string
}

// Pass names, in pipeline order.
const (
	PassRenameIdentifiers   = "rename-identifiers"
	PassEncodeStrings       = "encode-strings"
	PassInjectDeadCode      = "inject-dead-code"
	PassStripComments       = "strip-comments"
	PassRandomizeLineBreaks = "randomize-line-breaks"
)

// replaceAllSubmatchFunc is regexp.ReplaceAllStringFunc with access to the
// capture groups of each match. Unmatched groups are empty strings.
func replaceAllSubmatchFunc(re *regexp.Regexp, src string, fn func(groups []string) string) string {
	matches := re.FindAllStringSubmatchIndex(src, -1)
	if len(matches) == 0 {
		return src
	}

	var sb strings.Builder
	sb.Grow(len(src))
	last := 0
	for _, loc := range matches {
		groups := make([]string, len(loc)/2)
		for i := range groups {
			if loc[2*i] >= 0 {
				groups[i] = src[loc[2*i]:loc[2*i+1]]
			}
		}
		sb.WriteString(src[last:loc[0]])
		sb.WriteString(fn(groups))
		last = loc[1]
	}
	sb.WriteString(src[last:])
	return sb.String()
}
