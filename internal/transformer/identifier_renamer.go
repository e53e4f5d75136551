package transformer

import (
	"log/slog"
	"math/rand"
	"regexp"
	"strings"

	"github.com/whit3rabbit/trash-code/internal/scrambler"
)

/*
Identifier Renaming Overview:
-----------------------------
Declarations are found lexically and every later whole-word use of a
declared name is rewritten with the same generated name:

  1. var/let/const <name> followed by =, ; or ,
  2. function <name>(
  3. the parameter list of every named function
  4. a whole-file sweep over every recorded name

Step 4 skips occurrences that sit right after a declaration keyword, since
steps 1-3 already rewrote those. Identifiers inside strings, templates and
comments are not protected. Destructuring, arrow functions and class members
are not declaration sites and keep their names.
*/

var (
	declarationPattern    = regexp.MustCompile(`\b(let|const|var)\s+([\w$]+)(\s*[=;,])`)
	functionNamePattern   = regexp.MustCompile(`\bfunction\s+([\w$]+)(\s*\()`)
	functionParamsPattern = regexp.MustCompile(`\bfunction\s+[\w$]+\s*\(([^)]*)\)`)
	leadingIdentifier     = regexp.MustCompile(`^[\w$]+`)
	declaredBefore        = regexp.MustCompile(`\b(?:let|const|var|function)\s+$`)
)

// declarationLookbehind is how many bytes before a use are inspected for a
// declaration keyword.
const declarationLookbehind = 20

// Keywords a declaration may be rewritten to when keyword swapping is on.
var swapKeywords = []string{"let", "var"}

// IdentifierRenamer replaces declared names with generated ones. All names
// go through one shared table, so a variable later redeclared as a function
// keeps a single mapping.
type IdentifierRenamer struct {
	table        *scrambler.Table
	random       *rand.Rand
	SwapKeywords bool // Rewrite declaration keywords to a random var/let
}

// NewIdentifierRenamer creates a renamer recording into table.
func NewIdentifierRenamer(table *scrambler.Table, random *rand.Rand) *IdentifierRenamer {
	return &IdentifierRenamer{
		table:        table,
		random:       random,
		SwapKeywords: true,
	}
}

// Name implements Pass.
func (r *IdentifierRenamer) Name() string { return PassRenameIdentifiers }

// Apply implements Pass.
func (r *IdentifierRenamer) Apply(src string) string {
	result := r.renameDeclarations(src)
	result = r.renameFunctions(result)
	result = r.renameParameters(result)
	result = r.renameUsages(result)

	slog.Debug("Renamed identifiers", "count", r.table.Len())
	return result
}

func (r *IdentifierRenamer) renameDeclarations(src string) string {
	return replaceAllSubmatchFunc(declarationPattern, src, func(groups []string) string {
		keyword := groups[1]
		if r.SwapKeywords {
			keyword = swapKeywords[r.random.Intn(len(swapKeywords))]
		}
		return keyword + " " + r.table.Scramble(groups[2]) + groups[3]
	})
}

func (r *IdentifierRenamer) renameFunctions(src string) string {
	return replaceAllSubmatchFunc(functionNamePattern, src, func(groups []string) string {
		return "function " + r.table.Scramble(groups[1]) + groups[2]
	})
}

// renameParameters rewrites the parameter list of every named function.
// Non-empty lists are normalised to ", " separators.
func (r *IdentifierRenamer) renameParameters(src string) string {
	matches := functionParamsPattern.FindAllStringSubmatchIndex(src, -1)
	if len(matches) == 0 {
		return src
	}

	var sb strings.Builder
	sb.Grow(len(src))
	last := 0
	for _, loc := range matches {
		start, end := loc[2], loc[3]
		params := src[start:end]

		sb.WriteString(src[last:start])
		if strings.TrimSpace(params) == "" {
			sb.WriteString(params)
		} else {
			sb.WriteString(r.rewriteParameterList(params))
		}
		last = end
	}
	sb.WriteString(src[last:])
	return sb.String()
}

func (r *IdentifierRenamer) rewriteParameterList(params string) string {
	parts := strings.Split(params, ",")
	for i, part := range parts {
		trimmed := strings.TrimSpace(part)
		if name := leadingIdentifier.FindString(trimmed); name != "" {
			trimmed = r.table.Scramble(name) + trimmed[len(name):]
		}
		parts[i] = trimmed
	}
	return strings.Join(parts, ", ")
}

func (r *IdentifierRenamer) renameUsages(src string) string {
	for _, m := range r.table.Mappings() {
		src = replaceWholeWord(src, m.Original, m.Obfuscated)
	}
	return src
}

// replaceWholeWord replaces each occurrence of word that is delimited by
// non-identifier characters, except occurrences directly preceded by a
// declaration keyword.
func replaceWholeWord(src, word, replacement string) string {
	if word == "" {
		return src
	}

	var sb strings.Builder
	last := 0
	for i := 0; i <= len(src)-len(word); {
		idx := strings.Index(src[i:], word)
		if idx < 0 {
			break
		}
		start := i + idx
		end := start + len(word)

		if !isWholeWord(src, start, end) {
			i = start + 1
			continue
		}
		i = end

		windowStart := start - declarationLookbehind
		if windowStart < 0 {
			windowStart = 0
		}
		if declaredBefore.MatchString(src[windowStart:start]) {
			continue
		}

		sb.WriteString(src[last:start])
		sb.WriteString(replacement)
		last = end
	}
	if last == 0 {
		return src
	}
	sb.WriteString(src[last:])
	return sb.String()
}

func isWholeWord(src string, start, end int) bool {
	if start > 0 && isIdentifierByte(src[start-1]) {
		return false
	}
	if end < len(src) && isIdentifierByte(src[end]) {
		return false
	}
	return true
}

func isIdentifierByte(b byte) bool {
	return b == '_' || b == '$' ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9')
}
