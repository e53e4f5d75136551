package transformer

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// quotedStringPattern matches single- and double-quoted literals, honouring
// backslash escapes and line continuations. Template literals are not
// matched.
var quotedStringPattern = regexp.MustCompile(`"(?:[^"\\]|\\(?s:.))*"|'(?:[^'\\]|\\(?s:.))*'`)

// StringEncoder rewrites the content of every quoted literal as a sequence
// of hexadecimal escapes.
//
// The literal is decoded first, so existing escapes keep their meaning:
// "it\'s" becomes "\x69\x74\x27\x73". Code units up to 0xff are written as
// \xHH, larger ones (including each half of a surrogate pair) as \uHHHH.
// A literal holding a malformed escape is left untouched.
type StringEncoder struct{}

// NewStringEncoder creates a string literal encoder.
func NewStringEncoder() *StringEncoder {
	return &StringEncoder{}
}

// Name implements Pass.
func (e *StringEncoder) Name() string { return PassEncodeStrings }

// Apply implements Pass.
func (e *StringEncoder) Apply(src string) string {
	return quotedStringPattern.ReplaceAllStringFunc(src, encodeLiteral)
}

func encodeLiteral(literal string) string {
	quote := literal[:1]
	units, err := decodeEscapes(literal[1 : len(literal)-1])
	if err != nil {
		return literal
	}

	var sb strings.Builder
	sb.Grow(len(units)*4 + 2)
	sb.WriteString(quote)
	for _, u := range units {
		if u <= 0xff {
			fmt.Fprintf(&sb, `\x%02x`, u)
		} else {
			fmt.Fprintf(&sb, `\u%04x`, u)
		}
	}
	sb.WriteString(quote)
	return sb.String()
}

// decodeEscapes turns the body of a JavaScript string literal into the
// UTF-16 code units it denotes.
func decodeEscapes(body string) ([]uint16, error) {
	units := make([]uint16, 0, len(body))
	appendRune := func(r rune) {
		units = append(units, utf16.Encode([]rune{r})...)
	}

	for i := 0; i < len(body); {
		r, size := utf8.DecodeRuneInString(body[i:])
		if r != '\\' {
			appendRune(r)
			i += size
			continue
		}

		i += size
		if i >= len(body) {
			return nil, fmt.Errorf("dangling backslash")
		}
		r, size = utf8.DecodeRuneInString(body[i:])
		i += size

		switch r {
		case 'n':
			units = append(units, '\n')
		case 't':
			units = append(units, '\t')
		case 'r':
			units = append(units, '\r')
		case 'b':
			units = append(units, '\b')
		case 'f':
			units = append(units, '\f')
		case 'v':
			units = append(units, '\v')
		case 'x':
			v, err := parseHex(body, i, 2)
			if err != nil {
				return nil, err
			}
			units = append(units, uint16(v))
			i += 2
		case 'u':
			if i < len(body) && body[i] == '{' {
				closing := strings.IndexByte(body[i:], '}')
				if closing < 2 {
					return nil, fmt.Errorf("malformed code point escape")
				}
				v, err := strconv.ParseUint(body[i+1:i+closing], 16, 32)
				if err != nil || v > utf8.MaxRune {
					return nil, fmt.Errorf("malformed code point escape")
				}
				appendRune(rune(v))
				i += closing + 1
				continue
			}
			v, err := parseHex(body, i, 4)
			if err != nil {
				return nil, err
			}
			units = append(units, uint16(v))
			i += 4
		case '\r':
			// Line continuation, optionally \r\n.
			if i < len(body) && body[i] == '\n' {
				i++
			}
		case '\n', '\u2028', '\u2029':
			// Line continuation.
		case '0', '1', '2', '3', '4', '5', '6', '7':
			v, n := parseOctal(body, i-1)
			units = append(units, uint16(v))
			i += n - 1
		default:
			appendRune(r)
		}
	}
	return units, nil
}

func parseHex(body string, at, digits int) (uint64, error) {
	if at+digits > len(body) {
		return 0, fmt.Errorf("truncated hex escape")
	}
	v, err := strconv.ParseUint(body[at:at+digits], 16, 16)
	if err != nil {
		return 0, fmt.Errorf("malformed hex escape %q", body[at:at+digits])
	}
	return v, nil
}

// parseOctal reads a legacy octal escape starting at body[at], returning its
// value and the number of digits consumed. Values never exceed 0377.
func parseOctal(body string, at int) (uint64, int) {
	maxDigits := 3
	if body[at] > '3' {
		maxDigits = 2
	}
	n := 0
	var v uint64
	for n < maxDigits && at+n < len(body) && body[at+n] >= '0' && body[at+n] <= '7' {
		v = v*8 + uint64(body[at+n]-'0')
		n++
	}
	return v, n
}
