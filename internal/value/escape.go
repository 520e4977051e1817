package value

import (
	"fmt"
	"strings"
)

// escapes maps a decoded character to its escaped form.
var escapes = map[rune]string{
	'\a': `\a`,
	'\b': `\b`,
	'\f': `\f`,
	'\n': `\n`,
	'\r': `\r`,
	'\t': `\t`,
	'\v': `\v`,
	'\\': `\\`,
	'"':  `\"`,
	0:    `\0`,
}

// unescapes maps the character after a backslash to the decoded character.
var unescapes = map[rune]rune{
	'a':  '\a',
	'b':  '\b',
	'f':  '\f',
	'n':  '\n',
	'r':  '\r',
	't':  '\t',
	'v':  '\v',
	'\\': '\\',
	'\'': '\'',
	'"':  '"',
	'0':  0,
}

// Escape encodes control characters, quotes and backslashes so the result
// can be placed between double quotes.
func Escape(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if esc, ok := escapes[r]; ok {
			sb.WriteString(esc)
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// Unescape decodes backslash escapes.
func Unescape(s string) (string, error) {
	var sb strings.Builder
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r != '\\' {
			sb.WriteRune(r)
			continue
		}
		if i+1 == len(runes) {
			return "", fmt.Errorf("trailing backslash")
		}
		i++
		dec, ok := unescapes[runes[i]]
		if !ok {
			return "", fmt.Errorf("invalid escape '\\%c'", runes[i])
		}
		sb.WriteRune(dec)
	}
	return sb.String(), nil
}
