package corpus

import (
	"regexp"
	"strings"
	"unicode"
)

var normalizeWhitespace = regexp.MustCompile(`\s+`)

// Normalize reduces chapter text to a lowercase bag-of-words form for
// comparative analysis: punctuation, digits and smart quotes out,
// whitespace collapsed. Display text stays untouched elsewhere.
func Normalize(s string) string {
	s = strings.ToLower(s)

	var b strings.Builder
	for _, c := range s {
		switch {
		case unicode.IsLetter(c) || c == ' ':
			b.WriteRune(c)
		case unicode.IsSpace(c):
			b.WriteRune(' ')
		}
	}

	s = normalizeWhitespace.ReplaceAllString(b.String(), " ")
	return strings.TrimSpace(s)
}
