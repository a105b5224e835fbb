package extract

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	cjkRe        = regexp.MustCompile(`\p{Han}+`)
	markerRe     = regexp.MustCompile(`[¶†‡§*]+`)
	footnoteRe   = regexp.MustCompile(`\[[0-9]+\]`)
	whitespaceRe = regexp.MustCompile(`\s+`)

	// "up" is the text of the per-chapter back-to-top link
	trailingUpRe   = regexp.MustCompile(`(?:\s+up)+$`)
	trailingNoteRe = regexp.MustCompile(`(?:\s*\([0-9]{1,2}\))+$`)
)

// Clean normalizes one raw chunk: footnote and section markers go,
// whitespace collapses to single spaces, punctuation debris left by
// markup stripping is trimmed. Idempotent, so re-cleaning already
// cleaned text is a no-op.
func Clean(s string) string {
	s = cjkRe.ReplaceAllString(s, "")
	s = markerRe.ReplaceAllString(s, "")
	s = footnoteRe.ReplaceAllString(s, "")
	s = whitespaceRe.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)
	s = strings.TrimLeft(s, ".,;:·-–— ")

	// trailing navigation text, note references and separator debris can
	// stack, trim until stable
	for {
		before := s
		s = trailingUpRe.ReplaceAllString(s, "")
		s = trailingNoteRe.ReplaceAllString(s, "")
		s = strings.TrimRight(s, " ·-–—")
		if s == before {
			break
		}
	}

	return s
}

// stripNumberEcho drops the chapter number echoed at the start of the
// chunk by the boundary heading itself.
func stripNumberEcho(s string, number int) string {
	if number <= 0 {
		return s
	}

	trimmed := strings.TrimLeft(s, " \t\n")
	prefix := fmt.Sprintf("%d", number)
	rest, ok := strings.CutPrefix(trimmed, prefix)
	if !ok {
		return s
	}
	if rest != "" && rest[0] >= '0' && rest[0] <= '9' {
		// the text starts with a longer number, not an echo
		return s
	}

	return strings.TrimLeft(rest, " .:\t\n")
}
