package logger

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// SanitizeForLog escapes control characters so user supplied filenames, MIME
// labels and encoder output cannot forge log lines or drive the terminal.
// Printable Unicode passes through unchanged.
func SanitizeForLog(s string) string {
	var result strings.Builder
	result.Grow(len(s))

	for _, r := range s {
		switch r {
		case '\n':
			result.WriteString("\\n")
		case '\r':
			result.WriteString("\\r")
		case '\t':
			result.WriteString("\\t")
		default:
			if r < 32 || r == 127 {
				result.WriteString(fmt.Sprintf("\\x%02x", r))
			} else {
				result.WriteRune(r)
			}
		}
	}
	return result.String()
}

// Tail keeps the last max bytes of s, cut on a line boundary when one is
// available, and marks the cut with a leading "...".
func Tail(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	cut := s[len(s)-max:]
	for len(cut) > 0 && !utf8.RuneStart(cut[0]) {
		cut = cut[1:]
	}
	if i := strings.IndexByte(cut, '\n'); i >= 0 && i < len(cut)-1 {
		cut = cut[i+1:]
	}
	return "..." + cut
}
