package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Normalize prepares text for comparison: NFKC-folds the input, lowercases
// it, strips punctuation, and collapses whitespace. Two segments with the
// same normalized form are treated as repeats by the detectors.
func Normalize(s string) string {
	s = norm.NFKC.String(s)
	s = strings.ToLower(s)
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// WordCount returns the number of whitespace-separated words in the
// normalized form of s.
func WordCount(s string) int {
	return len(strings.Fields(Normalize(s)))
}

// MusicNotationOnly reports whether the raw text consists only of music
// notation symbols (¶, ♪, ♫, *) and whitespace.
func MusicNotationOnly(text string) bool {
	if strings.TrimSpace(text) == "" {
		return false
	}
	for _, r := range text {
		switch {
		case r == '¶':
		case r == '♪':
		case r == '♫':
		case r == '*':
		case unicode.IsSpace(r):
		default:
			return false
		}
	}
	return true
}
