package cues

import (
	"strings"
	"unicode/utf8"

	"subfuse/internal/config"
)

// layoutLines breaks cue text into at most cfg.MaxLines lines of at most
// cfg.MaxLineChars runes. Break points are searched outward from the text
// midpoint so the lines stay balanced. Text that still does not fit on the
// last allowed line is truncated at a word boundary; the second return
// value reports whether any words were dropped.
//
// A single word longer than the line limit is kept whole on its own line
// rather than broken mid-word.
func layoutLines(text string, cfg config.Subtitles) ([]string, bool) {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil, false
	}

	var lines []string
	remaining := words
	for len(remaining) > 0 && len(lines) < cfg.MaxLines {
		joined := strings.Join(remaining, " ")
		if utf8.RuneCountInString(joined) <= cfg.MaxLineChars {
			lines = append(lines, joined)
			remaining = nil
			break
		}
		if len(lines) == cfg.MaxLines-1 {
			break
		}
		split, ok := balancedSplit(remaining, cfg.MaxLineChars)
		if !ok {
			split = 1
		}
		lines = append(lines, strings.Join(remaining[:split], " "))
		remaining = remaining[split:]
	}

	truncated := false
	if len(remaining) > 0 {
		line, dropped := fitLeadingWords(remaining, cfg.MaxLineChars)
		lines = append(lines, line)
		truncated = dropped
	}
	return lines, truncated
}

// balancedSplit returns the word boundary closest to the text's character
// midpoint whose first part fits maxChars. ok is false when no boundary
// produces a fitting first part.
func balancedSplit(words []string, maxChars int) (int, bool) {
	total := joinedLength(words)
	mid := total / 2

	best := -1
	bestDistance := 0
	length := 0
	for b := 1; b < len(words); b++ {
		length += utf8.RuneCountInString(words[b-1])
		if b > 1 {
			length++
		}
		if length > maxChars {
			break
		}
		distance := mid - length
		if distance < 0 {
			distance = -distance
		}
		if best == -1 || distance < bestDistance {
			best = b
			bestDistance = distance
		}
	}
	if best == -1 {
		return 0, false
	}
	return best, true
}

// fitLeadingWords takes as many leading words as fit within maxChars. A
// single oversized word stands alone. The second return value reports
// whether trailing words were dropped.
func fitLeadingWords(words []string, maxChars int) (string, bool) {
	end := 0
	length := 0
	for i, word := range words {
		next := length + utf8.RuneCountInString(word)
		if i > 0 {
			next++
		}
		if next > maxChars {
			break
		}
		length = next
		end = i + 1
	}
	if end == 0 {
		return words[0], len(words) > 1
	}
	return strings.Join(words[:end], " "), end < len(words)
}

func joinedLength(words []string) int {
	length := 0
	for i, word := range words {
		length += utf8.RuneCountInString(word)
		if i > 0 {
			length++
		}
	}
	return length
}
