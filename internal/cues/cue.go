package cues

import (
	"strings"
	"unicode/utf8"
)

// Cue is one rendered subtitle entry. Cues are 1-indexed, strictly
// ordered, and non-overlapping.
type Cue struct {
	Index   int
	Start   float64
	End     float64
	Lines   []string
	Speaker string
}

// Duration returns the cue length in seconds.
func (c Cue) Duration() float64 {
	return c.End - c.Start
}

// Text returns the cue lines joined with newlines.
func (c Cue) Text() string {
	return strings.Join(c.Lines, "\n")
}

// CharCount returns the rune count of the cue text, excluding line breaks.
func (c Cue) CharCount() int {
	count := 0
	for _, line := range c.Lines {
		count += utf8.RuneCountInString(line)
	}
	return count
}

// CPS returns the cue's characters-per-second reading rate. Zero-duration
// cues report 0.
func (c Cue) CPS() float64 {
	d := c.Duration()
	if d <= 0 {
		return 0
	}
	return float64(c.CharCount()) / d
}
