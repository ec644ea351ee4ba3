package segments

import (
	"sort"

	"subfuse/internal/textutil"
	"subfuse/internal/timeline"
)

// Segment is one time-stamped annotation flowing through the fusion
// pipeline. Upstream producers fill Start/End/Text; the engine adds
// Speaker, IsLyric, LyricConfidence, and TextOriginal. Upstream text is
// never removed except by the explicit collapse/drop actions.
type Segment struct {
	Start           float64  `json:"start"`
	End             float64  `json:"end"`
	Text            string   `json:"text,omitempty"`
	Speaker         string   `json:"speaker,omitempty"`
	Confidence      *float64 `json:"confidence,omitempty"`
	IsLyric         bool     `json:"is_lyric,omitempty"`
	LyricConfidence float64  `json:"lyric_confidence,omitempty"`
	TextOriginal    string   `json:"text_original,omitempty"`
}

// Interval returns the segment's time span.
func (s Segment) Interval() timeline.Interval {
	return timeline.Interval{Start: s.Start, End: s.End}
}

// Duration returns the segment length in seconds, never negative.
func (s Segment) Duration() float64 {
	return s.Interval().Duration()
}

// WordCount returns the number of words in the segment's normalized text.
func (s Segment) WordCount() int {
	return textutil.WordCount(s.Text)
}

// Turn is one diarization turn: a time span owned by a single speaker.
// Turns are immutable inputs from the diarization stage.
type Turn struct {
	Start    float64 `json:"start"`
	End      float64 `json:"end"`
	Speaker  string  `json:"speaker"`
	Duration float64 `json:"duration,omitempty"`
}

// Interval returns the turn's time span.
func (t Turn) Interval() timeline.Interval {
	return timeline.Interval{Start: t.Start, End: t.End}
}

// NormalizeSegments clamps inconsistent segment timing in place (negative
// start, end before start) and restores start ordering. It returns the
// number of segments that required clamping so the caller can log a
// data-quality warning.
func NormalizeSegments(segs []Segment) int {
	clamped := 0
	for i := range segs {
		fixed := false
		if segs[i].Start < 0 {
			segs[i].Start = 0
			fixed = true
		}
		if segs[i].End < segs[i].Start {
			segs[i].End = segs[i].Start
			fixed = true
		}
		if fixed {
			clamped++
		}
	}
	sort.SliceStable(segs, func(i, j int) bool {
		return segs[i].Start < segs[j].Start
	})
	return clamped
}
