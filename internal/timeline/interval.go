package timeline

import "sort"

// Interval is a half-open time span in seconds.
type Interval struct {
	Start float64
	End   float64
}

// Duration returns the interval length in seconds, never negative.
func (iv Interval) Duration() float64 {
	if iv.End < iv.Start {
		return 0
	}
	return iv.End - iv.Start
}

// Overlap returns the overlapping duration between two intervals in seconds.
func (iv Interval) Overlap(other Interval) float64 {
	low := iv.Start
	if other.Start > low {
		low = other.Start
	}
	high := iv.End
	if other.End < high {
		high = other.End
	}
	if high <= low {
		return 0
	}
	return high - low
}

// Gap returns the distance from this interval's end to the next interval's
// start. Negative when the intervals overlap.
func (iv Interval) Gap(next Interval) float64 {
	return next.Start - iv.End
}

// Normalize clamps inconsistent intervals (negative start, end before start)
// and sorts the result by start time. It returns the normalized list and the
// number of intervals that required clamping so the caller can log a
// data-quality warning. The input slice is not modified.
func Normalize(intervals []Interval) ([]Interval, int) {
	out := make([]Interval, len(intervals))
	copy(out, intervals)
	clamped := 0
	for i := range out {
		fixed := false
		if out[i].Start < 0 {
			out[i].Start = 0
			fixed = true
		}
		if out[i].End < out[i].Start {
			out[i].End = out[i].Start
			fixed = true
		}
		if fixed {
			clamped++
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Start < out[j].Start
	})
	return out, clamped
}
