package timeline

// MergeOptions controls the hysteresis merge pass.
type MergeOptions struct {
	// MaxGap is the largest silence (seconds) bridged between two intervals.
	MaxGap float64
	// MinDuration discards merged intervals shorter than this.
	MinDuration float64
}

// Merge collapses an ordered-by-start interval list with gap-tolerant
// hysteresis: adjacent intervals whose gap is at most MaxGap are unioned,
// then intervals shorter than MinDuration are dropped. The output is sorted
// and strictly non-overlapping. An empty input yields an empty output.
//
// Merge is idempotent: re-running it on its own output with the same
// options returns an identical list.
func Merge(intervals []Interval, opts MergeOptions) []Interval {
	if len(intervals) == 0 {
		return nil
	}

	merged := make([]Interval, 0, len(intervals))
	current := intervals[0]
	for _, next := range intervals[1:] {
		if current.Gap(next) <= opts.MaxGap {
			if next.End > current.End {
				current.End = next.End
			}
			continue
		}
		merged = append(merged, current)
		current = next
	}
	merged = append(merged, current)

	if opts.MinDuration <= 0 {
		return merged
	}
	kept := merged[:0]
	for _, iv := range merged {
		if iv.Duration() >= opts.MinDuration {
			kept = append(kept, iv)
		}
	}
	return kept
}
