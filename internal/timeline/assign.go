package timeline

import "math"

// UnknownLabel marks a target no candidate could claim.
const UnknownLabel = "unknown"

// Assignment methods reported alongside the chosen label.
const (
	MethodOverlap = "overlap"
	MethodNearest = "nearest"
	MethodNone    = "none"
)

// Candidate is a labeled interval competing for a target segment.
type Candidate struct {
	Interval
	Label string
}

// AssignOptions controls label assignment by temporal overlap.
type AssignOptions struct {
	// MinOverlapRatio is the acceptance threshold for the best-overlap
	// candidate, measured against the target's duration.
	MinOverlapRatio float64
	// NearestFallback enables the nearest-start fallback when no candidate
	// clears MinOverlapRatio.
	NearestFallback bool
	// ProximityTolerance bounds the nearest-start fallback (seconds).
	ProximityTolerance float64
}

// Assignment is the outcome of one label decision.
type Assignment struct {
	Label  string
	Ratio  float64
	Method string
}

// Assigned reports whether a candidate claimed the target.
func (a Assignment) Assigned() bool {
	return a.Method != MethodNone
}

// Assign picks the candidate with the highest overlap ratio against the
// target, ties broken by earliest candidate start. A zero-duration target
// has ratio 0 against every candidate. If the winning ratio is below
// MinOverlapRatio and the fallback is enabled, the candidate whose start is
// nearest the target's start wins instead, provided the distance is within
// ProximityTolerance. Otherwise the target stays unassigned.
func Assign(target Interval, candidates []Candidate, opts AssignOptions) Assignment {
	if len(candidates) == 0 {
		return Assignment{Label: UnknownLabel, Method: MethodNone}
	}

	duration := target.Duration()
	bestIdx := -1
	bestRatio := -1.0
	for i, cand := range candidates {
		var ratio float64
		if duration > 0 {
			ratio = target.Overlap(cand.Interval) / duration
		}
		if ratio > bestRatio || (ratio == bestRatio && bestIdx >= 0 && cand.Start < candidates[bestIdx].Start) {
			bestRatio = ratio
			bestIdx = i
		}
	}

	if bestRatio >= opts.MinOverlapRatio && bestRatio > 0 {
		return Assignment{Label: candidates[bestIdx].Label, Ratio: bestRatio, Method: MethodOverlap}
	}

	if opts.NearestFallback {
		nearestIdx := -1
		nearestDist := math.Inf(1)
		for i, cand := range candidates {
			dist := math.Abs(cand.Start - target.Start)
			if dist < nearestDist {
				nearestDist = dist
				nearestIdx = i
			}
		}
		if nearestIdx >= 0 && nearestDist <= opts.ProximityTolerance {
			var ratio float64
			if duration > 0 {
				ratio = target.Overlap(candidates[nearestIdx].Interval) / duration
			}
			return Assignment{Label: candidates[nearestIdx].Label, Ratio: ratio, Method: MethodNearest}
		}
	}

	return Assignment{Label: UnknownLabel, Method: MethodNone}
}
