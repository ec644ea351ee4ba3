package classify

import (
	"strconv"
	"strings"

	"subfuse/internal/config"
	"subfuse/internal/segments"
	"subfuse/internal/timeline"
)

// CollapseStats reports the effects of rewriting classified runs.
type CollapseStats struct {
	LyricRuns         int
	HallucinationRuns int
	Substituted       int
	DroppedSegments   int
	// SkippedRuns counts hallucination runs with no usable replacement in
	// the alternate transcript; their segments are dropped entirely.
	SkippedRuns int
}

// Collapse rewrites classified runs in the segment stream:
//
//   - a lyric run becomes one segment spanning the whole run, carrying the
//     first segment's text and the run confidence, so repeated refrains
//     render once instead of flickering
//   - a hallucination run is substituted segment-by-segment from the
//     alternate transcript; segments with no acceptable replacement are
//     dropped rather than emitting hallucinated text
//
// The returned stream is chronologically ordered and non-overlapping.
func Collapse(segs []segments.Segment, runs []Run, alternate []segments.Segment, cfg config.Hallucination) ([]segments.Segment, CollapseStats) {
	var stats CollapseStats
	if len(segs) == 0 {
		return nil, stats
	}

	runAt := make(map[int]Run, len(runs))
	for _, run := range runs {
		runAt[run.StartIndex] = run
	}
	altCandidates := alternateCandidates(alternate)
	assignOpts := timeline.AssignOptions{
		MinOverlapRatio:    cfg.SubstitutionMinOverlap,
		NearestFallback:    true,
		ProximityTolerance: cfg.SubstitutionTolerance,
	}

	out := make([]segments.Segment, 0, len(segs))
	i := 0
	for i < len(segs) {
		run, ok := runAt[i]
		if !ok {
			out = append(out, segs[i])
			i++
			continue
		}

		switch run.Kind {
		case KindLyric:
			out = append(out, collapseLyricRun(segs, run))
			stats.LyricRuns++
		case KindHallucination:
			replaced, dropped := substituteRun(segs, run, alternate, altCandidates, assignOpts)
			out = append(out, replaced...)
			stats.HallucinationRuns++
			stats.Substituted += len(replaced)
			stats.DroppedSegments += dropped
			if len(replaced) == 0 {
				stats.SkippedRuns++
			}
		}
		i = run.EndIndex + 1
	}

	enforceOrdering(out)
	return out, stats
}

// collapseLyricRun builds the single spanning segment for a lyric run.
func collapseLyricRun(segs []segments.Segment, run Run) segments.Segment {
	first := segs[run.StartIndex]
	text := first.Text
	for i := run.StartIndex; i <= run.EndIndex && strings.TrimSpace(text) == ""; i++ {
		text = segs[i].Text
	}
	return segments.Segment{
		Start:           run.Start,
		End:             run.End,
		Text:            text,
		Speaker:         first.Speaker,
		IsLyric:         true,
		LyricConfidence: run.Confidence,
		TextOriginal:    first.Text,
	}
}

// substituteRun replaces each segment of a hallucination run with the
// best-matching alternate transcript segment. Segments with no acceptable
// match are dropped and counted.
func substituteRun(segs []segments.Segment, run Run, alternate []segments.Segment, candidates []timeline.Candidate, opts timeline.AssignOptions) ([]segments.Segment, int) {
	var replaced []segments.Segment
	dropped := 0
	for i := run.StartIndex; i <= run.EndIndex; i++ {
		assignment := timeline.Assign(segs[i].Interval(), candidates, opts)
		if !assignment.Assigned() {
			dropped++
			continue
		}
		altIdx, err := strconv.Atoi(assignment.Label)
		if err != nil || altIdx < 0 || altIdx >= len(alternate) {
			dropped++
			continue
		}
		seg := segs[i]
		seg.TextOriginal = seg.Text
		seg.Text = alternate[altIdx].Text
		replaced = append(replaced, seg)
	}
	return replaced, dropped
}

func alternateCandidates(alternate []segments.Segment) []timeline.Candidate {
	candidates := make([]timeline.Candidate, 0, len(alternate))
	for i, seg := range alternate {
		candidates = append(candidates, timeline.Candidate{
			Interval: seg.Interval(),
			Label:    strconv.Itoa(i),
		})
	}
	return candidates
}

// enforceOrdering clamps minor overlaps introduced by run rewriting so the
// stream stays strictly ordered and non-overlapping.
func enforceOrdering(segs []segments.Segment) {
	for i := 1; i < len(segs); i++ {
		if segs[i].Start < segs[i-1].End {
			segs[i].Start = segs[i-1].End
			if segs[i].End < segs[i].Start {
				segs[i].End = segs[i].Start
			}
		}
	}
}
