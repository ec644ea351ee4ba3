package classify

import (
	"sort"
	"strings"

	"subfuse/internal/config"
	"subfuse/internal/segments"
	"subfuse/internal/textutil"
)

// detectHallucinations runs three detectors over the segment stream and
// returns disjoint hallucination runs sorted by start index:
//
//   - repeat: 2-3 consecutive segments with identical normalized text of at
//     most MaxRepeatWords words (longer repeated phrases belong to the
//     lyric detector)
//   - cluster: more than ClusterMinSegments segments packed inside
//     ClusterWindowSeconds averaging below ClusterMaxAvgWords words
//   - fragment: a single 1-2 word segment shorter than MinSegmentDuration
func detectHallucinations(segs []segments.Segment, cfg config.Hallucination) []Run {
	if len(segs) == 0 {
		return nil
	}

	var runs []Run
	runs = append(runs, detectRepeats(segs, cfg)...)
	runs = append(runs, detectClusters(segs, cfg)...)
	runs = append(runs, detectFragments(segs, cfg)...)
	return mergeRuns(runs)
}

func detectRepeats(segs []segments.Segment, cfg config.Hallucination) []Run {
	var runs []Run
	i := 0
	for i < len(segs) {
		norm := textutil.Normalize(segs[i].Text)
		if norm == "" || len(strings.Fields(norm)) > cfg.MaxRepeatWords {
			i++
			continue
		}
		end := i + 1
		for end < len(segs) && textutil.Normalize(segs[end].Text) == norm {
			end++
		}
		length := end - i
		// Runs of four or more short repeats look like refrains and are
		// left for the lyric detector to claim.
		if length >= 2 && length <= 3 {
			confidence := 0.8
			if length == 3 {
				confidence = 0.9
			}
			runs = append(runs, Run{
				Kind:       KindHallucination,
				StartIndex: i,
				EndIndex:   end - 1,
				Start:      segs[i].Start,
				End:        segs[end-1].End,
				Confidence: confidence,
				Method:     MethodRepeat,
			})
		}
		i = end
	}
	return runs
}

func detectClusters(segs []segments.Segment, cfg config.Hallucination) []Run {
	if cfg.ClusterWindowSeconds <= 0 {
		return nil
	}
	var runs []Run
	i := 0
	for i < len(segs) {
		end := i
		totalWords := 0
		for end < len(segs) && segs[end].Start-segs[i].Start <= cfg.ClusterWindowSeconds {
			totalWords += segs[end].WordCount()
			end++
		}
		count := end - i
		if count > cfg.ClusterMinSegments {
			avgWords := float64(totalWords) / float64(count)
			if avgWords < cfg.ClusterMaxAvgWords {
				runs = append(runs, Run{
					Kind:       KindHallucination,
					StartIndex: i,
					EndIndex:   end - 1,
					Start:      segs[i].Start,
					End:        segs[end-1].End,
					Confidence: 0.7,
					Method:     MethodCluster,
				})
				i = end
				continue
			}
		}
		i++
	}
	return runs
}

func detectFragments(segs []segments.Segment, cfg config.Hallucination) []Run {
	if cfg.MinSegmentDuration <= 0 {
		return nil
	}
	var runs []Run
	for i, seg := range segs {
		if seg.Duration() >= cfg.MinSegmentDuration {
			continue
		}
		words := seg.WordCount()
		if words < 1 || words > 2 {
			continue
		}
		runs = append(runs, Run{
			Kind:       KindHallucination,
			StartIndex: i,
			EndIndex:   i,
			Start:      seg.Start,
			End:        seg.End,
			Confidence: 0.6,
			Method:     MethodFragment,
		})
	}
	return runs
}

// mergeRuns sorts runs by start index and unions overlapping or adjacent
// index ranges of the same kind, keeping the highest confidence and the
// earliest method.
func mergeRuns(runs []Run) []Run {
	if len(runs) == 0 {
		return nil
	}
	sort.SliceStable(runs, func(i, j int) bool {
		if runs[i].StartIndex != runs[j].StartIndex {
			return runs[i].StartIndex < runs[j].StartIndex
		}
		return runs[i].EndIndex > runs[j].EndIndex
	})
	merged := make([]Run, 0, len(runs))
	current := runs[0]
	for _, next := range runs[1:] {
		if next.StartIndex <= current.EndIndex+1 && next.Kind == current.Kind {
			if next.EndIndex > current.EndIndex {
				current.EndIndex = next.EndIndex
				current.End = next.End
			}
			if next.Confidence > current.Confidence {
				current.Confidence = next.Confidence
			}
			continue
		}
		merged = append(merged, current)
		current = next
	}
	merged = append(merged, current)
	return merged
}
