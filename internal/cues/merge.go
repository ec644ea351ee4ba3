package cues

import (
	"strings"
	"unicode/utf8"

	"subfuse/internal/config"
	"subfuse/internal/segments"
)

// BuildStats reports the effects of cue construction.
type BuildStats struct {
	InputSegments       int
	MergedSegments      int
	ExtendedForCPS      int
	ExtendedForDuration int
	TruncatedCues       int
}

// pending is a cue under construction, before line layout.
type pending struct {
	start   float64
	end     float64
	speaker string
	text    string
}

// Build turns the ordered dialogue segment stream into the final cue list
// in three phases: merge adjacent same-speaker segments under the gap,
// character, duration, and reading-rate budgets; extend cue timings toward
// the target reading rate and minimum duration; lay the text out into
// lines. Cues are re-indexed 1..N and remain ordered and non-overlapping.
func Build(segs []segments.Segment, cfg config.Subtitles) ([]Cue, BuildStats) {
	stats := BuildStats{InputSegments: len(segs)}

	merged := mergePhase(segs, cfg, &stats)
	adjustTimings(merged, cfg, &stats)

	out := make([]Cue, 0, len(merged))
	for _, p := range merged {
		lines, truncated := layoutLines(p.text, cfg)
		if len(lines) == 0 {
			continue
		}
		if truncated {
			stats.TruncatedCues++
		}
		out = append(out, Cue{
			Index:   len(out) + 1,
			Start:   p.start,
			End:     p.end,
			Lines:   lines,
			Speaker: p.speaker,
		})
	}
	return out, stats
}

func mergePhase(segs []segments.Segment, cfg config.Subtitles, stats *BuildStats) []pending {
	var merged []pending
	for _, seg := range segs {
		text := strings.TrimSpace(seg.Text)
		if text == "" {
			continue
		}
		if len(merged) > 0 {
			current := &merged[len(merged)-1]
			if canMerge(current, seg, text, cfg) {
				current.text += " " + text
				if seg.End > current.end {
					current.end = seg.End
				}
				stats.MergedSegments++
				continue
			}
		}
		merged = append(merged, pending{
			start:   seg.Start,
			end:     seg.End,
			speaker: seg.Speaker,
			text:    text,
		})
	}
	return merged
}

func canMerge(current *pending, next segments.Segment, text string, cfg config.Subtitles) bool {
	if next.Speaker != current.speaker {
		return false
	}
	if next.Start-current.end > cfg.MaxMergeGap {
		return false
	}
	combinedChars := utf8.RuneCountInString(current.text) + 1 + utf8.RuneCountInString(text)
	if combinedChars > cfg.MaxCueChars {
		return false
	}
	combinedDuration := next.End - current.start
	if combinedDuration > cfg.MaxCueDuration {
		return false
	}
	if combinedDuration <= 0 {
		return false
	}
	return float64(combinedChars)/combinedDuration <= cfg.HardCapCPS*cfg.CPSSlack
}

// adjustTimings extends cue ends toward the target reading rate, then
// toward the minimum duration. Both extensions are clamped to the maximum
// cue duration and to the next cue's start.
func adjustTimings(merged []pending, cfg config.Subtitles, stats *BuildStats) {
	for i := range merged {
		p := &merged[i]
		limit := p.start + cfg.MaxCueDuration
		if i+1 < len(merged) && merged[i+1].start < limit {
			limit = merged[i+1].start
		}

		chars := float64(utf8.RuneCountInString(p.text))
		duration := p.end - p.start
		if chars > 0 && (duration <= 0 || chars/duration > cfg.TargetCPS) {
			want := p.start + chars/cfg.TargetCPS
			if want > limit {
				want = limit
			}
			if want > p.end {
				p.end = want
				stats.ExtendedForCPS++
			}
		}

		if p.end-p.start < cfg.MinCueDuration {
			want := p.start + cfg.MinCueDuration
			if want > limit {
				want = limit
			}
			if want > p.end {
				p.end = want
				stats.ExtendedForDuration++
			}
		}
	}
}
