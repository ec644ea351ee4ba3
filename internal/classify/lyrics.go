package classify

import (
	"math"

	"subfuse/internal/config"
	"subfuse/internal/segments"
	"subfuse/internal/textutil"
)

// Component weights for the window score. Ratios are normalized against
// their configured thresholds first, so a window that exactly meets every
// threshold scores the sum of the weights it satisfies.
const (
	weightRepetition   = 0.35
	weightTiming       = 0.25
	weightWords        = 0.20
	weightPoetic       = 0.10
	weightInterjection = 0.10

	// nearDuplicateSimilarity treats two segments as the same refrain line
	// when their fingerprints are this close, even if the words differ
	// slightly between passes.
	nearDuplicateSimilarity = 0.85
)

// detectLyrics slides a window of WindowSize segments over the stream and
// scores each against the song heuristics. Candidate windows whose gap is
// below MergeGap are unioned into one run. Tails shorter than the window
// are left unclassified.
func detectLyrics(segs []segments.Segment, cfg config.Lyrics, vocab Vocabulary) []Run {
	w := cfg.WindowSize
	if w <= 0 || len(segs) < w {
		return nil
	}

	normalized := make([]string, len(segs))
	prints := make([]*textutil.Fingerprint, len(segs))
	for i, seg := range segs {
		normalized[i] = textutil.Normalize(seg.Text)
		prints[i] = textutil.NewFingerprint(seg.Text)
	}

	var candidates []Run
	for i := 0; i+w <= len(segs); i++ {
		score := windowScore(segs[i:i+w], normalized[i:i+w], prints[i:i+w], cfg, vocab)
		if score < cfg.ScoreThreshold {
			continue
		}
		candidates = append(candidates, Run{
			Kind:       KindLyric,
			StartIndex: i,
			EndIndex:   i + w - 1,
			Start:      segs[i].Start,
			End:        segs[i+w-1].End,
			Confidence: math.Min(1, score),
			Method:     MethodWindow,
		})
	}
	return unionCandidates(candidates, cfg.MergeGap)
}

func windowScore(window []segments.Segment, normalized []string, prints []*textutil.Fingerprint, cfg config.Lyrics, vocab Vocabulary) float64 {
	total := len(window)

	repetition := repetitionRatio(normalized, prints)
	timing := timingConsistency(window, cfg.TimingTolerance)

	words := 0
	poeticHits := 0
	interjectionHits := 0
	for i, seg := range window {
		words += seg.WordCount()
		poeticHits += vocab.PoeticHits(normalized[i])
		interjectionHits += vocab.InterjectionHits(normalized[i])
		if textutil.MusicNotationOnly(seg.Text) {
			interjectionHits++
		}
	}
	avgWords := float64(words) / float64(total)

	score := weightRepetition * ratioScore(repetition, cfg.RepetitionThreshold)
	score += weightTiming * ratioScore(timing, cfg.TimingRatioThreshold)
	score += weightWords * ratioScore(avgWords, cfg.MinAvgWords)
	score += weightPoetic * math.Min(1, float64(poeticHits)/float64(total))
	score += weightInterjection * math.Min(1, float64(interjectionHits)/float64(total))
	return score
}

// repetitionRatio is 1 - unique/total over the window's normalized texts.
// Near-duplicate lines (cosine similarity above nearDuplicateSimilarity)
// count as repeats of the earlier line.
func repetitionRatio(normalized []string, prints []*textutil.Fingerprint) float64 {
	total := len(normalized)
	if total == 0 {
		return 0
	}
	unique := 0
	for i := 0; i < total; i++ {
		repeat := false
		for j := 0; j < i; j++ {
			if normalized[i] != "" && normalized[i] == normalized[j] {
				repeat = true
				break
			}
			if textutil.CosineSimilarity(prints[i], prints[j]) >= nearDuplicateSimilarity {
				repeat = true
				break
			}
		}
		if !repeat {
			unique++
		}
	}
	return 1 - float64(unique)/float64(total)
}

// timingConsistency is the fraction of segment durations within the
// relative tolerance of the window mean.
func timingConsistency(window []segments.Segment, tolerance float64) float64 {
	if len(window) == 0 {
		return 0
	}
	var sum float64
	for _, seg := range window {
		sum += seg.Duration()
	}
	mean := sum / float64(len(window))
	if mean <= 0 {
		return 0
	}
	within := 0
	for _, seg := range window {
		if math.Abs(seg.Duration()-mean)/mean <= tolerance {
			within++
		}
	}
	return float64(within) / float64(len(window))
}

func ratioScore(value, threshold float64) float64 {
	if threshold <= 0 {
		if value > 0 {
			return 1
		}
		return 0
	}
	return math.Min(1, value/threshold)
}

// unionCandidates merges overlapping candidate windows and windows whose
// temporal gap is below mergeGap into single runs, keeping the highest
// window confidence.
func unionCandidates(candidates []Run, mergeGap float64) []Run {
	if len(candidates) == 0 {
		return nil
	}
	merged := make([]Run, 0, len(candidates))
	current := candidates[0]
	for _, next := range candidates[1:] {
		if next.StartIndex <= current.EndIndex+1 || next.Start-current.End <= mergeGap {
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
