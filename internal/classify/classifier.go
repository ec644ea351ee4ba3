package classify

import (
	"sort"

	"subfuse/internal/config"
	"subfuse/internal/segments"
)

// Classify scans the ordered segment stream with both detectors and
// returns disjoint tagged runs sorted by start index.
//
// When a span is claimed by both detectors, hallucination wins if every
// contested segment is a short fragment (at most MaxRepeatWords words);
// lyric classification requires longer phrase repetition, so it keeps the
// span otherwise and the hallucination run is trimmed to the remainder.
func Classify(segs []segments.Segment, hallCfg config.Hallucination, lyricCfg config.Lyrics, vocab Vocabulary) []Run {
	hallucinations := detectHallucinations(segs, hallCfg)
	lyrics := detectLyrics(segs, lyricCfg, vocab)
	return resolve(segs, hallucinations, lyrics, hallCfg.MaxRepeatWords)
}

func resolve(segs []segments.Segment, hallucinations, lyrics []Run, maxRepeatWords int) []Run {
	var resolved []Run

	for _, hall := range hallucinations {
		short := allShortFragments(segs, hall, maxRepeatWords)
		remainder := []Run{hall}
		for _, lyric := range lyrics {
			if short {
				break
			}
			next := remainder[:0:0]
			for _, piece := range remainder {
				next = append(next, subtract(segs, piece, lyric, 1)...)
			}
			remainder = next
		}
		resolved = append(resolved, remainder...)
	}

	for _, lyric := range lyrics {
		remainder := []Run{lyric}
		for _, hall := range hallucinations {
			if !allShortFragments(segs, hall, maxRepeatWords) {
				continue
			}
			next := remainder[:0:0]
			for _, piece := range remainder {
				// A lyric fragment needs at least two segments to remain
				// meaningful after trimming.
				next = append(next, subtract(segs, piece, hall, 2)...)
			}
			remainder = next
		}
		resolved = append(resolved, remainder...)
	}

	sort.SliceStable(resolved, func(i, j int) bool {
		return resolved[i].StartIndex < resolved[j].StartIndex
	})
	return resolved
}

// allShortFragments reports whether every segment the run covers carries at
// most maxWords words.
func allShortFragments(segs []segments.Segment, run Run, maxWords int) bool {
	for i := run.StartIndex; i <= run.EndIndex && i < len(segs); i++ {
		if segs[i].WordCount() > maxWords {
			return false
		}
	}
	return true
}

// subtract removes the winner's index range from run, returning the
// surviving pieces. Pieces shorter than minLen segments are dropped.
func subtract(segs []segments.Segment, run, winner Run, minLen int) []Run {
	if !run.overlaps(winner) {
		return []Run{run}
	}
	var pieces []Run
	if run.StartIndex < winner.StartIndex {
		pieces = appendPiece(pieces, segs, run, run.StartIndex, winner.StartIndex-1, minLen)
	}
	if run.EndIndex > winner.EndIndex {
		pieces = appendPiece(pieces, segs, run, winner.EndIndex+1, run.EndIndex, minLen)
	}
	return pieces
}

func appendPiece(pieces []Run, segs []segments.Segment, run Run, start, end, minLen int) []Run {
	if end-start+1 < minLen || start < 0 || end >= len(segs) {
		return pieces
	}
	piece := run
	piece.StartIndex = start
	piece.EndIndex = end
	piece.Start = segs[start].Start
	piece.End = segs[end].End
	return append(pieces, piece)
}
