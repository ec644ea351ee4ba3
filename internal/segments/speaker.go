package segments

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"subfuse/internal/timeline"
)

// RefineTurns projects diarization turns onto the high-precision speech
// windows: each window is claimed by the best-overlap turn, producing a
// turn list whose boundaries follow actual voice activity rather than the
// coarser diarization clustering. Windows no turn can claim are dropped
// and counted.
func RefineTurns(speech []timeline.Interval, turns []Turn, opts timeline.AssignOptions) ([]Turn, int) {
	candidates := turnCandidates(turns)
	refined := make([]Turn, 0, len(speech))
	unassigned := 0
	for _, window := range speech {
		assignment := timeline.Assign(window, candidates, opts)
		if !assignment.Assigned() {
			unassigned++
			continue
		}
		refined = append(refined, Turn{
			Start:    window.Start,
			End:      window.End,
			Speaker:  assignment.Label,
			Duration: window.Duration(),
		})
	}
	return refined, unassigned
}

// AssignSpeakers labels each segment in place with the best-overlap speaker
// turn. Segments no turn can claim receive the unknown label. It returns
// the number of segments labeled via overlap or fallback.
func AssignSpeakers(segs []Segment, turns []Turn, opts timeline.AssignOptions) int {
	candidates := turnCandidates(turns)
	assigned := 0
	for i := range segs {
		assignment := timeline.Assign(segs[i].Interval(), candidates, opts)
		segs[i].Speaker = assignment.Label
		if assignment.Assigned() {
			assigned++
		}
	}
	return assigned
}

func turnCandidates(turns []Turn) []timeline.Candidate {
	candidates := make([]timeline.Candidate, 0, len(turns))
	for _, turn := range turns {
		candidates = append(candidates, timeline.Candidate{
			Interval: turn.Interval(),
			Label:    turn.Speaker,
		})
	}
	return candidates
}

var titleCaser = cases.Title(language.Und)

// DisplayLabel rewrites a raw diarization identifier into a human-readable
// cue label: "spk_0" and "SPEAKER_00" become "Speaker 1". Identifiers with
// no trailing number are title-cased as-is; the unknown label maps to "".
func DisplayLabel(speaker string) string {
	trimmed := strings.TrimSpace(speaker)
	if trimmed == "" || trimmed == timeline.UnknownLabel {
		return ""
	}
	for _, sep := range []string{"_", "-", " "} {
		if idx := strings.LastIndex(trimmed, sep); idx > 0 {
			if n, err := strconv.Atoi(trimmed[idx+1:]); err == nil {
				return fmt.Sprintf("Speaker %d", n+1)
			}
		}
	}
	return titleCaser.String(strings.ToLower(trimmed))
}
