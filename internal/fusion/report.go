package fusion

import (
	"time"

	"subfuse/internal/classify"
)

// RunSummary describes one classified run in the fusion report.
type RunSummary struct {
	Kind       string  `json:"kind"`
	Start      float64 `json:"start"`
	End        float64 `json:"end"`
	Segments   int     `json:"segments"`
	Confidence float64 `json:"confidence"`
	Method     string  `json:"method"`
}

// Report carries per-stage counts and run metadata for one fusion job. It
// is emitted as the sibling summary object next to the enriched segments.
type Report struct {
	JobID     string    `json:"job_id"`
	Source    string    `json:"source,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	ElapsedMS int64     `json:"elapsed_ms"`

	CoarseSpeechWindows  int `json:"coarse_speech_windows"`
	PreciseSpeechWindows int `json:"precise_speech_windows"`
	ClampedIntervals     int `json:"clamped_intervals,omitempty"`
	RefinedTurns         int `json:"refined_turns"`
	UnassignedWindows    int `json:"unassigned_windows,omitempty"`

	SegmentsIn      int `json:"segments_in"`
	SegmentsLabeled int `json:"segments_labeled"`

	Runs                  []RunSummary `json:"runs,omitempty"`
	LyricRuns             int          `json:"lyric_runs"`
	HallucinationRuns     int          `json:"hallucination_runs"`
	SubstitutedSegments   int          `json:"substituted_segments"`
	DroppedSegments       int          `json:"dropped_segments"`
	SkippedRuns           int          `json:"skipped_runs"`
	AdvertisementsRemoved int          `json:"advertisements_removed,omitempty"`

	Cues          int `json:"cues"`
	TruncatedCues int `json:"truncated_cues,omitempty"`

	Warnings []string `json:"warnings,omitempty"`
}

func (r *Report) addWarning(msg string) {
	r.Warnings = append(r.Warnings, msg)
}

func summarizeRuns(runs []classify.Run) []RunSummary {
	if len(runs) == 0 {
		return nil
	}
	summaries := make([]RunSummary, 0, len(runs))
	for _, run := range runs {
		summaries = append(summaries, RunSummary{
			Kind:       run.Kind.String(),
			Start:      run.Start,
			End:        run.End,
			Segments:   run.Len(),
			Confidence: run.Confidence,
			Method:     run.Method,
		})
	}
	return summaries
}
