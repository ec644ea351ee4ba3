// Package fusion orchestrates the segment fusion pipeline: voice-activity
// merging, diarization turn refinement, speaker labeling, hallucination
// and lyric run handling, and subtitle cue construction, with a per-job
// report and locked output writers.
package fusion
