package fusion

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"subfuse/internal/classify"
	"subfuse/internal/config"
	"subfuse/internal/cues"
	"subfuse/internal/logging"
	"subfuse/internal/segments"
	"subfuse/internal/timeline"
)

// Engine runs the fusion pipeline for one job: speech-window merging, turn
// refinement, speaker labeling, run classification and collapse, and cue
// construction. The pipeline is single-threaded and deterministic; each
// stage consumes the complete output of the previous one.
type Engine struct {
	cfg    *config.Config
	logger *slog.Logger
}

// Result is the output of one fusion job.
type Result struct {
	Segments []segments.Segment
	Cues     []cues.Cue
	Report   Report
}

// New builds an engine. A nil logger disables logging.
func New(cfg *config.Config, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Engine{cfg: cfg, logger: logging.NewComponentLogger(logger, "fusion")}
}

// Run executes the pipeline over the named inputs. Malformed input is
// fatal for the job; empty inputs are valid and yield empty outputs.
func (e *Engine) Run(ctx context.Context, in Inputs) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	started := time.Now()
	report := Report{
		JobID:     uuid.NewString(),
		Source:    in.ASRPath,
		CreatedAt: started.UTC(),
	}
	log := e.logger.With(logging.String(logging.FieldJobID, report.JobID))

	m, err := in.load()
	if err != nil {
		logging.ErrorWithContext(log, "input load failed", "input_error",
			logging.String(logging.FieldStage, "load"),
			logging.Error(err))
		return nil, fmt.Errorf("load inputs: %w", err)
	}
	report.SegmentsIn = len(m.asr)
	log.Info("fusion job started",
		logging.Int("asr_segments", len(m.asr)),
		logging.Int("vad_windows", len(m.vad)),
		logging.Int("diarization_turns", len(m.turns)),
		logging.Int("alternate_segments", len(m.alternate)))

	precise := e.mergeSpeechWindows(log, m.vad, &report)
	turns := e.refineTurns(log, precise, m.turns, &report)
	e.labelSpeakers(log, m.asr, turns, &report)
	collapsed := e.classifyAndCollapse(log, m, &report)
	cueList := e.buildCues(log, collapsed, &report)

	report.ElapsedMS = time.Since(started).Milliseconds()
	log.Info("fusion job finished",
		logging.Int("cues", len(cueList)),
		logging.Int64("elapsed_ms", report.ElapsedMS))

	return &Result{Segments: collapsed, Cues: cueList, Report: report}, nil
}

// mergeSpeechWindows normalizes the raw voice-activity windows and runs the
// coarse and precise merge passes. The precise pass feeds turn refinement.
func (e *Engine) mergeSpeechWindows(log *slog.Logger, vad []timeline.Interval, report *Report) []timeline.Interval {
	if len(vad) == 0 {
		return nil
	}
	normalized, clamped := timeline.Normalize(vad)
	if clamped > 0 {
		report.ClampedIntervals += clamped
		report.addWarning(fmt.Sprintf("clamped %d inconsistent vad intervals", clamped))
		logging.WarnWithContext(log, "clamped inconsistent intervals", "data_quality",
			logging.String(logging.FieldStage, "vad_merge"),
			logging.Int("count", clamped))
	}

	coarse := timeline.Merge(normalized, timeline.MergeOptions{
		MaxGap:      e.cfg.VAD.MergeGap,
		MinDuration: e.cfg.VAD.MinDuration,
	})
	precise := timeline.Merge(normalized, timeline.MergeOptions{
		MaxGap:      e.cfg.VAD.PreciseMergeGap,
		MinDuration: e.cfg.VAD.PreciseMinDuration,
	})
	report.CoarseSpeechWindows = len(coarse)
	report.PreciseSpeechWindows = len(precise)
	log.Info("speech windows merged",
		logging.String(logging.FieldStage, "vad_merge"),
		logging.Int("raw", len(vad)),
		logging.Int("coarse", len(coarse)),
		logging.Int("precise", len(precise)))
	return precise
}

// refineTurns projects diarization turns onto the precise speech windows.
// Without VAD windows the raw turns are used directly.
func (e *Engine) refineTurns(log *slog.Logger, speech []timeline.Interval, turns []segments.Turn, report *Report) []segments.Turn {
	if len(turns) == 0 {
		return nil
	}
	if len(speech) == 0 {
		report.RefinedTurns = len(turns)
		return turns
	}
	refined, unassigned := segments.RefineTurns(speech, turns, e.speakerAssignOptions())
	report.RefinedTurns = len(refined)
	report.UnassignedWindows = unassigned
	log.Info("diarization turns refined",
		logging.String(logging.FieldStage, "turn_refine"),
		logging.Int("turns", len(turns)),
		logging.Int("refined", len(refined)),
		logging.Int("unassigned_windows", unassigned))
	return refined
}

func (e *Engine) labelSpeakers(log *slog.Logger, segs []segments.Segment, turns []segments.Turn, report *Report) {
	if clamped := segments.NormalizeSegments(segs); clamped > 0 {
		report.ClampedIntervals += clamped
		report.addWarning(fmt.Sprintf("clamped %d inconsistent asr segments", clamped))
		logging.WarnWithContext(log, "clamped inconsistent segments", "data_quality",
			logging.String(logging.FieldStage, "speaker_label"),
			logging.Int("count", clamped))
	}
	if len(turns) == 0 {
		return
	}
	labeled := segments.AssignSpeakers(segs, turns, e.speakerAssignOptions())
	report.SegmentsLabeled = labeled
	log.Info("speakers assigned",
		logging.String(logging.FieldStage, "speaker_label"),
		logging.Int("segments", len(segs)),
		logging.Int("labeled", labeled))
}

func (e *Engine) classifyAndCollapse(log *slog.Logger, m materials, report *Report) []segments.Segment {
	vocab := classify.NewVocabulary(
		append(append([]string{}, e.cfg.Lyrics.PoeticMarkers...), m.poetic...),
		append(append([]string{}, e.cfg.Lyrics.MusicalInterjections...), m.interjections...),
	)

	runs := classify.Classify(m.asr, e.cfg.Hallucination, e.cfg.Lyrics, vocab)
	report.Runs = summarizeRuns(runs)
	for _, run := range runs {
		switch run.Kind {
		case classify.KindLyric:
			report.LyricRuns++
		case classify.KindHallucination:
			report.HallucinationRuns++
		}
	}
	log.Info("segments classified",
		logging.String(logging.FieldStage, "classify"),
		logging.Int("lyric_runs", report.LyricRuns),
		logging.Int("hallucination_runs", report.HallucinationRuns))

	alternate := m.alternate
	if len(alternate) > 0 {
		cleaned, removed := cues.StripAdvertisements(alternate)
		if removed > 0 {
			report.AdvertisementsRemoved = removed
			log.Info("advertisement segments removed from alternate transcript",
				logging.String(logging.FieldStage, "collapse"),
				logging.Int("removed", removed))
		}
		segments.NormalizeSegments(cleaned)
		alternate = cleaned
	}

	collapsed, stats := classify.Collapse(m.asr, runs, alternate, e.cfg.Hallucination)
	report.SubstitutedSegments = stats.Substituted
	report.DroppedSegments = stats.DroppedSegments
	report.SkippedRuns = stats.SkippedRuns
	if stats.SkippedRuns > 0 {
		logging.WarnWithContext(log, "hallucination runs dropped without replacement", "substitution_miss",
			logging.String(logging.FieldStage, "collapse"),
			logging.Int("runs", stats.SkippedRuns),
			logging.Int("segments", stats.DroppedSegments))
	}
	log.Info("runs collapsed",
		logging.String(logging.FieldStage, "collapse"),
		logging.Int("segments_out", len(collapsed)),
		logging.Int("substituted", stats.Substituted),
		logging.Int("dropped", stats.DroppedSegments))
	return collapsed
}

func (e *Engine) buildCues(log *slog.Logger, collapsed []segments.Segment, report *Report) []cues.Cue {
	cueList, stats := cues.Build(collapsed, e.cfg.Subtitles)
	if e.cfg.Speakers.DisplayLabels {
		for i := range cueList {
			cueList[i].Speaker = segments.DisplayLabel(cueList[i].Speaker)
		}
	}
	report.Cues = len(cueList)
	report.TruncatedCues = stats.TruncatedCues
	if stats.TruncatedCues > 0 {
		report.addWarning(fmt.Sprintf("truncated %d cues at the line limit", stats.TruncatedCues))
		logging.WarnWithContext(log, "cue text truncated at line limit", "layout_overflow",
			logging.String(logging.FieldStage, "readability"),
			logging.Int("cues", stats.TruncatedCues))
	}
	log.Info("cues built",
		logging.String(logging.FieldStage, "readability"),
		logging.Int("segments", len(collapsed)),
		logging.Int("cues", len(cueList)),
		logging.Int("merged_segments", stats.MergedSegments))
	return cueList
}

func (e *Engine) speakerAssignOptions() timeline.AssignOptions {
	return timeline.AssignOptions{
		MinOverlapRatio:    e.cfg.Speakers.MinOverlapRatio,
		NearestFallback:    e.cfg.Speakers.NearestFallback,
		ProximityTolerance: e.cfg.Speakers.ProximityTolerance,
	}
}
