package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateVAD(); err != nil {
		return err
	}
	if err := c.validateSpeakers(); err != nil {
		return err
	}
	if err := c.validateHallucination(); err != nil {
		return err
	}
	if err := c.validateLyrics(); err != nil {
		return err
	}
	if err := c.validateSubtitles(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateVAD() error {
	if err := ensureNonNegative(map[string]float64{
		"vad.merge_gap":            c.VAD.MergeGap,
		"vad.min_duration":         c.VAD.MinDuration,
		"vad.precise_merge_gap":    c.VAD.PreciseMergeGap,
		"vad.precise_min_duration": c.VAD.PreciseMinDuration,
	}); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateSpeakers() error {
	if c.Speakers.MinOverlapRatio < 0 || c.Speakers.MinOverlapRatio > 1 {
		return errors.New("speakers.min_overlap_ratio must be between 0 and 1")
	}
	if c.Speakers.ProximityTolerance < 0 {
		return errors.New("speakers.proximity_tolerance must not be negative")
	}
	return nil
}

func (c *Config) validateHallucination() error {
	if c.Hallucination.MaxRepeatWords < 1 {
		return errors.New("hallucination.max_repeat_words must be at least 1")
	}
	if c.Hallucination.ClusterMinSegments < 2 {
		return errors.New("hallucination.cluster_min_segments must be at least 2")
	}
	if err := ensureNonNegative(map[string]float64{
		"hallucination.cluster_window_seconds": c.Hallucination.ClusterWindowSeconds,
		"hallucination.cluster_max_avg_words":  c.Hallucination.ClusterMaxAvgWords,
		"hallucination.min_segment_duration":   c.Hallucination.MinSegmentDuration,
		"hallucination.substitution_tolerance": c.Hallucination.SubstitutionTolerance,
	}); err != nil {
		return err
	}
	if c.Hallucination.SubstitutionMinOverlap < 0 || c.Hallucination.SubstitutionMinOverlap > 1 {
		return errors.New("hallucination.substitution_min_overlap must be between 0 and 1")
	}
	return nil
}

func (c *Config) validateLyrics() error {
	if c.Lyrics.WindowSize < 2 {
		return errors.New("lyrics.window_size must be at least 2")
	}
	for name, value := range map[string]float64{
		"lyrics.score_threshold":        c.Lyrics.ScoreThreshold,
		"lyrics.repetition_threshold":   c.Lyrics.RepetitionThreshold,
		"lyrics.timing_ratio_threshold": c.Lyrics.TimingRatioThreshold,
	} {
		if value < 0 || value > 1 {
			return fmt.Errorf("%s must be between 0 and 1", name)
		}
	}
	if err := ensureNonNegative(map[string]float64{
		"lyrics.timing_tolerance": c.Lyrics.TimingTolerance,
		"lyrics.min_avg_words":    c.Lyrics.MinAvgWords,
		"lyrics.merge_gap":        c.Lyrics.MergeGap,
	}); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateSubtitles() error {
	if err := ensurePositive(map[string]float64{
		"subtitles.min_cue_duration": c.Subtitles.MinCueDuration,
		"subtitles.max_cue_duration": c.Subtitles.MaxCueDuration,
		"subtitles.target_cps":       c.Subtitles.TargetCPS,
		"subtitles.hard_cap_cps":     c.Subtitles.HardCapCPS,
		"subtitles.cps_slack":        c.Subtitles.CPSSlack,
	}); err != nil {
		return err
	}
	if c.Subtitles.MaxMergeGap < 0 {
		return errors.New("subtitles.max_merge_gap must not be negative")
	}
	if c.Subtitles.MaxCueDuration < c.Subtitles.MinCueDuration {
		return errors.New("subtitles.max_cue_duration must not be below subtitles.min_cue_duration")
	}
	if c.Subtitles.HardCapCPS < c.Subtitles.TargetCPS {
		return errors.New("subtitles.hard_cap_cps must not be below subtitles.target_cps")
	}
	if c.Subtitles.MaxLineChars < 1 {
		return errors.New("subtitles.max_line_chars must be at least 1")
	}
	if c.Subtitles.MaxLines < 1 {
		return errors.New("subtitles.max_lines must be at least 1")
	}
	if c.Subtitles.MaxCueChars < c.Subtitles.MaxLineChars {
		return errors.New("subtitles.max_cue_chars must not be below subtitles.max_line_chars")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}

func ensureNonNegative(values map[string]float64) error {
	for name, value := range values {
		if value < 0 {
			return fmt.Errorf("%s must not be negative", name)
		}
	}
	return nil
}

func ensurePositive(values map[string]float64) error {
	for name, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", name)
		}
	}
	return nil
}
