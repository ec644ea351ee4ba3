package fusion

import (
	"errors"

	"subfuse/internal/segments"
	"subfuse/internal/timeline"
)

// Inputs names the upstream annotation artifacts for one fusion job. The
// ASR transcript is required; everything else degrades gracefully when
// absent (no speaker labels, no substitution source, built-in vocabularies
// only).
type Inputs struct {
	VADPath           string
	TurnsPath         string
	ASRPath           string
	AlternatePath     string
	PoeticPath        string
	InterjectionsPath string
}

// materials holds the fully loaded upstream artifacts.
type materials struct {
	vad           []timeline.Interval
	turns         []segments.Turn
	asr           []segments.Segment
	alternate     []segments.Segment
	poetic        []string
	interjections []string
}

func (in Inputs) load() (materials, error) {
	var m materials

	if in.ASRPath == "" {
		return m, errors.New("asr segments path is required")
	}
	asr, err := segments.LoadSegments(in.ASRPath)
	if err != nil {
		return m, err
	}
	m.asr = asr

	if in.VADPath != "" {
		if m.vad, err = segments.LoadVAD(in.VADPath); err != nil {
			return m, err
		}
	}
	if in.TurnsPath != "" {
		if m.turns, err = segments.LoadTurns(in.TurnsPath); err != nil {
			return m, err
		}
	}
	if in.AlternatePath != "" {
		if m.alternate, err = segments.LoadSegments(in.AlternatePath); err != nil {
			return m, err
		}
	}
	if in.PoeticPath != "" {
		if m.poetic, err = segments.LoadVocabulary(in.PoeticPath); err != nil {
			return m, err
		}
	}
	if in.InterjectionsPath != "" {
		if m.interjections, err = segments.LoadVocabulary(in.InterjectionsPath); err != nil {
			return m, err
		}
	}
	return m, nil
}
