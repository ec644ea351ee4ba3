package segments

import (
	"encoding/json"
	"fmt"
	"os"

	"subfuse/internal/timeline"
)

// Wire records use pointers for required fields so missing keys are
// detected instead of silently decoding to zero.

type vadRecord struct {
	Start    *float64 `json:"start"`
	End      *float64 `json:"end"`
	Duration float64  `json:"duration"`
}

type turnRecord struct {
	Start   *float64 `json:"start"`
	End     *float64 `json:"end"`
	Speaker *string  `json:"speaker"`
}

type asrRecord struct {
	Start *float64 `json:"start"`
	End   *float64 `json:"end"`
	Text  *string  `json:"text"`
}

// LoadVAD reads voice-activity windows from a JSON file.
func LoadVAD(path string) ([]timeline.Interval, error) {
	var records []vadRecord
	if err := decodeFile(path, &records); err != nil {
		return nil, fmt.Errorf("parse vad segments: %w", err)
	}
	intervals := make([]timeline.Interval, 0, len(records))
	for i, rec := range records {
		if rec.Start == nil || rec.End == nil {
			return nil, fmt.Errorf("parse vad segments: record %d missing start or end", i)
		}
		intervals = append(intervals, timeline.Interval{Start: *rec.Start, End: *rec.End})
	}
	return intervals, nil
}

// LoadTurns reads diarization turns from a JSON file.
func LoadTurns(path string) ([]Turn, error) {
	var records []turnRecord
	if err := decodeFile(path, &records); err != nil {
		return nil, fmt.Errorf("parse diarization turns: %w", err)
	}
	turns := make([]Turn, 0, len(records))
	for i, rec := range records {
		if rec.Start == nil || rec.End == nil || rec.Speaker == nil {
			return nil, fmt.Errorf("parse diarization turns: record %d missing start, end, or speaker", i)
		}
		turns = append(turns, Turn{
			Start:    *rec.Start,
			End:      *rec.End,
			Speaker:  *rec.Speaker,
			Duration: *rec.End - *rec.Start,
		})
	}
	return turns, nil
}

// LoadSegments reads ASR segments (or an alternate transcript of the same
// shape) from a JSON file.
func LoadSegments(path string) ([]Segment, error) {
	var records []asrRecord
	if err := decodeFile(path, &records); err != nil {
		return nil, fmt.Errorf("parse asr segments: %w", err)
	}
	segs := make([]Segment, 0, len(records))
	for i, rec := range records {
		if rec.Start == nil || rec.End == nil {
			return nil, fmt.Errorf("parse asr segments: record %d missing start or end", i)
		}
		seg := Segment{Start: *rec.Start, End: *rec.End}
		if rec.Text != nil {
			seg.Text = *rec.Text
		}
		segs = append(segs, seg)
	}
	return segs, nil
}

// LoadVocabulary reads a plain JSON string array, used for the poetic
// marker and musical interjection lists.
func LoadVocabulary(path string) ([]string, error) {
	var terms []string
	if err := decodeFile(path, &terms); err != nil {
		return nil, fmt.Errorf("parse vocabulary: %w", err)
	}
	return terms, nil
}

func decodeFile(path string, target any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, target); err != nil {
		return err
	}
	return nil
}
