package fusion

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/gofrs/flock"

	"subfuse/internal/cues"
	"subfuse/internal/logging"
	"subfuse/internal/segments"
)

// document is the enriched JSON output: the fused segments with the fusion
// report attached as a sibling summary object.
type document struct {
	Segments []segments.Segment `json:"segments"`
	Summary  Report             `json:"summary"`
}

// WriteOutputs writes the enriched segment JSON and the SRT cue list.
// Media jobs run as parallel OS processes; a file lock on the output
// basename keeps two jobs off the same target. Either path may be empty to
// skip that output.
func (e *Engine) WriteOutputs(res *Result, jsonPath, srtPath string) error {
	lockTarget := jsonPath
	if lockTarget == "" {
		lockTarget = srtPath
	}
	if lockTarget == "" {
		return nil
	}

	lock := flock.New(lockTarget + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire output lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("output %s is locked by another job", lockTarget)
	}
	defer func() {
		_ = lock.Unlock()
	}()

	if jsonPath != "" {
		doc := document{Segments: res.Segments, Summary: res.Report}
		if doc.Segments == nil {
			doc.Segments = []segments.Segment{}
		}
		if err := writeJSON(jsonPath, doc); err != nil {
			return err
		}
		e.logger.Info("enriched segments written",
			logging.String(logging.FieldJobID, res.Report.JobID),
			logging.String("path", jsonPath),
			logging.Int("segments", len(res.Segments)))
	}
	if srtPath != "" {
		if err := cues.WriteSRT(srtPath, res.Cues); err != nil {
			return err
		}
		e.logger.Info("subtitle cues written",
			logging.String(logging.FieldJobID, res.Report.JobID),
			logging.String("path", srtPath),
			logging.Int("cues", len(res.Cues)))
	}
	return nil
}

func writeJSON(path string, doc document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal segments: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write segments: %w", err)
	}
	return nil
}
