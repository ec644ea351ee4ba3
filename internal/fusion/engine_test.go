package fusion

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"subfuse/internal/cues"
	"subfuse/internal/logging"
	"subfuse/internal/testsupport"
)

func writeFixture(t *testing.T, dir, name string, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal fixture %s: %v", name, err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write fixture %s: %v", name, err)
	}
	return path
}

type fixtureSegment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text,omitempty"`
}

type fixtureTurn struct {
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
	Speaker string  `json:"speaker"`
}

type fixtureWindow struct {
	Start    float64 `json:"start"`
	End      float64 `json:"end"`
	Duration float64 `json:"duration"`
}

func TestEngineEndToEnd(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	dir := t.TempDir()

	vadPath := writeFixture(t, dir, "vad.json", []fixtureWindow{
		{Start: 0, End: 2, Duration: 2},
		{Start: 2.2, End: 5, Duration: 2.8},
		{Start: 5.05, End: 7, Duration: 1.95},
	})
	turnsPath := writeFixture(t, dir, "turns.json", []fixtureTurn{
		{Start: 0, End: 2, Speaker: "spk_0"},
		{Start: 2.2, End: 7, Speaker: "spk_1"},
	})
	asrPath := writeFixture(t, dir, "asr.json", []fixtureSegment{
		{Start: 0.1, End: 1.9, Text: "Morning, did the shipment arrive?"},
		{Start: 2.3, End: 3.4, Text: "It did, late last night."},
		{Start: 3.6, End: 5.0, Text: "Sign here and we can unload."},
		{Start: 5.2, End: 6.8, Text: "Give me a minute to find the manifest."},
	})

	engine := New(cfg, logging.NewNop())
	res, err := engine.Run(context.Background(), Inputs{
		VADPath:   vadPath,
		TurnsPath: turnsPath,
		ASRPath:   asrPath,
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if res.Report.JobID == "" {
		t.Error("missing job id")
	}
	if res.Report.CoarseSpeechWindows != 1 {
		t.Errorf("coarse windows = %d, want 1", res.Report.CoarseSpeechWindows)
	}
	if res.Report.PreciseSpeechWindows != 2 {
		t.Errorf("precise windows = %d, want 2", res.Report.PreciseSpeechWindows)
	}
	if res.Report.SegmentsIn != 4 {
		t.Errorf("segments in = %d, want 4", res.Report.SegmentsIn)
	}
	if res.Report.SegmentsLabeled != 4 {
		t.Errorf("segments labeled = %d, want 4", res.Report.SegmentsLabeled)
	}
	if len(res.Cues) == 0 {
		t.Fatal("no cues produced")
	}
	for i := 1; i < len(res.Cues); i++ {
		if res.Cues[i].Start < res.Cues[i-1].End {
			t.Fatalf("cues overlap: %+v", res.Cues)
		}
	}
	if res.Cues[0].Speaker != "Speaker 1" {
		t.Errorf("first cue speaker = %q, want Speaker 1", res.Cues[0].Speaker)
	}
}

func TestEngineEmptyTranscript(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	dir := t.TempDir()
	asrPath := writeFixture(t, dir, "asr.json", []fixtureSegment{})

	engine := New(cfg, logging.NewNop())
	res, err := engine.Run(context.Background(), Inputs{ASRPath: asrPath})
	if err != nil {
		t.Fatalf("empty transcript should not error: %v", err)
	}
	if len(res.Segments) != 0 || len(res.Cues) != 0 {
		t.Errorf("expected empty outputs, got %d segments, %d cues", len(res.Segments), len(res.Cues))
	}
}

func TestEngineRequiresASRPath(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	engine := New(cfg, logging.NewNop())
	if _, err := engine.Run(context.Background(), Inputs{}); err == nil {
		t.Fatal("expected error for missing asr path")
	}
}

func TestEngineRejectsMissingRequiredFields(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	dir := t.TempDir()
	asrPath := filepath.Join(dir, "asr.json")
	if err := os.WriteFile(asrPath, []byte(`[{"start": 1.0, "text": "no end key"}]`), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	engine := New(cfg, logging.NewNop())
	if _, err := engine.Run(context.Background(), Inputs{ASRPath: asrPath}); err == nil {
		t.Fatal("expected error for record missing end")
	}
}

func TestEngineDropsHallucinationsWithoutAlternate(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	dir := t.TempDir()
	asrPath := writeFixture(t, dir, "asr.json", []fixtureSegment{
		{Start: 10.0, End: 10.2, Text: "Okay."},
		{Start: 10.3, End: 10.5, Text: "Okay."},
		{Start: 10.6, End: 10.8, Text: "Okay."},
	})

	engine := New(cfg, logging.NewNop())
	res, err := engine.Run(context.Background(), Inputs{ASRPath: asrPath})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(res.Segments) != 0 {
		t.Errorf("expected hallucinated segments dropped, got %+v", res.Segments)
	}
	if res.Report.HallucinationRuns != 1 {
		t.Errorf("hallucination runs = %d, want 1", res.Report.HallucinationRuns)
	}
	if res.Report.DroppedSegments != 3 {
		t.Errorf("dropped segments = %d, want 3", res.Report.DroppedSegments)
	}
	if res.Report.SkippedRuns != 1 {
		t.Errorf("skipped runs = %d, want 1", res.Report.SkippedRuns)
	}
}

func TestEngineSubstitutesFromCleanedAlternate(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	dir := t.TempDir()
	asrPath := writeFixture(t, dir, "asr.json", []fixtureSegment{
		{Start: 10.0, End: 10.2, Text: "Okay."},
		{Start: 10.3, End: 10.5, Text: "Okay."},
		{Start: 10.6, End: 10.8, Text: "Okay."},
	})
	altPath := writeFixture(t, dir, "alt.json", []fixtureSegment{
		{Start: 0.0, End: 2.0, Text: "Subtitles by CaptionCrew"},
		{Start: 9.9, End: 10.25, Text: "All right."},
		{Start: 10.25, End: 10.55, Text: "All right then."},
		{Start: 10.55, End: 10.9, Text: "Let's go."},
	})

	engine := New(cfg, logging.NewNop())
	res, err := engine.Run(context.Background(), Inputs{ASRPath: asrPath, AlternatePath: altPath})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if res.Report.AdvertisementsRemoved != 1 {
		t.Errorf("advertisements removed = %d, want 1", res.Report.AdvertisementsRemoved)
	}
	if res.Report.SubstitutedSegments != 3 {
		t.Errorf("substituted = %d, want 3", res.Report.SubstitutedSegments)
	}
	if len(res.Segments) != 3 {
		t.Fatalf("expected 3 substituted segments, got %d", len(res.Segments))
	}
	if res.Segments[0].Text != "All right." || res.Segments[0].TextOriginal != "Okay." {
		t.Errorf("substitution wrong: %+v", res.Segments[0])
	}
}

func TestWriteOutputsRoundTrip(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	dir := t.TempDir()
	asrPath := writeFixture(t, dir, "asr.json", []fixtureSegment{
		{Start: 0.0, End: 2.0, Text: "The ferry leaves at noon."},
		{Start: 2.6, End: 4.4, Text: "Then we have an hour to spare."},
	})

	engine := New(cfg, logging.NewNop())
	res, err := engine.Run(context.Background(), Inputs{ASRPath: asrPath})
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	jsonPath := filepath.Join(dir, "out.json")
	srtPath := filepath.Join(dir, "out.srt")
	if err := engine.WriteOutputs(res, jsonPath, srtPath); err != nil {
		t.Fatalf("write outputs: %v", err)
	}

	data, err := os.ReadFile(jsonPath)
	if err != nil {
		t.Fatalf("read json output: %v", err)
	}
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("parse json output: %v", err)
	}
	if len(doc.Segments) != len(res.Segments) {
		t.Errorf("json segments = %d, want %d", len(doc.Segments), len(res.Segments))
	}
	if doc.Summary.JobID != res.Report.JobID {
		t.Errorf("summary job id = %q, want %q", doc.Summary.JobID, res.Report.JobID)
	}

	parsed, err := cues.ReadSRT(srtPath)
	if err != nil {
		t.Fatalf("parse srt output: %v", err)
	}
	if len(parsed) != len(res.Cues) {
		t.Errorf("srt cues = %d, want %d", len(parsed), len(res.Cues))
	}
}
