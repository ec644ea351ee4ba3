package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"subfuse/internal/config"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, _, exists, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if exists {
		t.Fatal("expected exists=false for missing config")
	}
	if cfg.Subtitles.MaxLineChars != 42 {
		t.Errorf("expected default max_line_chars 42, got %d", cfg.Subtitles.MaxLineChars)
	}
	if cfg.Lyrics.WindowSize != 5 {
		t.Errorf("expected default lyrics window 5, got %d", cfg.Lyrics.WindowSize)
	}
}

func TestLoadOverridesAndNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := strings.Join([]string{
		"[subtitles]",
		"target_cps = 15.0",
		"hard_cap_cps = 20.0",
		"",
		"[lyrics]",
		`poetic_markers = [" Moonlight ", "moonlight", ""]`,
		"",
		"[logging]",
		`format = "JSON"`,
	}, "\n")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !exists || resolved == "" {
		t.Fatalf("expected config to resolve, exists=%v path=%q", exists, resolved)
	}
	if cfg.Subtitles.TargetCPS != 15.0 {
		t.Errorf("expected target_cps 15, got %v", cfg.Subtitles.TargetCPS)
	}
	if len(cfg.Lyrics.PoeticMarkers) != 1 || cfg.Lyrics.PoeticMarkers[0] != "moonlight" {
		t.Errorf("expected deduplicated lowercase markers, got %v", cfg.Lyrics.PoeticMarkers)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("expected normalized logging format json, got %q", cfg.Logging.Format)
	}
}

func TestValidateRejectsInvertedBounds(t *testing.T) {
	cfg := config.Default()
	cfg.Subtitles.HardCapCPS = cfg.Subtitles.TargetCPS - 1
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error when hard_cap_cps is below target_cps")
	}

	cfg = config.Default()
	cfg.Lyrics.ScoreThreshold = 1.5
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for lyric score threshold above 1")
	}

	cfg = config.Default()
	cfg.Subtitles.MaxCueDuration = cfg.Subtitles.MinCueDuration - 0.5
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error when max_cue_duration is below min_cue_duration")
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	if _, _, exists, err := config.Load(path); err != nil {
		t.Fatalf("Load sample: %v", err)
	} else if !exists {
		t.Fatal("expected sample config to exist")
	}
}
