package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	OutputDir string `toml:"output_dir"`
	LogDir    string `toml:"log_dir"`
	StoreDir  string `toml:"store_dir"`
}

// VAD contains interval merge settings for the voice-activity passes.
type VAD struct {
	// MergeGap is the hysteresis gap (seconds) for the coarse merge pass.
	MergeGap    float64 `toml:"merge_gap"`
	MinDuration float64 `toml:"min_duration"`
	// PreciseMergeGap and PreciseMinDuration drive the second,
	// higher-precision pass used to refine diarization turns.
	PreciseMergeGap    float64 `toml:"precise_merge_gap"`
	PreciseMinDuration float64 `toml:"precise_min_duration"`
}

// Speakers contains settings for speaker assignment by temporal overlap.
type Speakers struct {
	// MinOverlapRatio is the acceptance threshold for the best-overlap
	// candidate, as a fraction of the target segment's duration.
	MinOverlapRatio float64 `toml:"min_overlap_ratio"`
	// ProximityTolerance bounds the nearest-start fallback (seconds).
	ProximityTolerance float64 `toml:"proximity_tolerance"`
	NearestFallback    bool    `toml:"nearest_fallback"`
	// DisplayLabels rewrites raw diarization identifiers ("spk_0") into
	// human-readable cue labels ("Speaker 1").
	DisplayLabels bool `toml:"display_labels"`
}

// Hallucination contains detector and substitution settings for
// transcription artifacts.
type Hallucination struct {
	// MaxRepeatWords is the word-count ceiling for the repeated-fragment
	// detector; longer repeated phrases are left to the lyric detector.
	MaxRepeatWords int `toml:"max_repeat_words"`
	// A cluster is more than ClusterMinSegments segments inside
	// ClusterWindowSeconds averaging below ClusterMaxAvgWords words each.
	ClusterWindowSeconds float64 `toml:"cluster_window_seconds"`
	ClusterMinSegments   int     `toml:"cluster_min_segments"`
	ClusterMaxAvgWords   float64 `toml:"cluster_max_avg_words"`
	// MinSegmentDuration flags 1-2 word fragments shorter than this.
	MinSegmentDuration float64 `toml:"min_segment_duration"`
	// SubstitutionMinOverlap and SubstitutionTolerance control replacement
	// lookup in the alternate transcript.
	SubstitutionMinOverlap float64 `toml:"substitution_min_overlap"`
	SubstitutionTolerance  float64 `toml:"substitution_tolerance"`
}

// Lyrics contains the sliding-window song detector settings.
type Lyrics struct {
	WindowSize           int     `toml:"window_size"`
	ScoreThreshold       float64 `toml:"score_threshold"`
	RepetitionThreshold  float64 `toml:"repetition_threshold"`
	TimingTolerance      float64 `toml:"timing_tolerance"`
	TimingRatioThreshold float64 `toml:"timing_ratio_threshold"`
	MinAvgWords          float64 `toml:"min_avg_words"`
	// MergeGap unions adjacent candidate windows into one run (seconds).
	MergeGap float64 `toml:"merge_gap"`
	// PoeticMarkers and MusicalInterjections extend the built-in
	// vocabularies consumed by the detector.
	PoeticMarkers        []string `toml:"poetic_markers"`
	MusicalInterjections []string `toml:"musical_interjections"`
}

// Subtitles contains readability constraints for the final cue list.
type Subtitles struct {
	MaxMergeGap    float64 `toml:"max_merge_gap"`
	MinCueDuration float64 `toml:"min_cue_duration"`
	MaxCueDuration float64 `toml:"max_cue_duration"`
	TargetCPS      float64 `toml:"target_cps"`
	HardCapCPS     float64 `toml:"hard_cap_cps"`
	// CPSSlack relaxes the hard cap during the merge phase; the timing
	// phase pulls merged cues back toward TargetCPS afterwards.
	CPSSlack     float64 `toml:"cps_slack"`
	MaxLineChars int     `toml:"max_line_chars"`
	MaxLines     int     `toml:"max_lines"`
	MaxCueChars  int     `toml:"max_cue_chars"`
}

// Store contains configuration for the fusion job ledger.
type Store struct {
	Enabled bool `toml:"enabled"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for subfuse.
//
// Configuration sections by subsystem:
//   - Paths: output, log, and store directories
//   - VAD: hysteresis merge gaps and minimum durations for both passes
//   - Speakers: overlap acceptance and nearest-start fallback thresholds
//   - Hallucination: repeat/cluster/fragment detector and substitution limits
//   - Lyrics: sliding-window song detector thresholds and vocabularies
//   - Subtitles: reading-speed and line-layout constraints
//   - Store: fusion job ledger toggle
//   - Logging: log format and level
type Config struct {
	Paths         Paths         `toml:"paths"`
	VAD           VAD           `toml:"vad"`
	Speakers      Speakers      `toml:"speakers"`
	Hallucination Hallucination `toml:"hallucination"`
	Lyrics        Lyrics        `toml:"lyrics"`
	Subtitles     Subtitles     `toml:"subtitles"`
	Store         Store         `toml:"store"`
	Logging       Logging       `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/subfuse/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("subfuse.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates required directories for engine output.
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.Paths.OutputDir, c.Paths.LogDir}
	if c.Store.Enabled {
		dirs = append(dirs, c.Paths.StoreDir)
	}
	for _, dir := range dirs {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
