package config

const (
	defaultOutputDir = "~/.local/share/subfuse/output"
	defaultLogDir    = "~/.local/share/subfuse/logs"
	defaultStoreDir  = "~/.local/share/subfuse"
	defaultLogFormat = "console"
	defaultLogLevel  = "info"

	defaultVADMergeGap           = 0.35
	defaultVADMinDuration        = 0.25
	defaultPreciseVADMergeGap    = 0.15
	defaultPreciseVADMinDuration = 0.1

	defaultMinOverlapRatio    = 0.3
	defaultProximityTolerance = 1.0

	defaultMaxRepeatWords         = 3
	defaultClusterWindowSeconds   = 10.0
	defaultClusterMinSegments     = 5
	defaultClusterMaxAvgWords     = 2.5
	defaultMinSegmentDuration     = 0.3
	defaultSubstitutionMinOverlap = 0.5
	defaultSubstitutionTolerance  = 1.5

	defaultLyricWindowSize           = 5
	defaultLyricScoreThreshold       = 0.55
	defaultLyricRepetitionThreshold  = 0.4
	defaultLyricTimingTolerance      = 0.35
	defaultLyricTimingRatioThreshold = 0.6
	defaultLyricMinAvgWords          = 4.0
	defaultLyricMergeGap             = 3.0

	defaultMaxMergeGap    = 0.5
	defaultMinCueDuration = 1.0
	defaultMaxCueDuration = 7.0
	defaultTargetCPS      = 17.0
	defaultHardCapCPS     = 25.0
	defaultCPSSlack       = 1.2
	defaultMaxLineChars   = 42
	defaultMaxLines       = 2
	defaultMaxCueChars    = 84
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			OutputDir: defaultOutputDir,
			LogDir:    defaultLogDir,
			StoreDir:  defaultStoreDir,
		},
		VAD: VAD{
			MergeGap:           defaultVADMergeGap,
			MinDuration:        defaultVADMinDuration,
			PreciseMergeGap:    defaultPreciseVADMergeGap,
			PreciseMinDuration: defaultPreciseVADMinDuration,
		},
		Speakers: Speakers{
			MinOverlapRatio:    defaultMinOverlapRatio,
			ProximityTolerance: defaultProximityTolerance,
			NearestFallback:    true,
			DisplayLabels:      true,
		},
		Hallucination: Hallucination{
			MaxRepeatWords:         defaultMaxRepeatWords,
			ClusterWindowSeconds:   defaultClusterWindowSeconds,
			ClusterMinSegments:     defaultClusterMinSegments,
			ClusterMaxAvgWords:     defaultClusterMaxAvgWords,
			MinSegmentDuration:     defaultMinSegmentDuration,
			SubstitutionMinOverlap: defaultSubstitutionMinOverlap,
			SubstitutionTolerance:  defaultSubstitutionTolerance,
		},
		Lyrics: Lyrics{
			WindowSize:           defaultLyricWindowSize,
			ScoreThreshold:       defaultLyricScoreThreshold,
			RepetitionThreshold:  defaultLyricRepetitionThreshold,
			TimingTolerance:      defaultLyricTimingTolerance,
			TimingRatioThreshold: defaultLyricTimingRatioThreshold,
			MinAvgWords:          defaultLyricMinAvgWords,
			MergeGap:             defaultLyricMergeGap,
		},
		Subtitles: Subtitles{
			MaxMergeGap:    defaultMaxMergeGap,
			MinCueDuration: defaultMinCueDuration,
			MaxCueDuration: defaultMaxCueDuration,
			TargetCPS:      defaultTargetCPS,
			HardCapCPS:     defaultHardCapCPS,
			CPSSlack:       defaultCPSSlack,
			MaxLineChars:   defaultMaxLineChars,
			MaxLines:       defaultMaxLines,
			MaxCueChars:    defaultMaxCueChars,
		},
		Store: Store{
			Enabled: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
