package main

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"subfuse/internal/config"
	"subfuse/internal/fusion"
	"subfuse/internal/jobstore"
	"subfuse/internal/logging"
	"subfuse/internal/textutil"
)

func newFuseCommand(ctx *commandContext) *cobra.Command {
	var (
		vadPath           string
		turnsPath         string
		asrPath           string
		alternatePath     string
		poeticPath        string
		interjectionsPath string
		srtOut            string
		jsonOut           string
	)

	cmd := &cobra.Command{
		Use:   "fuse",
		Short: "Fuse annotation streams into enriched segments and subtitle cues",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return fmt.Errorf("initialize logging: %w", err)
			}

			base := outputBase(asrPath)
			if srtOut == "" {
				srtOut = filepath.Join(cfg.Paths.OutputDir, base+".srt")
			}
			if jsonOut == "" {
				jsonOut = filepath.Join(cfg.Paths.OutputDir, base+".fused.json")
			}

			engine := fusion.New(cfg, logger)
			result, err := engine.Run(cmd.Context(), fusion.Inputs{
				VADPath:           vadPath,
				TurnsPath:         turnsPath,
				ASRPath:           asrPath,
				AlternatePath:     alternatePath,
				PoeticPath:        poeticPath,
				InterjectionsPath: interjectionsPath,
			})
			if err != nil {
				return err
			}

			if err := engine.WriteOutputs(result, jsonOut, srtOut); err != nil {
				return err
			}

			if cfg.Store.Enabled {
				if err := recordJob(cmd, result, asrPath, cfg); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "warning: record job: %v\n", err)
				}
			}

			printSummary(cmd, result, jsonOut, srtOut)
			return nil
		},
	}

	cmd.Flags().StringVar(&vadPath, "vad", "", "Voice-activity windows JSON")
	cmd.Flags().StringVar(&turnsPath, "turns", "", "Diarization turns JSON")
	cmd.Flags().StringVar(&asrPath, "asr", "", "ASR segments JSON (required)")
	cmd.Flags().StringVar(&alternatePath, "alternate", "", "Alternate transcript JSON for hallucination substitution")
	cmd.Flags().StringVar(&poeticPath, "poetic", "", "Additional poetic marker terms JSON")
	cmd.Flags().StringVar(&interjectionsPath, "interjections", "", "Additional musical interjection terms JSON")
	cmd.Flags().StringVar(&srtOut, "srt-out", "", "Subtitle output path (default: <output_dir>/<asr base>.srt)")
	cmd.Flags().StringVar(&jsonOut, "json-out", "", "Enriched segment output path (default: <output_dir>/<asr base>.fused.json)")
	_ = cmd.MarkFlagRequired("asr")

	return cmd
}

func outputBase(asrPath string) string {
	base := filepath.Base(asrPath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = textutil.SanitizeFileName(base)
	if base == "" || base == "." {
		base = "fused"
	}
	return base
}

func recordJob(cmd *cobra.Command, result *fusion.Result, source string, cfg *config.Config) error {
	store, err := jobstore.Open(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	report := result.Report
	return store.RecordJob(cmd.Context(), jobstore.JobRecord{
		JobID:             report.JobID,
		CreatedAt:         report.CreatedAt,
		Source:            source,
		SegmentsIn:        report.SegmentsIn,
		CuesOut:           report.Cues,
		LyricRuns:         report.LyricRuns,
		HallucinationRuns: report.HallucinationRuns,
		DroppedSegments:   report.DroppedSegments,
		Warnings:          len(report.Warnings),
		ElapsedMS:         report.ElapsedMS,
	})
}

func printSummary(cmd *cobra.Command, result *fusion.Result, jsonOut, srtOut string) {
	out := cmd.OutOrStdout()
	report := result.Report
	fmt.Fprintf(out, "Job %s: %d segments in, %d cues out (%s)\n",
		report.JobID, report.SegmentsIn, report.Cues, time.Duration(report.ElapsedMS)*time.Millisecond)
	if report.CoarseSpeechWindows > 0 || report.PreciseSpeechWindows > 0 {
		fmt.Fprintf(out, "  speech windows: %d coarse, %d precise; refined turns: %d\n",
			report.CoarseSpeechWindows, report.PreciseSpeechWindows, report.RefinedTurns)
	}
	if report.LyricRuns > 0 || report.HallucinationRuns > 0 {
		fmt.Fprintf(out, "  runs: %d lyric, %d hallucination (substituted %d, dropped %d segments)\n",
			report.LyricRuns, report.HallucinationRuns, report.SubstitutedSegments, report.DroppedSegments)
	}
	for _, warning := range report.Warnings {
		fmt.Fprintf(out, "  warning: %s\n", warning)
	}
	fmt.Fprintf(out, "  wrote %s\n", jsonOut)
	fmt.Fprintf(out, "  wrote %s\n", srtOut)
}
