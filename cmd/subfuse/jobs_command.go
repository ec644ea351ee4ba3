package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"subfuse/internal/jobstore"
)

func newJobsCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "jobs",
		Short: "List recent fusion runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !cfg.Store.Enabled {
				fmt.Fprintln(cmd.OutOrStdout(), "Job ledger is disabled; enable [store] in the configuration.")
				return nil
			}

			store, err := jobstore.Open(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			records, err := store.ListRecent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No fusion runs recorded.")
				return nil
			}

			headers := []string{"JOB", "CREATED", "SOURCE", "SEGS", "CUES", "LYRIC", "HALLUC", "DROPPED", "ELAPSED"}
			rows := make([][]string, 0, len(records))
			for _, rec := range records {
				rows = append(rows, []string{
					shortID(rec.JobID),
					rec.CreatedAt.Local().Format("2006-01-02 15:04"),
					rec.Source,
					strconv.Itoa(rec.SegmentsIn),
					strconv.Itoa(rec.CuesOut),
					strconv.Itoa(rec.LyricRuns),
					strconv.Itoa(rec.HallucinationRuns),
					strconv.Itoa(rec.DroppedSegments),
					(time.Duration(rec.ElapsedMS) * time.Millisecond).String(),
				})
			}
			aligns := []columnAlignment{
				alignLeft, alignLeft, alignLeft,
				alignRight, alignRight, alignRight, alignRight, alignRight, alignRight,
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderRows(cmd.OutOrStdout(), headers, rows, aligns))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs to list")
	return cmd
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
