package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"medley/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent pipeline runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			store, err := history.Open(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			runs, err := store.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded yet.")
				return nil
			}

			fmt.Fprintln(out, renderRunTable(runs))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs to show")

	return cmd
}

func renderRunTable(runs []*history.Run) string {
	tw := newTableWriter(3, 4, 5)
	tw.AppendHeader(table.Row{"Started", "Action", "Tracks", "Size", "Duration", "Digest / Error"})
	for _, run := range runs {
		detail := shortDigest(run.Digest)
		if run.ErrorMessage != "" {
			detail = run.ErrorMessage
		}
		tw.AppendRow(table.Row{
			run.StartedAt.Local().Format("2006-01-02 15:04:05"),
			string(run.Action),
			run.TrackCount,
			humanize.IBytes(uint64(run.TotalBytes)),
			run.Duration().Round(timePrecision).String(),
			detail,
		})
	}
	return tw.Render()
}

func shortDigest(value string) string {
	if len(value) <= 12 {
		return value
	}
	return value[:12]
}
