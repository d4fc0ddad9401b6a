package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"medley/internal/digest"
	"medley/internal/history"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the stored digest, output file, and most recent run",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()

			stored, err := digest.NewStore(cfg.Paths.DigestFile).Load()
			if err != nil {
				return err
			}
			if stored == "" {
				fmt.Fprintln(out, "Digest: none (next build will run unconditionally)")
			} else {
				fmt.Fprintf(out, "Digest: %s (%s)\n", stored, cfg.Digest.Algorithm)
			}

			info, err := os.Stat(cfg.Paths.OutputFile)
			switch {
			case errors.Is(err, fs.ErrNotExist):
				fmt.Fprintf(out, "Output: %s (missing)\n", cfg.Paths.OutputFile)
			case err != nil:
				return err
			default:
				fmt.Fprintf(out, "Output: %s (%s, modified %s)\n",
					cfg.Paths.OutputFile,
					humanize.IBytes(uint64(info.Size())),
					humanize.Time(info.ModTime()))
			}

			store, err := history.Open(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			latest, err := store.Latest(cmd.Context())
			if err != nil {
				return err
			}
			if latest == nil {
				fmt.Fprintln(out, "Last run: none recorded")
				return nil
			}

			fmt.Fprintf(out, "Last run: %s %s (%d tracks, %s)\n",
				latest.Action,
				humanize.Time(latest.StartedAt),
				latest.TrackCount,
				latest.Duration().Round(timePrecision))
			if latest.ErrorMessage != "" {
				fmt.Fprintf(out, "Last error: %s\n", latest.ErrorMessage)
			}

			stats, err := store.Stats(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Runs: %d built, %d skipped, %d failed\n",
				stats[history.ActionBuilt],
				stats[history.ActionSkipped],
				stats[history.ActionFailed])
			return nil
		},
	}
}
