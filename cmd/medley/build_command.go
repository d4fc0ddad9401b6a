package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"medley/internal/ffmpeg"
	"medley/internal/history"
	"medley/internal/pipeline"
)

func newBuildCommand(ctx *commandContext) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Scan the music directory and rebuild the combined output if it changed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			store, err := history.Open(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			client := ffmpeg.NewCLI(
				ffmpeg.WithBinary(cfg.FFmpegBinary()),
				ffmpeg.WithExtraArgs(cfg.Concat.ExtraArgs),
			)
			runner, err := pipeline.New(cfg, logger, client, store)
			if err != nil {
				return err
			}

			result, err := runner.Run(cmd.Context(), pipeline.RunOptions{Force: force})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch result.Action {
			case history.ActionSkipped:
				fmt.Fprintf(out, "No changes detected across %d tracks; output is up to date.\n", result.TrackCount)
			default:
				fmt.Fprintf(out, "Built %s from %d tracks (%s) in %s\n",
					result.Output,
					result.TrackCount,
					humanize.IBytes(uint64(result.TotalBytes)),
					result.Elapsed.Round(timePrecision))
			}
			fmt.Fprintf(out, "Digest: %s\n", result.Digest)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Rebuild even when the digest matches the previous run")

	return cmd
}
