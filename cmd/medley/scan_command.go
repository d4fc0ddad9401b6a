package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"medley/internal/scan"
)

const timePrecision = time.Millisecond

func newScanCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "scan",
		Short: "List the tracks that would be concatenated, in build order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			tracks, err := scan.Scan(cfg.Paths.MusicDir, cfg.Scan.Extension)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(tracks) == 0 {
				fmt.Fprintf(out, "No %s tracks found under %s\n", cfg.Scan.Extension, cfg.Paths.MusicDir)
				return nil
			}

			if useTable(out) {
				fmt.Fprintln(out, renderTrackTable(tracks, cfg.Paths.MusicDir))
			} else {
				for _, track := range tracks {
					fmt.Fprintf(out, "%s\t%d\t%s\n",
						track.Path,
						track.Size,
						track.ModTime.UTC().Format(time.RFC3339))
				}
			}
			fmt.Fprintf(out, "%d tracks, %s total\n",
				len(tracks),
				humanize.IBytes(uint64(scan.TotalBytes(tracks))))
			return nil
		},
	}
}

func renderTrackTable(tracks []scan.Track, musicDir string) string {
	tw := newTableWriter(1, 3)
	tw.AppendHeader(table.Row{"#", "Track", "Size", "Modified"})
	for i, track := range tracks {
		tw.AppendRow(table.Row{
			i + 1,
			displayPath(track.Path, musicDir),
			humanize.IBytes(uint64(track.Size)),
			track.ModTime.Local().Format("2006-01-02 15:04:05"),
		})
	}
	return tw.Render()
}

func displayPath(path, musicDir string) string {
	rel, err := filepath.Rel(musicDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}

// useTable reports whether the command's configured output is an interactive
// terminal. Redirected or buffered writers get plain tab-separated lines.
func useTable(w io.Writer) bool {
	file, ok := w.(*os.File)
	return ok && isTerminal(file)
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
