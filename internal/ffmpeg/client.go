package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

var commandContext = exec.CommandContext

// Client defines the external concatenation behaviour.
type Client interface {
	Concat(ctx context.Context, playlistPath, outputPath string) error
}

// Option configures the CLI client.
type Option func(*CLI)

// WithBinary overrides the default ffmpeg binary name.
func WithBinary(binary string) Option {
	return func(c *CLI) {
		if strings.TrimSpace(binary) != "" {
			c.binary = binary
		}
	}
}

// WithExtraArgs appends additional output arguments before the output path.
func WithExtraArgs(args []string) Option {
	return func(c *CLI) {
		c.extraArgs = append([]string(nil), args...)
	}
}

// CLI wraps the ffmpeg command-line tool in concat demuxer mode.
type CLI struct {
	binary    string
	extraArgs []string
}

// NewCLI constructs a CLI client using defaults.
func NewCLI(opts ...Option) *CLI {
	cli := &CLI{binary: "ffmpeg"}
	for _, opt := range opts {
		opt(cli)
	}
	return cli
}

// Concat losslessly merges the manifest entries into outputPath, overwriting
// any existing output. ffmpeg stderr is surfaced in the returned error.
func (c *CLI) Concat(ctx context.Context, playlistPath, outputPath string) error {
	if strings.TrimSpace(playlistPath) == "" {
		return errors.New("playlist path required")
	}
	if strings.TrimSpace(outputPath) == "" {
		return errors.New("output path required")
	}

	args := []string{
		"-hide_banner",
		"-loglevel", "error",
		"-f", "concat",
		"-safe", "0",
		"-i", playlistPath,
		"-c", "copy",
	}
	args = append(args, c.extraArgs...)
	args = append(args, "-y", outputPath)

	cmd := commandContext(ctx, c.binary, args...) //nolint:gosec
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("ffmpeg concat: %w", ctx.Err())
		}
		detail := strings.TrimSpace(stderr.String())
		if detail != "" {
			return fmt.Errorf("ffmpeg concat: %w: %s", err, detail)
		}
		return fmt.Errorf("ffmpeg concat: %w", err)
	}
	return nil
}

var _ Client = (*CLI)(nil)
