package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"medley/internal/config"
	"medley/internal/digest"
	"medley/internal/ffmpeg"
	"medley/internal/history"
	"medley/internal/logging"
	"medley/internal/playlist"
	"medley/internal/scan"
)

// ErrNoTracks indicates the scan found nothing to concatenate.
var ErrNoTracks = errors.New("no tracks found under music directory")

// ErrLocked indicates another build holds the pipeline lock.
var ErrLocked = errors.New("another medley run is already in progress")

// RunOptions tweaks a single pipeline execution.
type RunOptions struct {
	// Force rebuilds the output even when the digest matches the stored one.
	Force bool
}

// Result summarizes a completed pipeline run.
type Result struct {
	RunID          string
	Action         history.Action
	Digest         string
	PreviousDigest string
	TrackCount     int
	TotalBytes     int64
	Output         string
	Elapsed        time.Duration
}

// Runner executes the scan → manifest → digest → concat pipeline
// sequentially. A file lock in the state directory keeps concurrent
// invocations from racing the output file.
type Runner struct {
	cfg     *config.Config
	logger  *slog.Logger
	concat  ffmpeg.Client
	history *history.Store
	engine  *digest.Engine
	digests *digest.Store
	lock    *flock.Flock
}

// New constructs a runner with initialized dependencies. The history store
// may be nil; runs are then not recorded.
func New(cfg *config.Config, logger *slog.Logger, concat ffmpeg.Client, hist *history.Store) (*Runner, error) {
	if cfg == nil {
		return nil, errors.New("pipeline requires config")
	}
	if concat == nil {
		return nil, errors.New("pipeline requires a concat client")
	}

	engine, err := digest.NewEngine(cfg.Digest.Algorithm, cfg.Digest.ChunkSize)
	if err != nil {
		return nil, err
	}

	return &Runner{
		cfg:     cfg,
		logger:  logging.WithComponent(logger, "pipeline"),
		concat:  concat,
		history: hist,
		engine:  engine,
		digests: digest.NewStore(cfg.Paths.DigestFile),
		lock:    flock.New(filepath.Join(cfg.Paths.StateDir, "medley.lock")),
	}, nil
}

// Run executes one pipeline pass and returns its result. All errors beyond
// the absent-digest first run are fatal to the pass and propagate.
func (r *Runner) Run(ctx context.Context, opts RunOptions) (*Result, error) {
	if err := r.cfg.EnsureDirectories(); err != nil {
		return nil, err
	}

	locked, err := r.lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire pipeline lock: %w", err)
	}
	if !locked {
		return nil, ErrLocked
	}
	defer func() {
		_ = r.lock.Unlock()
	}()

	started := time.Now().UTC()
	result := &Result{
		RunID:  uuid.NewString(),
		Output: r.cfg.Paths.OutputFile,
	}

	run := func() error {
		tracks, err := scan.Scan(r.cfg.Paths.MusicDir, r.cfg.Scan.Extension)
		if err != nil {
			return fmt.Errorf("scan music directory: %w", err)
		}
		if len(tracks) == 0 {
			return fmt.Errorf("%w: %s", ErrNoTracks, r.cfg.Paths.MusicDir)
		}
		result.TrackCount = len(tracks)
		result.TotalBytes = scan.TotalBytes(tracks)
		r.logger.Info("scan complete",
			"tracks", result.TrackCount,
			"bytes", result.TotalBytes,
			"dir", r.cfg.Paths.MusicDir)

		if err := playlist.Write(tracks, r.cfg.Paths.PlaylistFile); err != nil {
			return fmt.Errorf("write playlist: %w", err)
		}

		current, err := r.engine.Compute(tracks)
		if err != nil {
			return err
		}
		previous, err := r.digests.Load()
		if err != nil {
			return err
		}
		result.Digest = current
		result.PreviousDigest = previous

		if !opts.Force && current == previous {
			result.Action = history.ActionSkipped
			r.logger.Info("digest unchanged, skipping concatenation", "digest", current)
			return nil
		}

		concatCtx := ctx
		if r.cfg.Concat.TimeoutSeconds > 0 {
			var cancel context.CancelFunc
			concatCtx, cancel = context.WithTimeout(ctx, time.Duration(r.cfg.Concat.TimeoutSeconds)*time.Second)
			defer cancel()
		}

		r.logger.Info("concatenating tracks",
			"playlist", r.cfg.Paths.PlaylistFile,
			"output", r.cfg.Paths.OutputFile)
		if err := r.concat.Concat(concatCtx, r.cfg.Paths.PlaylistFile, r.cfg.Paths.OutputFile); err != nil {
			return err
		}

		if err := r.digests.Save(current); err != nil {
			return err
		}
		result.Action = history.ActionBuilt
		return nil
	}

	runErr := run()
	result.Elapsed = time.Since(started)

	if runErr != nil {
		result.Action = history.ActionFailed
		r.record(ctx, result, started, runErr)
		return nil, runErr
	}

	r.record(ctx, result, started, nil)
	r.logger.Info("run complete",
		"run_id", result.RunID,
		"action", string(result.Action),
		"elapsed", result.Elapsed)
	return result, nil
}

// record writes the run to history. History is diagnostics only, so a store
// failure is logged and does not fail the pass.
func (r *Runner) record(ctx context.Context, result *Result, started time.Time, runErr error) {
	if r.history == nil {
		return
	}

	run := &history.Run{
		RunID:          result.RunID,
		Action:         result.Action,
		Digest:         result.Digest,
		PreviousDigest: result.PreviousDigest,
		TrackCount:     result.TrackCount,
		TotalBytes:     result.TotalBytes,
		OutputPath:     result.Output,
		StartedAt:      started,
		FinishedAt:     started.Add(result.Elapsed),
	}
	if runErr != nil {
		run.ErrorMessage = runErr.Error()
	}
	if err := r.history.RecordRun(ctx, run); err != nil {
		r.logger.Warn("failed to record run history", "error", err)
	}
}
