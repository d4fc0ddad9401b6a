package pipeline_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"medley/internal/digest"
	"medley/internal/history"
	"medley/internal/pipeline"
	"medley/internal/testsupport"
)

type fakeConcat struct {
	calls []string
	err   error
}

func (f *fakeConcat) Concat(ctx context.Context, playlistPath, outputPath string) error {
	f.calls = append(f.calls, outputPath)
	return f.err
}

func seedTracks(t *testing.T, musicDir string) {
	t.Helper()
	base := time.Now().Add(-time.Hour).Truncate(time.Second)
	testsupport.WriteTrack(t, musicDir, "one.wav", []byte("first"), base)
	testsupport.WriteTrack(t, musicDir, "two.wav", []byte("second"), base.Add(time.Minute))
}

func TestFirstRunBuilds(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	seedTracks(t, cfg.Paths.MusicDir)
	store := testsupport.MustOpenHistory(t, cfg)
	concat := &fakeConcat{}

	runner, err := pipeline.New(cfg, nil, concat, store)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	result, err := runner.Run(context.Background(), pipeline.RunOptions{})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if result.Action != history.ActionBuilt {
		t.Fatalf("expected built action on first run, got %q", result.Action)
	}
	if result.TrackCount != 2 {
		t.Fatalf("expected 2 tracks, got %d", result.TrackCount)
	}
	if len(concat.calls) != 1 {
		t.Fatalf("expected 1 ffmpeg invocation, got %d", len(concat.calls))
	}
	if result.PreviousDigest != "" {
		t.Fatalf("expected empty previous digest on first run, got %q", result.PreviousDigest)
	}

	stored, err := digest.NewStore(cfg.Paths.DigestFile).Load()
	if err != nil {
		t.Fatalf("load stored digest: %v", err)
	}
	if stored != result.Digest {
		t.Fatalf("expected stored digest %q, got %q", result.Digest, stored)
	}

	if _, err := os.Stat(cfg.Paths.PlaylistFile); err != nil {
		t.Fatalf("expected playlist to be written: %v", err)
	}

	latest, err := store.Latest(context.Background())
	if err != nil {
		t.Fatalf("Latest failed: %v", err)
	}
	if latest == nil || latest.Action != history.ActionBuilt || latest.RunID != result.RunID {
		t.Fatalf("unexpected history entry: %#v", latest)
	}
}

func TestUnchangedRunSkips(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	seedTracks(t, cfg.Paths.MusicDir)
	concat := &fakeConcat{}

	runner, err := pipeline.New(cfg, nil, concat, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	ctx := context.Background()
	if _, err := runner.Run(ctx, pipeline.RunOptions{}); err != nil {
		t.Fatalf("first Run failed: %v", err)
	}
	result, err := runner.Run(ctx, pipeline.RunOptions{})
	if err != nil {
		t.Fatalf("second Run failed: %v", err)
	}

	if result.Action != history.ActionSkipped {
		t.Fatalf("expected skipped action, got %q", result.Action)
	}
	if len(concat.calls) != 1 {
		t.Fatalf("expected exactly 1 ffmpeg invocation across both runs, got %d", len(concat.calls))
	}
}

func TestChangedTrackRebuilds(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	seedTracks(t, cfg.Paths.MusicDir)
	concat := &fakeConcat{}

	runner, err := pipeline.New(cfg, nil, concat, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	ctx := context.Background()
	if _, err := runner.Run(ctx, pipeline.RunOptions{}); err != nil {
		t.Fatalf("first Run failed: %v", err)
	}

	testsupport.WriteTrack(t, cfg.Paths.MusicDir, "one.wav", []byte("FIRST"), time.Now())

	result, err := runner.Run(ctx, pipeline.RunOptions{})
	if err != nil {
		t.Fatalf("second Run failed: %v", err)
	}
	if result.Action != history.ActionBuilt {
		t.Fatalf("expected rebuild after content change, got %q", result.Action)
	}
	if len(concat.calls) != 2 {
		t.Fatalf("expected 2 ffmpeg invocations, got %d", len(concat.calls))
	}
}

func TestForceRebuildsUnchangedSet(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	seedTracks(t, cfg.Paths.MusicDir)
	concat := &fakeConcat{}

	runner, err := pipeline.New(cfg, nil, concat, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	ctx := context.Background()
	if _, err := runner.Run(ctx, pipeline.RunOptions{}); err != nil {
		t.Fatalf("first Run failed: %v", err)
	}
	result, err := runner.Run(ctx, pipeline.RunOptions{Force: true})
	if err != nil {
		t.Fatalf("forced Run failed: %v", err)
	}
	if result.Action != history.ActionBuilt {
		t.Fatalf("expected forced rebuild, got %q", result.Action)
	}
	if len(concat.calls) != 2 {
		t.Fatalf("expected 2 ffmpeg invocations, got %d", len(concat.calls))
	}
}

func TestEmptyMusicDirFails(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenHistory(t, cfg)
	concat := &fakeConcat{}

	runner, err := pipeline.New(cfg, nil, concat, store)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	_, err = runner.Run(context.Background(), pipeline.RunOptions{})
	if !errors.Is(err, pipeline.ErrNoTracks) {
		t.Fatalf("expected ErrNoTracks, got %v", err)
	}
	if len(concat.calls) != 0 {
		t.Fatal("expected no ffmpeg invocation for empty scan")
	}

	latest, err := store.Latest(context.Background())
	if err != nil {
		t.Fatalf("Latest failed: %v", err)
	}
	if latest == nil || latest.Action != history.ActionFailed {
		t.Fatalf("expected failed run recorded, got %#v", latest)
	}
}

func TestConcatFailureDoesNotPersistDigest(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	seedTracks(t, cfg.Paths.MusicDir)
	concat := &fakeConcat{err: errors.New("concat exploded")}

	runner, err := pipeline.New(cfg, nil, concat, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if _, err := runner.Run(context.Background(), pipeline.RunOptions{}); err == nil {
		t.Fatal("expected concat error to propagate")
	}

	stored, err := digest.NewStore(cfg.Paths.DigestFile).Load()
	if err != nil {
		t.Fatalf("load digest: %v", err)
	}
	if stored != "" {
		t.Fatalf("expected no digest persisted after failure, got %q", stored)
	}

	// Next run must attempt the build again.
	concat.err = nil
	result, err := runner.Run(context.Background(), pipeline.RunOptions{})
	if err != nil {
		t.Fatalf("retry Run failed: %v", err)
	}
	if result.Action != history.ActionBuilt {
		t.Fatalf("expected rebuild after failed run, got %q", result.Action)
	}
}

func TestRunRequiresConcatClient(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	if _, err := pipeline.New(cfg, nil, nil, nil); err == nil {
		t.Fatal("expected error when concat client missing")
	}
}
