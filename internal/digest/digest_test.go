package digest_test

import (
	"os"
	"path/filepath"
	"testing"

	"medley/internal/digest"
	"medley/internal/scan"
)

func writeFile(t *testing.T, dir, name string, contents []byte) scan.Track {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, contents, 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return scan.Track{Path: path, Size: int64(len(contents))}
}

func TestComputeIsStable(t *testing.T) {
	dir := t.TempDir()
	tracks := []scan.Track{
		writeFile(t, dir, "a.wav", []byte("alpha")),
		writeFile(t, dir, "b.wav", []byte("bravo")),
	}

	engine, err := digest.NewEngine(digest.AlgorithmMD5, 4096)
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}

	first, err := engine.Compute(tracks)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	second, err := engine.Compute(tracks)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	if first != second {
		t.Fatalf("expected stable digest, got %q then %q", first, second)
	}
	if len(first) != 32 {
		t.Fatalf("expected 32 hex chars for md5, got %q", first)
	}
}

func TestComputeChangesOnContentChange(t *testing.T) {
	dir := t.TempDir()
	tracks := []scan.Track{
		writeFile(t, dir, "a.wav", []byte("alpha")),
		writeFile(t, dir, "b.wav", []byte("bravo")),
	}

	engine, err := digest.NewEngine(digest.AlgorithmMD5, 4096)
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	before, err := engine.Compute(tracks)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}

	if err := os.WriteFile(tracks[1].Path, []byte("brAvo"), 0o644); err != nil {
		t.Fatalf("mutate file: %v", err)
	}
	after, err := engine.Compute(tracks)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	if before == after {
		t.Fatal("expected digest to change when a byte changes")
	}
}

func TestComputeChangesOnReorder(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.wav", []byte("alpha"))
	b := writeFile(t, dir, "b.wav", []byte("bravo"))

	engine, err := digest.NewEngine(digest.AlgorithmMD5, 4096)
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	forward, err := engine.Compute([]scan.Track{a, b})
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	reversed, err := engine.Compute([]scan.Track{b, a})
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	if forward == reversed {
		t.Fatal("expected digest to change when order changes")
	}
}

func TestComputeChunkSizeDoesNotAffectDigest(t *testing.T) {
	dir := t.TempDir()
	track := writeFile(t, dir, "a.wav", make([]byte, 10_000))

	small, err := digest.NewEngine(digest.AlgorithmMD5, 7)
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	large, err := digest.NewEngine(digest.AlgorithmMD5, 1<<16)
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}

	fromSmall, err := small.Compute([]scan.Track{track})
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	fromLarge, err := large.Compute([]scan.Track{track})
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	if fromSmall != fromLarge {
		t.Fatalf("chunk size changed digest: %q vs %q", fromSmall, fromLarge)
	}
}

func TestComputeXXH3(t *testing.T) {
	dir := t.TempDir()
	tracks := []scan.Track{writeFile(t, dir, "a.wav", []byte("alpha"))}

	engine, err := digest.NewEngine(digest.AlgorithmXXH3, 4096)
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	value, err := engine.Compute(tracks)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	if len(value) != 32 {
		t.Fatalf("expected 128-bit hex digest, got %q", value)
	}
}

func TestComputeMissingFilePropagates(t *testing.T) {
	engine, err := digest.NewEngine(digest.AlgorithmMD5, 4096)
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	_, err = engine.Compute([]scan.Track{{Path: filepath.Join(t.TempDir(), "gone.wav")}})
	if err == nil {
		t.Fatal("expected error for unreadable file")
	}
}

func TestNewEngineRejectsBadInputs(t *testing.T) {
	if _, err := digest.NewEngine("sha1", 4096); err == nil {
		t.Fatal("expected error for unsupported algorithm")
	}
	if _, err := digest.NewEngine(digest.AlgorithmMD5, 0); err == nil {
		t.Fatal("expected error for non-positive chunk size")
	}
}
