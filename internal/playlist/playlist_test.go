package playlist_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"medley/internal/playlist"
	"medley/internal/scan"
)

func TestWriteManifestLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "playlist.txt")
	tracks := []scan.Track{
		{Path: "/music/first.wav"},
		{Path: "/music/second.wav"},
	}

	if err := playlist.Write(tracks, path); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read manifest: %v", err)
	}
	want := "file '/music/first.wav'\nfile '/music/second.wav'\n"
	if string(data) != want {
		t.Fatalf("unexpected manifest:\n%q\nwant:\n%q", string(data), want)
	}
}

func TestWriteEscapesSingleQuotes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "playlist.txt")
	tracks := []scan.Track{{Path: "/music/don't panic.wav"}}

	if err := playlist.Write(tracks, path); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read manifest: %v", err)
	}
	if !strings.Contains(string(data), `file '/music/don'\''t panic.wav'`) {
		t.Fatalf("expected escaped quote in manifest, got %q", string(data))
	}
}

func TestWriteOverwritesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "playlist.txt")
	if err := os.WriteFile(path, []byte("stale contents\n"), 0o644); err != nil {
		t.Fatalf("seed manifest: %v", err)
	}

	if err := playlist.Write([]scan.Track{{Path: "/music/only.wav"}}, path); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read manifest: %v", err)
	}
	if strings.Contains(string(data), "stale") {
		t.Fatal("expected manifest to be overwritten")
	}
}

func TestWriteEmptyListProducesEmptyManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "playlist.txt")
	if err := playlist.Write(nil, path); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read manifest: %v", err)
	}
	if len(data) != 0 {
		t.Fatalf("expected empty manifest, got %q", string(data))
	}
}
