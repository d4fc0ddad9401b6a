package testsupport

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// WriteTrack creates a file under dir with the given contents and
// modification time, creating parent directories as needed.
func WriteTrack(t testing.TB, dir, name string, contents []byte, mtime time.Time) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", name, err)
	}
	if err := os.WriteFile(path, contents, 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		t.Fatalf("chtimes %s: %v", name, err)
	}
	return path
}
