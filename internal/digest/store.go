package digest

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"medley/internal/fileutil"
)

// Store persists the digest of the last successful build as a plain text
// file so repeated runs with unchanged inputs can skip the concatenation.
type Store struct {
	path string
}

// NewStore returns a store backed by the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load returns the previously stored digest. An absent file means no prior
// run and yields an empty string, not an error.
func (s *Store) Load() (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("digest: read %s: %w", s.path, err)
	}
	return strings.TrimSpace(string(data)), nil
}

// Save atomically replaces the stored digest.
func (s *Store) Save(value string) error {
	if strings.TrimSpace(value) == "" {
		return errors.New("digest: refusing to store empty digest")
	}
	return fileutil.WriteFileAtomic(s.path, []byte(value+"\n"), 0o644)
}
