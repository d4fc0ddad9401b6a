package scan

import (
	"errors"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Track describes one source file discovered under the music directory.
type Track struct {
	Path    string
	Size    int64
	ModTime time.Time
}

// Scan walks root recursively and returns all regular files whose extension
// matches ext (case-insensitive), ordered by modification time ascending.
// Tracks with identical timestamps are ordered by path using numeric-aware
// collation so "track2.wav" sorts before "track10.wav". Traversal errors
// propagate unchanged.
func Scan(root string, ext string) ([]Track, error) {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" {
		return nil, errors.New("scan: extension required")
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}

	var tracks []Track
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() {
			return nil
		}
		if !entry.Type().IsRegular() {
			return nil
		}
		if strings.ToLower(filepath.Ext(entry.Name())) != ext {
			return nil
		}
		info, err := entry.Info()
		if err != nil {
			return err
		}
		tracks = append(tracks, Track{
			Path:    path,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sortTracks(tracks)
	return tracks, nil
}

func sortTracks(tracks []Track) {
	collator := collate.New(language.Und, collate.Numeric)
	sort.SliceStable(tracks, func(i, j int) bool {
		if !tracks[i].ModTime.Equal(tracks[j].ModTime) {
			return tracks[i].ModTime.Before(tracks[j].ModTime)
		}
		return collator.CompareString(tracks[i].Path, tracks[j].Path) < 0
	})
}

// TotalBytes sums the sizes of the provided tracks.
func TotalBytes(tracks []Track) int64 {
	var total int64
	for _, track := range tracks {
		total += track.Size
	}
	return total
}

// Paths returns just the file paths, preserving order.
func Paths(tracks []Track) []string {
	paths := make([]string, len(tracks))
	for i, track := range tracks {
		paths[i] = track.Path
	}
	return paths
}
