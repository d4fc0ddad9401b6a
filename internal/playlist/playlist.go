package playlist

import (
	"bytes"
	"errors"
	"strings"

	"medley/internal/fileutil"
	"medley/internal/scan"
)

// Write overwrites path with an ffmpeg concat demuxer manifest listing the
// provided tracks in order. The write is atomic so a concurrent ffmpeg run
// never reads a partial manifest.
func Write(tracks []scan.Track, path string) error {
	if path == "" {
		return errors.New("playlist: path required")
	}

	var buf bytes.Buffer
	for _, track := range tracks {
		buf.WriteString("file '")
		buf.WriteString(escapePath(track.Path))
		buf.WriteString("'\n")
	}

	return fileutil.WriteFileAtomic(path, buf.Bytes(), 0o644)
}

// escapePath quotes embedded single quotes the way the concat demuxer
// expects: close the quote, emit an escaped quote, reopen.
func escapePath(path string) string {
	return strings.ReplaceAll(path, "'", `'\''`)
}
