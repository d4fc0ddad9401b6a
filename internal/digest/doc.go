// Package digest implements change detection for the track set. The Engine
// streams every file's bytes through a chunked hash in playlist order; the
// Store persists the resulting hex digest between runs.
package digest
