// Package playlist renders the text manifest consumed by ffmpeg's concat
// demuxer, one "file '<path>'" line per source track.
package playlist
