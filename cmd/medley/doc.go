// Command medley keeps a single combined audio file in sync with a
// directory of source tracks. The build command scans the directory in
// modification-time order, regenerates the ffmpeg concat manifest, and only
// re-runs the concatenation when the track set's digest changed since the
// previous run.
package main
