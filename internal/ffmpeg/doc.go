// Package ffmpeg invokes the external ffmpeg binary in concat demuxer mode
// to losslessly merge the playlist entries into a single output file.
package ffmpeg
