// Package pipeline orchestrates a single build pass: scan the music
// directory, regenerate the concat manifest, hash the track set, and invoke
// ffmpeg only when the digest differs from the previous run's.
//
// The pass is fully sequential. The only tolerated failure mode is an
// absent digest file, which reads as an empty digest and forces a build;
// every other error aborts the pass.
package pipeline
