// Package pcm provides the raw audio primitives the assembler builds on.
//
// Streams are always signed 16-bit little-endian PCM; the sample rate and
// channel count come from configuration and stay fixed for a whole run.
// Durations are derived from byte counts, never from container metadata, so
// the accumulator is the single source of truth for how long the combined
// stream is.
package pcm
