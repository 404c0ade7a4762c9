// Package services defines shared utilities for the external tool clients.
//
// Key responsibilities:
//   - Structured error markers plus the Wrap helper that classify failures
//     (missing dependency, missing input, decode, encode) so the CLI can
//     report them consistently.
//   - Exit detail extraction so wrapped errors carry the exit code or signal
//     of the external process that failed.
//
// The ffmpeg and afconvert clients live in subpackages and use these helpers
// so failure handling stays uniform across the pipeline.
package services
