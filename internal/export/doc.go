// Package export turns the combined PCM stream into the requested audio
// artifacts.
//
// Plan expands a format list into an ordered job list; Orchestrator runs the
// jobs strictly sequentially through an ffmpeg client, derives the optional
// IMA4 caf artifact after an aiff export when the host supports it, and
// encodes standalone per-clip raw parts. The first failing encode aborts the
// run; artifacts already produced are left on disk.
package export
