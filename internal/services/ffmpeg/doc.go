// Package ffmpeg wraps the ffmpeg command-line tool for the two jobs the
// pipeline needs: decoding arbitrary inputs into raw s16le PCM and encoding
// the combined raw stream into the requested output formats.
//
// Every invocation is a separate short-lived process; the client never
// streams. Failures are tagged with the services error markers and carry the
// process exit code or signal plus trimmed stderr output.
package ffmpeg
