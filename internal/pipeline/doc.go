// Package pipeline drives a complete sprite assembly run. It decodes each
// input through the codec client, appends the clips to the combined PCM
// stream with the configured spacing, exports the stream to every requested
// format, and writes the sprite map document. All work is strictly
// sequential; external processes never overlap.
package pipeline
