// Package sprite implements the assembly bookkeeping for the combined stream.
//
// The assembler owns the monotonic offset cursor and the sprite map. Clips are
// appended strictly in input order: each one records its start/end range,
// then trailing silence pads the stream to the next whole second plus the
// configured gap. Durations come from decoded byte counts, so the map always
// describes the stream that was actually written.
package sprite
