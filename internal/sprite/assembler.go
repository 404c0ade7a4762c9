package sprite

import (
	"fmt"
	"io"
	"math"

	"spritegen/internal/pcm"
)

// SilenceName is the reserved entry name for the optional lead-in track.
const SilenceName = "silence"

// Options control how clips are spaced and padded inside the stream.
type Options struct {
	// Gap is the silence in seconds appended after every clip.
	Gap float64
	// MinLength pads clips shorter than this many seconds.
	MinLength float64
	// Autoplay marks the named clip as looping.
	Autoplay string
	// Loops marks additional clips as looping.
	Loops []string
}

// Assembler appends clips to a PCM accumulator and records their time ranges.
// It is the only writer to the offset cursor and the sprite map, and it
// applies appends strictly in call order.
type Assembler struct {
	acc    *pcm.Accumulator
	opts   Options
	loops  map[string]struct{}
	offset float64
	sprite *Map
}

// NewAssembler wraps acc with assembly bookkeeping.
func NewAssembler(acc *pcm.Accumulator, opts Options) *Assembler {
	loops := make(map[string]struct{}, len(opts.Loops))
	for _, name := range opts.Loops {
		loops[name] = struct{}{}
	}
	return &Assembler{acc: acc, opts: opts, loops: loops, sprite: NewMap()}
}

// LeadIn records a looping silence track of d seconds at the start of the
// stream and appends the silence plus the configured gap.
func (a *Assembler) LeadIn(d float64) (Entry, error) {
	entry := Entry{Name: SilenceName, Start: a.offset, End: a.offset + d, Loop: true}
	a.sprite.Put(entry)
	if err := a.appendSilence(d + a.opts.Gap); err != nil {
		return Entry{}, err
	}
	return entry, nil
}

// AddClip appends the decoded PCM from r under the given name. The entry
// spans the clip plus any minimum-length padding; the cursor then advances by
// the clip's real duration plus trailing silence that pads the stream to the
// next whole second and adds the gap.
func (a *Assembler) AddClip(name string, r io.Reader) (Entry, error) {
	start := a.offset
	n, err := a.acc.Append(r)
	if err != nil {
		return Entry{}, fmt.Errorf("append clip %q: %w", name, err)
	}

	original := a.acc.Format().Duration(n)
	extra := math.Max(0, a.opts.MinLength-original)
	duration := original + extra

	entry := Entry{
		Name:  name,
		Start: start,
		End:   start + duration,
		Loop:  a.isLoop(name),
	}
	a.sprite.Put(entry)
	a.offset += original

	if err := a.appendSilence(extra + math.Ceil(duration) - duration + a.opts.Gap); err != nil {
		return Entry{}, fmt.Errorf("pad clip %q: %w", name, err)
	}
	return entry, nil
}

// Offset returns the current cursor position in seconds.
func (a *Assembler) Offset() float64 {
	return a.offset
}

// SpriteMap returns the map of entries recorded so far.
func (a *Assembler) SpriteMap() *Map {
	return a.sprite
}

func (a *Assembler) isLoop(name string) bool {
	if name == a.opts.Autoplay && name != "" {
		return true
	}
	_, ok := a.loops[name]
	return ok
}

func (a *Assembler) appendSilence(d float64) error {
	if err := a.acc.AppendBytes(pcm.Silence(a.acc.Format(), d)); err != nil {
		return err
	}
	a.offset += d
	return nil
}
