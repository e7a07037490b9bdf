// transport.go - thin owner binding a source, the engine and playback policy

package glaive

import (
	"fmt"
	"sync/atomic"
)

// AudioEngine is the realtime-facing owner of a SourceBuffer and a
// GranularEngine: it applies master volume, loop/start-bound transport
// policy, and exposes the atomic playing flag the control thread toggles.
//
// Per spec.md §5, playing, loop, the start/end bounds and master volume
// are the fields the control thread may write directly (via atomic
// store); everything else about scheduling state belongs to the embedded
// GranularEngine.
type AudioEngine struct {
	source *SourceBuffer
	engine *GranularEngine

	playing atomic.Bool
	loop    atomic.Bool

	// start/end are fractions of the source's duration. Once the
	// stretched source has fully played out, Process resets the clock to
	// the start bound. The end bound is stored but Process does not read
	// it; end of content is always frames*stretch.
	startBound atomic.Uint32 // float32 bits
	endBound   atomic.Uint32 // float32 bits

	masterVolume atomic.Uint32 // float32 bits
}

// NewAudioEngine constructs a transport over source with start=0, end=1,
// loop=false, volume=1.0, and a freshly constructed GranularEngine.
func NewAudioEngine(source *SourceBuffer, seed int64) (*AudioEngine, error) {
	if source == nil {
		return nil, fmt.Errorf("glaive: NewAudioEngine requires a non-nil source")
	}
	a := &AudioEngine{
		source: source,
		engine: NewGranularEngine(source, seed),
	}
	a.endBound.Store(float32bits(1))
	a.masterVolume.Store(float32bits(1))
	return a, nil
}

// Engine exposes the underlying GranularEngine, primarily for tests and
// for a control goroutine that wants to call UpdateParameters directly.
func (a *AudioEngine) Engine() *GranularEngine { return a.engine }

// SetPlaying starts or stops granular playback. Safe to call from the
// control thread; the audio thread reads this flag and clears it itself
// at end of content when looping is off.
func (a *AudioEngine) SetPlaying(playing bool) { a.playing.Store(playing) }

// Playing reports the current transport state.
func (a *AudioEngine) Playing() bool { return a.playing.Load() }

// SetLoop enables or disables looping at end-of-content.
func (a *AudioEngine) SetLoop(loop bool) { a.loop.Store(loop) }

// SetBounds sets the playback window as fractions of the source's
// duration. Returns an error if the invariant 0 <= start < end <= 1 does
// not hold; on error, bounds are left unchanged.
func (a *AudioEngine) SetBounds(start, end float32) error {
	if !(start >= 0 && start < end && end <= 1) {
		return fmt.Errorf("glaive: bounds must satisfy 0<=start<end<=1, got start=%v end=%v", start, end)
	}
	a.startBound.Store(float32bits(start))
	a.endBound.Store(float32bits(end))
	return nil
}

// SetVolume sets the master volume multiplier applied after the engine's
// stereo output.
func (a *AudioEngine) SetVolume(v float32) { a.masterVolume.Store(float32bits(v)) }

// Volume returns the current master volume multiplier.
func (a *AudioEngine) Volume() float32 { return float32frombits(a.masterVolume.Load()) }

// Process advances the transport by one output frame: it runs the engine
// (if playing), applies end-of-content policy, then scales by master
// volume. This is the function the audio backend calls once per output
// frame.
func (a *AudioEngine) Process(l, r *float32) {
	if a.playing.Load() {
		a.engine.Playback(l, r)
	}

	p := a.engine.Params()
	limit := int64(float32(a.source.Frames) * p.Stretch)
	if limit > 0 && a.engine.Index() >= limit {
		start := float32frombits(a.startBound.Load())
		a.engine.ResetClock(int64(start * float32(a.source.Frames) * p.Stretch))
		if !a.loop.Load() {
			a.playing.Store(false)
		}
	}

	vol := float32frombits(a.masterVolume.Load())
	*l *= vol
	*r *= vol
}
