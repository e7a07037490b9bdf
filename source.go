// source.go - immutable view over decoded audio samples

package glaive

import "fmt"

// SourceBuffer is an immutable, channel-interleaved view of decoded audio
// samples. It is created once by a loader and handed to a GranularEngine;
// the engine never mutates it and never owns it.
//
// Invariant: len(Samples) == Channels*Frames.
type SourceBuffer struct {
	Samples    []float32
	Channels   int
	SampleRate int
	Frames     int
}

// NewSourceBuffer builds a SourceBuffer from interleaved samples, validating
// the channel/frame invariant the rest of the engine relies on.
func NewSourceBuffer(samples []float32, channels, sampleRate int) (*SourceBuffer, error) {
	if channels != 1 && channels != 2 {
		return nil, fmt.Errorf("glaive: channels must be 1 or 2, got %d", channels)
	}
	if len(samples)%channels != 0 {
		return nil, fmt.Errorf("glaive: sample count %d not divisible by %d channels", len(samples), channels)
	}
	return &SourceBuffer{
		Samples:    samples,
		Channels:   channels,
		SampleRate: sampleRate,
		Frames:     len(samples) / channels,
	}, nil
}

// at returns the raw interleaved sample at index n, or 0 for any
// out-of-range index. This is the single defensive read point used by
// Grain's 4-point neighbourhood fetch.
func (s *SourceBuffer) at(n int) float32 {
	if s == nil || n < 0 || n >= len(s.Samples) {
		return 0
	}
	return s.Samples[n]
}
