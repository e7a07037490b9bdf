// grain.go - single in-flight grain: cursor, envelope, Hermite-4 resampling

package glaive

import "math"

// Grain is one windowed fragment of the source buffer. It is a plain value
// type living inside GranularEngine's fixed grain pool; triggering and
// advancing it never allocates.
type Grain struct {
	playing bool

	source *SourceBuffer

	start  float32 // source-frame lower bound of the grain, in both directions
	length int32   // grain length in output frames
	cursor float32 // position inside the grain, in source frames (signed, fractional)
	step   float32 // per-tick increment on cursor; sign encodes direction
	pan    float32 // linear (equal-amplitude) pan, 0=left .. 1=right

	envelope float32 // last computed window value, for external display/metering
}

// Playing reports whether the grain still has output to contribute.
func (g *Grain) Playing() bool { return g.playing }

// Envelope returns the last Hann window value computed for this grain, or 0
// when idle.
func (g *Grain) Envelope() float32 {
	if !g.playing {
		return 0
	}
	return g.envelope
}

// trigger resets the grain to playing, starting at source frame grainStart,
// running grainLength output ticks, with the given pan and pitch ratio.
// reverse plays the grain backward through the source.
//
// Caller contract: grainStart >= 0, grainLength > 0, pan in [0,1], pitch > 0.
// The grain defends against out-of-range reads at output time regardless.
func (g *Grain) trigger(source *SourceBuffer, grainStart, grainLength, pan, pitch float32, reverse bool) {
	g.source = source
	g.length = int32(grainLength)
	g.pan = pan

	g.start = grainStart
	if reverse {
		g.step = -pitch
		g.cursor = grainLength - 1
	} else {
		g.step = pitch
		g.cursor = 0
	}
	g.playing = true
}

// outputStereo adds this grain's contribution to (l, r) and advances its
// cursor. It sets playing false, without touching (l, r), the instant the
// grain completes, runs past the source end, or its cursor goes negative.
func (g *Grain) outputStereo(l, r *float32) {
	if !g.playing {
		return
	}

	length := float32(g.length)
	ticks := absf32(g.cursor) / absf32(g.step)

	channels := float32(1)
	if g.source != nil && g.source.Channels == 2 {
		channels = 2
	}

	if ticks >= length || (g.start+length)*channels >= float32(len(sourceSamples(g.source))) || g.cursor < 0 {
		g.playing = false
		return
	}

	g.envelope = hannWindow(ticks, length)

	centre := int(math.Floor(float64(g.start + g.cursor)))
	t := g.cursor - float32(math.Floor(float64(g.cursor)))

	stride := 1
	if g.source != nil {
		stride = g.source.Channels
	}
	n := centre * stride

	left := hermite4(g.neighbourhood(n, 0), t)
	right := left
	if stride == 2 {
		right = hermite4(g.neighbourhood(n, 1), t)
	}

	*l += left * g.envelope * (1 - g.pan)
	*r += right * g.envelope * g.pan

	g.cursor += g.step
}

// neighbourhood gathers the four interleaved samples around index n+ch
// needed for Hermite-4 interpolation: with c = n+ch, they are c-stride, c,
// c+stride, c+2*stride.
// Out-of-range reads return 0, per SourceBuffer.at.
func (g *Grain) neighbourhood(n, ch int) [4]float32 {
	stride := 1
	if g.source != nil {
		stride = g.source.Channels
	}
	centre := n + ch
	return [4]float32{
		g.source.at(centre - stride),
		g.source.at(centre),
		g.source.at(centre + stride),
		g.source.at(centre + 2*stride),
	}
}

func sourceSamples(s *SourceBuffer) []float32 {
	if s == nil {
		return nil
	}
	return s.Samples
}

func absf32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

// hermite4 evaluates the 4-point Hermite (Catmull-Rom style Laurent
// polynomial) interpolant through p at fractional position t in [0,1),
// p[1] being the sample at t=0 and p[2] the sample at t=1.
func hermite4(p [4]float32, t float32) float32 {
	c0 := p[1]
	c1 := 0.5 * (p[2] - p[0])
	c2 := p[0] - 2.5*p[1] + 2*p[2] - 0.5*p[3]
	c3 := 0.5*(p[3]-p[0]) + 1.5*(p[1]-p[2])
	return ((c3*t+c2)*t+c1)*t + c0
}
