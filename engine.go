// engine.go - grain pool, scheduler and the Hₐ/Hₛ/α bookkeeping

package glaive

import (
	"sync/atomic"
)

// MaxGrains is the size of the fixed grain pool. It is never grown at
// runtime; triggering a grain always reuses an existing slot.
const MaxGrains = 20

// ParamSnapshot is an immutable publication of every field the control
// thread owns. GranularEngine swaps it atomically; the audio thread loads
// the current pointer once per output frame so a compound update (e.g.
// Hₐ and stretch, which together determine Hₛ) is always observed as a
// coherent whole, never torn.
type ParamSnapshot struct {
	Size      float32 // grain length as a fraction of Hₛ, (0, 1)
	Stretch   float32 // time-stretch factor α
	Density   int32   // concurrently active grain phases, [1, MaxGrains]
	Ha        int32   // analysis hop, input frames
	Hs        int32   // synthesis hop, output frames = round(Ha*Stretch)
	Semitones int32
	Cents     int32
	Pitch     float32 // derived: 2^(semitones/12) * 2^(cents/1200)

	Jitter   float32 // [0,1]
	RandPan  float32 // [0,1]
	Spread   float32 // [0,1]
	RevProb  int32   // [0,100]
}

const (
	semitoneSentinel = 25
	centSentinel     = 101
)

func defaultParams() *ParamSnapshot {
	return &ParamSnapshot{
		Size:    0.6,
		Stretch: 2.0,
		Density: 2,
		Ha:      3000,
		Hs:      6000,
		Pitch:   1.0,
	}
}

func pitchFromTuning(semitones, cents int32) float32 {
	return float32(pow2(float64(semitones)/12) * pow2(float64(cents)/1200))
}

// GranularEngine owns a fixed pool of grains and schedules their triggers
// against a global sample clock. It is written exclusively by the audio
// thread (clock, jitter phase, grain state, RNG); parameters are published
// by the control thread through UpdateParameters and consumed through the
// atomic snapshot pointer.
type GranularEngine struct {
	source *SourceBuffer

	grains [MaxGrains]Grain

	index     int64
	jitOffset int32

	rng *engineRNG

	params atomic.Pointer[ParamSnapshot]

	// lastDensity is the density this engine last scheduled against; it
	// is compared to the freshly loaded snapshot's density each tick so
	// a shrink can be applied by the audio thread itself (the only
	// writer grain state is allowed to have), per the scheduling
	// contract in SPEC_FULL.md §4.4.
	lastDensity int32
}

// NewGranularEngine creates an engine over source with the defaults from
// spec.md §6: Hₐ=3000, Hₛ=6000, density=2, size=0.6, stretch=2.0, pitch=1,
// all randomisation at zero.
func NewGranularEngine(source *SourceBuffer, seed int64) *GranularEngine {
	e := &GranularEngine{
		source:      source,
		rng:         newEngineRNG(seed),
		lastDensity: 2,
	}
	for i := range e.grains {
		e.grains[i].source = source
	}
	e.params.Store(defaultParams())
	return e
}

// Params returns the currently published parameter snapshot.
func (e *GranularEngine) Params() *ParamSnapshot {
	return e.params.Load()
}

// UpdateParameters mutates only the fields whose argument is not the
// "leave unchanged" sentinel, publishing the result atomically. Sentinels:
// newSize/newStretch/newHa <= 0, newDensity <= 0, semitones == 25,
// cents == 101. Changing stretch or Ha recomputes Hs in the same update;
// changing semitones or cents recomputes pitch in the same update. This
// method never touches grain state: density shrink is applied lazily by
// the audio thread on its next tick (see lastDensity in Playback).
func (e *GranularEngine) UpdateParameters(newSize, newStretch float32, newDensity, newHa int32, newSemitones, newCents int32) {
	old := e.params.Load()
	next := *old

	if newSize > 0 {
		next.Size = newSize
	}
	if newStretch > 0 {
		next.Stretch = newStretch
		next.Hs = int32(roundf32(float32(next.Ha) * next.Stretch))
	}
	if newDensity > 0 {
		if newDensity > MaxGrains {
			newDensity = MaxGrains
		}
		next.Density = newDensity
	}
	if newHa > 0 {
		next.Ha = newHa
		next.Hs = int32(roundf32(float32(next.Ha) * next.Stretch))
	}
	if newSemitones >= -24 && newSemitones <= 24 {
		next.Semitones = newSemitones
		next.Pitch = pitchFromTuning(next.Semitones, next.Cents)
	}
	if newCents >= -100 && newCents <= 100 {
		next.Cents = newCents
		next.Pitch = pitchFromTuning(next.Semitones, next.Cents)
	}

	e.params.Store(&next)
}

// SetRandomisation updates the four randomisation controls directly; they
// carry no sentinel since 0 is itself a meaningful "off" value for all
// four (unlike UpdateParameters' other fields, which treat <=0/25/101 as
// "leave unchanged").
func (e *GranularEngine) SetRandomisation(jitter, randPan, spread float32, revProb int32) {
	old := e.params.Load()
	next := *old
	next.Jitter = clamp01(jitter)
	next.RandPan = clamp01(randPan)
	next.Spread = clamp01(spread)
	if revProb < 0 {
		revProb = 0
	}
	if revProb > 100 {
		revProb = 100
	}
	next.RevProb = revProb
	e.params.Store(&next)
}

// Playback advances the engine by one output frame, adding this engine's
// stereo contribution to (l, r). It is the realtime entry point: no
// allocation, no blocking, no lock the control thread could contend.
func (e *GranularEngine) Playback(l, r *float32) {
	p := e.params.Load()

	if p.Density < e.lastDensity {
		for i := p.Density; i < e.lastDensity; i++ {
			e.grains[i].playing = false
		}
	}
	e.lastDensity = p.Density

	hs := p.Hs
	if hs < 1 {
		hs = 1
	}

	for i := int32(0); i < p.Density; i++ {
		phase := i*hs/p.Density + e.jitOffset
		if phase < 0 {
			phase = 0
		}
		if phase > hs-1 {
			phase = hs - 1
		}

		// A grain whose cursor has already covered its whole length is
		// finished even though playing is only cleared by its next
		// outputStereo call, so its slot is free to retrigger on this tick.
		g := &e.grains[i]
		free := !g.playing || g.cursor < 0 || absf32(g.cursor)/absf32(g.step) >= float32(g.length)

		if int32(e.index%int64(hs)) == phase && free {
			pan := float32(0.5)
			if p.RandPan > 0 {
				pan += (e.rng.unitOpen() - 0.5) * p.RandPan
			}

			var spreadOff float32
			if p.Spread >= 4e-4 {
				spreadOff = p.Spread * e.rng.unitOpen() * float32(sourceFrames(e.source))
			}

			srcStart := float32(e.index/int64(hs))*float32(p.Ha) + float32(p.Ha)/float32(p.Density)*float32(i) + spreadOff

			length := p.Size*float32(hs) - float32(e.jitOffset)
			if length < 1 {
				length = 1
			}

			reverse := e.rng.percent() < int(p.RevProb)

			e.grains[i].trigger(e.source, srcStart, length, pan, p.Pitch, reverse)

			if p.Jitter > 0 {
				u := e.rng.unitOpen()
				jit := (float32(hs)/-2 + u*float32(hs)) * p.Jitter
				half := float32(hs) / 2
				if jit < -half {
					jit = -half
				}
				if jit > half {
					jit = half
				}
				e.jitOffset = int32(jit)
			} else {
				e.jitOffset = 0
			}
		}

		if e.grains[i].playing {
			e.grains[i].outputStereo(l, r)
		}
	}

	e.index++
}

// Index returns the engine's monotonic sample clock, in output frames.
func (e *GranularEngine) Index() int64 { return e.index }

// ResetClock rewinds the sample clock, used by the transport on loop or
// stop. It does not touch in-flight grain state; grains already playing
// drain naturally.
func (e *GranularEngine) ResetClock(to int64) { e.index = to }

func sourceFrames(s *SourceBuffer) int {
	if s == nil {
		return 0
	}
	return s.Frames
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
