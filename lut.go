// lut.go - lookup tables for the grain envelope hot path

package glaive

import "math"

// Lookup table sizing. 8192 entries gives ~0.00077 radian resolution,
// comfortably below audible envelope stepping artifacts even for the
// shortest permitted grains.
const (
	hannLUTSize = 8192
	hannLUTMask = hannLUTSize - 1
)

const hannLUTScale = float32(hannLUTSize) / twoPi

const twoPi = 2 * math.Pi

// hannLUT holds cos(phase) for phase in [0, 2π), used to evaluate the Hann
// window without a trig call per grain per sample.
var hannLUT [hannLUTSize]float32

func init() {
	for i := 0; i < hannLUTSize; i++ {
		phase := float64(i) * 2 * math.Pi / float64(hannLUTSize)
		hannLUT[i] = float32(math.Cos(phase))
	}
}

// fastCos returns cos(phase) via linear interpolation between adjacent
// lookup table entries. phase may be any finite float32; it is wrapped
// into [0, 2π) internally.
//
//go:nosplit
func fastCos(phase float32) float32 {
	if phase < 0 {
		n := float32(math.Ceil(float64(-phase) / float64(twoPi)))
		phase += n * twoPi
	} else if phase >= twoPi {
		phase -= twoPi * float32(int(phase/twoPi))
	}

	indexF := phase * hannLUTScale
	index := int(indexF)
	frac := indexF - float32(index)

	index &= hannLUTMask
	next := (index + 1) & hannLUTMask

	return hannLUT[index] + frac*(hannLUT[next]-hannLUT[index])
}

// hannWindow evaluates the Hann envelope at fractional grain position
// pos/length, pos,length both expressed in the same units (output ticks).
// Rises from 0, peaks at the grain midpoint, falls back to 0.
//
//go:nosplit
func hannWindow(pos, length float32) float32 {
	return fastCos(twoPi*(pos/length)+math.Pi)/2 + 0.5
}
