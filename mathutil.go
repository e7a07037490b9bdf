// mathutil.go - small numeric helpers shared by the engine and transport

package glaive

import "math"

func roundf32(v float32) float32 {
	return float32(math.Round(float64(v)))
}

func pow2(exp float64) float64 {
	return math.Pow(2, exp)
}

func float32bits(v float32) uint32 { return math.Float32bits(v) }

func float32frombits(b uint32) float32 { return math.Float32frombits(b) }
