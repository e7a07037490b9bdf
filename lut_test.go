// lut_test.go - fastCos / hannWindow accuracy against math.Cos

package glaive

import (
	"math"
	"testing"
)

func TestFastCos_TracksMathCos(t *testing.T) {
	for _, phase := range []float32{0, 0.5, 1, 3.14159, 6.0, -1.5, 7.8} {
		got := fastCos(phase)
		want := float32(math.Cos(float64(phase)))
		if math.Abs(float64(got-want)) > 1e-3 {
			t.Errorf("fastCos(%v) = %v, want %v ± 1e-3", phase, got, want)
		}
	}
}

func TestHannWindow_EdgesAndPeak(t *testing.T) {
	const length = float32(1000)

	if got := hannWindow(0, length); got > 1e-3 {
		t.Errorf("hannWindow(0, %v) = %v, want ~0", length, got)
	}
	if got := hannWindow(length, length); got > 1e-3 {
		t.Errorf("hannWindow(length, length) = %v, want ~0", got)
	}
	if got := hannWindow(length/2, length); math.Abs(float64(got-1)) > 1e-3 {
		t.Errorf("hannWindow(length/2, length) = %v, want ~1", got)
	}
}

func TestHannWindow_SymmetricAboutMidpoint(t *testing.T) {
	const length = float32(500)
	for _, x := range []float32{10, 123, 249} {
		a := hannWindow(x, length)
		b := hannWindow(length-x, length)
		if math.Abs(float64(a-b)) > 1e-3 {
			t.Errorf("hannWindow(%v) = %v, hannWindow(length-%v) = %v, want equal", x, a, x, b)
		}
	}
}
