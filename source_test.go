// source_test.go - SourceBuffer construction and defensive reads

package glaive

import "testing"

func TestNewSourceBuffer_ValidatesChannels(t *testing.T) {
	if _, err := NewSourceBuffer([]float32{0, 1, 2}, 3, 44100); err == nil {
		t.Fatal("expected an error for channels outside {1,2}")
	}
}

func TestNewSourceBuffer_ValidatesFrameAlignment(t *testing.T) {
	if _, err := NewSourceBuffer([]float32{0, 1, 2}, 2, 44100); err == nil {
		t.Fatal("expected an error for a sample count not divisible by channels")
	}
}

func TestNewSourceBuffer_Frames(t *testing.T) {
	src, err := NewSourceBuffer(make([]float32, 8), 2, 44100)
	if err != nil {
		t.Fatalf("NewSourceBuffer: %v", err)
	}
	if src.Frames != 4 {
		t.Errorf("Frames = %d, want 4", src.Frames)
	}
}

func TestSourceBuffer_AtIsDefensive(t *testing.T) {
	src, err := NewSourceBuffer([]float32{1, 2, 3}, 1, 44100)
	if err != nil {
		t.Fatalf("NewSourceBuffer: %v", err)
	}
	if got := src.at(-1); got != 0 {
		t.Errorf("at(-1) = %v, want 0", got)
	}
	if got := src.at(3); got != 0 {
		t.Errorf("at(3) = %v, want 0", got)
	}
	if got := src.at(1); got != 2 {
		t.Errorf("at(1) = %v, want 2", got)
	}

	var nilSrc *SourceBuffer
	if got := nilSrc.at(0); got != 0 {
		t.Errorf("nil.at(0) = %v, want 0", got)
	}
}
