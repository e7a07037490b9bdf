// wav_test.go - round-trips a hand-built PCM16 WAV file through LoadWAV

package loader

import (
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"
)

// writeTestWAV assembles a minimal canonical RIFF/WAVE file: a "fmt "
// chunk describing PCM16 mono at the given sample rate, followed by a
// "data" chunk holding samples.
func writeTestWAV(t *testing.T, path string, sampleRate int, samples []int16) {
	t.Helper()

	dataSize := len(samples) * 2
	fmtSize := 16
	riffSize := 4 + (8 + fmtSize) + (8 + dataSize)

	buf := make([]byte, 0, 8+riffSize)
	buf = append(buf, "RIFF"...)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(riffSize))
	buf = append(buf, "WAVE"...)

	buf = append(buf, "fmt "...)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(fmtSize))
	buf = binary.LittleEndian.AppendUint16(buf, 1) // PCM
	buf = binary.LittleEndian.AppendUint16(buf, 1) // mono
	buf = binary.LittleEndian.AppendUint32(buf, uint32(sampleRate))
	byteRate := sampleRate * 1 * 16 / 8
	buf = binary.LittleEndian.AppendUint32(buf, uint32(byteRate))
	buf = binary.LittleEndian.AppendUint16(buf, 2)  // block align
	buf = binary.LittleEndian.AppendUint16(buf, 16) // bits per sample

	buf = append(buf, "data"...)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(dataSize))
	for _, s := range samples {
		buf = binary.LittleEndian.AppendUint16(buf, uint16(s))
	}

	if err := os.WriteFile(path, buf, 0o644); err != nil {
		t.Fatalf("writing test wav: %v", err)
	}
}

func TestLoadWAV_PCM16RoundTrip(t *testing.T) {
	samples := []int16{0, 16384, -16384, 32767, -32768}
	path := filepath.Join(t.TempDir(), "test.wav")
	writeTestWAV(t, path, 22050, samples)

	src, err := LoadWAV(path)
	if err != nil {
		t.Fatalf("LoadWAV: %v", err)
	}
	if src.Channels != 1 {
		t.Errorf("Channels = %d, want 1", src.Channels)
	}
	if src.SampleRate != 22050 {
		t.Errorf("SampleRate = %d, want 22050", src.SampleRate)
	}
	if src.Frames != len(samples) {
		t.Fatalf("Frames = %d, want %d", src.Frames, len(samples))
	}

	for i, s := range samples {
		want := float32(s) / 32768
		if math.Abs(float64(src.Samples[i]-want)) > 1e-6 {
			t.Errorf("sample %d = %v, want %v", i, src.Samples[i], want)
		}
	}
}

func TestLoadWAV_RejectsNonRIFF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.wav")
	if err := os.WriteFile(path, []byte("not a wav file at all"), 0o644); err != nil {
		t.Fatalf("writing bad file: %v", err)
	}
	if _, err := LoadWAV(path); err == nil {
		t.Fatal("expected an error loading a non-RIFF file")
	}
}

func TestLoad_DispatchesByExtension(t *testing.T) {
	if _, err := Load("clip.flac"); err == nil {
		t.Fatal("expected an error for .flac, which is explicitly unsupported")
	}
	if _, err := Load("clip.ogg"); err == nil {
		t.Fatal("expected an error for an unrecognised extension")
	}
}
