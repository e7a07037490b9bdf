// wav.go - minimal RIFF/WAVE PCM and IEEE-float decoder
//
// No third-party WAV decoder appears anywhere in the retrieval pack (see
// DESIGN.md); this reads the handful of chunk types the original
// dr_wav-backed loader actually needed (PCM 16/24/32-bit, IEEE float
// 32-bit) directly against encoding/binary.

package loader

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"

	glaive "github.com/matteobkh/glaive-granular"
)

const (
	wavFormatPCM       = 1
	wavFormatIEEEFloat = 3
)

// LoadWAV decodes a PCM or IEEE-float WAV file into a SourceBuffer.
func LoadWAV(path string) (*glaive.SourceBuffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("loader: %w", err)
	}
	defer f.Close()

	var riffHeader [12]byte
	if _, err := io.ReadFull(f, riffHeader[:]); err != nil {
		return nil, fmt.Errorf("loader: %s: reading RIFF header: %w", path, err)
	}
	if string(riffHeader[0:4]) != "RIFF" || string(riffHeader[8:12]) != "WAVE" {
		return nil, fmt.Errorf("loader: %s: not a RIFF/WAVE file", path)
	}

	var (
		channels      int
		sampleRate    int
		bitsPerSample int
		audioFormat   int
		haveFmt       bool
		samples       []float32
	)

	for {
		var chunkHeader [8]byte
		if _, err := io.ReadFull(f, chunkHeader[:]); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				break
			}
			return nil, fmt.Errorf("loader: %s: reading chunk header: %w", path, err)
		}
		chunkID := string(chunkHeader[0:4])
		chunkSize := binary.LittleEndian.Uint32(chunkHeader[4:8])

		switch chunkID {
		case "fmt ":
			body := make([]byte, chunkSize)
			if _, err := io.ReadFull(f, body); err != nil {
				return nil, fmt.Errorf("loader: %s: reading fmt chunk: %w", path, err)
			}
			audioFormat = int(binary.LittleEndian.Uint16(body[0:2]))
			channels = int(binary.LittleEndian.Uint16(body[2:4]))
			sampleRate = int(binary.LittleEndian.Uint32(body[4:8]))
			bitsPerSample = int(binary.LittleEndian.Uint16(body[14:16]))
			haveFmt = true

		case "data":
			if !haveFmt {
				return nil, fmt.Errorf("loader: %s: data chunk before fmt chunk", path)
			}
			body := make([]byte, chunkSize)
			if _, err := io.ReadFull(f, body); err != nil {
				return nil, fmt.Errorf("loader: %s: reading data chunk: %w", path, err)
			}
			samples, err = decodePCM(body, audioFormat, bitsPerSample)
			if err != nil {
				return nil, fmt.Errorf("loader: %s: %w", path, err)
			}

		default:
			if _, err := f.Seek(int64(chunkSize), io.SeekCurrent); err != nil {
				return nil, fmt.Errorf("loader: %s: skipping chunk %q: %w", path, chunkID, err)
			}
		}

		if chunkSize%2 == 1 {
			if _, err := f.Seek(1, io.SeekCurrent); err != nil {
				break
			}
		}
	}

	if !haveFmt || samples == nil {
		return nil, fmt.Errorf("loader: %s: missing fmt or data chunk", path)
	}

	return glaive.NewSourceBuffer(samples, channels, sampleRate)
}

func decodePCM(body []byte, audioFormat, bitsPerSample int) ([]float32, error) {
	switch {
	case audioFormat == wavFormatPCM && bitsPerSample == 16:
		out := make([]float32, len(body)/2)
		for i := range out {
			v := int16(binary.LittleEndian.Uint16(body[i*2:]))
			out[i] = float32(v) / 32768
		}
		return out, nil

	case audioFormat == wavFormatPCM && bitsPerSample == 24:
		out := make([]float32, len(body)/3)
		for i := range out {
			b := body[i*3 : i*3+3]
			v := int32(b[0]) | int32(b[1])<<8 | int32(b[2])<<16
			if v&0x800000 != 0 {
				v |= ^int32(0xFFFFFF)
			}
			out[i] = float32(v) / 8388608
		}
		return out, nil

	case audioFormat == wavFormatPCM && bitsPerSample == 32:
		out := make([]float32, len(body)/4)
		for i := range out {
			v := int32(binary.LittleEndian.Uint32(body[i*4:]))
			out[i] = float32(v) / 2147483648
		}
		return out, nil

	case audioFormat == wavFormatIEEEFloat && bitsPerSample == 32:
		out := make([]float32, len(body)/4)
		for i := range out {
			bits := binary.LittleEndian.Uint32(body[i*4:])
			out[i] = math.Float32frombits(bits)
		}
		return out, nil

	default:
		return nil, fmt.Errorf("unsupported WAV encoding: format=%d bits=%d", audioFormat, bitsPerSample)
	}
}
