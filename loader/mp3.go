// mp3.go - MP3 decode via github.com/hajimehoshi/go-mp3

package loader

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/hajimehoshi/go-mp3"

	glaive "github.com/matteobkh/glaive-granular"
)

// LoadMP3 decodes an MP3 file into a SourceBuffer. go-mp3 always decodes
// to 16-bit signed little-endian stereo PCM, so the resulting
// SourceBuffer is always 2-channel regardless of the source encoding.
func LoadMP3(path string) (*glaive.SourceBuffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("loader: %w", err)
	}
	defer f.Close()

	dec, err := mp3.NewDecoder(f)
	if err != nil {
		return nil, fmt.Errorf("loader: %s: decoding mp3: %w", path, err)
	}

	pcm, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("loader: %s: reading decoded pcm: %w", path, err)
	}

	samples := make([]float32, len(pcm)/2)
	for i := range samples {
		v := int16(binary.LittleEndian.Uint16(pcm[i*2:]))
		samples[i] = float32(v) / 32768
	}

	return glaive.NewSourceBuffer(samples, 2, dec.SampleRate())
}
