// loader.go - decodes audio files into a glaive.SourceBuffer
//
// This package plays the role the original glaive-granular's FileManager
// (dr_wav/dr_flac/dr_mp3) played: turning a file on disk into the flat
// interleaved-float view the granular engine consumes. The engine itself
// treats this as an external collaborator, per spec.md §1.

package loader

import (
	"fmt"
	"path/filepath"
	"strings"

	glaive "github.com/matteobkh/glaive-granular"
)

// Load dispatches on file extension to LoadWAV or LoadMP3.
func Load(path string) (*glaive.SourceBuffer, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".wav":
		return LoadWAV(path)
	case ".mp3":
		return LoadMP3(path)
	case ".flac":
		return nil, fmt.Errorf("loader: FLAC decoding is not supported (no FLAC decoder in this build); convert %q to WAV or MP3 first", path)
	default:
		return nil, fmt.Errorf("loader: unsupported audio format %q", ext)
	}
}
