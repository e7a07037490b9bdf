// backend.go - audio output backend selection

package glaive

// Backend selects which realtime audio output implementation NewAudioOutput
// constructs.
type Backend int

const (
	// BackendOto drives a real device through github.com/ebitengine/oto/v3.
	BackendOto Backend = iota
	// BackendHeadless discards audio; used by tests and CI.
	BackendHeadless
)

// AudioOutput is the realtime audio sink. The oto backend pulls
// interleaved stereo float32 frames from a Transport through its Read
// method and plays them; the headless backend never calls the Transport.
type AudioOutput interface {
	Start()
	Stop()
	Close()
	IsStarted() bool
}

// Transport is the subset of *AudioEngine an AudioOutput needs to pull
// samples from; kept narrow so backends don't import more than they use.
type Transport interface {
	Process(l, r *float32)
}
