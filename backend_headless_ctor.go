//go:build headless

// backend_headless_ctor.go - backend construction for headless builds

package glaive

// NewAudioOutput opens an audio output backend for sampleRate and wires it
// to transport. Headless builds carry no oto dependency at all, so every
// Backend value resolves to the no-op player; this is the build used by
// the test suite and CI.
func NewAudioOutput(backend Backend, sampleRate int, transport Transport) (AudioOutput, error) {
	return newHeadlessPlayer(transport), nil
}
