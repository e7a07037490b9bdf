//go:build !headless

// backend_oto.go - oto v3 stereo float32 output backend

package glaive

import (
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/ebitengine/oto/v3"
)

// otoPlayer drives a Transport through oto. The Read callback is the
// realtime path: it loads the transport pointer atomically and never
// takes a lock, keeping setup/control operations (Start, Stop, Close)
// behind a mutex while the hot Read path stays lock-free.
type otoPlayer struct {
	ctx       *oto.Context
	player    *oto.Player
	transport atomic.Pointer[Transport]
	sampleBuf []float32

	started bool
	mutex   sync.Mutex
}

// NewAudioOutput opens an audio output backend for sampleRate and wires it
// to transport. BackendHeadless never touches a real device.
func NewAudioOutput(backend Backend, sampleRate int, transport Transport) (AudioOutput, error) {
	if backend == BackendHeadless {
		return newHeadlessPlayer(transport), nil
	}

	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 2,
		Format:       oto.FormatFloat32LE,
		BufferSize:   4,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, err
	}
	<-ready

	p := &otoPlayer{ctx: ctx}
	p.transport.Store(&transport)
	p.player = ctx.NewPlayer(p)
	p.sampleBuf = make([]float32, 4096)
	return p, nil
}

// Read fills buf with interleaved stereo float32 samples pulled one frame at
// a time from the transport. No allocation occurs once sampleBuf has
// grown to the steady-state buffer size oto requests.
func (p *otoPlayer) Read(buf []byte) (int, error) {
	transport := p.transport.Load()
	if transport == nil {
		for i := range buf {
			buf[i] = 0
		}
		return len(buf), nil
	}

	numSamples := len(buf) / 4
	if len(p.sampleBuf) < numSamples {
		p.sampleBuf = make([]float32, numSamples)
	}
	samples := p.sampleBuf[:numSamples]

	t := *transport
	for i := 0; i+1 < numSamples; i += 2 {
		var l, r float32
		t.Process(&l, &r)
		samples[i] = l
		samples[i+1] = r
	}

	copy(buf, (*[1 << 30]byte)(unsafe.Pointer(&samples[0]))[:len(buf)])
	return len(buf), nil
}

func (p *otoPlayer) Start() {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	if !p.started && p.player != nil {
		p.player.Play()
		p.started = true
	}
}

func (p *otoPlayer) Stop() {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	if p.started && p.player != nil {
		p.player.Pause()
		p.started = false
	}
}

func (p *otoPlayer) Close() {
	p.Stop()
	p.mutex.Lock()
	defer p.mutex.Unlock()
	if p.player != nil {
		p.player.Close()
		p.player = nil
	}
}

func (p *otoPlayer) IsStarted() bool {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return p.started
}
