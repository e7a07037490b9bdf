// main.go - demonstration program wiring loader -> transport -> engine -> backend
//
// This is the thin owner the original glaive-granular's main.cpp/audio.cpp
// openAudio/paCallback plumbing played: load a file, build the transport,
// open a realtime output device, and run a control goroutine that mutates
// parameters live, exercising the two-thread contract from spec.md §5
// outside of the test suite.

package main

import (
	"flag"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	glaive "github.com/matteobkh/glaive-granular"
	"github.com/matteobkh/glaive-granular/loader"
)

func main() {
	var (
		file       = flag.String("file", "", "path to a .wav or .mp3 file to granulate (required)")
		grainSize  = flag.Float64("grain-size", 0.6, "grain length as a fraction of the synthesis hop, (0,1)")
		stretch    = flag.Float64("stretch", 2.0, "time-stretch factor")
		density    = flag.Int("density", 2, "number of overlapping grain phases, [1,20]")
		hopSize    = flag.Int("hop", 3000, "analysis hop size in input frames")
		semitones  = flag.Int("semitones", 0, "pitch shift in semitones, [-24,24]")
		cents      = flag.Int("cents", 0, "pitch shift in cents, [-100,100]")
		loopFlag   = flag.Bool("loop", false, "loop playback at end of content")
		jitter     = flag.Float64("jitter", 0, "trigger-time jitter amount, [0,1]")
		randPan    = flag.Float64("rand-pan", 0, "random pan amount, [0,1]")
		spread     = flag.Float64("spread", 0, "random source-position spread, [0,1]")
		reverseAmt = flag.Int("reverse-prob", 0, "percent chance a triggered grain plays in reverse, [0,100]")
		volume     = flag.Float64("volume", 1.0, "master volume multiplier")
		seed       = flag.Int64("seed", time.Now().UnixNano(), "PRNG seed for grain scheduling")
		wander     = flag.Bool("wander", false, "continuously randomise stretch/density/pitch while playing")
	)
	flag.Parse()

	if *file == "" {
		log.Fatal("grainplay: -file is required")
	}

	source, err := loader.Load(*file)
	if err != nil {
		log.Fatalf("grainplay: %v", err)
	}
	log.Printf("grainplay: loaded %q: %d channels, %d frames, %d Hz", *file, source.Channels, source.Frames, source.SampleRate)

	audio, err := glaive.NewAudioEngine(source, *seed)
	if err != nil {
		log.Fatalf("grainplay: %v", err)
	}

	audio.Engine().UpdateParameters(
		float32(*grainSize), float32(*stretch), int32(*density), int32(*hopSize),
		int32(*semitones), int32(*cents),
	)
	audio.Engine().SetRandomisation(float32(*jitter), float32(*randPan), float32(*spread), int32(*reverseAmt))
	audio.SetLoop(*loopFlag)
	audio.SetVolume(float32(*volume))

	output, err := glaive.NewAudioOutput(glaive.BackendOto, source.SampleRate, audio)
	if err != nil {
		log.Fatalf("grainplay: opening audio output: %v", err)
	}
	defer output.Close()

	audio.SetPlaying(true)
	output.Start()
	log.Printf("grainplay: playing (Ctrl-C to stop)")

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	if *wander {
		go wanderParameters(audio, rand.New(rand.NewSource(*seed+1)))
	}

	<-stop
	audio.SetPlaying(false)
	output.Stop()
	log.Printf("grainplay: stopped")
}

// wanderParameters is the control thread: it periodically publishes a new
// parameter snapshot, exercising UpdateParameters concurrently with the
// audio thread's Process calls. It never touches grain state directly.
func wanderParameters(audio *glaive.AudioEngine, r *rand.Rand) {
	ticker := time.NewTicker(400 * time.Millisecond)
	defer ticker.Stop()

	for range ticker.C {
		stretch := float32(0.5 + r.Float64()*3)
		density := int32(1 + r.Intn(6))
		semitones := int32(r.Intn(25) - 12)
		audio.Engine().UpdateParameters(0, stretch, density, 0, semitones, 101)
	}
}
