// Package audio plays the simulation's fire-and-forget cues and a looping
// background track through the system speaker.
package audio

import (
	"math"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"

	"github.com/vovakirdan/brickstorm/internal/core"
)

const (
	sampleRate = beep.SampleRate(44100)
	amplitude  = 0.2 // square wave peak at full cue volume
)

// Player plays audio cues. Implementations never block the caller.
type Player interface {
	Play(cue core.Cue)
	Loop(track string)
	Stop()
	Close()
}

// Nop discards everything. Used when sound is off or no device is available.
type Nop struct{}

func (Nop) Play(core.Cue) {}
func (Nop) Loop(string) {}
func (Nop) Stop() {}
func (Nop) Close() {}

// New returns a speaker-backed player when enabled, falling back to Nop if
// the audio device cannot be opened.
func New(enabled bool, logger *log.Logger) Player {
	if !enabled {
		return Nop{}
	}
	s, err := NewSpeaker()
	if err != nil {
		if logger != nil {
			logger.Warn("audio disabled", "err", err)
		}
		return Nop{}
	}
	return s
}

// note is one square-wave tone; freq 0 is a rest.
type note struct {
	freq float64
	dur  time.Duration
}

var cues = map[string][]note{
	"paddle":   {{880, 40 * time.Millisecond}},
	"brick":    {{660, 30 * time.Millisecond}},
	"fast":     {{520, 60 * time.Millisecond}, {780, 60 * time.Millisecond}, {1040, 80 * time.Millisecond}},
	"spear":    {{1200, 40 * time.Millisecond}, {900, 40 * time.Millisecond}, {600, 120 * time.Millisecond}},
	"lose":     {{440, 100 * time.Millisecond}, {330, 100 * time.Millisecond}, {220, 180 * time.Millisecond}},
	"win":      {{523, 90 * time.Millisecond}, {659, 90 * time.Millisecond}, {784, 90 * time.Millisecond}, {1047, 220 * time.Millisecond}},
	"gameover": {{392, 160 * time.Millisecond}, {0, 40 * time.Millisecond}, {311, 160 * time.Millisecond}, {0, 40 * time.Millisecond}, {262, 320 * time.Millisecond}},
}

var tracks = map[string][]note{
	"theme": {
		{262, 150 * time.Millisecond}, {330, 150 * time.Millisecond}, {392, 150 * time.Millisecond}, {330, 150 * time.Millisecond},
		{294, 150 * time.Millisecond}, {349, 150 * time.Millisecond}, {440, 150 * time.Millisecond}, {349, 150 * time.Millisecond},
		{0, 300 * time.Millisecond},
	},
}

// trackVolume keeps the background under the cues.
const trackVolume = 0.15

// squareWave generates a square wave tone at the given volume.
func squareWave(freq float64, duration time.Duration, volume float64) beep.Streamer {
	numSamples := sampleRate.N(duration)
	if freq <= 0 {
		return beep.Silence(numSamples)
	}
	phase := 0.0
	phaseStep := freq / float64(sampleRate)
	peak := amplitude * core.ClampF(volume, 0, 1)

	return beep.StreamerFunc(func(samples [][2]float64) (n int, ok bool) {
		for i := range samples {
			if numSamples <= 0 {
				return i, false
			}
			val := peak
			if math.Mod(phase, 1.0) > 0.5 {
				val = -val
			}
			samples[i][0] = val
			samples[i][1] = val
			phase += phaseStep
			numSamples--
		}
		return len(samples), true
	})
}

// melody chains notes into one streamer.
func melody(notes []note, volume float64) beep.Streamer {
	parts := make([]beep.Streamer, len(notes))
	for i, n := range notes {
		parts[i] = squareWave(n.freq, n.dur, volume)
	}
	return beep.Seq(parts...)
}

// cueStreamer builds the streamer for a cue, or false for unknown names.
func cueStreamer(cue core.Cue) (beep.Streamer, bool) {
	notes, ok := cues[cue.Name]
	if !ok {
		return nil, false
	}
	return melody(notes, cue.Volume), true
}

// trackStreamer repeats a track forever.
func trackStreamer(track string) (beep.Streamer, bool) {
	notes, ok := tracks[track]
	if !ok {
		return nil, false
	}
	return beep.Iterate(func() beep.Streamer {
		return melody(notes, trackVolume)
	}), true
}

// Speaker plays through the default output device.
type Speaker struct {
	mu    sync.Mutex
	music *beep.Ctrl
}

// NewSpeaker opens the output device.
func NewSpeaker() (*Speaker, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/30)); err != nil {
		return nil, err
	}
	return &Speaker{}, nil
}

// Play starts a cue and returns immediately. Unknown cues are ignored.
func (s *Speaker) Play(cue core.Cue) {
	if st, ok := cueStreamer(cue); ok {
		speaker.Play(st)
	}
}

// Loop replaces the background track.
func (s *Speaker) Loop(track string) {
	st, ok := trackStreamer(track)
	if !ok {
		return
	}
	s.Stop()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.music = &beep.Ctrl{Streamer: st}
	speaker.Play(s.music)
}

// Stop silences the background track.
func (s *Speaker) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.music == nil {
		return
	}
	speaker.Lock()
	s.music.Streamer = nil
	speaker.Unlock()
	s.music = nil
}

// Close stops all sound and releases the device.
func (s *Speaker) Close() {
	s.Stop()
	speaker.Clear()
	speaker.Close()
}
