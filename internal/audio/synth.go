// Package audio synthesises key feedback through the system speaker.
package audio

import (
	"io"
	"log"
	"math"
	"sync"
	"time"

	"git.lost.host/meutraa/ivory/internal/game"
	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/speaker"
)

const (
	SampleRate = beep.SampleRate(44100)
	NoteLength = 1500 * time.Millisecond
	Release    = 200 * time.Millisecond
	Decay      = 3.0
)

// Synth mixes one tone per played note. It implements session.AudioSink.
// Until Init succeeds every note is dropped.
type Synth struct {
	mu          sync.Mutex
	sr          beep.SampleRate
	mixer       *beep.Mixer
	logger      *log.Logger
	guided      bool
	initialized bool
}

func NewSynth(logger *log.Logger) *Synth {
	if nil == logger {
		logger = log.New(io.Discard, "", 0)
	}
	return &Synth{
		sr:     SampleRate,
		mixer:  &beep.Mixer{},
		logger: logger,
	}
}

// Init opens the speaker with a buffer of one frame at 60Hz.
func (s *Synth) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.initialized {
		return nil
	}
	if err := speaker.Init(s.sr, s.sr.N(time.Second/60)); nil != err {
		return err
	}
	speaker.Play(s.mixer)
	s.initialized = true
	return nil
}

// Close silences everything still ringing.
func (s *Synth) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return
	}
	speaker.Lock()
	s.mixer.Clear()
	speaker.Unlock()
	s.initialized = false
}

// SetGuided turns the guided mode gate on or off. While it is on only
// notes played with bypassGate get through.
func (s *Synth) SetGuided(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.guided = on
}

func (s *Synth) accepts(bypassGate bool) bool {
	return !s.guided || bypassGate
}

func (s *Synth) PlayNote(pitch string, volume float64, bypassGate bool) {
	s.play(pitch, volume, NoteLength, bypassGate)
}

// PlayTone holds a note for duration and lets it ring for Release after.
func (s *Synth) PlayTone(pitch string, volume float64, duration time.Duration, bypassGate bool) {
	if duration <= 0 {
		duration = game.DefaultNoteDuration
	}
	s.play(pitch, volume, duration+Release, bypassGate)
}

func (s *Synth) play(pitch string, volume float64, length time.Duration, bypassGate bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized || !s.accepts(bypassGate) || volume <= 0 {
		return
	}
	freq, ok := game.Frequency(pitch)
	if !ok {
		s.logger.Println("unable to play unknown pitch", pitch)
		return
	}

	streamer := beep.Take(s.sr.N(length), &effects.Volume{
		Streamer: NewTone(s.sr, freq, Decay),
		Base:     2,
		Volume:   math.Log2(volume),
	})
	speaker.Lock()
	s.mixer.Add(streamer)
	speaker.Unlock()
}

// Playing is the number of tones still in the mixer.
func (s *Synth) Playing() int {
	speaker.Lock()
	defer speaker.Unlock()
	return s.mixer.Len()
}
