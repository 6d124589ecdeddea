package audio

import (
	"math"
	"testing"
	"time"

	"github.com/faiface/beep"
)

// A synth that mixes without a speaker behind it
func silent() *Synth {
	s := NewSynth(nil)
	s.initialized = true
	return s
}

func TestDroppedUntilInit(t *testing.T) {
	s := NewSynth(nil)
	s.PlayNote("C4", 1, true)
	if s.Playing() != 0 {
		t.Errorf("played without a speaker")
	}
	s.Close()
}

func TestGuidedGate(t *testing.T) {
	cases := []struct {
		guided, bypass bool
		played         int
	}{
		{false, false, 1},
		{false, true, 1},
		{true, false, 0},
		{true, true, 1},
	}
	for _, c := range cases {
		s := silent()
		s.SetGuided(c.guided)
		s.PlayNote("A4", 0.5, c.bypass)
		if s.Playing() != c.played {
			t.Log("guided", c.guided, "bypass", c.bypass)
			t.Log("expected", c.played, "got", s.Playing())
			t.Fail()
		}
	}
}

func TestPlayIgnoresBadInput(t *testing.T) {
	s := silent()
	s.PlayNote("H9", 1, true)
	s.PlayNote("C4", 0, true)
	if s.Playing() != 0 {
		t.Errorf("expected nothing to play, got %v", s.Playing())
	}
}

func TestToneEnvelope(t *testing.T) {
	tone := NewTone(SampleRate, 440, Decay)
	samples := make([][2]float64, SampleRate.N(NoteLength))
	n, ok := tone.Stream(samples)
	if n != len(samples) || !ok {
		t.Fatalf("short stream %v %v", n, ok)
	}

	if samples[0][0] != 0 {
		t.Errorf("expected silence at the start, got %v", samples[0][0])
	}
	peak := func(from, to int) float64 {
		p := 0.0
		for _, s := range samples[from:to] {
			if s[0] != s[1] {
				t.Fatalf("channels differ")
			}
			p = math.Max(p, math.Abs(s[0]))
		}
		return p
	}
	second := SampleRate.N(NoteLength) / 3
	early, late := peak(0, second), peak(2*second, 3*second)
	if early > 0.3 || early == 0 {
		t.Errorf("unexpected peak %v", early)
	}
	if late >= early/2 {
		t.Errorf("tone did not decay: %v then %v", early, late)
	}
}

func TestToneTakesNoteLength(t *testing.T) {
	s := beep.Take(SampleRate.N(NoteLength), NewTone(SampleRate, 261.63, Decay))
	total := 0
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		total += n
		if !ok {
			break
		}
	}
	if total != SampleRate.N(NoteLength) {
		t.Errorf("expected %v samples, got %v", SampleRate.N(NoteLength), total)
	}
}

// drain streams n samples out of the mixer
func drain(s *Synth, n int) {
	buf := make([][2]float64, 256)
	for n > 0 {
		chunk := buf
		if n < len(chunk) {
			chunk = chunk[:n]
		}
		s.mixer.Stream(chunk)
		n -= len(chunk)
	}
}

func TestToneRingsForItsDuration(t *testing.T) {
	cases := map[time.Duration]time.Duration{
		100 * time.Millisecond: 100*time.Millisecond + Release,
		2 * time.Second:        2*time.Second + Release,
		0:                      500*time.Millisecond + Release,
	}
	for duration, length := range cases {
		s := silent()
		s.PlayTone("E4", 1, duration, false)
		n := SampleRate.N(length)
		drain(s, n-1024)
		if s.Playing() != 1 {
			t.Log("duration", duration)
			t.Log("stopped early")
			t.Fail()
		}
		drain(s, 2048)
		if s.Playing() != 0 {
			t.Log("duration", duration)
			t.Log("still ringing after", length)
			t.Fail()
		}
	}
}
