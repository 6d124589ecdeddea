package audio

import (
	"math"
	"time"

	"github.com/faiface/beep"
)

const attack = 5 * time.Millisecond

// Tone is a decaying sine with a few harmonics, close enough to a struck
// string for feedback purposes. It never ends; wrap it in beep.Take.
type Tone struct {
	sr    beep.SampleRate
	freq  float64
	decay float64 // per second
	pos   int
}

func NewTone(sr beep.SampleRate, freq, decay float64) *Tone {
	return &Tone{sr: sr, freq: freq, decay: decay}
}

func (g *Tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		envelope := math.Exp(-t*g.decay) * math.Min(t/attack.Seconds(), 1)
		sample := 0.6 * math.Sin(2*math.Pi*g.freq*t)
		sample += 0.25 * math.Sin(2*math.Pi*g.freq*2*t)
		sample += 0.1 * math.Sin(2*math.Pi*g.freq*3*t)
		sample *= envelope * 0.3

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *Tone) Err() error {
	return nil
}
