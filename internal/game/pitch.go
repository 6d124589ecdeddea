package game

import (
	"math"
	"strconv"
	"strings"
)

var names = [...]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// ParsePitch converts a name like C4 or F#3 into a MIDI note number.
func ParsePitch(pitch string) (int, bool) {
	if len(pitch) < 2 {
		return 0, false
	}
	split := 1
	if pitch[1] == '#' {
		split = 2
	}
	name, octave := strings.ToUpper(pitch[:split]), pitch[split:]
	o, err := strconv.Atoi(octave)
	if nil != err {
		return 0, false
	}
	for i, n := range names {
		if n == name {
			return (o+1)*12 + i, true
		}
	}
	return 0, false
}

// PitchName is the inverse of ParsePitch.
func PitchName(midi int) string {
	return names[midi%12] + strconv.Itoa(midi/12-1)
}

// IsBlack reports whether the pitch is played on a black key.
func IsBlack(pitch string) bool {
	return strings.Contains(pitch, "#")
}

// Transpose moves a pitch by a number of octaves.
func Transpose(pitch string, octaves int) (string, bool) {
	midi, ok := ParsePitch(pitch)
	if !ok {
		return "", false
	}
	midi += octaves * 12
	if midi < 0 {
		return "", false
	}
	return PitchName(midi), true
}

// Frequency in Hz, equal temperament with A4 at 440Hz.
func Frequency(pitch string) (float64, bool) {
	midi, ok := ParsePitch(pitch)
	if !ok {
		return 0, false
	}
	return 440 * math.Pow(2, float64(midi-69)/12), true
}

// Keyboard lists every pitch from the first to the last octave, inclusive.
func Keyboard(first, last int) []string {
	keys := make([]string, 0, (last-first+1)*12)
	for midi := (first + 1) * 12; midi < (last+2)*12; midi++ {
		keys = append(keys, PitchName(midi))
	}
	return keys
}
