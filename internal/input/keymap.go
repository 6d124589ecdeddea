package input

import (
	"time"

	"git.lost.host/meutraa/ivory/internal/game"
	"git.lost.host/meutraa/ivory/internal/session"
	"github.com/eiannone/keyboard"
)

// Keys maps the two rows of the keyboard onto octaves 3 and 4.
var Keys = map[rune]string{
	'z': "C3", 'x': "D3", 'c': "E3", 'v': "F3", 'b': "G3", 'n': "A3", 'm': "B3",
	's': "C#3", 'd': "D#3", 'g': "F#3", 'h': "G#3", 'j': "A#3",

	'q': "C4", 'w': "D4", 'e': "E4", 'r': "F4", 't': "G4", 'y': "A4", 'u': "B4",
	'2': "C#4", '3': "D#4", '5': "F#4", '6': "G#4", '7': "A#4",
}

var octaveShift = map[rune]int{
	',': -2,
	'<': -2,
	'.': 2,
	'>': 2,
}

// The shifted keyboard stays within octaves 1 to 6
const maxShift = 2

type Action uint8

const (
	Ignore Action = iota
	Submit
	Shifted
	Quit
)

// KeyMap turns key events into commands. Octave shifting is only allowed
// while Locked is false; guided play keeps the map fixed to the lanes.
type KeyMap struct {
	Octave int
	Locked bool
}

func lower(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + 'a' - 'A'
	}
	return r
}

// Pitch is the note a rune plays with the current octave shift.
func (k *KeyMap) Pitch(r rune) (string, bool) {
	pitch, ok := Keys[lower(r)]
	if !ok {
		return "", false
	}
	if k.Octave == 0 {
		return pitch, true
	}
	return game.Transpose(pitch, k.Octave)
}

// Shift applies an octave shift key and reports whether r was one.
func (k *KeyMap) Shift(r rune) bool {
	delta, ok := octaveShift[r]
	if !ok || k.Locked {
		return false
	}
	octave := k.Octave + delta
	if octave < -maxShift || octave > maxShift {
		return false
	}
	k.Octave = octave
	return true
}

// Translate maps a key event at the given time to an engine command.
func (k *KeyMap) Translate(ev keyboard.KeyEvent, at time.Time) (session.Command, Action) {
	switch ev.Key {
	case keyboard.KeyEsc, keyboard.KeyCtrlC:
		return session.Command{}, Quit
	case keyboard.KeySpace:
		return session.Command{Kind: session.TogglePause, At: at}, Submit
	case keyboard.KeyEnter:
		return session.Command{Kind: session.StartGame, At: at}, Submit
	case keyboard.KeyCtrlR:
		return session.Command{Kind: session.RestartGame, At: at}, Submit
	case keyboard.KeyBackspace, keyboard.KeyBackspace2:
		return session.Command{Kind: session.StopGame, At: at}, Submit
	case keyboard.KeyF1:
		return session.Command{Kind: session.ChangeDifficulty, Difficulty: game.Beginner, At: at}, Submit
	case keyboard.KeyF2:
		return session.Command{Kind: session.ChangeDifficulty, Difficulty: game.Intermediate, At: at}, Submit
	case keyboard.KeyF3:
		return session.Command{Kind: session.ChangeDifficulty, Difficulty: game.Advanced, At: at}, Submit
	}

	if k.Shift(ev.Rune) {
		return session.Command{}, Shifted
	}
	if pitch, ok := k.Pitch(ev.Rune); ok {
		return session.Command{Kind: session.PressKey, Pitch: pitch, At: at}, Submit
	}
	return session.Command{}, Ignore
}
