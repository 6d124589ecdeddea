package game

// Quality is how well a note was hit.
type Quality int

const (
	// None is the quality of a note that has not been judged.
	None Quality = iota
	Ok
	Good
	Perfect
	Miss
)

func (q Quality) String() string {
	switch q {
	case Perfect:
		return "perfect"
	case Good:
		return "good"
	case Ok:
		return "ok"
	case Miss:
		return "miss"
	case None:
		return "none"
	}
	return "unknown"
}

// Volume is the loudness the hit note is played back with.
func (q Quality) Volume() float64 {
	switch q {
	case Perfect:
		return 1.0
	case Good:
		return 0.85
	case Ok:
		return 0.7
	}
	return 0
}

// FreePressVolume is used for presses that are not tied to any note.
const FreePressVolume = 0.5
