package game

import (
	"time"
)

// DefaultNoteDuration is used when a song note does not carry a duration.
const DefaultNoteDuration = 500 * time.Millisecond

// MinNoteHeight keeps very short notes visible.
const MinNoteHeight = 30.0

type SongNote struct {
	Pitch    string        // e.g. C4, F#3
	Onset    time.Duration // relative to song start
	Duration time.Duration
}

// Lane is where a pitch falls on the field.
type Lane struct {
	Offset float64
	Width  float64
	Black  bool
}

type Resolution uint8

const (
	Unresolved Resolution = iota
	Hit
	Missed
)

type ScheduledNote struct {
	ID       string
	Pitch    string
	Onset    time.Duration
	Duration time.Duration
	Lane     Lane

	// Fall geometry, fixed once the note has spawned
	Height     float64
	FallSpeed  float64
	TravelTime time.Duration

	// This is state
	Spawned    bool
	Position   float64 // pixels fallen since spawn
	Resolution Resolution
	Quality    Quality
	HitAt      time.Duration // song time of the press that hit this note
}

func (n *ScheduledNote) Resolved() bool {
	return n.Resolution != Unresolved
}

// Active notes are on the field and can still be hit or missed.
func (n *ScheduledNote) Active() bool {
	return n.Spawned && n.Resolution == Unresolved
}

// Input is one key press of a performance, in song time.
type Input struct {
	Pitch string
	At    time.Duration
}
