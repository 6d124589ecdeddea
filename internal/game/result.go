package game

import "time"

// Result is the outcome of a finished guided play session.
type Result struct {
	PlayerName string
	SongID     int
	SongTitle  string
	Difficulty string
	Points     string // points scheme the session was scored with
	Score      int
	Accuracy   int
	MaxCombo   int
	Hits       int
	Misses     int
	TotalNotes int
	Grade      string
	Date       time.Time
	Inputs     []Input
}
