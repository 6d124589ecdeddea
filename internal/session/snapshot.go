package session

import (
	"time"

	"git.lost.host/meutraa/ivory/internal/game"
)

// Snapshot is what a display needs to refresh after a frame.
type Snapshot struct {
	Status     game.Status
	Difficulty string
	SongTitle  string

	Score      int
	Accuracy   int
	Combo      int
	MaxCombo   int
	Hits       int
	Misses     int
	TotalNotes int

	SongElapsed time.Duration // negative during pre-roll
	Length      time.Duration
	Remaining   time.Duration
	Countdown   int

	// Spawned notes, resolved ones included
	Notes  []*game.ScheduledNote
	Result *game.Result
}

func (e *Engine) Snapshot() Snapshot {
	s := Snapshot{
		Status:     e.status,
		Difficulty: e.difficulty.Name,
		Score:      e.stats.Score,
		Accuracy:   e.stats.Accuracy(),
		Combo:      e.stats.Combo,
		MaxCombo:   e.stats.MaxCombo,
		Hits:       e.stats.Hits,
		Misses:     e.stats.Misses,
		TotalNotes: e.stats.TotalNotes,
		Result:     e.result,
	}
	if e.status == game.Countdown {
		s.Countdown = e.countdown
	}
	if nil != e.song {
		s.SongTitle = e.song.Title
		s.Length = e.song.Length()
	}
	if e.timeline.Started() {
		s.SongElapsed = e.frame.Song
		if s.SongElapsed >= 0 && s.SongElapsed < s.Length {
			s.Remaining = s.Length - s.SongElapsed
		} else if s.SongElapsed < 0 {
			s.Remaining = s.Length
		}
	}
	if nil != e.notes {
		s.Notes = e.notes.Visible()
	}
	return s
}
