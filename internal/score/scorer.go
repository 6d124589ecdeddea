package score

import (
	"time"

	"git.lost.host/meutraa/ivory/internal/game"
)

type Scorer interface {
	// Signed distance between when a note should be hit and when it was
	Distance(onset, at time.Duration) time.Duration

	// Find the closest note of the pitch that can still be hit
	Reconcile(notes []*game.ScheduledNote, pitch string, at time.Duration) (*game.ScheduledNote, time.Duration)

	Judge(absDistance time.Duration, difficulty game.Difficulty) (game.Quality, bool)
	Points(quality game.Quality, difficulty game.Difficulty, combo int) int
}

// Stats is the running tally of a session.
type Stats struct {
	Score      int
	Combo      int
	MaxCombo   int
	Hits       int
	Misses     int
	TotalNotes int
}

// Accuracy is the percentage of judged notes that were hit, rounded half up.
func (s *Stats) Accuracy() int {
	judged := s.Hits + s.Misses
	if judged == 0 {
		return 0
	}
	return (200*s.Hits + judged) / (2 * judged)
}

func (s *Stats) Hit(points int) {
	s.Score += points
	s.Combo++
	if s.Combo > s.MaxCombo {
		s.MaxCombo = s.Combo
	}
	s.Hits++
}

func (s *Stats) Miss() {
	s.Combo = 0
	s.Misses++
}
