package game

import "time"

// SongTail is extra time after the last note ends before a song is over.
const SongTail = 2 * time.Second

type Song struct {
	ID    int
	Title string
	Notes []SongNote
}

// Length is when the song is over: the latest note end plus SongTail.
func (s *Song) Length() time.Duration {
	if len(s.Notes) == 0 {
		return 0
	}
	var last time.Duration
	for _, n := range s.Notes {
		d := n.Duration
		if d <= 0 {
			d = DefaultNoteDuration
		}
		if end := n.Onset + d; end > last {
			last = end
		}
	}
	return last + SongTail
}
