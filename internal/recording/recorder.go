// Package recording captures key presses as a song and plays songs back.
package recording

import (
	"sync"
	"time"

	"git.lost.host/meutraa/ivory/internal/game"
)

// Recorder collects presses relative to the moment recording started.
// Safe for concurrent use.
type Recorder struct {
	mu        sync.Mutex
	start     time.Time
	recording bool
	notes     []game.SongNote
}

func (r *Recorder) Start(now time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.start = now
	r.recording = true
	r.notes = nil
}

func (r *Recorder) Recording() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.recording
}

// Record adds a press and reports whether it was kept.
func (r *Recorder) Record(pitch string, at time.Time) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.recording {
		return false
	}
	onset := at.Sub(r.start)
	if onset < 0 {
		onset = 0
	}
	r.notes = append(r.notes, game.SongNote{
		Pitch:    pitch,
		Onset:    onset,
		Duration: game.DefaultNoteDuration,
	})
	return true
}

// Stop ends the recording and returns what was played.
func (r *Recorder) Stop() []game.SongNote {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.recording = false
	notes := r.notes
	r.notes = nil
	return notes
}
