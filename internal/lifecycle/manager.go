package lifecycle

import (
	"time"

	"git.lost.host/meutraa/ivory/internal/game"
)

// Manager moves scheduled notes through spawn, fall and miss.
type Manager struct {
	notes []*game.ScheduledNote
}

func NewManager(notes []*game.ScheduledNote) *Manager {
	return &Manager{notes: notes}
}

func (m *Manager) Notes() []*game.ScheduledNote {
	return m.notes
}

// Spawn marks the notes that have to start falling by gameElapsed to reach the
// hit line on time, and returns them.
func (m *Manager) Spawn(gameElapsed, preRoll time.Duration) []*game.ScheduledNote {
	var spawned []*game.ScheduledNote
	for _, note := range m.notes {
		if note.Spawned {
			continue
		}
		if note.Onset+preRoll-note.TravelTime <= gameElapsed {
			note.Spawned = true
			note.Position = 0
			spawned = append(spawned, note)
		}
	}
	return spawned
}

// Advance moves every falling note down by its own speed.
func (m *Manager) Advance(delta time.Duration) {
	if delta <= 0 {
		return
	}
	s := delta.Seconds()
	for _, note := range m.notes {
		if note.Active() {
			note.Position += note.FallSpeed * s
		}
	}
}

// DetectMisses marks active notes whose onset is more than missWindow in the
// past, and returns them. Call it only once the song has started.
func (m *Manager) DetectMisses(songElapsed, missWindow time.Duration) []*game.ScheduledNote {
	var missed []*game.ScheduledNote
	for _, note := range m.notes {
		if !note.Active() {
			continue
		}
		if note.Onset+missWindow < songElapsed {
			note.Resolution = game.Missed
			note.Quality = game.Miss
			missed = append(missed, note)
		}
	}
	return missed
}

// Active returns the notes that can still be hit, in onset order.
func (m *Manager) Active() []*game.ScheduledNote {
	var active []*game.ScheduledNote
	for _, note := range m.notes {
		if note.Active() {
			active = append(active, note)
		}
	}
	return active
}

// Visible returns every spawned note, including resolved ones.
func (m *Manager) Visible() []*game.ScheduledNote {
	var visible []*game.ScheduledNote
	for _, note := range m.notes {
		if note.Spawned {
			visible = append(visible, note)
		}
	}
	return visible
}

func (m *Manager) AllResolved() bool {
	for _, note := range m.notes {
		if !note.Resolved() {
			return false
		}
	}
	return true
}
