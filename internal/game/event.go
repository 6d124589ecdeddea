package game

import "time"

type EventKind uint8

const (
	NoteSpawned EventKind = iota
	NoteHit
	NoteMissed
	FreePress
	CountdownTick
	StatusChanged
	SessionComplete
)

func (k EventKind) String() string {
	switch k {
	case NoteSpawned:
		return "note-spawned"
	case NoteHit:
		return "note-hit"
	case NoteMissed:
		return "note-missed"
	case FreePress:
		return "free-press"
	case CountdownTick:
		return "countdown"
	case StatusChanged:
		return "status"
	case SessionComplete:
		return "session-complete"
	}
	return "unknown"
}

// Event is a notification for presentation layers. Only the fields relevant
// to Kind are set.
type Event struct {
	Kind     EventKind
	Note     *ScheduledNote
	Pitch    string
	Quality  Quality
	Points   int
	Distance time.Duration // onset - press, positive when early
	Count    int           // countdown seconds left
	Status   Status
	Result   *Result
}
