package clock

import "time"

// Frame holds the times derived for one tick.
type Frame struct {
	Now   time.Time
	Game  time.Duration // since the animation started, pre-roll included
	Song  time.Duration // since the song started, negative during pre-roll
	Delta time.Duration // since the previous tick
}

// Timeline tracks the origins of a running session.
// Pausing does not move the origins: time spent paused still counts
// against the song.
type Timeline struct {
	PreRoll time.Duration

	gameOrigin time.Time
	songOrigin time.Time
	lastTick   time.Time
}

func (t *Timeline) Start(now time.Time) {
	t.gameOrigin = now
	t.songOrigin = now.Add(t.PreRoll)
	t.lastTick = now
}

func (t *Timeline) Reset() {
	t.gameOrigin = time.Time{}
	t.songOrigin = time.Time{}
	t.lastTick = time.Time{}
}

func (t *Timeline) Started() bool {
	return !t.gameOrigin.IsZero()
}

// Resync drops the time since the last tick so a suspended loop does not
// produce one large delta when it continues.
func (t *Timeline) Resync(now time.Time) {
	t.lastTick = now
}

func (t *Timeline) Frame(now time.Time) Frame {
	delta := now.Sub(t.lastTick)
	if delta < 0 {
		delta = 0
	}
	t.lastTick = now
	return Frame{
		Now:   now,
		Game:  now.Sub(t.gameOrigin),
		Song:  now.Sub(t.songOrigin),
		Delta: delta,
	}
}

// SongAt converts a timestamp into song time without touching the tick state.
func (t *Timeline) SongAt(at time.Time) time.Duration {
	return at.Sub(t.songOrigin)
}

func (t *Timeline) GameOrigin() time.Time {
	return t.gameOrigin
}

func (t *Timeline) SongOrigin() time.Time {
	return t.songOrigin
}
