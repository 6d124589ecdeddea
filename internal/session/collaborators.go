package session

import (
	"context"

	"git.lost.host/meutraa/ivory/internal/game"
)

// AudioSink plays notes. Calls must not block the frame loop.
type AudioSink interface {
	PlayNote(pitch string, volume float64, bypassGate bool)
}

// EventSink receives notifications for presentation.
type EventSink interface {
	Notify(ev game.Event)
}

// ResultSink keeps finished sessions, usually a leaderboard.
type ResultSink interface {
	Submit(ctx context.Context, result game.Result) (int64, error)
}

type discard struct{}

func (discard) PlayNote(string, float64, bool) {}

func (discard) Notify(game.Event) {}

// EventFunc adapts a function to an EventSink.
type EventFunc func(ev game.Event)

func (f EventFunc) Notify(ev game.Event) {
	f(ev)
}

// Events fans a notification out to several sinks.
type Events []EventSink

func (e Events) Notify(ev game.Event) {
	for _, s := range e {
		s.Notify(ev)
	}
}
