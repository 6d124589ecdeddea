package recording

import (
	"context"
	"errors"
	"sort"
	"time"

	"git.lost.host/meutraa/ivory/internal/clock"
	"git.lost.host/meutraa/ivory/internal/game"
	"git.lost.host/meutraa/ivory/internal/session"
)

const PlaybackVolume = 1.0

// ToneSink is an audio sink that can hold a note for its duration.
type ToneSink interface {
	PlayTone(pitch string, volume float64, duration time.Duration, bypassGate bool)
}

// Player sounds a song's notes at their onsets.
type Player struct {
	Audio session.AudioSink

	notes []game.SongNote
	start time.Time
	next  int
}

func NewPlayer(audio session.AudioSink, song *game.Song) *Player {
	notes := append([]game.SongNote(nil), song.Notes...)
	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].Onset < notes[j].Onset
	})
	return &Player{Audio: audio, notes: notes}
}

func (p *Player) Start(now time.Time) {
	p.start = now
	p.next = 0
}

// Step plays every note that is due by now and reports whether any are left.
func (p *Player) Step(now time.Time) bool {
	elapsed := now.Sub(p.start)
	tones, held := p.Audio.(ToneSink)
	for ; p.next < len(p.notes) && p.notes[p.next].Onset <= elapsed; p.next++ {
		note := p.notes[p.next]
		if held {
			tones.PlayTone(note.Pitch, PlaybackVolume, note.Duration, false)
		} else {
			p.Audio.PlayNote(note.Pitch, PlaybackVolume, false)
		}
	}
	return p.next < len(p.notes)
}

// Play blocks until the song is over or ctx is done.
func (p *Player) Play(ctx context.Context, driver *clock.Driver) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := false
	p.Start(driver.Clock.Now())
	err := driver.Run(ctx, func(now time.Time) bool {
		if !p.Step(now) {
			done = true
			cancel()
		}
		return true
	})
	if done && errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
