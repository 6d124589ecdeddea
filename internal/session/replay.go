package session

import (
	"errors"
	"time"

	"git.lost.host/meutraa/ivory/internal/game"
	"git.lost.host/meutraa/ivory/internal/schedule"
)

var replayEpoch = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

// Replay runs a recorded press log through a fresh engine, one frame per
// period, and returns the result it produces. Difficulty changes made during
// the original session are not part of the log.
func Replay(cfg Config, layout schedule.Layout, song *game.Song, difficulty string, inputs []game.Input, period time.Duration) (*game.Result, error) {
	if period <= 0 {
		period = time.Second / 60
	}
	cfg.Countdown = 0

	e, err := New(cfg, Deps{Layout: layout})
	if nil != err {
		return nil, err
	}
	if err := e.SetDifficulty(difficulty); nil != err {
		return nil, err
	}
	if err := e.Select(song); nil != err {
		return nil, err
	}
	if err := e.Start(replayEpoch); nil != err {
		return nil, err
	}

	origin := e.timeline.SongOrigin()
	frames := int((cfg.PreRoll+song.Length()+e.difficulty.HitWindow)/period) + 2
	next := 0
	now := replayEpoch
	for i := 0; i < frames && e.status == game.Running; i++ {
		for next < len(inputs) && !origin.Add(inputs[next].At).After(now) {
			e.Press(inputs[next].Pitch, origin.Add(inputs[next].At))
			next++
		}
		e.Tick(now)
		now = now.Add(period)
	}

	if nil == e.result {
		return nil, errors.New("replay did not complete")
	}
	return e.result, nil
}
