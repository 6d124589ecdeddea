package session

import (
	"time"

	"git.lost.host/meutraa/ivory/internal/game"
	"git.lost.host/meutraa/ivory/internal/score"
)

func (e *Engine) complete(now time.Time) {
	accuracy := e.stats.Accuracy()
	result := &game.Result{
		PlayerName: e.cfg.PlayerName,
		SongID:     e.song.ID,
		SongTitle:  e.song.Title,
		Difficulty: e.difficulty.Name,
		Points:     e.cfg.Points,
		Score:      e.stats.Score,
		Accuracy:   accuracy,
		MaxCombo:   e.stats.MaxCombo,
		Hits:       e.stats.Hits,
		Misses:     e.stats.Misses,
		TotalNotes: e.stats.TotalNotes,
		Grade:      score.Grade(accuracy),
		Date:       now,
		Inputs:     append([]game.Input(nil), e.inputs...),
	}
	e.result = result
	e.setStatus(game.Complete)

	if result.Score > 0 && nil != e.results {
		id, err := e.results.Submit(e.ctx, *result)
		if nil != err {
			e.logger.Println("unable to save score", err)
		} else {
			e.logger.Printf("saved score %v as %v\n", result.Score, id)
		}
	}

	e.events.Notify(game.Event{Kind: game.SessionComplete, Result: result, Status: game.Complete})
}
