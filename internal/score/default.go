package score

import (
	"math"
	"sort"
	"time"

	"git.lost.host/meutraa/ivory/internal/game"
)

// Combo bonus grows by one percent per note in the combo, up to fifty.
const maxComboBonus = 50

type DefaultScorer struct{}

type InputsCompact struct {
	Pitch string
	Times []time.Duration
}

// compactInputs groups a press log by pitch, in order of first appearance.
func compactInputs(inputs []game.Input) []InputsCompact {
	ins := []InputsCompact{}
	index := map[string]int{}
	for _, i := range inputs {
		idx, ok := index[i.Pitch]
		if !ok {
			idx = len(ins)
			index[i.Pitch] = idx
			ins = append(ins, InputsCompact{Pitch: i.Pitch})
		}
		ins[idx].Times = append(ins[idx].Times, i.At)
	}
	return ins
}

// uncompactInputs restores a press log in time order.
func uncompactInputs(inputs []InputsCompact) []game.Input {
	ins := []game.Input{}
	for _, i := range inputs {
		for _, t := range i.Times {
			ins = append(ins, game.Input{Pitch: i.Pitch, At: t})
		}
	}
	sort.SliceStable(ins, func(a, b int) bool {
		return ins[a].At < ins[b].At
	})
	return ins
}

func CompactInputs(inputs []game.Input) []InputsCompact {
	return compactInputs(inputs)
}

func UncompactInputs(inputs []InputsCompact) []game.Input {
	return uncompactInputs(inputs)
}

func abs(x time.Duration) time.Duration {
	if x < 0 {
		return -x
	}
	return x
}

// Positive when the press was early
func (s *DefaultScorer) Distance(onset, at time.Duration) time.Duration {
	return onset - at
}

// Reconcile expects notes ordered by onset.
func (s *DefaultScorer) Reconcile(notes []*game.ScheduledNote, pitch string, at time.Duration) (*game.ScheduledNote, time.Duration) {
	var closestNote *game.ScheduledNote
	absDistance := time.Duration(math.MaxInt64)
	distance := time.Duration(0)

	for _, note := range notes {
		if !note.Active() || note.Pitch != pitch {
			continue
		}
		dd := s.Distance(note.Onset, at)
		d := abs(dd)
		if d < absDistance {
			distance = dd
			absDistance = d
			closestNote = note
		} else if nil != closestNote && d > absDistance {
			// already found the closest, equal onsets may still follow
			break
		}
	}

	return closestNote, distance
}

func (s *DefaultScorer) Judge(absDistance time.Duration, difficulty game.Difficulty) (game.Quality, bool) {
	switch {
	case absDistance > difficulty.HitWindow:
		return game.Miss, false
	case absDistance <= difficulty.PerfectWindow():
		return game.Perfect, true
	case absDistance <= difficulty.GoodWindow():
		return game.Good, true
	}
	return game.Ok, true
}

// Points for a hit, with the bonus of the combo held before the hit.
func (s *DefaultScorer) Points(quality game.Quality, difficulty game.Difficulty, combo int) int {
	points := difficulty.PointsPerNote
	switch quality {
	case game.Perfect:
	case game.Good:
		points = points * 4 / 5
	case game.Ok:
		points = points / 2
	default:
		return 0
	}
	bonus := combo
	if bonus > maxComboBonus {
		bonus = maxComboBonus
	}
	return points * (100 + bonus) / 100
}

// Spread returns the mean and standard deviation of the signed distance of
// every hit note.
func Spread(notes []*game.ScheduledNote) (time.Duration, time.Duration) {
	var sum float64
	var hits float64
	for _, n := range notes {
		if n.Resolution != game.Hit {
			continue
		}
		sum += float64(n.Onset - n.HitAt)
		hits++
	}
	if hits == 0 {
		return 0, 0
	}
	mean := sum / hits
	if hits < 2 {
		return time.Duration(mean), 0
	}
	stdev := 0.0
	for _, n := range notes {
		if n.Resolution != game.Hit {
			continue
		}
		xi := float64(n.Onset-n.HitAt) - mean
		stdev += xi * xi
	}
	stdev /= hits - 1
	return time.Duration(math.Round(mean)), time.Duration(math.Round(math.Sqrt(stdev)))
}
