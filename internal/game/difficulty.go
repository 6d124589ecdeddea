package game

import (
	"errors"
	"time"
)

var ErrUnknownDifficulty = errors.New("unknown difficulty")

// Difficulty is a fixed tuning of fall speed, timing leniency and reward.
type Difficulty struct {
	Name          string
	FallSpeed     float64       // pixels per second
	HitWindow     time.Duration // max |onset - press| that still counts
	PointsPerNote int
}

const (
	Beginner     = "beginner"
	Intermediate = "intermediate"
	Advanced     = "advanced"
)

// Points schemes select between the two reward tables the game has shipped with.
const (
	StandardPoints = "standard"
	ClassicPoints  = "classic"
)

var Tiers = []string{Beginner, Intermediate, Advanced}

var difficulties = map[string]map[string]Difficulty{
	StandardPoints: {
		Beginner:     {Name: Beginner, FallSpeed: 180, HitWindow: 250 * time.Millisecond, PointsPerNote: 100},
		Intermediate: {Name: Intermediate, FallSpeed: 250, HitWindow: 180 * time.Millisecond, PointsPerNote: 300},
		Advanced:     {Name: Advanced, FallSpeed: 320, HitWindow: 120 * time.Millisecond, PointsPerNote: 500},
	},
	ClassicPoints: {
		Beginner:     {Name: Beginner, FallSpeed: 180, HitWindow: 250 * time.Millisecond, PointsPerNote: 100},
		Intermediate: {Name: Intermediate, FallSpeed: 250, HitWindow: 180 * time.Millisecond, PointsPerNote: 150},
		Advanced:     {Name: Advanced, FallSpeed: 320, HitWindow: 120 * time.Millisecond, PointsPerNote: 200},
	},
}

// LookupDifficulty returns the profile for a tier in the given points scheme.
// An empty scheme means StandardPoints.
func LookupDifficulty(scheme, name string) (Difficulty, error) {
	if scheme == "" {
		scheme = StandardPoints
	}
	table, ok := difficulties[scheme]
	if !ok {
		return Difficulty{}, ErrUnknownDifficulty
	}
	d, ok := table[name]
	if !ok {
		return Difficulty{}, ErrUnknownDifficulty
	}
	return d, nil
}

// PerfectWindow is the upper bound of a perfect hit, a third of the hit window.
func (d Difficulty) PerfectWindow() time.Duration {
	return d.HitWindow / 3
}

// GoodWindow is the upper bound of a good hit, two thirds of the hit window.
func (d Difficulty) GoodWindow() time.Duration {
	return d.HitWindow * 2 / 3
}
