package schedule

import (
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"sort"
	"time"

	"git.lost.host/meutraa/ivory/internal/game"
)

// FallbackDistance is used when the layout cannot tell where the hit line is.
const FallbackDistance = 500.0

var ErrNoPlayableNotes = errors.New("no playable notes")

// Layout tells the builder how the note field is laid out.
type Layout interface {
	// HitLineDistance is the distance in pixels from the spawn point to the hit line.
	HitLineDistance() float64
	// Lane returns where notes of the pitch fall, false when the pitch has no key.
	Lane(pitch string) (game.Lane, bool)
}

type Builder struct {
	Layout   Layout
	Logger   *log.Logger
	Fallback float64
}

func NewBuilder(layout Layout, logger *log.Logger) *Builder {
	if nil == logger {
		logger = log.New(io.Discard, "", 0)
	}
	return &Builder{
		Layout:   layout,
		Logger:   logger,
		Fallback: FallbackDistance,
	}
}

// Distance returns the spawn to hit line distance, recovering from a bad layout.
func (b *Builder) Distance() float64 {
	d := b.Layout.HitLineDistance()
	if math.IsNaN(d) || math.IsInf(d, 0) || d <= 0 {
		b.Logger.Printf("invalid hit line distance %v, using fallback %v\n", d, b.Fallback)
		return b.Fallback
	}
	return d
}

// TravelTime is how long a note takes to fall the distance.
func TravelTime(distance, fallSpeed float64) time.Duration {
	return time.Duration(math.Round(distance / fallSpeed * float64(time.Second)))
}

// Height is the drawn length of a note.
func Height(duration time.Duration, fallSpeed float64) float64 {
	return math.Max(game.MinNoteHeight, duration.Seconds()*fallSpeed)
}

// Build turns the notes of a song into spawn ready notes ordered by onset.
// Notes whose pitch has no lane are dropped.
func (b *Builder) Build(song *game.Song, difficulty game.Difficulty) ([]*game.ScheduledNote, error) {
	if difficulty.FallSpeed <= 0 {
		return nil, fmt.Errorf("fall speed %v: %w", difficulty.FallSpeed, game.ErrUnknownDifficulty)
	}
	travel := TravelTime(b.Distance(), difficulty.FallSpeed)

	notes := make([]*game.ScheduledNote, 0, len(song.Notes))
	for i, n := range song.Notes {
		lane, ok := b.Layout.Lane(n.Pitch)
		if !ok {
			b.Logger.Printf("no key for note %v at %v, dropping it\n", n.Pitch, n.Onset)
			continue
		}
		duration := n.Duration
		if duration <= 0 {
			duration = game.DefaultNoteDuration
		}
		notes = append(notes, &game.ScheduledNote{
			ID:         fmt.Sprintf("note-%d", i),
			Pitch:      n.Pitch,
			Onset:      n.Onset,
			Duration:   duration,
			Lane:       lane,
			Height:     Height(duration, difficulty.FallSpeed),
			FallSpeed:  difficulty.FallSpeed,
			TravelTime: travel,
		})
	}

	if len(notes) == 0 {
		return nil, ErrNoPlayableNotes
	}

	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].Onset < notes[j].Onset
	})

	b.Logger.Printf("scheduled %v of %v notes, travel time %v\n", len(notes), len(song.Notes), travel)
	return notes, nil
}

// Retune applies a new difficulty to the notes that have not spawned yet.
// Notes already on the field keep falling the way they started.
func (b *Builder) Retune(notes []*game.ScheduledNote, difficulty game.Difficulty) int {
	travel := TravelTime(b.Distance(), difficulty.FallSpeed)
	count := 0
	for _, n := range notes {
		if n.Spawned {
			continue
		}
		n.FallSpeed = difficulty.FallSpeed
		n.TravelTime = travel
		n.Height = Height(n.Duration, difficulty.FallSpeed)
		count++
	}
	return count
}
