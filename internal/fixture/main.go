package fixture

import (
	"time"

	"git.lost.host/meutraa/ivory/internal/game"
)

// Layout is a fixed field for tests: every pitch of octaves 3 and 4 gets a lane.
type Layout struct {
	Distance float64
}

func (l Layout) HitLineDistance() float64 {
	return l.Distance
}

func (l Layout) Lane(pitch string) (game.Lane, bool) {
	for i, key := range game.Keyboard(3, 4) {
		if key == pitch {
			return game.Lane{Offset: float64(i * 32), Width: 32, Black: game.IsBlack(pitch)}, true
		}
	}
	return game.Lane{}, false
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// GetSong is a short melody; onsets are deliberately out of order.
func GetSong() *game.Song {
	return &game.Song{
		ID:    0,
		Title: "Twinkle",
		Notes: []game.SongNote{
			{Pitch: "C4", Onset: seconds(0), Duration: seconds(0.5)},
			{Pitch: "C4", Onset: seconds(0.5), Duration: seconds(0.5)},
			{Pitch: "G4", Onset: seconds(1.5), Duration: seconds(0.5)},
			{Pitch: "G4", Onset: seconds(1), Duration: seconds(0.5)},
			{Pitch: "A4", Onset: seconds(2), Duration: seconds(0.5)},
			{Pitch: "A4", Onset: seconds(2.5), Duration: seconds(0.5)},
			{Pitch: "G4", Onset: seconds(3), Duration: seconds(1)},
		},
	}
}

// GetSingleNoteSong has one C4 at the given onset.
func GetSingleNoteSong(onset time.Duration) *game.Song {
	return &game.Song{
		ID:    7,
		Title: "Single",
		Notes: []game.SongNote{{Pitch: "C4", Onset: onset, Duration: game.DefaultNoteDuration}},
	}
}

// Library is the JSON form of a two song library as the song file stores it.
const Library = `[
  {
    "title": "Twinkle",
    "notes": [
      {"note": "C4", "timestamp": 0, "duration": 0.5},
      {"note": "C4", "timestamp": 0.5},
      {"note": "G4", "time": 1.0, "duration": 0.5}
    ]
  },
  {
    "title": "Empty",
    "notes": []
  }
]`
