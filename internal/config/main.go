package config

import (
	"errors"
	"fmt"
	"time"

	"git.lost.host/meutraa/ivory/internal/game"
	"git.lost.host/meutraa/ivory/internal/session"
	"git.lost.host/meutraa/ivory/internal/store"
	"github.com/caarlos0/env/v11"
	"gopkg.in/alecthomas/kingpin.v2"
)

const Version = "0.3.0"

// Commands
const (
	Play     = "play"
	Scores   = "scores"
	Record   = "record"
	Playback = "playback"
	Replay   = "replay"
	Rename   = "rename"
)

// Config is read from IVORY_* variables first, then overridden by flags.
type Config struct {
	Songs       string        `env:"IVORY_SONGS" envDefault:"songs.json"`
	Player      string        `env:"IVORY_PLAYER" envDefault:"Anonymous"`
	Difficulty  string        `env:"IVORY_DIFFICULTY" envDefault:"beginner"`
	DB          string        `env:"IVORY_DB" envDefault:"scores.db"`
	DBDriver    string        `env:"IVORY_DB_DRIVER" envDefault:"sqlite3"`
	PreRoll     time.Duration `env:"IVORY_PRE_ROLL" envDefault:"3s"`
	Countdown   int           `env:"IVORY_COUNTDOWN" envDefault:"3"`
	FramePeriod time.Duration `env:"IVORY_FRAME_PERIOD" envDefault:"16ms"`
	Points      string        `env:"IVORY_POINTS" envDefault:"standard"`
	Completion  string        `env:"IVORY_COMPLETE" envDefault:"elapsed"`
	CellHeight  float64       `env:"IVORY_CELL_HEIGHT" envDefault:"20"`
	Log         string        `env:"IVORY_LOG" envDefault:"ivory.log"`

	Command string
	Song    int
	Limit   int
	Clear   bool
	All     bool
	Title   string
	ScoreID int64
}

// Parse builds the command line on top of the environment and parses args,
// which should not include the program name.
func Parse(args []string) (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); nil != err {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	app := kingpin.New("ivory", "A terminal piano with a guided play mode.")
	app.Version(Version)

	app.Flag("songs", "Song library").Short('f').Default(cfg.Songs).StringVar(&cfg.Songs)
	app.Flag("song", "Song index in the library").Short('s').Default("0").IntVar(&cfg.Song)
	app.Flag("difficulty", "beginner, intermediate or advanced").Short('d').Default(cfg.Difficulty).EnumVar(&cfg.Difficulty, game.Tiers...)
	app.Flag("player", "Name on the leaderboard").Short('n').Default(cfg.Player).StringVar(&cfg.Player)
	app.Flag("db", "Leaderboard database").Default(cfg.DB).StringVar(&cfg.DB)
	app.Flag("db-driver", "sqlite3 (cgo) or sqlite (pure go)").Default(cfg.DBDriver).EnumVar(&cfg.DBDriver, store.DriverCgo, store.DriverPure)
	app.Flag("pre-roll", "Falling time before the song starts").Default(cfg.PreRoll.String()).DurationVar(&cfg.PreRoll)
	app.Flag("countdown", "Countdown seconds").Default(fmt.Sprint(cfg.Countdown)).IntVar(&cfg.Countdown)
	app.Flag("frame-period", "Render frame period").Short('p').Default(cfg.FramePeriod.String()).DurationVar(&cfg.FramePeriod)
	app.Flag("points", "standard or classic points").Default(cfg.Points).EnumVar(&cfg.Points, game.StandardPoints, game.ClassicPoints)
	app.Flag("complete", "elapsed or resolved").Default(cfg.Completion).EnumVar(&cfg.Completion, session.CompleteOnElapsed, session.CompleteOnResolved)
	app.Flag("cell-height", "Pixels per terminal row").Default(fmt.Sprint(cfg.CellHeight)).Float64Var(&cfg.CellHeight)
	app.Flag("log", "Log file").Default(cfg.Log).StringVar(&cfg.Log)

	app.Command(Play, "Play a song in guided mode").Default()

	scores := app.Command(Scores, "List the leaderboard of a song")
	scores.Flag("limit", "Number of scores").Short('l').Default("10").IntVar(&cfg.Limit)
	scores.Flag("clear", "Remove every score").BoolVar(&cfg.Clear)
	scores.Flag("all", "List every difficulty").Short('a').BoolVar(&cfg.All)

	record := app.Command(Record, "Record a new song from the keyboard")
	record.Arg("title", "Title of the new song").Default("Recording").StringVar(&cfg.Title)

	app.Command(Playback, "Listen to a song")

	replay := app.Command(Replay, "Judge a stored performance again")
	replay.Arg("id", "Score id").Required().Int64Var(&cfg.ScoreID)

	rename := app.Command(Rename, "Give a song in the library a new title")
	rename.Arg("song", "Song index in the library").Required().IntVar(&cfg.Song)
	rename.Arg("title", "New title").Required().StringVar(&cfg.Title)

	app.Validate(func(*kingpin.Application) error {
		return cfg.validate()
	})

	command, err := app.Parse(args)
	if nil != err {
		return nil, err
	}
	cfg.Command = command
	return cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.FramePeriod <= 0:
		return errors.New("frame period must be positive")
	case c.PreRoll < 0:
		return errors.New("pre-roll cannot be negative")
	case c.Countdown < 0:
		return errors.New("countdown cannot be negative")
	case c.CellHeight <= 0:
		return errors.New("cell height must be positive")
	case c.Song < 0:
		return errors.New("song index cannot be negative")
	}
	return nil
}

// ScoreDifficulty is the difficulty the leaderboard is listed for, empty
// for every difficulty.
func (c *Config) ScoreDifficulty() string {
	if c.All {
		return ""
	}
	return c.Difficulty
}

// Session is the engine configuration these settings describe.
func (c *Config) Session() session.Config {
	return session.Config{
		PreRoll:    c.PreRoll,
		Countdown:  c.Countdown,
		Points:     c.Points,
		Completion: c.Completion,
		PlayerName: c.Player,
	}
}
