package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"git.lost.host/meutraa/ivory/internal/audio"
	"git.lost.host/meutraa/ivory/internal/clock"
	"git.lost.host/meutraa/ivory/internal/config"
	"git.lost.host/meutraa/ivory/internal/game"
	"git.lost.host/meutraa/ivory/internal/input"
	"git.lost.host/meutraa/ivory/internal/parser"
	"git.lost.host/meutraa/ivory/internal/recording"
	"git.lost.host/meutraa/ivory/internal/render"
	"git.lost.host/meutraa/ivory/internal/session"
	"git.lost.host/meutraa/ivory/internal/store"
	"git.lost.host/meutraa/ivory/internal/theme"
	"github.com/eiannone/keyboard"
)

// Replays are judged on a fixed field; judging does not depend on its size
const (
	replayColumns = 120
	replayRows    = 40
)

type Program struct {
	Config *config.Config
	Logger *log.Logger

	Parser *parser.DefaultParser
	Theme  *theme.DefaultTheme
	Clock  clock.Clock
}

func (p *Program) Init() {
	// Ensure our Default implementations are used as interfaces
	var _ parser.Parser = &parser.DefaultParser{}
	var _ parser.Writer = &parser.DefaultParser{}
	var _ theme.Theme = &theme.DefaultTheme{}
	var _ session.ResultSink = &store.Store{}
	var _ session.AudioSink = &audio.Synth{}
	var _ session.EventSink = &render.View{}
	var _ recording.ToneSink = &audio.Synth{}

	if nil == p.Logger {
		p.Logger = log.New(io.Discard, "", 0)
	}
	p.Parser = &parser.DefaultParser{Logger: p.Logger}
	p.Theme = &theme.DefaultTheme{}
	if nil == p.Clock {
		p.Clock = clock.Wall{}
	}
}

func (p *Program) song(index int) (*game.Song, error) {
	songs, err := p.Parser.Parse(p.Config.Songs)
	if nil != err {
		return nil, err
	}
	if index < 0 || index >= len(songs) {
		return nil, fmt.Errorf("song %v not found, %v has %v songs", index, p.Config.Songs, len(songs))
	}
	return songs[index], nil
}

func (p *Program) synth(guided bool) *audio.Synth {
	synth := audio.NewSynth(p.Logger)
	if err := synth.Init(); nil != err {
		p.Logger.Println("playing without audio:", err)
	}
	synth.SetGuided(guided)
	return synth
}

func (p *Program) Play(ctx context.Context) error {
	song, err := p.song(p.Config.Song)
	if nil != err {
		return err
	}

	db, err := store.Open(p.Config.DBDriver, p.Config.DB)
	if nil != err {
		return err
	}
	defer db.Close()

	layout, err := render.TerminalLayout(p.Config.CellHeight)
	if nil != err {
		return err
	}

	synth := p.synth(true)
	defer synth.Close()

	renderer := &render.DefaultRenderer{}
	view := &render.View{Renderer: renderer, Theme: p.Theme, Layout: layout}

	engine, err := session.New(p.Config.Session(), session.Deps{
		Context: ctx,
		Layout:  layout,
		Audio:   synth,
		Events:  view,
		Results: db,
		Logger:  p.Logger,
	})
	if nil != err {
		return err
	}
	if err := engine.SetDifficulty(p.Config.Difficulty); nil != err {
		return err
	}
	if err := engine.Select(song); nil != err {
		return err
	}

	keys, err := input.Open(128, p.Logger)
	if nil != err {
		return err
	}
	defer keys.Close()

	if err := renderer.Init(); nil != err {
		return err
	}
	defer func() {
		// Restore the terminal state
		renderer.Deinit()
	}()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	driver := clock.NewDriver(p.Config.FramePeriod, p.Clock)

	keymap := &input.KeyMap{Locked: true}
	go keys.Pump(ctx, func(ev keyboard.KeyEvent) bool {
		cmd, action := keymap.Translate(ev, p.Clock.Now())
		switch action {
		case input.Quit:
			cancel()
			return false
		case input.Submit:
			engine.Submit(cmd)
			driver.Wake()
		}
		return true
	})

	err = driver.Run(ctx, func(now time.Time) bool {
		snap := engine.Tick(now)
		// Stopping forgets the song; keep it armed for the next start
		if snap.Status == game.Idle {
			if err := engine.Select(song); nil == err {
				snap = engine.Snapshot()
			}
		}
		if err := view.Draw(snap); nil != err {
			p.Logger.Println("unable to draw frame", err)
		}
		return engine.Ticking()
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (p *Program) Scores(ctx context.Context, w io.Writer) error {
	db, err := store.Open(p.Config.DBDriver, p.Config.DB)
	if nil != err {
		return err
	}
	defer db.Close()

	if p.Config.Clear {
		if err := db.Clear(ctx); nil != err {
			return err
		}
		fmt.Fprintln(w, "Leaderboard cleared")
		return nil
	}

	entries, err := db.TopScores(ctx, p.Config.Song, p.Config.ScoreDifficulty(), p.Config.Limit)
	if nil != err {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(w, "No scores yet")
		return nil
	}
	for i, e := range entries {
		fmt.Fprintf(w, "%2v) %-16v %-12v %7v  %3v%%  %-2v  combo %3v  %v  #%v\n",
			i+1, e.PlayerName, e.Difficulty, e.Score, e.Accuracy, e.Grade, e.MaxCombo,
			e.Date.Local().Format("2006-01-02 15:04"), e.ID)
	}
	return nil
}

func (p *Program) Record(ctx context.Context, w io.Writer) error {
	synth := p.synth(false)
	defer synth.Close()

	keys, err := input.Open(128, p.Logger)
	if nil != err {
		return err
	}
	defer keys.Close()

	recorder := &recording.Recorder{}
	keymap := &input.KeyMap{}
	fmt.Fprint(w, "Recording, play with z-m and q-u, shift octaves with , and . and save with Esc\r\n")
	recorder.Start(p.Clock.Now())

	err = keys.Pump(ctx, func(ev keyboard.KeyEvent) bool {
		now := p.Clock.Now()
		switch _, action := keymap.Translate(ev, now); action {
		case input.Quit:
			return false
		case input.Shifted:
			fmt.Fprintf(w, "Octave %+d\r\n", keymap.Octave)
			return true
		}
		if pitch, ok := keymap.Pitch(ev.Rune); ok {
			synth.PlayNote(pitch, 1, false)
			recorder.Record(pitch, now)
		}
		return true
	})
	notes := recorder.Stop()
	if nil != err && !errors.Is(err, context.Canceled) {
		return err
	}
	if len(notes) == 0 {
		fmt.Fprint(w, "Nothing recorded\r\n")
		return nil
	}

	index, err := p.Parser.Append(p.Config.Songs, p.Config.Title, notes)
	if nil != err {
		return err
	}
	p.Logger.Printf("recorded %v notes as song %v\n", len(notes), index)
	fmt.Fprintf(w, "Saved %v notes as song %v\r\n", len(notes), index)
	return nil
}

func (p *Program) Rename(w io.Writer) error {
	if err := p.Parser.Rename(p.Config.Songs, p.Config.Song, p.Config.Title); nil != err {
		return err
	}
	p.Logger.Printf("renamed song %v to %q\n", p.Config.Song, p.Config.Title)
	fmt.Fprintf(w, "Song %v is now %v\n", p.Config.Song, p.Config.Title)
	return nil
}

func (p *Program) Playback(ctx context.Context) error {
	song, err := p.song(p.Config.Song)
	if nil != err {
		return err
	}
	synth := p.synth(false)
	defer synth.Close()

	player := recording.NewPlayer(synth, song)
	err = player.Play(ctx, clock.NewDriver(p.Config.FramePeriod, p.Clock))
	if errors.Is(err, context.Canceled) {
		return nil
	}
	if nil == err {
		// Let the last note ring out
		time.Sleep(audio.NoteLength)
	}
	return err
}

func (p *Program) Replay(ctx context.Context, w io.Writer) error {
	db, err := store.Open(p.Config.DBDriver, p.Config.DB)
	if nil != err {
		return err
	}
	defer db.Close()

	entry, err := db.Get(ctx, p.Config.ScoreID)
	if nil != err {
		return err
	}
	song, err := p.song(entry.SongID)
	if nil != err {
		return err
	}

	cfg := p.Config.Session()
	cfg.Points = entry.Points
	layout := render.NewLayout(replayColumns, replayRows, p.Config.CellHeight)
	result, err := session.Replay(cfg, layout, song, entry.Difficulty, entry.Inputs, p.Config.FramePeriod)
	if nil != err {
		return err
	}

	fmt.Fprintf(w, "%v on %v (%v) by %v\n", song.Title, entry.Difficulty, entry.Date.Local().Format("2006-01-02 15:04"), entry.PlayerName)
	fmt.Fprintf(w, "  stored:   %7v  %3v%%  %-2v  %v hits  %v misses\n", entry.Score, entry.Accuracy, entry.Grade, entry.Hits, entry.Misses)
	fmt.Fprintf(w, "  replayed: %7v  %3v%%  %-2v  %v hits  %v misses\n", result.Score, result.Accuracy, result.Grade, result.Hits, result.Misses)
	return nil
}
