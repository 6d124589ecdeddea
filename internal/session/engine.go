package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"git.lost.host/meutraa/ivory/internal/clock"
	"git.lost.host/meutraa/ivory/internal/game"
	"git.lost.host/meutraa/ivory/internal/lifecycle"
	"git.lost.host/meutraa/ivory/internal/schedule"
	"git.lost.host/meutraa/ivory/internal/score"
)

var (
	ErrNoSong            = errors.New("no song selected")
	ErrInvalidTransition = errors.New("invalid transition")
)

// Completion rules
const (
	// The song is over once its length has elapsed, unresolved notes or not.
	CompleteOnElapsed = "elapsed"
	// The song is over once its length has elapsed and every note is resolved.
	CompleteOnResolved = "resolved"
)

const DefaultPlayerName = "Anonymous"

type Config struct {
	PreRoll    time.Duration
	Countdown  int // seconds
	Points     string
	Completion string
	PlayerName string
}

func DefaultConfig() Config {
	return Config{
		PreRoll:    3 * time.Second,
		Countdown:  3,
		Points:     game.StandardPoints,
		Completion: CompleteOnElapsed,
		PlayerName: DefaultPlayerName,
	}
}

type Deps struct {
	Context context.Context
	Layout  schedule.Layout
	Scorer  score.Scorer
	Audio   AudioSink
	Events  EventSink
	Results ResultSink
	Logger  *log.Logger
}

// Engine runs one guided play session at a time. Apart from Submit, it must
// only be used from the goroutine driving Tick.
type Engine struct {
	cfg     Config
	ctx     context.Context
	builder *schedule.Builder
	scorer  score.Scorer
	audio   AudioSink
	events  EventSink
	results ResultSink
	logger  *log.Logger
	queue   Queue

	status     game.Status
	song       *game.Song
	difficulty game.Difficulty

	notes          *lifecycle.Manager
	timeline       clock.Timeline
	countdownStart time.Time
	countdown      int
	frame          clock.Frame

	stats  score.Stats
	inputs []game.Input
	result *game.Result
}

func New(cfg Config, deps Deps) (*Engine, error) {
	if nil == deps.Layout {
		return nil, errors.New("a layout is required")
	}
	difficulty, err := game.LookupDifficulty(cfg.Points, game.Beginner)
	if nil != err {
		return nil, fmt.Errorf("points scheme %q: %w", cfg.Points, err)
	}
	if cfg.Points == "" {
		cfg.Points = game.StandardPoints
	}
	if cfg.Completion == "" {
		cfg.Completion = CompleteOnElapsed
	}
	if cfg.Completion != CompleteOnElapsed && cfg.Completion != CompleteOnResolved {
		return nil, fmt.Errorf("unknown completion rule %q", cfg.Completion)
	}
	if cfg.PlayerName == "" {
		cfg.PlayerName = DefaultPlayerName
	}

	e := &Engine{
		cfg:        cfg,
		ctx:        deps.Context,
		scorer:     deps.Scorer,
		audio:      deps.Audio,
		events:     deps.Events,
		results:    deps.Results,
		logger:     deps.Logger,
		difficulty: difficulty,
	}
	if nil == e.ctx {
		e.ctx = context.Background()
	}
	if nil == e.logger {
		e.logger = log.New(io.Discard, "", 0)
	}
	if nil == e.scorer {
		e.scorer = &score.DefaultScorer{}
	}
	if nil == e.audio {
		e.audio = discard{}
	}
	if nil == e.events {
		e.events = discard{}
	}
	e.builder = schedule.NewBuilder(deps.Layout, e.logger)
	e.timeline.PreRoll = cfg.PreRoll
	return e, nil
}

func (e *Engine) Status() game.Status {
	return e.status
}

func (e *Engine) Difficulty() game.Difficulty {
	return e.difficulty
}

func (e *Engine) Song() *game.Song {
	return e.song
}

func (e *Engine) Stats() score.Stats {
	return e.stats
}

// Notes are the scheduled notes of the current session, ordered by onset.
func (e *Engine) Notes() []*game.ScheduledNote {
	if nil == e.notes {
		return nil
	}
	return e.notes.Notes()
}

// Inputs is the press log of the current session.
func (e *Engine) Inputs() []game.Input {
	return e.inputs
}

// Result is set once the session is complete.
func (e *Engine) Result() *game.Result {
	return e.result
}

// Ticking reports whether the session needs frames. While it does not, the
// frame loop can be suspended until the next command.
func (e *Engine) Ticking() bool {
	return e.status == game.Countdown || e.status == game.Running
}

func (e *Engine) setStatus(s game.Status) {
	if e.status == s {
		return
	}
	e.logger.Printf("session %v -> %v\n", e.status, s)
	e.status = s
	e.events.Notify(game.Event{Kind: game.StatusChanged, Status: s})
}

// Select arms a song.
func (e *Engine) Select(song *game.Song) error {
	switch e.status {
	case game.Countdown, game.Running, game.Paused:
		return fmt.Errorf("select while %v: %w", e.status, ErrInvalidTransition)
	}
	if nil == song {
		return ErrNoSong
	}
	e.song = song
	e.result = nil
	e.setStatus(game.Armed)
	return nil
}

// SetDifficulty is allowed at any time. During a session the new profile
// applies to notes that have not spawned yet and to all later judging.
func (e *Engine) SetDifficulty(name string) error {
	d, err := game.LookupDifficulty(e.cfg.Points, name)
	if nil != err {
		return fmt.Errorf("difficulty %q: %w", name, err)
	}
	e.logger.Printf("difficulty %v -> %v\n", e.difficulty.Name, d.Name)
	e.difficulty = d
	if nil != e.notes {
		n := e.builder.Retune(e.notes.Notes(), d)
		e.logger.Printf("retuned %v notes not yet spawned\n", n)
	}
	return nil
}

// Start builds the note schedule and begins the countdown.
func (e *Engine) Start(now time.Time) error {
	switch e.status {
	case game.Countdown, game.Running, game.Paused:
		return fmt.Errorf("start while %v: %w", e.status, ErrInvalidTransition)
	}
	if nil == e.song {
		return ErrNoSong
	}

	notes, err := e.builder.Build(e.song, e.difficulty)
	if nil != err {
		return fmt.Errorf("unable to schedule %q: %w", e.song.Title, err)
	}

	e.notes = lifecycle.NewManager(notes)
	e.stats = score.Stats{TotalNotes: len(notes)}
	e.inputs = nil
	e.result = nil
	e.frame = clock.Frame{}
	e.timeline.Reset()

	e.countdownStart = now
	e.countdown = e.cfg.Countdown
	e.setStatus(game.Countdown)
	if e.countdown > 0 {
		e.events.Notify(game.Event{Kind: game.CountdownTick, Count: e.countdown})
		return nil
	}
	e.begin(now)
	return nil
}

func (e *Engine) begin(now time.Time) {
	e.timeline.Start(now)
	e.frame = clock.Frame{Now: now, Song: -e.cfg.PreRoll}
	e.setStatus(game.Running)
}

func (e *Engine) Pause(now time.Time) error {
	if e.status != game.Running {
		return fmt.Errorf("pause while %v: %w", e.status, ErrInvalidTransition)
	}
	e.setStatus(game.Paused)
	return nil
}

// Resume continues a paused session. The song origin is not moved, so the
// time spent paused is lost from the song.
func (e *Engine) Resume(now time.Time) error {
	if e.status != game.Paused {
		return fmt.Errorf("resume while %v: %w", e.status, ErrInvalidTransition)
	}
	e.timeline.Resync(now)
	e.setStatus(game.Running)
	return nil
}

// Stop tears the session down to idle, discarding the song and all notes.
func (e *Engine) Stop() error {
	if e.status == game.Idle {
		return fmt.Errorf("stop while idle: %w", ErrInvalidTransition)
	}
	e.notes = nil
	e.song = nil
	e.stats = score.Stats{}
	e.inputs = nil
	e.result = nil
	e.frame = clock.Frame{}
	e.timeline.Reset()
	e.setStatus(game.Idle)
	return nil
}

// Restart stops and starts again with the same song and difficulty.
func (e *Engine) Restart(now time.Time) error {
	song := e.song
	if nil == song {
		return ErrNoSong
	}
	if e.status != game.Idle {
		if err := e.Stop(); nil != err {
			return err
		}
	}
	if err := e.Select(song); nil != err {
		return err
	}
	return e.Start(now)
}

// Press judges a key press that happened at the given time.
func (e *Engine) Press(pitch string, at time.Time) {
	if e.status != game.Running {
		return
	}
	songElapsed := e.timeline.SongAt(at)
	e.inputs = append(e.inputs, game.Input{Pitch: pitch, At: songElapsed})

	// Nothing can be judged before the song starts
	if songElapsed < 0 {
		e.freePress(pitch)
		return
	}

	note, distance := e.scorer.Reconcile(e.notes.Notes(), pitch, songElapsed)
	if nil == note {
		e.freePress(pitch)
		return
	}
	quality, ok := e.scorer.Judge(abs(distance), e.difficulty)
	if !ok {
		e.freePress(pitch)
		return
	}

	points := e.scorer.Points(quality, e.difficulty, e.stats.Combo)
	note.Resolution = game.Hit
	note.Quality = quality
	note.HitAt = songElapsed
	e.stats.Hit(points)

	e.audio.PlayNote(note.Pitch, quality.Volume(), true)
	e.events.Notify(game.Event{
		Kind:     game.NoteHit,
		Note:     note,
		Pitch:    note.Pitch,
		Quality:  quality,
		Points:   points,
		Distance: distance,
	})
}

func (e *Engine) freePress(pitch string) {
	e.audio.PlayNote(pitch, game.FreePressVolume, true)
	e.events.Notify(game.Event{Kind: game.FreePress, Pitch: pitch})
}

// Submit queues a command for the next Tick. Safe for concurrent use.
func (e *Engine) Submit(cmd Command) {
	e.queue.Push(cmd)
}

func (e *Engine) apply(cmd Command) {
	var err error
	switch cmd.Kind {
	case PressKey:
		e.Press(cmd.Pitch, cmd.At)
	case StartGame:
		err = e.Start(cmd.At)
	case PauseGame:
		err = e.Pause(cmd.At)
	case ResumeGame:
		err = e.Resume(cmd.At)
	case TogglePause:
		if e.status == game.Paused {
			err = e.Resume(cmd.At)
		} else {
			err = e.Pause(cmd.At)
		}
	case StopGame:
		err = e.Stop()
	case RestartGame:
		err = e.Restart(cmd.At)
	case ChangeDifficulty:
		err = e.SetDifficulty(cmd.Difficulty)
	}
	if nil != err {
		e.logger.Println("command ignored:", err)
	}
}

// Tick runs one frame: queued commands first, then falling, spawning, misses
// and the end of the song.
func (e *Engine) Tick(now time.Time) Snapshot {
	for _, cmd := range e.queue.Consume() {
		e.apply(cmd)
	}

	switch e.status {
	case game.Countdown:
		e.tickCountdown(now)
	case game.Running:
		e.tickRunning(now)
	}
	return e.Snapshot()
}

func (e *Engine) tickCountdown(now time.Time) {
	elapsed := now.Sub(e.countdownStart)
	if elapsed >= time.Duration(e.cfg.Countdown)*time.Second {
		e.countdown = 0
		e.begin(now)
		return
	}
	remaining := e.cfg.Countdown - int(elapsed/time.Second)
	if remaining != e.countdown {
		e.countdown = remaining
		e.events.Notify(game.Event{Kind: game.CountdownTick, Count: remaining})
	}
}

func (e *Engine) tickRunning(now time.Time) {
	if nil == e.song || nil == e.notes {
		e.logger.Println("frame loop running without a song, stopping")
		e.Stop()
		return
	}

	e.frame = e.timeline.Frame(now)

	// Notes spawned this frame start at the top
	e.notes.Advance(e.frame.Delta)
	for _, note := range e.notes.Spawn(e.frame.Game, e.cfg.PreRoll) {
		e.events.Notify(game.Event{Kind: game.NoteSpawned, Note: note, Pitch: note.Pitch})
	}

	// Notes cannot be missed before the song starts
	if e.frame.Song >= 0 {
		for _, note := range e.notes.DetectMisses(e.frame.Song, e.difficulty.HitWindow) {
			e.stats.Miss()
			e.events.Notify(game.Event{Kind: game.NoteMissed, Note: note, Pitch: note.Pitch, Quality: game.Miss})
		}
	}

	if e.frame.Song >= e.song.Length() {
		if e.cfg.Completion == CompleteOnElapsed || e.notes.AllResolved() {
			e.complete(now)
		}
	}
}

func abs(x time.Duration) time.Duration {
	if x < 0 {
		return -x
	}
	return x
}
