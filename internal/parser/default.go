package parser

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"strings"
	"time"

	"git.lost.host/meutraa/ivory/internal/game"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

var (
	ErrInvalidLibrary = errors.New("song library must be a json array")
	ErrNoSuchSong     = errors.New("no such song")
)

// DefaultParser reads a song library:
//
//	[{"title": "...", "notes": [{"note": "C4", "timestamp": 0.5, "duration": 0.5}]}]
//
// Onsets may also be given as "time". Times are in seconds.
type DefaultParser struct {
	Logger *log.Logger
}

func (p *DefaultParser) logger() *log.Logger {
	if nil == p.Logger {
		p.Logger = log.New(io.Discard, "", 0)
	}
	return p.Logger
}

func seconds(s float64) time.Duration {
	return time.Duration(math.Round(s * float64(time.Second)))
}

func (p *DefaultParser) parseNote(v gjson.Result) (game.SongNote, bool) {
	name := strings.TrimSpace(v.Get("note").String())
	midi, ok := game.ParsePitch(name)
	if !ok || midi < 0 {
		p.logger().Printf("skipping note with pitch %q\n", name)
		return game.SongNote{}, false
	}
	pitch := game.PitchName(midi)

	onset := v.Get("timestamp")
	if !onset.Exists() {
		onset = v.Get("time")
	}
	if !onset.Exists() || onset.Float() < 0 {
		p.logger().Printf("skipping %v without a valid onset\n", pitch)
		return game.SongNote{}, false
	}

	duration := game.DefaultNoteDuration
	if d := v.Get("duration"); d.Exists() && d.Float() > 0 {
		duration = seconds(d.Float())
	}

	return game.SongNote{
		Pitch:    pitch,
		Onset:    seconds(onset.Float()),
		Duration: duration,
	}, true
}

// ParseBytes decodes a library. A song's ID is its index in the library.
func (p *DefaultParser) ParseBytes(data []byte) ([]*game.Song, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: invalid json", ErrInvalidLibrary)
	}
	root := gjson.ParseBytes(data)
	if !root.IsArray() {
		return nil, ErrInvalidLibrary
	}

	songs := []*game.Song{}
	root.ForEach(func(_, v gjson.Result) bool {
		id := len(songs)
		song := &game.Song{
			ID:    id,
			Title: strings.TrimSpace(v.Get("title").String()),
			Notes: []game.SongNote{},
		}
		if song.Title == "" {
			song.Title = fmt.Sprintf("Song %v", id+1)
		}
		v.Get("notes").ForEach(func(_, n gjson.Result) bool {
			if note, ok := p.parseNote(n); ok {
				song.Notes = append(song.Notes, note)
			}
			return true
		})
		songs = append(songs, song)
		return true
	})
	return songs, nil
}

func (p *DefaultParser) Parse(file string) ([]*game.Song, error) {
	data, err := os.ReadFile(file)
	if nil != err {
		return nil, err
	}
	songs, err := p.ParseBytes(data)
	if nil != err {
		return nil, fmt.Errorf("%v: %w", file, err)
	}
	return songs, nil
}

type noteJSON struct {
	Note      string  `json:"note"`
	Timestamp float64 `json:"timestamp"`
	Duration  float64 `json:"duration"`
}

type songJSON struct {
	Title string     `json:"title"`
	Notes []noteJSON `json:"notes"`
}

// AppendBytes adds a song to the end of a library and returns the new
// library and the song's index. Empty data is an empty library.
func (p *DefaultParser) AppendBytes(data []byte, title string, notes []game.SongNote) ([]byte, int, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		data = []byte("[]")
	}
	if !gjson.ValidBytes(data) || !gjson.ParseBytes(data).IsArray() {
		return nil, 0, ErrInvalidLibrary
	}
	index := int(gjson.GetBytes(data, "#").Int())

	song := songJSON{Title: title, Notes: make([]noteJSON, len(notes))}
	for i, n := range notes {
		song.Notes[i] = noteJSON{
			Note:      n.Pitch,
			Timestamp: n.Onset.Seconds(),
			Duration:  n.Duration.Seconds(),
		}
	}
	out, err := sjson.SetBytes(data, "-1", song)
	if nil != err {
		return nil, 0, fmt.Errorf("unable to append song: %w", err)
	}
	return indent(out), index, nil
}

func indent(data []byte) []byte {
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); nil != err {
		return data
	}
	return buf.Bytes()
}

// RenameBytes sets the title of the song at index, leaving its notes as
// they are.
func (p *DefaultParser) RenameBytes(data []byte, index int, title string) ([]byte, error) {
	if !gjson.ValidBytes(data) || !gjson.ParseBytes(data).IsArray() {
		return nil, ErrInvalidLibrary
	}
	count := int(gjson.GetBytes(data, "#").Int())
	if index < 0 || index >= count {
		return nil, fmt.Errorf("%w: %v of %v", ErrNoSuchSong, index, count)
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, errors.New("title cannot be empty")
	}

	out, err := sjson.SetBytes(data, fmt.Sprintf("%v.title", index), title)
	if nil != err {
		return nil, fmt.Errorf("unable to rename song: %w", err)
	}
	return indent(out), nil
}

// Rename sets the title of a song in the library file.
func (p *DefaultParser) Rename(file string, index int, title string) error {
	data, err := os.ReadFile(file)
	if nil != err {
		return err
	}
	out, err := p.RenameBytes(data, index, title)
	if nil != err {
		return fmt.Errorf("%v: %w", file, err)
	}
	return os.WriteFile(file, out, 0644)
}

// Append adds a song to the library file, creating it if needed.
func (p *DefaultParser) Append(file, title string, notes []game.SongNote) (int, error) {
	data, err := os.ReadFile(file)
	if nil != err && !errors.Is(err, os.ErrNotExist) {
		return 0, err
	}
	out, index, err := p.AppendBytes(data, title, notes)
	if nil != err {
		return 0, fmt.Errorf("%v: %w", file, err)
	}
	if err := os.WriteFile(file, out, 0644); nil != err {
		return 0, err
	}
	return index, nil
}
