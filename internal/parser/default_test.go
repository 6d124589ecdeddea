package parser

import (
	"bytes"
	"errors"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"git.lost.host/meutraa/ivory/internal/fixture"
	"git.lost.host/meutraa/ivory/internal/game"
)

func TestParseLibrary(t *testing.T) {
	p := &DefaultParser{}
	songs, err := p.ParseBytes([]byte(fixture.Library))
	if nil != err {
		t.Fatal(err)
	}
	if len(songs) != 2 {
		t.Fatalf("expected 2 songs, got %v", len(songs))
	}

	twinkle := songs[0]
	if twinkle.ID != 0 || twinkle.Title != "Twinkle" {
		t.Errorf("unexpected song %v %v", twinkle.ID, twinkle.Title)
	}
	expected := []game.SongNote{
		{Pitch: "C4", Onset: 0, Duration: 500 * time.Millisecond},
		{Pitch: "C4", Onset: 500 * time.Millisecond, Duration: game.DefaultNoteDuration},
		{Pitch: "G4", Onset: time.Second, Duration: 500 * time.Millisecond},
	}
	if len(twinkle.Notes) != len(expected) {
		t.Fatalf("expected %v notes, got %v", len(expected), len(twinkle.Notes))
	}
	for i := range expected {
		if twinkle.Notes[i] != expected[i] {
			t.Errorf("%v: expected %v, got %v", i, expected[i], twinkle.Notes[i])
		}
	}

	if songs[1].ID != 1 || len(songs[1].Notes) != 0 {
		t.Errorf("unexpected empty song %+v", songs[1])
	}
}

func TestParseSkipsBadNotes(t *testing.T) {
	out := &bytes.Buffer{}
	p := &DefaultParser{Logger: log.New(out, "", 0)}
	songs, err := p.ParseBytes([]byte(`[{"notes": [
		{"note": "c#4", "time": 1.25, "duration": 0},
		{"note": "H2", "time": 1},
		{"note": "D4"},
		{"note": "E4", "timestamp": -1}
	]}]`))
	if nil != err {
		t.Fatal(err)
	}
	song := songs[0]
	if song.Title != "Song 1" {
		t.Errorf("expected a default title, got %q", song.Title)
	}
	if len(song.Notes) != 1 {
		t.Fatalf("expected 1 note, got %v", song.Notes)
	}
	n := song.Notes[0]
	if n.Pitch != "C#4" || n.Onset != 1250*time.Millisecond || n.Duration != game.DefaultNoteDuration {
		t.Errorf("unexpected note %+v", n)
	}
	if strings.Count(out.String(), "skipping") != 3 {
		t.Errorf("expected 3 skipped notes to be logged\n%v", out)
	}
}

func TestParseInvalid(t *testing.T) {
	p := &DefaultParser{}
	for _, data := range []string{`{"title": "x"}`, `[{"title": }]`, ``} {
		if _, err := p.ParseBytes([]byte(data)); !errors.Is(err, ErrInvalidLibrary) {
			t.Log("input", data)
			t.Log("expected ErrInvalidLibrary, got", err)
			t.Fail()
		}
	}
}

func TestAppendRoundTrip(t *testing.T) {
	p := &DefaultParser{}
	file := filepath.Join(t.TempDir(), "songs.json")

	recorded := []game.SongNote{
		{Pitch: "E4", Onset: 0, Duration: game.DefaultNoteDuration},
		{Pitch: "F#4", Onset: 750 * time.Millisecond, Duration: game.DefaultNoteDuration},
	}
	for i, title := range []string{"First", "Second"} {
		index, err := p.Append(file, title, recorded)
		if nil != err {
			t.Fatal(err)
		}
		if index != i {
			t.Errorf("expected index %v, got %v", i, index)
		}
	}

	songs, err := p.Parse(file)
	if nil != err {
		t.Fatal(err)
	}
	if len(songs) != 2 || songs[1].Title != "Second" || songs[1].ID != 1 {
		t.Fatalf("unexpected songs %+v", songs)
	}
	for i := range recorded {
		if songs[1].Notes[i] != recorded[i] {
			t.Errorf("%v: expected %v, got %v", i, recorded[i], songs[1].Notes[i])
		}
	}
}

func TestAppendKeepsLibrary(t *testing.T) {
	p := &DefaultParser{}
	out, index, err := p.AppendBytes([]byte(fixture.Library), "New", nil)
	if nil != err {
		t.Fatal(err)
	}
	if index != 2 {
		t.Errorf("expected index 2, got %v", index)
	}
	songs, err := p.ParseBytes(out)
	if nil != err {
		t.Fatal(err)
	}
	if len(songs) != 3 || songs[0].Title != "Twinkle" || len(songs[0].Notes) != 3 || songs[2].Title != "New" {
		t.Errorf("library changed %+v", songs)
	}

	if _, _, err := p.AppendBytes([]byte(`{}`), "x", nil); !errors.Is(err, ErrInvalidLibrary) {
		t.Errorf("expected ErrInvalidLibrary, got %v", err)
	}
}

func TestRename(t *testing.T) {
	p := &DefaultParser{}
	file := filepath.Join(t.TempDir(), "songs.json")
	if err := os.WriteFile(file, []byte(fixture.Library), 0644); nil != err {
		t.Fatal(err)
	}

	if err := p.Rename(file, 1, "  Quiet  "); nil != err {
		t.Fatal(err)
	}
	songs, err := p.Parse(file)
	if nil != err {
		t.Fatal(err)
	}
	if len(songs) != 2 || songs[1].Title != "Quiet" || songs[0].Title != "Twinkle" || len(songs[0].Notes) != 3 {
		t.Errorf("unexpected library after rename %+v", songs)
	}

	tests := map[int]string{
		2:  "Title",
		-1: "Title",
		0:  " ",
	}
	for index, title := range tests {
		if err := p.Rename(file, index, title); nil == err {
			t.Log("index", index, "title", title)
			t.Log("expected an error")
			t.Fail()
		}
	}
	if _, err := p.RenameBytes([]byte(fixture.Library), 5, "x"); !errors.Is(err, ErrNoSuchSong) {
		t.Errorf("expected ErrNoSuchSong, got %v", err)
	}
}
