package store

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"git.lost.host/meutraa/ivory/internal/game"
)

func open(t *testing.T) *Store {
	s, err := Open(DriverPure, Memory)
	if nil != err {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

var date = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func result(player string, song int, difficulty string, points int, at time.Time) game.Result {
	return game.Result{
		PlayerName: player,
		SongID:     song,
		SongTitle:  "Twinkle",
		Difficulty: difficulty,
		Score:      points,
		Accuracy:   86,
		MaxCombo:   3,
		Hits:       6,
		Misses:     1,
		TotalNotes: 7,
		Grade:      "A",
		Date:       at,
		Inputs: []game.Input{
			{Pitch: "C4", At: -time.Second},
			{Pitch: "G4", At: 20 * time.Millisecond},
			{Pitch: "C4", At: 600 * time.Millisecond},
		},
	}
}

func TestOpenErrors(t *testing.T) {
	if _, err := Open(DriverPure, " "); nil == err {
		t.Error("expected an empty path to fail")
	}
	if _, err := Open("postgres", Memory); nil == err {
		t.Error("expected an unknown driver to fail")
	}
}

func TestSubmitAndGet(t *testing.T) {
	s := open(t)
	ctx := context.Background()

	in := result("ada", 1, game.Beginner, 535, date)
	id, err := s.Submit(ctx, in)
	if nil != err {
		t.Fatal(err)
	}

	out, err := s.Get(ctx, id)
	if nil != err {
		t.Fatal(err)
	}
	if out.ID != id || out.PlayerName != "ada" || out.Score != 535 || out.Grade != "A" ||
		out.TotalNotes != 7 || !out.Date.Equal(date) || out.Points != game.StandardPoints {
		t.Errorf("unexpected entry %+v", out)
	}
	if len(out.Inputs) != len(in.Inputs) {
		t.Fatalf("expected %v inputs, got %v", len(in.Inputs), len(out.Inputs))
	}
	for i := range in.Inputs {
		if out.Inputs[i] != in.Inputs[i] {
			t.Errorf("%v: expected %v, got %v", i, in.Inputs[i], out.Inputs[i])
		}
	}

	if _, err := s.Get(ctx, id+1); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestTopScores(t *testing.T) {
	s := open(t)
	ctx := context.Background()

	for _, r := range []game.Result{
		result("a", 1, game.Beginner, 300, date),
		result("b", 1, game.Beginner, 500, date.Add(time.Hour)),
		result("c", 1, game.Beginner, 300, date.Add(-time.Hour)),
		result("d", 1, game.Advanced, 900, date),
		result("e", 2, game.Beginner, 1000, date),
	} {
		if _, err := s.Submit(ctx, r); nil != err {
			t.Fatal(err)
		}
	}

	entries, err := s.TopScores(ctx, 1, game.Beginner, 10)
	if nil != err {
		t.Fatal(err)
	}
	expected := []string{"b", "c", "a"}
	if len(entries) != len(expected) {
		t.Fatalf("expected %v entries, got %v", len(expected), len(entries))
	}
	for i, name := range expected {
		if entries[i].PlayerName != name {
			t.Errorf("%v: expected %v, got %v", i, name, entries[i].PlayerName)
		}
	}

	entries, err = s.TopScores(ctx, 1, "", 2)
	if nil != err {
		t.Fatal(err)
	}
	if len(entries) != 2 || entries[0].PlayerName != "d" || entries[1].PlayerName != "b" {
		t.Errorf("unexpected entries %+v", entries)
	}
}

func TestClear(t *testing.T) {
	s := open(t)
	ctx := context.Background()
	if _, err := s.Submit(ctx, result("a", 1, game.Beginner, 300, date)); nil != err {
		t.Fatal(err)
	}
	if err := s.Clear(ctx); nil != err {
		t.Fatal(err)
	}
	entries, err := s.TopScores(ctx, 1, "", 10)
	if nil != err {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no entries, got %v", len(entries))
	}
}

func TestFileIsPersistent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.db")
	ctx := context.Background()

	s, err := Open(DriverPure, path)
	if nil != err {
		t.Fatal(err)
	}
	id, err := s.Submit(ctx, result("a", 1, game.Beginner, 300, date))
	if nil != err {
		t.Fatal(err)
	}
	s.Close()

	s, err = Open(DriverPure, path)
	if nil != err {
		t.Fatal(err)
	}
	defer s.Close()
	if e, err := s.Get(ctx, id); nil != err || e.Score != 300 {
		t.Errorf("unexpected entry %+v %v", e, err)
	}
}

func TestPointsScheme(t *testing.T) {
	s := open(t)
	ctx := context.Background()

	in := result("ada", 1, game.Advanced, 400, date)
	in.Points = game.ClassicPoints
	id, err := s.Submit(ctx, in)
	if nil != err {
		t.Fatal(err)
	}
	out, err := s.Get(ctx, id)
	if nil != err {
		t.Fatal(err)
	}
	if out.Points != game.ClassicPoints {
		t.Errorf("expected classic points, got %q", out.Points)
	}
}

func TestMigrateAddsPoints(t *testing.T) {
	path := filepath.Join(t.TempDir(), "old.db")
	db, err := sql.Open(DriverPure, path)
	if nil != err {
		t.Fatal(err)
	}
	_, err = db.Exec(`create table scores (id integer not null primary key, player_name text not null,
		song_id integer not null, song_title text not null, difficulty text not null,
		score integer not null, accuracy integer not null, max_combo integer not null,
		hits integer not null, misses integer not null, total_notes integer not null,
		grade text not null, date integer not null, inputs blob);
		insert into scores values (1, 'ada', 0, 'Twinkle', 'beginner', 300, 90, 2, 3, 0, 3, 'A+', 0, null);`)
	db.Close()
	if nil != err {
		t.Fatal(err)
	}

	s, err := Open(DriverPure, path)
	if nil != err {
		t.Fatal(err)
	}
	defer s.Close()
	out, err := s.Get(context.Background(), 1)
	if nil != err {
		t.Fatal(err)
	}
	if out.PlayerName != "ada" || out.Points != game.StandardPoints {
		t.Errorf("unexpected migrated entry %+v", out)
	}
}
