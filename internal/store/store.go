// Package store keeps finished sessions in a SQLite leaderboard.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"git.lost.host/meutraa/ivory/internal/game"
	"git.lost.host/meutraa/ivory/internal/score"
	_ "github.com/mattn/go-sqlite3"
	_ "modernc.org/sqlite"
)

// Registered database/sql driver names
const (
	DriverCgo  = "sqlite3" // github.com/mattn/go-sqlite3
	DriverPure = "sqlite"  // modernc.org/sqlite
)

const Memory = ":memory:"

var ErrNotFound = errors.New("score not found")

const schema = `
create table if not exists scores
  (
	  id integer not null primary key,
	  player_name text not null,
	  song_id integer not null,
	  song_title text not null,
	  difficulty text not null,
	  points text not null default 'standard',
	  score integer not null,
	  accuracy integer not null,
	  max_combo integer not null,
	  hits integer not null,
	  misses integer not null,
	  total_notes integer not null,
	  grade text not null,
	  date integer not null,
	  inputs blob
  );
create index if not exists scores_by_song on scores (song_id, difficulty, score);
`

// Entry is a stored result and its row id.
type Entry struct {
	ID int64
	game.Result
}

type Store struct {
	db *sql.DB
}

// Open opens or creates the leaderboard at path with one of the registered
// sqlite drivers.
func Open(driver, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("storage path is required")
	}
	if driver == "" {
		driver = DriverCgo
	}
	if driver != DriverCgo && driver != DriverPure {
		return nil, fmt.Errorf("unknown sqlite driver %q", driver)
	}

	db, err := sql.Open(driver, path)
	if nil != err {
		return nil, fmt.Errorf("open %v: %w", path, err)
	}
	// Every connection to :memory: is its own database
	if path == Memory {
		db.SetMaxOpenConns(1)
	}
	if _, err := db.Exec(schema); nil != err {
		db.Close()
		return nil, fmt.Errorf("create scores table: %w", err)
	}
	if err := migrate(db); nil != err {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Leaderboards created before scores recorded their points scheme were
// all scored with the standard one.
func migrate(db *sql.DB) error {
	var n int
	err := db.QueryRow(`select count(*) from pragma_table_info('scores') where name = 'points'`).Scan(&n)
	if nil != err {
		return fmt.Errorf("inspect scores table: %w", err)
	}
	if n > 0 {
		return nil
	}
	if _, err := db.Exec(`alter table scores add column points text not null default 'standard'`); nil != err {
		return fmt.Errorf("add points column: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	if nil == s || nil == s.db {
		return nil
	}
	return s.db.Close()
}

// Submit appends a result and returns its id.
func (s *Store) Submit(ctx context.Context, r game.Result) (int64, error) {
	data, err := json.Marshal(score.CompactInputs(r.Inputs))
	if nil != err {
		return 0, fmt.Errorf("unable to marshal inputs: %w", err)
	}
	points := r.Points
	if points == "" {
		points = game.StandardPoints
	}
	res, err := s.db.ExecContext(ctx,
		`insert into scores(player_name, song_id, song_title, difficulty, points, score, accuracy,
		 max_combo, hits, misses, total_notes, grade, date, inputs)
		 values(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.PlayerName, r.SongID, r.SongTitle, r.Difficulty, points, r.Score, r.Accuracy,
		r.MaxCombo, r.Hits, r.Misses, r.TotalNotes, r.Grade, r.Date.UTC().UnixMilli(), data,
	)
	if nil != err {
		return 0, fmt.Errorf("unable to save score: %w", err)
	}
	return res.LastInsertId()
}

const columns = `id, player_name, song_id, song_title, difficulty, points, score, accuracy,
	max_combo, hits, misses, total_notes, grade, date, inputs`

type scanner interface {
	Scan(dest ...interface{}) error
}

func scan(row scanner) (Entry, error) {
	var e Entry
	var date int64
	var inputs []byte
	err := row.Scan(&e.ID, &e.PlayerName, &e.SongID, &e.SongTitle, &e.Difficulty, &e.Points, &e.Score,
		&e.Accuracy, &e.MaxCombo, &e.Hits, &e.Misses, &e.TotalNotes, &e.Grade, &date, &inputs)
	if nil != err {
		return e, err
	}
	e.Date = time.UnixMilli(date).UTC()
	if len(inputs) > 0 {
		var ins []score.InputsCompact
		if err := json.Unmarshal(inputs, &ins); nil != err {
			return e, fmt.Errorf("unable to unmarshal inputs of %v: %w", e.ID, err)
		}
		e.Inputs = score.UncompactInputs(ins)
	}
	return e, nil
}

// TopScores lists the best results for a song and difficulty, highest score
// first and earliest first on ties. An empty difficulty matches all.
func (s *Store) TopScores(ctx context.Context, songID int, difficulty string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx,
		`select `+columns+` from scores
		 where song_id = ? and (? = '' or difficulty = ?)
		 order by score desc, date asc, id asc limit ?`,
		songID, difficulty, difficulty, limit,
	)
	if nil != err {
		return nil, fmt.Errorf("unable to load scores: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		e, err := scan(rows)
		if nil != err {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Get loads one result by id.
func (s *Store) Get(ctx context.Context, id int64) (Entry, error) {
	row := s.db.QueryRowContext(ctx, `select `+columns+` from scores where id = ?`, id)
	e, err := scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return e, fmt.Errorf("%v: %w", id, ErrNotFound)
	}
	return e, err
}

// Clear removes every stored result.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `delete from scores`); nil != err {
		return fmt.Errorf("unable to clear scores: %w", err)
	}
	return nil
}
