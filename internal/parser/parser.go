package parser

import "git.lost.host/meutraa/ivory/internal/game"

type Parser interface {
	Parse(file string) ([]*game.Song, error)
}

// Writer adds recorded songs to a library and renames them.
type Writer interface {
	Append(file, title string, notes []game.SongNote) (int, error)
	Rename(file string, index int, title string) error
}
