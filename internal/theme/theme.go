package theme

import (
	"image/color"

	"git.lost.host/meutraa/ivory/internal/game"
)

type Theme interface {
	NoteColor(black bool) color.RGBA
	RenderNote(black bool) string
	RenderHitField(black bool) string
	QualityColor(q game.Quality) color.RGBA
	Judgement(q game.Quality) string
}
