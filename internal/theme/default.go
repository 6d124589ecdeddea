package theme

import (
	"fmt"
	"image/color"

	"git.lost.host/meutraa/ivory/internal/game"
)

type DefaultTheme struct {
}

func (t *DefaultTheme) NoteColor(black bool) color.RGBA {
	if black {
		return blackNote
	}
	return whiteNote
}

func (t *DefaultTheme) RenderNote(black bool) string {
	c := t.NoteColor(black)
	return fmt.Sprintf("\033[38;2;%v;%v;%vm%v\033[0m", c.R, c.G, c.B, noteSym)
}

func (t *DefaultTheme) RenderHitField(black bool) string {
	if black {
		return blackBarSym
	}
	return barSym
}

func (t *DefaultTheme) QualityColor(q game.Quality) color.RGBA {
	col, ok := qualityColors[q]
	if !ok {
		return qualityColors[game.Miss]
	}
	return col
}

func (t *DefaultTheme) Judgement(q game.Quality) string {
	label, ok := judgements[q]
	if !ok {
		return judgements[game.Miss]
	}
	return label
}

const (
	noteSym     = "█"
	barSym      = "━"
	blackBarSym = "─"
)

var (
	whiteNote = color.RGBA{R: 120, G: 200, B: 255, A: 255}
	blackNote = color.RGBA{R: 190, G: 120, B: 255, A: 255}

	qualityColors = map[game.Quality]color.RGBA{
		game.Perfect: {R: 173, G: 236, B: 236, A: 255},
		game.Good:    {R: 0, G: 236, B: 128, A: 255},
		game.Ok:      {R: 236, G: 195, B: 0, A: 255},
		game.Miss:    {R: 236, G: 30, B: 0, A: 255},
	}

	judgements = map[game.Quality]string{
		game.Perfect: "Perfect",
		game.Good:    "   Good",
		game.Ok:      "     Ok",
		game.Miss:    "   Miss",
	}
)
