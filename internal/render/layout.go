package render

import (
	"fmt"
	"math"
	"os"

	"git.lost.host/meutraa/ivory/internal/game"
	"golang.org/x/term"
)

const (
	FirstOctave = 3
	LastOctave  = 4
	LaneWidth   = 3
	SideWidth   = 28
	Top         = 3 // first row of the falling field
	BarOffset   = 4 // rows below the hit line
)

// Layout places the falling field on the terminal. Positions are measured in
// pixels of CellHeight per row so the engine's fall speeds apply unchanged.
type Layout struct {
	Columns, Rows int
	CellHeight    float64
	Left          int

	keys map[string]int
}

func NewLayout(columns, rows int, cellHeight float64) *Layout {
	l := &Layout{
		Columns:    columns,
		Rows:       rows,
		CellHeight: cellHeight,
		Left:       SideWidth + 2,
		keys:       map[string]int{},
	}
	for i, key := range game.Keyboard(FirstOctave, LastOctave) {
		l.keys[key] = i
	}
	return l
}

// TerminalLayout sizes a layout to the current terminal.
func TerminalLayout(cellHeight float64) (*Layout, error) {
	columns, rows, err := term.GetSize(int(os.Stdout.Fd()))
	if nil != err {
		return nil, fmt.Errorf("unable to get terminal size: %w", err)
	}
	return NewLayout(columns, rows, cellHeight), nil
}

func (l *Layout) HitRow() int {
	return l.Rows - BarOffset
}

// HitLineDistance is not positive on a terminal too short to play in.
func (l *Layout) HitLineDistance() float64 {
	return float64(l.HitRow()-Top) * l.CellHeight
}

func (l *Layout) Lane(pitch string) (game.Lane, bool) {
	i, ok := l.keys[pitch]
	if !ok {
		return game.Lane{}, false
	}
	return game.Lane{
		Offset: float64(l.Left + i*LaneWidth),
		Width:  LaneWidth,
		Black:  game.IsBlack(pitch),
	}, true
}

// Row is the terminal row of a note's leading edge.
func (l *Layout) Row(position float64) int {
	return Top + int(math.Round(position/l.CellHeight))
}

// HeightRows is how many rows a note of the given pixel height covers.
func (l *Layout) HeightRows(height float64) int {
	rows := int(math.Round(height / l.CellHeight))
	if rows < 1 {
		return 1
	}
	return rows
}

// Width is the number of columns the keyboard needs.
func (l *Layout) Width() int {
	return len(l.keys) * LaneWidth
}
