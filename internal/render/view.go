package render

import (
	"fmt"
	"image/color"
	"strings"
	"time"

	"git.lost.host/meutraa/ivory/internal/game"
	"git.lost.host/meutraa/ivory/internal/score"
	"git.lost.host/meutraa/ivory/internal/session"
	"git.lost.host/meutraa/ivory/internal/theme"
)

// Decoration lifetimes in frames
const (
	flashFrames     = 12
	judgementFrames = 40
	missFrames      = 60
	timingFrames    = 120
)

// Columns per millisecond of timing error on the timing indicator
const msPerColumn = 20

// View draws snapshots and turns engine events into decorations.
// It is an EventSink for the engine.
type View struct {
	Renderer Renderer
	Theme    theme.Theme
	Layout   *Layout
}

func colorize(c color.RGBA, s string) string {
	return fmt.Sprintf("\033[38;2;%v;%v;%vm%v\033[0m", c.R, c.G, c.B, s)
}

func (v *View) middle() int {
	return v.Layout.Left + v.Layout.Width()/2
}

func (v *View) Notify(ev game.Event) {
	hitRow := v.Layout.HitRow()
	switch ev.Kind {
	case game.NoteHit:
		c := v.Theme.QualityColor(ev.Quality)
		col := int(ev.Note.Lane.Offset)
		v.Renderer.AddDecoration(col, hitRow, colorize(c, strings.Repeat("▀", LaneWidth-1)), flashFrames)
		v.Renderer.AddDecoration(v.middle()-3, hitRow+2, colorize(c, v.Theme.Judgement(ev.Quality)), judgementFrames)

		offset := -int(ev.Distance.Milliseconds()) / msPerColumn
		v.Renderer.AddDecoration(v.middle()+offset, hitRow+1, colorize(c, "│"), timingFrames)
	case game.NoteMissed:
		c := v.Theme.QualityColor(game.Miss)
		col := int(ev.Note.Lane.Offset)
		v.Renderer.AddDecoration(col-1, hitRow-1, colorize(c, "╭"), missFrames)
		v.Renderer.AddDecoration(col+LaneWidth-1, hitRow-1, colorize(c, "╮"), missFrames)
		v.Renderer.AddDecoration(col-1, hitRow+1, colorize(c, "╰"), missFrames)
		v.Renderer.AddDecoration(col+LaneWidth-1, hitRow+1, colorize(c, "╯"), missFrames)
		v.Renderer.AddDecoration(v.middle()-3, hitRow+2, colorize(c, v.Theme.Judgement(game.Miss)), judgementFrames)
	case game.FreePress:
		lane, ok := v.Layout.Lane(ev.Pitch)
		if !ok {
			return
		}
		v.Renderer.AddDecoration(int(lane.Offset), hitRow, strings.Repeat("·", LaneWidth-1), flashFrames)
	}
}

func (v *View) drawField() {
	hitRow := v.Layout.HitRow()
	for _, key := range game.Keyboard(FirstOctave, LastOctave) {
		lane, _ := v.Layout.Lane(key)
		col := int(lane.Offset)
		v.Renderer.Fill(hitRow, col, strings.Repeat(v.Theme.RenderHitField(lane.Black), LaneWidth))
		if strings.HasPrefix(key, "C") && !lane.Black {
			v.Renderer.Fill(hitRow+3, col, key)
		}
	}
}

func (v *View) drawNotes(notes []*game.ScheduledNote) {
	bottom := v.Layout.Rows - 1
	for _, n := range notes {
		if n.Resolved() {
			continue
		}
		col := int(n.Lane.Offset)
		lead := v.Layout.Row(n.Position)
		glyph := strings.Repeat(v.Theme.RenderNote(n.Lane.Black), LaneWidth-1)
		for row := lead - v.Layout.HeightRows(n.Height) + 1; row <= lead; row++ {
			if row < Top || row > bottom {
				continue
			}
			v.Renderer.Fill(row, col, glyph)
		}
	}
}

func (v *View) drawStats(s session.Snapshot) {
	mean, stdev := score.Spread(s.Notes)
	ms := func(d time.Duration) float64 {
		return float64(d) / float64(time.Millisecond)
	}
	lines := []string{
		fmt.Sprintf("       Song:  %v", s.SongTitle),
		fmt.Sprintf(" Difficulty:  %v", s.Difficulty),
		"",
		fmt.Sprintf("      Score:  %6v", s.Score),
		fmt.Sprintf("      Combo:  %6v", s.Combo),
		fmt.Sprintf("  Max combo:  %6v", s.MaxCombo),
		fmt.Sprintf("   Accuracy:  %5v%%", s.Accuracy),
		fmt.Sprintf("       Hits:  %6v", s.Hits),
		fmt.Sprintf("     Misses:  %6v", s.Misses),
		fmt.Sprintf("      Notes:  %6v", s.TotalNotes),
		"",
		fmt.Sprintf("       Mean:  %6.1f ms", ms(mean)),
		fmt.Sprintf("      Stdev:  %6.1f ms", ms(stdev)),
		fmt.Sprintf("  Remaining:  %6.1f s", s.Remaining.Seconds()),
	}
	for i, line := range lines {
		v.Renderer.Fill(Top+i, 2, line)
	}
}

func (v *View) drawProgress(s session.Snapshot) {
	if s.Length <= 0 {
		return
	}
	width := v.Layout.Width()
	done := 0
	if s.SongElapsed > 0 {
		done = int(float64(width) * float64(s.SongElapsed) / float64(s.Length))
	}
	if done > width {
		done = width
	}
	v.Renderer.Fill(1, v.Layout.Left, strings.Repeat("━", done))
}

func (v *View) drawStatus(s session.Snapshot) {
	row := v.Layout.HitRow() / 2
	col := v.middle() - 8
	switch s.Status {
	case game.Idle:
		v.Renderer.Fill(row, col, "No song selected")
	case game.Armed:
		v.Renderer.Fill(row, col, "Enter to start")
	case game.Countdown:
		v.Renderer.Fill(row, v.middle(), fmt.Sprint(s.Countdown))
	case game.Paused:
		v.Renderer.Fill(row, col, "Paused, space to resume")
	case game.Complete:
		if nil == s.Result {
			return
		}
		r := s.Result
		v.Renderer.FillColor(row, col, v.Theme.QualityColor(game.Perfect), fmt.Sprintf("Grade %v", r.Grade))
		v.Renderer.Fill(row+1, col, fmt.Sprintf("%v points, %v%%", r.Score, r.Accuracy))
		v.Renderer.Fill(row+2, col, fmt.Sprintf("%v hits, %v misses", r.Hits, r.Misses))
		v.Renderer.Fill(row+4, col, "Ctrl+R to play again")
	}
}

// Draw renders one frame.
func (v *View) Draw(s session.Snapshot) error {
	v.Renderer.Clear()
	v.drawProgress(s)
	v.drawField()
	v.drawNotes(s.Notes)
	v.drawStats(s)
	v.drawStatus(s)
	return v.Renderer.Flush()
}
