package clock

import (
	"testing"
	"time"
)

var epoch = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func TestTimelineFrame(t *testing.T) {
	m := NewMock(epoch)
	tl := Timeline{PreRoll: 3 * time.Second}
	tl.Start(m.Now())

	f := tl.Frame(m.Advance(time.Second))
	if f.Game != time.Second || f.Song != -2*time.Second || f.Delta != time.Second {
		t.Errorf("unexpected frame %+v", f)
	}

	f = tl.Frame(m.Advance(16 * time.Millisecond))
	if f.Delta != 16*time.Millisecond || f.Song != -1984*time.Millisecond {
		t.Errorf("unexpected frame %+v", f)
	}

	if tl.SongOrigin().Sub(tl.GameOrigin()) != 3*time.Second {
		t.Errorf("song origin is not pre-roll after game origin")
	}
}

func TestTimelineResyncAfterPause(t *testing.T) {
	m := NewMock(epoch)
	tl := Timeline{PreRoll: 3 * time.Second}
	tl.Start(m.Now())
	tl.Frame(m.Advance(time.Second))

	// suspended for ten seconds
	m.Advance(10 * time.Second)
	tl.Resync(m.Now())

	f := tl.Frame(m.Now())
	if f.Delta != 0 {
		t.Errorf("expected no delta after resync, got %v", f.Delta)
	}
	// origins are not shifted by the pause
	if f.Game != 11*time.Second || f.Song != 8*time.Second {
		t.Errorf("unexpected frame %+v", f)
	}
}

func TestTimelineNegativeDelta(t *testing.T) {
	tl := Timeline{}
	tl.Start(epoch)
	if f := tl.Frame(epoch.Add(-time.Millisecond)); f.Delta != 0 {
		t.Errorf("expected clamped delta, got %v", f.Delta)
	}
}

func TestTimelineSongAt(t *testing.T) {
	tl := Timeline{PreRoll: time.Second}
	if tl.Started() {
		t.Error("timeline started before Start")
	}
	tl.Start(epoch)
	if !tl.Started() {
		t.Error("timeline not started")
	}
	if d := tl.SongAt(epoch.Add(3 * time.Second)); d != 2*time.Second {
		t.Errorf("expected 2s, got %v", d)
	}
	tl.Reset()
	if tl.Started() {
		t.Error("timeline started after Reset")
	}
}
