package session

import (
	"sync"
	"testing"
	"time"

	"git.lost.host/meutraa/ivory/internal/fixture"
	"git.lost.host/meutraa/ivory/internal/game"
)

func TestQueueOrder(t *testing.T) {
	var q Queue
	if c := q.Consume(); c != nil {
		t.Errorf("empty queue returned %v", c)
	}
	q.Push(Command{Kind: StartGame})
	q.Push(Command{Kind: PressKey, Pitch: "C4"})
	q.Push(Command{Kind: StopGame})
	if q.Len() != 3 {
		t.Errorf("expected 3 commands, got %v", q.Len())
	}

	c := q.Consume()
	if len(c) != 3 || c[0].Kind != StartGame || c[1].Pitch != "C4" || c[2].Kind != StopGame {
		t.Errorf("unexpected order %v", c)
	}
	if q.Len() != 0 {
		t.Errorf("queue not drained")
	}
}

func TestQueueConcurrentPush(t *testing.T) {
	var q Queue
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				q.Push(Command{Kind: PressKey})
			}
		}()
	}
	wg.Wait()
	if n := len(q.Consume()); n != 800 {
		t.Errorf("expected 800 commands, got %v", n)
	}
}

func TestCommandsAppliedInOrder(t *testing.T) {
	e, rec, _ := newEngine(t)
	if err := e.Select(fixture.GetSong()); nil != err {
		t.Fatal(err)
	}

	e.Submit(Command{Kind: ChangeDifficulty, Difficulty: game.Intermediate})
	e.Submit(Command{Kind: StartGame, At: epoch})
	e.Submit(Command{Kind: TogglePause, At: epoch})
	e.Tick(epoch)
	if e.Status() != game.Countdown || e.Difficulty().Name != game.Intermediate {
		t.Fatalf("unexpected state %v %v", e.Status(), e.Difficulty().Name)
	}

	e.Tick(epoch.Add(3 * time.Second))
	e.Submit(Command{Kind: TogglePause, At: epoch.Add(4 * time.Second)})
	e.Tick(epoch.Add(4 * time.Second))
	if e.Status() != game.Paused {
		t.Fatalf("expected paused, got %v", e.Status())
	}
	e.Submit(Command{Kind: TogglePause, At: epoch.Add(5 * time.Second)})
	e.Submit(Command{Kind: StopGame})
	e.Tick(epoch.Add(5 * time.Second))
	if e.Status() != game.Idle {
		t.Fatalf("expected idle, got %v", e.Status())
	}

	statuses := []game.Status{}
	for _, ev := range rec.events {
		if ev.Kind == game.StatusChanged {
			statuses = append(statuses, ev.Status)
		}
	}
	expected := []game.Status{game.Armed, game.Countdown, game.Running, game.Paused, game.Running, game.Idle}
	if len(statuses) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, statuses)
	}
	for i := range expected {
		if statuses[i] != expected[i] {
			t.Errorf("%v: expected %v, got %v", i, expected[i], statuses[i])
		}
	}
}
