package session

import (
	"sync"
	"time"
)

type CommandKind uint8

const (
	PressKey CommandKind = iota
	StartGame
	PauseGame
	ResumeGame
	TogglePause
	StopGame
	RestartGame
	ChangeDifficulty
)

// Command is a request from outside the frame loop. At is when it happened,
// presses are judged at that time rather than when the queue is drained.
type Command struct {
	Kind       CommandKind
	Pitch      string
	Difficulty string
	At         time.Time
}

// Queue collects commands from any goroutine for the single frame loop that
// consumes them.
type Queue struct {
	mu       sync.Mutex
	commands []Command
}

func (q *Queue) Push(cmd Command) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.commands = append(q.commands, cmd)
}

// Consume returns all pending commands in FIFO order.
func (q *Queue) Consume() []Command {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.commands) == 0 {
		return nil
	}
	commands := q.commands
	q.commands = nil
	return commands
}

func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.commands)
}
