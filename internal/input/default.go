package input

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/eiannone/keyboard"
)

// Reader owns the terminal keyboard while it is open.
type Reader struct {
	Logger *log.Logger

	events <-chan keyboard.KeyEvent
}

func Open(buffer int, logger *log.Logger) (*Reader, error) {
	events, err := keyboard.GetKeys(buffer)
	if nil != err {
		return nil, fmt.Errorf("unable to open keyboard: %w", err)
	}
	return &Reader{Logger: logger, events: events}, nil
}

func (r *Reader) logger() *log.Logger {
	if nil == r.Logger {
		r.Logger = log.New(io.Discard, "", 0)
	}
	return r.Logger
}

func (r *Reader) Events() <-chan keyboard.KeyEvent {
	return r.events
}

func (r *Reader) Close() {
	if err := keyboard.Close(); nil != err {
		r.logger().Println("unable to close keyboard", err)
	}
}

// Pump hands every event to handle until handle returns false, the channel
// closes or ctx is done. Read errors are logged and skipped.
func (r *Reader) Pump(ctx context.Context, handle func(keyboard.KeyEvent) bool) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-r.events:
			if !ok {
				return nil
			}
			if nil != ev.Err {
				r.logger().Println("unable to read key", ev.Err)
				continue
			}
			if !handle(ev) {
				return nil
			}
		}
	}
}
