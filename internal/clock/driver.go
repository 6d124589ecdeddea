package clock

import (
	"context"
	"time"
)

// Driver calls a tick function once per frame period. When the tick function
// returns false no further frames are scheduled until Wake is called.
type Driver struct {
	Period time.Duration
	Clock  Clock

	wake chan struct{}
}

func NewDriver(period time.Duration, clock Clock) *Driver {
	if nil == clock {
		clock = Wall{}
	}
	return &Driver{
		Period: period,
		Clock:  clock,
		wake:   make(chan struct{}, 1),
	}
}

// Wake resumes a suspended loop. It never blocks.
func (d *Driver) Wake() {
	select {
	case d.wake <- struct{}{}:
	default:
	}
}

// Run blocks until ctx is done.
func (d *Driver) Run(ctx context.Context, tick func(now time.Time) bool) error {
	timer := time.NewTimer(0)
	defer timer.Stop()
	<-timer.C

	for {
		if err := ctx.Err(); nil != err {
			return err
		}

		now := d.Clock.Now()
		deadline := now.Add(d.Period)

		if !tick(now) {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-d.wake:
			}
			continue
		}

		remaining := deadline.Sub(d.Clock.Now())
		if remaining <= 0 {
			continue
		}
		timer.Reset(remaining)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}
}
