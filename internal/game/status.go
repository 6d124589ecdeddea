package game

type Status uint8

const (
	Idle Status = iota
	Armed
	Countdown
	Running
	Paused
	Complete
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Armed:
		return "armed"
	case Countdown:
		return "countdown"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Complete:
		return "complete"
	}
	return "unknown"
}
