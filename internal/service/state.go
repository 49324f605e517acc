package service

// State is the lifecycle state of a Service.
type State int

const (
	Unconfigured State = iota
	// Active services have at least one bound metric.
	Active
	// Idle services started without any bound metric. They answer
	// on-demand queries but never touch records.
	Idle
	// Inactive services failed to start because of a configuration error.
	Inactive
	Stopped
)

func (s State) String() string {
	switch s {
	case Unconfigured:
		return "unconfigured"
	case Active:
		return "active"
	case Idle:
		return "idle"
	case Inactive:
		return "inactive"
	case Stopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Running reports whether the service is started and not yet stopped.
func (s State) Running() bool {
	return s == Active || s == Idle
}
