package task

// Signal tags the tick phase a suspended task wants to resume on
// The zero value None is treated as Update
type Signal uint8

const (
	// None is yielded by bodies that do not care about the phase; resumes on Update only
	None Signal = iota

	// Update is phase A, the main per-tick update point
	Update

	// LateUpdate is phase B, after messages were drained
	LateUpdate

	// AnimatorMove is phase C, after animation state has been evaluated
	AnimatorMove
)

// Phases lists the phases in the order the host loop advances them every tick
var Phases = [...]Signal{Update, LateUpdate, AnimatorMove}

// Matches reports whether a task suspended on s may resume during phase
func (s Signal) Matches(phase Signal) bool {
	if s == None {
		s = Update
	}
	if phase == None {
		phase = Update
	}
	return s == phase
}

// String returns the name of the signal for logging
func (s Signal) String() string {
	switch s {
	case None:
		return "none"
	case Update:
		return "update"
	case LateUpdate:
		return "late_update"
	case AnimatorMove:
		return "animator_move"
	default:
		return "unknown"
	}
}
