package forecast

// State is the auto-forecast flow state.
type State int

const (
	StateIdle State = iota
	StateUnsupported
	StateLocating
	StateFetching
	StateRendered
	StateError
)

func (s State) String() string {
	switch s {
	case StateUnsupported:
		return "unsupported"
	case StateLocating:
		return "locating"
	case StateFetching:
		return "fetching"
	case StateRendered:
		return "rendered"
	case StateError:
		return "error"
	default:
		return "idle"
	}
}

type event int

const (
	eventNoLocator event = iota
	eventStart
	eventLocated
	eventLocateFailed
	eventRendered
	eventFetchFailed
)

// next is the transition function. Unsupported is terminal and unknown pairs
// keep the current state.
func (s State) next(e event) State {
	if s == StateUnsupported {
		return s
	}
	switch e {
	case eventNoLocator:
		if s == StateIdle {
			return StateUnsupported
		}
	case eventStart:
		if s == StateIdle || s == StateRendered || s == StateError {
			return StateLocating
		}
	case eventLocated:
		if s == StateLocating {
			return StateFetching
		}
	case eventLocateFailed:
		if s == StateLocating {
			return StateError
		}
	case eventRendered:
		if s == StateFetching {
			return StateRendered
		}
	case eventFetchFailed:
		if s == StateFetching {
			return StateError
		}
	}
	return s
}

