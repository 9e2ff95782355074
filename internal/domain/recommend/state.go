package recommend

// State is the recommendation flow state.
type State int

const (
	StateIdle State = iota
	StateSubmitting
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateSubmitting:
		return "submitting"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "idle"
	}
}

type event int

const (
	eventSubmit event = iota
	eventSucceeded
	eventFailed
	eventSettled
)

// next is the transition function. Unknown pairs keep the current state.
func (s State) next(e event) State {
	switch {
	case s == StateIdle && e == eventSubmit:
		return StateSubmitting
	case s == StateSubmitting && e == eventSucceeded:
		return StateSucceeded
	case s == StateSubmitting && e == eventFailed:
		return StateFailed
	case (s == StateSucceeded || s == StateFailed) && e == eventSettled:
		return StateIdle
	default:
		return s
	}
}
