package checkout

// State is a step of the checkout form.
type State int

const (
	StateIdle State = iota
	StateValidating
	StateRejected
	StateSubmitting
	StateFailed
	StateSucceeded
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StateRejected:
		return "rejected"
	case StateSubmitting:
		return "submitting"
	case StateFailed:
		return "failed"
	case StateSucceeded:
		return "succeeded"
	default:
		return "unknown"
	}
}
