package pool

// Phase is a step in the lifecycle of a single Run.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseDispatching
	PhaseCollecting
	PhaseDraining
	PhaseDone
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseDispatching:
		return "dispatching"
	case PhaseCollecting:
		return "collecting"
	case PhaseDraining:
		return "draining"
	case PhaseDone:
		return "done"
	default:
		return "unknown"
	}
}
