// Package movement provides the entity-specialization movement variant: an
// explicit finite-state machine with a transition-validity table, plus the
// stat engine that feeds it.
package movement

import "fmt"

// State is a movement state. Unlike the derived network state, movement
// state only changes through validated transitions or forced evaluation.
type State uint8

const (
	StateExploring State = iota
	StateTransitioning
	StateLocked
	StateAnomalous
	StateSynchronized
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateExploring:
		return "exploring"
	case StateTransitioning:
		return "transitioning"
	case StateLocked:
		return "locked"
	case StateAnomalous:
		return "anomalous"
	case StateSynchronized:
		return "synchronized"
	default:
		return "unknown"
	}
}

// validTransitions defines the legal movement transitions. Anomalous and
// synchronized have no outgoing edges: they are terminal.
var validTransitions = map[State]map[State]bool{
	StateExploring: {
		StateTransitioning: true,
		StateLocked:        true,
	},
	StateTransitioning: {
		StateExploring:    true,
		StateLocked:       true,
		StateAnomalous:    true,
		StateSynchronized: true,
	},
	StateLocked: {
		StateExploring:    true,
		StateSynchronized: true,
	},
}

// IsValidTransition checks if a movement transition is legal.
func IsValidTransition(from, to State) bool {
	targets, ok := validTransitions[from]
	if !ok {
		return false
	}
	return targets[to]
}

// StateTransitionError reports a requested transition outside the validity
// table. The state is left unchanged.
type StateTransitionError struct {
	From State
	To   State
}

// Error implements the error interface.
func (e *StateTransitionError) Error() string {
	return fmt.Sprintf("invalid movement transition %s -> %s", e.From, e.To)
}
