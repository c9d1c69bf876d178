package navigation

// NetworkState is the derived label summarizing network health. It is
// recomputed after every voyage and never set directly, so there are no
// transitions to validate.
type NetworkState uint8

const (
	StateFragmented NetworkState = iota
	StateConnecting
	StateSynchronized
	StateDisrupted
	StateTranscendent
)

// String returns a human-readable network state name.
func (s NetworkState) String() string {
	switch s {
	case StateFragmented:
		return "fragmented"
	case StateConnecting:
		return "connecting"
	case StateSynchronized:
		return "synchronized"
	case StateDisrupted:
		return "disrupted"
	case StateTranscendent:
		return "transcendent"
	default:
		return "unknown"
	}
}

// DeriveState maps coherence and voyage history to a network state.
// Evaluation order matters: the first matching rule wins.
func DeriveState(coherence float64, totalVoyages int, successRate float64) NetworkState {
	switch {
	case coherence >= 0.95:
		return StateTranscendent
	case coherence >= 0.75:
		return StateSynchronized
	case coherence <= 0.30:
		return StateDisrupted
	case totalVoyages > 0 && successRate > 0.5:
		return StateConnecting
	default:
		return StateFragmented
	}
}
