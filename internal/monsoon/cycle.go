// Package monsoon provides the monsoon phase cycle and route favorability.
// The wind reverses twice a year: northeast and southwest phases are separated
// by transition periods, and each leg lasts a fixed number of days.
package monsoon

// Phase is a monsoon wind phase.
type Phase uint8

const (
	PhaseNortheast Phase = iota
	PhaseSouthwest
	PhaseTransition
)

// String returns a human-readable phase name.
func (p Phase) String() string {
	switch p {
	case PhaseNortheast:
		return "northeast"
	case PhaseSouthwest:
		return "southwest"
	case PhaseTransition:
		return "transition"
	default:
		return "unknown"
	}
}

// PhaseDurationDays is the length of each cycle leg in day-equivalent ticks.
const PhaseDurationDays = 180

// favorableThreshold is the factor above which a route counts as favorable.
const favorableThreshold = 0.6

// neutralFactor is returned for routes absent from the phase table.
const neutralFactor = 0.5

// cycle is the fixed phase order. Transition appears twice per full cycle, so
// the engine tracks an index rather than a phase-successor map.
var cycle = [4]Phase{PhaseNortheast, PhaseTransition, PhaseSouthwest, PhaseTransition}

// Route is an ordered origin/destination pair.
type Route struct {
	Origin      string
	Destination string
}

// RouteTable maps each phase to favorability factors for ordered routes.
// Reverse lookups reuse the forward entry, so each pair appears once.
type RouteTable map[Phase]map[Route]float64

// CycleEngine owns the current phase and day counter.
type CycleEngine struct {
	routes   RouteTable
	cycleIdx int
	day      int

	// ReverseFactorScale scales the factor found by a reverse-direction
	// lookup. 1.0 (the default) makes favorability direction-agnostic;
	// values below 1.0 penalize sailing against the charted direction.
	ReverseFactorScale float64
}

// NewCycleEngine creates an engine starting in the northeast phase at day 0.
// A nil table means every route gets the neutral factor.
func NewCycleEngine(routes RouteTable) *CycleEngine {
	return &CycleEngine{
		routes:             routes,
		ReverseFactorScale: 1.0,
	}
}

// Phase returns the current monsoon phase.
func (e *CycleEngine) Phase() Phase {
	return cycle[e.cycleIdx]
}

// Day returns the day counter within the current phase.
func (e *CycleEngine) Day() int {
	return e.day
}

// TotalDays returns the elapsed days since the start of the current full
// cycle. Advancing a fresh engine by this amount reproduces the position,
// which is how the driver restores the monsoon between runs.
func (e *CycleEngine) TotalDays() int {
	return e.cycleIdx*PhaseDurationDays + e.day
}

// Advance adds days to the counter. Each time the counter reaches the phase
// duration it resets and the phase moves one step along the cycle, so a large
// advance transitions exactly once per threshold crossing.
func (e *CycleEngine) Advance(days int) {
	e.day += days
	for e.day >= PhaseDurationDays {
		e.day -= PhaseDurationDays
		e.cycleIdx = (e.cycleIdx + 1) % len(cycle)
	}
}

// Favorability reports whether the route is favorable under the current phase
// and the underlying factor. The forward pair is checked first, then the
// reverse pair; unknown routes get the neutral factor.
func (e *CycleEngine) Favorability(origin, destination string) (bool, float64) {
	table := e.routes[e.Phase()]

	if factor, ok := table[Route{origin, destination}]; ok {
		return factor > favorableThreshold, factor
	}
	if factor, ok := table[Route{destination, origin}]; ok {
		factor *= e.ReverseFactorScale
		return factor > favorableThreshold, factor
	}
	return false, neutralFactor
}

// DefaultRoutes returns the canonical archipelago chart used by the driver.
// Northeast winds carry ships south and east out of the straits; southwest
// winds carry them home; transition seas are unreliable everywhere.
func DefaultRoutes() RouteTable {
	return RouteTable{
		PhaseNortheast: {
			{"malacca", "ternate"}:   0.85,
			{"malacca", "banda"}:     0.8,
			{"palembang", "banda"}:   0.75,
			{"palembang", "surabaya"}: 0.7,
			{"butuan", "ternate"}:    0.65,
			{"malacca", "palembang"}: 0.55,
		},
		PhaseSouthwest: {
			{"ternate", "malacca"}:   0.85,
			{"banda", "palembang"}:   0.8,
			{"surabaya", "malacca"}:  0.75,
			{"ternate", "butuan"}:    0.7,
			{"banda", "surabaya"}:    0.6,
			{"palembang", "malacca"}: 0.55,
		},
		PhaseTransition: {
			{"malacca", "palembang"}: 0.65,
			{"surabaya", "banda"}:    0.55,
			{"butuan", "cebu"}:       0.5,
			{"ternate", "banda"}:     0.45,
		},
	}
}
