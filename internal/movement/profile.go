package movement

import (
	"errors"
	"fmt"

	"github.com/talgya/archipelago/internal/entropy"
)

// Stat indexes the four build stats, each on a 0-100 scale.
type Stat uint8

const (
	StatTerritorial Stat = iota
	StatEconomic
	StatSocial
	StatTechnological
)

// NumStats is the total number of build stats.
const NumStats = 4

// String returns a human-readable stat name.
func (s Stat) String() string {
	switch s {
	case StatTerritorial:
		return "territorial"
	case StatEconomic:
		return "economic"
	case StatSocial:
		return "social"
	case StatTechnological:
		return "technological"
	default:
		return "unknown"
	}
}

// Build classifies a stat profile.
type Build uint8

const (
	BuildUnclassified Build = iota
	BuildTerritorial
	BuildEconomic
	BuildSocial
	BuildBalanced
	BuildNeutral
)

// String returns a human-readable build name.
func (b Build) String() string {
	switch b {
	case BuildTerritorial:
		return "territorial"
	case BuildEconomic:
		return "economic"
	case BuildSocial:
		return "social"
	case BuildBalanced:
		return "balanced"
	case BuildNeutral:
		return "neutral"
	default:
		return "unclassified"
	}
}

// ErrEmptyAction is returned when Move is called with an empty action.
var ErrEmptyAction = errors.New("action must not be empty")

// UnknownActionError reports an action string outside the action table.
type UnknownActionError struct {
	Action string
}

// Error implements the error interface.
func (e *UnknownActionError) Error() string {
	return fmt.Sprintf("unknown action %q", e.Action)
}

// actionImpacts maps each action to the stat it raises and by how much.
var actionImpacts = map[string]struct {
	stat  Stat
	value int
}{
	"conquer":     {StatTerritorial, 10},
	"trade":       {StatEconomic, 10},
	"collaborate": {StatSocial, 15},
	"innovate":    {StatTechnological, 10},
}

// anomalyChance is the per-move probability of spawning an anomaly.
const anomalyChance = 0.1

// anomalyLimit is the unresolved-anomaly count above which evaluation
// forces the anomalous state.
const anomalyLimit = 5

// Profile tracks one entity's stats, sync, anomalies, and movement state.
type Profile struct {
	stats         [NumStats]int
	engineSync    float64
	anomalies     int
	collaborators int
	history       []string
	state         State
	rng           entropy.Source
}

// NewProfile creates a profile in the exploring state.
func NewProfile(rng entropy.Source) *Profile {
	return &Profile{state: StateExploring, rng: rng}
}

// State returns the current movement state.
func (p *Profile) State() State {
	return p.state
}

// Stat returns the value of one stat.
func (p *Profile) Stat(s Stat) int {
	return p.stats[s]
}

// EngineSync returns the current sync alignment (mean of stats, 0-100).
func (p *Profile) EngineSync() float64 {
	return p.engineSync
}

// Anomalies returns the unresolved anomaly count.
func (p *Profile) Anomalies() int {
	return p.anomalies
}

// History returns a copy of the action history.
func (p *Profile) History() []string {
	out := make([]string, len(p.history))
	copy(out, p.history)
	return out
}

// TransitionTo requests an explicit state transition. Requests outside the
// validity table fail with *StateTransitionError and leave state unchanged.
func (p *Profile) TransitionTo(to State) error {
	if !IsValidTransition(p.state, to) {
		return &StateTransitionError{From: p.state, To: to}
	}
	p.state = to
	return nil
}

// Move applies one action to the profile. Empty actions and actions outside
// the table are usage errors; nothing is mutated on those paths.
func (p *Profile) Move(action string, collaborate bool) error {
	if action == "" {
		return ErrEmptyAction
	}
	impact, ok := actionImpacts[action]
	if !ok {
		return &UnknownActionError{Action: action}
	}

	p.stats[impact.stat] = capStat(p.stats[impact.stat] + impact.value)
	p.history = append(p.history, action)

	if collaborate {
		p.collaborators++
		p.stats[StatSocial] = capStat(p.stats[StatSocial] + 5)
	}

	sum := 0
	for _, v := range p.stats {
		sum += v
	}
	p.engineSync = float64(sum) / NumStats

	if p.rng.Float() < anomalyChance {
		p.anomalies++
	}
	return nil
}

// ResolveAnomaly attempts to clear one anomaly through social collaboration.
// Resolution needs social strength above 60 and at least one collaborator,
// and succeeds on a coin flip; success also raises the social stat.
func (p *Profile) ResolveAnomaly() bool {
	if p.anomalies == 0 || p.stats[StatSocial] <= 60 || p.collaborators == 0 {
		return false
	}
	if p.rng.Float() < 0.5 {
		p.anomalies--
		p.stats[StatSocial] = capStat(p.stats[StatSocial] + 10)
		return true
	}
	return false
}

// ClassifyBuild labels the profile by its dominant stat. Balanced needs every
// stat above 70; neutral catches weak or lopsided profiles.
func (p *Profile) ClassifyBuild() Build {
	maxStat := p.stats[0]
	for _, v := range p.stats[1:] {
		if v > maxStat {
			maxStat = v
		}
	}

	allAbove70 := true
	anyBelow20 := false
	for _, v := range p.stats {
		if v <= 70 {
			allAbove70 = false
		}
		if v < 20 {
			anyBelow20 = true
		}
	}

	switch {
	case maxStat == p.stats[StatTerritorial] && maxStat > 0:
		return BuildTerritorial
	case maxStat == p.stats[StatEconomic] && maxStat > 0:
		return BuildEconomic
	case maxStat == p.stats[StatSocial] && maxStat > 0:
		return BuildSocial
	case allAbove70:
		return BuildBalanced
	case maxStat < 30 || anyBelow20:
		return BuildNeutral
	default:
		return BuildUnclassified
	}
}

// CheckTrigger reports whether the build has reached its ending threshold.
// Social triggers earlier than the other dominant builds.
func (p *Profile) CheckTrigger(b Build) bool {
	switch b {
	case BuildTerritorial:
		return p.stats[StatTerritorial] >= 90
	case BuildEconomic:
		return p.stats[StatEconomic] >= 90
	case BuildSocial:
		return p.stats[StatSocial] >= 80
	case BuildBalanced:
		for _, v := range p.stats {
			if v <= 70 {
				return false
			}
		}
		return true
	case BuildNeutral:
		maxStat := 0
		for _, v := range p.stats {
			if v > maxStat {
				maxStat = v
			}
		}
		return maxStat < 30
	default:
		return false
	}
}

// Outcome returns the narrative outcome for a build.
func Outcome(b Build) string {
	switch b {
	case BuildTerritorial:
		return "Domination / Expansion"
	case BuildEconomic:
		return "Trade / Prosperity"
	case BuildSocial:
		return "Influence / Unity"
	case BuildBalanced:
		return "Harmony Between All Systems"
	case BuildNeutral:
		return "Adaptable Survivor"
	default:
		return "Unknown Outcome"
	}
}

// LockIn commits the profile to its classified build once that build's
// trigger has fired. The lock is a normal validated transition, so it only
// happens from states with an edge to locked.
func (p *Profile) LockIn() (Build, bool) {
	b := p.ClassifyBuild()
	if !p.CheckTrigger(b) {
		return b, false
	}
	if err := p.TransitionTo(StateLocked); err != nil {
		return b, false
	}
	return b, true
}

// Evaluate applies the forced-state rules and returns the resulting state.
// More than anomalyLimit unresolved anomalies force anomalous, checked
// before and with priority over the performance rule; performance strictly
// above 90 forces synchronized only when the profile is not anomalous.
func (p *Profile) Evaluate(performance float64) State {
	if p.anomalies > anomalyLimit {
		p.state = StateAnomalous
		return p.state
	}
	if p.state != StateAnomalous && performance > 90 {
		p.state = StateSynchronized
	}
	return p.state
}

func capStat(v int) int {
	if v > 100 {
		return 100
	}
	if v < 0 {
		return 0
	}
	return v
}
