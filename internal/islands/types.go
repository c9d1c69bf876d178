// Package islands provides the island data model and the name-keyed registry.
// Islands are immutable values: every state change produces a fresh copy, and
// the registry replaces the held value atomically.
package islands

// Specialization represents an island's primary role in the trade network.
type Specialization uint8

const (
	SpecHub          Specialization = iota // Entrepôt harbor, redistributes cargo
	SpecProducer                           // Spice, timber, or ore exporter
	SpecCulturalNode                       // Ritual and kinship center
	SpecTechEntrepot                       // Shipwright and chartmaking center
)

// String returns a human-readable specialization name.
func (s Specialization) String() string {
	switch s {
	case SpecHub:
		return "hub"
	case SpecProducer:
		return "producer"
	case SpecCulturalNode:
		return "cultural-node"
	case SpecTechEntrepot:
		return "tech-entrepot"
	default:
		return "unknown"
	}
}

// Island is the core entity: a named port in the voyage network.
type Island struct {
	Name           string         `json:"name"`
	Specialization Specialization `json:"specialization"`

	Autonomy     float64 `json:"autonomy"`     // 0.0–1.0
	Connectivity float64 `json:"connectivity"` // 0.0–1.0, rises on success, falls on failure

	// CulturalResonance maps cultural tags to strengths in 0.0–1.0.
	CulturalResonance map[string]float64 `json:"cultural_resonance"`

	ResourceCapacity int     `json:"resource_capacity"` // Cargo units per season
	InnovationIndex  float64 `json:"innovation_index"`  // >= 0
}

// New creates an island with the fixed founding defaults: autonomy 0.8,
// connectivity 0.4, and resonance/capacity derived from the specialization.
func New(name string, spec Specialization) Island {
	return Island{
		Name:              name,
		Specialization:    spec,
		Autonomy:          0.8,
		Connectivity:      0.4,
		CulturalResonance: defaultResonance(spec),
		ResourceCapacity:  defaultCapacity(spec),
		InnovationIndex:   defaultInnovation(spec),
	}
}

// WithConnectivity returns a copy of the island with connectivity shifted by
// delta and clamped to [0, 1]. The receiver is never mutated.
func (i Island) WithConnectivity(delta float64) Island {
	out := i.Clone()
	out.Connectivity = clamp01(out.Connectivity + delta)
	return out
}

// Clone returns a deep copy of the island, including the resonance map.
func (i Island) Clone() Island {
	out := i
	out.CulturalResonance = make(map[string]float64, len(i.CulturalResonance))
	for tag, strength := range i.CulturalResonance {
		out.CulturalResonance[tag] = strength
	}
	return out
}

// MeanResonance returns the mean cultural-resonance strength, and false when
// the resonance map is empty.
func (i Island) MeanResonance() (float64, bool) {
	if len(i.CulturalResonance) == 0 {
		return 0, false
	}
	sum := 0.0
	for _, strength := range i.CulturalResonance {
		sum += strength
	}
	return sum / float64(len(i.CulturalResonance)), true
}

func defaultResonance(spec Specialization) map[string]float64 {
	switch spec {
	case SpecHub:
		return map[string]float64{"seafaring": 0.8, "exchange": 0.7, "hospitality": 0.6}
	case SpecProducer:
		return map[string]float64{"craft": 0.7, "harvest-rites": 0.6}
	case SpecCulturalNode:
		return map[string]float64{"ritual": 0.9, "oral-tradition": 0.8, "kinship": 0.7}
	case SpecTechEntrepot:
		return map[string]float64{"shipwright": 0.8, "chartmaking": 0.7, "exchange": 0.5}
	default:
		return map[string]float64{}
	}
}

func defaultCapacity(spec Specialization) int {
	switch spec {
	case SpecHub:
		return 200
	case SpecProducer:
		return 150
	case SpecTechEntrepot:
		return 120
	default:
		return 80
	}
}

func defaultInnovation(spec Specialization) float64 {
	switch spec {
	case SpecTechEntrepot:
		return 2.0
	case SpecHub:
		return 1.0
	default:
		return 0.5
	}
}

// KnowledgePool returns the knowledge items an island of the given
// specialization can pass on during a successful voyage.
func KnowledgePool(spec Specialization) []string {
	switch spec {
	case SpecHub:
		return []string{"harbor pilotage", "convoy scheduling", "cargo manifests"}
	case SpecProducer:
		return []string{"spice curing", "timber seasoning", "tide-pool harvesting"}
	case SpecCulturalNode:
		return []string{"star-path chants", "genealogy weaving", "monsoon festivals"}
	case SpecTechEntrepot:
		return []string{"outrigger lashing", "stick charts", "hull caulking", "sail cutting"}
	default:
		return nil
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
