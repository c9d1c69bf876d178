package navigation

import "github.com/talgya/archipelago/internal/islands"

// specPair is an unordered specialization pairing.
type specPair struct {
	a, b islands.Specialization
}

// synergyTable holds the pairwise probability bonuses. Each pairing appears
// once; Synergy checks both orderings. Absent pairings contribute nothing.
var synergyTable = map[specPair]float64{
	{islands.SpecHub, islands.SpecProducer}:          0.15,
	{islands.SpecHub, islands.SpecTechEntrepot}:      0.2,
	{islands.SpecHub, islands.SpecCulturalNode}:      0.1,
	{islands.SpecHub, islands.SpecHub}:               0.05,
	{islands.SpecProducer, islands.SpecTechEntrepot}: 0.12,
	{islands.SpecCulturalNode, islands.SpecCulturalNode}: 0.1,
	{islands.SpecCulturalNode, islands.SpecTechEntrepot}: 0.08,
}

// Synergy returns the symmetric specialization bonus for a voyage between the
// two endpoint types, or 0.0 when no pairing is charted.
func Synergy(a, b islands.Specialization) float64 {
	if bonus, ok := synergyTable[specPair{a, b}]; ok {
		return bonus
	}
	if bonus, ok := synergyTable[specPair{b, a}]; ok {
		return bonus
	}
	return 0.0
}
