package navigation

import (
	"github.com/talgya/archipelago/internal/entropy"
	"github.com/talgya/archipelago/internal/islands"
)

// Probability bounds: even hopeless voyages occasionally land, and even
// perfect ones occasionally founder.
const (
	minProbability = 0.05
	maxProbability = 0.95
)

// Monsoon adjustment to success probability.
const (
	favorableBonus    = 0.3
	unfavorablePenalty = -0.2
)

// Cultural exchange categories synthesized on a successful voyage.
var exchangeCategories = []string{
	"navigation-knowledge",
	"trade-practices",
	"cultural-artifacts",
}

// OutcomeEngine computes success probabilities and synthesizes voyage
// payloads from the injected random source.
type OutcomeEngine struct {
	rng entropy.Source
}

// NewOutcomeEngine creates an outcome engine over the given source.
func NewOutcomeEngine(rng entropy.Source) *OutcomeEngine {
	return &OutcomeEngine{rng: rng}
}

// SuccessProbability combines endpoint connectivity, the monsoon adjustment,
// and specialization synergy, clamped to [0.05, 0.95].
func (o *OutcomeEngine) SuccessProbability(origin, destination islands.Island, favorable bool) float64 {
	base := (origin.Connectivity + destination.Connectivity) / 2

	bonus := unfavorablePenalty
	if favorable {
		bonus = favorableBonus
	}

	p := base + bonus + Synergy(origin.Specialization, destination.Specialization)
	if p < minProbability {
		return minProbability
	}
	if p > maxProbability {
		return maxProbability
	}
	return p
}

// Draw performs the single uniform outcome draw: a sample below the
// probability succeeds, at or above it fails.
func (o *OutcomeEngine) Draw(probability float64) bool {
	return o.rng.Float() < probability
}

// CulturalExchange draws independent bounded amounts for each category.
func (o *OutcomeEngine) CulturalExchange() map[string]int {
	out := make(map[string]int, len(exchangeCategories))
	for _, cat := range exchangeCategories {
		out[cat] = 1 + o.rng.Intn(5)
	}
	return out
}

// TradeVolume draws a bounded cargo volume for a successful voyage.
func (o *OutcomeEngine) TradeVolume() int {
	return 10 + o.rng.Intn(91)
}

// KnowledgeTransfer samples 1-3 items without repetition from the union of
// both endpoints' knowledge pools. An empty union yields an empty list.
func (o *OutcomeEngine) KnowledgeTransfer(origin, destination islands.Island) []string {
	seen := make(map[string]bool)
	var pool []string
	for _, item := range islands.KnowledgePool(origin.Specialization) {
		if !seen[item] {
			seen[item] = true
			pool = append(pool, item)
		}
	}
	for _, item := range islands.KnowledgePool(destination.Specialization) {
		if !seen[item] {
			seen[item] = true
			pool = append(pool, item)
		}
	}
	if len(pool) == 0 {
		return nil
	}

	n := 1 + o.rng.Intn(3)
	if n > len(pool) {
		n = len(pool)
	}

	entropy.Shuffle(o.rng, len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	return pool[:n]
}
