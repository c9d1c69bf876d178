// Package navigation provides the voyage engine: outcome probability,
// network coherence, the derived network state, and the controller that
// composes them per voyage.
package navigation

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/talgya/archipelago/internal/entropy"
	"github.com/talgya/archipelago/internal/islands"
	"github.com/talgya/archipelago/internal/monsoon"
)

// Connectivity deltas applied per voyage outcome.
const (
	successDelta = 0.1
	failureDelta = -0.05
)

// originHubBias is the probability that SimulateCycle picks a hub or
// tech-entrepot origin when any exist.
const originHubBias = 0.7

// Result is the immutable record of one voyage. It is produced once, never
// mutated, and not retained by the controller.
type Result struct {
	Success          bool           `json:"success"`
	Origin           string         `json:"origin"`
	Destination      string         `json:"destination"`
	Intent           string         `json:"intent"`
	Route            string         `json:"route"`
	MonsoonFavorable bool           `json:"monsoon_favorable"`
	CulturalExchange map[string]int `json:"cultural_exchange,omitempty"`
	TradeVolume      int            `json:"trade_volume"`
	Knowledge        []string       `json:"knowledge_transferred,omitempty"`
	NetworkEffects   []string       `json:"network_effects"`
}

// Status is a read-only snapshot of the controller. All values are copies.
type Status struct {
	NetworkState       NetworkState       `json:"network_state"`
	Coherence          float64            `json:"coherence"`
	MonsoonPhase       monsoon.Phase      `json:"monsoon_phase"`
	MonsoonDay         int                `json:"monsoon_day"`
	TotalVoyages       int                `json:"total_voyages"`
	SuccessfulVoyages  int                `json:"successful_voyages"`
	SuccessRate        float64            `json:"success_rate"`
	CulturalExchanges  int                `json:"cultural_exchanges"`
	DisruptionEvents   int                `json:"disruption_events"`
	IslandConnectivity map[string]float64 `json:"island_connectivity"`
}

// SeasonSummary aggregates one SimulateCycle run.
type SeasonSummary struct {
	Voyages      int           `json:"voyages"`
	Successes    int           `json:"successes"`
	Failures     int           `json:"failures"`
	TradeVolume  int           `json:"trade_volume"`
	Knowledge    int           `json:"knowledge_items"`
	NetworkState NetworkState  `json:"network_state"`
	Coherence    float64       `json:"coherence"`
	MonsoonPhase monsoon.Phase `json:"monsoon_phase"`
}

// RouteDescriber supplies route description text for voyage results.
type RouteDescriber interface {
	RouteDescription(origin, destination string) string
}

// Controller orchestrates voyages. It is the sole mutator of the registry and
// the only component exposed to callers.
type Controller struct {
	registry *islands.Registry
	cycle    *monsoon.CycleEngine
	outcome  *OutcomeEngine
	rng      entropy.Source

	// Chart, when set, provides route descriptions for results. Optional.
	Chart RouteDescriber

	// OnResult, when set, is called with every completed voyage result.
	// The driver uses it to append voyages to the persistence log.
	OnResult func(Result)

	state             NetworkState
	coherence         float64
	totalVoyages      int
	successfulVoyages int
	culturalExchanges int
	disruptionEvents  int
}

// New creates a controller from a name-to-specialization mapping. The mapping
// must be non-empty. A nil rng gets a time-seeded source; a nil cycle gets
// the default route chart.
func New(specs map[string]islands.Specialization, rng entropy.Source, cycle *monsoon.CycleEngine) (*Controller, error) {
	registry, err := islands.NewRegistry(specs)
	if err != nil {
		return nil, fmt.Errorf("build registry: %w", err)
	}
	if rng == nil {
		rng = entropy.NewSeeded(time.Now().UnixNano())
	}
	if cycle == nil {
		cycle = monsoon.NewCycleEngine(monsoon.DefaultRoutes())
	}

	c := &Controller{
		registry: registry,
		cycle:    cycle,
		outcome:  NewOutcomeEngine(rng),
		rng:      rng,
	}
	c.coherence = Coherence(registry.All())
	c.state = DeriveState(c.coherence, 0, 0)
	return c, nil
}

// Navigate attempts one voyage between two islands. Unknown names fail with
// *UnknownIslandError before any state is touched; once the voyage begins it
// runs to a definite result and updates every counter exactly once.
func (c *Controller) Navigate(originName, destinationName, intent string) (Result, error) {
	origin, ok := c.registry.Get(originName)
	if !ok {
		return Result{}, &UnknownIslandError{Name: originName}
	}
	destination, ok := c.registry.Get(destinationName)
	if !ok {
		return Result{}, &UnknownIslandError{Name: destinationName}
	}
	if intent == "" {
		intent = "trade"
	}

	c.totalVoyages++

	favorable, factor := c.cycle.Favorability(originName, destinationName)
	probability := c.outcome.SuccessProbability(origin, destination, favorable)
	success := c.outcome.Draw(probability)

	result := Result{
		Success:          success,
		Origin:           originName,
		Destination:      destinationName,
		Intent:           intent,
		Route:            c.describeRoute(originName, destinationName),
		MonsoonFavorable: favorable,
	}

	if success {
		c.culturalExchanges++
		c.registry.Put(origin.WithConnectivity(successDelta))
		c.registry.Put(destination.WithConnectivity(successDelta))

		result.CulturalExchange = c.outcome.CulturalExchange()
		result.TradeVolume = c.outcome.TradeVolume()
		result.Knowledge = c.outcome.KnowledgeTransfer(origin, destination)
		result.NetworkEffects = []string{
			fmt.Sprintf("trade route between %s and %s strengthened", originName, destinationName),
			fmt.Sprintf("%s fleets now call more often at %s", originName, destinationName),
		}
		c.successfulVoyages++
	} else {
		c.disruptionEvents++
		c.registry.Put(origin.WithConnectivity(failureDelta))
		result.NetworkEffects = []string{
			fmt.Sprintf("voyage from %s to %s scattered by adverse winds", originName, destinationName),
		}
	}

	c.coherence = Coherence(c.registry.All())
	c.state = DeriveState(c.coherence, c.totalVoyages, c.successRate())

	c.cycle.Advance(1)

	slog.Debug("voyage resolved",
		"origin", originName,
		"destination", destinationName,
		"intent", intent,
		"success", success,
		"probability", fmt.Sprintf("%.3f", probability),
		"favorable", favorable,
		"factor", factor,
		"state", c.state.String(),
	)

	if c.OnResult != nil {
		c.OnResult(result)
	}
	return result, nil
}

// SimulateCycle runs numVoyages random voyages and returns the aggregated
// season summary. Origins are biased toward hub and tech-entrepot islands;
// self-pairs are excluded.
func (c *Controller) SimulateCycle(numVoyages int) (SeasonSummary, error) {
	names := c.registry.Names()
	if len(names) < 2 {
		return SeasonSummary{}, ErrTooFewIslands
	}

	var hubs []string
	for _, name := range names {
		i, _ := c.registry.Get(name)
		if i.Specialization == islands.SpecHub || i.Specialization == islands.SpecTechEntrepot {
			hubs = append(hubs, name)
		}
	}

	var summary SeasonSummary
	for v := 0; v < numVoyages; v++ {
		var origin string
		if len(hubs) > 0 && c.rng.Float() < originHubBias {
			origin = hubs[c.rng.Intn(len(hubs))]
		} else {
			origin = names[c.rng.Intn(len(names))]
		}

		destination := origin
		for destination == origin {
			destination = names[c.rng.Intn(len(names))]
		}

		result, err := c.Navigate(origin, destination, "trade")
		if err != nil {
			return summary, fmt.Errorf("voyage %d: %w", v, err)
		}

		summary.Voyages++
		if result.Success {
			summary.Successes++
			summary.TradeVolume += result.TradeVolume
			summary.Knowledge += len(result.Knowledge)
		} else {
			summary.Failures++
		}
	}

	summary.NetworkState = c.state
	summary.Coherence = c.coherence
	summary.MonsoonPhase = c.cycle.Phase()
	return summary, nil
}

// Status returns a deep-copied snapshot of the controller state.
func (c *Controller) Status() Status {
	return Status{
		NetworkState:       c.state,
		Coherence:          c.coherence,
		MonsoonPhase:       c.cycle.Phase(),
		MonsoonDay:         c.cycle.Day(),
		TotalVoyages:       c.totalVoyages,
		SuccessfulVoyages:  c.successfulVoyages,
		SuccessRate:        c.successRate(),
		CulturalExchanges:  c.culturalExchanges,
		DisruptionEvents:   c.disruptionEvents,
		IslandConnectivity: c.registry.Connectivity(),
	}
}

// Islands returns copies of every island in sorted name order.
func (c *Controller) Islands() []islands.Island {
	return c.registry.All()
}

// RestoreConnectivity applies saved connectivity values to matching islands.
// Unknown names are ignored. Used by the driver when resuming from a saved
// world.
func (c *Controller) RestoreConnectivity(saved map[string]float64) {
	for name, conn := range saved {
		i, ok := c.registry.Get(name)
		if !ok {
			continue
		}
		c.registry.Put(i.WithConnectivity(conn - i.Connectivity))
	}
	c.coherence = Coherence(c.registry.All())
	c.state = DeriveState(c.coherence, c.totalVoyages, c.successRate())
}

func (c *Controller) successRate() float64 {
	if c.totalVoyages == 0 {
		return 0
	}
	return float64(c.successfulVoyages) / float64(c.totalVoyages)
}

func (c *Controller) describeRoute(origin, destination string) string {
	if c.Chart != nil {
		return c.Chart.RouteDescription(origin, destination)
	}
	return fmt.Sprintf("monsoon passage from %s to %s", origin, destination)
}
