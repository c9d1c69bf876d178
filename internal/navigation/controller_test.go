package navigation

import (
	"errors"
	"math"
	"testing"

	"github.com/talgya/archipelago/internal/entropy"
	"github.com/talgya/archipelago/internal/islands"
	"github.com/talgya/archipelago/internal/monsoon"
)

// scriptedSource replays a fixed sequence of floats, then settles on 0.5.
type scriptedSource struct {
	vals []float64
	idx  int
}

func (s *scriptedSource) Float() float64 {
	if s.idx >= len(s.vals) {
		return 0.5
	}
	v := s.vals[s.idx]
	s.idx++
	return v
}

func (s *scriptedSource) Intn(n int) int {
	v := int(s.Float() * float64(n))
	if v >= n {
		v = n - 1
	}
	return v
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// producerPair builds a controller over two producer islands with an empty
// route table: neutral monsoon factor, zero synergy, probability 0.2.
func producerPair(t *testing.T, rng entropy.Source) *Controller {
	t.Helper()
	c, err := New(map[string]islands.Specialization{
		"banda":   islands.SpecProducer,
		"ternate": islands.SpecProducer,
	}, rng, monsoon.NewCycleEngine(nil))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func TestSuccessProbability_NeutralBaseline(t *testing.T) {
	o := NewOutcomeEngine(entropy.NewSeeded(1))
	origin := islands.New("banda", islands.SpecProducer)
	destination := islands.New("ternate", islands.SpecProducer)

	got := o.SuccessProbability(origin, destination, false)
	if !approx(got, 0.2) {
		t.Errorf("probability = %f, want 0.2", got)
	}
}

func TestSuccessProbability_Clamps(t *testing.T) {
	o := NewOutcomeEngine(entropy.NewSeeded(1))

	low := islands.New("a", islands.SpecProducer)
	low.Connectivity = 0.0
	if got := o.SuccessProbability(low, low, false); got != 0.05 {
		t.Errorf("low clamp = %f, want 0.05", got)
	}

	hub := islands.New("b", islands.SpecHub)
	hub.Connectivity = 1.0
	tech := islands.New("c", islands.SpecTechEntrepot)
	tech.Connectivity = 1.0
	if got := o.SuccessProbability(hub, tech, true); got != 0.95 {
		t.Errorf("high clamp = %f, want 0.95", got)
	}
}

func TestNavigate_SuccessPath(t *testing.T) {
	// First draw 0.1 < 0.2: success. Remaining draws feed the payload.
	c := producerPair(t, &scriptedSource{vals: []float64{0.1}})

	result, err := c.Navigate("banda", "ternate", "trade")
	if err != nil {
		t.Fatalf("Navigate: %v", err)
	}
	if !result.Success {
		t.Fatal("expected success")
	}

	st := c.Status()
	if st.TotalVoyages != 1 || st.SuccessfulVoyages != 1 {
		t.Errorf("counters = %d/%d, want 1/1", st.TotalVoyages, st.SuccessfulVoyages)
	}
	if st.CulturalExchanges != 1 {
		t.Errorf("CulturalExchanges = %d, want exactly 1", st.CulturalExchanges)
	}
	if st.DisruptionEvents != 0 {
		t.Errorf("DisruptionEvents = %d, want 0", st.DisruptionEvents)
	}
	if !approx(st.IslandConnectivity["banda"], 0.5) {
		t.Errorf("origin connectivity = %f, want 0.5", st.IslandConnectivity["banda"])
	}
	if !approx(st.IslandConnectivity["ternate"], 0.5) {
		t.Errorf("destination connectivity = %f, want 0.5", st.IslandConnectivity["ternate"])
	}
	if result.TradeVolume <= 0 {
		t.Errorf("TradeVolume = %d, want > 0", result.TradeVolume)
	}
	for _, cat := range []string{"navigation-knowledge", "trade-practices", "cultural-artifacts"} {
		if result.CulturalExchange[cat] < 1 {
			t.Errorf("category %q = %d, want >= 1", cat, result.CulturalExchange[cat])
		}
	}
	if len(result.Knowledge) < 1 || len(result.Knowledge) > 3 {
		t.Errorf("knowledge sample size = %d, want 1-3", len(result.Knowledge))
	}
	if len(result.NetworkEffects) == 0 {
		t.Error("expected network effect text")
	}
}

func TestNavigate_FailurePath(t *testing.T) {
	// Draw 0.99 >= 0.2: failure.
	c := producerPair(t, &scriptedSource{vals: []float64{0.99}})

	result, err := c.Navigate("banda", "ternate", "trade")
	if err != nil {
		t.Fatalf("Navigate: %v", err)
	}
	if result.Success {
		t.Fatal("expected failure")
	}
	if result.TradeVolume != 0 || len(result.CulturalExchange) != 0 || len(result.Knowledge) != 0 {
		t.Error("failed voyage must not generate trade, culture, or knowledge")
	}
	if len(result.NetworkEffects) == 0 {
		t.Error("expected disruption effect text")
	}

	st := c.Status()
	if st.DisruptionEvents != 1 {
		t.Errorf("DisruptionEvents = %d, want 1", st.DisruptionEvents)
	}
	if st.CulturalExchanges != 0 {
		t.Errorf("CulturalExchanges = %d, want 0 on failure", st.CulturalExchanges)
	}
	if !approx(st.IslandConnectivity["banda"], 0.35) {
		t.Errorf("origin connectivity = %f, want 0.35", st.IslandConnectivity["banda"])
	}
	if !approx(st.IslandConnectivity["ternate"], 0.4) {
		t.Errorf("destination connectivity = %f, want 0.4 (unchanged)", st.IslandConnectivity["ternate"])
	}
}

func TestNavigate_FailureClampsAtZero(t *testing.T) {
	c := producerPair(t, &scriptedSource{vals: []float64{0.99}})
	c.RestoreConnectivity(map[string]float64{"banda": 0.03})

	if _, err := c.Navigate("banda", "ternate", "trade"); err != nil {
		t.Fatalf("Navigate: %v", err)
	}
	if got := c.Status().IslandConnectivity["banda"]; got != 0.0 {
		t.Errorf("connectivity = %f, want exactly 0.0", got)
	}
}

func TestNavigate_UnknownIsland(t *testing.T) {
	c := producerPair(t, entropy.NewSeeded(1))

	_, err := c.Navigate("atlantis", "ternate", "trade")
	var unknownErr *UnknownIslandError
	if !errors.As(err, &unknownErr) {
		t.Fatalf("err = %v, want *UnknownIslandError", err)
	}
	if unknownErr.Name != "atlantis" {
		t.Errorf("Name = %q, want atlantis", unknownErr.Name)
	}

	st := c.Status()
	if st.TotalVoyages != 0 || st.DisruptionEvents != 0 || st.CulturalExchanges != 0 {
		t.Error("counters mutated on a rejected voyage")
	}
	if !approx(st.IslandConnectivity["ternate"], 0.4) {
		t.Error("island state mutated on a rejected voyage")
	}
}

func TestNavigate_AdvancesMonsoon(t *testing.T) {
	cycle := monsoon.NewCycleEngine(nil)
	c, err := New(map[string]islands.Specialization{
		"banda":   islands.SpecProducer,
		"ternate": islands.SpecProducer,
	}, entropy.NewSeeded(1), cycle)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	c.Navigate("banda", "ternate", "trade")
	if cycle.Day() != 1 {
		t.Errorf("monsoon day = %d after one voyage, want 1", cycle.Day())
	}
}

func TestNavigate_DefaultIntent(t *testing.T) {
	c := producerPair(t, entropy.NewSeeded(1))
	result, err := c.Navigate("banda", "ternate", "")
	if err != nil {
		t.Fatalf("Navigate: %v", err)
	}
	if result.Intent != "trade" {
		t.Errorf("Intent = %q, want trade", result.Intent)
	}
}

func TestSimulateCycle_Deterministic(t *testing.T) {
	run := func() (SeasonSummary, Status) {
		specs := map[string]islands.Specialization{
			"malacca":  islands.SpecHub,
			"ternate":  islands.SpecProducer,
			"banda":    islands.SpecProducer,
			"cebu":     islands.SpecCulturalNode,
			"surabaya": islands.SpecTechEntrepot,
		}
		c, err := New(specs, entropy.NewSeeded(123), monsoon.NewCycleEngine(monsoon.DefaultRoutes()))
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		summary, err := c.SimulateCycle(20)
		if err != nil {
			t.Fatalf("SimulateCycle: %v", err)
		}
		return summary, c.Status()
	}

	s1, st1 := run()
	s2, st2 := run()

	if s1 != s2 {
		t.Errorf("summaries diverge under fixed seed:\n%+v\n%+v", s1, s2)
	}
	if st1.TotalVoyages != st2.TotalVoyages || st1.Coherence != st2.Coherence || st1.NetworkState != st2.NetworkState {
		t.Errorf("statuses diverge under fixed seed:\n%+v\n%+v", st1, st2)
	}
	for name, conn := range st1.IslandConnectivity {
		if st2.IslandConnectivity[name] != conn {
			t.Errorf("connectivity for %s diverges: %f vs %f", name, conn, st2.IslandConnectivity[name])
		}
	}
}

func TestSimulateCycle_CountsAddUp(t *testing.T) {
	c, err := New(map[string]islands.Specialization{
		"malacca": islands.SpecHub,
		"ternate": islands.SpecProducer,
		"banda":   islands.SpecProducer,
	}, entropy.NewSeeded(7), monsoon.NewCycleEngine(nil))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	summary, err := c.SimulateCycle(30)
	if err != nil {
		t.Fatalf("SimulateCycle: %v", err)
	}
	if summary.Voyages != 30 {
		t.Errorf("Voyages = %d, want 30", summary.Voyages)
	}
	if summary.Successes+summary.Failures != summary.Voyages {
		t.Errorf("successes %d + failures %d != voyages %d",
			summary.Successes, summary.Failures, summary.Voyages)
	}

	st := c.Status()
	if st.TotalVoyages != 30 {
		t.Errorf("TotalVoyages = %d, want 30", st.TotalVoyages)
	}
	if st.SuccessfulVoyages != summary.Successes {
		t.Errorf("SuccessfulVoyages = %d, want %d", st.SuccessfulVoyages, summary.Successes)
	}
}

func TestSimulateCycle_TooFewIslands(t *testing.T) {
	c, err := New(map[string]islands.Specialization{
		"malacca": islands.SpecHub,
	}, entropy.NewSeeded(1), monsoon.NewCycleEngine(nil))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := c.SimulateCycle(5); !errors.Is(err, ErrTooFewIslands) {
		t.Errorf("err = %v, want ErrTooFewIslands", err)
	}
}

func TestStatus_SnapshotIsCopy(t *testing.T) {
	c := producerPair(t, entropy.NewSeeded(1))
	st := c.Status()
	st.IslandConnectivity["banda"] = 0.0

	if got := c.Status().IslandConnectivity["banda"]; got == 0.0 {
		t.Error("status snapshot shares internal state")
	}
}

func TestNew_EmptyMapping(t *testing.T) {
	_, err := New(nil, entropy.NewSeeded(1), nil)
	if !errors.Is(err, islands.ErrNoIslands) {
		t.Errorf("err = %v, want ErrNoIslands", err)
	}
}

func TestNavigate_InvariantsHoldOverManyVoyages(t *testing.T) {
	c, err := New(map[string]islands.Specialization{
		"malacca":  islands.SpecHub,
		"ternate":  islands.SpecProducer,
		"banda":    islands.SpecProducer,
		"surabaya": islands.SpecTechEntrepot,
	}, entropy.NewSeeded(99), monsoon.NewCycleEngine(monsoon.DefaultRoutes()))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, err := c.SimulateCycle(200); err != nil {
		t.Fatalf("SimulateCycle: %v", err)
	}

	for _, i := range c.Islands() {
		if i.Connectivity < 0 || i.Connectivity > 1 {
			t.Errorf("%s connectivity = %f, out of [0, 1]", i.Name, i.Connectivity)
		}
		if i.Autonomy < 0 || i.Autonomy > 1 {
			t.Errorf("%s autonomy = %f, out of [0, 1]", i.Name, i.Autonomy)
		}
	}
	st := c.Status()
	if st.Coherence < 0 || st.Coherence > 1 {
		t.Errorf("coherence = %f, out of [0, 1]", st.Coherence)
	}
}
