package navigation

import (
	"testing"

	"github.com/talgya/archipelago/internal/islands"
)

func TestCoherence_EmptyRegistry(t *testing.T) {
	if got := Coherence(nil); got != 0.0 {
		t.Errorf("Coherence(nil) = %f, want 0.0", got)
	}
}

func TestCoherence_SingleIsland(t *testing.T) {
	// Fewer than two islands: alignment is 1.0, so coherence is
	// (connectivity + 1) / 2.
	i := islands.New("malacca", islands.SpecHub)
	got := Coherence([]islands.Island{i})
	want := (0.4 + 1.0) / 2
	if got != want {
		t.Errorf("Coherence = %f, want %f", got, want)
	}
}

func TestCoherence_AllEmptyResonance(t *testing.T) {
	bare := func(name string) islands.Island {
		return islands.Island{Name: name, Connectivity: 0.4}
	}
	got := Coherence([]islands.Island{bare("a"), bare("b")})
	// No island carries resonance tags: alignment falls back to 0.5.
	want := (0.4 + 0.5) / 2
	if got != want {
		t.Errorf("Coherence = %f, want %f", got, want)
	}
}

func TestCoherence_IdenticalResonanceAligns(t *testing.T) {
	mk := func(name string) islands.Island {
		return islands.Island{
			Name:              name,
			Connectivity:      0.6,
			CulturalResonance: map[string]float64{"ritual": 0.7},
		}
	}
	got := Coherence([]islands.Island{mk("a"), mk("b"), mk("c")})
	// Zero variance: alignment 1.0.
	want := (0.6 + 1.0) / 2
	if got != want {
		t.Errorf("Coherence = %f, want %f", got, want)
	}
}

func TestCoherence_InRange(t *testing.T) {
	var all []islands.Island
	all = append(all,
		islands.Island{Name: "a", Connectivity: 1.0, CulturalResonance: map[string]float64{"x": 1.0}},
		islands.Island{Name: "b", Connectivity: 0.0, CulturalResonance: map[string]float64{"x": 0.0}},
		islands.Island{Name: "c", Connectivity: 0.5},
	)
	got := Coherence(all)
	if got < 0 || got > 1 {
		t.Errorf("Coherence = %f, want [0, 1]", got)
	}
}
