package navigation

import "github.com/talgya/archipelago/internal/islands"

// Coherence derives the network-wide coherence score in [0, 1] from average
// connectivity and cultural-resonance alignment.
func Coherence(all []islands.Island) float64 {
	if len(all) == 0 {
		return 0.0
	}

	sum := 0.0
	for _, i := range all {
		sum += i.Connectivity
	}
	avgConnectivity := sum / float64(len(all))

	return (avgConnectivity + culturalAlignment(all)) / 2
}

// culturalAlignment measures how closely island cultures track each other:
// 1 minus the population variance of per-island mean resonances, floored at
// zero. Islands with no resonance tags are excluded from the measure.
func culturalAlignment(all []islands.Island) float64 {
	if len(all) < 2 {
		return 1.0
	}

	var means []float64
	for _, i := range all {
		if m, ok := i.MeanResonance(); ok {
			means = append(means, m)
		}
	}
	if len(means) == 0 {
		return 0.5
	}

	alignment := 1.0 - populationVariance(means)
	if alignment < 0 {
		return 0.0
	}
	return alignment
}

func populationVariance(vals []float64) float64 {
	mean := 0.0
	for _, v := range vals {
		mean += v
	}
	mean /= float64(len(vals))

	variance := 0.0
	for _, v := range vals {
		d := v - mean
		variance += d * d
	}
	return variance / float64(len(vals))
}
