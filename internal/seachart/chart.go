// Package seachart lays the islands out on a noise-generated sea and
// describes the passages between them. The chart is purely descriptive:
// route text and distances never feed back into voyage probability.
package seachart

import (
	"fmt"
	"math"
	"sort"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// Waters classifies the passage between two islands.
type Waters uint8

const (
	WatersOpenOcean Waters = iota
	WatersStrait
	WatersCoastal
)

// String returns a human-readable waters name.
func (w Waters) String() string {
	switch w {
	case WatersOpenOcean:
		return "open ocean"
	case WatersStrait:
		return "narrow straits"
	case WatersCoastal:
		return "coastal passage"
	default:
		return "uncharted waters"
	}
}

// Position is an island's location on the chart, in leagues.
type Position struct {
	X float64
	Y float64
}

// Chart holds island positions and the noise field used to classify the
// waters between them. Generation is deterministic from the seed.
type Chart struct {
	positions map[string]Position
	depth     opensimplex.Noise
}

// chartSpan is the extent of the charted sea in leagues.
const chartSpan = 120.0

// Generate lays out the named islands on a sea chart. Names are sorted
// before placement so the same names and seed always give the same chart.
func Generate(names []string, seed int64) *Chart {
	sorted := make([]string, len(names))
	copy(sorted, names)
	sort.Strings(sorted)

	layout := opensimplex.NewNormalized(seed)
	depth := opensimplex.NewNormalized(seed + 1)

	c := &Chart{
		positions: make(map[string]Position, len(sorted)),
		depth:     depth,
	}

	// Islands sit around a loose ring, displaced by the layout noise so the
	// archipelago looks scattered rather than drawn with a compass.
	for idx, name := range sorted {
		angle := 2 * math.Pi * float64(idx) / float64(len(sorted))
		radius := chartSpan * (0.25 + 0.2*layout.Eval2(float64(idx)*0.7, 0.3))

		jx := (layout.Eval2(float64(idx)*1.3, 7.1) - 0.5) * 20
		jy := (layout.Eval2(float64(idx)*1.3, 13.7) - 0.5) * 20

		c.positions[name] = Position{
			X: chartSpan/2 + radius*math.Cos(angle) + jx,
			Y: chartSpan/2 + radius*math.Sin(angle) + jy,
		}
	}
	return c
}

// Position returns an island's charted position.
func (c *Chart) Position(name string) (Position, bool) {
	p, ok := c.positions[name]
	return p, ok
}

// Distance returns the distance between two islands in leagues, rounded to
// the nearest league. Unknown islands are charted at the origin.
func (c *Chart) Distance(a, b string) float64 {
	pa := c.positions[a]
	pb := c.positions[b]
	return math.Round(math.Hypot(pb.X-pa.X, pb.Y-pa.Y))
}

// Waters classifies the passage between two islands by sampling the depth
// field at the route midpoint.
func (c *Chart) Waters(a, b string) Waters {
	pa := c.positions[a]
	pb := c.positions[b]
	d := c.depth.Eval2((pa.X+pb.X)/2*0.05, (pa.Y+pb.Y)/2*0.05)

	switch {
	case d < 0.35:
		return WatersStrait
	case d > 0.65:
		return WatersCoastal
	default:
		return WatersOpenOcean
	}
}

// RouteDescription renders the route text used in voyage results.
func (c *Chart) RouteDescription(origin, destination string) string {
	return fmt.Sprintf("%s to %s: %.0f leagues through %s",
		origin, destination, c.Distance(origin, destination), c.Waters(origin, destination))
}
