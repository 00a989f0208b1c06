package sampler

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
)

// Drawer names accepted by NewDrawer.
const (
	DrawLinear = "linear"
	DrawBisect = "bisect"
)

// validDrawers maps drawer names to validity. Unexported to prevent mutation.
var validDrawers = map[string]bool{
	DrawLinear: true,
	DrawBisect: true,
}

// IsValidDrawer returns true if name is a recognized drawer.
func IsValidDrawer(name string) bool { return validDrawers[name] }

// ValidDrawerNames returns sorted valid drawer names.
func ValidDrawerNames() []string {
	names := make([]string, 0, len(validDrawers))
	for name := range validDrawers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Drawer selects one index from a probability distribution per call.
// Implementations are built once per distribution and may be drawn from
// repeatedly; every draw is independent (with replacement).
type Drawer interface {
	// Draw returns an index in [0, len(probabilities)) with likelihood
	// proportional to its probability.
	Draw(rng *rand.Rand) int
}

// NewDrawer builds the named drawer over probabilities. An empty name
// selects DrawLinear. The distribution must have a positive total.
func NewDrawer(name string, probabilities []float64) (Drawer, error) {
	cdf, err := newCumulative(probabilities)
	if err != nil {
		return nil, err
	}
	switch name {
	case "", DrawLinear:
		return &linearDrawer{cumulative: cdf}, nil
	case DrawBisect:
		return &bisectDrawer{cumulative: cdf}, nil
	default:
		return nil, fmt.Errorf("unknown drawer %q; valid: %s", name, strings.Join(ValidDrawerNames(), ", "))
	}
}

// cumulative is the running sum of a probability vector. total is read
// from the last running sum rather than assumed to be 1.
type cumulative struct {
	sums  []float64
	probs []float64
	total float64
	last  int // last index with positive probability
}

func newCumulative(probabilities []float64) (cumulative, error) {
	c := cumulative{
		sums:  make([]float64, len(probabilities)),
		probs: probabilities,
		last:  -1,
	}
	running := 0.0
	for i, p := range probabilities {
		if p < 0 {
			return cumulative{}, fmt.Errorf("probability[%d] must be non-negative, got %f", i, p)
		}
		running += p
		c.sums[i] = running
		if p > 0 {
			c.last = i
		}
	}
	c.total = running
	if c.total <= 0 {
		return cumulative{}, fmt.Errorf("distribution total must be positive, got %f", c.total)
	}
	return c, nil
}

// point draws a uniform value in [0, total).
func (c cumulative) point(rng *rand.Rand) float64 {
	return rng.Float64() * c.total
}

// linearDrawer is an inverse-CDF sampler that scans the cumulative sums
// front to back. O(len) per draw.
type linearDrawer struct {
	cumulative cumulative
}

func (d *linearDrawer) Draw(rng *rand.Rand) int {
	u := d.cumulative.point(rng)
	for i, sum := range d.cumulative.sums {
		// A zero-probability row can only tie a draw of exactly its running
		// sum; it must never be selected.
		if sum >= u && d.cumulative.probs[i] > 0 {
			return i
		}
	}
	return d.cumulative.last
}

// bisectDrawer is the binary-search form of linearDrawer. Same
// distribution, O(log len) per draw.
type bisectDrawer struct {
	cumulative cumulative
}

func (d *bisectDrawer) Draw(rng *rand.Rand) int {
	u := d.cumulative.point(rng)
	sums := d.cumulative.sums
	i := sort.Search(len(sums), func(i int) bool { return sums[i] > u })
	if i >= len(sums) {
		return d.cumulative.last
	}
	return i
}
