package sampler

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDrawer_DegenerateDistribution_AlwaysPicksOnlyCandidate(t *testing.T) {
	for _, name := range ValidDrawerNames() {
		t.Run(name, func(t *testing.T) {
			// GIVEN probabilities [1, 0, 0]
			d, err := NewDrawer(name, []float64{1, 0, 0})
			require.NoError(t, err)
			rng := rand.New(rand.NewSource(7))

			// THEN every draw is index 0
			for i := 0; i < 1000; i++ {
				assert.Equal(t, 0, d.Draw(rng))
			}
		})
	}
}

func TestNewDrawer_LeadingZeroProbability_NeverSelected(t *testing.T) {
	for _, name := range ValidDrawerNames() {
		t.Run(name, func(t *testing.T) {
			d, err := NewDrawer(name, []float64{0, 0, 1})
			require.NoError(t, err)
			rng := rand.New(rand.NewSource(7))
			for i := 0; i < 1000; i++ {
				assert.Equal(t, 2, d.Draw(rng))
			}
		})
	}
}

func TestNewDrawer_FrequenciesFollowProbabilities(t *testing.T) {
	probs := []float64{0.1, 0.2, 0.3, 0.4}
	const draws = 40000
	for _, name := range ValidDrawerNames() {
		t.Run(name, func(t *testing.T) {
			d, err := NewDrawer(name, probs)
			require.NoError(t, err)
			rng := rand.New(rand.NewSource(42))

			counts := make([]int, len(probs))
			for i := 0; i < draws; i++ {
				counts[d.Draw(rng)]++
			}
			for i, p := range probs {
				assert.InDelta(t, p, float64(counts[i])/draws, 0.02, "index %d", i)
			}
		})
	}
}

func TestNewDrawer_LinearAndBisect_SameSequence(t *testing.T) {
	// GIVEN both drawers over the same distribution and identically seeded RNGs
	probs := []float64{0.05, 0, 0.25, 0.3, 0, 0.4}
	linear, err := NewDrawer(DrawLinear, probs)
	require.NoError(t, err)
	bisect, err := NewDrawer(DrawBisect, probs)
	require.NoError(t, err)
	rngA := rand.New(rand.NewSource(99))
	rngB := rand.New(rand.NewSource(99))

	// THEN they select the same indices
	for i := 0; i < 2000; i++ {
		require.Equal(t, linear.Draw(rngA), bisect.Draw(rngB), "draw %d", i)
	}
}

func TestNewDrawer_UnnormalizedTotal(t *testing.T) {
	// GIVEN weights that do not sum to 1
	d, err := NewDrawer(DrawLinear, []float64{3, 1})
	require.NoError(t, err)
	rng := rand.New(rand.NewSource(1))

	counts := [2]int{}
	for i := 0; i < 20000; i++ {
		counts[d.Draw(rng)]++
	}
	assert.InDelta(t, 0.75, float64(counts[0])/20000, 0.02)
}

func TestNewDrawer_Errors(t *testing.T) {
	tests := []struct {
		name  string
		draw  string
		probs []float64
	}{
		{"unknown name", "alias", []float64{1}},
		{"zero total", DrawLinear, []float64{0, 0}},
		{"empty", DrawBisect, nil},
		{"negative", DrawLinear, []float64{0.5, -0.1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDrawer(tt.draw, tt.probs)
			assert.Error(t, err)
		})
	}
}

func TestIsValidDrawer(t *testing.T) {
	assert.True(t, IsValidDrawer("linear"))
	assert.True(t, IsValidDrawer("bisect"))
	assert.False(t, IsValidDrawer(""))
	assert.Equal(t, []string{"bisect", "linear"}, ValidDrawerNames())
}
