package sampler

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// claimsHeader is the column layout used by most tests.
var claimsHeader = []string{"claim_hcc_id", "claim_source", "claim_type", "status", "payment_status"}

// claimsDataset builds a dataset over claimsHeader.
func claimsDataset(rows ...[]string) *Dataset {
	return NewDataset(claimsHeader, rows)
}

// newTestSampler builds a sampler over the default weight pairs with a fixed
// seed. A nil permuter selects the seeded shuffle.
func newTestSampler(t *testing.T, pairs []WeightPair, permuter Permuter) *Sampler {
	t.Helper()
	table, err := NewWeightTable(pairs)
	require.NoError(t, err)
	s, err := NewSampler(SamplerConfig{
		IDField:  DefaultIDField,
		Table:    table,
		RNG:      NewPartitionedRNG(NewRunKey(42)),
		Permuter: permuter,
	})
	require.NoError(t, err)
	return s
}

// scoreDefault scores ds against the default weight pairs.
func scoreDefault(t *testing.T, ds *Dataset) ScoredSet {
	t.Helper()
	table, err := NewWeightTable(DefaultWeightPairs())
	require.NoError(t, err)
	return Score(ds.Records, table)
}

// ids returns the identifier of every record, in order.
func ids(records []ScoredRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Get(DefaultIDField)
	}
	return out
}

// reversePermuter walks records back to front.
type reversePermuter struct{}

func (reversePermuter) Permute(n int) []int {
	order := make([]int, n)
	for i := range order {
		order[i] = n - 1 - i
	}
	return order
}

func intPtr(v int) *int { return &v }
