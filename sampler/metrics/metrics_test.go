package metrics

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/claimsampler/claimsampler/sampler"
	"github.com/claimsampler/claimsampler/sampler/trace"
)

func fallbackOutcome(t *testing.T) (*sampler.Outcome, *trace.SelectionTrace) {
	t.Helper()
	header := []string{"claim_hcc_id", "status"}
	ds := sampler.NewDataset(header, [][]string{{"C1", "Denied"}, {"C2", "Open"}, {"C3", "Open"}})
	st := trace.NewSelectionTrace(trace.TraceConfig{Level: trace.TraceLevelSelections})
	p, err := sampler.NewPipeline(header, sampler.PipelineConfig{
		Pairs:      []sampler.WeightPair{{Attribute: "status", Value: "Denied"}},
		SampleSize: 5,
		Seed:       1,
		Trace:      st,
	})
	require.NoError(t, err)
	out, err := p.Run(ds)
	require.NoError(t, err)
	return out, st
}

func TestObserve_WithTrace_CountsPerPhase(t *testing.T) {
	// GIVEN a fallback run over 3 records with one stratified match
	out, st := fallbackOutcome(t)
	m := New()

	// WHEN observed
	m.Observe(out, st)

	// THEN per-phase and run counters reflect the trace
	assert.Equal(t, 3.0, testutil.ToFloat64(m.RecordsScored))
	assert.Equal(t, 100.0, testutil.ToFloat64(m.TotalScore))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.ZeroScoreRecords))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Runs.WithLabelValues("fallback")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RecordsSelected.WithLabelValues("stratified")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.RecordsSelected.WithLabelValues("fill")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.DuplicateSelection))
}

func TestObserve_WithoutTrace_LabelsByPath(t *testing.T) {
	out, _ := fallbackOutcome(t)
	m := New()

	m.Observe(out, nil)

	assert.Equal(t, 3.0, testutil.ToFloat64(m.RecordsSelected.WithLabelValues("fallback")))
}

func TestWriteTextfile(t *testing.T) {
	out, st := fallbackOutcome(t)
	m := New()
	m.Observe(out, st)
	path := filepath.Join(t.TempDir(), "claimsampler.prom")

	require.NoError(t, m.WriteTextfile(path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "claimsampler_records_scored_total 3")
	assert.Contains(t, string(raw), `claimsampler_runs_total{path="fallback"} 1`)
}
