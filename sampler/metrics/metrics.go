// Package metrics defines the Prometheus collectors for a sampling run and
// writes them as a node-exporter textfile.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/claimsampler/claimsampler/sampler"
	"github.com/claimsampler/claimsampler/sampler/trace"
)

// Metrics holds the Prometheus collectors for one run.
type Metrics struct {
	registry *prometheus.Registry

	RecordsScored      prometheus.Counter
	RecordsSelected    *prometheus.CounterVec
	Runs               *prometheus.CounterVec
	TotalScore         prometheus.Gauge
	ZeroScoreRecords   prometheus.Gauge
	DuplicateSelection prometheus.Counter
}

// New creates and registers all collectors on a private registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		RecordsScored: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "claimsampler_records_scored_total",
				Help: "Total number of input records scored.",
			},
		),
		RecordsSelected: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "claimsampler_records_selected_total",
				Help: "Records placed in the sample, by selection phase.",
			},
			[]string{"phase"},
		),
		Runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "claimsampler_runs_total",
				Help: "Sampling runs, by path taken.",
			},
			[]string{"path"},
		),
		TotalScore: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "claimsampler_total_score",
				Help: "Sum of all record scores in the last run.",
			},
		),
		ZeroScoreRecords: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "claimsampler_zero_score_records",
				Help: "Records in the last run that matched no weight pair.",
			},
		),
		DuplicateSelection: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "claimsampler_duplicate_selections_total",
				Help: "Selections that repeated a record already in the sample.",
			},
		),
	}
	m.registry.MustRegister(
		m.RecordsScored,
		m.RecordsSelected,
		m.Runs,
		m.TotalScore,
		m.ZeroScoreRecords,
		m.DuplicateSelection,
	)
	return m
}

// Registry returns the registry the collectors are registered on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Observe records one run's outcome. st may be nil or disabled; selections
// are then labeled with the path instead of the phase.
func (m *Metrics) Observe(out *sampler.Outcome, st *trace.SelectionTrace) {
	m.RecordsScored.Add(float64(len(out.Scored.Records)))
	m.TotalScore.Set(float64(out.Scored.TotalScore))
	zero := 0
	for _, r := range out.Scored.Records {
		if r.Score == 0 {
			zero++
		}
	}
	m.ZeroScoreRecords.Set(float64(zero))
	m.Runs.WithLabelValues(string(out.Path)).Inc()

	if st.Enabled() {
		summary := trace.Summarize(st)
		for phase, count := range summary.PhaseCounts {
			m.RecordsSelected.WithLabelValues(string(phase)).Add(float64(count))
		}
		m.DuplicateSelection.Add(float64(summary.DuplicateSelections))
		return
	}
	m.RecordsSelected.WithLabelValues(string(out.Path)).Add(float64(len(out.Records)))
	seen := make(map[int]bool, len(out.Records))
	for _, r := range out.Records {
		if seen[r.Index] {
			m.DuplicateSelection.Inc()
		}
		seen[r.Index] = true
	}
}

// WriteTextfile writes the current values in the Prometheus text format.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("writing metrics textfile: %w", err)
	}
	return nil
}
