// Package trace provides selection-trace recording for sampling runs.
// This package has no dependencies on sampler/ — it stores pure data types.
package trace

// Phase names the step of a sampling run that produced a selection.
type Phase string

const (
	// PhaseWeighted is a draw from the score-weighted distribution.
	PhaseWeighted Phase = "weighted"
	// PhaseStratified is a first-match pick for one weight pair.
	PhaseStratified Phase = "stratified"
	// PhaseFill is a pick from the shuffled remainder.
	PhaseFill Phase = "fill"
)

// SelectionRecord captures a single record chosen for the sample.
type SelectionRecord struct {
	Position    int     `yaml:"position"`       // index in the output sample
	Phase       Phase   `yaml:"phase"`
	RecordIndex int     `yaml:"record_index"`   // row index in the input
	RecordID    string  `yaml:"record_id"`
	Pair        string  `yaml:"pair,omitempty"` // "attribute=value" for stratified picks
	Score       int     `yaml:"score"`
	Probability float64 `yaml:"probability"`
}
