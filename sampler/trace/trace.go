package trace

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// TraceLevel controls the verbosity of selection tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelSelections captures every selected record.
	TraceLevelSelections TraceLevel = "selections"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:       true,
	TraceLevelSelections: true,
	"":                   true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level TraceLevel
}

// SelectionTrace collects selection records during a sampling run.
type SelectionTrace struct {
	Config     TraceConfig       `yaml:"-"`
	Path       string            `yaml:"path"` // "weighted" or "fallback"
	Requested  int               `yaml:"requested"`
	Selections []SelectionRecord `yaml:"selections"`
}

// NewSelectionTrace creates a SelectionTrace ready for recording.
func NewSelectionTrace(config TraceConfig) *SelectionTrace {
	return &SelectionTrace{
		Config:     config,
		Selections: make([]SelectionRecord, 0),
	}
}

// Enabled reports whether records should be collected. Safe on nil.
func (st *SelectionTrace) Enabled() bool {
	return st != nil && st.Config.Level == TraceLevelSelections
}

// RecordSelection appends a selection record.
func (st *SelectionTrace) RecordSelection(record SelectionRecord) {
	st.Selections = append(st.Selections, record)
}

// WriteYAML writes the trace and its summary to path.
func (st *SelectionTrace) WriteYAML(path string) error {
	doc := struct {
		Trace   *SelectionTrace `yaml:"trace"`
		Summary *Summary        `yaml:"summary"`
	}{Trace: st, Summary: Summarize(st)}
	data, err := yaml.Marshal(&doc)
	if err != nil {
		return fmt.Errorf("marshaling selection trace: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing selection trace: %w", err)
	}
	return nil
}
