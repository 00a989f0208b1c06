package trace

// Summary aggregates statistics from a SelectionTrace.
type Summary struct {
	TotalSelections     int           `yaml:"total_selections"`
	UniqueRecords       int           `yaml:"unique_records"`
	DuplicateSelections int           `yaml:"duplicate_selections"`
	PhaseCounts         map[Phase]int `yaml:"phase_counts"`
	PairsCovered        []string      `yaml:"pairs_covered,omitempty"` // stratified pairs in pick order
}

// Summarize computes aggregate statistics from a SelectionTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SelectionTrace) *Summary {
	summary := &Summary{
		PhaseCounts: make(map[Phase]int),
	}
	if st == nil {
		return summary
	}

	seen := make(map[int]bool, len(st.Selections))
	for _, s := range st.Selections {
		summary.PhaseCounts[s.Phase]++
		if seen[s.RecordIndex] {
			summary.DuplicateSelections++
		}
		seen[s.RecordIndex] = true
		if s.Phase == PhaseStratified && s.Pair != "" {
			summary.PairsCovered = append(summary.PairsCovered, s.Pair)
		}
	}
	summary.TotalSelections = len(st.Selections)
	summary.UniqueRecords = len(seen)

	return summary
}
