package sampler

// Annotation holds the fields the scorer derives for one record.
type Annotation struct {
	Score       int     // Sum of matched weights
	Probability float64 // Score / TotalScore, or 0 when TotalScore is 0
}

// ScoredRecord pairs an input record with its annotation.
type ScoredRecord struct {
	Record
	Annotation
}

// ScoredSet is the scorer's output: every input record, in input order,
// with its annotation, plus the dataset-wide total.
type ScoredSet struct {
	Records    []ScoredRecord
	TotalScore int
}

// Weighted reports whether the set carries a usable probability
// distribution.
func (s ScoredSet) Weighted() bool {
	return s.TotalScore > 0
}

// Score annotates every record with its score and normalized probability.
// It does not modify records or table, so calling it twice on the same
// input yields identical results. An empty table or an all-zero dataset
// is valid and leaves every probability at 0.
func Score(records []Record, table *WeightTable) ScoredSet {
	set := ScoredSet{Records: make([]ScoredRecord, len(records))}
	for i, r := range records {
		s := 0
		if table != nil {
			s = table.score(r)
		}
		set.Records[i] = ScoredRecord{Record: r, Annotation: Annotation{Score: s}}
		set.TotalScore += s
	}
	if set.TotalScore > 0 {
		total := float64(set.TotalScore)
		for i := range set.Records {
			set.Records[i].Probability = float64(set.Records[i].Score) / total
		}
	}
	return set
}
