package sampler

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/claimsampler/claimsampler/sampler/trace"
)

// DefaultSampleSize is the sample size used when none is configured.
const DefaultSampleSize = 5

// DefaultIDField is the identifier column used to deduplicate fallback picks.
const DefaultIDField = "claim_hcc_id"

// Path names the strategy a Sample call took.
type Path string

const (
	PathWeighted Path = "weighted"
	PathFallback Path = "fallback"
)

// SamplerConfig groups the collaborators of a Sampler.
type SamplerConfig struct {
	IDField  string                // identifier column; defaults to DefaultIDField
	Table    *WeightTable          // supplies the stratified-pass pair order
	Drawer   string                // drawer name; defaults to DrawLinear
	RNG      *PartitionedRNG       // required
	Permuter Permuter              // fill-pass order; defaults to a shuffle on SubsystemShuffle
	Trace    *trace.SelectionTrace // optional
}

// Sampler turns a ScoredSet into a fixed-size sample.
//
// The weighted path draws with replacement, so it may repeat a record. The
// fallback path never repeats a record, and no other row shares the
// identifier of a stratified pick.
type Sampler struct {
	idField  string
	pairs    []WeightPair
	drawer   string
	rng      *PartitionedRNG
	permuter Permuter
	trace    *trace.SelectionTrace
}

// Result is the sample and the path that produced it.
type Result struct {
	Records []ScoredRecord
	Path    Path
}

// NewSampler validates cfg and returns a Sampler.
func NewSampler(cfg SamplerConfig) (*Sampler, error) {
	if cfg.RNG == nil {
		return nil, fmt.Errorf("sampler: RNG is required")
	}
	if cfg.Drawer != "" && !IsValidDrawer(cfg.Drawer) {
		return nil, fmt.Errorf("sampler: unknown drawer %q; valid: %s", cfg.Drawer, strings.Join(ValidDrawerNames(), ", "))
	}
	s := &Sampler{
		idField:  cfg.IDField,
		drawer:   cfg.Drawer,
		rng:      cfg.RNG,
		permuter: cfg.Permuter,
		trace:    cfg.Trace,
	}
	if s.idField == "" {
		s.idField = DefaultIDField
	}
	if cfg.Table != nil {
		s.pairs = cfg.Table.Pairs()
	}
	if s.permuter == nil {
		s.permuter = NewRandPermuter(cfg.RNG.ForSubsystem(SubsystemShuffle))
	}
	return s, nil
}

// Sample returns up to n records from set. A negative n is treated as 0.
//
// The weighted path is taken iff the set has a positive total score and at
// least n records; otherwise the fallback path runs.
func (s *Sampler) Sample(set ScoredSet, n int) Result {
	if n < 0 {
		n = 0
	}
	if set.Weighted() && len(set.Records) >= n {
		res, err := s.weighted(set, n)
		if err == nil {
			return res
		}
		logrus.Warnf("weighted sampling unavailable, using fallback: %v", err)
	}
	logrus.Debugf("fallback sampling: total_score=%d records=%d requested=%d",
		set.TotalScore, len(set.Records), n)
	return s.fallback(set, n)
}

// weighted performs n independent draws from the set's probabilities.
func (s *Sampler) weighted(set ScoredSet, n int) (Result, error) {
	res := Result{Records: make([]ScoredRecord, 0, n), Path: PathWeighted}
	s.beginTrace(res.Path, n)
	if n == 0 {
		return res, nil
	}

	probs := make([]float64, len(set.Records))
	for i, r := range set.Records {
		probs[i] = r.Probability
	}
	drawer, err := NewDrawer(s.drawer, probs)
	if err != nil {
		return Result{}, err
	}

	rng := s.rng.ForSubsystem(SubsystemDraw)
	for i := 0; i < n; i++ {
		picked := set.Records[drawer.Draw(rng)]
		res.Records = append(res.Records, picked)
		s.recordSelection(len(res.Records)-1, trace.PhaseWeighted, picked, "")
	}
	logrus.Debugf("weighted sampling: total_score=%d drew=%d", set.TotalScore, n)
	return res, nil
}

func (s *Sampler) beginTrace(path Path, n int) {
	if !s.trace.Enabled() {
		return
	}
	s.trace.Path = string(path)
	s.trace.Requested = n
	s.trace.Selections = s.trace.Selections[:0]
}

func (s *Sampler) recordSelection(position int, phase trace.Phase, r ScoredRecord, pair string) {
	if !s.trace.Enabled() {
		return
	}
	s.trace.RecordSelection(trace.SelectionRecord{
		Position:    position,
		Phase:       phase,
		RecordIndex: r.Index,
		RecordID:    r.Get(s.idField),
		Pair:        pair,
		Score:       r.Score,
		Probability: r.Probability,
	})
}
