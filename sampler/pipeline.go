package sampler

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/claimsampler/claimsampler/sampler/trace"
)

// ErrMissingIDField is returned when the dataset header lacks the
// identifier column. Nothing is scored or sampled in that case.
var ErrMissingIDField = errors.New("identifier column not found in header")

// ValidateHeader checks that idField is one of the header columns.
func ValidateHeader(header []string, idField string) error {
	if !hasColumn(header, idField) {
		return fmt.Errorf("%w: %q (check the input file headers)", ErrMissingIDField, idField)
	}
	return nil
}

// PipelineConfig configures one scoring and sampling run.
type PipelineConfig struct {
	IDField    string
	Pairs      []WeightPair
	SampleSize int
	Drawer     string
	Seed       int64
	Permuter   Permuter              // optional; see SamplerConfig
	Trace      *trace.SelectionTrace // optional
}

// Validate checks that all fields in the config are valid.
func (c *PipelineConfig) Validate() error {
	if c.SampleSize < 0 {
		return fmt.Errorf("sample size must be non-negative, got %d", c.SampleSize)
	}
	if c.Drawer != "" && !IsValidDrawer(c.Drawer) {
		return fmt.Errorf("unknown drawer %q", c.Drawer)
	}
	return nil
}

// Pipeline scores a dataset and samples it. It is bound to one header.
type Pipeline struct {
	header  []string
	n       int
	table   *WeightTable
	sampler *Sampler
}

// Outcome is everything a pipeline run produced.
type Outcome struct {
	Scored ScoredSet
	Result
}

// NewPipeline validates the header against cfg.IDField before anything
// else, then builds the weight table and sampler.
func NewPipeline(header []string, cfg PipelineConfig) (*Pipeline, error) {
	if cfg.IDField == "" {
		cfg.IDField = DefaultIDField
	}
	if err := ValidateHeader(header, cfg.IDField); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	table, err := NewWeightTable(cfg.Pairs)
	if err != nil {
		return nil, fmt.Errorf("building weight table: %w", err)
	}
	s, err := NewSampler(SamplerConfig{
		IDField:  cfg.IDField,
		Table:    table,
		Drawer:   cfg.Drawer,
		RNG:      NewPartitionedRNG(NewRunKey(cfg.Seed)),
		Permuter: cfg.Permuter,
		Trace:    cfg.Trace,
	})
	if err != nil {
		return nil, err
	}
	return &Pipeline{header: header, n: cfg.SampleSize, table: table, sampler: s}, nil
}

// Table returns the pipeline's weight table.
func (p *Pipeline) Table() *WeightTable {
	return p.table
}

// Header returns the header the pipeline was validated against.
func (p *Pipeline) Header() []string {
	return p.header
}

// Score annotates ds without sampling.
func (p *Pipeline) Score(ds *Dataset) ScoredSet {
	set := Score(ds.Records, p.table)
	logrus.Debugf("scored %d records over %d weighted attributes: total_score=%d",
		len(set.Records), p.table.Attributes(), set.TotalScore)
	return set
}

// Run scores ds and draws the configured number of records. ds must carry
// the header the pipeline was built with.
func (p *Pipeline) Run(ds *Dataset) (*Outcome, error) {
	if err := ValidateHeader(ds.Header, p.sampler.idField); err != nil {
		return nil, err
	}
	set := p.Score(ds)
	res := p.sampler.Sample(set, p.n)
	logrus.Infof("sampled %d of %d records via %s path", len(res.Records), len(ds.Records), res.Path)
	return &Outcome{Scored: set, Result: res}, nil
}
