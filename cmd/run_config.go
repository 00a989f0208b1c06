package cmd

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/claimsampler/claimsampler/sampler"
)

// RunConfig represents the full run-config YAML structure.
// All top-level sections must be listed to satisfy KnownFields(true) strict parsing.
type RunConfig struct {
	IDField string               `yaml:"id_field"`
	Samples *int                 `yaml:"samples"` // nil = DefaultSampleSize
	Draw    string               `yaml:"draw"`
	Weights []sampler.WeightPair `yaml:"weights"`
}

// LoadRunConfig parses a run-config YAML file.
// Uses strict field checking: unrecognized keys (typos) are rejected.
func LoadRunConfig(path string) (*RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading run config: %w", err)
	}
	var cfg RunConfig
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parsing run config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid run config %s: %w", path, err)
	}
	return &cfg, nil
}

// Validate checks that all fields in the config are valid.
func (c *RunConfig) Validate() error {
	if c.Samples != nil && *c.Samples < 1 {
		return fmt.Errorf("samples must be positive, got %d", *c.Samples)
	}
	if c.Draw != "" && !sampler.IsValidDrawer(c.Draw) {
		return fmt.Errorf("unknown draw %q", c.Draw)
	}
	for i, w := range c.Weights {
		if w.Attribute == "" {
			return fmt.Errorf("weights[%d].attribute must be non-empty", i)
		}
		if w.Weight != nil && *w.Weight < 0 {
			return fmt.Errorf("weights[%d].weight must be non-negative, got %d", i, *w.Weight)
		}
	}
	return nil
}

// defaultRunConfig returns the built-in configuration.
func defaultRunConfig() RunConfig {
	n := sampler.DefaultSampleSize
	return RunConfig{
		IDField: sampler.DefaultIDField,
		Samples: &n,
		Draw:    sampler.DrawLinear,
		Weights: sampler.DefaultWeightPairs(),
	}
}

// overlay returns c with every field set in o replacing c's value.
func (c RunConfig) overlay(o *RunConfig) RunConfig {
	if o == nil {
		return c
	}
	if o.IDField != "" {
		c.IDField = o.IDField
	}
	if o.Samples != nil {
		c.Samples = o.Samples
	}
	if o.Draw != "" {
		c.Draw = o.Draw
	}
	if len(o.Weights) > 0 {
		c.Weights = o.Weights
	}
	return c
}

// pipelineConfig converts the resolved run config into the engine's form.
func (c RunConfig) pipelineConfig(seed int64) sampler.PipelineConfig {
	n := sampler.DefaultSampleSize
	if c.Samples != nil {
		n = *c.Samples
	}
	return sampler.PipelineConfig{
		IDField:    c.IDField,
		Pairs:      c.Weights,
		SampleSize: n,
		Drawer:     c.Draw,
		Seed:       seed,
	}
}
