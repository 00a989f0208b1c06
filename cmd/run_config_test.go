package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/claimsampler/claimsampler/sampler"
)

func TestLoadRunConfig_ValidFile(t *testing.T) {
	path := writeInput(t, "run.yaml", `
id_field: member_id
samples: 12
draw: bisect
weights:
  - {attribute: status, value: Denied, weight: 250}
  - {attribute: claim_source, value: Paper}
`)

	cfg, err := LoadRunConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "member_id", cfg.IDField)
	require.NotNil(t, cfg.Samples)
	assert.Equal(t, 12, *cfg.Samples)
	assert.Equal(t, sampler.DrawBisect, cfg.Draw)
	assert.Equal(t, []sampler.WeightPair{
		{Attribute: "status", Value: "Denied", Weight: intPtr(250)},
		{Attribute: "claim_source", Value: "Paper"},
	}, cfg.Weights)
}

func TestLoadRunConfig_ZeroWeight_NotRewrittenToDefault(t *testing.T) {
	// GIVEN a pair configured with weight 0
	path := writeInput(t, "run.yaml", "weights:\n  - {attribute: status, value: Denied, weight: 0}\n")

	cfg, err := LoadRunConfig(path)
	require.NoError(t, err)

	// THEN the weight stays 0 through the table and the printed config
	require.Len(t, cfg.Weights, 1)
	require.NotNil(t, cfg.Weights[0].Weight)
	assert.Equal(t, 0, cfg.Weights[0].EffectiveWeight())

	table, err := sampler.NewWeightTable(cfg.Weights)
	require.NoError(t, err)
	assert.Equal(t, 0, table.Weight("status", "Denied"))

	var buf bytes.Buffer
	require.NoError(t, printWeights(&buf, defaultRunConfig().overlay(cfg)))
	assert.Contains(t, buf.String(), "weight: 0")
}

func TestLoadRunConfig_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown key", "id_feild: claim_hcc_id\n"},
		{"unknown pair key", "weights:\n  - {attr: status, value: Denied}\n"},
		{"zero samples", "samples: 0\n"},
		{"unknown draw", "draw: alias\n"},
		{"empty attribute", "weights:\n  - {attribute: '', value: Denied}\n"},
		{"negative weight", "weights:\n  - {attribute: status, value: Denied, weight: -1}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadRunConfig(writeInput(t, "run.yaml", tt.content))
			assert.Error(t, err)
		})
	}
}

func TestLoadRunConfig_MissingFile(t *testing.T) {
	_, err := LoadRunConfig("does-not-exist.yaml")
	assert.Error(t, err)
}

func TestRunConfig_Overlay_OnlySetFieldsReplace(t *testing.T) {
	// GIVEN the defaults and a file that only sets samples
	n := 9
	cfg := defaultRunConfig().overlay(&RunConfig{Samples: &n})

	// THEN everything else keeps its default
	assert.Equal(t, sampler.DefaultIDField, cfg.IDField)
	assert.Equal(t, 9, *cfg.Samples)
	assert.Equal(t, sampler.DrawLinear, cfg.Draw)
	assert.Equal(t, sampler.DefaultWeightPairs(), cfg.Weights)

	assert.Equal(t, defaultRunConfig(), defaultRunConfig().overlay(nil))
}

func TestRunConfig_PipelineConfig(t *testing.T) {
	pc := defaultRunConfig().pipelineConfig(77)
	assert.Equal(t, sampler.DefaultSampleSize, pc.SampleSize)
	assert.Equal(t, int64(77), pc.Seed)
	assert.Equal(t, sampler.DefaultIDField, pc.IDField)
	assert.Len(t, pc.Pairs, 10)

	pc = RunConfig{}.pipelineConfig(0)
	assert.Equal(t, sampler.DefaultSampleSize, pc.SampleSize)
}

func TestPrintWeights_EffectiveWeightsInOrder(t *testing.T) {
	// GIVEN a config with a repeated pair and an unset weight
	cfg := defaultRunConfig()
	cfg.Weights = []sampler.WeightPair{
		{Attribute: "status", Value: "Denied"},
		{Attribute: "claim_source", Value: "EDI", Weight: intPtr(20)},
		{Attribute: "status", Value: "Denied", Weight: intPtr(300)},
	}
	var buf bytes.Buffer

	// WHEN printed
	require.NoError(t, printWeights(&buf, cfg))

	// THEN the YAML is a valid run config with deduplicated, filled-in weights
	var got RunConfig
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, []sampler.WeightPair{
		{Attribute: "status", Value: "Denied", Weight: intPtr(300)},
		{Attribute: "claim_source", Value: "EDI", Weight: intPtr(20)},
	}, got.Weights)
	assert.Equal(t, sampler.DefaultIDField, got.IDField)
}
