package cmd

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/claimsampler/claimsampler/sampler"
)

// weightsCmd prints the effective weight pairs after config and flags are applied
var weightsCmd = &cobra.Command{
	Use:   "weights",
	Short: "Print the effective weight table as YAML",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		cfg, err := resolveRunConfig(cmd)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		if err := printWeights(cmd.OutOrStdout(), cfg); err != nil {
			logrus.Fatalf("%v", err)
		}
	},
}

// printWeights writes cfg's weight pairs, deduplicated and with effective
// weights filled in, in stratified-pass order.
func printWeights(w io.Writer, cfg RunConfig) error {
	table, err := sampler.NewWeightTable(cfg.Weights)
	if err != nil {
		return fmt.Errorf("building weight table: %w", err)
	}
	pairs := table.Pairs()
	for i := range pairs {
		w := pairs[i].EffectiveWeight()
		pairs[i].Weight = &w
	}
	doc := RunConfig{IDField: cfg.IDField, Samples: cfg.Samples, Draw: cfg.Draw, Weights: pairs}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return fmt.Errorf("encoding weights: %w", err)
	}
	return enc.Close()
}
