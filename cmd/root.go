package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/claimsampler/claimsampler/sampler"
	"github.com/claimsampler/claimsampler/sampler/dataset"
	"github.com/claimsampler/claimsampler/sampler/metrics"
	"github.com/claimsampler/claimsampler/sampler/trace"
)

var (
	// CLI flags shared by sample and score
	inputPath   string // Input CSV (optionally .gz or .zst)
	outputPath  string // Sample output CSV (optionally .gz or .zst)
	scoredPath  string // Scored output CSV (optionally .gz or .zst)
	configPath  string // Optional run-config YAML
	idField     string // Identifier column used for fallback deduplication
	weightsSpec string // Comma-separated attribute[:weight]=value pairs
	logLevel    string // Log verbosity level

	// CLI flags for sample
	seed       int64  // Seed for weighted draws and fill-pass shuffle
	samples    int    // Number of records to select
	drawName   string // Weighted drawer: linear or bisect
	traceOut   string // Selection trace YAML output path
	metricsOut string // Prometheus textfile output path
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "claimsampler",
	Short: "Weighted, stratified sampling of claims datasets for manual review",
}

// sampleCmd selects a bounded review sample from the input dataset
var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Select a weighted sample of records",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		cfg, err := resolveRunConfig(cmd)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		runSeed := seed
		if !cmd.Flags().Changed("seed") {
			runSeed = time.Now().UnixNano()
		}
		logrus.Infof("Starting sampling run: input=%s samples=%d id_field=%s draw=%s seed=%d",
			inputPath, *cfg.Samples, cfg.IDField, cfg.Draw, runSeed)

		out, err := runSample(inputPath, outputPath, cfg.pipelineConfig(runSeed), traceOut, metricsOut)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		fmt.Printf("Sampling complete. Output saved to %s. Total records: %d\n", outputPath, len(out.Records))
	},
}

func setupLogging() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

// resolveRunConfig layers built-in defaults, the optional config file and
// explicitly set flags, in that order.
func resolveRunConfig(cmd *cobra.Command) (RunConfig, error) {
	cfg := defaultRunConfig()
	if configPath != "" {
		fileCfg, err := LoadRunConfig(configPath)
		if err != nil {
			return RunConfig{}, err
		}
		cfg = cfg.overlay(fileCfg)
	}

	flags := cmd.Flags()
	if flags.Changed("id-field") {
		cfg.IDField = idField
	}
	if flags.Changed("samples") {
		if samples < 1 {
			return RunConfig{}, fmt.Errorf("--samples must be positive, got %d", samples)
		}
		n := samples
		cfg.Samples = &n
	}
	if flags.Changed("draw") {
		if !sampler.IsValidDrawer(drawName) {
			return RunConfig{}, fmt.Errorf("unknown --draw %q", drawName)
		}
		cfg.Draw = drawName
	}
	if flags.Changed("weights") {
		pairs, err := sampler.ParseWeightPairs(weightsSpec)
		if err != nil {
			return RunConfig{}, fmt.Errorf("parsing --weights: %w", err)
		}
		cfg.Weights = pairs
	}
	return cfg, nil
}

// runSample reads input, samples it and writes output. The identifier
// column is checked before anything is scored; on failure nothing is
// written.
func runSample(in, out string, cfg sampler.PipelineConfig, traceOut, metricsOut string) (*sampler.Outcome, error) {
	ds, err := dataset.ReadCSV(in)
	if err != nil {
		return nil, err
	}
	logrus.Debugf("read %d records with %d columns from %s", len(ds.Records), len(ds.Header), in)

	var st *trace.SelectionTrace
	if traceOut != "" || metricsOut != "" {
		st = trace.NewSelectionTrace(trace.TraceConfig{Level: trace.TraceLevelSelections})
	}
	cfg.Trace = st

	p, err := sampler.NewPipeline(ds.Header, cfg)
	if err != nil {
		return nil, err
	}
	outcome, err := p.Run(ds)
	if err != nil {
		return nil, err
	}
	if err := dataset.WriteCSV(out, p.Header(), outcome.Records); err != nil {
		return nil, err
	}

	if traceOut != "" {
		if err := st.WriteYAML(traceOut); err != nil {
			return nil, err
		}
	}
	if metricsOut != "" {
		m := metrics.New()
		m.Observe(outcome, st)
		if err := m.WriteTextfile(metricsOut); err != nil {
			return nil, err
		}
	}
	return outcome, nil
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// registerDatasetFlags adds the flags every dataset-reading command shares.
func registerDatasetFlags(cmd *cobra.Command, output *string, defaultOutput string) {
	cmd.Flags().StringVar(&inputPath, "input", "unsampled.csv", "Input CSV file (.gz and .zst are decompressed)")
	cmd.Flags().StringVar(output, "output", defaultOutput, "Output CSV file (.gz and .zst are compressed)")
	registerConfigFlags(cmd)
}

// registerConfigFlags adds the flags that shape the weight table.
func registerConfigFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configPath, "config", "", "Run-config YAML (id_field, samples, draw, weights)")
	cmd.Flags().StringVar(&idField, "id-field", sampler.DefaultIDField, "Identifier column used to deduplicate fallback picks")
	cmd.Flags().StringVar(&weightsSpec, "weights", "", "Comma-separated attribute[:weight]=value pairs; replaces configured weights")
	cmd.Flags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
}

// init sets up CLI flags and subcommands
func init() {
	registerDatasetFlags(sampleCmd, &outputPath, "sampled.csv")
	sampleCmd.Flags().Int64Var(&seed, "seed", 0, "Seed for weighted draws and fill-pass shuffle (default: derived from the clock)")
	sampleCmd.Flags().IntVar(&samples, "samples", sampler.DefaultSampleSize, "Number of records to select")
	sampleCmd.Flags().StringVar(&drawName, "draw", sampler.DrawLinear, "Weighted drawer (linear, bisect)")
	sampleCmd.Flags().StringVar(&traceOut, "trace-out", "", "Write the selection trace as YAML to this path")
	sampleCmd.Flags().StringVar(&metricsOut, "metrics-out", "", "Write run metrics in Prometheus text format to this path")

	registerDatasetFlags(scoreCmd, &scoredPath, "scored.csv")
	registerConfigFlags(weightsCmd)

	rootCmd.AddCommand(sampleCmd)
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(weightsCmd)
}
