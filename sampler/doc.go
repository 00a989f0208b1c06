// Package sampler provides the scoring and sampling engine that reduces a
// large claims dataset to a small review sample.
//
// # Reading Guide
//
// Start with these files to understand the engine:
//   - record.go: Record and Dataset, the immutable input rows
//   - weights.go: WeightPair and WeightTable, the importance configuration
//   - scorer.go: Score, which annotates every record with score and probability
//   - sampler.go: the weighted path and the decision rule between paths
//   - fallback.go: the stratified pass and the randomized fill pass
//   - pipeline.go: header validation followed by score and sample
//
// # Architecture
//
// The sampler package owns the data types and algorithms; collaborators
// live in sub-packages:
//   - sampler/dataset/: CSV ingest and egress, including gzip and zstd
//   - sampler/trace/: selection-trace recording and summaries
//   - sampler/metrics/: Prometheus collectors for a run
//
// # Randomness
//
// All randomness flows from a single RunKey through PartitionedRNG. The
// weighted drawer and the fill-pass shuffle read from separate streams, so
// a run with a fixed key is reproducible bit for bit.
package sampler
