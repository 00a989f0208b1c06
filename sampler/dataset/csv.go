// Package dataset reads and writes the tabular files a sampling run
// consumes and produces. Files ending in .gz or .zst are decompressed on
// read and compressed on write.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"

	"github.com/claimsampler/claimsampler/sampler"
)

// Score columns appended by WriteScored.
var scoreColumns = []string{"score", "probability"}

// ReadCSV loads a dataset from path. The first row is the header.
func ReadCSV(path string) (*sampler.Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dataset: %w", err)
	}
	defer func() { _ = file.Close() }()

	r, closeFn, err := decompress(path, file)
	if err != nil {
		return nil, err
	}
	defer closeFn()
	return Read(r)
}

// Read loads a dataset from r. Rows may have fewer or more fields than the
// header; missing fields read as "" and extra fields are dropped.
func Read(r io.Reader) (*sampler.Dataset, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading CSV row %d: %w", len(rows)+1, err)
		}
		rows = append(rows, row)
	}
	return sampler.NewDataset(header, rows), nil
}

// WriteCSV writes header and records to path, one row per record in order.
func WriteCSV(path string, header []string, records []sampler.ScoredRecord) error {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, r.Values(header))
	}
	return writeRows(path, header, rows)
}

// WriteScored writes every record with its score and probability appended.
func WriteScored(path string, header []string, set sampler.ScoredSet) error {
	out := append(append([]string{}, header...), scoreColumns...)
	rows := make([][]string, 0, len(set.Records))
	for _, r := range set.Records {
		row := append(r.Values(header),
			strconv.Itoa(r.Score),
			strconv.FormatFloat(r.Probability, 'f', -1, 64),
		)
		rows = append(rows, row)
	}
	return writeRows(path, out, rows)
}

// Write writes header and rows to w as CSV.
func Write(w io.Writer, header []string, rows [][]string) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for i, row := range rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("writing CSV row %d: %w", i+1, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

func writeRows(path string, header []string, rows [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}

	w, closeFn, err := compress(path, file)
	if err != nil {
		_ = file.Close()
		return err
	}
	if err := Write(w, header, rows); err != nil {
		_ = closeFn()
		_ = file.Close()
		return err
	}
	if err := closeFn(); err != nil {
		_ = file.Close()
		return fmt.Errorf("finishing compressed output: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("closing output file: %w", err)
	}
	return nil
}

func decompress(path string, r io.Reader) (io.Reader, func(), error) {
	switch {
	case strings.HasSuffix(path, ".gz"):
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, nil, fmt.Errorf("opening gzip stream: %w", err)
		}
		return gz, func() { _ = gz.Close() }, nil
	case strings.HasSuffix(path, ".zst"):
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, nil, fmt.Errorf("opening zstd stream: %w", err)
		}
		return dec, dec.Close, nil
	default:
		return r, func() {}, nil
	}
}

func compress(path string, w io.Writer) (io.Writer, func() error, error) {
	switch {
	case strings.HasSuffix(path, ".gz"):
		gz := gzip.NewWriter(w)
		return gz, gz.Close, nil
	case strings.HasSuffix(path, ".zst"):
		enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return nil, nil, fmt.Errorf("opening zstd stream: %w", err)
		}
		return enc, enc.Close, nil
	default:
		return w, func() error { return nil }, nil
	}
}
