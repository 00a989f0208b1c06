package sampler

import "strings"

// Record is one row of the input dataset, addressed by attribute name.
// A Record is never mutated after NewDataset builds it; scoring output lives
// in ScoredRecord alongside it.
type Record struct {
	Index int // Position of the row in the input, 0-based
	attrs map[string]string
}

// NewRecord builds a Record from a header and its aligned row. Keys and
// values are trimmed. Missing trailing fields become empty strings and
// fields beyond the header are ignored.
func NewRecord(index int, header []string, row []string) Record {
	attrs := make(map[string]string, len(header))
	for i, h := range header {
		val := ""
		if i < len(row) {
			val = strings.TrimSpace(row[i])
		}
		attrs[strings.TrimSpace(h)] = val
	}
	return Record{Index: index, attrs: attrs}
}

// Get returns the trimmed value of attr, or "" if the record has no such
// attribute. It never fails.
func (r Record) Get(attr string) string {
	return strings.TrimSpace(r.attrs[attr])
}

// Values returns the record's fields in header order, with "" for any
// header column the record does not carry.
func (r Record) Values(header []string) []string {
	row := make([]string, len(header))
	for i, h := range header {
		row[i] = r.attrs[strings.TrimSpace(h)]
	}
	return row
}

// Dataset is a header plus the records that share it.
type Dataset struct {
	Header  []string
	Records []Record
}

// NewDataset builds a Dataset from raw tabular input. The header is stored
// trimmed.
func NewDataset(header []string, rows [][]string) *Dataset {
	trimmed := make([]string, len(header))
	for i, h := range header {
		trimmed[i] = strings.TrimSpace(h)
	}
	records := make([]Record, 0, len(rows))
	for i, row := range rows {
		records = append(records, NewRecord(i, trimmed, row))
	}
	return &Dataset{Header: trimmed, Records: records}
}

// HasColumn reports whether name is one of the dataset's header columns.
func (d *Dataset) HasColumn(name string) bool {
	return hasColumn(d.Header, name)
}

func hasColumn(header []string, name string) bool {
	for _, h := range header {
		if strings.TrimSpace(h) == name {
			return true
		}
	}
	return false
}
