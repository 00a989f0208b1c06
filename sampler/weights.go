package sampler

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultWeight is the weight given to a pair that does not set one.
const DefaultWeight = 100

// WeightPair marks records whose Attribute equals Value as important.
type WeightPair struct {
	Attribute string `yaml:"attribute"`
	Value     string `yaml:"value"`
	Weight    *int   `yaml:"weight,omitempty"` // nil = DefaultWeight
}

// EffectiveWeight returns Weight, or DefaultWeight when Weight is unset.
// An explicit 0 is kept: the pair then adds nothing to scores but still
// takes part in the stratified pass.
func (p WeightPair) EffectiveWeight() int {
	if p.Weight == nil {
		return DefaultWeight
	}
	return *p.Weight
}

func (p WeightPair) String() string {
	return fmt.Sprintf("%s=%s", p.Attribute, p.Value)
}

// DefaultWeightPairs returns the claim categories reviewers ask to see,
// in stratified-pass order.
func DefaultWeightPairs() []WeightPair {
	return []WeightPair{
		{Attribute: "claim_source", Value: "EDI"},
		{Attribute: "claim_source", Value: "Paper"},
		{Attribute: "claim_type", Value: "Professional"},
		{Attribute: "claim_type", Value: "Institutional(OP)"},
		{Attribute: "claim_type", Value: "Institutional(IP)"},
		{Attribute: "status", Value: "Final"},
		{Attribute: "status", Value: "Denied"},
		{Attribute: "status", Value: "Rejected"},
		{Attribute: "payment_status", Value: "Check Issued"},
		{Attribute: "payment_status", Value: "Check Not Issued"},
	}
}

// ParseWeightPairs parses a comma-separated list of "attribute=value" or
// "attribute:weight=value" entries. The value is everything after the first
// "=" and is never split further, so it may contain colons. A colon in the
// attribute part must be followed by a non-negative integer. Returns nil for
// empty input.
func ParseWeightPairs(s string) ([]WeightPair, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	pairs := make([]WeightPair, 0, len(parts))
	for _, part := range parts {
		entry := strings.TrimSpace(part)
		kv := strings.SplitN(entry, "=", 2)
		if len(kv) != 2 {
			return nil, fmt.Errorf("invalid weight pair %q (expected attribute[:weight]=value)", entry)
		}
		pair := WeightPair{Attribute: strings.TrimSpace(kv[0]), Value: strings.TrimSpace(kv[1])}
		if i := strings.LastIndex(pair.Attribute, ":"); i >= 0 {
			raw := strings.TrimSpace(pair.Attribute[i+1:])
			w, err := strconv.Atoi(raw)
			if err != nil {
				return nil, fmt.Errorf("invalid weight %q in pair %q: %w", raw, entry, err)
			}
			pair.Attribute = strings.TrimSpace(pair.Attribute[:i])
			pair.Weight = &w
		}
		if err := pair.validate(); err != nil {
			return nil, err
		}
		pairs = append(pairs, pair)
	}
	return pairs, nil
}

func (p WeightPair) validate() error {
	if p.Attribute == "" {
		return fmt.Errorf("weight pair %q: attribute must be non-empty", p.String())
	}
	if p.Weight != nil && *p.Weight < 0 {
		return fmt.Errorf("weight pair %q: weight must be non-negative, got %d", p.String(), *p.Weight)
	}
	return nil
}

// WeightTable maps attribute -> value -> weight. It is built once and only
// read afterwards.
type WeightTable struct {
	weights map[string]map[string]int
	pairs   []WeightPair
}

// NewWeightTable builds a table from pairs. Pairs for the same attribute
// share one nested map. A repeated (attribute, value) takes the last weight
// but keeps its first position in Pairs.
func NewWeightTable(pairs []WeightPair) (*WeightTable, error) {
	t := &WeightTable{
		weights: make(map[string]map[string]int),
		pairs:   make([]WeightPair, 0, len(pairs)),
	}
	position := make(map[WeightPair]int, len(pairs))
	for i, p := range pairs {
		p.Attribute = strings.TrimSpace(p.Attribute)
		p.Value = strings.TrimSpace(p.Value)
		if err := p.validate(); err != nil {
			return nil, fmt.Errorf("weights[%d]: %w", i, err)
		}
		p.Weight = cloneWeight(p.Weight)
		if _, ok := t.weights[p.Attribute]; !ok {
			t.weights[p.Attribute] = make(map[string]int)
		}
		t.weights[p.Attribute][p.Value] = p.EffectiveWeight()

		key := WeightPair{Attribute: p.Attribute, Value: p.Value}
		if idx, seen := position[key]; seen {
			t.pairs[idx].Weight = p.Weight
			continue
		}
		position[key] = len(t.pairs)
		t.pairs = append(t.pairs, p)
	}
	return t, nil
}

// Weight returns the weight of value under attr, or 0 if either is not in
// the table.
func (t *WeightTable) Weight(attr, value string) int {
	return t.weights[attr][value]
}

// Pairs returns the configured pairs in configuration order, one per
// distinct (attribute, value). The returned slice is a copy.
func (t *WeightTable) Pairs() []WeightPair {
	out := make([]WeightPair, len(t.pairs))
	for i, p := range t.pairs {
		p.Weight = cloneWeight(p.Weight)
		out[i] = p
	}
	return out
}

func cloneWeight(w *int) *int {
	if w == nil {
		return nil
	}
	v := *w
	return &v
}

// Attributes returns the number of distinct weighted attributes.
func (t *WeightTable) Attributes() int {
	return len(t.weights)
}

// score sums the weight of every weighted attribute's value in r.
func (t *WeightTable) score(r Record) int {
	total := 0
	for attr, values := range t.weights {
		total += values[r.Get(attr)]
	}
	return total
}
