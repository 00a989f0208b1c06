package sampler

import (
	"github.com/sirupsen/logrus"

	"github.com/claimsampler/claimsampler/sampler/trace"
)

// fallback returns up to n records.
//
// Phase 1 walks the weight pairs in configuration order and takes the first
// record matching each pair whose identifier no earlier stratified pick
// holds. Phase 2 fills the remainder from a permutation of all records,
// skipping rows already taken and identifiers claimed in phase 1. Fill
// picks do not claim identifiers, so rows sharing a blank or repeated
// identifier can all be filled. The result is truncated to n.
func (s *Sampler) fallback(set ScoredSet, n int) Result {
	res := Result{Records: make([]ScoredRecord, 0, min(n, len(set.Records))), Path: PathFallback}
	s.beginTrace(res.Path, n)
	used := make(map[string]bool, len(s.pairs))
	taken := make(map[int]bool, n)

	for _, pair := range s.pairs {
		if len(res.Records) >= n {
			break
		}
		for _, r := range set.Records {
			id := r.Get(s.idField)
			if r.Get(pair.Attribute) != pair.Value || used[id] {
				continue
			}
			res.Records = append(res.Records, r)
			used[id] = true
			taken[r.Index] = true
			s.recordSelection(len(res.Records)-1, trace.PhaseStratified, r, pair.String())
			break
		}
	}
	stratified := len(res.Records)

	if len(res.Records) < n {
		for _, idx := range s.permuter.Permute(len(set.Records)) {
			if len(res.Records) >= n {
				break
			}
			r := set.Records[idx]
			if taken[r.Index] || used[r.Get(s.idField)] {
				continue
			}
			res.Records = append(res.Records, r)
			taken[r.Index] = true
			s.recordSelection(len(res.Records)-1, trace.PhaseFill, r, "")
		}
	}

	if len(res.Records) > n {
		res.Records = res.Records[:n]
	}
	if want := min(n, len(set.Records)); len(res.Records) < want {
		logrus.Warnf("sample has %d records, fewer than %d: rows sharing a stratified pick's %s were skipped",
			len(res.Records), want, s.idField)
	}
	logrus.Debugf("fallback sampling: stratified=%d fill=%d", stratified, len(res.Records)-stratified)
	return res
}
