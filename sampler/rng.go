package sampler

import (
	"hash/fnv"
	"math/rand"
)

// === RunKey ===

// RunKey uniquely identifies a reproducible sampling run.
// Two runs with the same RunKey, dataset and configuration MUST select the
// same records in the same order.
type RunKey int64

// NewRunKey creates a RunKey from a seed value.
func NewRunKey(seed int64) RunKey {
	return RunKey(seed)
}

// === Subsystem Constants ===

const (
	// SubsystemDraw is the RNG subsystem for weighted draws.
	// Uses the master seed directly.
	SubsystemDraw = "draw"

	// SubsystemShuffle is the RNG subsystem for the fallback fill pass.
	SubsystemShuffle = "shuffle"
)

// === PartitionedRNG ===

// PartitionedRNG provides deterministic, isolated RNG instances per subsystem.
//
// Derivation formula:
//   - For SubsystemDraw: uses masterSeed directly
//   - For all other subsystems: masterSeed XOR fnv1a64(subsystemName)
//
// Thread-safety: NOT thread-safe. Must be called from single goroutine.
type PartitionedRNG struct {
	key        RunKey
	subsystems map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG from a RunKey.
func NewPartitionedRNG(key RunKey) *PartitionedRNG {
	return &PartitionedRNG{
		key:        key,
		subsystems: make(map[string]*rand.Rand),
	}
}

// ForSubsystem returns a deterministically-seeded RNG for the named subsystem.
// The same subsystem name always returns the same *rand.Rand instance (cached).
// Never returns nil.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if rng, ok := p.subsystems[name]; ok {
		return rng
	}

	derivedSeed := int64(p.key)
	if name != SubsystemDraw {
		derivedSeed ^= fnv1a64(name)
	}

	rng := rand.New(rand.NewSource(derivedSeed))
	p.subsystems[name] = rng
	return rng
}

// Key returns the RunKey used to create this PartitionedRNG.
func (p *PartitionedRNG) Key() RunKey {
	return p.key
}

// fnv1a64 computes a 64-bit FNV-1a hash of the input string.
func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}

// === Permuter ===

// Permuter orders the fill pass of fallback sampling.
type Permuter interface {
	// Permute returns a permutation of [0, n).
	Permute(n int) []int
}

// RandPermuter draws uniform permutations from rng.
type RandPermuter struct {
	rng *rand.Rand
}

// NewRandPermuter wraps rng as a Permuter.
func NewRandPermuter(rng *rand.Rand) *RandPermuter {
	return &RandPermuter{rng: rng}
}

func (p *RandPermuter) Permute(n int) []int {
	return p.rng.Perm(n)
}

// IdentityPermuter keeps input order. Useful for deterministic tests and
// for reviewers who want a reproducible fill without a seed.
type IdentityPermuter struct{}

func (IdentityPermuter) Permute(n int) []int {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	return order
}
