// Package sampler draws bounded sets of distinct fixed-size subsets from a
// candidate pool.
//
// Sampling is a heuristic: for large pools the combinatorial space is never
// covered. Every call owns its random source, so concurrent calls neither
// share state nor correlate.
package sampler

import (
	crand "crypto/rand"
	"math/rand/v2"
	"slices"
	"strconv"
	"strings"
)

// Sampling limits.
const (
	DefaultCap          = 120
	HardCap             = 2000
	DefaultRetryCeiling = 10_000
)

// Result describes one sampling run.
type Result struct {
	// Subsets holds distinct, ascending index tuples into the pool.
	Subsets [][]int
	// Draws counts random draws, duplicates included.
	Draws int
	// Exhausted is true when the retry ceiling stopped sampling before the
	// target number of subsets was reached.
	Exhausted bool
}

// Indices samples up to cap distinct k-subsets of {0..n-1}.
//
// When k >= n the whole pool is the only valid subset and is returned alone.
// Otherwise draws continue until cap distinct subsets are found, every
// possible subset has been found, or the retry ceiling is reached.
func Indices(n, k int, opts ...Option) Result {
	cfg := newConfig(opts...)
	if n < 0 {
		n = 0
	}
	if k < 0 {
		k = 0
	}
	if k >= n {
		whole := make([]int, n)
		for i := range whole {
			whole[i] = i
		}
		return Result{Subsets: [][]int{whole}, Draws: 1}
	}

	target := min(cfg.cap, binomialUpTo(n, k, cfg.cap))
	rng := cfg.rng()
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}

	seen := make(map[string]struct{}, target)
	out := make([][]int, 0, target)
	var key strings.Builder
	draws := 0
	for len(out) < target && draws < cfg.retryCeiling {
		draws++
		// partial Fisher-Yates: the first k slots become a uniform k-subset
		for i := 0; i < k; i++ {
			j := i + rng.IntN(n-i)
			perm[i], perm[j] = perm[j], perm[i]
		}
		pick := slices.Clone(perm[:k])
		slices.Sort(pick)

		key.Reset()
		for _, idx := range pick {
			key.WriteString(strconv.Itoa(idx))
			key.WriteByte('-')
		}
		if _, dup := seen[key.String()]; dup {
			continue
		}
		seen[key.String()] = struct{}{}
		out = append(out, pick)
	}
	return Result{Subsets: out, Draws: draws, Exhausted: len(out) < target}
}

// Subsets samples distinct k-subsets of pool and materializes them. Members
// keep their pool order within each subset.
func Subsets[T any](pool []T, k int, opts ...Option) [][]T {
	res := Indices(len(pool), k, opts...)
	out := make([][]T, len(res.Subsets))
	for i, idx := range res.Subsets {
		team := make([]T, len(idx))
		for j, p := range idx {
			team[j] = pool[p]
		}
		out[i] = team
	}
	return out
}

// binomialUpTo returns C(n,k), or limit+1 once the value exceeds limit.
func binomialUpTo(n, k, limit int) int {
	if k > n-k {
		k = n - k
	}
	c := 1
	for i := 1; i <= k; i++ {
		// C(n-k+i, i) = C(n-k+i-1, i-1) * (n-k+i) / i, exact at every step
		c = c * (n - k + i) / i
		if c > limit {
			return limit + 1
		}
	}
	return c
}

type config struct {
	cap          int
	retryCeiling int
	seed         *uint64
	source       rand.Source
}

func newConfig(opts ...Option) config {
	c := config{cap: DefaultCap, retryCeiling: DefaultRetryCeiling}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

func (c config) rng() *rand.Rand {
	switch {
	case c.source != nil:
		return rand.New(c.source)
	case c.seed != nil:
		return rand.New(rand.NewPCG(*c.seed, *c.seed^pcgStream)) //nolint:gosec // reproducible sampling
	default:
		var seed [32]byte
		_, _ = crand.Read(seed[:])
		return rand.New(rand.NewChaCha8(seed))
	}
}

// pcgStream decorrelates the second PCG word from the caller's seed.
const pcgStream = 0x9e3779b97f4a7c15
