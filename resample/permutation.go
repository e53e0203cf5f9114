package resample

import (
	"fmt"

	"lukechampine.com/frand"
)

// PermutationModel simulates the null hypothesis that group membership
// is exchangeable: all observed values are pooled into one sequence,
// and each draw reshuffles the pool in place and splits it back at the
// original group boundaries. Any of the (n+m)! label orderings is
// equally likely, so a shuffled split samples the statistic's
// distribution under "no real difference between groups". The pool is
// an owned buffer; Simulate is the only operation that mutates it.
type PermutationModel struct {
	sizes []int
	pool  []float64
	// split views into pool; boundaries never move after Build.
	split [][]float64
}

func (m *PermutationModel) Build(groups [][]float64) error {
	if len(groups) < 2 {
		return fmt.Errorf("%w: permutation model needs at least two groups", ErrInvalidInput)
	}
	total := 0
	m.sizes = make([]int, len(groups))
	for i, g := range groups {
		if len(g) == 0 {
			return fmt.Errorf("%w: group %d is empty", ErrInvalidInput, i)
		}
		m.sizes[i] = len(g)
		total += len(g)
	}
	m.pool = make([]float64, 0, total)
	for _, g := range groups {
		m.pool = append(m.pool, g...)
	}
	m.split = make([][]float64, len(m.sizes))
	off := 0
	for i, n := range m.sizes {
		m.split[i] = m.pool[off : off+n : off+n]
		off += n
	}
	return nil
}

// Simulate reshuffles the pooled values in place and returns views of
// the pool split at the recorded group sizes. The returned groups are
// only valid until the next Simulate call.
func (m *PermutationModel) Simulate(rng *frand.RNG) [][]float64 {
	rng.Shuffle(len(m.pool), func(i, j int) {
		m.pool[i], m.pool[j] = m.pool[j], m.pool[i]
	})
	return m.split
}

// Copy returns an independent model over a copy of the pool, for
// parallel simulation.
func (m *PermutationModel) Copy() Model {
	c := &PermutationModel{
		sizes: append([]int(nil), m.sizes...),
		pool:  append([]float64(nil), m.pool...),
	}
	c.split = make([][]float64, len(c.sizes))
	off := 0
	for i, n := range c.sizes {
		c.split[i] = c.pool[off : off+n : off+n]
		off += n
	}
	return c
}

// Pool returns the pooled sequence, read-only. Mostly for diagnostics
// and tests.
func (m *PermutationModel) Pool() []float64 {
	return m.pool
}

// Sizes returns the recorded group sizes.
func (m *PermutationModel) Sizes() []int {
	return m.sizes
}
