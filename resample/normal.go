package resample

import (
	"encoding/binary"
	"fmt"

	"gonum.org/v1/gonum/stat/distuv"
	"lukechampine.com/frand"
)

// NormalModel simulates a parametric null: every group is drawn fresh
// from the same fixed normal distribution, with the observed group
// sizes. Useful for power analysis against a hypothesized population,
// as opposed to the nonparametric PermutationModel which resamples the
// observed data itself.
type NormalModel struct {
	Mu    float64
	Sigma float64

	sizes []int
}

func (m *NormalModel) Build(groups [][]float64) error {
	if m.Sigma <= 0 {
		return fmt.Errorf("%w: normal model sigma must be positive, got %v", ErrInvalidInput, m.Sigma)
	}
	if len(groups) < 2 {
		return fmt.Errorf("%w: normal model needs at least two groups", ErrInvalidInput)
	}
	m.sizes = make([]int, len(groups))
	for i, g := range groups {
		if len(g) == 0 {
			return fmt.Errorf("%w: group %d is empty", ErrInvalidInput, i)
		}
		m.sizes[i] = len(g)
	}
	return nil
}

func (m *NormalModel) Simulate(rng *frand.RNG) [][]float64 {
	dist := distuv.Normal{Mu: m.Mu, Sigma: m.Sigma, Src: rngSource{rng}}
	out := make([][]float64, len(m.sizes))
	for i, n := range m.sizes {
		g := make([]float64, n)
		for j := range g {
			g[j] = dist.Rand()
		}
		out[i] = g
	}
	return out
}

func (m *NormalModel) Copy() Model {
	return &NormalModel{
		Mu:    m.Mu,
		Sigma: m.Sigma,
		sizes: append([]int(nil), m.sizes...),
	}
}

// rngSource adapts a frand RNG to the rand.Source gonum's distributions
// draw from.
type rngSource struct {
	rng *frand.RNG
}

func (s rngSource) Uint64() uint64 {
	var b [8]byte
	s.rng.Read(b[:])
	return binary.LittleEndian.Uint64(b[:])
}
