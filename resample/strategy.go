package resample

import (
	"math"

	"lukechampine.com/frand"

	"github.com/dfenwick/permutest/stats"
)

// Statistic reduces a dataset to a single scalar. It must be pure and
// deterministic, and by convention non-negative (an absolute difference),
// so that larger always means more extreme and the one-sided right-tail
// p-value is valid. A naturally two-sided statistic must pre-transform,
// e.g. with an absolute value, before plugging in here.
type Statistic func(groups [][]float64) float64

// Model produces simulated datasets under the null hypothesis. Simulate
// may mutate internal state in place (the permutation model reshuffles
// its pool), so a Model belongs to exactly one HypothesisTest and must
// not be shared across concurrent runs without copying.
type Model interface {
	Simulate(rng *frand.RNG) [][]float64
}

// Builder is the optional model capability of deriving state from the
// observed data. The engine invokes it exactly once, at construction.
// Models without it (fully parameterized ones) need no build step.
type Builder interface {
	Build(groups [][]float64) error
}

// Copier is the optional model capability that enables parallel
// simulation: each worker simulates against its own copy.
type Copier interface {
	Copy() Model
}

// DiffMeans is abs(mean(group1) - mean(group2)).
func DiffMeans(groups [][]float64) float64 {
	return math.Abs(stats.Mean(groups[0]) - stats.Mean(groups[1]))
}

// DiffStdevs is abs(stdev(group1) - stdev(group2)), with the sample
// (N-1) convention applied to observed and simulated data alike. NaN
// for groups smaller than two elements.
func DiffStdevs(groups [][]float64) float64 {
	return math.Abs(stats.Stdev(groups[0]) - stats.Stdev(groups[1]))
}
