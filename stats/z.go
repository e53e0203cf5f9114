package stats

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// ZVal returns the two-tailed Z-value associated with a specific confidence interval.
// The interval is a number from 0 to 100 percent.
func ZVal(confidenceInterval float64) float64 {
	dist := distuv.Normal{
		Mu:    0,
		Sigma: 1,
	}
	area := (1 + (confidenceInterval / 100)) / 2
	zValue := dist.Quantile(area)
	return zValue
}

// ProportionCI returns a normal-approximation confidence interval for an
// estimated proportion p out of n trials (for example, a simulated p-value
// out of n iterations). The interval is clamped to [0, 1].
func ProportionCI(p float64, n int, confidenceInterval float64) (float64, float64) {
	if n <= 0 {
		return 0, 1
	}
	z := ZVal(confidenceInterval)
	se := math.Sqrt(p * (1 - p) / float64(n))
	lo := p - z*se
	hi := p + z*se
	if lo < 0 {
		lo = 0
	}
	if hi > 1 {
		hi = 1
	}
	return lo, hi
}
