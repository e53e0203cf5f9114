// Package viz renders simulation results for the terminal. It only
// consumes the read-only views the engine exposes (the trace and the
// observed statistic); the engine itself never renders anything.
package viz

import (
	"fmt"
	"io"
	"sort"

	"github.com/aybabtme/uniplot/histogram"
)

const barWidth = 40

// FprintTrace draws a histogram of the simulated statistics with the
// observed statistic marked beneath it, along with its percentile rank
// within the trace.
func FprintTrace(w io.Writer, trace []float64, actual float64, bins int) error {
	if len(trace) == 0 {
		return fmt.Errorf("empty trace")
	}
	if bins < 1 {
		bins = 10
	}
	hist := histogram.Hist(bins, trace)
	err := histogram.Fprintf(w, hist, histogram.Linear(barWidth), func(v float64) string {
		return fmt.Sprintf("%.4g", v)
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "observed: %.6g (percentile %.1f)\n", actual, percentile(trace, actual))
	return nil
}

// percentile returns the percentage of trace values strictly below v.
func percentile(trace []float64, v float64) float64 {
	sorted := append([]float64(nil), trace...)
	sort.Float64s(sorted)
	below := sort.SearchFloat64s(sorted, v)
	return 100 * float64(below) / float64(len(sorted))
}
