package resample

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"
)

// PowerConfig controls a power estimation run.
type PowerConfig struct {
	// Alpha is the significance threshold a p-value must beat for a run
	// to count as a rejection. Must be in (0, 1).
	Alpha float64
	// Runs is how many resampled experiments to perform.
	Runs int
	// Iterations is the permutation iteration count per experiment.
	Iterations int
}

// Power estimates the probability that a permutation test on data like
// the observed groups rejects the null at the configured significance
// level. Each run bootstrap-resamples every group (with replacement,
// preserving its size) and re-runs the full test on the resampled data.
// The observed data acts as a stand-in for the population, so this is
// the achieved power at the observed effect size and sample sizes.
func Power(groups [][]float64, stat Statistic, cfg PowerConfig, rng *frand.RNG) (float64, error) {
	if err := validateGroups(groups); err != nil {
		return 0, err
	}
	if cfg.Alpha <= 0 || cfg.Alpha >= 1 {
		return 0, fmt.Errorf("%w: alpha must be in (0, 1), got %v", ErrInvalidInput, cfg.Alpha)
	}
	if cfg.Runs < 1 || cfg.Iterations < 1 {
		return 0, fmt.Errorf("%w: runs and iterations must be >= 1", ErrInvalidInput)
	}
	if rng == nil {
		rng = frand.New()
	}

	resampled := make([][]float64, len(groups))
	for i, g := range groups {
		resampled[i] = make([]float64, len(g))
	}

	rejections := 0
	for run := 0; run < cfg.Runs; run++ {
		for i, g := range groups {
			for j := range resampled[i] {
				resampled[i][j] = g[rng.Intn(len(g))]
			}
		}
		ht, err := New(resampled, stat, &PermutationModel{}, WithRNG(rng))
		if err != nil {
			return 0, err
		}
		p, err := ht.PValue(cfg.Iterations)
		if err != nil {
			return 0, err
		}
		if p < cfg.Alpha {
			rejections++
		}
	}
	power := float64(rejections) / float64(cfg.Runs)
	log.Debug().Int("runs", cfg.Runs).Int("rejections", rejections).
		Float64("power", power).Msg("power-estimate")
	return power, nil
}
