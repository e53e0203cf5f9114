package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"

	"github.com/dfenwick/permutest/config"
	"github.com/dfenwick/permutest/dataloaders"
	"github.com/dfenwick/permutest/resample"
	"github.com/dfenwick/permutest/stats"
	"github.com/dfenwick/permutest/viz"
)

func main() {
	cfg := &config.Config{}
	if err := cfg.Load(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	log.Logger = log.Output(output)
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if cfg.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	if cfg.Group1Path == "" || cfg.Group2Path == "" {
		log.Fatal().Msg("-group1 and -group2 are required")
	}

	groups, err := dataloaders.LoadGroups(cfg.Group1Path, cfg.Group2Path)
	if err != nil {
		log.Fatal().Err(err).Msg("could not load observed samples")
	}
	log.Info().Int("n", len(groups[0])).Int("m", len(groups[1])).Msg("loaded groups")

	var stat resample.Statistic
	switch cfg.Statistic {
	case "means":
		stat = resample.DiffMeans
	case "stdevs":
		stat = resample.DiffStdevs
	default:
		log.Fatal().Str("statistic", cfg.Statistic).Msg("unknown statistic; use means or stdevs")
	}

	rng := frand.New()
	if cfg.Seed != 0 {
		rng = resample.NewRNG(cfg.Seed)
	}
	ht, err := resample.New(groups, stat, &resample.PermutationModel{},
		resample.WithRNG(rng), resample.WithThreads(cfg.Threads))
	if err != nil {
		log.Fatal().Err(err).Msg("could not build test")
	}

	p, err := ht.PValueContext(context.Background(), cfg.Iterations)
	if err != nil {
		if !errors.Is(err, resample.ErrDegenerateStatistic) {
			log.Fatal().Err(err).Msg("simulation failed")
		}
		log.Warn().Err(err).Msg("test is not well-defined for this input")
	}

	maxStat, err := ht.MaxTestStat()
	if err != nil {
		log.Fatal().Err(err).Msg("no trace")
	}
	trace, _ := ht.Trace()
	ciLo, ciHi := stats.ProportionCI(p, cfg.Iterations, 95)

	fmt.Printf("observed statistic: %.6g\n", ht.Actual())
	fmt.Printf("max simulated statistic: %.6g\n", maxStat)
	fmt.Printf("p-value: %s (95%% CI %.4g-%.4g, %d iterations)\n",
		resample.FormatPValue(p, cfg.Iterations), ciLo, ciHi, cfg.Iterations)

	if err := viz.FprintTrace(os.Stdout, trace, ht.Actual(), cfg.Bins); err != nil {
		log.Err(err).Msg("could not render histogram")
	}

	if cfg.PowerRuns > 0 {
		power, err := resample.Power(groups, stat, resample.PowerConfig{
			Alpha:      cfg.Alpha,
			Runs:       cfg.PowerRuns,
			Iterations: cfg.Iterations,
		}, rng)
		if err != nil {
			log.Fatal().Err(err).Msg("power estimation failed")
		}
		fmt.Printf("estimated power at alpha=%v: %.3f (%d runs)\n", cfg.Alpha, power, cfg.PowerRuns)
	}
}
