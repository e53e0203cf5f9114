package config

import "github.com/namsral/flag"

type Config struct {
	Group1Path string
	Group2Path string
	Statistic  string
	Iterations int
	Threads    int
	Seed       uint64
	Bins       int
	Alpha      float64
	PowerRuns  int
	Debug      bool
}

func (c *Config) Load(args []string) error {
	fs := flag.NewFlagSet("permutest", flag.ContinueOnError)
	fs.StringVar(&c.Group1Path, "group1", "", "file holding the first observed sample")
	fs.StringVar(&c.Group2Path, "group2", "", "file holding the second observed sample")
	fs.StringVar(&c.Statistic, "statistic", "means", "test statistic: means or stdevs")
	fs.IntVar(&c.Iterations, "iterations", 1000, "number of simulation iterations")
	fs.IntVar(&c.Threads, "threads", 1, "number of simulation workers")
	fs.Uint64Var(&c.Seed, "seed", 0, "random seed; 0 means non-deterministic")
	fs.IntVar(&c.Bins, "bins", 15, "histogram bins for the trace plot")
	fs.Float64Var(&c.Alpha, "alpha", 0.05, "significance level for power estimation")
	fs.IntVar(&c.PowerRuns, "power-runs", 0, "resampled experiments for power estimation; 0 skips it")
	fs.BoolVar(&c.Debug, "debug", false, "debug logging")
	err := fs.Parse(args)
	return err
}
