package config

import (
	"testing"

	"github.com/matryer/is"
)

func TestLoad(t *testing.T) {
	is := is.New(t)
	c := &Config{}
	err := c.Load([]string{
		"-group1", "a.csv", "-group2", "b.csv",
		"-statistic", "stdevs", "-iterations", "5000",
		"-threads", "4", "-seed", "42",
	})
	is.NoErr(err)
	is.Equal(c.Group1Path, "a.csv")
	is.Equal(c.Group2Path, "b.csv")
	is.Equal(c.Statistic, "stdevs")
	is.Equal(c.Iterations, 5000)
	is.Equal(c.Threads, 4)
	is.Equal(c.Seed, uint64(42))
}

func TestLoadDefaults(t *testing.T) {
	is := is.New(t)
	c := &Config{}
	is.NoErr(c.Load(nil))
	is.Equal(c.Statistic, "means")
	is.Equal(c.Iterations, 1000)
	is.Equal(c.Threads, 1)
	is.Equal(c.Bins, 15)
	is.Equal(c.Alpha, 0.05)
}
