package stats

import (
	"math"
	"testing"

	"github.com/matryer/is"
)

func TestRunningStat(t *testing.T) {
	is := is.New(t)
	type tc struct {
		scores []int
		mean   float64
		stdev  float64
	}
	cases := []tc{
		{[]int{10, 12, 23, 23, 16, 23, 21, 16}, 18, 5.2372293656638},
		{[]int{14, 35, 71, 124, 10, 24, 55, 33, 87, 19}, 47.2, 36.937785531891},
		{[]int{1}, 1, 0},
		{[]int{}, 0, 0},
		{[]int{1, 1}, 1, 0},
	}
	for _, c := range cases {
		s := &Statistic{}
		for _, score := range c.scores {
			s.Push(float64(score))
		}
		is.True(FuzzyEqual(s.Mean(), c.mean))
		is.True(FuzzyEqual(s.Stdev(), c.stdev))
	}
}

func TestMeanStdev(t *testing.T) {
	is := is.New(t)
	type tc struct {
		vals  []float64
		mean  float64
		stdev float64
	}
	cases := []tc{
		{[]float64{10, 12, 23, 23, 16, 23, 21, 16}, 18, 5.2372293656638},
		{[]float64{1, 2, 3, 4, 5}, 3, 1.5811388300841898},
		{[]float64{7, 7, 7}, 7, 0},
	}
	for _, c := range cases {
		is.True(FuzzyEqual(Mean(c.vals), c.mean))
		is.True(FuzzyEqual(Stdev(c.vals), c.stdev))
	}
}

func TestStdevDegenerate(t *testing.T) {
	is := is.New(t)
	// Sample convention: no spread is defined for fewer than two points.
	is.True(math.IsNaN(Stdev([]float64{5})))
	is.True(math.IsNaN(Stdev(nil)))
	is.True(math.IsNaN(Mean(nil)))
}

func TestRunningStatMatchesDirect(t *testing.T) {
	is := is.New(t)
	vals := []float64{3.2, -1.5, 0.0, 8.8, 4.4, 4.4, -7.1, 2.25}
	s := &Statistic{}
	for _, v := range vals {
		s.Push(v)
	}
	is.True(FuzzyEqual(s.Mean(), Mean(vals)))
	is.True(FuzzyEqual(s.Stdev(), Stdev(vals)))
	is.Equal(s.Iterations(), len(vals))
	is.Equal(s.Last(), 2.25)
}
