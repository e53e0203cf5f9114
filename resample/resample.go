// Package resample implements randomization-based hypothesis testing.
// A HypothesisTest pairs a test statistic with a null-hypothesis model,
// repeatedly draws simulated datasets from the model, and reduces the
// simulated statistics to a p-value: the fraction of simulated draws at
// least as extreme as the observed one.
package resample

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
	"lukechampine.com/frand"

	"github.com/dfenwick/permutest/stats"
)

var (
	// ErrInvalidInput means the observed data (or an iteration count)
	// violates a precondition of the test. Not retryable.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNoSimulation means a trace-dependent accessor was called before
	// any PValue run produced a trace.
	ErrNoSimulation = errors.New("no simulation has been run")
	// ErrDegenerateStatistic flags a non-finite statistic value. The
	// p-value is still returned alongside it; the test is not
	// well-defined for this input and the caller must decide.
	ErrDegenerateStatistic = errors.New("test statistic is not finite")
)

// HypothesisTest owns the observed data, the null model built from it,
// the observed test statistic (computed exactly once, at construction),
// and the trace of the most recent simulation run. It is not safe for
// concurrent use: Simulate reshuffles model state in place.
type HypothesisTest struct {
	groups [][]float64
	stat   Statistic
	model  Model
	rng    *frand.RNG

	threads   int
	logStream io.Writer

	actual     float64
	trace      []float64
	traceStats stats.Statistic
}

// Option configures a HypothesisTest at construction time.
type Option func(*HypothesisTest)

// WithRNG injects a random source. Use NewRNG for a deterministic one.
func WithRNG(rng *frand.RNG) Option {
	return func(ht *HypothesisTest) { ht.rng = rng }
}

// WithSeed is shorthand for WithRNG(NewRNG(seed)).
func WithSeed(seed uint64) Option {
	return func(ht *HypothesisTest) { ht.rng = NewRNG(seed) }
}

// WithThreads sets the worker count for PValueContext. The single-run
// PValue path always uses one thread.
func WithThreads(threads int) Option {
	return func(ht *HypothesisTest) { ht.threads = threads }
}

// New builds a test from observed groups, a statistic, and a null model.
// The model is built once (if it implements Builder) and the observed
// statistic is computed once and never recomputed. The groups must be
// non-empty and finite; a statistic may still be degenerate for valid
// input (e.g. the stdev of a single-element group), and that is allowed
// through here per the propagate-then-flag policy.
func New(groups [][]float64, stat Statistic, model Model, opts ...Option) (*HypothesisTest, error) {
	if err := validateGroups(groups); err != nil {
		return nil, err
	}
	if stat == nil || model == nil {
		return nil, fmt.Errorf("%w: nil statistic or model", ErrInvalidInput)
	}
	ht := &HypothesisTest{
		groups:  groups,
		stat:    stat,
		model:   model,
		rng:     frand.New(),
		threads: 1,
	}
	for _, opt := range opts {
		opt(ht)
	}
	if b, ok := model.(Builder); ok {
		if err := b.Build(groups); err != nil {
			return nil, err
		}
	}
	ht.actual = stat(groups)
	return ht, nil
}

func validateGroups(groups [][]float64) error {
	if len(groups) < 2 {
		return fmt.Errorf("%w: need at least two groups, got %d", ErrInvalidInput, len(groups))
	}
	for i, g := range groups {
		if len(g) == 0 {
			return fmt.Errorf("%w: group %d is empty", ErrInvalidInput, i)
		}
		for _, v := range g {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("%w: group %d contains non-finite value %v", ErrInvalidInput, i, v)
			}
		}
	}
	return nil
}

// Actual returns the observed test statistic.
func (ht *HypothesisTest) Actual() float64 {
	return ht.actual
}

// PValue runs iterations simulation cycles and returns the one-sided
// right-tail p-value: the count of simulated statistics >= the observed
// one, divided by the iteration count. Ties count as support for the
// null. Any prior trace is replaced, not appended to. Deterministic for
// a fixed RNG seed.
func (ht *HypothesisTest) PValue(iterations int) (float64, error) {
	if iterations < 1 {
		return 0, fmt.Errorf("%w: iterations must be >= 1, got %d", ErrInvalidInput, iterations)
	}
	ht.trace = make([]float64, iterations)
	ht.traceStats = stats.Statistic{}
	for i := range ht.trace {
		sim := ht.model.Simulate(ht.rng)
		v := ht.stat(sim)
		ht.trace[i] = v
		ht.traceStats.Push(v)
		if ht.logStream != nil {
			if err := writeLogIteration(ht.logStream, LogIteration{Iteration: i, Stat: v}); err != nil {
				ht.clearTrace()
				return 0, err
			}
		}
	}
	return ht.reduce()
}

// clearTrace removes a partial trace after an aborted run; a trace
// either has the full requested length or is absent.
func (ht *HypothesisTest) clearTrace() {
	ht.trace = nil
	ht.traceStats = stats.Statistic{}
}

// PValueContext is PValue with cancellation and optional parallelism.
// Workers beyond the first require the model to be copyable, since
// Simulate mutates model state in place. Each worker gets its own model
// copy and an RNG derived from the test's seed stream, and writes a
// disjoint span of the trace, so the result is deterministic for a
// fixed seed and thread count. Trace order carries no meaning.
func (ht *HypothesisTest) PValueContext(ctx context.Context, iterations int) (float64, error) {
	if iterations < 1 {
		return 0, fmt.Errorf("%w: iterations must be >= 1, got %d", ErrInvalidInput, iterations)
	}
	copier, copyable := ht.model.(Copier)
	if ht.threads <= 1 || !copyable {
		return ht.pvalueSequentialCtx(ctx, iterations)
	}

	ht.trace = make([]float64, iterations)
	ht.traceStats = stats.Statistic{}

	tstart := time.Now()
	g, ctx := errgroup.WithContext(ctx)

	logChan := make(chan []byte)
	logDone := make(chan bool)
	writer := errgroup.Group{}
	if ht.logStream != nil {
		writer.Go(func() error {
			for {
				select {
				case b := <-logChan:
					ht.logStream.Write(b)
				case <-logDone:
					return nil
				}
			}
		})
	}

	threads := min(ht.threads, iterations)
	span := iterations / threads
	for t := 0; t < threads; t++ {
		start, end := t*span, (t+1)*span
		if t == threads-1 {
			end = iterations
		}
		// Derive worker seeds from the main RNG before launching so the
		// assignment is deterministic.
		var seed [32]byte
		ht.rng.Read(seed[:])
		wrng := frand.NewCustom(seed[:], 1024, 12)
		model := copier.Copy()
		g.Go(func() error {
			log.Debug().Int("thread", t).Int("from", start).Int("to", end).Msg("sim-worker-start")
			for i := start; i < end; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				sim := model.Simulate(wrng)
				v := ht.stat(sim)
				ht.trace[i] = v
				if ht.logStream != nil {
					b, err := marshalLogIteration(LogIteration{Iteration: i, Thread: t, Stat: v})
					if err != nil {
						return err
					}
					logChan <- b
				}
			}
			return nil
		})
	}
	err := g.Wait()
	if ht.logStream != nil {
		close(logDone)
		writer.Wait()
	}
	if err != nil {
		ht.clearTrace()
		return 0, err
	}
	for _, v := range ht.trace {
		ht.traceStats.Push(v)
	}
	log.Debug().Dur("elapsed", time.Since(tstart)).Int("iterations", iterations).
		Int("threads", threads).Msg("sim-ended")
	return ht.reduce()
}

func (ht *HypothesisTest) pvalueSequentialCtx(ctx context.Context, iterations int) (float64, error) {
	ht.trace = make([]float64, iterations)
	ht.traceStats = stats.Statistic{}
	for i := range ht.trace {
		if err := ctx.Err(); err != nil {
			ht.clearTrace()
			return 0, err
		}
		sim := ht.model.Simulate(ht.rng)
		v := ht.stat(sim)
		ht.trace[i] = v
		ht.traceStats.Push(v)
		if ht.logStream != nil {
			if err := writeLogIteration(ht.logStream, LogIteration{Iteration: i, Stat: v}); err != nil {
				ht.clearTrace()
				return 0, err
			}
		}
	}
	return ht.reduce()
}

// reduce counts trace entries at least as extreme as the observed
// statistic. Non-finite values anywhere make the comparison degenerate;
// the ratio is still computed and returned with ErrDegenerateStatistic.
func (ht *HypothesisTest) reduce() (float64, error) {
	degenerate := math.IsNaN(ht.actual) || math.IsInf(ht.actual, 0)
	count := 0
	for _, v := range ht.trace {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			degenerate = true
		}
		if v >= ht.actual {
			count++
		}
	}
	p := float64(count) / float64(len(ht.trace))
	if degenerate {
		return p, fmt.Errorf("%w: observed %v", ErrDegenerateStatistic, ht.actual)
	}
	return p, nil
}

// MaxTestStat returns the maximum simulated statistic of the most
// recent run only, never a historical maximum across runs.
func (ht *HypothesisTest) MaxTestStat() (float64, error) {
	if ht.trace == nil {
		return 0, ErrNoSimulation
	}
	return lo.Max(ht.trace), nil
}

// Trace returns the most recent simulation trace. Callers must treat it
// as read-only; it is the engine's own buffer.
func (ht *HypothesisTest) Trace() ([]float64, error) {
	if ht.trace == nil {
		return nil, ErrNoSimulation
	}
	return ht.trace, nil
}

// TraceStats returns running summary statistics over the most recent
// trace.
func (ht *HypothesisTest) TraceStats() (stats.Statistic, error) {
	if ht.trace == nil {
		return stats.Statistic{}, ErrNoSimulation
	}
	return ht.traceStats, nil
}

// SetLogStream directs a per-iteration record (yaml, one doc per line)
// to w on subsequent runs. Pass nil to turn logging off.
func (ht *HypothesisTest) SetLogStream(w io.Writer) {
	ht.logStream = w
}

// SetThreads adjusts the worker count for PValueContext after
// construction.
func (ht *HypothesisTest) SetThreads(threads int) {
	ht.threads = threads
}

// Threads returns the configured worker count.
func (ht *HypothesisTest) Threads() int {
	return ht.threads
}
