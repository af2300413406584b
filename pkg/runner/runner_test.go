package runner_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/propforge/propforge/internal/testutil"
	"github.com/propforge/propforge/pkg/replay"
	"github.com/propforge/propforge/pkg/rng"
	"github.com/propforge/propforge/pkg/runner"
	"github.com/propforge/propforge/pkg/stats"
	"github.com/propforge/propforge/pkg/strategy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededConfig(seed uint64) runner.Config {
	return runner.DefaultConfig().WithSeed(seed)
}

func TestRunPassesWhenPropertyHolds(t *testing.T) {
	report := runner.Run("multiplying by zero yields zero", strategy.Int(),
		func(v int) error {
			if v*0 != 0 {
				return fmt.Errorf("%d * 0 = %d", v, v*0)
			}
			return nil
		}, seededConfig(30))

	assert.True(t, report.Passed)
	assert.Equal(t, runner.KindNone, report.Kind)
	assert.Equal(t, uint64(30), report.Seed)
	assert.Empty(t, report.Counterexample)

	gen := report.Stats.Phase(stats.PhaseGenerate)
	assert.Equal(t, 100, gen.Tried, "the full example budget is spent on a pass")
	assert.Equal(t, 100, gen.Passed)
}

func TestRunReproducibleForSeed(t *testing.T) {
	run := func(seed uint64) []int {
		rec := testutil.NewRecording(strategy.IntRange(-1000, 1000))
		report := runner.Run("recorded", rec, func(int) error { return nil }, seededConfig(seed))
		require.True(t, report.Passed)
		return rec.Values()
	}

	first := run(30)
	second := run(30)
	require.Len(t, first, 100)
	assert.Equal(t, first, second, "one seed must reproduce the exact example sequence")

	other := run(31)
	assert.NotEqual(t, first, other, "different seeds should diverge")
}

func TestRunFalsifiedShrinksToMinimalCounterexample(t *testing.T) {
	strat := strategy.IntRange(-1000, 1000)
	test := func(v int) error {
		if v < 0 {
			return fmt.Errorf("value %d is negative", v)
		}
		return nil
	}

	report := runner.Run("values are non-negative", strat, test, seededConfig(30))

	require.False(t, report.Passed)
	require.Equal(t, runner.KindFalsified, report.Kind)
	assert.Equal(t, "-1", report.Counterexample, "the minimal failing integer is -1")
	assert.False(t, report.ShrinkBounded)
	assert.NotEmpty(t, report.ShrinkPath)
	require.Error(t, report.Err)

	// The reported seed regenerates the original failing example.
	sample, err := strat.Draw(rng.New(report.CounterexampleSeed))
	require.NoError(t, err)
	assert.Negative(t, sample.Value)
}

func TestRunFirstFailureAbandonsGenerateBudget(t *testing.T) {
	report := runner.Run("never holds", strategy.Const(5),
		func(int) error { return errors.New("no") }, seededConfig(1))

	require.Equal(t, runner.KindFalsified, report.Kind)
	assert.Equal(t, "5", report.Counterexample)
	assert.Empty(t, report.ShrinkPath)

	gen := report.Stats.Phase(stats.PhaseGenerate)
	assert.Equal(t, 1, gen.Tried, "generation stops at the first failure")
	assert.Equal(t, 1, gen.Failed)
}

func TestRunCountsInvalidExamplesAgainstBudget(t *testing.T) {
	report := runner.Run("even values only", strategy.IntRange(0, 1000),
		func(v int) error {
			if v%2 != 0 {
				return runner.Invalidf("odd value %d", v)
			}
			return nil
		}, seededConfig(30))

	require.True(t, report.Passed)
	gen := report.Stats.Phase(stats.PhaseGenerate)
	assert.Equal(t, 100, gen.Tried, "invalid examples still consume the budget")
	assert.Positive(t, gen.Passed)
	assert.Positive(t, gen.Invalid)
	assert.Zero(t, gen.Failed)
	assert.Equal(t, gen.Tried, gen.Passed+gen.Invalid)
}

func TestRunAllInvalidIsExhaustedNotPassed(t *testing.T) {
	report := runner.Run("rejects everything", strategy.Int(),
		func(int) error { return runner.ErrInvalid }, seededConfig(30))

	assert.False(t, report.Passed, "a run that proved nothing must not pass")
	assert.Equal(t, runner.KindExhausted, report.Kind)

	gen := report.Stats.Phase(stats.PhaseGenerate)
	assert.Equal(t, 100, gen.Tried)
	assert.Equal(t, 100, gen.Invalid)
}

func TestRunFilterExhaustionIsBoundedAndReported(t *testing.T) {
	impossible := strategy.Filter(strategy.Int(), func(int) bool { return false })

	report := runner.Run("unsatisfiable filter", impossible,
		func(int) error { return nil }, seededConfig(30))

	assert.False(t, report.Passed)
	assert.Equal(t, runner.KindExhausted, report.Kind)

	var exhausted *strategy.GenerationExhaustedError
	require.ErrorAs(t, report.Err, &exhausted)
}

func TestRunTreatsPanicAsFailure(t *testing.T) {
	report := runner.Run("index out of range", strategy.Const([]int{1}),
		func(v []int) error {
			_ = v[len(v)] // deliberate out-of-range access
			return nil
		}, seededConfig(1))

	require.Equal(t, runner.KindFalsified, report.Kind)
	require.Error(t, report.Err)
	assert.Contains(t, report.Err.Error(), "panic")
}

func TestRunShrinkIterationBound(t *testing.T) {
	cfg := seededConfig(30)
	cfg.MaxShrinkIterations = 50

	report := runner.Run("never converges", testutil.StubbornShrink{},
		func(int) error { return errors.New("always fails") }, cfg)

	require.Equal(t, runner.KindFalsified, report.Kind)
	assert.True(t, report.ShrinkBounded)
	assert.Equal(t, 50, report.Stats.Phase(stats.PhaseShrink).Tried)
	assert.NotEmpty(t, report.Counterexample, "a best-known counterexample is still reported")
}

func TestRunReusePhaseReplaysStoredFailure(t *testing.T) {
	store := replay.NewMemoryStore()
	require.NoError(t, store.Put(replay.Record{
		Property: "stored failure",
		Seed:     99,
		Value:    "150",
	}))

	report := runner.Run("stored failure", strategy.Const(150),
		func(v int) error {
			if v >= 100 {
				return fmt.Errorf("value %d too large", v)
			}
			return nil
		}, seededConfig(30).WithStore(store))

	require.Equal(t, runner.KindFalsified, report.Kind)
	assert.Equal(t, uint64(99), report.CounterexampleSeed, "the stored seed identifies the replayed example")

	reuse := report.Stats.Phase(stats.PhaseReuse)
	assert.Equal(t, 1, reuse.Tried)
	assert.Equal(t, 1, reuse.Failed)
	assert.Zero(t, report.Stats.Phase(stats.PhaseGenerate).Tried,
		"a replayed failure pre-empts the generate phase")
}

func TestRunReuseIgnoresFixedFailures(t *testing.T) {
	store := replay.NewMemoryStore()
	require.NoError(t, store.Put(replay.Record{
		Property: "since fixed",
		Seed:     99,
		Value:    "150",
	}))

	report := runner.Run("since fixed", strategy.Const(150),
		func(int) error { return nil }, seededConfig(30).WithStore(store))

	assert.True(t, report.Passed, "a stored example that now passes does not fail the run")
	reuse := report.Stats.Phase(stats.PhaseReuse)
	assert.Equal(t, 1, reuse.Tried)
	assert.Equal(t, 1, reuse.Passed)
	assert.Equal(t, 100, report.Stats.Phase(stats.PhaseGenerate).Tried)
}

func TestRunPersistsMinimalCounterexample(t *testing.T) {
	store := testutil.TempSQLiteStore(t)

	report := runner.Run("persisted", strategy.IntRange(-1000, 1000),
		func(v int) error {
			if v < 0 {
				return fmt.Errorf("negative %d", v)
			}
			return nil
		}, seededConfig(30).WithStore(store))

	require.Equal(t, runner.KindFalsified, report.Kind)

	records, err := store.List("persisted")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, report.Counterexample, records[0].Value)
	assert.Equal(t, report.CounterexampleSeed, records[0].Seed)
	assert.Equal(t, report.ShrinkPath, records[0].ShrinkPath)
}

func TestRunDerandomizePinsSeed(t *testing.T) {
	cfg := runner.DefaultConfig()
	cfg.Derandomize = true

	run := func() ([]int, uint64) {
		rec := testutil.NewRecording(strategy.IntRange(-1000, 1000))
		report := runner.Run("derandomized", rec, func(int) error { return nil }, cfg)
		return rec.Values(), report.Seed
	}

	first, seed1 := run()
	second, seed2 := run()
	assert.Equal(t, uint64(0), seed1)
	assert.Equal(t, seed1, seed2)
	assert.Equal(t, first, second)
}

func TestRunExplicitSeedWinsOverDerandomize(t *testing.T) {
	cfg := runner.DefaultConfig().WithSeed(30)
	cfg.Derandomize = true

	report := runner.Run("seeded", strategy.Int(), func(int) error { return nil }, cfg)
	assert.Equal(t, uint64(30), report.Seed)
}
