package runner

import (
	"errors"
	"fmt"
	"time"

	"github.com/propforge/propforge/pkg/replay"
	"github.com/propforge/propforge/pkg/rng"
	"github.com/propforge/propforge/pkg/stats"
	"github.com/propforge/propforge/pkg/strategy"
	"github.com/rs/zerolog"
)

// Run executes one property to completion: reuse, generate, shrink,
// report. Execution is strictly sequential; each example is generated
// and the test function invoked to completion before the next example
// is drawn.
func Run[T any](name string, strat strategy.Strategy[T], test func(T) error, cfg Config) *Report {
	collector := stats.NewCollector()
	runSeed := resolveSeed(cfg)
	log := cfg.Logger.With().Str("property", name).Uint64("seed", runSeed).Logger()

	report := &Report{Property: name, Seed: runSeed}

	// Reuse: replay persisted failures before spending generate budget.
	if cfg.Store != nil {
		records, err := cfg.Store.List(name)
		if err != nil {
			log.Warn().Err(err).Msg("failure database unavailable, skipping reuse phase")
		}
		for _, rec := range records {
			log.Debug().Uint64("example_seed", rec.Seed).Msg("replaying persisted failure")
			sample, err := strat.Draw(rng.New(rec.Seed))
			if err != nil {
				// The strategy changed since the record was written.
				collector.Record(stats.PhaseReuse, stats.OutcomeInvalid)
				continue
			}
			failure := runExample(test, sample.Value, stats.PhaseReuse, collector)
			if failure != nil {
				finishFalsified(report, sample, failure, rec.Seed, test, cfg, collector, log)
				return report
			}
		}
	}

	// Generate: draw up to MaxExamples fresh examples. Each example
	// gets a seed derived from the run seed and its index so any one
	// of them can be regenerated independently.
	log.Debug().Int("max_examples", cfg.MaxExamples).Msg("generate phase")
	for i := 0; i < cfg.MaxExamples; i++ {
		exampleSeed := rng.Derive(runSeed, uint64(i))
		sample, err := strat.Draw(rng.New(exampleSeed))
		if err != nil {
			var exhausted *strategy.GenerationExhaustedError
			if errors.As(err, &exhausted) {
				report.Kind = KindExhausted
				report.Err = err
				report.Stats = collector.Snapshot()
				return report
			}
			report.Kind = KindExhausted
			report.Err = fmt.Errorf("strategy %s failed: %w", strat, err)
			report.Stats = collector.Snapshot()
			return report
		}

		failure := runExample(test, sample.Value, stats.PhaseGenerate, collector)
		if failure != nil {
			// First failure abandons the remaining generate budget.
			finishFalsified(report, sample, failure, exampleSeed, test, cfg, collector, log)
			return report
		}
	}

	summary := collector.Snapshot()
	generated := summary.Phase(stats.PhaseGenerate)
	if generated.Passed == 0 && generated.Invalid > 0 {
		// Every example was rejected by a precondition; the run proved
		// nothing and must not be reported as a pass.
		report.Kind = KindExhausted
		report.Stats = summary
		return report
	}

	report.Passed = true
	report.Stats = summary
	return report
}

// runExample invokes the test function on one example and tallies the
// outcome. It returns the failure, or nil for pass and invalid.
func runExample[T any](test func(T) error, value T, phase stats.Phase, collector *stats.Collector) error {
	err := safeCall(test, value)
	switch {
	case err == nil:
		collector.Record(phase, stats.OutcomePass)
		return nil
	case errors.Is(err, ErrInvalid):
		collector.Record(phase, stats.OutcomeInvalid)
		return nil
	default:
		collector.Record(phase, stats.OutcomeFail)
		return err
	}
}

// finishFalsified runs the shrink phase for the first failure, persists
// the minimal counterexample and fills in the report.
func finishFalsified[T any](report *Report, failing strategy.Sample[T], failure error, exampleSeed uint64, test func(T) error, cfg Config, collector *stats.Collector, log zerolog.Logger) {
	log.Debug().Uint64("example_seed", exampleSeed).Err(failure).Msg("shrink phase")

	outcome := shrinkFailure(failing, failure, test, cfg.MaxShrinkIterations, collector)

	report.Kind = KindFalsified
	report.Counterexample = fmt.Sprintf("%#v", outcome.best.Value)
	report.CounterexampleSeed = exampleSeed
	report.ShrinkPath = outcome.path
	report.ShrinkBounded = outcome.bounded
	report.Err = outcome.err
	report.Stats = collector.Snapshot()

	log.Debug().
		Int("iterations", outcome.iterations).
		Bool("bounded", outcome.bounded).
		Str("counterexample", report.Counterexample).
		Msg("shrink finished")

	if cfg.Store != nil {
		rec := replay.Record{
			Property:   report.Property,
			Seed:       exampleSeed,
			Value:      report.Counterexample,
			ShrinkPath: outcome.path,
			CreatedAt:  time.Now(),
		}
		if err := cfg.Store.Put(rec); err != nil {
			log.Warn().Err(err).Msg("failed to persist counterexample")
		}
	}
}

// resolveSeed applies the seed options: explicit seed wins, derandomize
// pins the seed to zero, otherwise the clock provides one.
func resolveSeed(cfg Config) uint64 {
	if cfg.Seed != 0 {
		return cfg.Seed
	}
	if cfg.Derandomize {
		return 0
	}
	return uint64(time.Now().UnixNano())
}
