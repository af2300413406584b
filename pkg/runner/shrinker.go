package runner

import (
	"errors"

	"github.com/propforge/propforge/pkg/stats"
	"github.com/propforge/propforge/pkg/strategy"
)

// shrinkOutcome is the result of minimizing one failing example.
type shrinkOutcome[T any] struct {
	best       strategy.Sample[T]
	err        error
	path       []int
	iterations int
	bounded    bool
}

// shrinkFailure performs a greedy local search: it walks the current
// best value's shrink candidates in order and replaces the best with
// the first candidate that still fails, repeating until a full pass
// produces no failing candidate. Ties are broken by candidate order, so
// the search is deterministic for a fixed seed. The iteration bound
// guards against strategies whose candidates never converge.
func shrinkFailure[T any](failing strategy.Sample[T], failure error, test func(T) error, maxIterations int, collector *stats.Collector) shrinkOutcome[T] {
	out := shrinkOutcome[T]{best: failing, err: failure}

	for {
		improved := false
		index := 0
		for cand := range out.best.Shrinks() {
			if out.iterations >= maxIterations {
				out.bounded = true
				return out
			}
			out.iterations++

			err := safeCall(test, cand.Value)
			switch {
			case err == nil:
				collector.Record(stats.PhaseShrink, stats.OutcomePass)
			case errors.Is(err, ErrInvalid):
				collector.Record(stats.PhaseShrink, stats.OutcomeInvalid)
			default:
				collector.Record(stats.PhaseShrink, stats.OutcomeFail)
				out.best = cand
				out.err = err
				out.path = append(out.path, index)
				improved = true
			}
			if improved {
				break
			}
			index++
		}
		if !improved {
			return out
		}
	}
}
