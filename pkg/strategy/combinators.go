package strategy

import (
	"fmt"

	"github.com/propforge/propforge/pkg/rng"
)

// maxFilterRetries bounds how many draws a filtered strategy attempts
// before giving up with a GenerationExhaustedError.
const maxFilterRetries = 100

// GenerationExhaustedError reports that a filtered strategy could not
// produce a value satisfying its predicate within the retry bound.
type GenerationExhaustedError struct {
	Strategy string
	Attempts int
}

func (e *GenerationExhaustedError) Error() string {
	return fmt.Sprintf("strategy %s exhausted after %d attempts without a valid value", e.Strategy, e.Attempts)
}

// Map transforms generated values with a pure function. Shrink
// candidates are transformed identically, so the mapped strategy shrinks
// exactly as the base strategy does.
func Map[T, U any](s Strategy[T], f func(T) U) Strategy[U] {
	return named[U]{
		name: fmt.Sprintf("Map(%s)", s),
		draw: func(r *rng.Source) (Sample[U], error) {
			base, err := s.Draw(r)
			if err != nil {
				return Sample[U]{}, err
			}
			return mapSample(base, f), nil
		},
	}
}

// Filter rejects generated values that fail the predicate, retrying up
// to a fixed bound. The shrink tree is filtered by the same predicate so
// every candidate in a shrink lineage remains valid.
func Filter[T any](s Strategy[T], pred func(T) bool) Strategy[T] {
	name := fmt.Sprintf("Filter(%s)", s)
	return named[T]{
		name: name,
		draw: func(r *rng.Source) (Sample[T], error) {
			for attempt := 1; attempt <= maxFilterRetries; attempt++ {
				base, err := s.Draw(r)
				if err != nil {
					return Sample[T]{}, err
				}
				if pred(base.Value) {
					return filterSample(base, pred), nil
				}
			}
			return Sample[T]{}, &GenerationExhaustedError{Strategy: name, Attempts: maxFilterRetries}
		},
	}
}

// filterSample prunes shrink candidates failing the predicate. Children
// of a rejected candidate are skipped as well; lineage must stay valid
// at every step.
func filterSample[T any](s Sample[T], pred func(T) bool) Sample[T] {
	return NewSample(s.Value, func(yield func(Sample[T]) bool) {
		for cand := range s.Shrinks() {
			if !pred(cand.Value) {
				continue
			}
			if !yield(filterSample(cand, pred)) {
				return
			}
		}
	})
}
