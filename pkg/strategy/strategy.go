// Package strategy provides composable generators of test input values.
// Every strategy knows how to produce a pseudorandom value from a
// deterministic source and how to enumerate strictly smaller candidates
// for shrinking a failing value toward a minimal counterexample.
package strategy

import (
	"fmt"
	"iter"

	"github.com/propforge/propforge/pkg/rng"
)

// Strategy generates values of type T. Implementations are immutable;
// combinators return new strategies without mutating their inputs.
type Strategy[T any] interface {
	// Draw produces one sample from the source. It fails only when a
	// filtered strategy exhausts its retry budget.
	Draw(r *rng.Source) (Sample[T], error)

	// String describes the strategy for error messages and reports.
	String() string
}

// Sample is one generated value together with its shrink candidates.
// The candidate sequence is lazy, finite and restartable, ordered from
// the most aggressive shrink to the least.
type Sample[T any] struct {
	Value   T
	shrinks iter.Seq[Sample[T]]
}

// NewSample creates a sample with the given shrink candidates.
func NewSample[T any](value T, shrinks iter.Seq[Sample[T]]) Sample[T] {
	return Sample[T]{Value: value, shrinks: shrinks}
}

// Leaf creates a sample with no shrink candidates.
func Leaf[T any](value T) Sample[T] {
	return Sample[T]{Value: value}
}

// Shrinks iterates the shrink candidates. A sample with no candidates
// yields an empty sequence.
func (s Sample[T]) Shrinks() iter.Seq[Sample[T]] {
	if s.shrinks == nil {
		return func(yield func(Sample[T]) bool) {}
	}
	return s.shrinks
}

// mapSample lazily transforms a sample and its whole shrink tree.
func mapSample[T, U any](s Sample[T], f func(T) U) Sample[U] {
	return Sample[U]{
		Value: f(s.Value),
		shrinks: func(yield func(Sample[U]) bool) {
			for cand := range s.Shrinks() {
				if !yield(mapSample(cand, f)) {
					return
				}
			}
		},
	}
}

// named wraps a draw function with a description. Most built-in
// strategies are thin instances of this type.
type named[T any] struct {
	name string
	draw func(r *rng.Source) (Sample[T], error)
}

func (n named[T]) Draw(r *rng.Source) (Sample[T], error) { return n.draw(r) }
func (n named[T]) String() string                        { return n.name }

// infallible builds a strategy whose draw cannot fail.
func infallible[T any](name string, draw func(r *rng.Source) Sample[T]) Strategy[T] {
	return named[T]{
		name: name,
		draw: func(r *rng.Source) (Sample[T], error) {
			return draw(r), nil
		},
	}
}

// Const always generates the same value and never shrinks.
func Const[T any](value T) Strategy[T] {
	return infallible(fmt.Sprintf("Const(%v)", value), func(r *rng.Source) Sample[T] {
		return Leaf(value)
	})
}

// OneConstOf picks one of the given values uniformly. Candidates shrink
// toward earlier values in the argument list.
func OneConstOf[T any](values ...T) Strategy[T] {
	if len(values) == 0 {
		panic("strategy: OneConstOf requires at least one value")
	}
	name := fmt.Sprintf("OneConstOf(%d values)", len(values))
	var sampleAt func(i int) Sample[T]
	sampleAt = func(i int) Sample[T] {
		return NewSample(values[i], func(yield func(Sample[T]) bool) {
			for j := 0; j < i; j++ {
				if !yield(sampleAt(j)) {
					return
				}
			}
		})
	}
	return infallible(name, func(r *rng.Source) Sample[T] {
		return sampleAt(r.Intn(len(values)))
	})
}

// OneOf draws from one of the given strategies, chosen uniformly.
func OneOf[T any](strategies ...Strategy[T]) Strategy[T] {
	if len(strategies) == 0 {
		panic("strategy: OneOf requires at least one strategy")
	}
	return named[T]{
		name: fmt.Sprintf("OneOf(%d strategies)", len(strategies)),
		draw: func(r *rng.Source) (Sample[T], error) {
			return strategies[r.Intn(len(strategies))].Draw(r)
		},
	}
}

// Bool generates coin flips. True shrinks to false.
func Bool() Strategy[bool] {
	return infallible("Bool", func(r *rng.Source) Sample[bool] {
		if !r.Bool() {
			return Leaf(false)
		}
		return NewSample(true, func(yield func(Sample[bool]) bool) {
			yield(Leaf(false))
		})
	})
}
