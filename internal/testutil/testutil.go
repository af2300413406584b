// Package testutil provides shared helpers for propforge's own tests.
package testutil

import (
	"fmt"
	"sync"
	"testing"

	"github.com/propforge/propforge/pkg/replay"
	"github.com/propforge/propforge/pkg/rng"
	"github.com/propforge/propforge/pkg/strategy"
)

// TempSQLiteStore opens a SQLite failure store in a temporary directory
// and closes it when the test finishes.
func TempSQLiteStore(t *testing.T) *replay.SQLiteStore {
	t.Helper()
	store, err := replay.OpenSQLite(t.TempDir() + "/failures.db")
	if err != nil {
		t.Fatalf("failed to open temp store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

// Recording wraps a strategy and records every generated value, letting
// tests inspect the exact example sequence a runner consumed.
type Recording[T any] struct {
	base   strategy.Strategy[T]
	mu     sync.Mutex
	values []T
}

// NewRecording creates a recording wrapper around base.
func NewRecording[T any](base strategy.Strategy[T]) *Recording[T] {
	return &Recording[T]{base: base}
}

// Draw generates from the base strategy and records the value.
func (r *Recording[T]) Draw(src *rng.Source) (strategy.Sample[T], error) {
	sample, err := r.base.Draw(src)
	if err != nil {
		return sample, err
	}
	r.mu.Lock()
	r.values = append(r.values, sample.Value)
	r.mu.Unlock()
	return sample, nil
}

// String describes the wrapped strategy.
func (r *Recording[T]) String() string {
	return fmt.Sprintf("Recording(%s)", r.base)
}

// Values returns a copy of the recorded generation sequence.
func (r *Recording[T]) Values() []T {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]T, len(r.values))
	copy(out, r.values)
	return out
}

// Reset clears the recorded sequence.
func (r *Recording[T]) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values = nil
}

// StubbornShrink is a pathological strategy whose samples claim the
// same value as a shrink candidate forever. Used to exercise the
// shrinker's iteration bound.
type StubbornShrink struct{}

// Draw returns a sample that never converges under shrinking.
func (StubbornShrink) Draw(src *rng.Source) (strategy.Sample[int], error) {
	return stubbornSample(int(src.Uint64n(1000)) + 1), nil
}

// String describes the strategy.
func (StubbornShrink) String() string { return "StubbornShrink" }

func stubbornSample(v int) strategy.Sample[int] {
	return strategy.NewSample(v, func(yield func(strategy.Sample[int]) bool) {
		// Deliberately not smaller: an endless plateau.
		yield(stubbornSample(v))
	})
}
