// Package runner drives repeated invocation of a test function against
// generated inputs: replaying persisted failures, generating fresh
// examples, shrinking the first failure to a minimal counterexample and
// reporting per-phase tallies.
package runner

import (
	"github.com/propforge/propforge/pkg/replay"
	"github.com/rs/zerolog"
)

// Config holds the recognized run options. The zero value is not
// usable; start from DefaultConfig.
type Config struct {
	// MaxExamples caps generate-phase invocations. Invalid examples
	// count against the cap; the runner never exceeds it.
	MaxExamples int

	// Seed fixes the pseudorandom sequence. Zero means a fresh seed is
	// taken from the clock unless Derandomize is set.
	Seed uint64

	// Derandomize forces seed zero for fully repeatable suites.
	Derandomize bool

	// MaxShrinkIterations bounds shrink-phase invocations so a
	// pathological strategy cannot loop forever.
	MaxShrinkIterations int

	// Store, when set, is consulted at reuse-phase start and written
	// after a successful shrink.
	Store replay.Store

	// Logger traces phase transitions and shrink progress. Disabled by
	// default.
	Logger zerolog.Logger
}

// DefaultConfig returns the standard run options: 100 examples, 1000
// shrink iterations, clock-derived seed, no persistence, no logging.
func DefaultConfig() Config {
	return Config{
		MaxExamples:         100,
		MaxShrinkIterations: 1000,
		Logger:              zerolog.Nop(),
	}
}

// WithSeed returns a copy of the config with the seed fixed.
func (c Config) WithSeed(seed uint64) Config {
	c.Seed = seed
	return c
}

// WithStore returns a copy of the config using the given failure store.
func (c Config) WithStore(store replay.Store) Config {
	c.Store = store
	return c
}
