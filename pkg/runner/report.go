package runner

import (
	"fmt"
	"strings"

	"github.com/propforge/propforge/pkg/stats"
)

// FailureKind classifies why a run did not pass.
type FailureKind int

const (
	// KindNone means the property held for every valid example.
	KindNone FailureKind = iota
	// KindFalsified means a counterexample was found.
	KindFalsified
	// KindExhausted means generation could not produce enough valid
	// examples, either because a filtered strategy gave up or because
	// every generated example was rejected by a precondition.
	KindExhausted
)

// String returns the kind as a short word for reports.
func (k FailureKind) String() string {
	switch k {
	case KindNone:
		return "passed"
	case KindFalsified:
		return "falsified"
	case KindExhausted:
		return "exhausted"
	default:
		return fmt.Sprintf("FailureKind(%d)", int(k))
	}
}

// Report is the terminal outcome of running one property.
type Report struct {
	// Property is the property's name.
	Property string

	// Seed is the run seed. Re-running with this seed reproduces the
	// exact example sequence and shrink path.
	Seed uint64

	// Passed is true when no counterexample was found and generation
	// was not exhausted.
	Passed bool

	// Kind classifies the failure, KindNone on success.
	Kind FailureKind

	// Counterexample is the minimal failing value's representation.
	// Empty unless Kind is KindFalsified.
	Counterexample string

	// CounterexampleSeed regenerates the originally failing example
	// that shrinking started from.
	CounterexampleSeed uint64

	// ShrinkPath is the sequence of candidate indices the shrinker
	// followed from the original failure to the minimal one.
	ShrinkPath []int

	// ShrinkBounded is set when the shrink iteration bound was reached
	// before convergence; Counterexample is then best-known, not
	// necessarily minimal.
	ShrinkBounded bool

	// Err is the failure the counterexample triggered, or the
	// generation error for KindExhausted.
	Err error

	// Stats aggregates per-phase counters and timing.
	Stats stats.Summary
}

// String renders the report in a form suitable for test logs.
func (r *Report) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "property %q %s (seed=%d)\n", r.Property, r.Kind, r.Seed)
	switch r.Kind {
	case KindFalsified:
		fmt.Fprintf(&sb, "counterexample: %s\n", r.Counterexample)
		fmt.Fprintf(&sb, "reproduce with seed %d\n", r.CounterexampleSeed)
		if r.Err != nil {
			fmt.Fprintf(&sb, "failure: %v\n", r.Err)
		}
		if r.ShrinkBounded {
			sb.WriteString("shrink iteration bound reached; counterexample may not be minimal\n")
		}
	case KindExhausted:
		if r.Err != nil {
			fmt.Fprintf(&sb, "generation exhausted: %v\n", r.Err)
		} else {
			sb.WriteString("generation exhausted: all examples were invalid\n")
		}
	}
	sb.WriteString(r.Stats.String())
	return sb.String()
}
