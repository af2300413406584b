// Package stats aggregates per-phase example counters for a property
// run. Collectors are write-only during the run and read via Snapshot;
// nothing in the runner consults them for control flow.
package stats

import (
	"fmt"
	"strings"
	"time"
)

// Phase identifies which part of a run an example belongs to.
type Phase string

const (
	// PhaseReuse replays previously persisted failing examples.
	PhaseReuse Phase = "reuse"
	// PhaseGenerate draws fresh examples.
	PhaseGenerate Phase = "generate"
	// PhaseShrink searches for a minimal counterexample.
	PhaseShrink Phase = "shrink"
)

// phases in reporting order.
var phases = []Phase{PhaseReuse, PhaseGenerate, PhaseShrink}

// Outcome classifies one test-function invocation.
type Outcome int

const (
	// OutcomePass means the property held for the example.
	OutcomePass Outcome = iota
	// OutcomeFail means the property was violated.
	OutcomeFail
	// OutcomeInvalid means the example was rejected by a precondition
	// and counts toward neither pass nor fail.
	OutcomeInvalid
)

// Counts holds the tallies for one phase.
type Counts struct {
	Tried   int
	Passed  int
	Failed  int
	Invalid int
}

// Collector accumulates counters while a property runs.
type Collector struct {
	start  time.Time
	counts map[Phase]*Counts
}

// NewCollector creates a collector with the clock started.
func NewCollector() *Collector {
	return &Collector{
		start:  time.Now(),
		counts: make(map[Phase]*Counts, len(phases)),
	}
}

// Record tallies one invocation outcome for a phase.
func (c *Collector) Record(phase Phase, outcome Outcome) {
	counts := c.counts[phase]
	if counts == nil {
		counts = &Counts{}
		c.counts[phase] = counts
	}
	counts.Tried++
	switch outcome {
	case OutcomePass:
		counts.Passed++
	case OutcomeFail:
		counts.Failed++
	case OutcomeInvalid:
		counts.Invalid++
	}
}

// Summary is an immutable view of a finished run's counters.
type Summary struct {
	Phases  map[Phase]Counts
	Elapsed time.Duration
}

// Snapshot freezes the collector into a summary.
func (c *Collector) Snapshot() Summary {
	out := Summary{
		Phases:  make(map[Phase]Counts, len(c.counts)),
		Elapsed: time.Since(c.start),
	}
	for p, counts := range c.counts {
		out.Phases[p] = *counts
	}
	return out
}

// Phase returns the counts for a phase, zero-valued if it never ran.
func (s Summary) Phase(p Phase) Counts {
	return s.Phases[p]
}

// Total sums tried examples across all phases.
func (s Summary) Total() Counts {
	var total Counts
	for _, c := range s.Phases {
		total.Tried += c.Tried
		total.Passed += c.Passed
		total.Failed += c.Failed
		total.Invalid += c.Invalid
	}
	return total
}

// String renders the summary as one line per phase that ran.
func (s Summary) String() string {
	var sb strings.Builder
	for _, p := range phases {
		c, ok := s.Phases[p]
		if !ok {
			continue
		}
		fmt.Fprintf(&sb, "%s: tried=%d passed=%d failed=%d invalid=%d\n",
			p, c.Tried, c.Passed, c.Failed, c.Invalid)
	}
	fmt.Fprintf(&sb, "elapsed: %s", s.Elapsed.Round(time.Microsecond))
	return sb.String()
}
