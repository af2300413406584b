package runner

import (
	"github.com/propforge/propforge/pkg/strategy"
)

// TestingT is the subset of *testing.T the runner reports through.
type TestingT interface {
	Helper()
	Errorf(format string, args ...any)
	Logf(format string, args ...any)
}

// Properties collects named properties that share one configuration.
// Independent properties may run in parallel test functions; within one
// property execution is strictly sequential.
type Properties struct {
	cfg  Config
	runs []func(cfg Config) *Report
}

// NewProperties creates an empty collection using cfg for every
// property added to it.
func NewProperties(cfg Config) *Properties {
	return &Properties{cfg: cfg}
}

// Property adds a named property to the collection. It is a package
// function rather than a method because methods cannot introduce type
// parameters.
func Property[T any](ps *Properties, name string, strat strategy.Strategy[T], test func(T) error) {
	ps.runs = append(ps.runs, func(cfg Config) *Report {
		return Run(name, strat, test, cfg)
	})
}

// Run executes every property and returns the reports in the order the
// properties were added.
func (ps *Properties) Run() []*Report {
	reports := make([]*Report, 0, len(ps.runs))
	for _, run := range ps.runs {
		reports = append(reports, run(ps.cfg))
	}
	return reports
}

// TestingRun executes every property and fails t for each one that did
// not pass, logging the full report.
func (ps *Properties) TestingRun(t TestingT) {
	t.Helper()
	for _, report := range ps.Run() {
		if report.Passed {
			t.Logf("%s", report)
			continue
		}
		t.Errorf("%s", report)
	}
}

// Check runs a single property with the default configuration and fails
// t if it does not hold.
func Check[T any](t TestingT, name string, strat strategy.Strategy[T], test func(T) error) {
	t.Helper()
	CheckWith(t, DefaultConfig(), name, strat, test)
}

// CheckWith runs a single property with an explicit configuration.
func CheckWith[T any](t TestingT, cfg Config, name string, strat strategy.Strategy[T], test func(T) error) {
	t.Helper()
	report := Run(name, strat, test, cfg)
	if !report.Passed {
		t.Errorf("%s", report)
	}
}
