package runner_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/propforge/propforge/pkg/runner"
	"github.com/propforge/propforge/pkg/strategy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeT records the reporting calls the runner makes against it.
type fakeT struct {
	errors []string
	logs   []string
}

func (f *fakeT) Helper() {}

func (f *fakeT) Errorf(format string, args ...any) {
	f.errors = append(f.errors, fmt.Sprintf(format, args...))
}

func (f *fakeT) Logf(format string, args ...any) {
	f.logs = append(f.logs, fmt.Sprintf(format, args...))
}

func TestPropertiesRunReportsInOrder(t *testing.T) {
	ps := runner.NewProperties(seededConfig(30))
	runner.Property(ps, "first", strategy.Int(), func(int) error { return nil })
	runner.Property(ps, "second", strategy.Bool(), func(bool) error { return nil })

	reports := ps.Run()
	require.Len(t, reports, 2)
	assert.Equal(t, "first", reports[0].Property)
	assert.Equal(t, "second", reports[1].Property)
	assert.True(t, reports[0].Passed)
	assert.True(t, reports[1].Passed)
}

func TestPropertiesSharesOneConfig(t *testing.T) {
	ps := runner.NewProperties(seededConfig(30))
	runner.Property(ps, "a", strategy.Int(), func(int) error { return nil })
	runner.Property(ps, "b", strategy.Int(), func(int) error { return nil })

	for _, report := range ps.Run() {
		assert.Equal(t, uint64(30), report.Seed)
	}
}

func TestTestingRunFailsOnlyFalsifiedProperties(t *testing.T) {
	ps := runner.NewProperties(seededConfig(30))
	runner.Property(ps, "holds", strategy.Int(), func(int) error { return nil })
	runner.Property(ps, "falsified", strategy.IntRange(-10, 10), func(v int) error {
		if v < 0 {
			return errors.New("negative")
		}
		return nil
	})

	ft := &fakeT{}
	ps.TestingRun(ft)

	require.Len(t, ft.errors, 1)
	assert.Contains(t, ft.errors[0], `property "falsified" falsified`)
	assert.Contains(t, ft.errors[0], "counterexample: -1")

	require.Len(t, ft.logs, 1)
	assert.Contains(t, ft.logs[0], `property "holds" passed`)
}

func TestCheckWithReportsFailure(t *testing.T) {
	ft := &fakeT{}
	runner.CheckWith(ft, seededConfig(30), "always fails", strategy.Const(1),
		func(int) error { return errors.New("no") })

	require.Len(t, ft.errors, 1)
	assert.Contains(t, ft.errors[0], "counterexample: 1")
}

func TestCheckPassesSilently(t *testing.T) {
	ft := &fakeT{}
	runner.Check(ft, "holds", strategy.Int(), func(int) error { return nil })
	assert.Empty(t, ft.errors)
}
