package strategy_test

import (
	"testing"

	"github.com/propforge/propforge/pkg/rng"
	"github.com/propforge/propforge/pkg/strategy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// firstShrinks collects the first level of shrink candidate values.
func firstShrinks[T any](s strategy.Sample[T]) []T {
	var out []T
	for cand := range s.Shrinks() {
		out = append(out, cand.Value)
	}
	return out
}

// drawValue draws one sample from a fixed seed, failing the test on a
// generation error.
func drawValue[T any](t *testing.T, s strategy.Strategy[T], seed uint64) strategy.Sample[T] {
	t.Helper()
	sample, err := s.Draw(rng.New(seed))
	require.NoError(t, err)
	return sample
}

func TestInt64DeterministicForSeed(t *testing.T) {
	a := drawValue(t, strategy.Int64(), 30)
	b := drawValue(t, strategy.Int64(), 30)
	assert.Equal(t, a.Value, b.Value)
	assert.Equal(t, firstShrinks(a), firstShrinks(b))
}

func TestInt64ShrinkOrder(t *testing.T) {
	// Shrinking halves the distance to zero, mirror candidates paired:
	// most aggressive shrink first.
	sample := strategy.NewSampleForTest(int64(10))
	assert.Equal(t, []int64{0, 5, -5, 8, -8, 9, -9}, firstShrinks(sample))

	negative := strategy.NewSampleForTest(int64(-10))
	assert.Equal(t, []int64{0, -5, 5, -8, 8, -9, 9}, firstShrinks(negative))
}

func TestInt64ZeroHasNoShrinks(t *testing.T) {
	sample := strategy.NewSampleForTest(int64(0))
	assert.Empty(t, firstShrinks(sample))
}

func TestShrinkCandidatesStrictlySmaller(t *testing.T) {
	sample := strategy.NewSampleForTest(int64(1337))
	for _, c := range firstShrinks(sample) {
		abs := c
		if abs < 0 {
			abs = -abs
		}
		require.Less(t, abs, int64(1337))
	}
}

func TestShrinkSequenceRestartable(t *testing.T) {
	sample := strategy.NewSampleForTest(int64(100))
	first := firstShrinks(sample)
	second := firstShrinks(sample)
	assert.Equal(t, first, second)
}

func TestIntRangeStaysInRange(t *testing.T) {
	s := strategy.IntRange(3, 20)
	for seed := uint64(0); seed < 200; seed++ {
		sample := drawValue(t, s, seed)
		require.GreaterOrEqual(t, sample.Value, 3)
		require.LessOrEqual(t, sample.Value, 20)
		for _, c := range firstShrinks(sample) {
			require.GreaterOrEqual(t, c, 3)
			require.LessOrEqual(t, c, 20)
		}
	}
}

func TestIntRangeShrinksTowardLowBound(t *testing.T) {
	// For a positive-only range the value closest to zero is the low
	// bound, so it must be the first candidate.
	s := strategy.IntRange(3, 20)
	for seed := uint64(0); seed < 100; seed++ {
		sample := drawValue(t, s, seed)
		if sample.Value == 3 {
			continue
		}
		candidates := firstShrinks(sample)
		require.NotEmpty(t, candidates)
		assert.Equal(t, 3, candidates[0])
	}
}

func TestIntRangeNegativeShrinksTowardHighBound(t *testing.T) {
	s := strategy.IntRange(-20, -3)
	for seed := uint64(0); seed < 100; seed++ {
		sample := drawValue(t, s, seed)
		if sample.Value == -3 {
			continue
		}
		candidates := firstShrinks(sample)
		require.NotEmpty(t, candidates)
		assert.Equal(t, -3, candidates[0])
	}
}

func TestUint64ShrinkOrder(t *testing.T) {
	sample := strategy.NewUintSampleForTest(uint64(10))
	assert.Equal(t, []uint64{0, 5, 8, 9}, firstShrinks(sample))
}

func TestBoolShrinksToFalse(t *testing.T) {
	s := strategy.Bool()
	for seed := uint64(0); seed < 50; seed++ {
		sample := drawValue(t, s, seed)
		if !sample.Value {
			assert.Empty(t, firstShrinks(sample))
			continue
		}
		assert.Equal(t, []bool{false}, firstShrinks(sample))
	}
}
