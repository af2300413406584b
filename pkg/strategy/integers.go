package strategy

import (
	"fmt"
	"math"

	"github.com/propforge/propforge/pkg/rng"
)

// Int64 generates signed integers over the full int64 domain.
func Int64() Strategy[int64] {
	return infallible("Int64", func(r *rng.Source) Sample[int64] {
		return int64Sample(r.Int64(), 0, math.MinInt64, math.MaxInt64)
	})
}

// Int generates signed integers over the full int domain.
func Int() Strategy[int] {
	return infallible("Int", func(r *rng.Source) Sample[int] {
		s := int64Sample(r.Int64(), 0, math.MinInt64, math.MaxInt64)
		return mapSample(s, func(v int64) int { return int(v) })
	})
}

// Uint64 generates unsigned integers over the full uint64 domain.
func Uint64() Strategy[uint64] {
	return infallible("Uint64", func(r *rng.Source) Sample[uint64] {
		return uint64Sample(r.Uint64())
	})
}

// IntRange generates integers in [min, max]. Values shrink toward the
// in-range value closest to zero.
func IntRange(min, max int) Strategy[int] {
	if min > max {
		panic("strategy: IntRange requires min <= max")
	}
	name := fmt.Sprintf("IntRange(%d, %d)", min, max)
	return infallible(name, func(r *rng.Source) Sample[int] {
		v := r.Int64Range(int64(min), int64(max))
		s := int64Sample(v, shrinkTarget(int64(min), int64(max)), int64(min), int64(max))
		return mapSample(s, func(v int64) int { return int(v) })
	})
}

// Int64Range generates int64 values in [min, max], shrinking toward the
// in-range value closest to zero.
func Int64Range(min, max int64) Strategy[int64] {
	if min > max {
		panic("strategy: Int64Range requires min <= max")
	}
	return infallible(fmt.Sprintf("Int64Range(%d, %d)", min, max), func(r *rng.Source) Sample[int64] {
		return int64Sample(r.Int64Range(min, max), shrinkTarget(min, max), min, max)
	})
}

// shrinkTarget is the value in [min, max] closest to zero.
func shrinkTarget(min, max int64) int64 {
	switch {
	case min > 0:
		return min
	case max < 0:
		return max
	default:
		return 0
	}
}

// int64Sample builds a sample whose shrink candidates walk from target
// toward v by halving the remaining distance. For v=10 shrinking toward 0
// the order is 0, 5, -5, 8, -8, 9, -9: most aggressive first, each
// candidate paired with its mirror when the mirror stays in [min, max].
func int64Sample(v, target, min, max int64) Sample[int64] {
	if v == target {
		return Leaf(v)
	}
	return NewSample(v, func(yield func(Sample[int64]) bool) {
		if !yield(int64Sample(target, target, min, max)) {
			return
		}
		for offset := (v - target) / 2; offset != 0; offset /= 2 {
			c := v - offset
			if !yield(int64Sample(c, target, min, max)) {
				return
			}
			if target == 0 && -c >= min && -c <= max {
				if !yield(int64Sample(-c, target, min, max)) {
					return
				}
			}
		}
	})
}

// uint64Sample shrinks toward zero by halving: 10 yields 0, 5, 8, 9.
func uint64Sample(v uint64) Sample[uint64] {
	if v == 0 {
		return Leaf[uint64](0)
	}
	return NewSample(v, func(yield func(Sample[uint64]) bool) {
		if !yield(uint64Sample(0)) {
			return
		}
		for offset := v / 2; offset != 0; offset /= 2 {
			if !yield(uint64Sample(v - offset)) {
				return
			}
		}
	})
}
