package strategy

import (
	"fmt"
	"math"

	"github.com/propforge/propforge/pkg/rng"
)

// Float64 generates finite float64 values. Magnitudes are drawn on an
// exponential scale so small and large values are both exercised.
// Values shrink toward zero, trying whole numbers before fractions.
func Float64() Strategy[float64] {
	return infallible("Float64", func(r *rng.Source) Sample[float64] {
		// Uniform significand with a uniform exponent in [-64, 64).
		exp := r.Intn(128) - 64
		v := (r.Float64()*2 - 1) * math.Ldexp(1, exp)
		return float64Sample(v)
	})
}

// Float64Range generates float64 values in [min, max], shrinking toward
// the in-range value closest to zero.
func Float64Range(min, max float64) Strategy[float64] {
	if min > max || math.IsNaN(min) || math.IsNaN(max) {
		panic("strategy: Float64Range requires min <= max")
	}
	name := fmt.Sprintf("Float64Range(%g, %g)", min, max)
	target := 0.0
	if min > 0 {
		target = min
	} else if max < 0 {
		target = max
	}
	return infallible(name, func(r *rng.Source) Sample[float64] {
		v := min + r.Float64()*(max-min)
		return float64SampleToward(v, target, min, max)
	})
}

func float64Sample(v float64) Sample[float64] {
	return float64SampleToward(v, 0, math.Inf(-1), math.Inf(1))
}

// float64SampleToward halves the distance to target, preferring the
// truncated (whole) candidate at each step. Candidates closer to target
// than epsilon are not expanded further so shrinking stays finite.
func float64SampleToward(v, target, min, max float64) Sample[float64] {
	const epsilon = 1e-9
	if v == target || math.Abs(v-target) < epsilon {
		return Leaf(v)
	}
	return NewSample(v, func(yield func(Sample[float64]) bool) {
		if !yield(Leaf(target)) {
			return
		}
		if t := math.Trunc(v); t != v && t >= min && t <= max && t != target {
			if !yield(float64SampleToward(t, target, min, max)) {
				return
			}
		}
		for offset := (v - target) / 2; math.Abs(offset) >= epsilon; offset /= 2 {
			c := v - offset
			if c == v || c == target {
				break
			}
			if !yield(float64SampleToward(c, target, min, max)) {
				return
			}
		}
	})
}
