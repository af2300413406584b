package strategy

import (
	"fmt"

	"github.com/propforge/propforge/pkg/rng"
)

// Default size bound for variable-length strategies.
const defaultMaxLen = 100

// SliceOf generates slices of up to 100 elements. Slices shrink toward
// shorter length first (dropping halves, then single elements) and then
// shrink individual elements in place.
func SliceOf[T any](element Strategy[T]) Strategy[[]T] {
	return SliceOfLen(element, 0, defaultMaxLen)
}

// SliceOfN generates slices of exactly n elements. Only the elements
// shrink; the length is fixed.
func SliceOfN[T any](n int, element Strategy[T]) Strategy[[]T] {
	if n < 0 {
		panic("strategy: SliceOfN requires n >= 0")
	}
	return SliceOfLen(element, n, n)
}

// SliceOfLen generates slices with length in [minLen, maxLen].
func SliceOfLen[T any](element Strategy[T], minLen, maxLen int) Strategy[[]T] {
	if minLen < 0 || minLen > maxLen {
		panic("strategy: SliceOfLen requires 0 <= minLen <= maxLen")
	}
	name := fmt.Sprintf("SliceOf(%s)", element)
	return named[[]T]{
		name: name,
		draw: func(r *rng.Source) (Sample[[]T], error) {
			n := minLen
			if maxLen > minLen {
				n += r.Intn(maxLen - minLen + 1)
			}
			elems := make([]Sample[T], n)
			for i := range elems {
				s, err := element.Draw(r)
				if err != nil {
					return Sample[[]T]{}, err
				}
				elems[i] = s
			}
			return sliceSample(elems, minLen), nil
		},
	}
}

// sliceSample assembles a slice sample from element samples. Shrink
// order: drop the first half, drop the second half, drop one element at
// a time, then shrink each element while holding the others fixed.
func sliceSample[T any](elems []Sample[T], minLen int) Sample[[]T] {
	values := make([]T, len(elems))
	for i, e := range elems {
		values[i] = e.Value
	}
	return NewSample(values, func(yield func(Sample[[]T]) bool) {
		n := len(elems)

		// Halves, only while the result still satisfies the minimum length.
		if n >= 2 {
			half := n / 2
			if n-half >= minLen {
				if !yield(sliceSample(cloneWithout(elems, 0, half), minLen)) {
					return
				}
			}
			if half >= minLen {
				if !yield(sliceSample(cloneWithout(elems, half, n), minLen)) {
					return
				}
			}
		}

		// Single element removals.
		if n > minLen {
			for i := 0; i < n; i++ {
				if !yield(sliceSample(cloneWithout(elems, i, i+1), minLen)) {
					return
				}
			}
		}

		// Element-wise shrinks, one coordinate at a time.
		for i := 0; i < n; i++ {
			for cand := range elems[i].Shrinks() {
				next := make([]Sample[T], n)
				copy(next, elems)
				next[i] = cand
				if !yield(sliceSample(next, minLen)) {
					return
				}
			}
		}
	})
}

// cloneWithout copies elems with the index range [from, to) removed.
func cloneWithout[T any](elems []Sample[T], from, to int) []Sample[T] {
	out := make([]Sample[T], 0, len(elems)-(to-from))
	out = append(out, elems[:from]...)
	out = append(out, elems[to:]...)
	return out
}

// MapOf generates maps with up to 100 entries. Maps shrink by dropping
// entries, then by shrinking values in place. Keys are not shrunk so an
// entry's identity is stable across a shrink step.
func MapOf[K comparable, V any](key Strategy[K], value Strategy[V]) Strategy[map[K]V] {
	name := fmt.Sprintf("MapOf(%s, %s)", key, value)
	return named[map[K]V]{
		name: name,
		draw: func(r *rng.Source) (Sample[map[K]V], error) {
			n := r.Intn(defaultMaxLen + 1)
			keys := make([]K, 0, n)
			vals := make([]Sample[V], 0, n)
			seen := make(map[K]struct{}, n)
			for range n {
				ks, err := key.Draw(r)
				if err != nil {
					return Sample[map[K]V]{}, err
				}
				if _, dup := seen[ks.Value]; dup {
					continue
				}
				vs, err := value.Draw(r)
				if err != nil {
					return Sample[map[K]V]{}, err
				}
				seen[ks.Value] = struct{}{}
				keys = append(keys, ks.Value)
				vals = append(vals, vs)
			}
			return mapSampleOf(keys, vals), nil
		},
	}
}

func mapSampleOf[K comparable, V any](keys []K, vals []Sample[V]) Sample[map[K]V] {
	m := make(map[K]V, len(keys))
	for i, k := range keys {
		m[k] = vals[i].Value
	}
	return NewSample(m, func(yield func(Sample[map[K]V]) bool) {
		n := len(keys)
		if n > 0 {
			if !yield(mapSampleOf[K, V](nil, nil)) {
				return
			}
		}
		// Drop one entry at a time.
		for i := 0; i < n; i++ {
			ks := append(append([]K{}, keys[:i]...), keys[i+1:]...)
			vs := append(append([]Sample[V]{}, vals[:i]...), vals[i+1:]...)
			if !yield(mapSampleOf(ks, vs)) {
				return
			}
		}
		// Shrink one value at a time.
		for i := 0; i < n; i++ {
			for cand := range vals[i].Shrinks() {
				vs := make([]Sample[V], n)
				copy(vs, vals)
				vs[i] = cand
				if !yield(mapSampleOf(keys, vs)) {
					return
				}
			}
		}
	})
}
