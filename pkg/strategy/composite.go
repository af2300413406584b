package strategy

import (
	"iter"

	"github.com/propforge/propforge/pkg/rng"
)

// Draw is the handle passed to a Custom build function. It hands out
// values from constituent strategies and records every draw so the
// shrinker can later shrink one component while holding the others
// fixed. A Draw is only valid for the duration of the build call.
type Draw struct {
	seed    uint64
	src     *rng.Source
	script  []erasedSample
	index   int
	records []erasedSample
	done    bool
}

// erasedSample is a type-erased sample recorded for one draw.
type erasedSample struct {
	value   any
	shrinks iter.Seq[erasedSample]
}

func eraseSample[U any](s Sample[U]) erasedSample {
	return erasedSample{
		value: s.Value,
		shrinks: func(yield func(erasedSample) bool) {
			for c := range s.Shrinks() {
				if !yield(eraseSample(c)) {
					return
				}
			}
		},
	}
}

// drawFailure carries a generation error out of a build function.
type drawFailure struct {
	err error
}

// DrawFrom draws the next value for a composite strategy. Each call
// consumes the next slice of the composite's randomness sequence. It
// must only be called from inside the build function that received d.
func DrawFrom[U any](d *Draw, s Strategy[U]) U {
	if d.done {
		panic("strategy: DrawFrom called outside its build function")
	}

	// Replay a scripted draw when shrinking, as long as the recorded
	// value still has the expected type at this position.
	if d.index < len(d.script) {
		rec := d.script[d.index]
		if v, ok := rec.value.(U); ok {
			d.records = append(d.records, rec)
			d.index++
			return v
		}
	}

	// Fresh draw. In live mode this continues the shared stream; during
	// replay past the end of the script the value comes from a source
	// derived from the composite seed and draw index, keeping the
	// result deterministic.
	src := d.src
	if src == nil || d.index < len(d.script) {
		src = rng.New(rng.Derive(d.seed, uint64(d.index)))
	}
	sample, err := s.Draw(src)
	if err != nil {
		panic(drawFailure{err: err})
	}
	d.records = append(d.records, eraseSample(sample))
	d.index++
	return sample.Value
}

// Custom combines multiple strategies into a single structured value.
// The build function draws from constituent strategies via DrawFrom and
// assembles the result. Each drawn component shrinks independently:
// shrinking one component never changes another component fixed in the
// same step. Components are shrunk in draw order.
func Custom[T any](name string, build func(d *Draw) T) Strategy[T] {
	return named[T]{
		name: name,
		draw: func(r *rng.Source) (Sample[T], error) {
			seed := r.Uint64()
			d := &Draw{seed: seed, src: rng.New(seed)}
			value, err := runBuild(build, d)
			if err != nil {
				return Sample[T]{}, err
			}
			return compositeSample(build, seed, d.records, value), nil
		},
	}
}

// runBuild invokes build, converting a draw failure back into an error.
func runBuild[T any](build func(d *Draw) T, d *Draw) (value T, err error) {
	defer func() {
		d.done = true
		if r := recover(); r != nil {
			if f, ok := r.(drawFailure); ok {
				err = f.err
				return
			}
			panic(r)
		}
	}()
	value = build(d)
	return value, nil
}

// compositeSample shrinks coordinate-wise: for each recorded draw, every
// candidate of that draw is tried with all other draws held fixed. A
// candidate that makes the build draw beyond the script falls back to
// deterministic derived draws; surplus scripted draws are ignored.
func compositeSample[T any](build func(d *Draw) T, seed uint64, records []erasedSample, value T) Sample[T] {
	return NewSample(value, func(yield func(Sample[T]) bool) {
		for i := range records {
			for cand := range records[i].shrinks {
				script := make([]erasedSample, len(records))
				copy(script, records)
				script[i] = cand

				d := &Draw{seed: seed, script: script}
				next, err := runBuild(build, d)
				if err != nil {
					// A fresh draw during replay exhausted its filter;
					// skip this candidate.
					continue
				}
				if !yield(compositeSample(build, seed, d.records, next)) {
					return
				}
			}
		}
	})
}
