package strategy

import "math"

// Hooks for the external test package.

// NewSampleForTest builds a full-domain signed integer sample.
func NewSampleForTest(v int64) Sample[int64] {
	return int64Sample(v, 0, math.MinInt64, math.MaxInt64)
}

// NewUintSampleForTest builds an unsigned integer sample.
func NewUintSampleForTest(v uint64) Sample[uint64] {
	return uint64Sample(v)
}

// NewRuneSampleForTest builds a rune sample shrinking toward 'a'.
func NewRuneSampleForTest(v rune) Sample[rune] {
	return runeSample(v)
}

// MaxFilterRetries exposes the filter retry bound.
const MaxFilterRetries = maxFilterRetries
