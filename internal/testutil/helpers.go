// Package testutil provides reusable test helper functions for waveform encoder tests.
package testutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tphakala/go-waveform-encoder/wave"
)

// Default tolerances for various test scenarios.
const (
	DefaultTolerance = 1e-10
	PeakTolerance    = 1e-12
	AxisTolerance    = 1e-3
)

// AssertNoNaNOrInf verifies that no elements in the slice are NaN or Inf.
func AssertNoNaNOrInf(t *testing.T, s []float64, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range s {
		if math.IsNaN(v) {
			return assert.Fail(t, "found NaN", "s[%d] is NaN", i)
		}
		if math.IsInf(v, 0) {
			return assert.Fail(t, "found Inf", "s[%d] is Inf", i)
		}
	}
	return true
}

// AssertAllInRange verifies that all elements are within [min, max].
func AssertAllInRange(t *testing.T, s []float64, minVal, maxVal float64, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range s {
		if v < minVal || v > maxVal {
			return assert.Fail(t, "value out of range",
				"s[%d]=%f is outside range [%f, %f]", i, v, minVal, maxVal)
		}
	}
	return true
}

// AssertBinary verifies that every element is exactly 0 or 1.
func AssertBinary(t *testing.T, s []float64, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range s {
		if v != 0 && v != 1 {
			return assert.Fail(t, "value is not binary", "s[%d]=%v", i, v)
		}
	}
	return true
}

// AssertPeakMagnitude verifies that max(|s|) equals want within tolerance.
func AssertPeakMagnitude(t *testing.T, s []float64, want, tolerance float64, msgAndArgs ...any) bool {
	t.Helper()
	var peak float64
	for _, v := range s {
		peak = math.Max(peak, math.Abs(v))
	}
	return assert.InDelta(t, want, peak, tolerance, "peak magnitude = %f, want %f", peak, want)
}

// AssertRowLengths verifies that every row of m has the matrix sample count.
func AssertRowLengths(t *testing.T, m *wave.Matrix, msgAndArgs ...any) bool {
	t.Helper()
	for i, r := range m.Rows() {
		if !assert.Len(t, r.Samples, m.SampleCount, "row %d (%s)", i, r.Kind) {
			return false
		}
	}
	return true
}

// AssertRelativeError verifies that the relative error between actual and expected is within tolerance.
func AssertRelativeError(t *testing.T, expected, actual, tolerance float64, msgAndArgs ...any) bool {
	t.Helper()
	if expected == 0 {
		return assert.InDelta(t, expected, actual, tolerance, msgAndArgs...)
	}
	relError := math.Abs(actual-expected) / math.Abs(expected)
	return assert.LessOrEqual(t, relError, tolerance,
		"relative error %e exceeds tolerance %e (expected=%f, actual=%f)",
		relError, tolerance, expected, actual)
}
