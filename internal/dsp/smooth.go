// Package dsp holds the small signal-processing kernels used by the
// redundancy layer.
package dsp

import (
	"errors"
	"fmt"
)

// ErrInvalidWindow is returned for a smoothing window that is not a positive odd width.
var ErrInvalidWindow = errors.New("smoothing window must be a positive odd width")

// MovingAverageSame smooths x with a centred box window of the given odd width.
// The output has the same length as x. Positions near the edges average only
// the samples that fall inside x.
func MovingAverageSame(x []float64, window int) ([]float64, error) {
	if window < 1 || window%2 == 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidWindow, window)
	}
	n := len(x)
	out := make([]float64, n)
	if n == 0 {
		return out, nil
	}

	half := window / 2
	padded := make([]float64, n+2*half)
	copy(padded[half:], x)

	kernel := make([]float64, window)
	for i := range kernel {
		kernel[i] = 1
	}
	Correlate(out, padded, kernel)

	for i := range out {
		lo := max(0, i-half)
		hi := min(n-1, i+half)
		out[i] /= float64(hi - lo + 1)
	}
	return out, nil
}
