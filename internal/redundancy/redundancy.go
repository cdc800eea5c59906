// Package redundancy derives the error-correction rows appended to an encoded
// matrix. Each derived row reduces across all input rows at every sample position.
package redundancy

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/tphakala/go-waveform-encoder/internal/dsp"
)

// DefaultWindow is the moving-average width of the smoothed row.
const DefaultWindow = 5

var (
	// ErrNoRows is returned when there is nothing to reduce over.
	ErrNoRows = errors.New("redundancy: no input rows")

	// ErrAllZeroChecksum is returned when the column sum is zero everywhere
	// and cannot be peak-normalized.
	ErrAllZeroChecksum = errors.New("redundancy: checksum row is all zero")

	// ErrRaggedRows is returned when the input rows differ in length.
	ErrRaggedRows = errors.New("redundancy: rows differ in length")
)

// Rows holds the three derived rows in append order.
type Rows struct {
	Checksum []float64
	Parity   []float64
	Smoothed []float64
}

// Derive computes the checksum, parity and smoothed rows over rows.
// window is the odd moving-average width applied to the checksum.
func Derive(rows [][]float64, window int) (Rows, error) {
	if len(rows) == 0 {
		return Rows{}, ErrNoRows
	}
	n := len(rows[0])
	for i, r := range rows {
		if len(r) != n {
			return Rows{}, fmt.Errorf("%w: row %d has %d samples, want %d", ErrRaggedRows, i, len(r), n)
		}
	}

	checksum, err := Checksum(rows)
	if err != nil {
		return Rows{}, err
	}
	smoothed, err := dsp.MovingAverageSame(checksum, window)
	if err != nil {
		return Rows{}, err
	}

	return Rows{
		Checksum: checksum,
		Parity:   Parity(rows),
		Smoothed: smoothed,
	}, nil
}

// Checksum returns the column sum of rows divided by its peak magnitude, so
// the result peaks at exactly ±1.
func Checksum(rows [][]float64) ([]float64, error) {
	if len(rows) == 0 {
		return nil, ErrNoRows
	}
	sum := make([]float64, len(rows[0]))
	for _, r := range rows {
		floats.Add(sum, r)
	}

	peak := floats.Norm(sum, math.Inf(1))
	if peak == 0 {
		return nil, ErrAllZeroChecksum
	}
	// Divide, not multiply by 1/peak: the peak sample must land on exactly ±1.
	for i := range sum {
		sum[i] /= peak
	}
	return sum, nil
}

// Parity returns, per column, the number of rows with a strictly positive
// sample modulo 2.
func Parity(rows [][]float64) []float64 {
	if len(rows) == 0 {
		return nil
	}
	counts := make([]int, len(rows[0]))
	for _, r := range rows {
		for i, v := range r {
			if v > 0 {
				counts[i]++
			}
		}
	}
	parity := make([]float64, len(counts))
	for i, c := range counts {
		parity[i] = float64(c % 2)
	}
	return parity
}
