// Command inspect-archive prints per-row statistics of a waveform archive
// written with the archive output format.
//
// Usage:
//
//	inspect-archive hello.wfmx
//	inspect-archive -rows 8 hello.wfmx
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"math/cmplx"
	"os"

	"github.com/tphakala/simd/f64"
	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/tphakala/go-waveform-encoder/render"
	"github.com/tphakala/go-waveform-encoder/wave"
)

const defaultRowsToShow = 16 // Rows printed before the summary

// rowStats summarizes one matrix row.
type rowStats struct {
	Kind wave.Kind
	Min  float64
	Max  float64
	Mean float64

	// Energy is the sum of squared samples.
	Energy float64

	// DominantBin is the non-DC FFT bin with the largest magnitude, in cycles
	// over the sample axis.
	DominantBin int
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	rowsToShow := flag.Int("rows", defaultRowsToShow, "Number of rows to print (0 prints all)")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] archive\n\n", os.Args[0])
		flag.PrintDefaults()
		return errors.New("expected one archive path")
	}

	f, err := os.Open(flag.Arg(0))
	if err != nil {
		return fmt.Errorf("failed to open archive: %w", err)
	}
	defer func() { _ = f.Close() }()

	m, err := render.DecodeArchive(f)
	if err != nil {
		return err
	}

	fmt.Println("=== Waveform Archive ===")
	fmt.Printf("  Rows: %d (%d data, %d redundancy)\n", m.Len(), len(m.DataRows()), len(m.RedundancyRows()))
	fmt.Printf("  Samples per row: %d\n", m.SampleCount)
	fmt.Printf("  Peak magnitude: %.6f\n\n", m.Peak())

	stats := analyze(m)
	limit := len(stats)
	if *rowsToShow > 0 {
		limit = min(limit, *rowsToShow)
	}

	fmt.Printf("%5s  %-10s %10s %10s %10s %12s %5s\n", "row", "kind", "min", "max", "mean", "energy", "bin")
	for i, s := range stats[:limit] {
		fmt.Printf("%5d  %-10s %10.4f %10.4f %10.4f %12.4f %5d\n", i, s.Kind, s.Min, s.Max, s.Mean, s.Energy, s.DominantBin)
	}
	if limit < len(stats) {
		fmt.Printf("  ... (%d more rows)\n", len(stats)-limit)
	}

	if d := m.Dense(); d != nil {
		fmt.Printf("\nFrobenius norm: %.6f\n", mat.Norm(d, 2))
	}
	return nil
}

// analyze computes statistics for every row of m.
func analyze(m *wave.Matrix) []rowStats {
	out := make([]rowStats, m.Len())
	if m.SampleCount == 0 {
		return out
	}

	fft := fourier.NewFFT(m.SampleCount)
	coeffs := make([]complex128, m.SampleCount/2+1)

	for i, row := range m.Rows() {
		s := row.Samples
		out[i] = rowStats{
			Kind:   row.Kind,
			Min:    floats.Min(s),
			Max:    floats.Max(s),
			Mean:   f64.Sum(s) / float64(len(s)),
			Energy: f64.DotProduct(s, s),
		}

		fft.Coefficients(coeffs, s)
		best := 0.0
		for k := 1; k < len(coeffs); k++ {
			if mag := cmplx.Abs(coeffs[k]); mag > best {
				best = mag
				out[i].DominantBin = k
			}
		}
	}
	return out
}
