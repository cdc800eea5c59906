package dsp

import (
	"github.com/tphakala/simd/c128"
	"github.com/tphakala/simd/f64"
	"gonum.org/v1/gonum/dsp/fourier"
)

// FFT correlation constants.
const (
	// Minimum kernel length to correlate in the frequency domain (below this,
	// direct SIMD correlation is faster). Smoothing windows are normally a
	// handful of taps and never reach it.
	minKernelForFFT = 400

	// Smallest FFT size used; sizes grow in powers of two.
	minFFTSize = 512

	// A real FFT of size N has N/2 + 1 unique complex coefficients.
	fftHermitianDivisor = 2
)

// Correlate computes dst[n] = Σ signal[n+k]·kernel[k] for every n where the
// kernel fits inside signal, the layout f64.ConvolveValid uses.
// dst must hold len(signal) - len(kernel) + 1 values. An empty kernel or a
// kernel longer than signal leaves dst untouched.
func Correlate(dst, signal, kernel []float64) {
	outputLen := len(signal) - len(kernel) + 1
	if len(kernel) == 0 || outputLen <= 0 || len(dst) < outputLen {
		return
	}
	if len(kernel) < minKernelForFFT {
		f64.ConvolveValid(dst[:outputLen], signal, kernel)
		return
	}
	correlateFFT(dst[:outputLen], signal, kernel)
}

// correlateFFT evaluates the correlation with a single transform sized to hold
// the whole signal. Matrix rows are short, so no block splitting is needed.
func correlateFFT(dst, signal, kernel []float64) {
	size := minFFTSize
	for size < len(signal) {
		size *= 2
	}
	fft := fourier.NewFFT(size)
	bins := size/fftHermitianDivisor + 1

	// With the kernel reversed, circular convolution output K-1+n equals
	// the correlation at n for every n in dst.
	reversed := make([]float64, size)
	for i, v := range kernel {
		reversed[len(kernel)-1-i] = v
	}
	padded := make([]float64, size)
	copy(padded, signal)

	kernelFFT := fft.Coefficients(make([]complex128, bins), reversed)
	signalFFT := fft.Coefficients(make([]complex128, bins), padded)
	c128.Mul(signalFFT, signalFFT, kernelFFT)

	circular := fft.Sequence(padded, signalFFT)
	f64.Scale(circular, circular, 1/float64(size)) // gonum leaves the inverse unnormalized

	copy(dst, circular[len(kernel)-1:])
}
