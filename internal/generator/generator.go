// Package generator derives the per-character waveforms of an encoder.
//
// Every waveform is evaluated over the canonical sample axis t, which holds a
// fixed number of evenly spaced points over [0, 2π] (both ends included).
// For a character with code point c the block rows are, in order:
//
//	amplitude:  (c/255)·sin(t)
//	frequency:  sin(f·t), f = base·(1 + c/128)
//	phase:      sin(t + (c/255)·2π)
//	harmonic:   sin(t) + 0.5·(c/255)·sin(2t)
//
// Code points above 255 are not clamped; the amplitude scale simply exceeds 1.
package generator

import (
	"errors"
	"fmt"
	"math"

	"github.com/tphakala/simd/f64"
	"gonum.org/v1/gonum/floats"

	"github.com/tphakala/go-waveform-encoder/wave"
)

// Derivation constants.
const (
	amplitudeDivisor = 255.0 // Code point divisor for amplitude, phase and harmonic weight
	frequencyDivisor = 128.0 // Code point divisor for the frequency multiplier
	harmonicWeight   = 0.5   // Weight of the second harmonic
	domainLength     = 2 * math.Pi

	// MinSamples is the smallest usable sample axis (both domain endpoints).
	MinSamples = 2
)

// ErrInvalidParams is returned for unusable generator parameters.
var ErrInvalidParams = errors.New("invalid generator parameters")

// Axis returns n evenly spaced points over [0, 2π].
func Axis(n int) []float64 {
	return floats.Span(make([]float64, n), 0, domainLength)
}

// Generator produces character blocks. It is immutable after construction and
// safe for concurrent use.
type Generator struct {
	dimensions    int
	baseFrequency float64

	// Precomputed over the axis; read-only.
	t    []float64
	sinT []float64
	sin2 []float64
}

// New creates a generator producing blocks of the first dimensions kinds of
// wave.DataKinds, each sampled at samples points.
func New(dimensions, samples int, baseFrequency float64) (*Generator, error) {
	if dimensions < 1 || dimensions > len(wave.DataKinds) {
		return nil, fmt.Errorf("%w: dimensions must be 1-%d, got %d", ErrInvalidParams, len(wave.DataKinds), dimensions)
	}
	if samples < MinSamples {
		return nil, fmt.Errorf("%w: need at least %d samples, got %d", ErrInvalidParams, MinSamples, samples)
	}
	if baseFrequency <= 0 || math.IsInf(baseFrequency, 0) || math.IsNaN(baseFrequency) {
		return nil, fmt.Errorf("%w: base frequency must be positive and finite", ErrInvalidParams)
	}

	t := Axis(samples)
	g := &Generator{
		dimensions:    dimensions,
		baseFrequency: baseFrequency,
		t:             t,
		sinT:          make([]float64, samples),
		sin2:          make([]float64, samples),
	}
	for i, x := range t {
		g.sinT[i] = math.Sin(x)
		g.sin2[i] = math.Sin(2 * x)
	}
	return g, nil
}

// Dimensions returns the number of rows per block.
func (g *Generator) Dimensions() int {
	return g.dimensions
}

// Samples returns the sample axis length.
func (g *Generator) Samples() int {
	return len(g.t)
}

// Block derives the waveforms for one character.
func (g *Generator) Block(r rune) wave.Block {
	code := float64(r)
	rows := make([]wave.Waveform, g.dimensions)
	for i := range rows {
		kind := wave.DataKinds[i]
		rows[i] = wave.Waveform{Kind: kind, Samples: g.derive(kind, code)}
	}
	return wave.Block{Rune: r, Rows: rows}
}

// derive evaluates one kind for code.
func (g *Generator) derive(kind wave.Kind, code float64) []float64 {
	out := make([]float64, len(g.t))
	weight := code / amplitudeDivisor

	switch kind {
	case wave.KindAmplitude:
		f64.Scale(out, g.sinT, weight)

	case wave.KindFrequency:
		freq := g.baseFrequency * (1 + code/frequencyDivisor)
		for i, x := range g.t {
			out[i] = math.Sin(freq * x)
		}

	case wave.KindPhase:
		phase := weight * domainLength
		for i, x := range g.t {
			out[i] = math.Sin(x + phase)
		}

	case wave.KindHarmonic:
		floats.AddScaledTo(out, g.sinT, harmonicWeight*weight, g.sin2)

	default:
		panic(fmt.Sprintf("generator: %s is not a data kind", kind))
	}

	return out
}
