// Package wave defines the data model shared by the encoder and the renderers:
// tagged waveforms, per-character blocks and the encoded matrix.
package wave

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Kind identifies how a waveform was derived.
// The kind determines derivation only; every kind shares the same storage.
type Kind uint8

const (
	// KindAmplitude is sin(t) scaled by code/255.
	KindAmplitude Kind = iota

	// KindFrequency is sin(f·t) with f derived from the code point.
	KindFrequency

	// KindPhase is sin(t + phase) with the phase derived from the code point.
	KindPhase

	// KindHarmonic is sin(t) plus a code-weighted second harmonic.
	KindHarmonic

	// KindChecksum is the peak-normalized column sum of all data rows.
	KindChecksum

	// KindParity is the per-column count of positive samples, modulo 2.
	KindParity

	// KindSmoothed is the moving-average smoothed checksum row.
	KindSmoothed
)

// DataKinds lists the per-character kinds in block order.
var DataKinds = [...]Kind{KindAmplitude, KindFrequency, KindPhase, KindHarmonic}

// RedundancyKinds lists the redundancy kinds in the order they are appended.
var RedundancyKinds = [...]Kind{KindChecksum, KindParity, KindSmoothed}

var kindNames = [...]string{
	KindAmplitude: "amplitude",
	KindFrequency: "frequency",
	KindPhase:     "phase",
	KindHarmonic:  "harmonic",
	KindChecksum:  "checksum",
	KindParity:    "parity",
	KindSmoothed:  "smoothed",
}

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	return int(k) < len(kindNames)
}

// IsRedundancy reports whether k is derived from a whole matrix rather than one character.
func (k Kind) IsRedundancy() bool {
	return k == KindChecksum || k == KindParity || k == KindSmoothed
}

// Waveform is one row of samples over the canonical sample axis.
type Waveform struct {
	Kind    Kind
	Samples []float64
}

// Len returns the number of samples.
func (w Waveform) Len() int {
	return len(w.Samples)
}

// Block is the ordered group of waveforms produced from a single character.
type Block struct {
	Rune rune
	Rows []Waveform
}

// Matrix is the full encoding of a text: character blocks in input order,
// optionally followed by redundancy rows.
//
// All rows share SampleCount samples. This holds by construction; Matrix
// does not re-check row lengths when rows are appended.
type Matrix struct {
	SampleCount int
	rows        []Waveform
}

// NewMatrix creates an empty matrix for rows of the given sample count.
// capacity is a hint for the number of rows.
func NewMatrix(sampleCount, capacity int) *Matrix {
	return &Matrix{
		SampleCount: sampleCount,
		rows:        make([]Waveform, 0, capacity),
	}
}

// AppendBlock appends all rows of b in order.
func (m *Matrix) AppendBlock(b Block) {
	m.rows = append(m.rows, b.Rows...)
}

// Append appends rows in order.
func (m *Matrix) Append(rows ...Waveform) {
	m.rows = append(m.rows, rows...)
}

// Len returns the number of rows.
func (m *Matrix) Len() int {
	return len(m.rows)
}

// Row returns row i.
func (m *Matrix) Row(i int) Waveform {
	return m.rows[i]
}

// Rows returns the rows in order. The slice is shared with the matrix.
func (m *Matrix) Rows() []Waveform {
	return m.rows
}

// Samples returns the sample slices of all rows, in order.
func (m *Matrix) Samples() [][]float64 {
	out := make([][]float64, len(m.rows))
	for i, r := range m.rows {
		out[i] = r.Samples
	}
	return out
}

// DataRows returns the rows derived from characters.
func (m *Matrix) DataRows() []Waveform {
	out := make([]Waveform, 0, len(m.rows))
	for _, r := range m.rows {
		if !r.Kind.IsRedundancy() {
			out = append(out, r)
		}
	}
	return out
}

// RedundancyRows returns the appended redundancy rows.
func (m *Matrix) RedundancyRows() []Waveform {
	var out []Waveform
	for _, r := range m.rows {
		if r.Kind.IsRedundancy() {
			out = append(out, r)
		}
	}
	return out
}

// Peak returns the largest absolute sample value in the matrix.
func (m *Matrix) Peak() float64 {
	var peak float64
	for _, r := range m.rows {
		for _, v := range r.Samples {
			if v < 0 {
				v = -v
			}
			if v > peak {
				peak = v
			}
		}
	}
	return peak
}

// Dense copies the matrix into a gonum dense matrix with one row per waveform.
// It returns nil for an empty matrix, which gonum cannot represent.
func (m *Matrix) Dense() *mat.Dense {
	if len(m.rows) == 0 || m.SampleCount == 0 {
		return nil
	}
	d := mat.NewDense(len(m.rows), m.SampleCount, nil)
	for i, r := range m.rows {
		d.SetRow(i, r.Samples)
	}
	return d
}

// Equal reports whether both matrices hold identical kinds and bit-identical samples.
func (m *Matrix) Equal(other *Matrix) bool {
	if m == nil || other == nil {
		return m == other
	}
	if m.SampleCount != other.SampleCount || len(m.rows) != len(other.rows) {
		return false
	}
	for i, r := range m.rows {
		o := other.rows[i]
		if r.Kind != o.Kind || len(r.Samples) != len(o.Samples) {
			return false
		}
		for j, v := range r.Samples {
			if v != o.Samples[j] {
				return false
			}
		}
	}
	return true
}
