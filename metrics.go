package waveform

import (
	"fmt"
	"strings"
)

// Metrics is the immutable result of one Visualize call.
type Metrics struct {
	// Density is DataLength / ArtifactSize, in characters per byte.
	Density float64

	// Dimensions is the number of waveforms per character.
	Dimensions int

	// DataLength is the number of characters (code points) encoded.
	DataLength int

	// ArtifactSize is the rendered artifact size in bytes.
	ArtifactSize int64

	// ErrorCorrection reports whether redundancy rows were appended.
	ErrorCorrection bool
}

// Density returns chars / byteSize. A non-positive byte size is a domain
// error; density is never computed by silent division.
func Density(chars int, byteSize int64) (float64, error) {
	if byteSize <= 0 {
		return 0, fmt.Errorf("%w: artifact size must be positive, got %d bytes", ErrDomain, byteSize)
	}
	if chars < 0 {
		return 0, fmt.Errorf("%w: negative character count %d", ErrDomain, chars)
	}
	return float64(chars) / float64(byteSize), nil
}

// NewMetrics combines the density of chars over byteSize with the static
// configuration values.
func NewMetrics(config Config, chars int, byteSize int64) (Metrics, error) {
	density, err := Density(chars, byteSize)
	if err != nil {
		return Metrics{}, err
	}
	return Metrics{
		Density:         density,
		Dimensions:      config.Dimensions,
		DataLength:      chars,
		ArtifactSize:    byteSize,
		ErrorCorrection: config.ErrorCorrection,
	}, nil
}

// String formats the metrics as a human-readable report.
func (m Metrics) String() string {
	correction := "Disabled"
	if m.ErrorCorrection {
		correction = "Enabled"
	}

	var b strings.Builder
	b.WriteString("Encoding Metrics:\n")
	fmt.Fprintf(&b, "Data Density: %.6f characters/byte\n", m.Density)
	fmt.Fprintf(&b, "Dimensions: %d\n", m.Dimensions)
	fmt.Fprintf(&b, "Text Length: %d characters\n", m.DataLength)
	fmt.Fprintf(&b, "Image Size: %d bytes\n", m.ArtifactSize)
	fmt.Fprintf(&b, "Error Correction: %s\n", correction)
	return b.String()
}
