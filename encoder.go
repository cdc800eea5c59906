package waveform

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"unicode/utf8"

	"github.com/tphakala/go-waveform-encoder/internal/generator"
	"github.com/tphakala/go-waveform-encoder/internal/redundancy"
	"github.com/tphakala/go-waveform-encoder/render"
	"github.com/tphakala/go-waveform-encoder/wave"
)

// Renderer turns an encoded matrix into an artifact written to w and reports
// the number of bytes written. Implementations must be deterministic for a
// given matrix.
type Renderer interface {
	Render(w io.Writer, m *wave.Matrix) (int64, error)
}

// Config holds encoder configuration. It is copied by New and never mutated
// afterwards.
type Config struct {
	// Dimensions is the number of waveforms derived per character (1-4).
	// Rows are taken in the fixed order amplitude, frequency, phase, harmonic.
	Dimensions int

	// Samples is the length of the canonical sample axis over [0, 2π].
	Samples int

	// BaseFrequency is the base of the frequency-modulated row.
	BaseFrequency float64

	// ErrorCorrection appends the checksum, parity and smoothed rows.
	ErrorCorrection bool

	// SmoothingWindow is the odd moving-average width of the smoothed row.
	SmoothingWindow int

	// Renderer produces the artifact for Visualize.
	// When nil, a PNG renderer with the default style is used.
	Renderer Renderer

	// EnableParallel encodes the texts of EncodeBatch concurrently.
	EnableParallel bool
}

// Common errors returned by the encoder.
var (
	// ErrInvalidConfig indicates invalid configuration parameters.
	ErrInvalidConfig = errors.New("invalid encoder configuration")

	// ErrDomain indicates a degenerate numeric condition, such as an all-zero
	// checksum row or a zero-byte artifact.
	ErrDomain = errors.New("degenerate numeric input")
)

// DefaultConfig returns the default configuration: four dimensions, 100
// samples, base frequency π/8 and error correction enabled.
func DefaultConfig() Config {
	return Config{
		Dimensions:      defaultDimensions,
		Samples:         defaultSamples,
		BaseFrequency:   defaultBaseFrequency,
		ErrorCorrection: true,
		SmoothingWindow: defaultSmoothingWindow,
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Dimensions < 1 || c.Dimensions > maxDimensions {
		return fmt.Errorf("%w: dimensions must be 1-%d", ErrInvalidConfig, maxDimensions)
	}

	if c.Samples < minSamples || c.Samples > maxSamples {
		return fmt.Errorf("%w: samples must be %d-%d", ErrInvalidConfig, minSamples, maxSamples)
	}

	if c.BaseFrequency <= 0 || math.IsInf(c.BaseFrequency, 0) || math.IsNaN(c.BaseFrequency) {
		return fmt.Errorf("%w: base frequency must be positive and finite", ErrInvalidConfig)
	}

	if c.ErrorCorrection && (c.SmoothingWindow < 1 || c.SmoothingWindow%2 == 0) {
		return fmt.Errorf("%w: smoothing window must be a positive odd width", ErrInvalidConfig)
	}

	return nil
}

// Encoder converts text into waveform matrices. An Encoder is immutable and
// safe for concurrent use.
type Encoder struct {
	config    Config
	generator *generator.Generator
}

// New creates an encoder. A nil config selects DefaultConfig.
func New(config *Config) (*Encoder, error) {
	cfg := DefaultConfig()
	if config != nil {
		cfg = *config
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	gen, err := generator.New(cfg.Dimensions, cfg.Samples, cfg.BaseFrequency)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if cfg.Renderer == nil {
		cfg.Renderer = render.NewPNG(render.DefaultStyle())
	}

	return &Encoder{config: cfg, generator: gen}, nil
}

// Config returns a copy of the encoder configuration.
func (e *Encoder) Config() Config {
	return e.config
}

// Block returns the waveforms derived from a single character.
func (e *Encoder) Block(r rune) wave.Block {
	return e.generator.Block(r)
}

// RowCount returns the number of matrix rows Encode produces for text.
func (e *Encoder) RowCount(text string) int {
	rows := utf8.RuneCountInString(text) * e.config.Dimensions
	if e.config.ErrorCorrection {
		rows += redundancyRowCount
	}
	return rows
}

// Encode converts text into an encoded matrix: one block per character in
// input order, followed by the redundancy rows when error correction is enabled.
//
// Empty text yields an empty matrix without error correction. With error
// correction there is nothing to reduce over and Encode returns ErrDomain.
func (e *Encoder) Encode(text string) (*wave.Matrix, error) {
	if !utf8.ValidString(text) {
		return nil, fmt.Errorf("%w: text is not valid UTF-8", ErrDomain)
	}

	m := wave.NewMatrix(e.config.Samples, e.RowCount(text))
	for _, r := range text {
		m.AppendBlock(e.generator.Block(r))
	}

	if e.config.ErrorCorrection {
		if err := e.protect(m); err != nil {
			return nil, err
		}
	}

	Logger().Debug("waveform: encoded text",
		"chars", utf8.RuneCountInString(text),
		"rows", m.Len(),
		"samples", m.SampleCount,
		"error_correction", e.config.ErrorCorrection)

	return m, nil
}

// protect appends the redundancy rows derived from all rows of m.
func (e *Encoder) protect(m *wave.Matrix) error {
	derived, err := redundancy.Derive(m.Samples(), e.config.SmoothingWindow)
	if err != nil {
		if errors.Is(err, redundancy.ErrNoRows) || errors.Is(err, redundancy.ErrAllZeroChecksum) {
			return fmt.Errorf("%w: %w", ErrDomain, err)
		}
		return fmt.Errorf("failed to derive redundancy rows: %w", err)
	}

	m.Append(
		wave.Waveform{Kind: wave.KindChecksum, Samples: derived.Checksum},
		wave.Waveform{Kind: wave.KindParity, Samples: derived.Parity},
		wave.Waveform{Kind: wave.KindSmoothed, Samples: derived.Smoothed},
	)
	return nil
}

// Visualize encodes text, renders the matrix to dst with the configured
// renderer and returns the resulting metrics.
func (e *Encoder) Visualize(text string, dst io.Writer) (Metrics, error) {
	m, err := e.Encode(text)
	if err != nil {
		return Metrics{}, err
	}

	size, err := e.config.Renderer.Render(dst, m)
	if err != nil {
		return Metrics{}, fmt.Errorf("failed to render matrix: %w", err)
	}

	metrics, err := NewMetrics(e.config, utf8.RuneCountInString(text), size)
	if err != nil {
		return Metrics{}, err
	}

	Logger().Debug("waveform: rendered artifact",
		"renderer", fmt.Sprintf("%T", e.config.Renderer),
		"bytes", size,
		"density", metrics.Density)

	return metrics, nil
}

// VisualizeFile is like Visualize but writes the artifact to the file at path,
// creating or truncating it.
func (e *Encoder) VisualizeFile(text, path string) (metrics Metrics, err error) {
	f, err := os.Create(path)
	if err != nil {
		return Metrics{}, fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); err == nil && closeErr != nil {
			err = fmt.Errorf("failed to close output file: %w", closeErr)
		}
	}()

	return e.Visualize(text, f)
}
