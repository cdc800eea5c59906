package waveform

import (
	"io"

	"github.com/tphakala/go-waveform-encoder/render"
	"github.com/tphakala/go-waveform-encoder/wave"
)

// NewDefault creates an encoder with the default configuration and the
// default PNG renderer.
func NewDefault() (*Encoder, error) {
	return New(nil)
}

// NewWithoutCorrection creates a default encoder that appends no redundancy rows.
func NewWithoutCorrection() (*Encoder, error) {
	config := DefaultConfig()
	config.ErrorCorrection = false
	return New(&config)
}

// NewLowResolution creates an encoder sampling each waveform at SamplesLow
// points, the resolution of the first encoder revision.
func NewLowResolution() (*Encoder, error) {
	config := DefaultConfig()
	config.Samples = SamplesLow
	return New(&config)
}

// NewWithRenderer creates a default encoder that renders with r.
func NewWithRenderer(r Renderer) (*Encoder, error) {
	config := DefaultConfig()
	config.Renderer = r
	return New(&config)
}

// NewSonifier creates a default encoder that renders 16-bit PCM WAV audio at
// the given sample rate. A zero rate selects render.DefaultSampleRate.
func NewSonifier(sampleRate int) (*Encoder, error) {
	return NewWithRenderer(render.NewWAV(sampleRate))
}

// NewArchiver creates a default encoder that writes lossless matrix archives
// compressed with c.
func NewArchiver(c render.Compression) (*Encoder, error) {
	return NewWithRenderer(render.NewArchive(c))
}

// EncodeString encodes text with the default configuration.
// This is a convenience function for one-shot encoding.
func EncodeString(text string) (*wave.Matrix, error) {
	e, err := NewDefault()
	if err != nil {
		return nil, err
	}
	return e.Encode(text)
}

// VisualizePNG encodes text with the default configuration and writes the
// default PNG figure to dst.
func VisualizePNG(text string, dst io.Writer) (Metrics, error) {
	e, err := NewDefault()
	if err != nil {
		return Metrics{}, err
	}
	return e.Visualize(text, dst)
}
