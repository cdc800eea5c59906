// Package render turns encoded waveform matrices into artifacts.
//
// Three renderers are provided, all satisfying the encoder's Renderer contract
// of writing to an io.Writer and returning the number of bytes written:
//
//   - [PNG] draws the stacked waveforms as a raster image using the gg
//     software rasterizer. Styling is an explicit [Style] value.
//   - [WAV] sonifies the matrix as 16-bit PCM audio.
//   - [Archive] stores the matrix losslessly in a compact binary container,
//     optionally compressed, and can be read back with [DecodeArchive].
//
// Renderers hold only configuration and are safe for concurrent use.
package render

import "io"

// countingWriter counts bytes passed through to w.
type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
