package render

import (
	"fmt"
	"io"

	"github.com/gogpu/gg"

	"github.com/tphakala/go-waveform-encoder/wave"
)

// PNG renders a matrix as stacked waveform plots, one horizontal band per row
// in matrix order. Each band is scaled to its own row's range.
type PNG struct {
	style Style
}

// NewPNG creates a PNG renderer with the given style.
func NewPNG(style Style) *PNG {
	return &PNG{style: style}
}

// Style returns the renderer style.
func (p *PNG) Style() Style {
	return p.style
}

// Render draws m and writes it to w as PNG, returning the encoded size.
func (p *PNG) Render(w io.Writer, m *wave.Matrix) (int64, error) {
	if err := p.style.Validate(); err != nil {
		return 0, err
	}

	width, height := p.style.Size(m.Len())
	if int64(width)*int64(height) > MaxCanvasPixels {
		return 0, fmt.Errorf("%w: %d rows need a %dx%d canvas, limit is %d pixels",
			ErrInvalidStyle, m.Len(), width, height, MaxCanvasPixels)
	}
	dc := gg.NewContext(width, height)
	defer func() { _ = dc.Close() }()

	dc.ClearWithColor(p.style.Background)

	if n := m.Len(); n > 0 {
		band := float64(height) / float64(n)
		for i, row := range m.Rows() {
			if err := p.drawRow(dc, row.Samples, float64(i)*band, band, p.style.fillColor(i, n)); err != nil {
				return 0, fmt.Errorf("row %d (%s): %w", i, row.Kind, err)
			}
		}
	}

	cw := &countingWriter{w: w}
	if err := dc.EncodePNG(cw); err != nil {
		return cw.n, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return cw.n, nil
}

// drawRow plots samples inside the band starting at top with the given height.
func (p *PNG) drawRow(dc *gg.Context, samples []float64, top, band float64, fill gg.RGBA) error {
	if len(samples) == 0 {
		return nil
	}

	lo, hi := 0.0, 0.0
	for _, v := range samples {
		lo = min(lo, v)
		hi = max(hi, v)
	}

	margin := band * p.style.RowMargin
	inner := band - 2*margin
	span := hi - lo
	y := func(v float64) float64 {
		if span == 0 {
			return top + band/2
		}
		return top + margin + (hi-v)/span*inner
	}

	width := float64(dc.Width())
	step := 0.0
	if len(samples) > 1 {
		step = width / float64(len(samples)-1)
	}
	zero := y(0)

	if p.style.GridAlpha > 0 {
		dc.SetRGBA(p.style.Line.R, p.style.Line.G, p.style.Line.B, p.style.GridAlpha)
		dc.SetLineWidth(p.style.LineWidth)
		dc.DrawLine(0, zero, width, zero)
		if err := dc.Stroke(); err != nil {
			return err
		}
	}

	if p.style.FillAlpha > 0 {
		dc.SetRGBA(fill.R, fill.G, fill.B, p.style.FillAlpha)
		dc.MoveTo(0, zero)
		for i, v := range samples {
			dc.LineTo(float64(i)*step, y(v))
		}
		dc.LineTo(float64(len(samples)-1)*step, zero)
		dc.ClosePath()
		if err := dc.Fill(); err != nil {
			return err
		}
	}

	dc.SetRGBA(p.style.Line.R, p.style.Line.G, p.style.Line.B, p.style.LineAlpha)
	dc.SetLineWidth(p.style.LineWidth)
	dc.MoveTo(0, y(samples[0]))
	for i := 1; i < len(samples); i++ {
		dc.LineTo(float64(i)*step, y(samples[i]))
	}
	return dc.Stroke()
}
