package render

import (
	"errors"
	"fmt"

	"github.com/gogpu/gg"
)

// Figure geometry, in figure units. One unit is Style.UnitPixels pixels.
const (
	figureWidthUnits     = 12.0 // Fixed figure width
	figureMinHeightUnits = 6.0  // Minimum figure height
	unitsPerRow          = 0.5  // Height contributed by each row
)

// Default style values.
const (
	defaultUnitPixels = 50
	defaultLineWidth  = 1.0
	defaultLineAlpha  = 0.8
	defaultFillAlpha  = 0.3
	defaultGridAlpha  = 0.1
	defaultRowMargin  = 0.1 // Fraction of a row band left blank above and below the trace

	// MaxCanvasPixels bounds the canvas area; larger figures are rejected
	// before any pixel buffer is allocated.
	MaxCanvasPixels = 1 << 26
)

// ErrInvalidStyle is returned by renderers given an unusable style.
var ErrInvalidStyle = errors.New("invalid render style")

// Style controls how the PNG renderer draws a matrix. It is passed explicitly
// to the renderer; there is no package-level styling state.
type Style struct {
	// UnitPixels is the number of pixels per figure unit. The figure is 12
	// units wide and max(6, rows/2) units tall.
	UnitPixels int

	// Background fills the whole canvas.
	Background gg.RGBA

	// Line is the trace colour. LineAlpha overrides its alpha channel.
	Line      gg.RGBA
	LineAlpha float64
	LineWidth float64

	// Fill colours the area between trace and zero. FillAlpha overrides its alpha.
	Fill      gg.RGBA
	FillAlpha float64

	// Palette, when non-empty, replaces Fill with a colour sampled along the
	// palette by row position.
	Palette []gg.RGBA

	// GridAlpha is the alpha of the zero line drawn in every row; 0 disables it.
	GridAlpha float64

	// RowMargin is the fraction of each row band kept clear of the trace.
	RowMargin float64
}

// viridisStops are evenly spaced samples of the viridis colour map.
var viridisStops = []string{
	"#440154", "#482878", "#3e4989", "#31688e", "#26828e",
	"#1f9e89", "#35b779", "#6ece58", "#b5de2b", "#fde725",
}

// ViridisPalette returns the viridis colour map as palette stops.
func ViridisPalette() []gg.RGBA {
	p := make([]gg.RGBA, len(viridisStops))
	for i, hex := range viridisStops {
		p[i] = gg.Hex(hex)
	}
	return p
}

// DefaultStyle returns the dark style: black background, white traces and a
// translucent fill in the first viridis colour.
func DefaultStyle() Style {
	return Style{
		UnitPixels: defaultUnitPixels,
		Background: gg.Black,
		Line:       gg.White,
		LineAlpha:  defaultLineAlpha,
		LineWidth:  defaultLineWidth,
		Fill:       gg.Hex(viridisStops[0]),
		FillAlpha:  defaultFillAlpha,
		GridAlpha:  defaultGridAlpha,
		RowMargin:  defaultRowMargin,
	}
}

// GradientStyle returns DefaultStyle with fills coloured along the viridis map.
func GradientStyle() Style {
	s := DefaultStyle()
	s.Palette = ViridisPalette()
	return s
}

// Validate checks if the style is usable.
func (s *Style) Validate() error {
	if s.UnitPixels < 1 {
		return fmt.Errorf("%w: unit pixels must be positive", ErrInvalidStyle)
	}
	if s.LineWidth <= 0 {
		return fmt.Errorf("%w: line width must be positive", ErrInvalidStyle)
	}
	if s.RowMargin < 0 || s.RowMargin >= 0.5 {
		return fmt.Errorf("%w: row margin must be in [0, 0.5)", ErrInvalidStyle)
	}
	for _, a := range []float64{s.LineAlpha, s.FillAlpha, s.GridAlpha} {
		if a < 0 || a > 1 {
			return fmt.Errorf("%w: alpha values must be in [0, 1]", ErrInvalidStyle)
		}
	}
	return nil
}

// Size returns the canvas size in pixels for a matrix with rows rows.
func (s Style) Size(rows int) (width, height int) {
	heightUnits := max(figureMinHeightUnits, float64(rows)*unitsPerRow)
	return int(figureWidthUnits * float64(s.UnitPixels)), int(heightUnits * float64(s.UnitPixels))
}

// fillColor returns the fill colour for row i of n.
func (s Style) fillColor(i, n int) gg.RGBA {
	if len(s.Palette) == 0 {
		return s.Fill
	}
	if len(s.Palette) == 1 || n <= 1 {
		return s.Palette[0]
	}

	pos := float64(i) / float64(n-1) * float64(len(s.Palette)-1)
	lo := int(pos)
	if lo >= len(s.Palette)-1 {
		return s.Palette[len(s.Palette)-1]
	}
	return s.Palette[lo].Lerp(s.Palette[lo+1], pos-float64(lo))
}
