package generator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-waveform-encoder/internal/testutil"
	"github.com/tphakala/go-waveform-encoder/wave"
)

const (
	testSamples100 = 100
	testSamples50  = 50
	testDimensions = 4
	testBase       = math.Pi / 8
)

func newTestGenerator(t *testing.T, dimensions, samples int) *Generator {
	t.Helper()
	g, err := New(dimensions, samples, testBase)
	require.NoError(t, err)
	return g
}

func TestAxis(t *testing.T) {
	axis := Axis(testSamples50)
	require.Len(t, axis, testSamples50)
	assert.InDelta(t, 0.0, axis[0], 0)
	assert.InDelta(t, 2*math.Pi, axis[len(axis)-1], testutil.DefaultTolerance)

	step := axis[1] - axis[0]
	for i := 2; i < len(axis); i++ {
		assert.InDelta(t, step, axis[i]-axis[i-1], testutil.DefaultTolerance, "uneven step at %d", i)
	}
}

func TestNew_InvalidParams(t *testing.T) {
	tests := []struct {
		name       string
		dimensions int
		samples    int
		base       float64
	}{
		{"zero_dimensions", 0, testSamples100, testBase},
		{"negative_dimensions", -1, testSamples100, testBase},
		{"too_many_dimensions", 5, testSamples100, testBase},
		{"one_sample", testDimensions, 1, testBase},
		{"zero_base", testDimensions, testSamples100, 0},
		{"nan_base", testDimensions, testSamples100, math.NaN()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.dimensions, tt.samples, tt.base)
			require.ErrorIs(t, err, ErrInvalidParams)
		})
	}
}

func TestBlock_Shape(t *testing.T) {
	chars := []rune{'A', 'z', ' ', '0', 0, 'é', '🌍', 0x10FFFF}
	for _, samples := range []int{testSamples50, testSamples100} {
		g := newTestGenerator(t, testDimensions, samples)
		for _, c := range chars {
			b := g.Block(c)
			assert.Equal(t, c, b.Rune)
			require.Len(t, b.Rows, testDimensions)
			for i, row := range b.Rows {
				assert.Equal(t, wave.DataKinds[i], row.Kind)
				assert.Len(t, row.Samples, samples)
				testutil.AssertNoNaNOrInf(t, row.Samples)
			}
		}
	}
}

func TestBlock_ReducedDimensions(t *testing.T) {
	for dims := 1; dims <= testDimensions; dims++ {
		g := newTestGenerator(t, dims, testSamples50)
		b := g.Block('q')
		require.Len(t, b.Rows, dims)
		assert.Equal(t, wave.KindAmplitude, b.Rows[0].Kind)
		assert.Equal(t, wave.DataKinds[dims-1], b.Rows[dims-1].Kind)
	}
}

func TestBlock_AmplitudePeak(t *testing.T) {
	g := newTestGenerator(t, testDimensions, testSamples100)
	b := g.Block('A')
	testutil.AssertPeakMagnitude(t, b.Rows[0].Samples, 65.0/255.0, testutil.AxisTolerance)
}

func TestBlock_AmplitudeNotClamped(t *testing.T) {
	g := newTestGenerator(t, testDimensions, testSamples100)
	b := g.Block('🌍')
	want := float64('🌍') / 255.0
	testutil.AssertPeakMagnitude(t, b.Rows[0].Samples, want, want*testutil.AxisTolerance)
	assert.Greater(t, want, 1.0)
}

func TestBlock_Formulas(t *testing.T) {
	g := newTestGenerator(t, testDimensions, testSamples50)
	axis := Axis(testSamples50)
	const c = 'H'
	code := float64(c)
	b := g.Block(c)

	freq := testBase * (1 + code/128)
	phase := code / 255 * 2 * math.Pi
	for i, x := range axis {
		assert.InDelta(t, code/255*math.Sin(x), b.Rows[0].Samples[i], testutil.DefaultTolerance, "amplitude[%d]", i)
		assert.InDelta(t, math.Sin(freq*x), b.Rows[1].Samples[i], testutil.DefaultTolerance, "frequency[%d]", i)
		assert.InDelta(t, math.Sin(x+phase), b.Rows[2].Samples[i], testutil.DefaultTolerance, "phase[%d]", i)
		assert.InDelta(t, math.Sin(x)+0.5*code/255*math.Sin(2*x), b.Rows[3].Samples[i], testutil.DefaultTolerance, "harmonic[%d]", i)
	}
}

func TestBlock_Deterministic(t *testing.T) {
	g := newTestGenerator(t, testDimensions, testSamples100)
	a := g.Block('k')
	b := g.Block('k')
	for i := range a.Rows {
		assert.Equal(t, a.Rows[i].Samples, b.Rows[i].Samples)
	}

	// Returned rows are fresh and must not alias generator state.
	a.Rows[0].Samples[10] = 42
	c := g.Block('k')
	assert.Equal(t, b.Rows[0].Samples, c.Rows[0].Samples)
}

func TestBlock_ZeroCode(t *testing.T) {
	g := newTestGenerator(t, testDimensions, testSamples50)
	b := g.Block(0)
	testutil.AssertPeakMagnitude(t, b.Rows[0].Samples, 0, 0)
	assert.Equal(t, g.sinT, b.Rows[3].Samples, "harmonic reduces to sin(t) for code 0")
}

func BenchmarkBlock(b *testing.B) {
	g, err := New(testDimensions, testSamples100, testBase)
	if err != nil {
		b.Fatal(err)
	}
	for b.Loop() {
		_ = g.Block('W')
	}
}
