package waveform

import (
	"bytes"
	"errors"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-waveform-encoder/internal/testutil"
	"github.com/tphakala/go-waveform-encoder/render"
	"github.com/tphakala/go-waveform-encoder/wave"
)

// fixedRenderer writes a fixed payload and records the matrix it was given.
type fixedRenderer struct {
	payload []byte
	got     *wave.Matrix
}

func (r *fixedRenderer) Render(w io.Writer, m *wave.Matrix) (int64, error) {
	r.got = m
	n, err := w.Write(r.payload)
	return int64(n), err
}

type failingRenderer struct{}

func (failingRenderer) Render(io.Writer, *wave.Matrix) (int64, error) {
	return 0, errors.New("disk full")
}

func newTestEncoder(t *testing.T, mutate func(*Config)) *Encoder {
	t.Helper()
	config := DefaultConfig()
	if mutate != nil {
		mutate(&config)
	}
	e, err := New(&config)
	require.NoError(t, err)
	return e
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"default", func(*Config) {}, false},
		{"one_dimension", func(c *Config) { c.Dimensions = 1 }, false},
		{"zero_dimensions", func(c *Config) { c.Dimensions = 0 }, true},
		{"five_dimensions", func(c *Config) { c.Dimensions = 5 }, true},
		{"one_sample", func(c *Config) { c.Samples = 1 }, true},
		{"too_many_samples", func(c *Config) { c.Samples = maxSamples + 1 }, true},
		{"zero_base", func(c *Config) { c.BaseFrequency = 0 }, true},
		{"inf_base", func(c *Config) { c.BaseFrequency = math.Inf(1) }, true},
		{"even_window", func(c *Config) { c.SmoothingWindow = 4 }, true},
		{"even_window_without_correction", func(c *Config) {
			c.SmoothingWindow = 4
			c.ErrorCorrection = false
		}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.mutate(&config)
			err := config.Validate()
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidConfig)
				_, err = New(&config)
				require.ErrorIs(t, err, ErrInvalidConfig)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestNew_Defaults(t *testing.T) {
	e, err := New(nil)
	require.NoError(t, err)

	c := e.Config()
	assert.Equal(t, 4, c.Dimensions)
	assert.Equal(t, 100, c.Samples)
	assert.InDelta(t, math.Pi/8, c.BaseFrequency, 0)
	assert.True(t, c.ErrorCorrection)
	assert.IsType(t, &render.PNG{}, c.Renderer)
}

func TestEncode_RowCount(t *testing.T) {
	tests := []struct {
		text       string
		dimensions int
		correction bool
		want       int
	}{
		{"A", 4, true, 7},
		{"AB", 4, true, 11},
		{"AB", 4, false, 8},
		{"Hello, World! 🌍", 4, true, 15*4 + 3},
		{"héllo", 2, false, 10},
		{"xyz", 1, true, 6},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			e := newTestEncoder(t, func(c *Config) {
				c.Dimensions = tt.dimensions
				c.ErrorCorrection = tt.correction
			})
			m, err := e.Encode(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, m.Len())
			assert.Equal(t, tt.want, e.RowCount(tt.text))
			testutil.AssertRowLengths(t, m)
		})
	}
}

func TestEncode_RowOrder(t *testing.T) {
	e := newTestEncoder(t, nil)
	m, err := e.Encode("AB")
	require.NoError(t, err)
	require.Equal(t, 11, m.Len())

	for i := range 8 {
		assert.Equal(t, wave.DataKinds[i%4], m.Row(i).Kind, "row %d", i)
	}
	assert.Equal(t, wave.KindChecksum, m.Row(8).Kind)
	assert.Equal(t, wave.KindParity, m.Row(9).Kind)
	assert.Equal(t, wave.KindSmoothed, m.Row(10).Kind)

	// The first block is 'A' and the second is 'B'.
	assert.Equal(t, e.Block('A').Rows[0].Samples, m.Row(0).Samples)
	assert.Equal(t, e.Block('B').Rows[0].Samples, m.Row(4).Samples)
}

func TestEncode_Redundancy(t *testing.T) {
	e := newTestEncoder(t, nil)
	m, err := e.Encode("AB")
	require.NoError(t, err)

	red := m.RedundancyRows()
	require.Len(t, red, 3)
	testutil.AssertPeakMagnitude(t, red[0].Samples, 1, testutil.PeakTolerance)
	testutil.AssertBinary(t, red[1].Samples)
	testutil.AssertAllInRange(t, red[2].Samples, -1, 1)

	for _, row := range m.Rows() {
		testutil.AssertNoNaNOrInf(t, row.Samples)
	}
}

func TestEncode_AmplitudePeak(t *testing.T) {
	e := newTestEncoder(t, func(c *Config) { c.ErrorCorrection = false })
	m, err := e.Encode("A")
	require.NoError(t, err)
	testutil.AssertPeakMagnitude(t, m.Row(0).Samples, 65.0/255.0, testutil.AxisTolerance)
}

func TestEncode_Deterministic(t *testing.T) {
	a, err := EncodeString("Hello, World! 🌍")
	require.NoError(t, err)
	b, err := EncodeString("Hello, World! 🌍")
	require.NoError(t, err)
	assert.True(t, a.Equal(b))
}

func TestEncode_EmptyText(t *testing.T) {
	e := newTestEncoder(t, nil)
	_, err := e.Encode("")
	require.ErrorIs(t, err, ErrDomain)

	e = newTestEncoder(t, func(c *Config) { c.ErrorCorrection = false })
	m, err := e.Encode("")
	require.NoError(t, err)
	assert.Zero(t, m.Len())
	assert.Equal(t, 100, m.SampleCount)
}

func TestEncode_AllZeroChecksum(t *testing.T) {
	e := newTestEncoder(t, func(c *Config) { c.Dimensions = 1 })
	_, err := e.Encode("\x00")
	require.ErrorIs(t, err, ErrDomain)
}

func TestEncode_InvalidUTF8(t *testing.T) {
	e := newTestEncoder(t, nil)
	_, err := e.Encode("ok\xff")
	require.ErrorIs(t, err, ErrDomain)
}

func TestVisualize(t *testing.T) {
	r := &fixedRenderer{payload: make([]byte, 1000)}
	e := newTestEncoder(t, func(c *Config) { c.Renderer = r })

	var buf bytes.Buffer
	metrics, err := e.Visualize("Hello, World!", &buf)
	require.NoError(t, err)

	assert.Equal(t, 1000, buf.Len())
	assert.InDelta(t, 0.013, metrics.Density, 1e-15)
	assert.Equal(t, 13, metrics.DataLength)
	assert.Equal(t, int64(1000), metrics.ArtifactSize)
	assert.Equal(t, 4, metrics.Dimensions)
	assert.True(t, metrics.ErrorCorrection)
	require.NotNil(t, r.got)
	assert.Equal(t, 13*4+3, r.got.Len())
}

func TestVisualize_ZeroByteArtifact(t *testing.T) {
	e := newTestEncoder(t, func(c *Config) { c.Renderer = &fixedRenderer{} })
	_, err := e.Visualize("abc", io.Discard)
	require.ErrorIs(t, err, ErrDomain)
}

func TestVisualize_RendererError(t *testing.T) {
	e := newTestEncoder(t, func(c *Config) { c.Renderer = failingRenderer{} })
	_, err := e.Visualize("abc", io.Discard)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestVisualize_EmptyTextWithoutCorrection(t *testing.T) {
	e := newTestEncoder(t, func(c *Config) {
		c.ErrorCorrection = false
		c.Renderer = &fixedRenderer{payload: []byte("x")}
	})
	metrics, err := e.Visualize("", io.Discard)
	require.NoError(t, err)
	assert.Zero(t, metrics.Density)
}

func TestVisualizeFile_PNG(t *testing.T) {
	e, err := NewLowResolution()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "waveform_demo.png")
	metrics, err := e.VisualizeFile("Hello, World! 🌍", path)
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, info.Size(), metrics.ArtifactSize)
	testutil.AssertRelativeError(t, 15/float64(info.Size()), metrics.Density, 1e-12)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 600, img.Bounds().Dx())
	assert.Equal(t, 1575, img.Bounds().Dy(), "63 rows at half a unit each")
}

func TestVisualizeFile_BadPath(t *testing.T) {
	e, err := NewDefault()
	require.NoError(t, err)
	_, err = e.VisualizeFile("a", filepath.Join(t.TempDir(), "missing", "out.png"))
	require.Error(t, err)
}

func TestConvenienceConstructors(t *testing.T) {
	e, err := NewWithoutCorrection()
	require.NoError(t, err)
	assert.False(t, e.Config().ErrorCorrection)

	e, err = NewLowResolution()
	require.NoError(t, err)
	assert.Equal(t, SamplesLow, e.Config().Samples)

	e, err = NewSonifier(0)
	require.NoError(t, err)
	assert.IsType(t, &render.WAV{}, e.Config().Renderer)

	e, err = NewArchiver(render.CompressionZstd)
	require.NoError(t, err)
	var buf bytes.Buffer
	_, err = e.Visualize("round trip", &buf)
	require.NoError(t, err)

	got, err := render.DecodeArchive(&buf)
	require.NoError(t, err)
	want, err := e.Encode("round trip")
	require.NoError(t, err)
	assert.True(t, want.Equal(got))
}

func TestVisualizePNG(t *testing.T) {
	var buf bytes.Buffer
	metrics, err := VisualizePNG("hi", &buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), metrics.ArtifactSize)
}

func BenchmarkEncode(b *testing.B) {
	e, err := NewDefault()
	if err != nil {
		b.Fatal(err)
	}
	for b.Loop() {
		_, _ = e.Encode("Hello, World! 🌍")
	}
}
