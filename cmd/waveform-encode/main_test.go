package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	waveform "github.com/tphakala/go-waveform-encoder"
	"github.com/tphakala/go-waveform-encoder/render"
)

func TestBuildRenderer(t *testing.T) {
	r, err := buildRenderer("png", "", 0)
	require.NoError(t, err)
	assert.IsType(t, &render.PNG{}, r)

	r, err = buildRenderer("gradient", "", 0)
	require.NoError(t, err)
	require.IsType(t, &render.PNG{}, r)
	assert.NotEmpty(t, r.(*render.PNG).Style().Palette)

	r, err = buildRenderer("WAV", "", 16000)
	require.NoError(t, err)
	require.IsType(t, &render.WAV{}, r)
	assert.Equal(t, 16000, r.(*render.WAV).SampleRate())

	r, err = buildRenderer("archive", "s2", 0)
	require.NoError(t, err)
	require.IsType(t, &render.Archive{}, r)
	assert.Equal(t, render.CompressionS2, r.(*render.Archive).Compression())
}

func TestBuildRenderer_Errors(t *testing.T) {
	_, err := buildRenderer("svg", "", 0)
	require.ErrorIs(t, err, errUnknownFormat)

	_, err = buildRenderer("archive", "brotli", 0)
	require.ErrorIs(t, err, render.ErrUnknownCompression)
}

func TestReportBatch(t *testing.T) {
	enc, err := waveform.NewDefault()
	require.NoError(t, err)

	require.Error(t, reportBatch(enc, nil))
	require.NoError(t, reportBatch(enc, []string{"a", "bc"}))
	require.ErrorIs(t, reportBatch(enc, []string{"a", ""}), waveform.ErrDomain)
}
