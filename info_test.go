package waveform

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInfo(t *testing.T) {
	e := newTestEncoder(t, nil)
	info := e.Info()
	assert.Equal(t, 4, info.Dimensions)
	assert.Equal(t, 100, info.Samples)
	assert.Equal(t, 3, info.RedundancyRows)
	assert.Equal(t, int64(3200), info.BytesPerChar)

	e = newTestEncoder(t, func(c *Config) {
		c.ErrorCorrection = false
		c.Dimensions = 2
		c.Samples = SamplesLow
	})
	info = e.Info()
	assert.Zero(t, info.RedundancyRows)
	assert.Equal(t, int64(800), info.BytesPerChar)
}
