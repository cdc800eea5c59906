package waveform

import "math"

// Encoder defaults
const (
	defaultDimensions      = 4           // Amplitude, frequency, phase and harmonic rows
	defaultSamples         = 100         // Sample axis resolution
	defaultSmoothingWindow = 5           // Moving-average width of the smoothed row
	defaultBaseFrequency   = math.Pi / 8 // Base of the frequency-modulated row
)

// Limits
const (
	maxDimensions = 4 // Number of per-character derivations
	minSamples    = 2 // Both endpoints of [0, 2π]
	maxSamples    = 1 << 16
)

// Sample axis resolutions used by the presets.
const (
	// SamplesLow is the resolution of the first encoder revision.
	SamplesLow = 50

	// SamplesHigh is the default resolution.
	SamplesHigh = defaultSamples
)

// redundancyRowCount is the number of rows appended when error correction is enabled.
const redundancyRowCount = 3
