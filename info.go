package waveform

import (
	"github.com/tphakala/simd/cpu"
)

// Info describes an encoder configuration.
type Info struct {
	// Dimensions is the number of rows per character.
	Dimensions int

	// Samples is the sample axis length.
	Samples int

	// RedundancyRows is the number of rows appended per matrix.
	RedundancyRows int

	// BytesPerChar is the in-memory size of one character block.
	BytesPerChar int64

	// SIMDType describes the SIMD instruction set used by the numeric kernels.
	SIMDType string
}

// bytesPerFloat64 is the size of one sample in memory.
const bytesPerFloat64 = 8

// Info returns information about the encoder.
func (e *Encoder) Info() Info {
	info := Info{
		Dimensions:   e.config.Dimensions,
		Samples:      e.config.Samples,
		BytesPerChar: int64(e.config.Dimensions * e.config.Samples * bytesPerFloat64),
		SIMDType:     cpu.Info(),
	}
	if e.config.ErrorCorrection {
		info.RedundancyRows = redundancyRowCount
	}
	return info
}
