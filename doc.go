// Package waveform encodes text as a stack of deterministic waveforms and
// renders the result as an artifact such as a PNG figure.
//
// Every character maps to a block of up to four waveforms derived from its
// Unicode code point, each sampled over the same axis of evenly spaced points
// on [0, 2π]. Blocks are stacked in input order into a matrix, and three
// redundancy rows may be appended: a peak-normalized checksum of all rows, a
// per-column parity row and a smoothed copy of the checksum.
//
// # Features
//
//   - Deterministic encoding: the same text and configuration always produce
//     bit-identical matrices
//   - Four derivations per character: amplitude, frequency, phase and harmonic
//   - Optional error correction rows (checksum, parity, smoothed checksum)
//   - Pluggable renderers: PNG figure, WAV sonification and a lossless
//     compressed matrix archive
//   - SIMD-accelerated numeric kernels via github.com/tphakala/simd
//   - Pure Go implementation with no CGO dependencies
//
// # Quick Start
//
// For one-shot encoding:
//
//	m, err := waveform.EncodeString("Hello, World!")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(m.Len()) // 13 characters × 4 dimensions + 3 redundancy rows
//
// For rendering with a reusable encoder:
//
//	config := waveform.DefaultConfig()
//	config.Samples = waveform.SamplesLow
//	e, err := waveform.New(&config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	metrics, err := e.VisualizeFile("Hello, World! 🌍", "waveform_demo.png")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Print(metrics)
//
// # Encoding
//
// For a character with code point c, the block rows are:
//
//   - amplitude: (c/255)·sin(t)
//   - frequency: sin(f·t) with f = base·(1 + c/128)
//   - phase: sin(t + (c/255)·2π)
//   - harmonic: sin(t) + 0.5·(c/255)·sin(2t)
//
// [Config.Dimensions] selects how many of these rows, in this order, each
// character contributes. Code points are not clamped, so characters beyond
// Latin-1 produce amplitudes above 1.
//
// # Metrics
//
// [Encoder.Visualize] reports [Metrics] for the rendered artifact. Density is
// characters per artifact byte; a zero-byte artifact is reported as
// [ErrDomain] rather than divided by.
//
// # Convenience Functions
//
//   - [NewDefault]: four dimensions, 100 samples, error correction, PNG output
//   - [NewWithoutCorrection]: no redundancy rows
//   - [NewLowResolution]: 50 samples per waveform
//   - [NewSonifier]: WAV output
//   - [NewArchiver]: lossless archive output
//
// # Thread Safety
//
// An [Encoder] is immutable after [New] and safe for concurrent use.
// [Encoder.EncodeBatch] encodes several texts concurrently when
// [Config.EnableParallel] is set.
//
// # Logging
//
// The package is silent by default. Install a logger with [SetLogger] to
// receive debug records for each encoded text and rendered artifact.
package waveform
