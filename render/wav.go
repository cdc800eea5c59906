package render

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/tphakala/go-waveform-encoder/wave"
)

// WAV output constants.
const (
	// DefaultSampleRate is the playback rate of sonified matrices.
	DefaultSampleRate = 8000

	wavBitDepth    = 16
	wavChannels    = 1
	wavFormatPCM   = 1
	maxInt16       = 32767.0
	minSampleRate  = 1000
	maxSampleRate  = 384000
	wavInitialSize = 4096
)

// ErrInvalidSampleRate is returned for sample rates outside 1 kHz-384 kHz.
var ErrInvalidSampleRate = errors.New("invalid WAV sample rate")

// WAV sonifies a matrix: rows are played back to back in matrix order, all
// scaled by the matrix peak so relative amplitudes between rows survive.
type WAV struct {
	sampleRate int
}

// NewWAV creates a WAV renderer. A zero sample rate selects DefaultSampleRate.
func NewWAV(sampleRate int) *WAV {
	if sampleRate == 0 {
		sampleRate = DefaultSampleRate
	}
	return &WAV{sampleRate: sampleRate}
}

// SampleRate returns the output sample rate in Hz.
func (r *WAV) SampleRate() int {
	return r.sampleRate
}

// Render writes m as a 16-bit mono PCM WAV file to w.
func (r *WAV) Render(w io.Writer, m *wave.Matrix) (int64, error) {
	if r.sampleRate < minSampleRate || r.sampleRate > maxSampleRate {
		return 0, fmt.Errorf("%w: %d Hz", ErrInvalidSampleRate, r.sampleRate)
	}

	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: wavChannels, SampleRate: r.sampleRate},
		Data:           pcm16(m),
		SourceBitDepth: wavBitDepth,
	}

	out := &memFile{buf: make([]byte, 0, wavInitialSize)}
	enc := wav.NewEncoder(out, r.sampleRate, wavBitDepth, wavChannels, wavFormatPCM)
	if err := enc.Write(buf); err != nil {
		return 0, fmt.Errorf("failed to write PCM data: %w", err)
	}
	if err := enc.Close(); err != nil {
		return 0, fmt.Errorf("failed to finalize WAV header: %w", err)
	}

	n, err := w.Write(out.buf)
	return int64(n), err
}

// pcm16 flattens the matrix rows into 16-bit integer samples.
func pcm16(m *wave.Matrix) []int {
	data := make([]int, 0, m.Len()*m.SampleCount)
	peak := m.Peak()
	for _, row := range m.Rows() {
		for _, v := range row.Samples {
			if peak > 0 {
				v /= peak
			}
			data = append(data, int(math.Round(v*maxInt16)))
		}
	}
	return data
}

// memFile is an in-memory io.WriteSeeker. The WAV encoder seeks back to
// patch chunk sizes once the data length is known.
type memFile struct {
	buf []byte
	pos int
}

func (f *memFile) Write(p []byte) (int, error) {
	end := f.pos + len(p)
	if end > len(f.buf) {
		if end > cap(f.buf) {
			grown := make([]byte, end, max(end, 2*cap(f.buf)))
			copy(grown, f.buf)
			f.buf = grown
		} else {
			f.buf = f.buf[:end]
		}
	}
	copy(f.buf[f.pos:], p)
	f.pos = end
	return len(p), nil
}

func (f *memFile) Seek(offset int64, whence int) (int64, error) {
	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = int64(f.pos) + offset
	case io.SeekEnd:
		abs = int64(len(f.buf)) + offset
	default:
		return 0, errors.New("memFile: invalid whence")
	}
	if abs < 0 {
		return 0, errors.New("memFile: negative position")
	}
	f.pos = int(abs)
	return abs, nil
}
