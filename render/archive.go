package render

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/cespare/xxhash/v2"

	"github.com/tphakala/go-waveform-encoder/wave"
)

// Archive format constants.
const (
	archiveVersion    = 1
	bytesPerSample    = 8       // float64
	maxArchiveRawSize = 1 << 30 // Refuse to allocate more than 1 GiB on decode
)

var archiveMagic = [4]byte{'W', 'F', 'M', 'X'}

// Archive errors.
var (
	// ErrInvalidArchive indicates a malformed or unsupported archive.
	ErrInvalidArchive = errors.New("invalid waveform archive")

	// ErrChecksumMismatch indicates the payload digest does not match.
	ErrChecksumMismatch = errors.New("waveform archive checksum mismatch")
)

// archiveHeader is the fixed little-endian header preceding the payload.
//
// The raw (uncompressed) payload is one kind byte per row followed by all
// samples, row by row, as little-endian IEEE-754 float64. Digest is the
// xxHash64 of the raw payload.
type archiveHeader struct {
	Magic       [4]byte
	Version     uint8
	Compression uint8
	Reserved    uint16
	Rows        uint32
	Samples     uint32
	RawSize     uint32
	PayloadSize uint32
	Digest      uint64
}

// Archive serializes a matrix losslessly, preserving row kinds and the exact
// bits of every sample.
type Archive struct {
	compression Compression
}

// NewArchive creates an archive renderer using the given payload compression.
func NewArchive(c Compression) *Archive {
	return &Archive{compression: c}
}

// Compression returns the payload codec.
func (a *Archive) Compression() Compression {
	return a.compression
}

// Render writes m to w and returns the archive size in bytes.
func (a *Archive) Render(w io.Writer, m *wave.Matrix) (int64, error) {
	c, err := codecFor(a.compression)
	if err != nil {
		return 0, err
	}

	raw, err := marshalRaw(m)
	if err != nil {
		return 0, err
	}

	payload, err := c.compress(raw)
	if err != nil {
		return 0, err
	}

	hdr := archiveHeader{
		Magic:       archiveMagic,
		Version:     archiveVersion,
		Compression: uint8(a.compression),
		Rows:        uint32(m.Len()),
		Samples:     uint32(m.SampleCount),
		RawSize:     uint32(len(raw)),
		PayloadSize: uint32(len(payload)),
		Digest:      xxhash.Sum64(raw),
	}

	cw := &countingWriter{w: w}
	if err := binary.Write(cw, binary.LittleEndian, &hdr); err != nil {
		return cw.n, fmt.Errorf("failed to write archive header: %w", err)
	}
	if _, err := cw.Write(payload); err != nil {
		return cw.n, fmt.Errorf("failed to write archive payload: %w", err)
	}
	return cw.n, nil
}

// marshalRaw lays out kinds then samples.
func marshalRaw(m *wave.Matrix) ([]byte, error) {
	rows := m.Len()
	size := int64(rows) + int64(rows)*int64(m.SampleCount)*bytesPerSample
	if size > maxArchiveRawSize {
		return nil, fmt.Errorf("%w: matrix of %d bytes exceeds archive limit", ErrInvalidArchive, size)
	}

	raw := make([]byte, size)
	for i, row := range m.Rows() {
		raw[i] = byte(row.Kind)
	}
	off := rows
	for i, row := range m.Rows() {
		if len(row.Samples) != m.SampleCount {
			return nil, fmt.Errorf("%w: row %d has %d samples, want %d",
				ErrInvalidArchive, i, len(row.Samples), m.SampleCount)
		}
		for _, v := range row.Samples {
			binary.LittleEndian.PutUint64(raw[off:], math.Float64bits(v))
			off += bytesPerSample
		}
	}
	return raw, nil
}

// DecodeArchive reads an archive written by Archive.Render and verifies its digest.
func DecodeArchive(r io.Reader) (*wave.Matrix, error) {
	var hdr archiveHeader
	if err := binary.Read(r, binary.LittleEndian, &hdr); err != nil {
		return nil, fmt.Errorf("%w: reading header: %w", ErrInvalidArchive, err)
	}
	if hdr.Magic != archiveMagic {
		return nil, fmt.Errorf("%w: bad magic %q", ErrInvalidArchive, hdr.Magic[:])
	}
	if hdr.Version != archiveVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrInvalidArchive, hdr.Version)
	}

	wantRaw := uint64(hdr.Rows) + uint64(hdr.Rows)*uint64(hdr.Samples)*bytesPerSample
	if uint64(hdr.RawSize) != wantRaw || wantRaw > maxArchiveRawSize {
		return nil, fmt.Errorf("%w: raw size %d does not match %d rows of %d samples",
			ErrInvalidArchive, hdr.RawSize, hdr.Rows, hdr.Samples)
	}
	if hdr.PayloadSize > maxArchiveRawSize {
		return nil, fmt.Errorf("%w: payload size %d too large", ErrInvalidArchive, hdr.PayloadSize)
	}

	c, err := codecFor(Compression(hdr.Compression))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArchive, err)
	}

	payload := make([]byte, hdr.PayloadSize)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, fmt.Errorf("%w: reading payload: %w", ErrInvalidArchive, err)
	}

	raw := payload
	if len(payload) > 0 {
		raw, err = c.decompress(payload, int(hdr.RawSize))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidArchive, err)
		}
	}
	if len(raw) != int(hdr.RawSize) {
		return nil, fmt.Errorf("%w: payload decoded to %d bytes, want %d", ErrInvalidArchive, len(raw), hdr.RawSize)
	}
	if xxhash.Sum64(raw) != hdr.Digest {
		return nil, ErrChecksumMismatch
	}

	return unmarshalRaw(raw, int(hdr.Rows), int(hdr.Samples))
}

func unmarshalRaw(raw []byte, rows, samples int) (*wave.Matrix, error) {
	m := wave.NewMatrix(samples, rows)
	off := rows
	for i := range rows {
		kind := wave.Kind(raw[i])
		if !kind.Valid() {
			return nil, fmt.Errorf("%w: row %d has unknown kind %d", ErrInvalidArchive, i, raw[i])
		}
		s := make([]float64, samples)
		for j := range s {
			s[j] = math.Float64frombits(binary.LittleEndian.Uint64(raw[off:]))
			off += bytesPerSample
		}
		m.Append(wave.Waveform{Kind: kind, Samples: s})
	}
	return m, nil
}
