package render

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression identifies the codec applied to an archive payload.
type Compression uint8

const (
	// CompressionNone stores the payload as is.
	CompressionNone Compression = iota

	// CompressionZstd uses Zstandard.
	CompressionZstd

	// CompressionS2 uses S2, a Snappy extension.
	CompressionS2

	// CompressionLZ4 uses LZ4 block compression.
	CompressionLZ4
)

var compressionNames = [...]string{
	CompressionNone: "none",
	CompressionZstd: "zstd",
	CompressionS2:   "s2",
	CompressionLZ4:  "lz4",
}

// ErrUnknownCompression is returned for an unrecognized compression type.
var ErrUnknownCompression = errors.New("unknown compression type")

// String returns the lowercase codec name.
func (c Compression) String() string {
	if int(c) < len(compressionNames) {
		return compressionNames[c]
	}
	return fmt.Sprintf("compression(%d)", uint8(c))
}

// ParseCompression maps a codec name to its Compression value.
func ParseCompression(name string) (Compression, error) {
	for i, n := range compressionNames {
		if strings.EqualFold(name, n) {
			return Compression(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCompression, name)
}

// codec compresses archive payloads. Decompress receives the exact raw size
// recorded in the archive header.
type codec interface {
	compress(data []byte) ([]byte, error)
	decompress(data []byte, rawSize int) ([]byte, error)
}

func codecFor(c Compression) (codec, error) {
	switch c {
	case CompressionNone:
		return noopCodec{}, nil
	case CompressionZstd:
		return zstdCodec{}, nil
	case CompressionS2:
		return s2Codec{}, nil
	case CompressionLZ4:
		return lz4Codec{}, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownCompression, uint8(c))
	}
}

type noopCodec struct{}

func (noopCodec) compress(data []byte) ([]byte, error) { return data, nil }

func (noopCodec) decompress(data []byte, _ int) ([]byte, error) { return data, nil }

// zstdEncoderPool and zstdDecoderPool hold warmed-up coders; EncodeAll and
// DecodeAll are stateless so pooled instances can be shared.
var zstdEncoderPool = sync.Pool{
	New: func() any {
		encoder, err := zstd.NewWriter(nil,
			zstd.WithEncoderLevel(zstd.SpeedDefault),
			zstd.WithEncoderCRC(false),
		)
		if err != nil {
			panic(fmt.Sprintf("failed to create zstd encoder for pool: %v", err))
		}
		return encoder
	},
}

var zstdDecoderPool = sync.Pool{
	New: func() any {
		decoder, err := zstd.NewReader(nil,
			zstd.WithDecoderConcurrency(1),
			zstd.WithDecoderLowmem(false),
		)
		if err != nil {
			panic(fmt.Sprintf("failed to create zstd decoder for pool: %v", err))
		}
		return decoder
	},
}

type zstdCodec struct{}

func (zstdCodec) compress(data []byte) ([]byte, error) {
	encoder := zstdEncoderPool.Get().(*zstd.Encoder)
	defer zstdEncoderPool.Put(encoder)

	return encoder.EncodeAll(data, nil), nil
}

func (zstdCodec) decompress(data []byte, rawSize int) ([]byte, error) {
	decoder := zstdDecoderPool.Get().(*zstd.Decoder)
	defer zstdDecoderPool.Put(decoder)

	out, err := decoder.DecodeAll(data, make([]byte, 0, rawSize))
	if err != nil {
		return nil, fmt.Errorf("zstd decompression failed: %w", err)
	}
	return out, nil
}

type s2Codec struct{}

func (s2Codec) compress(data []byte) ([]byte, error) {
	return s2.Encode(nil, data), nil
}

func (s2Codec) decompress(data []byte, _ int) ([]byte, error) {
	out, err := s2.Decode(nil, data)
	if err != nil {
		return nil, fmt.Errorf("s2 decompression failed: %w", err)
	}
	return out, nil
}

// lz4CompressorPool pools lz4.Compressor instances, which keep a hash table
// between calls.
var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

type lz4Codec struct{}

func (lz4Codec) compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	dst := make([]byte, lz4.CompressBlockBound(len(data)))

	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	n, err := lc.CompressBlock(data, dst)
	if err != nil {
		return nil, fmt.Errorf("lz4 compression failed: %w", err)
	}
	return dst[:n], nil
}

func (lz4Codec) decompress(data []byte, rawSize int) ([]byte, error) {
	if rawSize == 0 {
		return nil, nil
	}
	out := make([]byte, rawSize)
	n, err := lz4.UncompressBlock(data, out)
	if err != nil {
		return nil, fmt.Errorf("lz4 decompression failed: %w", err)
	}
	return out[:n], nil
}
