//go:build !nobuild

package compress

import (
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
)

// Both directions pool their workers: klauspost's encoder and decoder are
// built for reuse and run allocation-free once warm, and frame bodies arrive
// one after another on the encode and decode paths alike.
//
// The decoder caps its memory at maxBlockSize so a corrupted solid body
// declaring an absurd frame size fails instead of exhausting memory;
// windowed payloads never get near the cap because every window is at most
// WindowSize bytes decompressed.
var (
	zstdEncoderPool = sync.Pool{
		New: func() any {
			encoder, err := zstd.NewWriter(nil,
				zstd.WithEncoderLevel(zstd.SpeedDefault),
				zstd.WithEncoderConcurrency(1),
				zstd.WithEncoderCRC(false), // the container CRC already covers the body
			)
			if err != nil {
				// Never happens with valid options.
				panic(fmt.Sprintf("zstd encoder pool: %v", err))
			}
			return encoder
		},
	}

	zstdDecoderPool = sync.Pool{
		New: func() any {
			decoder, err := zstd.NewReader(nil,
				zstd.WithDecoderConcurrency(1),
				zstd.WithDecoderMaxMemory(maxBlockSize),
			)
			if err != nil {
				panic(fmt.Sprintf("zstd decoder pool: %v", err))
			}
			return decoder
		},
	}
)

var _ SizedDecompressor = (*ZstdCompressor)(nil)

// Compress compresses data with Zstandard using a pooled encoder.
func (c ZstdCompressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	encoder := zstdEncoderPool.Get().(*zstd.Encoder)
	defer zstdEncoderPool.Put(encoder)

	// EncodeAll is stateless, safe with a pooled encoder.
	return encoder.EncodeAll(data, nil), nil
}

// Decompress restores Zstd-compressed data of unknown length using a pooled
// decoder; the zstd frame header sizes the output itself.
func (c ZstdCompressor) Decompress(data []byte) ([]byte, error) {
	return c.decompress(data, nil)
}

// DecompressLen restores Zstd-compressed data whose decompressed length is
// known, handing DecodeAll a buffer of exactly that capacity so the output
// is produced without growth.
func (c ZstdCompressor) DecompressLen(data []byte, originalLen int) ([]byte, error) {
	out, err := c.decompress(data, make([]byte, 0, originalLen))
	if err != nil {
		return nil, err
	}
	if len(out) != originalLen {
		return nil, fmt.Errorf("zstd: frame decoded to %d bytes, recorded size is %d", len(out), originalLen)
	}

	return out, nil
}

func (c ZstdCompressor) decompress(data, dst []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	decoder := zstdDecoderPool.Get().(*zstd.Decoder)
	defer zstdDecoderPool.Put(decoder)

	// DecodeAll is stateless; a failed call leaves the decoder reusable.
	out, err := decoder.DecodeAll(data, dst)
	if err != nil {
		return nil, fmt.Errorf("zstd: decompress body: %w", err)
	}

	return out, nil
}
