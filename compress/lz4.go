package compress

import (
	"errors"
	"fmt"
	"sync"

	"github.com/pierrec/lz4/v4"
)

// lz4CompressorPool pools lz4.Compressor instances; the compressor keeps
// internal state that benefits from reuse.
var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

// LZ4Compressor is the optional extra back-end, registered with the hybrid
// selector at runtime rather than being part of the mandatory pair.
//
// LZ4 blocks do not embed their decompressed length, so decompression wants
// DecompressLen wherever the caller knows the original size; the windowed
// envelope always records it. Plain Decompress exists for the solid-payload
// probe, where no size survives.
type LZ4Compressor struct{}

var (
	_ Codec             = (*LZ4Compressor)(nil)
	_ SizedDecompressor = (*LZ4Compressor)(nil)
)

// NewLZ4Compressor creates a new LZ4 block codec.
func NewLZ4Compressor() LZ4Compressor {
	return LZ4Compressor{}
}

// Compress compresses the input data as a single LZ4 block.
func (c LZ4Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	dst := make([]byte, lz4.CompressBlockBound(len(data)))

	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	n, err := lc.CompressBlock(data, dst)
	if err != nil {
		return nil, err
	}

	return dst[:n], nil
}

// DecompressLen decompresses an LZ4 block whose original size is known,
// allocating the output buffer exactly once.
func (c LZ4Compressor) DecompressLen(data []byte, originalLen int) ([]byte, error) {
	if len(data) == 0 && originalLen == 0 {
		return nil, nil
	}

	buf := make([]byte, originalLen)
	n, err := lz4.UncompressBlock(data, buf)
	if err != nil {
		return nil, err
	}
	if n != originalLen {
		return nil, fmt.Errorf("lz4: block decoded to %d bytes, recorded size is %d", n, originalLen)
	}

	return buf[:n], nil
}

// Decompress restores an LZ4 block of unknown decompressed length. Only
// solid payloads reach this path (windowed payloads carry their size), so
// sizing starts from the windowed partition size or twice the compressed
// length, whichever is larger, and widens geometrically up to maxBlockSize
// so corrupted input cannot demand unbounded memory.
func (c LZ4Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	for size := max(2*len(data), WindowSize); size <= maxBlockSize; size *= 4 {
		buf := make([]byte, size)
		n, err := lz4.UncompressBlock(data, buf)
		if err == nil {
			return buf[:n], nil
		}
		if !errors.Is(err, lz4.ErrInvalidSourceShortBuffer) {
			return nil, err
		}
	}

	return nil, lz4.ErrInvalidSourceShortBuffer
}
