//go:build nobuild

package compress

import (
	"fmt"

	"github.com/valyala/gozstd"
)

var _ SizedDecompressor = (*ZstdCompressor)(nil)

// Compress compresses data with the cgo Zstandard bindings.
func (c ZstdCompressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return gozstd.CompressLevel(nil, data, 3), nil
}

// Decompress restores data with the cgo Zstandard bindings.
func (c ZstdCompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return gozstd.Decompress(nil, data)
}

// DecompressLen restores data whose decompressed length is known, seeding
// the destination with exactly that capacity.
func (c ZstdCompressor) DecompressLen(data []byte, originalLen int) ([]byte, error) {
	if len(data) == 0 && originalLen == 0 {
		return nil, nil
	}

	out, err := gozstd.Decompress(make([]byte, 0, originalLen), data)
	if err != nil {
		return nil, err
	}
	if len(out) != originalLen {
		return nil, fmt.Errorf("zstd: frame decoded to %d bytes, recorded size is %d", len(out), originalLen)
	}

	return out, nil
}
