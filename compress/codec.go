package compress

import (
	"fmt"

	"github.com/fayez-kaabi/json-ultra-compress/format"
)

// Compressor compresses one opaque byte payload.
//
// Memory management:
//   - Returned slice is owned by the caller; it is newly allocated except
//     for the identity codec, which returns the input slice itself
//   - Input slice is not modified
//   - Internal buffers may be reused for efficiency
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores a payload produced by the matching Compressor.
//
// Implementations validate the data format and return an error if the data
// is corrupted or uses an incompatible format. All implementations in this
// package are safe for concurrent use.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both directions. Back-ends register as Codecs.
type Codec interface {
	Compressor
	Decompressor
}

// maxBlockSize caps how much memory a single decompressed payload may claim
// when its length is not recorded; corrupted solid bodies fail instead of
// exhausting memory.
const maxBlockSize = 1 << 30 // 1GiB

// SizedDecompressor is implemented by back-ends that can exploit a known
// decompressed length. Windowed payloads record each window's original size,
// so the hybrid decoder can size the output buffer exactly once instead of
// guessing; block formats without an embedded length (LZ4) need this to
// avoid retry loops, and the others use it to skip buffer growth.
type SizedDecompressor interface {
	// DecompressLen decompresses data whose decompressed length is known to
	// be originalLen. A payload that decodes to any other length is an
	// error.
	DecompressLen(data []byte, originalLen int) ([]byte, error)
}

// CreateCodec is a factory for the named back-end. The target string only
// feeds error messages.
func CreateCodec(codec format.CodecType, target string) (Codec, error) {
	switch codec {
	case format.CodecIdentity:
		return NewNoOpCompressor(), nil
	case format.CodecDense:
		return NewZstdCompressor(), nil
	case format.CodecFast:
		return NewS2Compressor(), nil
	case format.CodecLZ4:
		return NewLZ4Compressor(), nil
	default:
		return nil, fmt.Errorf("invalid %s codec: %s", target, codec)
	}
}

var builtinCodecs = map[format.CodecType]Codec{
	format.CodecIdentity: NewNoOpCompressor(),
	format.CodecDense:    NewZstdCompressor(),
	format.CodecFast:     NewS2Compressor(),
	format.CodecLZ4:      NewLZ4Compressor(),
}

// GetCodec retrieves a built-in Codec by name. Hybrid is not a Codec; it is
// handled by the Selector.
func GetCodec(codec format.CodecType) (Codec, error) {
	if c, ok := builtinCodecs[codec]; ok {
		return c, nil
	}

	return nil, fmt.Errorf("unsupported codec: %s", codec)
}

// CodecForTag maps a windowed-payload wire tag to its back-end.
func CodecForTag(tag format.CodecTag) (Codec, bool) {
	switch tag {
	case format.TagDense:
		return NewZstdCompressor(), true
	case format.TagFast:
		return NewS2Compressor(), true
	case format.TagLZ4:
		return NewLZ4Compressor(), true
	default:
		return nil, false
	}
}

// NameForTag maps a wire tag to the back-end's codec name.
func NameForTag(tag format.CodecTag) format.CodecType {
	switch tag {
	case format.TagDense:
		return format.CodecDense
	case format.TagFast:
		return format.CodecFast
	case format.TagLZ4:
		return format.CodecLZ4
	default:
		return ""
	}
}
