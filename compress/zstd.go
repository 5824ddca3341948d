package compress

// ZstdCompressor is the "dense" back-end: Zstandard trades compression speed
// for ratio, which suits archival of columnar frame bodies where the same
// key and enum bytes repeat across windows.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd codec with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
