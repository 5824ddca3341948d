// Package compress provides the generic entropy back-ends and the hybrid
// selector that chooses among them.
//
// Three block codecs are available behind one Codec interface: Zstandard
// ("dense", wire tag 0), S2 ("fast", wire tag 1) and LZ4 ("lz4", wire tag 2,
// registered with the selector at runtime), plus an identity codec for
// debugging. The Selector implements the adaptive policy: it compresses the
// whole input once per back-end (solid mode), partitions the input into
// 64 KiB windows and picks a back-end per window by compressing a 4 KiB
// scout prefix (windowed mode), then emits whichever result is smaller.
// Windowed payloads carry a self-describing 'HYB1' envelope; solid payloads
// are raw back-end bytes recognised on decode by fixed-order probing.
//
// All codecs treat an empty input as an empty output in both directions.
package compress
