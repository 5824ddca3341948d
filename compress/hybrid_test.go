package compress

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fayez-kaabi/json-ultra-compress/errs"
	"github.com/fayez-kaabi/json-ultra-compress/format"
)

func repetitiveInput(n int) []byte {
	return bytes.Repeat([]byte(`{"ts":1700000000,"level":"info","msg":"tick"}`+"\n"), n)
}

func TestSelector_RoundTrip_Small(t *testing.T) {
	s := NewSelector()
	input := repetitiveInput(50)

	payload, stats, err := s.Compress(input)
	require.NoError(t, err)
	require.Equal(t, int64(len(input)), stats.OriginalSize)
	require.Equal(t, int64(len(payload)), stats.CompressedSize)

	restored, err := NewSelector().Decompress(payload)
	require.NoError(t, err)
	require.Equal(t, input, restored)
}

func TestSelector_RoundTrip_MultiWindow(t *testing.T) {
	s := NewSelectorWithLZ4()
	input := repetitiveInput(10_000) // spans several 64 KiB windows

	payload, stats, err := s.Compress(input)
	require.NoError(t, err)
	require.Less(t, len(payload), len(input))
	require.Positive(t, stats.CompressedSize)

	restored, err := NewSelectorWithLZ4().Decompress(payload)
	require.NoError(t, err)
	require.Equal(t, input, restored)
}

func TestSelector_EmptyInput(t *testing.T) {
	s := NewSelector()
	payload, stats, err := s.Compress(nil)
	require.NoError(t, err)
	require.Empty(t, payload)
	require.Zero(t, stats.OriginalSize)

	restored, err := s.Decompress(nil)
	require.NoError(t, err)
	require.Empty(t, restored)
}

func TestSelector_SolidOutputHasNoEnvelope(t *testing.T) {
	// Highly repetitive input coalesces: one back-end dominates every
	// window, so the solid result wins and carries no inner magic.
	s := NewSelector()
	payload, stats, err := s.Compress(repetitiveInput(5_000))
	require.NoError(t, err)
	require.NotEqual(t, format.HybridMagic, string(payload[:4]))
	require.Zero(t, stats.WindowCount)
	require.Contains(t, []format.CodecType{format.CodecDense, format.CodecFast, format.CodecLZ4}, stats.Codec)
}

func TestSelector_WindowedEnvelopeParses(t *testing.T) {
	// Force a windowed envelope through the private API to pin the layout.
	s := NewSelector()
	input := repetitiveInput(4_000)

	envelope, windows := s.windowed(input, bytes.Repeat([]byte{0xFF}, len(input)*2))
	require.NotNil(t, envelope)
	require.Positive(t, windows)
	require.Equal(t, format.HybridMagic, string(envelope[:4]))
	require.Equal(t, uint32(windows), engine.Uint32(envelope[4:8]))

	restored, err := s.Decompress(envelope)
	require.NoError(t, err)
	require.Equal(t, input, restored)
}

func TestSelector_LegacySolidPrefix(t *testing.T) {
	input := repetitiveInput(10)
	compressed, err := NewZstdCompressor().Compress(input)
	require.NoError(t, err)

	legacy := append([]byte(format.SolidMagic), byte(format.TagDense))
	legacy = append(legacy, compressed...)

	restored, err := NewSelector().Decompress(legacy)
	require.NoError(t, err)
	require.Equal(t, input, restored)
}

func TestSelector_LegacySolidUnknownTag(t *testing.T) {
	legacy := append([]byte(format.SolidMagic), 99)
	_, err := NewSelector().Decompress(legacy)
	require.ErrorIs(t, err, errs.ErrNoBackend)
}

func TestSelector_DecompressProbesFixedOrder(t *testing.T) {
	input := repetitiveInput(100)

	// A raw s2 payload has no magic; probing must still find it.
	compressed, err := NewS2Compressor().Compress(input)
	require.NoError(t, err)

	restored, err := NewSelector().Decompress(compressed)
	require.NoError(t, err)
	require.Equal(t, input, restored)
}

func TestSelector_DecompressRejectsGarbage(t *testing.T) {
	// Not a HYB1 envelope, not a zstd frame, and an s2 stream whose first
	// copy operand points before the output start: every probe fails.
	garbage := append([]byte("????"), make([]byte, 60)...)

	_, err := NewSelector().Decompress(garbage)
	require.ErrorIs(t, err, errs.ErrNoBackend)
}

func TestSelector_CorruptEnvelope(t *testing.T) {
	s := NewSelector()
	for _, data := range [][]byte{
		[]byte("HYB1"),
		append([]byte("HYB1"), 0xFF, 0xFF, 0xFF, 0xFF),
		append(append([]byte("HYB1"), engine.AppendUint32(nil, 1)...), 0, 1, 0, 0, 0, 200, 0, 0, 0),
	} {
		_, err := s.Decompress(data)
		require.Error(t, err, "input %v", data)
	}
}

func TestSelector_IncompressibleInput(t *testing.T) {
	noise := make([]byte, 3*WindowSize+777)
	_, err := rand.Read(noise)
	require.NoError(t, err)

	s := NewSelectorWithLZ4()
	payload, _, err := s.Compress(noise)
	require.NoError(t, err)

	restored, err := NewSelectorWithLZ4().Decompress(payload)
	require.NoError(t, err)
	require.Equal(t, noise, restored)
}

func TestStats(t *testing.T) {
	s := Stats{OriginalSize: 1000, CompressedSize: 250}
	require.InDelta(t, 0.25, s.Ratio(), 1e-9)
	require.InDelta(t, 75.0, s.SpaceSavings(), 1e-9)

	require.Zero(t, Stats{}.Ratio())
}
