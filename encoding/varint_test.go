package encoding

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fayez-kaabi/json-ultra-compress/errs"
)

func TestAppendUvarint_KnownEncodings(t *testing.T) {
	tests := []struct {
		v    uint64
		want []byte
	}{
		{0, []byte{0x00}},
		{1, []byte{0x01}},
		{127, []byte{0x7F}},
		{128, []byte{0x80, 0x01}},
		{300, []byte{0xAC, 0x02}},
		{16384, []byte{0x80, 0x80, 0x01}},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, AppendUvarint(nil, tt.v), "value %d", tt.v)
	}
}

func TestUvarint_RoundTrip(t *testing.T) {
	for _, v := range []uint64{0, 1, 127, 128, 300, 1 << 20, 1 << 35, math.MaxUint64} {
		buf := AppendUvarint(nil, v)
		got, n, err := Uvarint(buf)
		require.NoError(t, err)
		require.Equal(t, len(buf), n)
		require.Equal(t, v, got)
	}
}

func TestUvarint_Truncated(t *testing.T) {
	buf := AppendUvarint(nil, 1<<20)
	_, _, err := Uvarint(buf[:2])
	require.ErrorIs(t, err, errs.ErrTruncatedFrame)

	_, _, err = Uvarint(nil)
	require.ErrorIs(t, err, errs.ErrTruncatedFrame)
}

func TestUvarint_Overflow(t *testing.T) {
	// Ten continuation bytes push the terminator to an eleventh byte, past
	// the 10-byte bound.
	over := []byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x01}
	_, _, err := Uvarint(over)
	require.ErrorIs(t, err, errs.ErrVarintOverflow)

	// Ten bytes whose final group pushes past 64 bits.
	tooBig := []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0x02}
	_, _, err = Uvarint(tooBig)
	require.ErrorIs(t, err, errs.ErrVarintOverflow)
}

func TestUvarint32_RoundTrip(t *testing.T) {
	for _, v := range []uint32{0, 1, 127, 128, 300, math.MaxUint32} {
		buf := AppendUvarint(nil, uint64(v))
		got, n, err := Uvarint32(buf)
		require.NoError(t, err)
		require.Equal(t, len(buf), n)
		require.Equal(t, v, got)
	}
}

func TestUvarint32_RejectsWideValues(t *testing.T) {
	// 2^32 encodes in five bytes but exceeds the u32 domain.
	_, _, err := Uvarint32(AppendUvarint(nil, 1<<32))
	require.ErrorIs(t, err, errs.ErrVarintOverflow)

	// A six-byte sequence exceeds the five-byte cap.
	_, _, err = Uvarint32(AppendUvarint(nil, 1<<40))
	require.ErrorIs(t, err, errs.ErrVarintOverflow)

	_, _, err = Uvarint32([]byte{0x80})
	require.ErrorIs(t, err, errs.ErrTruncatedFrame)
}

func TestZigzag(t *testing.T) {
	tests := []struct {
		n  int64
		zz uint64
	}{
		{0, 0},
		{-1, 1},
		{1, 2},
		{-2, 3},
		{2, 4},
		{math.MaxInt64, math.MaxUint64 - 1},
		{math.MinInt64, math.MaxUint64},
	}
	for _, tt := range tests {
		require.Equal(t, tt.zz, Zigzag(tt.n), "zigzag(%d)", tt.n)
		require.Equal(t, tt.n, Unzigzag(tt.zz), "unzigzag(%d)", tt.zz)
	}
}
