package bitmap

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBitmap_SetGet(t *testing.T) {
	b := New(20)
	require.Equal(t, 20, b.Len())
	require.Equal(t, 3, b.ByteLen())

	b.Set(0, true)
	b.Set(7, true)
	b.Set(8, true)
	b.Set(19, true)

	require.True(t, b.Get(0))
	require.True(t, b.Get(7))
	require.True(t, b.Get(8))
	require.True(t, b.Get(19))
	require.False(t, b.Get(1))
	require.False(t, b.Get(18))
	require.Equal(t, 4, b.OnesCount())

	b.Set(7, false)
	require.False(t, b.Get(7))
	require.Equal(t, 3, b.OnesCount())
}

func TestBitmap_LSBFirstLayout(t *testing.T) {
	b := New(16)
	b.Set(0, true)
	b.Set(3, true)
	b.Set(9, true)

	// Bit 0 and 3 in byte 0 (LSB-first), bit 9 in byte 1.
	require.Equal(t, []byte{0b0000_1001, 0b0000_0010}, b.Bytes())
}

func TestBitmap_Append(t *testing.T) {
	b := New(0)
	for i := 0; i < 10; i++ {
		b.Append(i%3 == 0)
	}
	require.Equal(t, 10, b.Len())
	require.Equal(t, 2, b.ByteLen())
	for i := 0; i < 10; i++ {
		require.Equal(t, i%3 == 0, b.Get(i), "bit %d", i)
	}
}

func TestFromBytes(t *testing.T) {
	buf := []byte{0b0000_0101, 0b0000_0001}
	b, ok := FromBytes(buf, 9)
	require.True(t, ok)
	require.True(t, b.Get(0))
	require.False(t, b.Get(1))
	require.True(t, b.Get(2))
	require.True(t, b.Get(8))

	_, ok = FromBytes([]byte{0x00}, 9)
	require.False(t, ok)
}

func TestBitmap_OutOfRangePanics(t *testing.T) {
	b := New(4)
	require.Panics(t, func() { b.Get(4) })
	require.Panics(t, func() { b.Set(-1, true) })
}
