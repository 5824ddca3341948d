// Package encoding implements the column-level codecs: LEB128 varints,
// zigzag mapping, and the type-specialised encoders that turn a column of
// JSON values into a compact byte payload.
package encoding

import (
	"math"

	"github.com/fayez-kaabi/json-ultra-compress/errs"
)

const (
	// MaxVarintLen32 bounds a LEB128-encoded u32: five 7-bit groups.
	MaxVarintLen32 = 5
	// MaxVarintLen64 bounds a LEB128-encoded u64: ten 7-bit groups.
	MaxVarintLen64 = 10
)

// AppendUvarint appends v as LEB128: 7-bit groups, least significant first,
// MSB set on every byte except the last.
func AppendUvarint(dst []byte, v uint64) []byte {
	for v >= 0x80 {
		dst = append(dst, byte(v)|0x80)
		v >>= 7
	}

	return append(dst, byte(v))
}

// Uvarint decodes a LEB128 u64 from the start of data, returning the value
// and the number of bytes consumed. Fails with ErrTruncatedFrame when the
// sequence runs off the buffer and ErrVarintOverflow past ten bytes.
func Uvarint(data []byte) (uint64, int, error) {
	var v uint64
	var shift uint
	for i := 0; i < len(data); i++ {
		if i >= MaxVarintLen64 {
			return 0, 0, errs.ErrVarintOverflow
		}
		b := data[i]
		if b < 0x80 {
			if i == MaxVarintLen64-1 && b > 1 {
				return 0, 0, errs.ErrVarintOverflow
			}

			return v | uint64(b)<<shift, i + 1, nil
		}
		v |= uint64(b&0x7F) << shift
		shift += 7
	}

	return 0, 0, errs.ErrTruncatedFrame
}

// Uvarint32 decodes a LEB128 u32: at most five bytes, value at most 2^32-1.
func Uvarint32(data []byte) (uint32, int, error) {
	var v uint64
	var shift uint
	for i := 0; i < len(data); i++ {
		if i >= MaxVarintLen32 {
			return 0, 0, errs.ErrVarintOverflow
		}
		b := data[i]
		if b < 0x80 {
			v |= uint64(b) << shift
			if v > math.MaxUint32 {
				return 0, 0, errs.ErrVarintOverflow
			}

			return uint32(v), i + 1, nil
		}
		v |= uint64(b&0x7F) << shift
		shift += 7
	}

	return 0, 0, errs.ErrTruncatedFrame
}

// Zigzag maps a signed integer onto the unsigned line so small magnitudes of
// either sign encode to short varints: 0→0, -1→1, 1→2, -2→3.
func Zigzag(n int64) uint64 {
	return uint64(n<<1) ^ uint64(n>>63)
}

// Unzigzag inverts Zigzag.
func Unzigzag(u uint64) int64 {
	return int64(u>>1) ^ -int64(u&1)
}
