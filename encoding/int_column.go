package encoding

import (
	"github.com/fayez-kaabi/json-ultra-compress/jsonval"
)

// Integer columns share one sentinel convention: each row stores
// varint(zigzag(x)+1), and the reserved value 0 marks a null row. The +1
// shift keeps every real integer, positive or negative, non-zero on the wire.

func appendNullable(dst []byte, v int64) []byte {
	return AppendUvarint(dst, Zigzag(v)+1)
}

const nullSentinel = 0

// INT_VARINT: each row is independent.

func appendIntVarint(dst []byte, values []jsonval.Value) []byte {
	for _, v := range values {
		if n, ok := v.IntVal(); ok {
			dst = appendNullable(dst, n)
		} else {
			dst = AppendUvarint(dst, nullSentinel)
		}
	}

	return dst
}

func decodeIntVarint(payload []byte, rows int) ([]jsonval.Value, error) {
	values := make([]jsonval.Value, rows)
	offset := 0
	for i := 0; i < rows; i++ {
		u, n, err := Uvarint(payload[offset:])
		if err != nil {
			return nil, err
		}
		offset += n
		if u == nullSentinel {
			values[i] = jsonval.Null()
		} else {
			values[i] = jsonval.Int(Unzigzag(u - 1))
		}
	}

	return values, nil
}

// DELTA_ZIGZAG: each non-null row stores its difference from the previous
// non-null value; prev starts at zero, so the first non-null row carries its
// absolute value. Null rows leave prev untouched.

func appendDeltaZigzag(dst []byte, values []jsonval.Value) []byte {
	var prev int64
	for _, v := range values {
		if n, ok := v.IntVal(); ok {
			dst = appendNullable(dst, n-prev)
			prev = n
		} else {
			dst = AppendUvarint(dst, nullSentinel)
		}
	}

	return dst
}

func decodeDeltaZigzag(payload []byte, rows int) ([]jsonval.Value, error) {
	values := make([]jsonval.Value, rows)
	var prev int64
	offset := 0
	for i := 0; i < rows; i++ {
		u, n, err := Uvarint(payload[offset:])
		if err != nil {
			return nil, err
		}
		offset += n
		if u == nullSentinel {
			values[i] = jsonval.Null()
			continue
		}
		prev += Unzigzag(u - 1)
		values[i] = jsonval.Int(prev)
	}

	return values, nil
}

// TIME_DOD: delta-of-delta for timestamp-like integer runs. The first
// non-null row carries its absolute value, the second its delta, and later
// rows the difference between consecutive deltas. Null rows leave both prev
// and prevDelta untouched. The encoder here exists so the decoder can be
// exercised; column selection never picks this type.

// AppendTimeDOD encodes values (nulls included) as a delta-of-delta payload
// without the leading type tag.
func AppendTimeDOD(dst []byte, values []jsonval.Value) []byte {
	var prev, prevDelta int64
	seq := 0
	for _, v := range values {
		n, ok := v.IntVal()
		if !ok {
			dst = AppendUvarint(dst, nullSentinel)
			continue
		}
		seq++
		switch seq {
		case 1:
			dst = appendNullable(dst, n)
		case 2:
			prevDelta = n - prev
			dst = appendNullable(dst, prevDelta)
		default:
			delta := n - prev
			dst = appendNullable(dst, delta-prevDelta)
			prevDelta = delta
		}
		prev = n
	}

	return dst
}

func decodeTimeDOD(payload []byte, rows int) ([]jsonval.Value, error) {
	values := make([]jsonval.Value, rows)
	var prev, prevDelta int64
	seq := 0
	offset := 0
	for i := 0; i < rows; i++ {
		u, n, err := Uvarint(payload[offset:])
		if err != nil {
			return nil, err
		}
		offset += n
		if u == nullSentinel {
			values[i] = jsonval.Null()
			continue
		}
		seq++
		decoded := Unzigzag(u - 1)
		switch seq {
		case 1:
			prev = decoded
		case 2:
			prevDelta = decoded
			prev += prevDelta
		default:
			prevDelta += decoded
			prev += prevDelta
		}
		values[i] = jsonval.Int(prev)
	}

	return values, nil
}
