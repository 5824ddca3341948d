package encoding

import (
	"github.com/fayez-kaabi/json-ultra-compress/errs"
	"github.com/fayez-kaabi/json-ultra-compress/internal/pool"
	"github.com/fayez-kaabi/json-ultra-compress/jsonval"
)

// appendRawJSON writes each row as varint(byteLen) || canonical JSON bytes.
// Null rows serialise as the literal "null".
func appendRawJSON(dst []byte, values []jsonval.Value) []byte {
	scratch := pool.GetFrameBuffer()
	defer pool.PutFrameBuffer(scratch)

	for _, v := range values {
		scratch.B = jsonval.AppendCanonical(scratch.B[:0], v)
		dst = AppendUvarint(dst, uint64(scratch.Len()))
		dst = append(dst, scratch.B...)
	}

	return dst
}

func decodeRawJSON(payload []byte, rows int) ([]jsonval.Value, error) {
	values := make([]jsonval.Value, rows)
	offset := 0
	for i := 0; i < rows; i++ {
		byteLen, n, err := Uvarint32(payload[offset:])
		if err != nil {
			return nil, err
		}
		offset += n
		if offset+int(byteLen) > len(payload) {
			return nil, errs.ErrTruncatedFrame
		}
		v, err := jsonval.Parse(payload[offset : offset+int(byteLen)])
		if err != nil {
			return nil, errs.ErrFrameCorrupt
		}
		values[i] = v
		offset += int(byteLen)
	}

	return values, nil
}
