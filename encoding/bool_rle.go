package encoding

import (
	"github.com/fayez-kaabi/json-ultra-compress/errs"
	"github.com/fayez-kaabi/json-ultra-compress/jsonval"
)

// BOOL_RLE run codes.
const (
	boolCodeNull  = 0
	boolCodeFalse = 1
	boolCodeTrue  = 2
)

func boolCode(v jsonval.Value) byte {
	switch {
	case v.IsNull():
		return boolCodeNull
	case v.BoolVal():
		return boolCodeTrue
	default:
		return boolCodeFalse
	}
}

// appendBoolRLE writes repeated (code:u8 || varint(runLen)) groups.
func appendBoolRLE(dst []byte, values []jsonval.Value) []byte {
	i := 0
	for i < len(values) {
		code := boolCode(values[i])
		run := 1
		for i+run < len(values) && boolCode(values[i+run]) == code {
			run++
		}
		dst = append(dst, code)
		dst = AppendUvarint(dst, uint64(run))
		i += run
	}

	return dst
}

// decodeBoolRLE emits exactly rows values: trailing groups beyond the row
// count are ignored, and a payload that runs short pads with nulls.
func decodeBoolRLE(payload []byte, rows int) ([]jsonval.Value, error) {
	values := make([]jsonval.Value, rows)
	emitted := 0
	offset := 0
	for emitted < rows && offset < len(payload) {
		code := payload[offset]
		if code > boolCodeTrue {
			return nil, errs.ErrFrameCorrupt
		}
		offset++
		run, n, err := Uvarint32(payload[offset:])
		if err != nil {
			return nil, err
		}
		offset += n

		for i := 0; i < int(run); i++ {
			if emitted == rows {
				break
			}
			switch code {
			case boolCodeNull:
				values[emitted] = jsonval.Null()
			case boolCodeFalse:
				values[emitted] = jsonval.Bool(false)
			case boolCodeTrue:
				values[emitted] = jsonval.Bool(true)
			}
			emitted++
		}
	}

	for ; emitted < rows; emitted++ {
		values[emitted] = jsonval.Null()
	}

	return values, nil
}
