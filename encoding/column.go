package encoding

import (
	"github.com/fayez-kaabi/json-ultra-compress/errs"
	"github.com/fayez-kaabi/json-ultra-compress/format"
	"github.com/fayez-kaabi/json-ultra-compress/jsonval"
)

// enum eligibility bounds: distinct non-null strings, each non-empty and at
// most enumMaxStrLen bytes, with cardinality at most enumMaxCard.
const (
	enumMaxStrLen = 16
	enumMaxCard   = 16
)

// ChooseColumnType picks the encoder for a column of values. The decision is
// deterministic: all-null columns fall through to raw JSON, then enum,
// boolean, delta (integers whose range stays under twice the row count),
// plain integer varint, and finally raw JSON for everything else.
func ChooseColumnType(values []jsonval.Value) format.ColumnType {
	stats := analyzeColumn(values)

	switch {
	case stats.nonNull == 0:
		return format.ColumnRawJSON
	case stats.enumOK:
		return format.ColumnEnumIDs
	case stats.allBool:
		return format.ColumnBoolRLE
	case stats.allInt && stats.max-stats.min < 2*int64(len(values)):
		return format.ColumnDeltaZigzag
	case stats.allInt:
		return format.ColumnIntVarint
	default:
		return format.ColumnRawJSON
	}
}

type columnStats struct {
	min     int64
	max     int64
	nonNull int
	allInt  bool
	allBool bool
	enumOK  bool
}

func analyzeColumn(values []jsonval.Value) columnStats {
	stats := columnStats{allInt: true, allBool: true, enumOK: true}
	distinct := make(map[string]struct{}, enumMaxCard+1)

	for _, v := range values {
		if v.IsNull() {
			continue
		}
		stats.nonNull++

		if n, ok := v.IntVal(); ok {
			if stats.nonNull == 1 || n < stats.min {
				stats.min = n
			}
			if stats.nonNull == 1 || n > stats.max {
				stats.max = n
			}
		} else {
			stats.allInt = false
		}

		if v.Kind() != jsonval.KindBool {
			stats.allBool = false
		}

		if stats.enumOK {
			if v.Kind() != jsonval.KindString {
				stats.enumOK = false
			} else if s := v.StringVal(); s == "" || len(s) > enumMaxStrLen {
				stats.enumOK = false
			} else {
				distinct[s] = struct{}{}
				if len(distinct) > enumMaxCard {
					stats.enumOK = false
				}
			}
		}
	}

	return stats
}

// EncodeColumn encodes a column as its type tag followed by the payload.
// Absent rows must already be represented as jsonval.Null().
func EncodeColumn(values []jsonval.Value) []byte {
	typ := ChooseColumnType(values)
	dst := make([]byte, 1, 1+len(values)*2)
	dst[0] = byte(typ)

	switch typ {
	case format.ColumnIntVarint:
		return appendIntVarint(dst, values)
	case format.ColumnDeltaZigzag:
		return appendDeltaZigzag(dst, values)
	case format.ColumnBoolRLE:
		return appendBoolRLE(dst, values)
	case format.ColumnEnumIDs:
		return appendEnumIDs(dst, values)
	default:
		return appendRawJSON(dst, values)
	}
}

// DecodeColumn parses a tagged column payload into exactly rows values.
// Null rows decode as jsonval.Null(); the caller applies the presence bitmap
// to tell supplied nulls from absent keys.
func DecodeColumn(data []byte, rows int) ([]jsonval.Value, error) {
	if len(data) == 0 {
		return nil, errs.ErrTruncatedFrame
	}

	typ := format.ColumnType(data[0])
	payload := data[1:]

	switch typ {
	case format.ColumnIntVarint:
		return decodeIntVarint(payload, rows)
	case format.ColumnDeltaZigzag:
		return decodeDeltaZigzag(payload, rows)
	case format.ColumnTimeDOD:
		return decodeTimeDOD(payload, rows)
	case format.ColumnBoolRLE:
		return decodeBoolRLE(payload, rows)
	case format.ColumnEnumIDs:
		return decodeEnumIDs(payload, rows)
	case format.ColumnRawJSON:
		return decodeRawJSON(payload, rows)
	default:
		return nil, errs.ErrUnknownColumnType
	}
}

// ColumnReader provides row access over one decoded column. Dispatch on the
// column type happens once, at construction; At is a plain slice lookup.
type ColumnReader struct {
	values []jsonval.Value
}

// NewColumnReader decodes a tagged column payload for random row access.
func NewColumnReader(data []byte, rows int) (*ColumnReader, error) {
	values, err := DecodeColumn(data, rows)
	if err != nil {
		return nil, err
	}

	return &ColumnReader{values: values}, nil
}

// Len returns the row count.
func (r *ColumnReader) Len() int {
	return len(r.values)
}

// At returns the value at row i. Null rows return jsonval.Null().
func (r *ColumnReader) At(i int) jsonval.Value {
	return r.values[i]
}
