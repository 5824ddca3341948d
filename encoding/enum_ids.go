package encoding

import (
	"sort"

	"github.com/fayez-kaabi/json-ultra-compress/errs"
	"github.com/fayez-kaabi/json-ultra-compress/jsonval"
)

// enumNullID marks a null row in the per-row id stream.
const enumNullID = 255

// appendEnumIDs writes the sorted dictionary of distinct non-null strings
// followed by one id byte per row.
//
// Layout: u8 dictCount || (varint(strLen) || bytes)×dictCount || u8 id×rows.
func appendEnumIDs(dst []byte, values []jsonval.Value) []byte {
	distinct := make(map[string]int, enumMaxCard)
	for _, v := range values {
		if !v.IsNull() {
			distinct[v.StringVal()] = 0
		}
	}

	dict := make([]string, 0, len(distinct))
	for s := range distinct {
		dict = append(dict, s)
	}
	sort.Strings(dict)
	for i, s := range dict {
		distinct[s] = i
	}

	dst = append(dst, byte(len(dict)))
	for _, s := range dict {
		dst = AppendUvarint(dst, uint64(len(s)))
		dst = append(dst, s...)
	}
	for _, v := range values {
		if v.IsNull() {
			dst = append(dst, enumNullID)
		} else {
			dst = append(dst, byte(distinct[v.StringVal()]))
		}
	}

	return dst
}

func decodeEnumIDs(payload []byte, rows int) ([]jsonval.Value, error) {
	if len(payload) < 1 {
		return nil, errs.ErrTruncatedFrame
	}
	dictCount := int(payload[0])
	offset := 1

	dict := make([]string, dictCount)
	for i := 0; i < dictCount; i++ {
		strLen, n, err := Uvarint32(payload[offset:])
		if err != nil {
			return nil, err
		}
		offset += n
		if offset+int(strLen) > len(payload) {
			return nil, errs.ErrTruncatedFrame
		}
		dict[i] = string(payload[offset : offset+int(strLen)])
		offset += int(strLen)
	}

	if offset+rows > len(payload) {
		return nil, errs.ErrTruncatedFrame
	}

	values := make([]jsonval.Value, rows)
	for i := 0; i < rows; i++ {
		id := payload[offset+i]
		if id == enumNullID {
			values[i] = jsonval.Null()
			continue
		}
		if int(id) >= dictCount {
			return nil, errs.ErrEnumIDRange
		}
		values[i] = jsonval.String(dict[id])
	}

	return values, nil
}
