package section

import (
	"math"

	"github.com/fayez-kaabi/json-ultra-compress/errs"
	"github.com/fayez-kaabi/json-ultra-compress/format"
	"github.com/fayez-kaabi/json-ultra-compress/internal/bitmap"
)

// ShapeFrame is one batch of rows that share a shape. Column payloads are
// kept as raw tagged bytes: parsing a frame never decodes a column, so a
// selective reader can skip columns it was not asked for.
//
// Layout (all integers little-endian):
//
//	u8  0xC1
//	u32 rows
//	u64 shapeId
//	u16 keyCount
//	( u32 keyByteLen || key bytes ) × keyCount
//	ceil(rows*keyCount/8) presence bitmap bytes
//	( u32 columnByteLen || column bytes ) × keyCount
type ShapeFrame struct {
	ShapeID  uint64
	Keys     []string
	Rows     int
	Presence *bitmap.Bitmap
	Columns  [][]byte
}

// PresenceBit reports whether the given row supplies the key at index k.
// Bits are row-major: bit row*keyCount + k.
func (f *ShapeFrame) PresenceBit(row, k int) bool {
	return f.Presence.Get(row*len(f.Keys) + k)
}

// AppendTo serialises the frame.
func (f *ShapeFrame) AppendTo(dst []byte) []byte {
	dst = append(dst, format.ShapeFrameMagic)
	dst = engine.AppendUint32(dst, uint32(f.Rows))
	dst = engine.AppendUint64(dst, f.ShapeID)
	dst = engine.AppendUint16(dst, uint16(len(f.Keys)))
	for _, key := range f.Keys {
		dst = engine.AppendUint32(dst, uint32(len(key)))
		dst = append(dst, key...)
	}
	dst = append(dst, f.Presence.Bytes()...)
	for _, col := range f.Columns {
		dst = engine.AppendUint32(dst, uint32(len(col)))
		dst = append(dst, col...)
	}

	return dst
}

// ParseShapeFrame parses a shape frame from the start of data and returns it
// with the number of bytes consumed. Column payloads alias data.
func ParseShapeFrame(data []byte) (*ShapeFrame, int, error) {
	if len(data) < 1+4+8+2 {
		return nil, 0, errs.ErrTruncatedFrame
	}
	if data[0] != format.ShapeFrameMagic {
		return nil, 0, errs.ErrBadFrameMagic
	}

	rows := int(engine.Uint32(data[1:5]))
	shapeID := engine.Uint64(data[5:13])
	keyCount := int(engine.Uint16(data[13:15]))
	offset := 15

	keys := make([]string, keyCount)
	for i := 0; i < keyCount; i++ {
		if len(data) < offset+4 {
			return nil, 0, errs.ErrTruncatedFrame
		}
		keyLen := int(engine.Uint32(data[offset : offset+4]))
		offset += 4
		if keyLen > len(data)-offset {
			return nil, 0, errs.ErrTruncatedFrame
		}
		keys[i] = string(data[offset : offset+keyLen])
		offset += keyLen
	}

	if rows > 0 && keyCount > 0 && rows > math.MaxInt/keyCount {
		return nil, 0, errs.ErrFrameCorrupt
	}
	presenceBits := rows * keyCount
	presenceBytes := (presenceBits + 7) / 8
	if len(data)-offset < presenceBytes {
		return nil, 0, errs.ErrTruncatedFrame
	}
	presence, _ := bitmap.FromBytes(data[offset:offset+presenceBytes], presenceBits)
	offset += presenceBytes

	columns := make([][]byte, keyCount)
	for i := 0; i < keyCount; i++ {
		if len(data) < offset+4 {
			return nil, 0, errs.ErrTruncatedFrame
		}
		colLen := int(engine.Uint32(data[offset : offset+4]))
		offset += 4
		if colLen > len(data)-offset {
			return nil, 0, errs.ErrTruncatedFrame
		}
		columns[i] = data[offset : offset+colLen]
		offset += colLen
	}

	return &ShapeFrame{
		ShapeID:  shapeID,
		Keys:     keys,
		Rows:     rows,
		Presence: presence,
		Columns:  columns,
	}, offset, nil
}
