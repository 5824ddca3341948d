// Package section implements the frame layer of the columnar body: the
// single line-presence frame, the shape frames that carry columns, and a
// walker that scans a body using only header-declared lengths.
package section

import (
	"github.com/fayez-kaabi/json-ultra-compress/endian"
	"github.com/fayez-kaabi/json-ultra-compress/errs"
	"github.com/fayez-kaabi/json-ultra-compress/format"
	"github.com/fayez-kaabi/json-ultra-compress/internal/bitmap"
)

var engine = endian.GetLittleEndianEngine()

// LinePresenceFrame records, for every input line, whether it carried a JSON
// record (bit 1) or is a blank position to restore as an empty line (bit 0).
// Exactly one appears per container body, ahead of all shape frames.
//
// Layout: 'B' 'M' || u32 lineCount || ceil(lineCount/8) bitmap bytes.
type LinePresenceFrame struct {
	Bitmap *bitmap.Bitmap
}

// LineCount returns the number of input lines the frame covers.
func (f *LinePresenceFrame) LineCount() int {
	return f.Bitmap.Len()
}

// AppendTo serialises the frame.
func (f *LinePresenceFrame) AppendTo(dst []byte) []byte {
	dst = append(dst, format.LinePresenceMagic...)
	dst = engine.AppendUint32(dst, uint32(f.Bitmap.Len()))

	return append(dst, f.Bitmap.Bytes()...)
}

// ParseLinePresence parses a line-presence frame from the start of data and
// returns it with the number of bytes consumed.
func ParseLinePresence(data []byte) (*LinePresenceFrame, int, error) {
	if len(data) < len(format.LinePresenceMagic)+4 {
		return nil, 0, errs.ErrTruncatedFrame
	}
	if string(data[:2]) != format.LinePresenceMagic {
		return nil, 0, errs.ErrBadFrameMagic
	}

	lineCount := int(engine.Uint32(data[2:6]))
	byteLen := (lineCount + 7) / 8
	end := 6 + byteLen
	if len(data) < end {
		return nil, 0, errs.ErrTruncatedFrame
	}

	bm, ok := bitmap.FromBytes(data[6:end], lineCount)
	if !ok {
		return nil, 0, errs.ErrTruncatedFrame
	}

	return &LinePresenceFrame{Bitmap: bm}, end, nil
}
