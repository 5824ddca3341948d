package blob

import (
	"strings"

	"github.com/fayez-kaabi/json-ultra-compress/encoding"
	"github.com/fayez-kaabi/json-ultra-compress/errs"
	"github.com/fayez-kaabi/json-ultra-compress/internal/hash"
	"github.com/fayez-kaabi/json-ultra-compress/internal/pool"
	"github.com/fayez-kaabi/json-ultra-compress/jsonval"
	"github.com/fayez-kaabi/json-ultra-compress/section"
)

// IsColumnar reports whether body was produced by the columnar front-end.
func IsColumnar(body []byte) bool {
	return section.IsColumnarBody(body)
}

// frameReader holds one parsed shape frame with readers opened only for the
// keys the caller asked about. Columns outside the request are skipped by
// their length prefix and never decoded.
type frameReader struct {
	frame   *section.ShapeFrame
	keyIdx  []int
	readers []*encoding.ColumnReader
	next    int
}

func openFrame(frame *section.ShapeFrame, fields map[string]struct{}) (*frameReader, error) {
	// The shape id is derived from the key list; disagreement means the
	// frame was reassembled from mismatched parts.
	if hash.ShapeID(strings.Join(frame.Keys, hash.ShapeSeparator)) != frame.ShapeID {
		return nil, errs.ErrFrameCorrupt
	}

	fr := &frameReader{frame: frame}
	for k, key := range frame.Keys {
		if fields != nil {
			if _, ok := fields[key]; !ok {
				continue
			}
		}
		reader, err := encoding.NewColumnReader(frame.Columns[k], frame.Rows)
		if err != nil {
			return nil, err
		}
		fr.keyIdx = append(fr.keyIdx, k)
		fr.readers = append(fr.readers, reader)
	}

	return fr, nil
}

// nextRow materialises the next row as an object restricted to the opened
// keys, honouring per-row presence bits. Supplied nulls are included;
// absent keys are not.
func (fr *frameReader) nextRow() (jsonval.Value, bool) {
	if fr.next >= fr.frame.Rows {
		return jsonval.Value{}, false
	}
	row := fr.next
	fr.next++

	members := make([]jsonval.Member, 0, len(fr.keyIdx))
	for i, k := range fr.keyIdx {
		if !fr.frame.PresenceBit(row, k) {
			continue
		}
		members = append(members, jsonval.Member{
			Key:   fr.frame.Keys[k],
			Value: fr.readers[i].At(row),
		})
	}

	return jsonval.Object(members), true
}

// Decode reconstructs the NDJSON text from a columnar body. A nil or empty
// fields set performs a full decode; otherwise only the named fields are
// decoded and emitted, with unknown keys contributing nothing.
//
// The output always has exactly lineCount lines: 0 bits in the line-presence
// bitmap come back as empty lines, and every 1 bit consumes the next row of
// the pending shape frames in body order.
func Decode(body []byte, fields []string) (string, error) {
	var fieldSet map[string]struct{}
	if len(fields) > 0 {
		fieldSet = make(map[string]struct{}, len(fields))
		for _, f := range fields {
			fieldSet[f] = struct{}{}
		}
	}

	walker := section.NewWalker(body)

	kind, lp, _, err := walker.Next()
	if err != nil {
		return "", err
	}
	if kind != section.FrameLinePresence {
		return "", errs.ErrBadFrameMagic
	}

	var frames []*frameReader
	for {
		kind, _, sf, err := walker.Next()
		if err != nil {
			return "", err
		}
		if kind == section.FrameEnd {
			break
		}
		if kind != section.FrameShape {
			return "", errs.ErrBadFrameMagic
		}
		fr, err := openFrame(sf, fieldSet)
		if err != nil {
			return "", err
		}
		frames = append(frames, fr)
	}

	lineCount := lp.LineCount()
	out := pool.GetBodyBuffer()
	defer pool.PutBodyBuffer(out)
	current := 0

	for i := 0; i < lineCount; i++ {
		if i > 0 {
			out.B = append(out.B, '\n')
		}
		if !lp.Bitmap.Get(i) {
			continue
		}

		var row jsonval.Value
		ok := false
		for current < len(frames) {
			if row, ok = frames[current].nextRow(); ok {
				break
			}
			current++
		}
		if !ok {
			return "", errs.ErrShapeMismatch
		}

		out.B = jsonval.AppendCanonical(out.B, row)
	}

	// Every frame row must be claimed by a presence bit.
	for _, fr := range frames {
		if fr.next != fr.frame.Rows {
			return "", errs.ErrShapeMismatch
		}
	}

	return string(out.B), nil
}
