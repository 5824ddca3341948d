package section

import (
	"github.com/fayez-kaabi/json-ultra-compress/errs"
	"github.com/fayez-kaabi/json-ultra-compress/format"
)

// FrameKind identifies what Walker.Next produced.
type FrameKind uint8

const (
	// FrameEnd means the body is fully consumed.
	FrameEnd FrameKind = iota
	FrameLinePresence
	FrameShape
)

// Walker scans a columnar body frame by frame using only the lengths each
// frame header declares; no external index is required. Single '\n' bytes
// between frames (inserted by the front-end) are skipped.
type Walker struct {
	rest []byte
}

// NewWalker returns a walker over a columnar body.
func NewWalker(body []byte) *Walker {
	return &Walker{rest: body}
}

// Next parses the next frame. At a clean end of body it returns FrameEnd.
func (w *Walker) Next() (FrameKind, *LinePresenceFrame, *ShapeFrame, error) {
	for len(w.rest) > 0 && w.rest[0] == '\n' {
		w.rest = w.rest[1:]
	}
	if len(w.rest) == 0 {
		return FrameEnd, nil, nil, nil
	}

	switch w.rest[0] {
	case format.LinePresenceMagic[0]:
		lp, n, err := ParseLinePresence(w.rest)
		if err != nil {
			return FrameEnd, nil, nil, err
		}
		w.rest = w.rest[n:]

		return FrameLinePresence, lp, nil, nil
	case format.ShapeFrameMagic:
		sf, n, err := ParseShapeFrame(w.rest)
		if err != nil {
			return FrameEnd, nil, nil, err
		}
		w.rest = w.rest[n:]

		return FrameShape, nil, sf, nil
	default:
		return FrameEnd, nil, nil, errs.ErrBadFrameMagic
	}
}

// Remaining returns the unconsumed byte count, for overrun/underrun checks.
func (w *Walker) Remaining() int {
	return len(w.rest)
}

// IsColumnarBody reports whether body starts with a columnar frame magic.
// The line-presence frame is always emitted first, so its magic is the
// discriminator between columnar and row-wise bodies.
func IsColumnarBody(body []byte) bool {
	return len(body) >= 2 && string(body[:2]) == format.LinePresenceMagic
}
