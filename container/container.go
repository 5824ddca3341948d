// Package container implements the outer file envelope: a magic, a JSON
// descriptor header, a CRC32 of the body, and the body itself.
//
// Layout (integers little-endian):
//
//	00  'J' 'C' 'O' '1'
//	04  u32 headerLen
//	08  headerBytes (UTF-8 JSON)
//	..  u32 crc32(body)
//	..  body
//
// The CRC covers exactly the body bytes and is verified before any body byte
// is returned to a caller.
package container

import (
	"fmt"
	"hash/crc32"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/fayez-kaabi/json-ultra-compress/endian"
	"github.com/fayez-kaabi/json-ultra-compress/errs"
	"github.com/fayez-kaabi/json-ultra-compress/format"
)

var (
	engine = endian.GetLittleEndianEngine()
	json   = jsoniter.ConfigCompatibleWithStandardLibrary
)

// Header is the container's JSON descriptor.
type Header struct {
	Version       int              `json:"version"`
	Codec         format.CodecType `json:"codec"`
	CreatedAt     string           `json:"createdAt"`
	NDJSON        bool             `json:"ndjson"`
	KeyDictInline bool             `json:"keyDictInline"`
	Options       map[string]any   `json:"options"`
}

// NewHeader builds a header for the given codec, stamped with the current
// time. Options may be nil; it round-trips opaquely.
func NewHeader(codec format.CodecType, ndjson bool, options map[string]any) Header {
	if options == nil {
		options = map[string]any{}
	}

	return Header{
		Version:   format.ContainerVersion,
		Codec:     codec,
		CreatedAt: time.Now().UTC().Format(time.RFC3339Nano),
		NDJSON:    ndjson,
		Options:   options,
	}
}

// Wrap emits a container. ranCodec names the back-end that actually produced
// body; a header declaring anything else is a programmer error and is
// rejected before any bytes are written.
func Wrap(header Header, body []byte, ranCodec format.CodecType) ([]byte, error) {
	if header.Codec != ranCodec {
		return nil, fmt.Errorf("%w: header says %q, ran %q", errs.ErrCodecMismatch, header.Codec, ranCodec)
	}

	headerBytes, err := json.Marshal(header)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrHeaderInvalid, err)
	}

	out := make([]byte, 0, 8+len(headerBytes)+4+len(body))
	out = append(out, format.ContainerMagic...)
	out = engine.AppendUint32(out, uint32(len(headerBytes)))
	out = append(out, headerBytes...)
	out = engine.AppendUint32(out, crc32.ChecksumIEEE(body))
	out = append(out, body...)

	return out, nil
}

// Unwrap validates a container and returns its header and body. The body
// aliases data.
func Unwrap(data []byte) (Header, []byte, error) {
	var header Header

	if len(data) < 8 {
		return header, nil, errs.ErrEmptyContainer
	}
	if string(data[:4]) != format.ContainerMagic {
		return header, nil, errs.ErrBadMagic
	}

	headerLen := int(engine.Uint32(data[4:8]))
	if headerLen > len(data)-8 {
		return header, nil, errs.ErrShortHeader
	}
	headerBytes := data[8 : 8+headerLen]

	if err := json.Unmarshal(headerBytes, &header); err != nil {
		return header, nil, fmt.Errorf("%w: %s", errs.ErrHeaderNotJSON, err)
	}
	if header.Version != format.ContainerVersion {
		return header, nil, fmt.Errorf("%w: %d", errs.ErrBadVersion, header.Version)
	}
	if !header.Codec.Valid() {
		return header, nil, fmt.Errorf("%w: %q", errs.ErrUnknownCodec, header.Codec)
	}

	rest := data[8+headerLen:]
	if len(rest) < 4 {
		return header, nil, errs.ErrTruncatedBody
	}
	wantCRC := engine.Uint32(rest[:4])
	body := rest[4:]
	if crc32.ChecksumIEEE(body) != wantCRC {
		return header, nil, errs.ErrCRCMismatch
	}

	return header, body, nil
}
