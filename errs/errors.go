// Package errs defines the sentinel errors shared across the module.
//
// Errors are grouped under five kinds. Specific sentinels wrap their kind, so
// callers can match either the precise error or the whole family:
//
//	if errors.Is(err, errs.ErrContainerCorrupt) { ... }
//	if errors.Is(err, errs.ErrCRCMismatch) { ... }
package errs

import (
	"errors"
	"fmt"
)

// Error kinds. Every specific sentinel below wraps exactly one of these,
// except ErrCodecMismatch, which reports a programmer error and wraps none.
var (
	// ErrContainerCorrupt covers bad magic, short headers, CRC mismatches
	// and truncated bodies.
	ErrContainerCorrupt = errors.New("container corrupt")
	// ErrHeaderInvalid covers unparseable header JSON, unsupported versions
	// and unrecognised codec names.
	ErrHeaderInvalid = errors.New("header invalid")
	// ErrBackendFailed reports that the underlying entropy coder failed and
	// no alternative succeeded.
	ErrBackendFailed = errors.New("backend failed")
	// ErrFrameCorrupt covers bad frame magic, inconsistent length prefixes,
	// unknown column type tags, out-of-range enum ids and varint overflow.
	ErrFrameCorrupt = errors.New("frame corrupt")
	// ErrInputInvalid reports malformed input on the encode path.
	ErrInputInvalid = errors.New("input invalid")
)

// Container errors.
var (
	ErrBadMagic       = fmt.Errorf("%w: bad magic", ErrContainerCorrupt)
	ErrShortHeader    = fmt.Errorf("%w: short header", ErrContainerCorrupt)
	ErrCRCMismatch    = fmt.Errorf("%w: crc mismatch", ErrContainerCorrupt)
	ErrTruncatedBody  = fmt.Errorf("%w: truncated body", ErrContainerCorrupt)
	ErrHeaderNotJSON  = fmt.Errorf("%w: header is not valid JSON", ErrHeaderInvalid)
	ErrBadVersion     = fmt.Errorf("%w: unsupported version", ErrHeaderInvalid)
	ErrUnknownCodec   = fmt.Errorf("%w: unrecognised codec", ErrHeaderInvalid)
	ErrCodecMismatch  = errors.New("declared codec does not match the back-end that ran")
	ErrEmptyContainer = fmt.Errorf("%w: too short for magic and header length", ErrContainerCorrupt)
)

// Frame errors.
var (
	ErrBadFrameMagic     = fmt.Errorf("%w: bad frame magic", ErrFrameCorrupt)
	ErrTruncatedFrame    = fmt.Errorf("%w: truncated frame", ErrFrameCorrupt)
	ErrVarintOverflow    = fmt.Errorf("%w: varint overflow", ErrFrameCorrupt)
	ErrUnknownColumnType = fmt.Errorf("%w: unknown column type tag", ErrFrameCorrupt)
	ErrEnumIDRange       = fmt.Errorf("%w: enum id out of range", ErrFrameCorrupt)
	ErrShapeMismatch     = fmt.Errorf("%w: row count disagrees with line presence", ErrFrameCorrupt)
)

// Back-end errors.
var (
	ErrNoBackend       = fmt.Errorf("%w: no registered back-end decoded the payload", ErrBackendFailed)
	ErrBadWindowHeader = fmt.Errorf("%w: malformed window record", ErrBackendFailed)
)

// Input errors.
var (
	ErrNotUTF8  = fmt.Errorf("%w: input is not valid UTF-8", ErrInputInvalid)
	ErrNotJSON  = fmt.Errorf("%w: input is not valid JSON", ErrInputInvalid)
	ErrNoFields = fmt.Errorf("%w: empty field name in selective decode", ErrInputInvalid)
)
