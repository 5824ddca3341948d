// Package jsonultra is a JSON-native compression engine for NDJSON streams.
//
// It pairs a columnar front-end (records grouped by shape, transposed into
// per-field columns with type-specialised encodings) with generic entropy
// back-ends chosen adaptively per payload. Its distinguishing capability is
// selective field decode: a consumer can recover a subset of fields from a
// compressed artifact without decoding the remaining columns, while line
// count and blank-line positions are preserved.
//
// # Basic Usage
//
// Compressing and selectively decoding an NDJSON stream:
//
//	data, _ := jsonultra.CompressNDJSON(ndjson, jsonultra.WithColumnar(true))
//
//	// Full decode
//	text, _ := jsonultra.DecompressNDJSON(data)
//
//	// Only the fields you need
//	slim, _ := jsonultra.DecompressNDJSON(data, jsonultra.WithFields("ts", "level"))
//
// Single JSON documents use Compress/Decompress, which canonicalise the
// document (sorted object keys, compact form) and skip columnisation.
//
// The default codec is "hybrid": the back-end selector compares solid and
// windowed compression across zstd ("dense"), s2 ("fast") and lz4 and emits
// the smallest self-describing payload. Pass WithCodec to pin one back-end.
package jsonultra

import (
	"fmt"
	"unicode/utf8"

	"github.com/fayez-kaabi/json-ultra-compress/blob"
	"github.com/fayez-kaabi/json-ultra-compress/compress"
	"github.com/fayez-kaabi/json-ultra-compress/container"
	"github.com/fayez-kaabi/json-ultra-compress/errs"
	"github.com/fayez-kaabi/json-ultra-compress/format"
	"github.com/fayez-kaabi/json-ultra-compress/internal/options"
	"github.com/fayez-kaabi/json-ultra-compress/jsonval"
)

type encodeConfig struct {
	codec     format.CodecType
	profile   string
	batchSize int
	columnar  bool
}

// Option configures the encode entry points.
type Option = options.Option[*encodeConfig]

// WithCodec pins the entropy back-end instead of the default hybrid
// selector. Recognised names: dense, fast, lz4, identity, hybrid.
func WithCodec(codec format.CodecType) Option {
	return options.New(func(cfg *encodeConfig) error {
		if !codec.Valid() {
			return fmt.Errorf("%w: %q", errs.ErrUnknownCodec, codec)
		}
		cfg.codec = codec

		return nil
	})
}

// WithColumnar toggles the columnar front-end for NDJSON input.
func WithColumnar(enabled bool) Option {
	return options.NoError(func(cfg *encodeConfig) {
		cfg.columnar = enabled
	})
}

// WithProfile records a policy hint ("logs" for timestamp/enum-heavy input).
// The hint is carried in the container header; the baseline encoder does not
// change its decisions on it.
func WithProfile(profile string) Option {
	return options.NoError(func(cfg *encodeConfig) {
		cfg.profile = profile
	})
}

// WithBatchSize bounds the rows of one shape frame on the columnar path.
// The default is 4096; smaller batches trade compression ratio for lower
// peak memory per frame.
func WithBatchSize(rows int) Option {
	return options.New(func(cfg *encodeConfig) error {
		if rows <= 0 {
			return fmt.Errorf("%w: batch size must be positive, got %d", errs.ErrInputInvalid, rows)
		}
		cfg.batchSize = rows

		return nil
	})
}

type decodeConfig struct {
	fields []string
}

// DecodeOption configures DecompressNDJSON.
type DecodeOption = options.Option[*decodeConfig]

// WithFields requests selective decode: only the named fields are decoded
// and emitted. Unknown fields contribute nothing; an empty call leaves full
// decode in effect.
func WithFields(fields ...string) DecodeOption {
	return options.New(func(cfg *decodeConfig) error {
		for _, f := range fields {
			if f == "" {
				return errs.ErrNoFields
			}
		}
		cfg.fields = append(cfg.fields, fields...)

		return nil
	})
}

// Compress canonicalises a single JSON document and wraps the compressed
// result in a container. The default codec is hybrid.
func Compress(jsonText []byte, opts ...Option) ([]byte, error) {
	cfg, err := buildConfig(opts)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(jsonText) {
		return nil, errs.ErrNotUTF8
	}

	canonical, err := jsonval.Canonicalize(jsonText)
	if err != nil {
		return nil, err
	}

	return emit(canonical, cfg, false)
}

// Decompress unwraps a container and returns the original text: the
// canonicalised document for single-record containers, the full NDJSON
// stream for NDJSON containers.
func Decompress(data []byte) ([]byte, error) {
	header, body, err := container.Unwrap(data)
	if err != nil {
		return nil, err
	}
	raw, err := decodeBody(header.Codec, body)
	if err != nil {
		return nil, err
	}
	if header.NDJSON && blob.IsColumnar(raw) {
		text, err := blob.Decode(raw, nil)
		if err != nil {
			return nil, err
		}

		return []byte(text), nil
	}

	return raw, nil
}

// CompressNDJSON compresses a newline-delimited JSON stream. With
// WithColumnar(true) records are grouped by shape and transposed into
// columns; key order inside objects and intra-object whitespace are not
// preserved on that path (row order within each shape and blank-line
// positions are). Without it, or when the input has fewer than three
// parseable records or is shorter than 64 bytes, each line is canonicalised
// in place.
func CompressNDJSON(ndjsonText []byte, opts ...Option) ([]byte, error) {
	cfg, err := buildConfig(opts)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(ndjsonText) {
		return nil, errs.ErrNotUTF8
	}

	var body []byte
	emitted := false
	if cfg.columnar {
		body, emitted = blob.NewEncoder(cfg.batchSize).Encode(string(ndjsonText))
	}
	if !emitted {
		body = blob.EncodeRowWise(string(ndjsonText))
	}

	return emit(body, cfg, true)
}

// DecompressNDJSON reconstructs the NDJSON text from a container. With
// WithFields, only the named fields are decoded (selective decode); the
// output still has exactly the original line count, with blank positions as
// empty lines.
func DecompressNDJSON(data []byte, opts ...DecodeOption) ([]byte, error) {
	var cfg decodeConfig
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}

	header, body, err := container.Unwrap(data)
	if err != nil {
		return nil, err
	}
	raw, err := decodeBody(header.Codec, body)
	if err != nil {
		return nil, err
	}

	if blob.IsColumnar(raw) {
		text, err := blob.Decode(raw, cfg.fields)
		if err != nil {
			return nil, err
		}

		return []byte(text), nil
	}

	// Row-wise bodies already are the line stream; field selection does not
	// apply to them.
	return raw, nil
}

func buildConfig(opts []Option) (*encodeConfig, error) {
	cfg := &encodeConfig{codec: format.CodecHybrid}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// emit runs the chosen back-end over body and wraps the result. The header
// always declares the codec that actually ran; Wrap re-asserts it.
func emit(body []byte, cfg *encodeConfig, ndjson bool) ([]byte, error) {
	payload, err := encodeBody(body, cfg.codec)
	if err != nil {
		return nil, err
	}

	var headerOpts map[string]any
	if cfg.profile != "" {
		headerOpts = map[string]any{"profile": cfg.profile}
	}
	header := container.NewHeader(cfg.codec, ndjson, headerOpts)

	return container.Wrap(header, payload, cfg.codec)
}

func encodeBody(body []byte, codec format.CodecType) ([]byte, error) {
	if len(body) == 0 {
		return nil, nil
	}
	if codec == format.CodecHybrid {
		payload, _, err := compress.NewSelectorWithLZ4().Compress(body)
		return payload, err
	}

	c, err := compress.GetCodec(codec)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", errs.ErrUnknownCodec, codec)
	}
	payload, err := c.Compress(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrBackendFailed, err)
	}

	return payload, nil
}

func decodeBody(codec format.CodecType, body []byte) ([]byte, error) {
	if len(body) == 0 {
		return nil, nil
	}
	if codec == format.CodecHybrid {
		return compress.NewSelectorWithLZ4().Decompress(body)
	}

	c, err := compress.GetCodec(codec)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", errs.ErrUnknownCodec, codec)
	}
	raw, err := c.Decompress(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrBackendFailed, err)
	}

	return raw, nil
}
