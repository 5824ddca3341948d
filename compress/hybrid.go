package compress

import (
	"fmt"

	"github.com/fayez-kaabi/json-ultra-compress/endian"
	"github.com/fayez-kaabi/json-ultra-compress/errs"
	"github.com/fayez-kaabi/json-ultra-compress/format"
	"github.com/fayez-kaabi/json-ultra-compress/internal/hash"
)

const (
	// WindowSize is the windowed-mode partition size.
	WindowSize = 64 * 1024
	// ScoutSize is the prefix length sampled to pick a window's back-end.
	ScoutSize = 4 * 1024
	// coalesceThreshold is the share of windows that must agree on one
	// back-end before the windowed envelope is dropped in favour of an
	// equal-or-smaller solid result.
	coalesceThreshold = 0.9
)

var engine = endian.GetLittleEndianEngine()

type backend struct {
	codec Codec
	tag   format.CodecTag
}

// Selector adaptively chooses a generic entropy coder for an opaque payload.
// It compares solid (whole-input) compression across its back-ends against a
// windowed mode that picks a back-end per 64 KiB window by scout-sampling a
// 4 KiB prefix, and emits whichever is smaller. Windowed payloads are
// self-describing ('HYB1' envelope); solid payloads are the winning
// back-end's raw bytes.
type Selector struct {
	backends   []backend
	scoutCache map[uint64]int
}

// NewSelector creates a selector with the mandatory pair: dense (zstd) and
// fast (s2).
func NewSelector() *Selector {
	return &Selector{
		backends: []backend{
			{tag: format.TagDense, codec: NewZstdCompressor()},
			{tag: format.TagFast, codec: NewS2Compressor()},
		},
		scoutCache: make(map[uint64]int),
	}
}

// NewSelectorWithLZ4 creates a selector with the optional LZ4 back-end
// registered alongside the mandatory pair.
func NewSelectorWithLZ4() *Selector {
	s := NewSelector()
	s.Register(format.TagLZ4, NewLZ4Compressor())

	return s
}

// Register adds an extra back-end. Tags must be unique per selector.
func (s *Selector) Register(tag format.CodecTag, codec Codec) {
	s.backends = append(s.backends, backend{tag: tag, codec: codec})
}

// Stats reports what the selector did with one payload.
type Stats struct {
	// Codec is the back-end that produced the emitted payload; for windowed
	// output it is CodecHybrid.
	Codec format.CodecType
	// OriginalSize is the input length in bytes.
	OriginalSize int64
	// CompressedSize is the emitted payload length in bytes.
	CompressedSize int64
	// WindowCount is the number of windows in the emitted payload; zero for
	// solid output.
	WindowCount int
}

// Ratio returns compressed size over original size, zero for empty input.
func (s Stats) Ratio() float64 {
	if s.OriginalSize == 0 {
		return 0.0
	}

	return float64(s.CompressedSize) / float64(s.OriginalSize)
}

// SpaceSavings returns the savings percentage (0-100).
func (s Stats) SpaceSavings() float64 {
	return (1.0 - s.Ratio()) * 100.0
}

// Compress picks the best encoding of data per the selector policy.
func (s *Selector) Compress(data []byte) ([]byte, Stats, error) {
	stats := Stats{OriginalSize: int64(len(data))}
	if len(data) == 0 {
		stats.Codec = format.CodecHybrid
		return nil, stats, nil
	}

	solidBytes, solidTag, err := s.solid(data)
	if err != nil {
		return nil, stats, err
	}

	windowed, windowCount := s.windowed(data, solidBytes)

	if windowed == nil || len(solidBytes) <= len(windowed) {
		stats.Codec = NameForTag(solidTag)
		stats.CompressedSize = int64(len(solidBytes))

		return solidBytes, stats, nil
	}

	stats.Codec = format.CodecHybrid
	stats.CompressedSize = int64(len(windowed))
	stats.WindowCount = windowCount

	return windowed, stats, nil
}

// solid compresses the whole input with every back-end and keeps the best.
// Individual back-end failures are tolerated; only total failure surfaces,
// carrying the first error.
func (s *Selector) solid(data []byte) ([]byte, format.CodecTag, error) {
	var best []byte
	var bestTag format.CodecTag
	var firstErr error
	ok := false

	for _, b := range s.backends {
		out, err := b.codec.Compress(data)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		if !ok || len(out) < len(best) {
			best, bestTag, ok = out, b.tag, true
		}
	}
	if !ok {
		return nil, 0, fmt.Errorf("%w: %s", errs.ErrBackendFailed, firstErr)
	}

	return best, bestTag, nil
}

// windowed builds the HYB1 envelope. bestSolid is the winning whole-input
// compression, reused by the coalescing comparison so agreement across
// windows does not trigger a redundant recompression. A nil return means
// windowed mode lost outright.
func (s *Selector) windowed(data []byte, bestSolid []byte) ([]byte, int) {
	windowCount := (len(data) + WindowSize - 1) / WindowSize

	type window struct {
		comp []byte
		tag  format.CodecTag
	}
	windows := make([]window, 0, windowCount)
	choiceCount := make(map[int]int, len(s.backends))

	for start := 0; start < len(data); start += WindowSize {
		end := min(start+WindowSize, len(data))
		chunk := data[start:end]

		choice := s.chooseBackend(chunk)
		if choice < 0 {
			return nil, 0
		}
		comp, err := s.backends[choice].codec.Compress(chunk)
		if err != nil {
			return nil, 0
		}
		windows = append(windows, window{comp: comp, tag: s.backends[choice].tag})
		choiceCount[choice]++
	}

	// Majority coalescing: when nearly all windows agree, window overhead
	// buys nothing over the agreed back-end's solid result, which solid mode
	// already produced. Envelope assembly still runs so the smaller of the
	// two wins below.
	majority := -1
	for idx, count := range choiceCount {
		if float64(count) >= coalesceThreshold*float64(len(windows)) {
			majority = idx
			break
		}
	}

	envelope := make([]byte, 0, len(data)/2+16)
	envelope = append(envelope, format.HybridMagic...)
	envelope = engine.AppendUint32(envelope, uint32(len(windows)))
	for i, w := range windows {
		start := i * WindowSize
		end := min(start+WindowSize, len(data))
		envelope = append(envelope, byte(w.tag))
		envelope = engine.AppendUint32(envelope, uint32(end-start))
		envelope = engine.AppendUint32(envelope, uint32(len(w.comp)))
		envelope = append(envelope, w.comp...)
	}

	if majority >= 0 && len(bestSolid) <= len(envelope) {
		return nil, 0
	}

	return envelope, len(windows)
}

// chooseBackend scout-samples a window prefix with every back-end and picks
// the one producing the smallest scout. Identical scouts across windows are
// memoised by xxhash64 so repeated frame prefixes cost one trial.
func (s *Selector) chooseBackend(chunk []byte) int {
	scout := chunk
	if len(scout) > ScoutSize {
		scout = scout[:ScoutSize]
	}
	key := hash.ScoutID(scout)
	if idx, ok := s.scoutCache[key]; ok {
		return idx
	}

	best := -1
	bestLen := 0
	for idx, b := range s.backends {
		out, err := b.codec.Compress(scout)
		if err != nil {
			continue
		}
		if best < 0 || len(out) < bestLen {
			best, bestLen = idx, len(out)
		}
	}
	if best >= 0 {
		s.scoutCache[key] = best
	}

	return best
}

// Decompress reverses Compress. HYB1 envelopes decode window by window;
// legacy SOLID payloads decode by their embedded tag; untagged solid
// payloads are probed against the registered back-ends in fixed order and
// the first successful decode wins.
func (s *Selector) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	if len(data) >= len(format.HybridMagic) && string(data[:len(format.HybridMagic)]) == format.HybridMagic {
		return s.decodeWindowed(data[len(format.HybridMagic):])
	}

	if len(data) >= len(format.SolidMagic)+1 && string(data[:len(format.SolidMagic)]) == format.SolidMagic {
		tag := format.CodecTag(data[len(format.SolidMagic)])
		codec, ok := CodecForTag(tag)
		if !ok {
			return nil, errs.ErrNoBackend
		}

		out, err := codec.Decompress(data[len(format.SolidMagic)+1:])
		if err != nil {
			return nil, fmt.Errorf("%w: %s", errs.ErrBackendFailed, err)
		}

		return out, nil
	}

	for _, b := range s.backends {
		if out, err := b.codec.Decompress(data); err == nil {
			return out, nil
		}
	}

	return nil, errs.ErrNoBackend
}

func (s *Selector) decodeWindowed(data []byte) ([]byte, error) {
	if len(data) < 4 {
		return nil, errs.ErrBadWindowHeader
	}
	windowCount := int(engine.Uint32(data[:4]))
	offset := 4

	var out []byte
	for i := 0; i < windowCount; i++ {
		if len(data) < offset+9 {
			return nil, errs.ErrBadWindowHeader
		}
		tag := format.CodecTag(data[offset])
		origSize := int(engine.Uint32(data[offset+1 : offset+5]))
		compSize := int(engine.Uint32(data[offset+5 : offset+9]))
		offset += 9
		if compSize > len(data)-offset {
			return nil, errs.ErrBadWindowHeader
		}

		codec, ok := CodecForTag(tag)
		if !ok {
			return nil, errs.ErrNoBackend
		}

		// Every window records its original size; back-ends that can use it
		// decode into an exactly-sized buffer instead of guessing.
		var chunk []byte
		var err error
		if sized, hasSize := codec.(SizedDecompressor); hasSize {
			chunk, err = sized.DecompressLen(data[offset:offset+compSize], origSize)
		} else {
			chunk, err = codec.Decompress(data[offset : offset+compSize])
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %s", errs.ErrBackendFailed, err)
		}
		if len(chunk) != origSize {
			return nil, errs.ErrBadWindowHeader
		}
		out = append(out, chunk...)
		offset += compSize
	}
	if offset != len(data) {
		return nil, errs.ErrBadWindowHeader
	}

	return out, nil
}
