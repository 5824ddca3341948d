package format

type (
	// CodecType identifies a generic entropy back-end by name.
	CodecType string
	// CodecTag is the stable 8-bit wire identifier of a back-end inside
	// windowed payloads.
	CodecTag uint8
	// ColumnType is the per-column encoding tag written ahead of each
	// column payload.
	ColumnType uint8
)

const (
	CodecDense    CodecType = "dense"    // CodecDense is the high-ratio back-end (zstd).
	CodecFast     CodecType = "fast"     // CodecFast is the high-throughput back-end (s2).
	CodecLZ4      CodecType = "lz4"      // CodecLZ4 is the optional extra back-end.
	CodecIdentity CodecType = "identity" // CodecIdentity stores bytes unmodified.
	CodecHybrid   CodecType = "hybrid"   // CodecHybrid selects among back-ends per window.

	TagDense CodecTag = 0 // TagDense is the wire tag of the dense back-end.
	TagFast  CodecTag = 1 // TagFast is the wire tag of the fast back-end.
	TagLZ4   CodecTag = 2 // TagLZ4 is the wire tag of the optional back-end.
)

const (
	ColumnIntVarint   ColumnType = 0 // ColumnIntVarint encodes integers as zigzag varints.
	ColumnDeltaZigzag ColumnType = 1 // ColumnDeltaZigzag encodes sequential-ish integers as deltas.
	ColumnTimeDOD     ColumnType = 2 // ColumnTimeDOD encodes integers as delta-of-delta.
	ColumnBoolRLE     ColumnType = 3 // ColumnBoolRLE run-length encodes booleans.
	ColumnEnumIDs     ColumnType = 4 // ColumnEnumIDs encodes low-cardinality strings by dictionary id.
	ColumnStrIDs      ColumnType = 5 // ColumnStrIDs is reserved.
	ColumnRawJSON     ColumnType = 6 // ColumnRawJSON stores each value as serialised JSON.
)

// Wire magics. All multi-byte integers in the formats below are little-endian.
const (
	// ContainerMagic opens every container file.
	ContainerMagic = "JCO1"
	// HybridMagic opens a windowed back-end payload.
	HybridMagic = "HYB1"
	// SolidMagic is the legacy solid payload prefix, accepted on decode only.
	SolidMagic = "SOLID"
	// LinePresenceMagic opens the line-presence frame ('B' 'M').
	LinePresenceMagic = "BM"
	// ShapeFrameMagic opens a shape frame.
	ShapeFrameMagic = 0xC1
)

// ContainerVersion is the current container format version.
const ContainerVersion = 1

func (c CodecType) String() string {
	return string(c)
}

// Valid reports whether c names a known codec.
func (c CodecType) Valid() bool {
	switch c {
	case CodecDense, CodecFast, CodecLZ4, CodecIdentity, CodecHybrid:
		return true
	default:
		return false
	}
}

func (t ColumnType) String() string {
	switch t {
	case ColumnIntVarint:
		return "IntVarint"
	case ColumnDeltaZigzag:
		return "DeltaZigzag"
	case ColumnTimeDOD:
		return "TimeDOD"
	case ColumnBoolRLE:
		return "BoolRLE"
	case ColumnEnumIDs:
		return "EnumIDs"
	case ColumnStrIDs:
		return "StrIDs"
	case ColumnRawJSON:
		return "RawJSON"
	default:
		return "Unknown"
	}
}
