// Package hash computes the hash identities used across the module: shape ids
// on the wire and scout-sample keys inside the hybrid selector.
package hash

import (
	"hash/fnv"

	"github.com/cespare/xxhash/v2"
)

// ShapeSeparator joins sorted key lists into the canonical shape
// serialisation before hashing.
const ShapeSeparator = "\x01"

// ShapeID computes the 64-bit FNV-1a hash of a shape's canonical
// serialisation (the sorted key list joined by ShapeSeparator). FNV-1a is
// part of the wire format: decoders validate frame shape ids against the key
// list carried in the frame.
func ShapeID(canonical string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(canonical))

	return h.Sum64()
}

// ScoutID computes the xxHash64 of a scout sample. Scout ids never reach the
// wire; they key the hybrid selector's memoisation of scout trial results.
func ScoutID(data []byte) uint64 {
	return xxhash.Sum64(data)
}
