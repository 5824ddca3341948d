// Package blob implements the columnar front-end and its decoder: grouping
// NDJSON records by shape, transposing them into per-key columns inside
// self-delimited frames, and reconstructing the line stream (optionally
// restricted to a requested set of fields) with blank-line positions intact.
package blob

import (
	"strings"

	"github.com/fayez-kaabi/json-ultra-compress/internal/hash"
	"github.com/fayez-kaabi/json-ultra-compress/jsonval"
)

// shapeGroup accumulates the records of one shape in document order.
type shapeGroup struct {
	canonical string
	keys      []string
	id        uint64
	records   []jsonval.Value
}

// shapeTracker assigns records to shape groups. Groups are kept in
// first-seen order, which is also frame emission order. Shape ids pair with
// the literal key list: two distinct key lists hashing to the same id split
// into separate groups rather than corrupting each other's columns.
type shapeTracker struct {
	groups []*shapeGroup
	byID   map[uint64][]int
}

func newShapeTracker() *shapeTracker {
	return &shapeTracker{byID: make(map[uint64][]int)}
}

// add appends a record to its shape group, creating the group on first
// sight.
func (t *shapeTracker) add(record jsonval.Value) {
	keys := record.Keys()
	canonical := strings.Join(keys, hash.ShapeSeparator)
	id := hash.ShapeID(canonical)

	for _, idx := range t.byID[id] {
		if t.groups[idx].canonical == canonical {
			t.groups[idx].records = append(t.groups[idx].records, record)
			return
		}
	}

	group := &shapeGroup{
		canonical: canonical,
		keys:      keys,
		id:        id,
		records:   []jsonval.Value{record},
	}
	t.byID[id] = append(t.byID[id], len(t.groups))
	t.groups = append(t.groups, group)
}
