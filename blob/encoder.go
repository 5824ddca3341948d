package blob

import (
	"github.com/fayez-kaabi/json-ultra-compress/encoding"
	"github.com/fayez-kaabi/json-ultra-compress/internal/bitmap"
	"github.com/fayez-kaabi/json-ultra-compress/jsonval"
	"github.com/fayez-kaabi/json-ultra-compress/section"
)

const (
	// DefaultBatchSize bounds the rows of one shape frame.
	DefaultBatchSize = 4096
	// minColumnarRecords is the fewest valid records worth columnising.
	minColumnarRecords = 3
	// minColumnarBytes is the smallest input worth columnising.
	minColumnarBytes = 64
)

// Encoder turns NDJSON text into a columnar frame body.
type Encoder struct {
	batchSize int
}

// NewEncoder creates an encoder with the given frame batch size; zero or
// negative means DefaultBatchSize.
func NewEncoder(batchSize int) *Encoder {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	return &Encoder{batchSize: batchSize}
}

// Encode splits ndjson into lines, groups parseable object lines by shape,
// and emits the line-presence frame followed by one shape frame per batch,
// separated by single '\n' bytes.
//
// Lines that are blank or fail to parse as a JSON object keep their position
// through a 0 bit in the line-presence bitmap; their content is dropped.
// Inputs below the columnar thresholds decline: ok is false and the caller
// should fall back to the row-wise path.
func (e *Encoder) Encode(ndjson string) (body []byte, ok bool) {
	lines := jsonval.SplitLines(ndjson)

	presence := bitmap.New(0)
	tracker := newShapeTracker()
	valid := 0

	for _, line := range lines {
		if jsonval.IsBlank(line) {
			presence.Append(false)
			continue
		}
		record, parsed := jsonval.ParseObject([]byte(line))
		if !parsed {
			presence.Append(false)
			continue
		}
		presence.Append(true)
		tracker.add(record)
		valid++
	}

	if valid < minColumnarRecords || len(ndjson) < minColumnarBytes {
		return nil, false
	}

	lp := &section.LinePresenceFrame{Bitmap: presence}
	body = lp.AppendTo(body)

	for _, group := range tracker.groups {
		for start := 0; start < len(group.records); start += e.batchSize {
			end := min(start+e.batchSize, len(group.records))
			body = append(body, '\n')
			body = e.buildFrame(group, group.records[start:end]).AppendTo(body)
		}
	}

	return body, true
}

// buildFrame transposes one batch of records into a shape frame: a
// row-major presence bitmap plus one encoded column per key. Absent keys
// become null sentinels in the column and 0 bits in the presence bitmap;
// keys supplied with a JSON null keep a 1 bit.
func (e *Encoder) buildFrame(group *shapeGroup, records []jsonval.Value) *section.ShapeFrame {
	rows := len(records)
	keyCount := len(group.keys)

	presence := bitmap.New(rows * keyCount)
	columns := make([][]byte, keyCount)
	values := make([]jsonval.Value, rows)

	for k, key := range group.keys {
		for row, record := range records {
			v, supplied := record.Get(key)
			if supplied {
				presence.Set(row*keyCount+k, true)
				values[row] = v
			} else {
				values[row] = jsonval.Null()
			}
		}
		columns[k] = encoding.EncodeColumn(values)
	}

	return &section.ShapeFrame{
		ShapeID:  group.id,
		Keys:     group.keys,
		Rows:     rows,
		Presence: presence,
		Columns:  columns,
	}
}
