package jsonval

import (
	stdjson "encoding/json"
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"

	"github.com/fayez-kaabi/json-ultra-compress/errs"
)

var parseConfig = jsoniter.Config{
	UseNumber: true,
}.Froze()

// Parse decodes one complete JSON document into a Value. Trailing non-space
// content, truncated documents and empty input are errors.
//
// Validity is checked up front with encoding/json's strict whole-document
// scanner; the iterator pass below can then treat io.EOF as a clean end
// instead of guessing whether a document was truncated mid-value.
func Parse(data []byte) (Value, error) {
	if !stdjson.Valid(data) {
		return Value{}, fmt.Errorf("%w: not a single JSON document", errs.ErrNotJSON)
	}

	iter := parseConfig.BorrowIterator(data)
	defer parseConfig.ReturnIterator(iter)

	v := readValue(iter)
	if iter.Error != nil && iter.Error != io.EOF {
		return Value{}, fmt.Errorf("%w: %s", errs.ErrNotJSON, iter.Error)
	}

	return v, nil
}

// ParseObject decodes one NDJSON line. It succeeds only for JSON objects;
// any other document kind reports ok=false, matching the encoder's policy of
// collapsing non-record lines to blank positions.
func ParseObject(line []byte) (Value, bool) {
	v, err := Parse(line)
	if err != nil || v.Kind() != KindObject {
		return Value{}, false
	}

	return v, true
}

func readValue(iter *jsoniter.Iterator) Value {
	switch iter.WhatIsNext() {
	case jsoniter.NilValue:
		iter.ReadNil()
		return Null()
	case jsoniter.BoolValue:
		return Bool(iter.ReadBool())
	case jsoniter.NumberValue:
		return Number(string(iter.ReadNumber()))
	case jsoniter.StringValue:
		return String(iter.ReadString())
	case jsoniter.ArrayValue:
		var elems []Value
		iter.ReadArrayCB(func(it *jsoniter.Iterator) bool {
			elems = append(elems, readValue(it))
			return it.Error == nil
		})

		return Array(elems)
	case jsoniter.ObjectValue:
		var members []Member
		iter.ReadObjectCB(func(it *jsoniter.Iterator, key string) bool {
			members = append(members, Member{Key: key, Value: readValue(it)})
			return it.Error == nil
		})

		return Object(members)
	default:
		if iter.Error == nil {
			iter.ReportError("readValue", "invalid JSON value")
		}

		return Value{}
	}
}
