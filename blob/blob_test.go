package blob

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fayez-kaabi/json-ultra-compress/errs"
	"github.com/fayez-kaabi/json-ultra-compress/jsonval"
	"github.com/fayez-kaabi/json-ultra-compress/section"
)

func mustEncode(t *testing.T, ndjson string) []byte {
	t.Helper()
	body, ok := NewEncoder(0).Encode(ndjson)
	require.True(t, ok, "columnar path declined")

	return body
}

func requireLineParseEqual(t *testing.T, want, got string) {
	t.Helper()
	wv, err := jsonval.Parse([]byte(want))
	require.NoError(t, err)
	gv, err := jsonval.Parse([]byte(got))
	require.NoError(t, err)
	require.True(t, wv.Equal(gv), "want %s got %s", want, got)
}

const logsInput = `{"ts":"2024-01-01T00:00:00.000Z","level":"info","service":"api","message":"start","id":1}
{"ts":"2024-01-01T00:00:01.000Z","level":"info","service":"api","message":"ok","id":2}
{"ts":"2024-01-01T00:00:02.000Z","level":"warn","service":"api","message":"slow","id":3}`

func TestEncodeDecode_FullRoundTrip(t *testing.T) {
	body := mustEncode(t, logsInput)
	require.True(t, IsColumnar(body))

	out, err := Decode(body, nil)
	require.NoError(t, err)

	wantLines := strings.Split(logsInput, "\n")
	gotLines := strings.Split(out, "\n")
	require.Len(t, gotLines, len(wantLines))
	for i := range wantLines {
		requireLineParseEqual(t, wantLines[i], gotLines[i])
	}
}

func TestSelectiveDecode_LogsProfile(t *testing.T) {
	body := mustEncode(t, logsInput)

	out, err := Decode(body, []string{"ts", "level", "service"})
	require.NoError(t, err)

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 3)
	for i, line := range lines {
		v, err := jsonval.Parse([]byte(line))
		require.NoError(t, err)
		require.ElementsMatch(t, []string{"level", "service", "ts"}, v.Keys(), "line %d", i)
	}

	first, err := jsonval.Parse([]byte(lines[0]))
	require.NoError(t, err)
	ts, _ := first.Get("ts")
	require.Equal(t, "2024-01-01T00:00:00.000Z", ts.StringVal())
}

func TestBlankLinePreservation(t *testing.T) {
	input := "{\"alpha\":1,\"pad\":\"xxxx\"}\n\n{\"beta\":2,\"pad\":\"yyyy\"}\n   \n{\"gamma\":3,\"pad\":\"zzzz\"}"
	body := mustEncode(t, input)

	out, err := Decode(body, nil)
	require.NoError(t, err)

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 5)
	require.Empty(t, lines[1])
	require.Empty(t, lines[3])
	requireLineParseEqual(t, `{"alpha":1,"pad":"xxxx"}`, lines[0])
	requireLineParseEqual(t, `{"beta":2,"pad":"yyyy"}`, lines[2])
	requireLineParseEqual(t, `{"gamma":3,"pad":"zzzz"}`, lines[4])
}

func TestSchemaDrift_SelectivePerField(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 10; i++ {
		fmt.Fprintf(&sb, "{\"a\":%d,\"b\":%d}\n", i, i*10)
	}
	for i := 0; i < 10; i++ {
		fmt.Fprintf(&sb, "{\"a\":%d,\"c\":%d}\n", i+10, i*100)
	}
	input := strings.TrimSuffix(sb.String(), "\n")
	body := mustEncode(t, input)

	// F={a}: every line has a with the right value.
	out, err := Decode(body, []string{"a"})
	require.NoError(t, err)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 20)
	for i, line := range lines {
		requireLineParseEqual(t, fmt.Sprintf(`{"a":%d}`, i), line)
	}

	// F={b}: first ten carry b, the rest decode to {}.
	out, err = Decode(body, []string{"b"})
	require.NoError(t, err)
	lines = strings.Split(out, "\n")
	for i := 0; i < 10; i++ {
		requireLineParseEqual(t, fmt.Sprintf(`{"b":%d}`, i*10), lines[i])
	}
	for i := 10; i < 20; i++ {
		require.Equal(t, "{}", lines[i], "line %d", i)
	}

	// F={c}: mirror image.
	out, err = Decode(body, []string{"c"})
	require.NoError(t, err)
	lines = strings.Split(out, "\n")
	for i := 0; i < 10; i++ {
		require.Equal(t, "{}", lines[i], "line %d", i)
	}
	for i := 10; i < 20; i++ {
		requireLineParseEqual(t, fmt.Sprintf(`{"c":%d}`, (i-10)*100), lines[i])
	}
}

func TestSelectiveDecode_UnknownField(t *testing.T) {
	body := mustEncode(t, logsInput)

	out, err := Decode(body, []string{"nope"})
	require.NoError(t, err)
	for _, line := range strings.Split(out, "\n") {
		require.Equal(t, "{}", line)
	}
}

func TestSelectiveDecode_NullValuesIncluded(t *testing.T) {
	input := `{"a":null,"b":1,"pad":"xxxxxxxx"}
{"a":7,"b":2,"pad":"xxxxxxxx"}
{"b":3,"pad":"xxxxxxxx"}`
	body := mustEncode(t, input)

	out, err := Decode(body, []string{"a"})
	require.NoError(t, err)
	lines := strings.Split(out, "\n")

	// Supplied null keeps its key; absent key yields an empty object.
	require.Equal(t, `{"a":null}`, lines[0])
	require.Equal(t, `{"a":7}`, lines[1])
	require.Equal(t, "{}", lines[2])
}

func TestEncode_DeclinesTinyInput(t *testing.T) {
	_, ok := NewEncoder(0).Encode(`{"a":1}`)
	require.False(t, ok)

	// Two records stay under the record threshold even when long enough.
	long := `{"` + strings.Repeat("a", 80) + `":1}` + "\n" + `{"b":2}`
	_, ok = NewEncoder(0).Encode(long)
	require.False(t, ok)
}

func TestEncode_MalformedLinesBecomeBlanks(t *testing.T) {
	input := `{"a":1,"pad":"xxxxxxxx"}
not json at all
{"a":2,"pad":"xxxxxxxx"}
{"a":3,"pad":"xxxxxxxx"}`
	body := mustEncode(t, input)

	out, err := Decode(body, nil)
	require.NoError(t, err)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 4)
	require.Empty(t, lines[1])
	requireLineParseEqual(t, `{"a":2,"pad":"xxxxxxxx"}`, lines[2])
}

func TestEncode_ZeroKeyRecords(t *testing.T) {
	input := strings.TrimSuffix(strings.Repeat("{}\n", 25), "\n")
	body := mustEncode(t, input)

	// The shape frame declares zero keys and no column payloads.
	w := section.NewWalker(body)
	_, _, _, err := w.Next() // line presence
	require.NoError(t, err)
	kind, _, sf, err := w.Next()
	require.NoError(t, err)
	require.Equal(t, section.FrameShape, kind)
	require.Empty(t, sf.Keys)
	require.Equal(t, 25, sf.Rows)
	require.Equal(t, 0, sf.Presence.Len())

	out, err := Decode(body, nil)
	require.NoError(t, err)
	require.Equal(t, input, out)
}

func TestEncode_BatchBoundary(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 4097; i++ {
		fmt.Fprintf(&sb, "{\"n\":%d}\n", i)
	}
	body := mustEncode(t, strings.TrimSuffix(sb.String(), "\n"))

	w := section.NewWalker(body)
	kind, lp, _, err := w.Next()
	require.NoError(t, err)
	require.Equal(t, section.FrameLinePresence, kind)
	require.Equal(t, 4097, lp.LineCount())

	var rowCounts []int
	for {
		kind, _, sf, err := w.Next()
		require.NoError(t, err)
		if kind == section.FrameEnd {
			break
		}
		rowCounts = append(rowCounts, sf.Rows)
	}
	require.Equal(t, []int{4096, 1}, rowCounts)

	out, err := Decode(body, nil)
	require.NoError(t, err)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 4097)
	requireLineParseEqual(t, `{"n":4096}`, lines[4096])
}

func TestDecode_MissingLinePresence(t *testing.T) {
	_, err := Decode([]byte{0xC1, 0, 0, 0, 0}, nil)
	require.ErrorIs(t, err, errs.ErrFrameCorrupt)
}

func TestDecode_RowShortfall(t *testing.T) {
	body := mustEncode(t, logsInput)

	// Grow the line-presence count by rewriting the frame with an extra
	// 1 bit; the shape frames cannot satisfy it.
	lp, n, err := section.ParseLinePresence(body)
	require.NoError(t, err)
	lp.Bitmap.Append(true)
	tampered := lp.AppendTo(nil)
	tampered = append(tampered, body[n:]...)

	_, err = Decode(tampered, nil)
	require.ErrorIs(t, err, errs.ErrShapeMismatch)
}

func TestRowWise_RoundTrip(t *testing.T) {
	input := "{\"b\":2,\"a\":1}\n\n  \nnot json\n{\"c\":[1,2]}"
	body := EncodeRowWise(input)
	out := DecodeRowWise(body)

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 5)
	require.Equal(t, `{"a":1,"b":2}`, lines[0]) // canonicalised
	require.Equal(t, "", lines[1])
	require.Equal(t, "", lines[2])         // whitespace-only normalises to empty
	require.Equal(t, "not json", lines[3]) // unparseable content preserved
	require.Equal(t, `{"c":[1,2]}`, lines[4])
}

func TestShapeTracker_CollisionSafety(t *testing.T) {
	tracker := newShapeTracker()
	a, _ := jsonval.ParseObject([]byte(`{"a":1,"b":2}`))
	b, _ := jsonval.ParseObject([]byte(`{"a":3,"b":4}`))
	c, _ := jsonval.ParseObject([]byte(`{"a":5,"c":6}`))
	tracker.add(a)
	tracker.add(b)
	tracker.add(c)

	require.Len(t, tracker.groups, 2)
	require.Len(t, tracker.groups[0].records, 2)
	require.Equal(t, []string{"a", "b"}, tracker.groups[0].keys)
	require.Equal(t, []string{"a", "c"}, tracker.groups[1].keys)
	require.NotEqual(t, tracker.groups[0].id, tracker.groups[1].id)
}
