package blob

import (
	"strings"

	"github.com/fayez-kaabi/json-ultra-compress/jsonval"
)

// EncodeRowWise is the line-preserving fallback: each parseable line is
// canonicalised in place, blank lines normalise to empty, and unparseable
// lines pass through verbatim. Line count and order are exactly preserved;
// parseable lines come back byte-identical only if they were already in
// canonical form.
func EncodeRowWise(ndjson string) []byte {
	lines := jsonval.SplitLines(ndjson)
	out := make([]string, len(lines))

	for i, line := range lines {
		if jsonval.IsBlank(line) {
			out[i] = ""
			continue
		}
		canonical, err := jsonval.Canonicalize([]byte(line))
		if err != nil {
			out[i] = line
			continue
		}
		out[i] = string(canonical)
	}

	return []byte(strings.Join(out, "\n"))
}

// DecodeRowWise inverts EncodeRowWise. The body already is the line stream.
func DecodeRowWise(body []byte) string {
	return string(body)
}
