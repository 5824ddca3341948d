package jsonval

import "strings"

// utf8BOM is the byte order mark some producers prepend to NDJSON streams.
const utf8BOM = "\xef\xbb\xbf"

// SplitLines splits NDJSON text on \r?\n boundaries, stripping a leading
// UTF-8 BOM if present. A trailing newline yields a final empty line, so
// joining the result with "\n" reproduces the input's line structure.
func SplitLines(text string) []string {
	text = strings.TrimPrefix(text, utf8BOM)
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}

	return lines
}

// IsBlank reports whether a line is empty or whitespace-only.
func IsBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

// Canonicalize parses one JSON document and reprints it canonically:
// recursively sorted object keys, compact output, original number forms.
func Canonicalize(jsonText []byte) ([]byte, error) {
	v, err := Parse(jsonText)
	if err != nil {
		return nil, err
	}

	return Canonical(v), nil
}
