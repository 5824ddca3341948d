package jsonval

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fayez-kaabi/json-ultra-compress/errs"
)

func TestParse_Scalars(t *testing.T) {
	tests := []struct {
		input string
		kind  Kind
	}{
		{"null", KindNull},
		{"true", KindBool},
		{"false", KindBool},
		{"42", KindNumber},
		{"-3.5e2", KindNumber},
		{`"hello"`, KindString},
		{"[1,2]", KindArray},
		{`{"a":1}`, KindObject},
	}
	for _, tt := range tests {
		v, err := Parse([]byte(tt.input))
		require.NoError(t, err, tt.input)
		require.Equal(t, tt.kind, v.Kind(), tt.input)
	}
}

func TestParse_Errors(t *testing.T) {
	for _, input := range []string{"", "{", `{"a":}`, "tru", `"unterminated`, "1 2", `{"a":1} x`} {
		_, err := Parse([]byte(input))
		require.ErrorIs(t, err, errs.ErrNotJSON, "input %q", input)
	}
}

func TestParse_PreservesNumberText(t *testing.T) {
	v, err := Parse([]byte(`{"a":1.50,"b":1e3,"c":-0.0}`))
	require.NoError(t, err)

	a, _ := v.Get("a")
	require.Equal(t, "1.50", a.NumberText())
	b, _ := v.Get("b")
	require.Equal(t, "1e3", b.NumberText())
}

func TestIntVal(t *testing.T) {
	tests := []struct {
		raw  string
		want int64
		ok   bool
	}{
		{"0", 0, true},
		{"-7", -7, true},
		{"9007199254740991", 9007199254740991, true},
		{"-9007199254740991", -9007199254740991, true},
		{"9007199254740992", 0, false},
		{"1.0", 0, false},
		{"1e3", 0, false},
		{"-0", 0, false},
	}
	for _, tt := range tests {
		got, ok := Number(tt.raw).IntVal()
		require.Equal(t, tt.ok, ok, tt.raw)
		if ok {
			require.Equal(t, tt.want, got, tt.raw)
		}
	}

	_, ok := String("5").IntVal()
	require.False(t, ok)
}

func TestCanonical_SortsKeysRecursively(t *testing.T) {
	v, err := Parse([]byte(`{"b":{"d":1,"c":2},"a":[{"z":0,"y":1}]}`))
	require.NoError(t, err)
	require.Equal(t, `{"a":[{"y":1,"z":0}],"b":{"c":2,"d":1}}`, string(Canonical(v)))
}

func TestCanonical_Idempotent(t *testing.T) {
	inputs := []string{
		`{"b":1,"a":{"y":true,"x":null}}`,
		`[1,"two",3.00,{"k":[]}]`,
		`"tab\tnewline\nquote\""`,
		`0`,
	}
	for _, input := range inputs {
		once, err := Canonicalize([]byte(input))
		require.NoError(t, err)
		twice, err := Canonicalize(once)
		require.NoError(t, err)
		require.Equal(t, string(once), string(twice), input)
	}
}

func TestAppendQuoted(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", `"plain"`},
		{`with "quotes"`, `"with \"quotes\""`},
		{"back\\slash", `"back\\slash"`},
		{"line\nbreak\ttab", `"line\nbreak\ttab"`},
		{"ctrl\x01byte", `"ctrl\u0001byte"`},
		{"héllo 世界", `"héllo 世界"`},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, string(AppendQuoted(nil, tt.in)))
	}
}

func TestParseObject(t *testing.T) {
	v, ok := ParseObject([]byte(`{"a":1}`))
	require.True(t, ok)
	require.Equal(t, KindObject, v.Kind())

	for _, line := range []string{"5", `"str"`, "[1]", "not json", ""} {
		_, ok := ParseObject([]byte(line))
		require.False(t, ok, line)
	}
}

func TestSplitLines(t *testing.T) {
	require.Equal(t, []string{`{"a":1}`, "", `{"b":2}`}, SplitLines("{\"a\":1}\n\n{\"b\":2}"))
	require.Equal(t, []string{"a", "b", ""}, SplitLines("a\r\nb\n"))
	require.Equal(t, []string{"x"}, SplitLines("\xef\xbb\xbfx"))
	require.Equal(t, []string{""}, SplitLines(""))
}

func TestIsBlank(t *testing.T) {
	require.True(t, IsBlank(""))
	require.True(t, IsBlank("   \t"))
	require.False(t, IsBlank(" x "))
}

func TestEqual_ObjectOrderInsensitive(t *testing.T) {
	a, err := Parse([]byte(`{"x":1,"y":[1,2]}`))
	require.NoError(t, err)
	b, err := Parse([]byte(`{"y":[1,2],"x":1}`))
	require.NoError(t, err)
	require.True(t, a.Equal(b))

	c, err := Parse([]byte(`{"x":1,"y":[2,1]}`))
	require.NoError(t, err)
	require.False(t, a.Equal(c))
}
