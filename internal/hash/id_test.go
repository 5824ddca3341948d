package hash

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestShapeID_KnownVector(t *testing.T) {
	// FNV-1a 64 test vectors from the reference implementation.
	require.Equal(t, uint64(0xcbf29ce484222325), ShapeID(""))
	require.Equal(t, uint64(0xaf63dc4c8601ec8c), ShapeID("a"))
}

func TestShapeID_DistinguishesKeyLists(t *testing.T) {
	ab := ShapeID(strings.Join([]string{"a", "b"}, ShapeSeparator))
	ac := ShapeID(strings.Join([]string{"a", "c"}, ShapeSeparator))
	require.NotEqual(t, ab, ac)

	// The separator keeps ["ab"] and ["a","b"] distinct.
	joined := ShapeID("ab")
	split := ShapeID("a" + ShapeSeparator + "b")
	require.NotEqual(t, joined, split)
}

func TestScoutID_Deterministic(t *testing.T) {
	data := []byte(`{"a":1}`)
	require.Equal(t, ScoutID(data), ScoutID(data))
	require.NotEqual(t, ScoutID(data), ScoutID([]byte(`{"a":2}`)))
}
