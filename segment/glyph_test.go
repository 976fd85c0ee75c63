package segment_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harveysanders/sevenseg/segment"
)

// glyphRows lists segments a..g for every value with a hexadecimal glyph.
var glyphRows = []string{
	"1111110", // 0
	"0110000", // 1
	"1101101", // 2
	"1111001", // 3
	"0110011", // 4
	"1011011", // 5
	"1011111", // 6
	"1110000", // 7
	"1111111", // 8
	"1111011", // 9
	"1110111", // A
	"0011111", // b
	"1001110", // C
	"0111101", // d
	"1001111", // E
	"1000111", // F
}

func TestLookupHex(t *testing.T) {
	for v, want := range glyphRows {
		p := segment.Lookup(v)
		require.Equal(t, want, p.String(), "value %d", v)
		for s := segment.A; s <= segment.G; s++ {
			assert.Equal(t, want[s] == '1', p.Lit(s), "value %d segment %s", v, s)
		}
	}
}

func TestLookupDecimal(t *testing.T) {
	for v := 0; v <= segment.MaxDecimal; v++ {
		require.Equal(t, glyphRows[v], segment.LookupDecimal(v).String(), "value %d", v)
		require.Equal(t, segment.Lookup(v), segment.LookupDecimal(v), "tables differ at %d", v)
	}
	for v := segment.MaxDecimal + 1; v <= segment.MaxHex; v++ {
		assert.Equal(t, segment.Blank, segment.LookupDecimal(v), "value %d", v)
	}
}

func TestLookupOutOfRange(t *testing.T) {
	for _, v := range []int{16, 17, 255, 1 << 20, math.MaxInt, -1, -16, math.MinInt} {
		assert.Equal(t, segment.Blank, segment.Lookup(v), "Lookup(%d)", v)
		assert.Equal(t, segment.Blank, segment.LookupDecimal(v), "LookupDecimal(%d)", v)
	}
	assert.Equal(t, "0000000", segment.Blank.String())
}

func TestSegmentString(t *testing.T) {
	var got string
	for s := segment.A; s <= segment.G; s++ {
		got += s.String()
	}
	assert.Equal(t, "abcdefg", got)
	assert.Equal(t, "?", segment.Segment(7).String())
}
