package segment_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harveysanders/sevenseg/segment"
)

func TestParseValue(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"0", 0},
		{"7", 7},
		{"a", 10},
		{"F", 15},
		{" 9\n", 9},
		{"12", 12},
		{"08", 8},
		{"0xb", 11},
		{"0XF", 15},
		{"0b101", 5},
		{"16", 16},
		{"-3", -3},
		{"99999999999999999999999", -1},
	}
	for _, tt := range tests {
		got, err := segment.ParseValue([]byte(tt.in))
		require.NoError(t, err, "%q", tt.in)
		assert.Equal(t, tt.want, got, "%q", tt.in)
	}
}

func TestParseValueSyntax(t *testing.T) {
	for _, in := range []string{"", "  ", "g", "x", "seven", "0xz", "1.5"} {
		_, err := segment.ParseValue([]byte(in))
		assert.ErrorIs(t, err, segment.ErrSyntax, "%q", in)
	}
}

func TestParsedValueBlanksWhenOutOfRange(t *testing.T) {
	v, err := segment.ParseValue([]byte("99999999999999999999999"))
	require.NoError(t, err)
	assert.Equal(t, segment.Blank, segment.Lookup(v))
}
