package segment_test

import (
	"flag"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harveysanders/sevenseg/segment"
)

func TestPolarityLevel(t *testing.T) {
	assert.True(t, segment.Cathode.Level(true))
	assert.False(t, segment.Cathode.Level(false))
	assert.False(t, segment.Anode.Level(true))
	assert.True(t, segment.Anode.Level(false))
}

func TestParsePolarity(t *testing.T) {
	tests := []struct {
		in   string
		want segment.Polarity
	}{
		{"anode", segment.Anode},
		{"Anode", segment.Anode},
		{" ca ", segment.Anode},
		{"common-anode", segment.Anode},
		{"cathode", segment.Cathode},
		{"CC", segment.Cathode},
		{"common-cathode", segment.Cathode},
	}
	for _, tt := range tests {
		got, err := segment.ParsePolarity(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := segment.ParsePolarity("both")
	assert.Error(t, err)
}

func TestPolarityText(t *testing.T) {
	for _, p := range []segment.Polarity{segment.Anode, segment.Cathode} {
		text, err := p.MarshalText()
		require.NoError(t, err)

		var got segment.Polarity
		require.NoError(t, got.UnmarshalText(text))
		assert.Equal(t, p, got)
	}

	_, err := segment.Polarity(9).MarshalText()
	assert.Error(t, err)
	assert.Equal(t, "unknown", segment.Polarity(9).String())
}

func TestPolarityFlag(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	common := segment.Cathode
	fs.Var(&common, "common", "")

	require.NoError(t, fs.Parse([]string{"-common", "anode"}))
	assert.Equal(t, segment.Anode, common)

	fs = flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Var(&common, "common", "")
	assert.Error(t, fs.Parse([]string{"-common", "sideways"}))
	assert.Equal(t, segment.Anode, common, "failed parse must not change the value")
}
