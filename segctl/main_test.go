package main

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harveysanders/sevenseg/segment"
	"github.com/harveysanders/sevenseg/segment/segmenttest"
)

func TestParseFlags(t *testing.T) {
	cfg, err := parseFlags([]string{"-common", "anode", "-decimal", "-interval", "1s", "3", "a", "0x10"})
	require.NoError(t, err)
	assert.Equal(t, segment.Anode, cfg.common)
	assert.True(t, cfg.decimal)
	assert.Equal(t, "1s", cfg.interval.String())
	assert.Equal(t, []int{3, 10, 16}, cfg.values)
	assert.Equal(t, "GPIO5", cfg.pins[0])
	assert.Equal(t, "GPIO20", cfg.pins[6])
}

func TestParseFlagsErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no values", []string{}},
		{"bad value", []string{"seven"}},
		{"short pins", []string{"-pins", "GPIO1,GPIO2", "1"}},
		{"bad common", []string{"-common", "both", "1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseFlags(tt.args)
			assert.Error(t, err)
		})
	}
}

func TestShow(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	bank := segmenttest.NewBank()
	disp := bank.Pins().WithCommonCathode()

	require.NoError(t, show(disp, segment.Lookup, []int{1, 8}, 0, logger))
	assert.Equal(t, "1111111", bank.Levels())

	require.NoError(t, show(segment.NewDecimal(disp), segment.LookupDecimal, []int{0xb}, 0, logger))
	assert.Equal(t, "0000000", bank.Levels())
}

func TestShowStopsOnError(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	bank := segmenttest.NewBank()
	bank.Line("g").Fail = true

	err := show(bank.Pins().WithCommonCathode(), segment.Lookup, []int{1, 2}, 0, logger)
	require.ErrorIs(t, err, segmenttest.ErrInjected)
	assert.Contains(t, err.Error(), "set 1")
}
