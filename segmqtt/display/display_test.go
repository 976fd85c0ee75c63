package display_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harveysanders/sevenseg/segment"
	"github.com/harveysanders/sevenseg/segment/segmenttest"
	"github.com/harveysanders/sevenseg/segmqtt/display"
)

func newLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestHandlerAppliesValues(t *testing.T) {
	var logs bytes.Buffer
	bank := segmenttest.NewBank()
	values := make(chan int, 3)
	shown := make(chan display.Shown, 3)

	h := display.NewHandler(bank.Pins().WithCommonCathode(), values, newLogger(&logs)).Notify(shown)
	_, ok := h.Last()
	assert.False(t, ok)

	values <- 3
	values <- 0xe
	close(values)
	h.Run()

	assert.Equal(t, "1001111", bank.Levels())
	last, ok := h.Last()
	require.True(t, ok)
	assert.Equal(t, 0xe, last)

	require.Len(t, shown, 2)
	first := <-shown
	assert.Equal(t, 3, first.Value)
	assert.Equal(t, segment.Lookup(3), first.Pattern)
	assert.NoError(t, first.Err)
	assert.Contains(t, logs.String(), "display:set")
}

func TestHandlerRetriesOnce(t *testing.T) {
	var logs bytes.Buffer
	bank := segmenttest.NewBank()
	bank.Line("b").Fail = true
	values := make(chan int, 1)
	shown := make(chan display.Shown, 1)

	h := display.NewHandler(bank.Pins().WithCommonCathode(), values, newLogger(&logs)).Notify(shown)
	values <- 8
	close(values)
	h.Run()

	// Two attempts, each stopping at segment b.
	assert.Equal(t, []string{"a", "b", "a", "b"}, bank.Journal.Names())
	_, ok := h.Last()
	assert.False(t, ok)

	got := <-shown
	assert.ErrorIs(t, got.Err, segmenttest.ErrInjected)
	assert.Contains(t, logs.String(), "display:set-failed")
	assert.Contains(t, logs.String(), "display:retry-failed")
}

// flaky fails on its first call only.
type flaky struct {
	segmenttest.Line
	calls int
}

func (f *flaky) High() error {
	f.calls++
	if f.calls == 1 {
		return segmenttest.ErrInjected
	}
	return f.Line.High()
}

func TestHandlerRetrySucceeds(t *testing.T) {
	bank := segmenttest.NewBank()
	a := &flaky{}
	pins := segment.Pins[segment.Line]{
		A: a, B: bank.Line("b"), C: bank.Line("c"), D: bank.Line("d"),
		E: bank.Line("e"), F: bank.Line("f"), G: bank.Line("g"),
	}
	values := make(chan int, 1)
	h := display.NewHandler(pins.WithCommonCathode(), values, newLogger(&bytes.Buffer{}))
	values <- 7
	close(values)
	h.Run()

	last, ok := h.Last()
	require.True(t, ok)
	assert.Equal(t, 7, last)
	assert.Equal(t, segmenttest.High, a.Level)
}

func TestHandlerDecimalLookup(t *testing.T) {
	bank := segmenttest.NewBank()
	values := make(chan int, 1)
	shown := make(chan display.Shown, 1)
	dec := segment.NewDecimal(bank.Pins().WithCommonAnode())

	h := display.NewHandler(dec, values, newLogger(&bytes.Buffer{})).
		WithLookup(segment.LookupDecimal).
		Notify(shown)
	values <- 0xc
	close(values)
	h.Run()

	assert.Equal(t, "1111111", bank.Levels())
	assert.Equal(t, segment.Blank, (<-shown).Pattern)
}

func TestSendDropsWhenFull(t *testing.T) {
	ch := make(chan int, 1)
	assert.True(t, display.Send(ch, 1))
	assert.False(t, display.Send(ch, 2))
	assert.Equal(t, 1, <-ch)
}

func TestShownJSON(t *testing.T) {
	b, err := json.Marshal(display.Shown{Value: 7, Pattern: segment.Lookup(7)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"value":7,"blank":false,"pattern":"1110000"}`, string(b))

	b, err = json.Marshal(display.Shown{Value: 16, Pattern: segment.Lookup(16), Err: segmenttest.ErrInjected})
	require.NoError(t, err)
	assert.JSONEq(t, `{"value":16,"blank":true,"pattern":"0000000","error":"segmenttest: injected line failure"}`, string(b))
}
