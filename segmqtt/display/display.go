// Package display feeds values from a channel to a seven-segment display.
//
// Example usage:
//
//	values := make(chan int, 4)
//	handler := display.NewHandler(disp, values, logger)
//	go handler.Run()
//
//	// From the MQTT callback, without blocking:
//	display.Send(values, 7)
package display

import (
	"encoding/json"
	"log/slog"

	"github.com/harveysanders/sevenseg/segment"
)

// Setter shows a value. *segment.Display and *segment.Decimal satisfy it.
type Setter interface {
	Set(value int) error
}

// Shown reports a value after it was written to the display.
type Shown struct {
	Value   int
	Pattern segment.Pattern
	Err     error
}

// state is the JSON form of Shown published back to the broker.
type state struct {
	Value   int    `json:"value"`
	Blank   bool   `json:"blank"`
	Pattern string `json:"pattern"`
	Error   string `json:"error,omitempty"`
}

// MarshalJSON encodes s as {"value":7,"blank":false,"pattern":"1110000"}.
func (s Shown) MarshalJSON() ([]byte, error) {
	st := state{
		Value:   s.Value,
		Blank:   s.Pattern == segment.Blank,
		Pattern: s.Pattern.String(),
	}
	if s.Err != nil {
		st.Error = s.Err.Error()
	}
	return json.Marshal(st)
}

// Handler applies values received on a channel to a display.
type Handler struct {
	disp     Setter
	lookup   func(int) segment.Pattern
	values   <-chan int
	logger   *slog.Logger
	shown    chan<- Shown
	last     int
	hasShown bool
}

// NewHandler creates a handler for a display that shows hex digits.
func NewHandler(disp Setter, values <-chan int, logger *slog.Logger) *Handler {
	return &Handler{
		disp:   disp,
		lookup: segment.Lookup,
		values: values,
		logger: logger,
	}
}

// WithLookup sets the table used to report the shown pattern, for example
// segment.LookupDecimal when disp is a *segment.Decimal.
func (h *Handler) WithLookup(lookup func(int) segment.Pattern) *Handler {
	h.lookup = lookup
	return h
}

// Notify makes the handler report every applied value on ch.
// Reports are dropped when ch is full.
func (h *Handler) Notify(ch chan<- Shown) *Handler {
	h.shown = ch
	return h
}

// Run processes values until the channel is closed.
// Run should be called in a separate goroutine.
func (h *Handler) Run() {
	for v := range h.values {
		h.apply(v)
	}
}

// apply writes v, retrying once since a failed Set can leave the display
// half written.
func (h *Handler) apply(v int) {
	err := h.disp.Set(v)
	if err != nil {
		h.logger.Error("display:set-failed", slog.Int("value", v), slog.String("err", err.Error()))
		err = h.disp.Set(v)
	}
	if err != nil {
		h.logger.Error("display:retry-failed", slog.Int("value", v), slog.String("err", err.Error()))
	} else {
		h.last = v
		h.hasShown = true
		h.logger.Info("display:set", slog.Int("value", v))
	}

	if h.shown != nil {
		select {
		case h.shown <- Shown{Value: v, Pattern: h.lookup(v), Err: err}:
		default:
		}
	}
}

// Last returns the last value written without error. ok is false until
// a value has been shown. Last is not synchronized with Run; call it once
// Run has returned.
func (h *Handler) Last() (value int, ok bool) {
	return h.last, h.hasShown
}

// Send queues v without blocking. It reports false if ch was full and v
// was dropped.
func Send(ch chan<- int, v int) bool {
	select {
	case ch <- v:
		return true
	default:
		return false
	}
}
