// Package periphline drives a seven-segment display from GPIO pins exposed
// through periph.io, for example on a Raspberry Pi.
package periphline

import (
	"errors"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"

	"github.com/harveysanders/sevenseg/segment"
)

// Line adapts a periph.io output pin to segment.Line.
type Line struct {
	gpio.PinOut
}

func (l Line) High() error { return l.Out(gpio.High) }

func (l Line) Low() error { return l.Out(gpio.Low) }

// Pins wraps seven periph.io pins, given in a..g order.
func Pins(a, b, c, d, e, f, g gpio.PinOut) segment.Pins[Line] {
	return segment.Pins[Line]{
		A: Line{a}, B: Line{b}, C: Line{c}, D: Line{d},
		E: Line{e}, F: Line{f}, G: Line{g},
	}
}

// ByName resolves seven pin names through gpioreg, in a..g order. The
// periph host drivers must be initialized first.
func ByName(names [7]string) (segment.Pins[Line], error) {
	var pins [7]gpio.PinOut
	for i, name := range names {
		p := gpioreg.ByName(name)
		if p == nil {
			return segment.Pins[Line]{}, errors.New("periphline: no gpio pin named " + name + " for segment " + segment.Segment(i).String())
		}
		pins[i] = p
	}
	return Pins(pins[0], pins[1], pins[2], pins[3], pins[4], pins[5], pins[6]), nil
}
