package main

import (
	"log/slog"
	"machine"
	"time"

	"github.com/harveysanders/sevenseg/segment"
)

// Segments a-g wired to GP0-GP6 through 330 ohm resistors, common cathode to GND.
var segmentPins = [7]machine.Pin{
	machine.GP0, machine.GP1, machine.GP2, machine.GP3,
	machine.GP4, machine.GP5, machine.GP6,
}

func main() {
	logger := slog.New(slog.NewTextHandler(machine.Serial, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	for _, p := range segmentPins {
		p.Configure(machine.PinConfig{Mode: machine.PinOutput})
	}
	disp := segment.Pins[segment.PinLine[machine.Pin]]{
		A: segment.Infallible(segmentPins[0]),
		B: segment.Infallible(segmentPins[1]),
		C: segment.Infallible(segmentPins[2]),
		D: segment.Infallible(segmentPins[3]),
		E: segment.Infallible(segmentPins[4]),
		F: segment.Infallible(segmentPins[5]),
		G: segment.Infallible(segmentPins[6]),
	}.WithCommonCathode()

	// Count 0-F, then one blank step.
	for {
		for v := 0; v <= segment.MaxHex+1; v++ {
			// machine.Pin cannot fail, so the error is always nil.
			_ = disp.Set(v)
			logger.Info("display:set", slog.Int("value", v))
			time.Sleep(time.Second)
		}
	}
}
