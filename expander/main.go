package main

import (
	"errors"
	"log/slog"
	"machine"
	"time"

	"tinygo.org/x/drivers"
	"tinygo.org/x/drivers/mcp23017"

	"github.com/harveysanders/sevenseg/segment"
)

// MCP23017 with A0-A2 tied to GND. Segments a-g sit on GPA0-GPA6 and the
// display is common anode, so an I2C write error shows up as a Set error.
const expanderAddr = 0x20

func main() {
	logger := slog.New(slog.NewTextHandler(machine.Serial, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	err := machine.I2C0.Configure(machine.I2CConfig{
		SDA: machine.GP4,
		SCL: machine.GP5,
	})
	if err != nil {
		printErrForever(logger, "configure I2C", slog.Any("reason", err))
	}

	disp, err := configureDisplay(machine.I2C0, expanderAddr)
	if err != nil {
		printErrForever(logger, "configure expander", slog.Any("reason", err))
	}
	dec := segment.NewDecimal(disp)

	// 10 has no decimal glyph and blanks the display between rounds.
	for {
		for v := 0; v <= segment.MaxDecimal+1; v++ {
			if err := dec.Set(v); err != nil {
				// A partially written digit is left on the display; the next
				// Set rewrites every segment.
				logger.Error("display:set-failed", slog.Int("value", v), slog.Any("reason", err))
			}
			time.Sleep(time.Second)
		}
	}
}

// configureDisplay sets up the expander at addr on bus and returns a
// display driving its first seven pins.
func configureDisplay(bus drivers.I2C, addr uint8) (*segment.Display[mcp23017.Pin], error) {
	dev, err := mcp23017.NewI2C(bus, addr)
	if err != nil {
		return nil, errors.New("mcp23017 at " + hexByte(addr) + ":" + err.Error())
	}
	var pins [7]mcp23017.Pin
	for i := range pins {
		pins[i] = dev.GetPin(i)
		if err := pins[i].SetMode(mcp23017.Output); err != nil {
			return nil, errors.New("mcp23017 pin mode:" + err.Error())
		}
	}
	return segment.Pins[mcp23017.Pin]{
		A: pins[0], B: pins[1], C: pins[2], D: pins[3],
		E: pins[4], F: pins[5], G: pins[6],
	}.WithCommonAnode(), nil
}

func hexByte(b uint8) string {
	const digits = "0123456789abcdef"
	return "0x" + string(digits[b>>4]) + string(digits[b&0xf])
}

// printErrForever prints a string to serial @ 1hz. It blocks forever.
func printErrForever(logger *slog.Logger, msg string, args ...any) {
	for {
		logger.Error(msg, args...)
		time.Sleep(time.Second)
	}
}
