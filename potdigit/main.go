package main

import (
	"machine"
	"strconv"
	"time"

	"tinygo.org/x/drivers/hd44780i2c"

	"github.com/harveysanders/sevenseg/segment"
)

const (
	max16Bit uint16  = 65535 // Pico ADC readings are scaled to 16 bits.
	sysV     float32 = 3.3   // Logic level in volts.
)

func main() {
	machine.InitADC()
	sensor := machine.ADC{Pin: machine.ADC0}
	sensor.Configure(machine.ADCConfig{})

	// Common anode display on GP8-GP14, anode to 3V3.
	pins := [7]machine.Pin{
		machine.GP8, machine.GP9, machine.GP10, machine.GP11,
		machine.GP12, machine.GP13, machine.GP14,
	}
	for _, p := range pins {
		p.Configure(machine.PinConfig{Mode: machine.PinOutput})
	}
	disp := segment.New(
		segment.Infallible(pins[0]), segment.Infallible(pins[1]),
		segment.Infallible(pins[2]), segment.Infallible(pins[3]),
		segment.Infallible(pins[4]), segment.Infallible(pins[5]),
		segment.Infallible(pins[6]),
		segment.Anode,
	)
	_ = disp.Clear()

	// The LCD is optional; it mirrors the reading when present.
	var lcd *hd44780i2c.Device
	err := machine.I2C0.Configure(machine.I2CConfig{
		SDA: machine.GP4,
		SCL: machine.GP5,
	})
	if err != nil {
		println("could not configure I2C, running without LCD:", err.Error())
	} else {
		dev := hd44780i2c.New(machine.I2C0, 0x27)
		dev.Configure(hd44780i2c.Config{
			Width:  16,
			Height: 2,
		})
		dev.ClearDisplay()
		lcd = &dev
	}

	// We need a preallocated buffer so the heap isn't exhausted
	// by many calls to fmt functions.
	printBuf := make([]byte, 0, 40)
	const floatNoExp = 'f'

	shown := -1
	for {
		val := sensor.Get()
		digit := potDigit(val)
		if digit != shown {
			_ = disp.Set(digit)
			shown = digit

			if lcd != nil {
				voltage := float32(val) / float32(max16Bit) * sysV
				printBuf = printBuf[:0]
				printBuf = append(printBuf, "V: "...)
				printBuf = strconv.AppendFloat(printBuf, float64(voltage), floatNoExp, 2, 32)
				printBuf = append(printBuf, "\nDigit: "...)
				printBuf = strconv.AppendInt(printBuf, int64(digit), 16)
				lcd.ClearDisplay()
				lcd.SetCursor(0, 0)
				lcd.Print(printBuf)
			}
		}
		time.Sleep(time.Millisecond * 100)
	}
}

// potDigit splits the pot's travel into sixteen equal bands, one per hex digit.
func potDigit(val uint16) int {
	return int(uint32(val) * (segment.MaxHex + 1) / (uint32(max16Bit) + 1))
}
