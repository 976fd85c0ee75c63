package main

import (
	"log/slog"
	"machine"
	"time"

	"github.com/harveysanders/sevenseg/segment"
	"github.com/harveysanders/sevenseg/segmqtt/cyw43439"
	"github.com/harveysanders/sevenseg/segmqtt/display"
	"github.com/harveysanders/sevenseg/segmqtt/mqtt"
)

// Set with -ldflags "-X main.brokerAddr=... -X main.common=anode".
var (
	brokerAddr   = "10.0.0.9:1883"
	commandTopic = "sevenseg/set"
	stateTopic   = "sevenseg/state"
	mqttUser     string
	mqttPass     string
	common       = "cathode"
)

// Segments a-g on GP10-GP16.
var segmentPins = [7]machine.Pin{
	machine.GP10, machine.GP11, machine.GP12, machine.GP13,
	machine.GP14, machine.GP15, machine.GP16,
}

func main() {
	logger := slog.New(slog.NewTextHandler(machine.Serial, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	polarity, err := segment.ParsePolarity(common)
	if err != nil {
		printErrForever(logger, "parse common polarity", slog.String("common", common), slog.Any("reason", err))
	}
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
	}.WithCommon(polarity)
	_ = disp.Clear()

	// Small buffers: a burst of commands beyond this is dropped, not queued.
	values := make(chan int, 4)
	shown := make(chan display.Shown, 4)
	go display.NewHandler(disp, values, logger).Notify(shown).Run()

	stack, err := cyw43439.Connect(cyw43439.Config{
		SSID:        cyw43439.SSID(),
		Password:    cyw43439.Password(),
		Hostname:    "sevenseg",
		MaxTCPPorts: 1,
		Logger:      logger,
	})
	if err != nil {
		printErrForever(logger, "wifi setup", slog.Any("reason", err))
	}
	logger.Info("wifi:ready", slog.String("ip", stack.Addr().String()))

	c := mqtt.Client{
		ID:                "tinygo-sevenseg",
		CommandTopic:      commandTopic,
		StateTopic:        stateTopic,
		Logger:            logger,
		Timeout:           5 * time.Second,
		HeartbeatInterval: 250 * time.Millisecond,
		TCPBufSize:        2030, // MTU - ethhdr - iphdr - tcphdr
		Username:          mqttUser,
		Password:          mqttPass,
	}
	err = c.ConnectAndServe(stack, brokerAddr, values, shown)
	printErrForever(logger, "mqtt", slog.Any("reason", err))
}

// printErrForever prints a string to serial @ 1hz. It blocks forever.
func printErrForever(logger *slog.Logger, msg string, args ...any) {
	for {
		logger.Error(msg, args...)
		time.Sleep(time.Second)
	}
}
