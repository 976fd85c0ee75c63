// segctl shows values on a seven-segment display wired straight to the GPIO
// header of a Linux board.
//
//	segctl -pins GPIO5,GPIO6,GPIO13,GPIO19,GPIO26,GPIO16,GPIO20 -common anode 3 a 0xf
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"periph.io/x/host/v3"

	"github.com/harveysanders/sevenseg/segment"
	"github.com/harveysanders/sevenseg/segment/periphline"
)

const defaultPins = "GPIO5,GPIO6,GPIO13,GPIO19,GPIO26,GPIO16,GPIO20"

type config struct {
	pins     [7]string
	common   segment.Polarity
	decimal  bool
	interval time.Duration
	verbose  bool
	values   []int
}

func main() {
	cfg, err := parseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, "segctl:", err)
		os.Exit(2)
	}

	level := slog.LevelInfo
	if cfg.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if err := run(cfg, logger); err != nil {
		logger.Error("segctl:failed", slog.Any("reason", err))
		os.Exit(1)
	}
}

func parseFlags(args []string) (config, error) {
	cfg := config{common: segment.Cathode}
	fs := flag.NewFlagSet("segctl", flag.ContinueOnError)
	pins := fs.String("pins", defaultPins, "comma separated GPIO names for segments a through g")
	fs.Var(&cfg.common, "common", "common electrode: anode or cathode")
	fs.BoolVar(&cfg.decimal, "decimal", false, "decimal digits only, 10-15 blank the display")
	fs.DurationVar(&cfg.interval, "interval", 500*time.Millisecond, "delay between values")
	fs.BoolVar(&cfg.verbose, "v", false, "debug logging")
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	names := strings.Split(*pins, ",")
	if len(names) != len(cfg.pins) {
		return cfg, fmt.Errorf("-pins: want 7 names, got %d", len(names))
	}
	for i, name := range names {
		cfg.pins[i] = strings.TrimSpace(name)
	}

	if fs.NArg() == 0 {
		return cfg, errors.New("no values given")
	}
	for _, arg := range fs.Args() {
		v, err := segment.ParseValue([]byte(arg))
		if err != nil {
			return cfg, fmt.Errorf("value %q: %w", arg, err)
		}
		cfg.values = append(cfg.values, v)
	}
	return cfg, nil
}

// setter is satisfied by both the hex display and the decimal wrapper.
type setter interface {
	Set(value int) error
}

func run(cfg config, logger *slog.Logger) error {
	state, err := host.Init()
	if err != nil {
		return fmt.Errorf("periph host init: %w", err)
	}
	for _, failure := range state.Failed {
		logger.Debug("periph:driver-failed", slog.String("driver", failure.D.String()), slog.Any("err", failure.Err))
	}

	pins, err := periphline.ByName(cfg.pins)
	if err != nil {
		return err
	}
	disp := pins.WithCommon(cfg.common)
	logger.Debug("display:ready",
		slog.String("pins", strings.Join(cfg.pins[:], ",")),
		slog.String("common", cfg.common.String()),
		slog.Bool("decimal", cfg.decimal),
	)

	var out setter = disp
	lookup := segment.Lookup
	if cfg.decimal {
		out = segment.NewDecimal(disp)
		lookup = segment.LookupDecimal
	}
	return show(out, lookup, cfg.values, cfg.interval, logger)
}

// show writes every value in turn, pausing interval between them.
// lookup only feeds the log line.
func show(out setter, lookup func(int) segment.Pattern, values []int, interval time.Duration, logger *slog.Logger) error {
	for i, v := range values {
		if i > 0 {
			time.Sleep(interval)
		}
		if err := out.Set(v); err != nil {
			return fmt.Errorf("set %d: %w", v, err)
		}
		logger.Info("display:set", slog.Int("value", v), slog.String("pattern", lookup(v).String()))
	}
	return nil
}
