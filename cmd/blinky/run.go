// SPDX-License-Identifier: MIT
//
// Copyright © 2019 Kent Gibson <warthog618@gmail.com>.

//go:build linux
// +build linux

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"github.com/warthog618/blinky"
	"github.com/warthog618/blinky/board"
	"github.com/warthog618/blinky/gpioled"
	"github.com/warthog618/blinky/pmicled"
	"github.com/warthog618/config"
	"golang.org/x/sys/unix"
)

func init() {
	runCmd.SetHelpTemplate(runCmd.HelpTemplate() + extendedRunHelp)
	addRunFlags(runCmd)
	rootCmd.AddCommand(runCmd)
}

var extendedRunHelp = `
Variants:
  gpio:         toggle the line behind the board's led0 alias
  pmic-led:     switch a channel of the board's PMIC LED driver on and off

Environment:
  Any flag may be set from the environment, e.g. BLINKY_GPIO_CHIP for
  --gpio-chip, or from the JSON config file.

Note:
  Blinking continues until SIGINT or SIGTERM. A GPIO line reverts to an
  input on exit.
`

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Blink the LED",
	Long:  `Blink the LED of the board, using the variant appropriate to the board.`,
	Args:  cobra.NoArgs,
	Run:   run,
}

// settings are the resolved configuration of a run.
type settings struct {
	board         string
	period        time.Duration
	gpioLine      string
	gpioChip      string
	gpioPin       string
	activeLow     bool
	ledDir        string
	ledController string
	ledChannel    int
	logLevel      string
}

func newSettings(cfg *config.Config) settings {
	return settings{
		board:         cfg.MustGet("board").String(),
		period:        cfg.MustGet("period").Duration(),
		gpioLine:      cfg.MustGet("gpio.line").String(),
		gpioChip:      cfg.MustGet("gpio.chip").String(),
		gpioPin:       cfg.MustGet("gpio.pin").String(),
		activeLow:     cfg.MustGet("gpio.active.low").Bool(),
		ledDir:        cfg.MustGet("led.dir").String(),
		ledController: cfg.MustGet("led.controller").String(),
		ledChannel:    cfg.MustGet("led.channel").Int(),
		logLevel:      cfg.MustGet("log.level").String(),
	}
}

func run(cmd *cobra.Command, args []string) {
	s := newSettings(loadConfig(cmd.Flags()))
	logger, err := newLogger(os.Stderr, s.logLevel)
	if err != nil {
		logErr(cmd, err)
		os.Exit(1)
	}
	b, err := board.Lookup(s.board)
	if err != nil {
		logger.Warn("no board description, using led0", "board", s.board)
	}
	ctx, stop := signal.NotifyContext(context.Background(), unix.SIGINT, unix.SIGTERM)
	defer stop()
	if err := blink(ctx, os.Stdout, b, s, logger); err != nil {
		logErr(cmd, err)
	}
}

func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: l})), nil
}

// blink builds the Blinker for the board and runs it until ctx is done.
func blink(ctx context.Context, out io.Writer, b board.Board, s settings, logger *slog.Logger) error {
	if b.Variant == board.VariantGPIO {
		fmt.Fprintf(out, "Hello World! %s\n", b.Name)
	}
	bl, closer, err := newBlinker(b, s, logger)
	if err != nil {
		return err
	}
	defer closer.Close()
	return bl.Blink(ctx)
}

// newBlinker selects the blink strategy for the board.
func newBlinker(b board.Board, s settings, logger *slog.Logger) (blinky.Blinker, io.Closer, error) {
	opts := []blinky.Option{
		blinky.WithPeriod(s.period),
		blinky.WithLogger(logger),
	}
	switch b.Variant {
	case board.VariantPMICLED:
		ctrl, ch, err := ledController(b, s)
		if err != nil {
			return nil, nil, err
		}
		logger.Debug("led", "controller", ctrl.Name(), "channel", ch)
		opts = append(opts, blinky.WithChannel(ch))
		return blinky.NewLEDBlinker(ctrl, opts...), nopCloser{}, nil
	default:
		spec, err := pinSpec(b, s)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %w", blinky.ErrNotReady, err)
		}
		logger.Debug("led0", "line", spec.String())
		pin := gpioled.New(spec)
		return blinky.NewPinBlinker(pin, opts...), pin, nil
	}
}

// ledController resolves the controller and channel for the PMIC LED
// variant, applying any overrides from the settings.
func ledController(b board.Board, s settings) (*pmicled.Controller, int, error) {
	name := b.LEDController
	if s.ledController != "" {
		name = s.ledController
	}
	ch := b.LEDChannel
	if s.ledChannel >= 0 {
		ch = s.ledChannel
	}
	ctrl, err := pmicled.New(name, pmicled.WithDir(s.ledDir))
	if err != nil {
		return nil, 0, err
	}
	return ctrl, ch, nil
}

// pinSpec resolves the led0 line of the board, applying any overrides from
// the settings.
//
// A chip or pin override selects the line by chip and offset, else a line
// name override selects the line by name.
func pinSpec(b board.Board, s settings) (gpioled.Spec, error) {
	line := b.LED0
	if s.gpioLine != "" {
		line = board.Line{Name: s.gpioLine}
	}
	if s.gpioChip != "" {
		line.Chip = s.gpioChip
		line.Name = ""
	}
	if s.gpioPin != "" {
		offset, err := b.Offset(s.gpioPin)
		if err != nil {
			return gpioled.Spec{}, fmt.Errorf("pin '%s': %w", s.gpioPin, err)
		}
		line.Offset = offset
		line.Name = ""
	}
	activeLow := line.ActiveLow || s.activeLow
	if line.Name != "" {
		spec, err := gpioled.FindSpec(line.Name)
		if err != nil {
			return spec, err
		}
		spec.ActiveLow = activeLow
		return spec, nil
	}
	spec := gpioled.Spec{Chip: line.Chip, Offset: line.Offset, ActiveLow: activeLow}
	return spec, spec.Validate()
}

type nopCloser struct{}

func (nopCloser) Close() error {
	return nil
}
