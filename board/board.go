// SPDX-License-Identifier: MIT
//
// Copyright © 2019 Kent Gibson <warthog618@gmail.com>.

// Package board provides the static descriptions of the boards supported by
// blinky, and selects the blink variant for a board.
package board

import (
	"errors"
	"fmt"
	"sort"
)

// Selected is the identity of the board blinky is built for.
//
// Set at build time with
//
//	-ldflags "-X github.com/warthog618/blinky/board.Selected=<name>"
var Selected = Generic

// Generic is the identity of a board with no description of its own.
const Generic = "generic"

// Variant is the way a board drives its LED.
type Variant int

const (
	// VariantGPIO toggles a GPIO line.
	VariantGPIO Variant = iota

	// VariantPMICLED switches a channel of a PMIC LED driver.
	VariantPMICLED
)

func (v Variant) String() string {
	switch v {
	case VariantGPIO:
		return "gpio"
	case VariantPMICLED:
		return "pmic-led"
	}
	return fmt.Sprintf("variant(%d)", int(v))
}

// Line describes the GPIO line behind the led0 alias.
//
// The line is identified either by Name, which is searched for on all chips,
// or by Chip and Offset.
type Line struct {
	Name      string
	Chip      string
	Offset    int
	ActiveLow bool
}

// Board is the static hardware description of a board.
type Board struct {
	Name    string
	Variant Variant

	// LEDController is the name of the LED controller for VariantPMICLED.
	LEDController string

	// LEDChannel is the controller channel for VariantPMICLED.
	LEDChannel int

	// LED0 is the led0 alias for VariantGPIO.
	LED0 Line

	// Pin maps a header pin name to a line offset, if the board has a
	// naming scheme for its pins.
	Pin func(name string) (int, error)
}

// Offset resolves a pin name to a line offset.
//
// Without a naming scheme only plain offsets are accepted.
func (b Board) Offset(name string) (int, error) {
	if b.Pin != nil {
		return b.Pin(name)
	}
	return parseOffset(name)
}

var boards = map[string]Board{
	Generic: {
		Name:    Generic,
		Variant: VariantGPIO,
		LED0:    Line{Name: "led0"},
	},
	"circuitdojo_feather_nrf9151": {
		Name:          "circuitdojo_feather_nrf9151",
		Variant:       VariantPMICLED,
		LEDController: "npm1300:led",
		LEDChannel:    2,
	},
	"rpi": {
		Name:    "rpi",
		Variant: VariantGPIO,
		LED0:    Line{Chip: "gpiochip0", Offset: 4},
		Pin:     RPiPin,
	},
	"rpi5": {
		Name:    "rpi5",
		Variant: VariantGPIO,
		LED0:    Line{Chip: "gpiochip4", Offset: 4},
		Pin:     RPiPin,
	},
	"beaglebone_ai64": {
		Name:    "beaglebone_ai64",
		Variant: VariantGPIO,
		LED0:    Line{Name: "P8_03"},
	},
}

// ErrUnknown indicates the board has no description.
var ErrUnknown = errors.New("unknown board")

// Lookup returns the description of the named board.
//
// Returns the generic board, which drives the line named led0, and
// ErrUnknown if the board is not known.
func Lookup(name string) (Board, error) {
	if b, ok := boards[name]; ok {
		return b, nil
	}
	b := boards[Generic]
	b.Name = name
	return b, ErrUnknown
}

// Names returns the names of the known boards, sorted.
func Names() []string {
	nn := make([]string, 0, len(boards))
	for n := range boards {
		nn = append(nn, n)
	}
	sort.Strings(nn)
	return nn
}
