// SPDX-License-Identifier: MIT
//
// Copyright © 2019 Kent Gibson <warthog618@gmail.com>.

// Package blinky blinks an LED on an embedded Linux board.
//
// Two strategies share the Blinker contract:
// - LEDBlinker drives one channel of an LED controller, such as the LED
// driver of a power-management IC, on and off.
// - PinBlinker drives a GPIO line configured as an output, toggling it.
//
// Both pace the blink with a blocking delay of one period, 1s by default.
//
// Example of use:
//
//  b := blinky.NewPinBlinker(pin)
//  if err := b.Blink(ctx); err != nil {
//  	fmt.Println(err)
//  }
package blinky

import (
	"context"
	"errors"
	"time"
)

// DefaultPeriod is the delay between successive changes of the LED state.
const DefaultPeriod = 1000 * time.Millisecond

// DefaultChannel is the LED controller channel driven by an LEDBlinker.
const DefaultChannel = 2

// Blinker is the entry point contract shared by the blink strategies.
//
// Blink runs until ctx is done, in which case it returns nil, or until
// the strategy fails.
type Blinker interface {
	Blink(ctx context.Context) error
}

// LEDController is a multi-channel LED driver.
type LEDController interface {
	On(channel int) error
	Off(channel int) error
}

// Pin is a GPIO line used to drive an LED.
//
// The level passed to ConfigureOutput is logical, so true is the active
// state of the line whatever its polarity.
type Pin interface {
	Ready() error
	ConfigureOutput(active bool) error
	Toggle() error
}

var (
	// ErrNotReady indicates the device backing the LED is not ready.
	ErrNotReady = errors.New("device not ready")

	// ErrConfigure indicates the pin could not be configured as an output.
	ErrConfigure = errors.New("configure failed")

	// ErrToggle indicates the pin state could not be toggled.
	ErrToggle = errors.New("toggle failed")
)

// EventKind identifies the device call reported by an Event.
type EventKind int

const (
	_ EventKind = iota
	// EventReady is a readiness check of the pin.
	EventReady
	// EventConfigure is the configuration of the pin as an output.
	EventConfigure
	// EventToggle is a toggle of the pin.
	EventToggle
	// EventOn is a controller channel being switched on.
	EventOn
	// EventOff is a controller channel being switched off.
	EventOff
)

var eventKindNames = map[EventKind]string{
	EventReady:     "ready",
	EventConfigure: "configure",
	EventToggle:    "toggle",
	EventOn:        "on",
	EventOff:       "off",
}

func (k EventKind) String() string {
	if n, ok := eventKindNames[k]; ok {
		return n
	}
	return "unknown"
}

// Event reports a device call made by a Blinker.
type Event struct {
	Kind EventKind

	// Channel is the controller channel for EventOn and EventOff.
	Channel int

	// Toggles is the number of successful toggles, including this one,
	// for EventToggle.
	Toggles int

	// Err is the error returned by the device, if any.
	Err error
}
