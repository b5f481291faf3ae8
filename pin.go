// SPDX-License-Identifier: MIT
//
// Copyright © 2019 Kent Gibson <warthog618@gmail.com>.

package blinky

import (
	"context"
	"fmt"
)

// PinBlinker blinks an LED driven by a GPIO pin.
//
// The pin is checked for readiness, configured as an output in its active
// state, then toggled once per period.
// Any failure is fatal - Blink returns immediately without retrying and
// without any cleanup of the pin.
type PinBlinker struct {
	pin  Pin
	opts Options
}

// NewPinBlinker creates a Blinker for the pin.
func NewPinBlinker(pin Pin, options ...Option) *PinBlinker {
	b := PinBlinker{pin: pin, opts: defaultOptions()}
	for _, option := range options {
		option.applyOption(&b.opts)
	}
	return &b
}

// Blink initialises the pin and toggles it until ctx is done.
//
// Returns nil if ctx is done, else an error wrapping ErrNotReady,
// ErrConfigure or ErrToggle, and the error from the pin.
func (b *PinBlinker) Blink(ctx context.Context) error {
	err := b.pin.Ready()
	b.notify(Event{Kind: EventReady, Err: err})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNotReady, err)
	}
	err = b.pin.ConfigureOutput(true)
	b.notify(Event{Kind: EventConfigure, Err: err})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConfigure, err)
	}
	toggles := 0
	for ctx.Err() == nil {
		err = b.pin.Toggle()
		if err == nil {
			toggles++
		}
		b.notify(Event{Kind: EventToggle, Toggles: toggles, Err: err})
		if err != nil {
			return fmt.Errorf("%w: %w", ErrToggle, err)
		}
		if b.opts.sleeper.Sleep(ctx, b.opts.period) != nil {
			break
		}
	}
	b.opts.logger.Debug("stopped", "toggles", toggles)
	return nil
}

func (b *PinBlinker) notify(evt Event) {
	if b.opts.observer != nil {
		b.opts.observer(evt)
	}
}
