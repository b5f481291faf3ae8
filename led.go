// SPDX-License-Identifier: MIT
//
// Copyright © 2019 Kent Gibson <warthog618@gmail.com>.

package blinky

import (
	"context"
)

// LEDBlinker blinks one channel of an LED controller.
//
// Each cycle switches the channel on, sleeps for a period, switches it off
// and sleeps for a period.
// Errors returned by the controller do not interrupt the blinking. They are
// reported to the observer and logged at debug level only.
type LEDBlinker struct {
	ctrl LEDController
	opts Options
}

// NewLEDBlinker creates a Blinker for the LED controller.
func NewLEDBlinker(ctrl LEDController, options ...Option) *LEDBlinker {
	b := LEDBlinker{ctrl: ctrl, opts: defaultOptions()}
	for _, option := range options {
		option.applyOption(&b.opts)
	}
	return &b
}

// Channel returns the controller channel being blinked.
func (b *LEDBlinker) Channel() int {
	return b.opts.channel
}

// Blink blinks the channel until ctx is done.
//
// It always returns nil.
func (b *LEDBlinker) Blink(ctx context.Context) error {
	b.opts.logger.Info("Blinky Sample")
	for ctx.Err() == nil {
		b.set(EventOn, b.ctrl.On)
		if b.opts.sleeper.Sleep(ctx, b.opts.period) != nil {
			break
		}
		b.set(EventOff, b.ctrl.Off)
		if b.opts.sleeper.Sleep(ctx, b.opts.period) != nil {
			break
		}
	}
	return nil
}

func (b *LEDBlinker) set(kind EventKind, f func(int) error) {
	ch := b.opts.channel
	err := f(ch)
	if err != nil {
		b.opts.logger.Debug("led", "op", kind.String(), "channel", ch, "err", err)
	}
	if b.opts.observer != nil {
		b.opts.observer(Event{Kind: kind, Channel: ch, Err: err})
	}
}
