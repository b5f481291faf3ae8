// SPDX-License-Identifier: MIT
//
// Copyright © 2019 Kent Gibson <warthog618@gmail.com>.

//go:build linux
// +build linux

// Package gpioled provides an LED pin driven by a line on a GPIO character
// device.
package gpioled

import (
	"errors"
	"fmt"
	"sync"

	"github.com/warthog618/gpiod"
)

// DefaultConsumer is the consumer label applied to the requested line.
const DefaultConsumer = "blinky"

// Spec describes the GPIO line driving an LED.
type Spec struct {
	// Chip is the name or path of the GPIO chip, e.g. gpiochip0.
	Chip string

	// Offset is the offset of the line on the chip.
	Offset int

	// ActiveLow indicates the LED is lit when the line is driven low.
	ActiveLow bool
}

// Validate returns an error if the spec does not identify a line.
func (s Spec) Validate() error {
	if s.Chip == "" {
		return ErrNoChip
	}
	if s.Offset < 0 {
		return gpiod.ErrInvalidOffset
	}
	return nil
}

func (s Spec) String() string {
	polarity := "active-high"
	if s.ActiveLow {
		polarity = "active-low"
	}
	return fmt.Sprintf("%s:%d (%s)", s.Chip, s.Offset, polarity)
}

// FindSpec resolves a line name, such as the led0 alias, to a Spec.
//
// Chips are searched in name order and the first matching line is returned.
// The line is assumed active-high.
func FindSpec(name string) (Spec, error) {
	for _, cname := range gpiod.Chips() {
		c, err := gpiod.NewChip(cname)
		if err != nil {
			continue
		}
		for o := 0; o < c.Lines(); o++ {
			inf, err := c.LineInfo(o)
			if err != nil {
				continue
			}
			if inf.Name == name {
				c.Close()
				return Spec{Chip: cname, Offset: o}, nil
			}
		}
		c.Close()
	}
	return Spec{}, fmt.Errorf("line '%s': %w", name, ErrLineNotFound)
}

var (
	// ErrNoChip indicates the spec has no chip.
	ErrNoChip = errors.New("no chip specified")

	// ErrLineNotFound indicates no chip has a line with the requested name.
	ErrLineNotFound = errors.New("line not found")

	// ErrNotConfigured indicates the pin has not been configured as an
	// output.
	ErrNotConfigured = errors.New("pin not configured")
)

// Pin is a GPIO line used to drive an LED.
//
// The line is only requested by ConfigureOutput and held until Close.
type Pin struct {
	spec     Spec
	consumer string

	mu    sync.Mutex
	chip  *gpiod.Chip
	line  *gpiod.Line
	value int
}

// Option defines the interface required to provide a Pin option.
type Option interface {
	applyOption(*Pin)
}

// ConsumerOption defines the consumer label for the line.
type ConsumerOption string

// WithConsumer provides the consumer label for the line.
func WithConsumer(consumer string) ConsumerOption {
	return ConsumerOption(consumer)
}

func (o ConsumerOption) applyOption(p *Pin) {
	p.consumer = string(o)
}

// New creates a Pin for the line described by spec.
func New(spec Spec, options ...Option) *Pin {
	p := Pin{spec: spec, consumer: DefaultConsumer}
	for _, option := range options {
		option.applyOption(&p)
	}
	return &p
}

// Spec returns the spec of the line.
func (p *Pin) Spec() Spec {
	return p.spec
}

// Ready returns an error if the spec is invalid or the chip is not an
// accessible GPIO character device.
func (p *Pin) Ready() error {
	if err := p.spec.Validate(); err != nil {
		return err
	}
	return gpiod.IsChip(p.spec.Chip)
}

// ConfigureOutput requests the line as an output with the given logical
// state.
//
// If the line is already requested it is reconfigured.
func (p *Pin) ConfigureOutput(active bool) error {
	v := 0
	if active {
		v = 1
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.line != nil {
		if err := p.line.Reconfigure(gpiod.AsOutput(v)); err != nil {
			return err
		}
		p.value = v
		return nil
	}
	c, err := gpiod.NewChip(p.spec.Chip, gpiod.WithConsumer(p.consumer))
	if err != nil {
		return err
	}
	opts := []gpiod.LineReqOption{gpiod.AsOutput(v)}
	if p.spec.ActiveLow {
		opts = append(opts, gpiod.AsActiveLow)
	} else {
		opts = append(opts, gpiod.AsActiveHigh)
	}
	l, err := c.RequestLine(p.spec.Offset, opts...)
	if err != nil {
		c.Close()
		return err
	}
	p.chip = c
	p.line = l
	p.value = v
	return nil
}

// Toggle inverts the logical state of the line.
func (p *Pin) Toggle() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.line == nil {
		return ErrNotConfigured
	}
	v := p.value ^ 1
	if err := p.line.SetValue(v); err != nil {
		return err
	}
	p.value = v
	return nil
}

// Value returns the logical state of the line, as read from the kernel.
func (p *Pin) Value() (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.line == nil {
		return 0, ErrNotConfigured
	}
	return p.line.Value()
}

// Close reverts the line to an input and releases it.
//
// The line and chip are always released, and the first error encountered
// is returned.
func (p *Pin) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.line == nil {
		return nil
	}
	err := p.line.Reconfigure(gpiod.AsInput)
	if cerr := p.line.Close(); err == nil {
		err = cerr
	}
	if cerr := p.chip.Close(); err == nil {
		err = cerr
	}
	p.line = nil
	p.chip = nil
	return err
}
