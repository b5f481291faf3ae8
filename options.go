// SPDX-License-Identifier: MIT
//
// Copyright © 2019 Kent Gibson <warthog618@gmail.com>.

package blinky

import (
	"io"
	"log/slog"
	"time"
)

// Option defines the interface required to provide a Blinker option.
type Option interface {
	applyOption(*Options)
}

// Options contains the options for a Blinker.
type Options struct {
	period   time.Duration
	channel  int
	sleeper  Sleeper
	logger   *slog.Logger
	observer func(Event)
}

func defaultOptions() Options {
	return Options{
		period:  DefaultPeriod,
		channel: DefaultChannel,
		sleeper: TimerSleeper{},
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// PeriodOption defines the delay between changes of the LED state.
type PeriodOption time.Duration

// WithPeriod sets the delay between changes of the LED state.
//
// Non-positive periods are ignored.
func WithPeriod(period time.Duration) PeriodOption {
	return PeriodOption(period)
}

func (o PeriodOption) applyOption(opts *Options) {
	if o > 0 {
		opts.period = time.Duration(o)
	}
}

// ChannelOption defines the LED controller channel driven by an LEDBlinker.
type ChannelOption int

// WithChannel sets the LED controller channel.
//
// It has no effect on a PinBlinker.
func WithChannel(channel int) ChannelOption {
	return ChannelOption(channel)
}

func (o ChannelOption) applyOption(opts *Options) {
	opts.channel = int(o)
}

// SleeperOption provides the delay primitive.
type SleeperOption struct {
	s Sleeper
}

// WithSleeper replaces the timer based delay, e.g. with a virtual clock in
// tests.
func WithSleeper(s Sleeper) SleeperOption {
	return SleeperOption{s}
}

func (o SleeperOption) applyOption(opts *Options) {
	if o.s != nil {
		opts.sleeper = o.s
	}
}

// LoggerOption provides the logger.
type LoggerOption struct {
	l *slog.Logger
}

// WithLogger sets the logger used for diagnostics.
//
// By default nothing is logged.
func WithLogger(l *slog.Logger) LoggerOption {
	return LoggerOption{l}
}

func (o LoggerOption) applyOption(opts *Options) {
	if o.l != nil {
		opts.logger = o.l
	}
}

// ObserverOption provides a receiver for device call events.
type ObserverOption func(Event)

// WithObserver sets a function called after every device call.
//
// The observer is called from the goroutine running Blink.
func WithObserver(f func(Event)) ObserverOption {
	return ObserverOption(f)
}

func (o ObserverOption) applyOption(opts *Options) {
	opts.observer = o
}
