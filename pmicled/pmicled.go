// SPDX-License-Identifier: MIT
//
// Copyright © 2019 Kent Gibson <warthog618@gmail.com>.

//go:build linux
// +build linux

// Package pmicled provides a multi-channel LED controller, such as the LED
// driver of a PMIC, exposed through the Linux LED class.
//
// Channel n of a controller named "npm1300:led" is the LED class device
// /sys/class/leds/npm1300:led<n>.
package pmicled

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/sys/unix"
)

// DefaultDir is the root of the LED class devices.
const DefaultDir = "/sys/class/leds"

// Controller is a multi-channel LED controller.
type Controller struct {
	dir    string
	prefix string
}

// Option defines the interface required to provide a Controller option.
type Option interface {
	applyOption(*Controller)
}

// DirOption defines the root of the LED class devices.
type DirOption string

// WithDir overrides the root of the LED class devices, /sys/class/leds by
// default.
func WithDir(dir string) DirOption {
	return DirOption(dir)
}

func (o DirOption) applyOption(c *Controller) {
	c.dir = string(o)
}

// New creates a Controller for the LED class devices named with the prefix.
func New(prefix string, options ...Option) (*Controller, error) {
	if prefix == "" || strings.ContainsRune(prefix, '/') {
		return nil, ErrInvalidName{prefix}
	}
	c := Controller{dir: DefaultDir, prefix: prefix}
	for _, option := range options {
		option.applyOption(&c)
	}
	return &c, nil
}

// Name returns the name of the controller.
func (c *Controller) Name() string {
	return c.prefix
}

// Path returns the path of the LED class device for the channel.
func (c *Controller) Path(channel int) string {
	return filepath.Join(c.dir, c.prefix+strconv.Itoa(channel))
}

// Ready returns an error if the brightness of the channel cannot be written.
func (c *Controller) Ready(channel int) error {
	if channel < 0 {
		return ErrInvalidChannel
	}
	return unix.Access(filepath.Join(c.Path(channel), "brightness"), unix.W_OK)
}

// On sets the channel to its maximum brightness.
func (c *Controller) On(channel int) error {
	if channel < 0 {
		return ErrInvalidChannel
	}
	mb, err := c.MaxBrightness(channel)
	if err != nil {
		return err
	}
	return c.SetBrightness(channel, mb)
}

// Off sets the channel brightness to zero.
func (c *Controller) Off(channel int) error {
	if channel < 0 {
		return ErrInvalidChannel
	}
	return c.SetBrightness(channel, 0)
}

// MaxBrightness returns the maximum brightness of the channel.
//
// Returns 1 for channels that do not report a maximum.
func (c *Controller) MaxBrightness(channel int) (int, error) {
	v, err := c.readInt(channel, "max_brightness")
	if errors.Is(err, os.ErrNotExist) {
		return 1, nil
	}
	return v, err
}

// Brightness returns the current brightness of the channel.
func (c *Controller) Brightness(channel int) (int, error) {
	if channel < 0 {
		return 0, ErrInvalidChannel
	}
	return c.readInt(channel, "brightness")
}

// SetBrightness sets the brightness of the channel.
func (c *Controller) SetBrightness(channel int, value int) error {
	if channel < 0 {
		return ErrInvalidChannel
	}
	path := filepath.Join(c.Path(channel), "brightness")
	return os.WriteFile(path, []byte(strconv.Itoa(value)), 0644)
}

func (c *Controller) readInt(channel int, attr string) (int, error) {
	b, err := os.ReadFile(filepath.Join(c.Path(channel), attr))
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(strings.TrimSpace(string(b)))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", attr, err)
	}
	return v, nil
}

// ErrInvalidChannel indicates a negative channel.
var ErrInvalidChannel = errors.New("invalid channel")

// ErrInvalidName indicates the controller name cannot identify LED class
// devices.
type ErrInvalidName struct {
	Name string
}

func (e ErrInvalidName) Error() string {
	return fmt.Sprintf("invalid LED controller name '%s'", e.Name)
}
