// SPDX-License-Identifier: MIT
//
// Copyright © 2019 Kent Gibson <warthog618@gmail.com>.

package board

import (
	"errors"
	"strconv"
	"strings"
)

// BCM GPIO offsets of the Raspberry Pi J8 header pins.
var j8Pins = map[string]int{
	"3":  2,
	"5":  3,
	"7":  4,
	"8":  14,
	"10": 15,
	"11": 17,
	"12": 18,
	"13": 27,
	"15": 22,
	"16": 23,
	"18": 24,
	"19": 10,
	"21": 9,
	"22": 25,
	"23": 11,
	"24": 8,
	"26": 7,
	"27": 0,
	"28": 1,
	"29": 5,
	"31": 6,
	"32": 12,
	"33": 13,
	"35": 19,
	"36": 16,
	"37": 26,
	"38": 20,
	"40": 21,
}

const (
	rpiMinGPIO = 2
	rpiMaxGPIO = 27
)

// ErrInvalidPin indicates the pin name does not match a known pin.
var ErrInvalidPin = errors.New("invalid pin name")

// RPiPin maps a Raspberry Pi pin name to a BCM GPIO offset.
//
// Pin names are case insensitive and may be of the form J8pX, GPIOX, or X.
// J8 pins 27 and 28, the HAT EEPROM pins, are accepted by header name only.
func RPiPin(name string) (int, error) {
	s := strings.ToLower(name)
	if strings.HasPrefix(s, "j8p") {
		if v, ok := j8Pins[s[3:]]; ok {
			return v, nil
		}
		return 0, ErrInvalidPin
	}
	v, err := strconv.Atoi(strings.TrimPrefix(s, "gpio"))
	if err != nil {
		return 0, ErrInvalidPin
	}
	if v < rpiMinGPIO || v > rpiMaxGPIO {
		return 0, ErrInvalidPin
	}
	return v, nil
}

func parseOffset(name string) (int, error) {
	v, err := strconv.Atoi(name)
	if err != nil || v < 0 {
		return 0, ErrInvalidPin
	}
	return v, nil
}
