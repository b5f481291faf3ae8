// SPDX-License-Identifier: MIT
//
// Copyright © 2019 Kent Gibson <warthog618@gmail.com>.

package board_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warthog618/blinky/board"
)

func TestLookup(t *testing.T) {
	patterns := []struct {
		name    string
		variant board.Variant
		err     error
	}{
		{"circuitdojo_feather_nrf9151", board.VariantPMICLED, nil},
		{"rpi", board.VariantGPIO, nil},
		{board.Generic, board.VariantGPIO, nil},
		{"nrf52840dk", board.VariantGPIO, board.ErrUnknown},
	}
	for _, p := range patterns {
		tf := func(t *testing.T) {
			b, err := board.Lookup(p.name)
			assert.Equal(t, p.err, err)
			assert.Equal(t, p.name, b.Name)
			assert.Equal(t, p.variant, b.Variant)
		}
		t.Run(p.name, tf)
	}
}

func TestLookupPMIC(t *testing.T) {
	b, err := board.Lookup("circuitdojo_feather_nrf9151")
	require.Nil(t, err)
	assert.Equal(t, "npm1300:led", b.LEDController)
	assert.Equal(t, 2, b.LEDChannel)
}

func TestLookupUnknownUsesLED0(t *testing.T) {
	b, _ := board.Lookup("custom")
	assert.Equal(t, board.Line{Name: "led0"}, b.LED0)
}

func TestSelected(t *testing.T) {
	b, err := board.Lookup(board.Selected)
	assert.Nil(t, err)
	assert.Equal(t, board.Selected, b.Name)
}

func TestNames(t *testing.T) {
	nn := board.Names()
	assert.Contains(t, nn, "rpi")
	assert.Contains(t, nn, board.Generic)
	for i := 1; i < len(nn); i++ {
		assert.Less(t, nn[i-1], nn[i])
	}
}

func TestVariantString(t *testing.T) {
	assert.Equal(t, "gpio", board.VariantGPIO.String())
	assert.Equal(t, "pmic-led", board.VariantPMICLED.String())
	assert.Equal(t, "variant(7)", board.Variant(7).String())
}

func TestRPiPin(t *testing.T) {
	patterns := []struct {
		name string
		val  int
		err  error
	}{
		{"gpio0", 0, board.ErrInvalidPin},
		{"gpio1", 0, board.ErrInvalidPin},
		{"gpio2", 2, nil},
		{"gpio02", 2, nil},
		{"GPIO4", 4, nil},
		{"Gpio27", 27, nil},
		{"gpio28", 0, board.ErrInvalidPin},
		{"J8p1", 0, board.ErrInvalidPin},
		{"j8p3", 2, nil},
		{"J8P7", 4, nil},
		{"J8p27", 0, nil},
		{"J8p40", 21, nil},
		{"J8p41", 0, board.ErrInvalidPin},
		{"17", 17, nil},
		{"notapin", 0, board.ErrInvalidPin},
	}
	for _, p := range patterns {
		tf := func(t *testing.T) {
			v, err := board.RPiPin(p.name)
			assert.Equal(t, p.err, err)
			assert.Equal(t, p.val, v)
		}
		t.Run(p.name, tf)
	}
}

func TestOffset(t *testing.T) {
	rpi, err := board.Lookup("rpi")
	require.Nil(t, err)
	v, err := rpi.Offset("J8p7")
	assert.Nil(t, err)
	assert.Equal(t, 4, v)

	generic, err := board.Lookup(board.Generic)
	require.Nil(t, err)
	v, err = generic.Offset("12")
	assert.Nil(t, err)
	assert.Equal(t, 12, v)
	_, err = generic.Offset("J8p7")
	assert.Equal(t, board.ErrInvalidPin, err)
	_, err = generic.Offset("-1")
	assert.Equal(t, board.ErrInvalidPin, err)
}
