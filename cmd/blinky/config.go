// SPDX-License-Identifier: MIT
//
// Copyright © 2019 Kent Gibson <warthog618@gmail.com>.

//go:build linux
// +build linux

package main

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/warthog618/blinky/board"
	"github.com/warthog618/blinky/pmicled"
	"github.com/warthog618/config"
	"github.com/warthog618/config/blob"
	"github.com/warthog618/config/blob/decoder/json"
	"github.com/warthog618/config/dict"
	"github.com/warthog618/config/env"
)

// Configuration is taken, in order of precedence, from the command line, the
// environment (BLINKY_GPIO_CHIP etc), the config file and the defaults.
func defaultConfig() map[string]interface{} {
	return map[string]interface{}{
		"board":  board.Selected,
		"period": "1s",
		"gpio": map[string]interface{}{
			"line": "",
			"chip": "",
			"pin":  "",
			"active": map[string]interface{}{
				"low": false,
			},
		},
		"led": map[string]interface{}{
			"dir":        pmicled.DefaultDir,
			"controller": "",
			"channel":    -1,
		},
		"log": map[string]interface{}{
			"level": "info",
		},
	}
}

func addRunFlags(cmd *cobra.Command) {
	ff := cmd.Flags()
	ff.StringP("board", "b", board.Selected, "the board to blink")
	ff.StringP("period", "p", "1s", "the delay between LED changes")
	ff.String("gpio-line", "", "the name of the GPIO line driving the LED")
	ff.String("gpio-chip", "", "the GPIO chip of the line driving the LED")
	ff.String("gpio-pin", "", "the offset, or board pin name, of the line driving the LED")
	ff.BoolP("gpio-active-low", "l", false, "treat the line as active low")
	ff.String("led-dir", pmicled.DefaultDir, "the root of the LED class devices")
	ff.String("led-controller", "", "the name of the PMIC LED controller")
	ff.Int("led-channel", -1, "the LED controller channel")
	ff.String("log-level", "info", "the log level [debug|info|warn|error]")
	ff.StringP("config-file", "c", "blinky.json", "the config file")
}

// flagMap returns the flags explicitly set on the command line, keyed by
// their config path.
func flagMap(ff *pflag.FlagSet) map[string]interface{} {
	m := map[string]interface{}{}
	ff.Visit(func(f *pflag.Flag) {
		setPath(m, strings.Split(f.Name, "-"), f.Value.String())
	})
	return m
}

func setPath(m map[string]interface{}, path []string, v interface{}) {
	for _, p := range path[:len(path)-1] {
		sub, ok := m[p].(map[string]interface{})
		if !ok {
			sub = map[string]interface{}{}
			m[p] = sub
		}
		m = sub
	}
	m[path[len(path)-1]] = v
}

func loadConfig(ff *pflag.FlagSet) *config.Config {
	def := dict.New(dict.WithMap(defaultConfig()))
	cfg := config.New(
		dict.New(dict.WithMap(flagMap(ff))),
		env.New(env.WithEnvPrefix("BLINKY_")),
		config.WithDefault(def))
	cfg.Append(
		blob.NewConfigFile(cfg, "config.file", "blinky.json", json.NewDecoder()))
	cfg = cfg.GetConfig("", config.WithMust())
	return cfg
}
