// SPDX-License-Identifier: MIT
//
// Copyright © 2019 Kent Gibson <warthog618@gmail.com>.

//go:build linux
// +build linux

// A utility to blink the LED of an embedded Linux board.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "blinky",
	Short: "blinky blinks the LED of a board",
	Long: "blinky blinks the LED of a board, either by toggling a GPIO line or by switching " +
		"a channel of a PMIC LED driver, depending on the board.",
	Args:    cobra.NoArgs,
	Run:     run,
	Version: version,
}

func init() {
	addRunFlags(rootCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func logErr(cmd *cobra.Command, err error) {
	fmt.Fprintf(os.Stderr, "blinky %s: %s\n", cmd.Name(), err)
}
