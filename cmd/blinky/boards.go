// SPDX-License-Identifier: MIT
//
// Copyright © 2019 Kent Gibson <warthog618@gmail.com>.

//go:build linux
// +build linux

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/warthog618/blinky/board"
	"github.com/warthog618/blinky/pmicled"
)

func init() {
	boardsCmd.Flags().String("led-dir", pmicled.DefaultDir, "the root of the LED class devices")
	rootCmd.AddCommand(boardsCmd)
}

var boardsCmd = &cobra.Command{
	Use:   "boards",
	Short: "List the known boards",
	Long: `List the boards with a description, and the LED each blinks.

For boards with a PMIC LED the channel is checked for availability under the led-dir.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		dir, _ := cmd.Flags().GetString("led-dir")
		printBoards(os.Stdout, dir)
	},
}

func printBoards(w io.Writer, ledDir string) {
	for _, name := range board.Names() {
		b, _ := board.Lookup(name)
		sel := " "
		if name == board.Selected {
			sel = "*"
		}
		led := describeLED(b)
		if b.Variant == board.VariantPMICLED {
			led = fmt.Sprintf("%-24s %s", led, ledReadiness(b, ledDir))
		}
		fmt.Fprintf(w, "%s %-28s %-9s %s\n", sel, name, b.Variant, led)
	}
}

// ledReadiness reports if the board's LED channel can be driven on this host.
func ledReadiness(b board.Board, dir string) string {
	c, err := pmicled.New(b.LEDController, pmicled.WithDir(dir))
	if err == nil {
		err = c.Ready(b.LEDChannel)
	}
	if err != nil {
		return fmt.Sprintf("(unavailable: %s)", err)
	}
	return "(ready)"
}

func describeLED(b board.Board) string {
	if b.Variant == board.VariantPMICLED {
		return fmt.Sprintf("%s channel %d", b.LEDController, b.LEDChannel)
	}
	if b.LED0.Name != "" {
		return fmt.Sprintf("line \"%s\"", b.LED0.Name)
	}
	return fmt.Sprintf("%s %d", b.LED0.Chip, b.LED0.Offset)
}
