// SPDX-License-Identifier: MIT
//
// Copyright © 2019 Kent Gibson <warthog618@gmail.com>.

//go:build linux
// +build linux

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/warthog618/blinky/board"
)

var version = "undefined"

func init() {
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display the version",
	Long:  `Display the version, and the board blinky was built for.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("%s (blinky) %s [%s]\n", os.Args[0], version, board.Selected)
	},
}
