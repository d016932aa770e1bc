// Copyright (C) 2026 digipot-go authors
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var shdnOff bool

var shdnCmd = &cobra.Command{
	Use:   "shdn",
	Short: "Drive the software shutdown of one channel",
	Long: `Force one channel into software shutdown (terminals disconnected)
or bring it back with --off. The other channel keeps its current
terminal configuration.

Examples:
  digipot shdn --model MCP4251 --channel 1
  digipot shdn --off --channel 1`,
	RunE: runShdn,
}

func init() {
	rootCmd.AddCommand(shdnCmd)

	shdnCmd.Flags().BoolVar(&shdnOff, "off", false, "leave shutdown instead of entering it")
}

func runShdn(cmd *cobra.Command, args []string) error {
	d, closer, err := openDevice()
	if err != nil {
		return err
	}
	defer closeQuietly(closer)

	if channel < 0 || channel >= 2 {
		return fmt.Errorf("channel %d out of range", channel)
	}
	// Read-modify-write so the other channel keeps its configuration.
	ch0, ch1, err := d.ReadTCON()
	if err != nil {
		return err
	}
	if channel == 0 {
		ch0.Shdn = !shdnOff
	} else {
		ch1.Shdn = !shdnOff
	}
	if err := d.WriteTCON(ch0, ch1); err != nil {
		return err
	}
	state := "shutdown"
	if shdnOff {
		state = "active"
	}
	fmt.Printf("channel %d: %s\n", channel, state)
	return nil
}
