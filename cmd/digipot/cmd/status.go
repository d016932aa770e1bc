// Copyright (C) 2026 digipot-go authors
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Read the chip status and terminal connections",
	Long: `Read the hardware SHDN pin state and the terminal connections of
both channels.

Examples:
  digipot status --model MCP4251
  digipot status --transport serial --port /dev/ttyACM0`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func tconString(shdn, a, w, b bool) string {
	s := ""
	if shdn {
		s = " (shutdown)"
	}
	connected := func(on bool, name string) string {
		if on {
			return name
		}
		return "-"
	}
	return fmt.Sprintf("%s%s%s%s", connected(a, "A"), connected(w, "W"), connected(b, "B"), s)
}

func runStatus(cmd *cobra.Command, args []string) error {
	d, closer, err := openDevice()
	if err != nil {
		return err
	}
	defer closeQuietly(closer)

	shdnPin, err := d.ShdnPinStatus()
	if err != nil {
		return err
	}
	ch0, ch1, err := d.ReadTCON()
	if err != nil {
		return err
	}
	fmt.Printf("model:    %s\n", d.Model())
	fmt.Printf("shdn pin: %v\n", shdnPin)
	fmt.Printf("tcon 0:   %s\n", tconString(ch0.Shdn, ch0.A, ch0.W, ch0.B))
	if d.Channels() > 1 {
		fmt.Printf("tcon 1:   %s\n", tconString(ch1.Shdn, ch1.A, ch1.W, ch1.B))
	}
	return nil
}
