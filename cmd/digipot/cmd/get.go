// Copyright (C) 2026 digipot-go authors
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"digipot-go/pkg/device"
)

var getCmd = &cobra.Command{
	Use:   "get",
	Short: "Read the wiper state of every channel",
	Long: `Read the register code, A-W and B-W resistance of every channel.

Examples:
  digipot get --model MCP4251
  digipot get --transport spidev --device /dev/spidev0.0`,
	RunE: runGet,
}

func init() {
	rootCmd.AddCommand(getCmd)
}

func runGet(cmd *cobra.Command, args []string) error {
	d, closer, err := openDevice()
	if err != nil {
		return err
	}
	defer closeQuietly(closer)

	for i := 0; i < d.Channels(); i++ {
		ref := device.ByIndex(i)
		lbl, err := d.ChannelLabel(ref)
		if err != nil {
			return err
		}
		v, err := d.Value(ref)
		if err != nil {
			return err
		}
		rwa, err := d.RWA(ref)
		if err != nil {
			return err
		}
		rwb, err := d.RWB(ref)
		if err != nil {
			return err
		}
		fmt.Printf("channel %d (%s): code=%d r_wa=%.1f r_wb=%.1f\n", i, lbl, v, rwa, rwb)
	}
	return nil
}
