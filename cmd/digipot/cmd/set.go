// Copyright (C) 2026 digipot-go authors
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var (
	setRWB float64
	setRWA float64
)

var setCmd = &cobra.Command{
	Use:   "set [code]",
	Short: "Program one wiper",
	Long: `Program one wiper by register code, or by target resistance with
--rwb/--rwa. Codes outside the register range are clamped.

Examples:
  digipot set 64 --model MCP4251 --channel 1
  digipot set --rwb 5075 --model MCP4251
  digipot set 128 --transport spidev --device /dev/spidev0.0`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSet,
}

func init() {
	rootCmd.AddCommand(setCmd)

	setCmd.Flags().Float64Var(&setRWB, "rwb", -1,
		"target B-W resistance in ohms (instead of a code)")
	setCmd.Flags().Float64Var(&setRWA, "rwa", -1,
		"target A-W resistance in ohms (instead of a code)")
}

func runSet(cmd *cobra.Command, args []string) error {
	d, closer, err := openDevice()
	if err != nil {
		return err
	}
	defer closeQuietly(closer)

	ref := channelRef()
	switch {
	case setRWB >= 0:
		code, err := d.SetRWB(ref, setRWB)
		if err != nil {
			return err
		}
		rwb, err := d.RWB(ref)
		if err != nil {
			return err
		}
		fmt.Printf("channel %s: code=%d r_wb=%.1f\n", ref, code, rwb)
	case setRWA >= 0:
		code, err := d.SetRWA(ref, setRWA)
		if err != nil {
			return err
		}
		rwa, err := d.RWA(ref)
		if err != nil {
			return err
		}
		fmt.Printf("channel %s: code=%d r_wa=%.1f\n", ref, code, rwa)
	default:
		if len(args) != 1 {
			return fmt.Errorf("a register code or --rwb/--rwa is required")
		}
		code, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("register code %q is not an integer", args[0])
		}
		set, err := d.SetValue(ref, code)
		if err != nil {
			return err
		}
		fmt.Printf("channel %s: code=%d\n", ref, set)
	}
	return nil
}
