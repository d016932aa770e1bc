// Copyright (C) 2026 digipot-go authors
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var (
	sweepStep  int
	sweepDelay time.Duration
	sweepDown  bool
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Step one wiper across its full range",
	Long: `Step one wiper from zero to full scale (or back down with --down),
one register code step at a time. Useful for smoke-testing a freshly
wired chip with a meter on the wiper terminal.

Examples:
  digipot sweep --model MCP4251
  digipot sweep --down --step 4 --delay 50ms --channel 1`,
	RunE: runSweep,
}

func init() {
	rootCmd.AddCommand(sweepCmd)

	sweepCmd.Flags().IntVar(&sweepStep, "step", 1, "code increment per step")
	sweepCmd.Flags().DurationVar(&sweepDelay, "delay", 10*time.Millisecond,
		"pause between steps")
	sweepCmd.Flags().BoolVar(&sweepDown, "down", false, "sweep from full scale to zero")
}

func runSweep(cmd *cobra.Command, args []string) error {
	if sweepStep <= 0 {
		return fmt.Errorf("step must be positive, got %d", sweepStep)
	}
	d, closer, err := openDevice()
	if err != nil {
		return err
	}
	defer closeQuietly(closer)

	ref := channelRef()
	w, err := d.Wiper(ref)
	if err != nil {
		return err
	}
	max := w.MaxValue()
	for i := 0; i <= max; i += sweepStep {
		code := i
		if sweepDown {
			code = max - i
		}
		if _, err := d.SetValue(ref, code); err != nil {
			return err
		}
		time.Sleep(sweepDelay)
	}
	fmt.Printf("channel %s: swept %d codes\n", ref, max/sweepStep+1)
	return nil
}
