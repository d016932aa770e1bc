// Copyright (C) 2026 digipot-go authors
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"digipot-go/pkg/mcp4xxx"
)

var (
	tconA    bool
	tconW    bool
	tconB    bool
	tconShdn bool
)

var tconCmd = &cobra.Command{
	Use:   "tcon",
	Short: "Program the terminal connections of one channel",
	Long: `Program the terminal connection register of one channel. Each of
--a/--w/--b connects the respective terminal; omitted terminals are
disconnected. The write is verified by reading the register back.

Examples:
  digipot tcon --a --w --b                   # All terminals connected
  digipot tcon --w --b --channel 1           # Rheostat wiring, channel 1
  digipot tcon --a --w --b --shdn            # Connected but shut down`,
	RunE: runTCON,
}

func init() {
	rootCmd.AddCommand(tconCmd)

	tconCmd.Flags().BoolVar(&tconA, "a", false, "connect terminal A")
	tconCmd.Flags().BoolVar(&tconW, "w", false, "connect terminal W")
	tconCmd.Flags().BoolVar(&tconB, "b", false, "connect terminal B")
	tconCmd.Flags().BoolVar(&tconShdn, "shdn", false, "force software shutdown")
}

func runTCON(cmd *cobra.Command, args []string) error {
	d, closer, err := openDevice()
	if err != nil {
		return err
	}
	defer closeQuietly(closer)

	if channel < 0 || channel >= 2 {
		return fmt.Errorf("channel %d out of range", channel)
	}
	ch0, ch1, err := d.ReadTCON()
	if err != nil {
		return err
	}
	next := mcp4xxx.TCON{Shdn: tconShdn, A: tconA, W: tconW, B: tconB}
	if channel == 0 {
		ch0 = next
	} else {
		ch1 = next
	}
	if err := d.WriteTCON(ch0, ch1); err != nil {
		return err
	}
	fmt.Printf("channel %d: %s\n", channel, tconString(next.Shdn, next.A, next.W, next.B))
	return nil
}
