// Copyright (C) 2026 digipot-go authors
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"digipot-go/pkg/mcp4xxx"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "List the supported chip models",
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	fmt.Printf("%-10s %6s %9s %9s %9s\n", "model", "steps", "channels", "memory", "kind")
	for _, m := range mcp4xxx.Models() {
		spec, err := mcp4xxx.Spec(m)
		if err != nil {
			return err
		}
		memory := "volatile"
		if !spec.Volatile {
			memory = "nonvol"
		}
		kind := "pot"
		if spec.Rheostat {
			kind = "rheostat"
		}
		fmt.Printf("%-10s %6d %9d %9s %9s\n", m, spec.MaxValue, spec.Channels, memory, kind)
	}
	fmt.Printf("\nresistance options (ohms): %v\n", mcp4xxx.Resistances)
	return nil
}
