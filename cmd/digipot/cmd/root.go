// Copyright (C) 2026 digipot-go authors
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"digipot-go/pkg/device"
	"digipot-go/pkg/logutil"
	"digipot-go/pkg/mcp4xxx"
	"digipot-go/pkg/transport"
)

var (
	// Global flags
	modelName     string
	rAB           float64
	transportName string
	spiDevice     string
	spiSpeed      uint32
	serialPort    string
	serialBaud    int
	invert        bool
	channel       int
	label         string
	verbose       bool
)

var rootCmd = &cobra.Command{
	Use:   "digipot",
	Short: "MCP4XXX digital potentiometer control",
	Long: `Control MCP4XXX digital potentiometers and rheostats over SPI.

The chip is selected with --model and reached through one of three
transports: a Linux spidev node, a framed serial bridge to a remote
microcontroller, or the built-in register simulator (the default, useful
for trying commands without hardware).

Examples:
  digipot info                                        # List supported models
  digipot get --model MCP4251                         # Read wiper codes (simulator)
  digipot set 64 --model MCP4251 --channel 1          # Program one wiper
  digipot set 128 --transport spidev --device /dev/spidev0.0
  digipot status --transport serial --port /dev/ttyACM0`,
	Version: "1.0.0",
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&modelName, "model", "m", "MCP4251",
		"chip model (see 'digipot info')")
	rootCmd.PersistentFlags().Float64Var(&rAB, "rab", 10e3,
		"nominal A-B resistance in ohms (5000, 10000, 50000 or 100000)")
	rootCmd.PersistentFlags().StringVarP(&transportName, "transport", "t", "sim",
		"transport (sim, spidev, serial)")
	rootCmd.PersistentFlags().StringVar(&spiDevice, "device", "/dev/spidev0.0",
		"spidev node (spidev transport)")
	rootCmd.PersistentFlags().Uint32Var(&spiSpeed, "speed", 1000000,
		"SPI clock in Hz (spidev transport)")
	rootCmd.PersistentFlags().StringVarP(&serialPort, "port", "p", "/dev/ttyACM0",
		"serial port (serial transport)")
	rootCmd.PersistentFlags().IntVar(&serialBaud, "baud", 115200,
		"serial baud rate (serial transport)")
	rootCmd.PersistentFlags().BoolVar(&invert, "invert", false,
		"flip the visible register code of every channel")
	rootCmd.PersistentFlags().IntVarP(&channel, "channel", "c", 0,
		"channel index")
	rootCmd.PersistentFlags().StringVarP(&label, "label", "l", "",
		"channel label (overrides --channel)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"verbose output")
}

// setupLogging raises the log level when --verbose is given.
func setupLogging() {
	if verbose {
		logutil.SetLevel(logrus.DebugLevel)
	}
}

// openTransport builds the byte transport selected by the global flags.
func openTransport() (mcp4xxx.Transport, io.Closer, error) {
	switch transportName {
	case "sim", "simulator":
		return mcp4xxx.NewSimulator(), nil, nil
	case "spidev":
		dev, err := transport.OpenSPIDev(transport.SPIDevConfig{
			Device: spiDevice,
			Speed:  spiSpeed,
		})
		if err != nil {
			return nil, nil, err
		}
		return dev, dev, nil
	case "serial":
		bridge, err := transport.OpenSerialBridge(transport.SerialBridgeConfig{
			Port: serialPort,
			Baud: serialBaud,
		})
		if err != nil {
			return nil, nil, err
		}
		return bridge, bridge, nil
	default:
		return nil, nil, fmt.Errorf("unknown transport %q (want sim, spidev or serial)", transportName)
	}
}

// openDevice builds the Device selected by the global flags. The
// returned closer is nil for the simulator.
func openDevice() (*mcp4xxx.Device, io.Closer, error) {
	setupLogging()
	tr, closer, err := openTransport()
	if err != nil {
		return nil, nil, err
	}
	d, err := mcp4xxx.New(mcp4xxx.Model(modelName), tr, mcp4xxx.Config{
		RAB:             rAB,
		Invert:          invert,
		RestoreFromChip: true,
	})
	if err != nil {
		if closer != nil {
			closer.Close()
		}
		return nil, nil, err
	}
	return d, closer, nil
}

// channelRef resolves the --channel/--label flags into a ChannelRef.
func channelRef() device.ChannelRef {
	if label != "" {
		return device.ByLabel(label)
	}
	return device.ByIndex(channel)
}

func closeQuietly(c io.Closer) {
	if c != nil {
		c.Close()
	}
}
