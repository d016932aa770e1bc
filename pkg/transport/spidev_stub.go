// spidev stub for non-Linux platforms
//
// Copyright (C) 2026 digipot-go authors
//
// This file may be distributed under the terms of the GNU GPLv3 license.

//go:build !linux

package transport

import (
	"digipot-go/pkg/errors"
)

// SPIDevConfig holds the bus parameters of a spidev transport.
type SPIDevConfig struct {
	Device string
	Speed  uint32
	Mode   uint8
}

// DefaultSPIDevConfig returns a config for the first chip select on bus 0.
func DefaultSPIDevConfig() SPIDevConfig {
	return SPIDevConfig{Device: "/dev/spidev0.0", Speed: 1000000}
}

// SPIDev is only available on Linux.
type SPIDev struct{}

// OpenSPIDev fails on non-Linux platforms.
func OpenSPIDev(cfg SPIDevConfig) (*SPIDev, error) {
	return nil, errors.New(errors.ErrConnection, "spidev is only supported on linux")
}

// Transfer is unreachable on non-Linux platforms.
func (d *SPIDev) Transfer(tx []byte) ([]byte, error) {
	return nil, errors.New(errors.ErrConnection, "spidev is only supported on linux")
}

// Close is a no-op.
func (d *SPIDev) Close() error { return nil }
