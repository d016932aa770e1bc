// Package transport provides byte transports for MCP4XXX chips: a Linux
// spidev transport, an adapter for TinyGo SPI buses and a CRC-framed
// serial bridge for chips hanging off a remote microcontroller.
//
// All transports implement the same contract: one synchronous
// full-duplex exchange per call, with bus failures reported as
// connection errors.
//
// Copyright (C) 2026 digipot-go authors
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package transport

import (
	"tinygo.org/x/drivers"

	"digipot-go/pkg/errors"
)

// SPIBus adapts a TinyGo SPI bus to the chip transport contract. Chip
// select is left to the caller (most boards assert it in hardware or
// through a GPIO wrapper around the bus).
type SPIBus struct {
	bus drivers.SPI
}

// NewSPIBus wraps a TinyGo SPI bus.
func NewSPIBus(bus drivers.SPI) (*SPIBus, error) {
	if bus == nil {
		return nil, errors.NoTransport()
	}
	return &SPIBus{bus: bus}, nil
}

// Transfer performs one full-duplex exchange.
func (s *SPIBus) Transfer(tx []byte) ([]byte, error) {
	rx := make([]byte, len(tx))
	if err := s.bus.Tx(tx, rx); err != nil {
		return nil, errors.Wrap(err, errors.ErrConnection, "spi exchange failed")
	}
	return rx, nil
}
