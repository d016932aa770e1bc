// In-memory MCP4XXX register simulator
//
// The Simulator answers the wire protocol the way real silicon does: it
// keeps 9-bit register words, drives the reserved bits high and echoes
// 0xFF during writes. It backs the package tests and the CLI when no bus
// is attached.
//
// Copyright (C) 2026 digipot-go authors
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package mcp4xxx

import (
	"sync"

	"digipot-go/pkg/errors"
)

// Simulator implements Transport against in-memory registers. Safe for
// concurrent use.
type Simulator struct {
	mu      sync.Mutex
	wipers  [2]uint16
	tcon    uint16
	shdnPin bool
}

// NewSimulator creates a Simulator in the power-on state of a volatile
// part: wipers at mid-scale code 0x40, all terminals connected.
func NewSimulator() *Simulator {
	return &Simulator{
		wipers: [2]uint16{0x40, 0x40},
		tcon:   0x1FF,
	}
}

// SetWiper presets a wiper register, mimicking a non-volatile part that
// restored the value at power-on.
func (s *Simulator) SetWiper(channel int, value uint16) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wipers[channel] = value & maxDataWord
}

// WiperRegister returns the raw register word of a channel.
func (s *Simulator) WiperRegister(channel int) uint16 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wipers[channel]
}

// TCONRegister returns the raw TCON register word.
func (s *Simulator) TCONRegister() uint16 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tcon
}

// SetShdnPin drives the simulated hardware SHDN pin.
func (s *Simulator) SetShdnPin(asserted bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shdnPin = asserted
}

// status composes the status register word: reserved bits high, SHDN pin
// state in bit 1.
func (s *Simulator) status() uint16 {
	word := uint16(0x1E0)
	if s.shdnPin {
		word |= statusShdnBit
	}
	return word
}

// register maps a command-byte address to the backing register word.
func (s *Simulator) register(addr byte) (*uint16, error) {
	switch addr {
	case wiperAddr[0]:
		return &s.wipers[0], nil
	case wiperAddr[1]:
		return &s.wipers[1], nil
	case addrTCON:
		return &s.tcon, nil
	default:
		return nil, errors.Addressf("simulator has no register at 0x%02x", addr)
	}
}

// Transfer answers one 2-byte command frame. Implements Transport.
func (s *Simulator) Transfer(tx []byte) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(tx) != 2 {
		return nil, errors.Protocolf("simulator expects 2-byte frames, got %d bytes", len(tx))
	}
	addr := tx[0] & 0xF0
	cmd := tx[0] & 0x0C
	switch cmd {
	case cmdRead:
		var word uint16
		if addr == addrStatus {
			word = s.status()
		} else {
			reg, err := s.register(addr)
			if err != nil {
				return nil, err
			}
			word = *reg
		}
		return []byte{0xFE | byte(word>>8&0x01), byte(word)}, nil
	case cmdWrite:
		if addr == addrStatus {
			return nil, errors.Addressf("status register is read-only")
		}
		reg, err := s.register(addr)
		if err != nil {
			return nil, err
		}
		word := uint16(tx[0]&0x03)<<8 | uint16(tx[1])
		if addr == addrTCON {
			// Hardware keeps the reserved TCON bit 8 high.
			word |= 0x100
		}
		*reg = word
		return []byte{0xFF, 0xFF}, nil
	default:
		return nil, errors.Protocolf("simulator does not implement command 0x%02x", cmd)
	}
}
