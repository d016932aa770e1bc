// Package mcp4xxx drives MCP4XXX digital potentiometers and rheostats
// over their 2-byte SPI command set.
//
// The package separates the stateless wire protocol (Chip) from the
// device abstraction (Device, built on pkg/device and pkg/wiper). The
// byte transport is an injected collaborator so the same code runs
// against Linux spidev, a TinyGo SPI bus, a remote serial bridge or the
// in-memory Simulator.
//
// Copyright (C) 2026 digipot-go authors
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package mcp4xxx

import (
	"github.com/sirupsen/logrus"

	"digipot-go/pkg/errors"
	"digipot-go/pkg/logutil"
)

// Transport performs one synchronous full-duplex byte exchange. A nil
// or short response must be reported by the caller as a protocol error;
// Transfer itself only fails when the underlying bus does.
type Transport interface {
	Transfer(tx []byte) ([]byte, error)
}

// Chip is the stateless protocol endpoint for one physical MCP4XXX. It
// implements wiper.IO for the wiper registers and exposes the status and
// TCON operations.
type Chip struct {
	transport Transport
	log       *logrus.Entry
}

// NewChip creates a protocol endpoint. The transport may be nil; its
// absence surfaces as a connection error on first use, never as a
// silent default.
func NewChip(transport Transport) *Chip {
	return &Chip{
		transport: transport,
		log:       logutil.GetLogger("mcp4xxx"),
	}
}

// transfer performs one checked 2-byte exchange.
func (c *Chip) transfer(frame [2]byte, register string, channel int) ([]byte, error) {
	if c.transport == nil {
		return nil, errors.NoTransport().SetRegister(register).SetChannel(channel)
	}
	resp, err := c.transport.Transfer(frame[:])
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConnection, "transfer failed").
			SetRegister(register).
			SetChannel(channel)
	}
	if err := checkResponse(resp, register, channel); err != nil {
		return nil, err
	}
	return resp, nil
}

// channelAddr resolves a channel number to its wiper register address.
func channelAddr(channel int) (byte, error) {
	if channel < 0 || channel >= len(wiperAddr) {
		return 0, errors.Addressf("channel %d not addressable on MCP4XXX", channel)
	}
	return wiperAddr[channel], nil
}

// ReadValue reads the live wiper register of a channel. Implements
// wiper.IO.
func (c *Chip) ReadValue(channel int) (int, error) {
	addr, err := channelAddr(channel)
	if err != nil {
		return 0, err
	}
	frame := readFrame(addr)
	resp, err := c.transfer(frame, regWiper, channel)
	if err != nil {
		return 0, err
	}
	return dataWord(resp), nil
}

// WriteValue programs the wiper register of a channel. Implements
// wiper.IO.
func (c *Chip) WriteValue(channel, value int) error {
	addr, err := channelAddr(channel)
	if err != nil {
		return err
	}
	if value < 0 || value > maxDataWord {
		return errors.Validationf("wiper value %d outside data range [0, %d]", value, maxDataWord).
			SetChannel(channel)
	}
	frame := writeFrame(addr, value)
	if _, err := c.transfer(frame, regWiper, channel); err != nil {
		return err
	}
	c.log.WithField("channel", channel).Debugf("wiper register written: %d", value)
	return nil
}

// ShdnPinStatus reads the state of the hardware SHDN pin from the
// status register.
func (c *Chip) ShdnPinStatus() (bool, error) {
	resp, err := c.transfer(readFrame(addrStatus), regStatus, -1)
	if err != nil {
		return false, err
	}
	if err := checkStatusResponse(resp); err != nil {
		return false, err
	}
	return resp[1]&statusShdnBit == statusShdnBit, nil
}

// ReadTCON reads and unpacks the terminal connections of both channels.
func (c *Chip) ReadTCON() (TCON, TCON, error) {
	resp, err := c.transfer(readFrame(addrTCON), regTCON, -1)
	if err != nil {
		return TCON{}, TCON{}, err
	}
	if err := checkTCONResponse(resp); err != nil {
		return TCON{}, TCON{}, err
	}
	return unpackTCON(resp[1] & 0x0F), unpackTCON(resp[1] >> 4), nil
}

// WriteTCON programs the terminal connections of both channels and
// verifies the write by reading the register back. An echo mismatch is
// a protocol error.
func (c *Chip) WriteTCON(ch0, ch1 TCON) error {
	data := packTCONPair(ch0, ch1)
	if _, err := c.transfer(writeFrame(addrTCON, int(data)), regTCON, -1); err != nil {
		return err
	}
	resp, err := c.transfer(readFrame(addrTCON), regTCON, -1)
	if err != nil {
		return err
	}
	if err := checkTCONResponse(resp); err != nil {
		return err
	}
	if resp[1] != data {
		return errors.Protocolf("echo mismatch: wrote 0x%02x, read 0x%02x", data, resp[1]).
			SetRegister(regTCON)
	}
	c.log.Debugf("tcon written: 0x%02x", data)
	return nil
}

// Shdn drives only the shutdown bit of each channel, leaving all
// terminals connected.
func (c *Chip) Shdn(ch0, ch1 bool) error {
	t0 := DefaultTCON()
	t0.Shdn = ch0
	t1 := DefaultTCON()
	t1.Shdn = ch1
	return c.WriteTCON(t0, t1)
}
