// MCP4XXX wire framing
//
// Every exchange is a 2-byte full-duplex transfer. The first byte packs
// the 4-bit register address, the 2-bit command and the two high bits of
// the 9-bit data word; the second byte carries the low 8 data bits.
//
// Copyright (C) 2026 digipot-go authors
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package mcp4xxx

import (
	"digipot-go/pkg/errors"
)

// Command codes (bits 3:2 of the command byte).
const (
	cmdWrite = 0x00
	cmdRead  = 0x0C
)

// Register addresses (bits 7:4 of the command byte).
const (
	addrTCON   = 0x40
	addrStatus = 0x50
)

// wiperAddr maps a channel number to its volatile wiper register address.
var wiperAddr = [2]byte{0x00, 0x10}

// Register names used in error context.
const (
	regWiper  = "WIPER"
	regTCON   = "TCON"
	regStatus = "STATUS"
)

// Status register layout.
const (
	statusShdnBit = 0x02

	// Reserved bits that must read back set in a status response.
	statusReservedHi = 0x01 // data bit 8, first response byte
	statusReservedLo = 0xE0 // data bits 7:5, second response byte
)

// tconReservedHi is the reserved TCON data bit 8, fixed to 1 in hardware.
const tconReservedHi = 0x01

// maxDataWord is the largest value the 9-bit data field can carry.
const maxDataWord = 0x1FF

// writeFrame builds a register write command.
func writeFrame(addr byte, value int) [2]byte {
	return [2]byte{addr | cmdWrite | byte(value>>8&0x03), byte(value)}
}

// readFrame builds a register read command.
func readFrame(addr byte) [2]byte {
	return [2]byte{addr | cmdRead, 0}
}

// dataWord extracts the 9-bit data value from a read response.
func dataWord(resp []byte) int {
	return int(resp[0]&0x01)<<8 | int(resp[1])
}

// checkResponse validates the shape of a wire response. The chip cannot
// be trusted to answer at all, so a nil or short response is a protocol
// error, never a zero value.
func checkResponse(resp []byte, register string, channel int) error {
	if len(resp) != 2 {
		return errors.Protocolf("expected a 2-byte response, got %d bytes", len(resp)).
			SetRegister(register).
			SetChannel(channel)
	}
	return nil
}

// checkStatusResponse additionally validates the fixed reserved bits of
// a status register response.
func checkStatusResponse(resp []byte) error {
	if err := checkResponse(resp, regStatus, -1); err != nil {
		return err
	}
	if resp[0]&statusReservedHi != statusReservedHi || resp[1]&statusReservedLo != statusReservedLo {
		return errors.Protocolf("status reserved bits not set: % 02x", resp).
			SetRegister(regStatus)
	}
	return nil
}

// checkTCONResponse validates the fixed reserved bit of a TCON response.
func checkTCONResponse(resp []byte) error {
	if err := checkResponse(resp, regTCON, -1); err != nil {
		return err
	}
	if resp[0]&tconReservedHi != tconReservedHi {
		return errors.Protocolf("tcon reserved bit not set: % 02x", resp).
			SetRegister(regTCON)
	}
	return nil
}
