// Terminal connection (TCON) register handling
//
// Copyright (C) 2026 digipot-go authors
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package mcp4xxx

// TCON describes the terminal connections of one channel. The wire
// encoding inverts the shutdown semantic: a cleared hardware bit means
// the channel is forced into shutdown, so packing flips Shdn.
type TCON struct {
	// Shdn forces the channel into shutdown (terminals disconnected).
	Shdn bool

	// A, W and B connect the respective terminals to the resistor network.
	A bool
	W bool
	B bool
}

// DefaultTCON returns the power-on terminal configuration: all terminals
// connected, shutdown off.
func DefaultTCON() TCON {
	return TCON{A: true, W: true, B: true}
}

// pack encodes the TCON into its 4-bit wire nibble.
func (t TCON) pack() byte {
	var b byte
	if !t.Shdn {
		b |= 0x08
	}
	if t.A {
		b |= 0x04
	}
	if t.W {
		b |= 0x02
	}
	if t.B {
		b |= 0x01
	}
	return b
}

// unpackTCON decodes a 4-bit wire nibble.
func unpackTCON(nibble byte) TCON {
	return TCON{
		Shdn: nibble&0x08 == 0,
		A:    nibble&0x04 != 0,
		W:    nibble&0x02 != 0,
		B:    nibble&0x01 != 0,
	}
}

// packTCONPair packs both channel nibbles into the TCON data byte
// (channel 0 low, channel 1 high).
func packTCONPair(ch0, ch1 TCON) byte {
	return ch0.pack() | ch1.pack()<<4
}
