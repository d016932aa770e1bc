// Model-aware MCP4XXX device construction
//
// Copyright (C) 2026 digipot-go authors
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package mcp4xxx

import (
	"digipot-go/pkg/device"
	"digipot-go/pkg/potentiometer"
	"digipot-go/pkg/wiper"
)

// Config holds the per-build options of a Device. The register range and
// channel count come from the model table and cannot be overridden.
type Config struct {
	// RAB selects the factory resistance option of the part. Must be one
	// of Resistances.
	RAB float64

	// DefaultValue is programmed into every channel of a volatile part at
	// construction. Non-volatile parts restore their own stored value and
	// ignore this field.
	DefaultValue int

	// Invert flips the visible register code of every channel.
	Invert bool

	// RestoreFromChip synchronizes the model from the live wiper
	// registers instead of programming DefaultValue, regardless of
	// volatility. For tools attaching to an already running chip.
	RestoreFromChip bool
}

// DefaultConfig returns a Config for a 10k part with all wipers centered.
func DefaultConfig() Config {
	return Config{RAB: 10e3, DefaultValue: 64}
}

// Device is a concrete MCP4XXX chip: a multi-channel device.Device whose
// wipers are bound to the chip's wiper registers, plus the chip-global
// TCON and status operations.
type Device struct {
	*device.Device

	chip  *Chip
	model Model
	spec  ModelSpec
}

// New builds a Device for a concrete chip model. Register range, channel
// count and parameter locking follow the model table; volatile parts are
// programmed to cfg.DefaultValue, non-volatile parts are synchronized
// from their stored wiper registers instead.
func New(model Model, transport Transport, cfg Config) (*Device, error) {
	spec, err := Spec(model)
	if err != nil {
		return nil, err
	}
	if err := ValidateRAB(cfg.RAB); err != nil {
		return nil, err
	}
	chip := NewChip(transport)
	factory := func(channel int) (*wiper.Wiper, error) {
		pot, err := potentiometer.New(potentiometer.Config{
			RAB:      cfg.RAB,
			RW:       WiperResistance,
			Position: 0.5,
			Locked:   true,
		})
		if err != nil {
			return nil, err
		}
		return wiper.NewWithIO(pot, chip, wiper.Config{
			MaxValue: spec.MaxValue,
			Invert:   cfg.Invert,
			Channel:  channel,
			Locked:   true,
		})
	}
	base, err := device.New(factory, spec.Channels)
	if err != nil {
		return nil, err
	}
	d := &Device{
		Device: base,
		chip:   chip,
		model:  model,
		spec:   spec,
	}
	if err := d.sync(cfg); err != nil {
		return nil, err
	}
	if spec.Rheostat {
		// Rheostat parts have no external A terminal; disconnect it so
		// the ladder only conducts between B and W.
		t := TCON{W: true, B: true}
		if err := d.WriteTCON(t, t); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// sync brings the wiper registers and the model into agreement after
// construction. Non-volatile parts restored their own value at power-on,
// so they are read, never programmed.
func (d *Device) sync(cfg Config) error {
	for i := 0; i < d.Channels(); i++ {
		w, err := d.Wiper(device.ByIndex(i))
		if err != nil {
			return err
		}
		if d.spec.Volatile && !cfg.RestoreFromChip {
			if _, err := w.SetValue(cfg.DefaultValue); err != nil {
				return err
			}
			continue
		}
		if err := w.Refresh(); err != nil {
			return err
		}
	}
	return nil
}

// Model returns the chip model name.
func (d *Device) Model() Model { return d.model }

// ModelSpec returns the constraint table entry of the chip.
func (d *Device) ModelSpec() ModelSpec { return d.spec }

// Chip returns the underlying protocol endpoint.
func (d *Device) Chip() *Chip { return d.chip }

// ShdnPinStatus reads the hardware SHDN pin state.
func (d *Device) ShdnPinStatus() (bool, error) {
	return d.chip.ShdnPinStatus()
}

// ReadTCON reads the terminal connections of both channels. Single
// channel parts report the unused high nibble as read from hardware.
func (d *Device) ReadTCON() (TCON, TCON, error) {
	return d.chip.ReadTCON()
}

// WriteTCON programs and verifies the terminal connections of both
// channels.
func (d *Device) WriteTCON(ch0, ch1 TCON) error {
	return d.chip.WriteTCON(ch0, ch1)
}

// Shdn drives the software shutdown bit of each channel.
func (d *Device) Shdn(ch0, ch1 bool) error {
	return d.chip.Shdn(ch0, ch1)
}

// Refresh re-reads every wiper register from hardware and synchronizes
// the models.
func (d *Device) Refresh() error {
	for i := 0; i < d.Channels(); i++ {
		w, err := d.Wiper(device.ByIndex(i))
		if err != nil {
			return err
		}
		if err := w.Refresh(); err != nil {
			return err
		}
	}
	return nil
}
