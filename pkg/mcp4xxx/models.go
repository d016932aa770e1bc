// MCP4XXX chip family constraint tables
//
// Copyright (C) 2026 digipot-go authors
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package mcp4xxx

import (
	"sort"

	"digipot-go/pkg/errors"
)

// WiperResistance is the typical wiper contact resistance of the family.
const WiperResistance = 75.0

// Resistances is the fixed ladder of factory r_ab options. Requests must
// match exactly; nothing is interpolated or coerced.
var Resistances = []float64{5e3, 10e3, 50e3, 100e3}

// ValidateRAB checks r_ab against the factory resistor ladder.
func ValidateRAB(rAB float64) error {
	for _, r := range Resistances {
		if rAB == r {
			return nil
		}
	}
	return errors.Validationf("r_ab %v not available, must be one of %v", rAB, Resistances)
}

// ValidateMaxValue checks the register range against the two supported
// resolutions (7-bit and 8-bit parts).
func ValidateMaxValue(maxValue int) error {
	if maxValue != 128 && maxValue != 256 {
		return errors.Validationf("max_value must be 128 or 256, got %d", maxValue)
	}
	return nil
}

// Model names a concrete chip of the MCP4XXX family.
type Model string

// Potentiometer parts (all terminals pinned out).
const (
	MCP4131 Model = "MCP4131"
	MCP4141 Model = "MCP4141"
	MCP4151 Model = "MCP4151"
	MCP4161 Model = "MCP4161"
	MCP4231 Model = "MCP4231"
	MCP4241 Model = "MCP4241"
	MCP4251 Model = "MCP4251"
	MCP4261 Model = "MCP4261"
)

// Rheostat parts (terminal A not pinned out).
const (
	MCP4132 Model = "MCP4132"
	MCP4142 Model = "MCP4142"
	MCP4152 Model = "MCP4152"
	MCP4162 Model = "MCP4162"
	MCP4232 Model = "MCP4232"
	MCP4242 Model = "MCP4242"
	MCP4252 Model = "MCP4252"
	MCP4262 Model = "MCP4262"
)

// ModelSpec captures the hardware constraints of one chip model.
type ModelSpec struct {
	// MaxValue is the full-scale register code (128 or 256).
	MaxValue int

	// Channels is the number of independent wipers (1 or 2).
	Channels int

	// Volatile is false for parts with non-volatile wiper memory, which
	// retain and restore their position across power cycles.
	Volatile bool

	// Rheostat marks parts without an external A terminal.
	Rheostat bool
}

var models = map[Model]ModelSpec{
	MCP4131: {MaxValue: 128, Channels: 1, Volatile: true},
	MCP4141: {MaxValue: 128, Channels: 1, Volatile: false},
	MCP4151: {MaxValue: 256, Channels: 1, Volatile: true},
	MCP4161: {MaxValue: 256, Channels: 1, Volatile: false},
	MCP4231: {MaxValue: 128, Channels: 2, Volatile: true},
	MCP4241: {MaxValue: 128, Channels: 2, Volatile: false},
	MCP4251: {MaxValue: 256, Channels: 2, Volatile: true},
	MCP4261: {MaxValue: 256, Channels: 2, Volatile: false},

	MCP4132: {MaxValue: 128, Channels: 1, Volatile: true, Rheostat: true},
	MCP4142: {MaxValue: 128, Channels: 1, Volatile: false, Rheostat: true},
	MCP4152: {MaxValue: 256, Channels: 1, Volatile: true, Rheostat: true},
	MCP4162: {MaxValue: 256, Channels: 1, Volatile: false, Rheostat: true},
	MCP4232: {MaxValue: 128, Channels: 2, Volatile: true, Rheostat: true},
	MCP4242: {MaxValue: 128, Channels: 2, Volatile: false, Rheostat: true},
	MCP4252: {MaxValue: 256, Channels: 2, Volatile: true, Rheostat: true},
	MCP4262: {MaxValue: 256, Channels: 2, Volatile: false, Rheostat: true},
}

// Spec returns the constraint table entry for a model.
func Spec(model Model) (ModelSpec, error) {
	spec, ok := models[model]
	if !ok {
		return ModelSpec{}, errors.Validationf("unknown MCP4XXX model %q", model)
	}
	return spec, nil
}

// Models returns all known model names, sorted.
func Models() []Model {
	out := make([]Model, 0, len(models))
	for m := range models {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
