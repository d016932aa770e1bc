// Discrete register abstraction over a Potentiometer
//
// A Wiper quantizes the continuous wiper position of an analog
// Potentiometer model into an integer register code in [0, max_value].
// Hardware-backed wipers additionally mirror every code change to the
// chip through an injected IO implementation; the model is committed
// only after the wire exchange succeeds.
//
// Copyright (C) 2026 digipot-go authors
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package wiper

import (
	"math"

	"github.com/sirupsen/logrus"

	"digipot-go/pkg/errors"
	"digipot-go/pkg/logutil"
	"digipot-go/pkg/potentiometer"
)

// IO moves register codes to and from a physical channel. Implementations
// are chip protocol endpoints (see pkg/mcp4xxx).
type IO interface {
	// ReadValue returns the live register code of the channel.
	ReadValue(channel int) (int, error)

	// WriteValue programs the register code of the channel.
	WriteValue(channel int, value int) error
}

// Config holds construction parameters for a Wiper.
type Config struct {
	// MaxValue is the top of the register code range [0, MaxValue].
	// Must be a positive integer.
	MaxValue int

	// Invert flips the externally visible code: a request of v stores
	// MaxValue - v.
	Invert bool

	// Channel is the hardware channel number. Must be >= 0.
	Channel int

	// Locked makes MaxValue read-only after construction.
	Locked bool
}

// DefaultConfig returns a Config for a 7-bit wiper on channel 0.
func DefaultConfig() Config {
	return Config{MaxValue: 128}
}

// Wiper binds an integer register code to one Potentiometer. The zero
// value is not usable; construct with New or NewWithIO.
type Wiper struct {
	pot      *potentiometer.Potentiometer
	io       IO
	channel  int
	maxValue int
	invert   bool
	locked   bool
	value    int // cached stored (pre-inversion) register code
	log      *logrus.Entry
}

// New creates a model-only Wiper that exclusively owns pot. The cached
// register code is synchronized from the model position.
func New(pot *potentiometer.Potentiometer, cfg Config) (*Wiper, error) {
	return newWiper(pot, nil, cfg)
}

// NewWithIO creates a hardware-backed Wiper. The caller decides whether
// to program a default value (volatile parts) or Refresh from the chip
// (non-volatile parts) after construction.
func NewWithIO(pot *potentiometer.Potentiometer, io IO, cfg Config) (*Wiper, error) {
	if io == nil {
		return nil, errors.NoTransport()
	}
	return newWiper(pot, io, cfg)
}

func newWiper(pot *potentiometer.Potentiometer, io IO, cfg Config) (*Wiper, error) {
	if pot == nil {
		return nil, errors.Validationf("wiper requires a potentiometer")
	}
	if cfg.MaxValue <= 0 {
		return nil, errors.Validationf("max_value: expected a positive integer, got %d", cfg.MaxValue)
	}
	if cfg.Channel < 0 {
		return nil, errors.Validationf("channel: expected a non-negative integer, got %d", cfg.Channel)
	}
	w := &Wiper{
		pot:      pot,
		io:       io,
		channel:  cfg.Channel,
		maxValue: cfg.MaxValue,
		invert:   cfg.Invert,
		locked:   cfg.Locked,
		log:      logutil.GetLogger("wiper"),
	}
	w.value = w.stored()
	return w, nil
}

// Potentiometer returns the owned analog model.
func (w *Wiper) Potentiometer() *potentiometer.Potentiometer { return w.pot }

// Channel returns the hardware channel number.
func (w *Wiper) Channel() int { return w.channel }

// SetChannel changes the hardware channel number.
func (w *Wiper) SetChannel(channel int) error {
	if channel < 0 {
		return errors.Validationf("channel: expected a non-negative integer, got %d", channel)
	}
	w.channel = channel
	return nil
}

// Invert reports whether the visible code is flipped.
func (w *Wiper) Invert() bool { return w.invert }

// SetInvert changes the code inversion.
func (w *Wiper) SetInvert(invert bool) {
	w.invert = invert
	w.log.WithField("channel", w.channel).Debugf("invert set to %v", invert)
}

// MinValue returns the lowest register code, which is always 0.
func (w *Wiper) MinValue() int { return 0 }

// MaxValue returns the top of the register code range.
func (w *Wiper) MaxValue() int { return w.maxValue }

// SetMaxValue rescales the register range, re-deriving the code from the
// unchanged wiper position. Rejected on parameter-locked wipers.
func (w *Wiper) SetMaxValue(maxValue int) error {
	if w.locked {
		return errors.Validationf("max_value is locked").SetChannel(w.channel)
	}
	if maxValue <= 0 {
		return errors.Validationf("max_value: expected a positive integer, got %d", maxValue)
	}
	w.maxValue = maxValue
	w.value = w.stored()
	w.log.WithField("channel", w.channel).Debugf("max_value set to %d", maxValue)
	return nil
}

// stored derives the pre-inversion register code from the model position.
func (w *Wiper) stored() int {
	return int(math.Round(w.pot.Position() * float64(w.maxValue)))
}

// visible applies the inversion to a stored code.
func (w *Wiper) visible(stored int) int {
	if w.invert {
		return w.maxValue - stored
	}
	return stored
}

// Value returns the current register code, recomputed from the model
// position. The cached code is refreshed as a side effect.
func (w *Wiper) Value() int {
	w.value = w.stored()
	return w.visible(w.value)
}

// SetValue programs a register code. Requests outside [0, MaxValue] are
// clamped. Returns the code actually set (after clamping, before
// inversion is undone for the caller).
func (w *Wiper) SetValue(value int) (int, error) {
	if value < 0 {
		value = 0
	} else if value > w.maxValue {
		value = w.maxValue
	}
	stored := value
	if w.invert {
		stored = w.maxValue - value
	}
	if err := w.commit(stored); err != nil {
		return 0, err
	}
	return value, nil
}

// commit writes a stored code to hardware (if attached) and then to the
// model. The model is never mutated on a failed wire exchange.
func (w *Wiper) commit(stored int) error {
	if w.io != nil {
		if err := w.io.WriteValue(w.channel, stored); err != nil {
			return err
		}
	}
	if err := w.pot.SetPosition(float64(stored) / float64(w.maxValue)); err != nil {
		return err
	}
	w.value = stored
	w.log.WithField("channel", w.channel).Debugf("value set to %d", stored)
	return nil
}

// RelativeValue returns the register code as a float in [0, 1].
func (w *Wiper) RelativeValue() float64 {
	return float64(w.Value()) / float64(w.maxValue)
}

// SetRelativeValue programs the code nearest to a [0, 1] fraction.
// Out-of-range requests are clamped; non-finite input is rejected.
func (w *Wiper) SetRelativeValue(rel float64) (int, error) {
	if math.IsNaN(rel) || math.IsInf(rel, 0) {
		return 0, errors.Validationf("relative value: expected a finite number, got %v", rel)
	}
	if rel < 0 {
		rel = 0
	} else if rel > 1 {
		rel = 1
	}
	return w.SetValue(int(math.Round(rel * float64(w.maxValue))))
}

// Refresh re-reads the live register code from hardware and synchronizes
// the model position and cache to it. Model-only wipers synchronize the
// cache from the model instead.
func (w *Wiper) Refresh() error {
	if w.io == nil {
		w.value = w.stored()
		return nil
	}
	value, err := w.io.ReadValue(w.channel)
	if err != nil {
		return err
	}
	if value < 0 || value > w.maxValue {
		return errors.Protocolf("read value %d outside register range [0, %d]", value, w.maxValue).
			SetChannel(w.channel)
	}
	if err := w.pot.SetPosition(float64(value) / float64(w.maxValue)); err != nil {
		return err
	}
	w.value = value
	return nil
}

// snap quantizes the model position to the nearest register code and
// commits it, restoring the previous position if the commit fails.
func (w *Wiper) snap(prev float64) error {
	if err := w.commit(w.stored()); err != nil {
		if restoreErr := w.pot.SetPosition(prev); restoreErr != nil {
			return restoreErr
		}
		return err
	}
	return nil
}

// RWA returns the A-W resistance of the model.
func (w *Wiper) RWA() float64 { return w.pot.RWA() }

// SetRWA programs the register code whose A-W resistance is nearest to r.
func (w *Wiper) SetRWA(r float64) (int, error) {
	prev := w.pot.Position()
	if err := w.pot.SetRWA(r); err != nil {
		return 0, err
	}
	if err := w.snap(prev); err != nil {
		return 0, err
	}
	return w.Value(), nil
}

// RWB returns the B-W resistance of the model.
func (w *Wiper) RWB() float64 { return w.pot.RWB() }

// SetRWB programs the register code whose B-W resistance is nearest to r.
func (w *Wiper) SetRWB(r float64) (int, error) {
	prev := w.pot.Position()
	if err := w.pot.SetRWB(r); err != nil {
		return 0, err
	}
	if err := w.snap(prev); err != nil {
		return 0, err
	}
	return w.Value(), nil
}

// VW returns the wiper output voltage of the model.
func (w *Wiper) VW() float64 { return w.pot.VW() }

// SetVW programs the register code whose output voltage is nearest to v.
func (w *Wiper) SetVW(v float64) (int, error) {
	prev := w.pot.Position()
	if err := w.pot.SetVW(v); err != nil {
		return 0, err
	}
	if err := w.snap(prev); err != nil {
		return 0, err
	}
	return w.Value(), nil
}
