// Bulk and per-channel accessors for network parameters
//
// Every Wiper property is mirrored across all channels as a fixed-length
// ordered slice. Bulk setters require the slice length to equal the
// channel count; resistor-type setters additionally have a scalar
// broadcast variant.
//
// Copyright (C) 2026 digipot-go authors
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package device

import (
	"digipot-go/pkg/errors"
	"digipot-go/pkg/wiper"
)

func (d *Device) checkLength(n int) error {
	if n != len(d.wipers) {
		return errors.Validationf("expected %d values, got %d", len(d.wipers), n)
	}
	return nil
}

func (d *Device) gatherFloats(get func(*wiper.Wiper) float64) []float64 {
	out := make([]float64, len(d.wipers))
	for i, w := range d.wipers {
		out[i] = get(w)
	}
	return out
}

func (d *Device) scatterFloats(values []float64, set func(*wiper.Wiper, float64) error) error {
	if err := d.checkLength(len(values)); err != nil {
		return err
	}
	for i, w := range d.wipers {
		if err := set(w, values[i]); err != nil {
			return err
		}
	}
	return nil
}

func (d *Device) broadcastFloat(value float64, set func(*wiper.Wiper, float64) error) error {
	for _, w := range d.wipers {
		if err := set(w, value); err != nil {
			return err
		}
	}
	return nil
}

// Values returns the register codes of all channels.
func (d *Device) Values() []int {
	out := make([]int, len(d.wipers))
	for i, w := range d.wipers {
		out[i] = w.Value()
	}
	return out
}

// SetValues programs the register codes of all channels.
func (d *Device) SetValues(values []int) error {
	if err := d.checkLength(len(values)); err != nil {
		return err
	}
	for i, w := range d.wipers {
		if _, err := w.SetValue(values[i]); err != nil {
			return err
		}
	}
	return nil
}

// Inverts returns the inversion flags of all channels.
func (d *Device) Inverts() []bool {
	out := make([]bool, len(d.wipers))
	for i, w := range d.wipers {
		out[i] = w.Invert()
	}
	return out
}

// SetInverts changes the inversion flags of all channels.
func (d *Device) SetInverts(inverts []bool) error {
	if err := d.checkLength(len(inverts)); err != nil {
		return err
	}
	for i, w := range d.wipers {
		w.SetInvert(inverts[i])
	}
	return nil
}

// RWAs returns the A-W resistances of all channels.
func (d *Device) RWAs() []float64 {
	return d.gatherFloats((*wiper.Wiper).RWA)
}

// SetRWAs programs per-channel A-W resistances.
func (d *Device) SetRWAs(r []float64) error {
	return d.scatterFloats(r, func(w *wiper.Wiper, v float64) error {
		_, err := w.SetRWA(v)
		return err
	})
}

// SetRWAAll programs the same A-W resistance on every channel.
func (d *Device) SetRWAAll(r float64) error {
	return d.broadcastFloat(r, func(w *wiper.Wiper, v float64) error {
		_, err := w.SetRWA(v)
		return err
	})
}

// RWBs returns the B-W resistances of all channels.
func (d *Device) RWBs() []float64 {
	return d.gatherFloats((*wiper.Wiper).RWB)
}

// SetRWBs programs per-channel B-W resistances.
func (d *Device) SetRWBs(r []float64) error {
	return d.scatterFloats(r, func(w *wiper.Wiper, v float64) error {
		_, err := w.SetRWB(v)
		return err
	})
}

// SetRWBAll programs the same B-W resistance on every channel.
func (d *Device) SetRWBAll(r float64) error {
	return d.broadcastFloat(r, func(w *wiper.Wiper, v float64) error {
		_, err := w.SetRWB(v)
		return err
	})
}

// RA returns the series resistance at terminal A of one channel.
func (d *Device) RA(ref ChannelRef) (float64, error) {
	w, err := d.Wiper(ref)
	if err != nil {
		return 0, err
	}
	return w.Potentiometer().RA(), nil
}

// SetRA changes the series resistance at terminal A of one channel.
func (d *Device) SetRA(ref ChannelRef, r float64) error {
	w, err := d.Wiper(ref)
	if err != nil {
		return err
	}
	return w.Potentiometer().SetRA(r)
}

// RAs returns the A-terminal series resistances of all channels.
func (d *Device) RAs() []float64 {
	return d.gatherFloats(func(w *wiper.Wiper) float64 { return w.Potentiometer().RA() })
}

// SetRAs programs per-channel A-terminal series resistances.
func (d *Device) SetRAs(r []float64) error {
	return d.scatterFloats(r, func(w *wiper.Wiper, v float64) error {
		return w.Potentiometer().SetRA(v)
	})
}

// SetRAAll programs the same A-terminal series resistance on every channel.
func (d *Device) SetRAAll(r float64) error {
	return d.broadcastFloat(r, func(w *wiper.Wiper, v float64) error {
		return w.Potentiometer().SetRA(v)
	})
}

// RB returns the series resistance at terminal B of one channel.
func (d *Device) RB(ref ChannelRef) (float64, error) {
	w, err := d.Wiper(ref)
	if err != nil {
		return 0, err
	}
	return w.Potentiometer().RB(), nil
}

// SetRB changes the series resistance at terminal B of one channel.
func (d *Device) SetRB(ref ChannelRef, r float64) error {
	w, err := d.Wiper(ref)
	if err != nil {
		return err
	}
	return w.Potentiometer().SetRB(r)
}

// RBs returns the B-terminal series resistances of all channels.
func (d *Device) RBs() []float64 {
	return d.gatherFloats(func(w *wiper.Wiper) float64 { return w.Potentiometer().RB() })
}

// SetRBs programs per-channel B-terminal series resistances.
func (d *Device) SetRBs(r []float64) error {
	return d.scatterFloats(r, func(w *wiper.Wiper, v float64) error {
		return w.Potentiometer().SetRB(v)
	})
}

// SetRBAll programs the same B-terminal series resistance on every channel.
func (d *Device) SetRBAll(r float64) error {
	return d.broadcastFloat(r, func(w *wiper.Wiper, v float64) error {
		return w.Potentiometer().SetRB(v)
	})
}

// RLoad returns the load resistance of one channel.
func (d *Device) RLoad(ref ChannelRef) (float64, error) {
	w, err := d.Wiper(ref)
	if err != nil {
		return 0, err
	}
	return w.Potentiometer().RLoad(), nil
}

// SetRLoad changes the load resistance of one channel.
func (d *Device) SetRLoad(ref ChannelRef, r float64) error {
	w, err := d.Wiper(ref)
	if err != nil {
		return err
	}
	return w.Potentiometer().SetRLoad(r)
}

// RLoads returns the load resistances of all channels.
func (d *Device) RLoads() []float64 {
	return d.gatherFloats(func(w *wiper.Wiper) float64 { return w.Potentiometer().RLoad() })
}

// SetRLoads programs per-channel load resistances.
func (d *Device) SetRLoads(r []float64) error {
	return d.scatterFloats(r, func(w *wiper.Wiper, v float64) error {
		return w.Potentiometer().SetRLoad(v)
	})
}

// SetRLoadAll programs the same load resistance on every channel.
func (d *Device) SetRLoadAll(r float64) error {
	return d.broadcastFloat(r, func(w *wiper.Wiper, v float64) error {
		return w.Potentiometer().SetRLoad(v)
	})
}

// VA returns the A-terminal source voltage of one channel.
func (d *Device) VA(ref ChannelRef) (float64, error) {
	w, err := d.Wiper(ref)
	if err != nil {
		return 0, err
	}
	return w.Potentiometer().VA(), nil
}

// SetVA changes the A-terminal source voltage of one channel.
func (d *Device) SetVA(ref ChannelRef, v float64) error {
	w, err := d.Wiper(ref)
	if err != nil {
		return err
	}
	return w.Potentiometer().SetVA(v)
}

// VAs returns the A-terminal source voltages of all channels.
func (d *Device) VAs() []float64 {
	return d.gatherFloats(func(w *wiper.Wiper) float64 { return w.Potentiometer().VA() })
}

// SetVAs programs per-channel A-terminal source voltages.
func (d *Device) SetVAs(v []float64) error {
	return d.scatterFloats(v, func(w *wiper.Wiper, val float64) error {
		return w.Potentiometer().SetVA(val)
	})
}

// VB returns the B-terminal source voltage of one channel.
func (d *Device) VB(ref ChannelRef) (float64, error) {
	w, err := d.Wiper(ref)
	if err != nil {
		return 0, err
	}
	return w.Potentiometer().VB(), nil
}

// SetVB changes the B-terminal source voltage of one channel.
func (d *Device) SetVB(ref ChannelRef, v float64) error {
	w, err := d.Wiper(ref)
	if err != nil {
		return err
	}
	return w.Potentiometer().SetVB(v)
}

// VBs returns the B-terminal source voltages of all channels.
func (d *Device) VBs() []float64 {
	return d.gatherFloats(func(w *wiper.Wiper) float64 { return w.Potentiometer().VB() })
}

// SetVBs programs per-channel B-terminal source voltages.
func (d *Device) SetVBs(v []float64) error {
	return d.scatterFloats(v, func(w *wiper.Wiper, val float64) error {
		return w.Potentiometer().SetVB(val)
	})
}

// VLoad returns the load source voltage of one channel.
func (d *Device) VLoad(ref ChannelRef) (float64, error) {
	w, err := d.Wiper(ref)
	if err != nil {
		return 0, err
	}
	return w.Potentiometer().VLoad(), nil
}

// SetVLoad changes the load source voltage of one channel.
func (d *Device) SetVLoad(ref ChannelRef, v float64) error {
	w, err := d.Wiper(ref)
	if err != nil {
		return err
	}
	return w.Potentiometer().SetVLoad(v)
}

// VLoads returns the load source voltages of all channels.
func (d *Device) VLoads() []float64 {
	return d.gatherFloats(func(w *wiper.Wiper) float64 { return w.Potentiometer().VLoad() })
}

// SetVLoads programs per-channel load source voltages.
func (d *Device) SetVLoads(v []float64) error {
	return d.scatterFloats(v, func(w *wiper.Wiper, val float64) error {
		return w.Potentiometer().SetVLoad(val)
	})
}

// VWs returns the wiper output voltages of all channels.
func (d *Device) VWs() []float64 {
	return d.gatherFloats((*wiper.Wiper).VW)
}

// SetVWs programs per-channel wiper output voltages.
func (d *Device) SetVWs(v []float64) error {
	return d.scatterFloats(v, func(w *wiper.Wiper, val float64) error {
		_, err := w.SetVW(val)
		return err
	})
}
