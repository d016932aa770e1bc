// Multi-channel digital potentiometer device
//
// A Device owns a fixed-size ordered set of independently configured
// Wipers. Channels are addressed by index or by unique string label and
// every Wiper property is mirrored as a bulk accessor across all
// channels. The channel set is fixed for the lifetime of the Device.
//
// Copyright (C) 2026 digipot-go authors
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package device

import (
	"strconv"

	"github.com/sirupsen/logrus"

	"digipot-go/pkg/errors"
	"digipot-go/pkg/logutil"
	"digipot-go/pkg/wiper"
)

// Factory builds one independent Wiper (with its own Potentiometer) for
// the given channel index. Replaces template deep-copying: every channel
// gets value-type state of its own and no shared mutable substructure.
type Factory func(channel int) (*wiper.Wiper, error)

// Device is a fixed-cardinality collection of Wipers.
type Device struct {
	wipers []*wiper.Wiper
	labels []string
	log    *logrus.Entry
}

// New constructs a Device with the given number of channels, calling
// factory once per channel. Default labels are the stringified indices.
func New(factory Factory, channels int) (*Device, error) {
	if factory == nil {
		return nil, errors.Validationf("device requires a wiper factory")
	}
	if channels <= 0 {
		return nil, errors.Validationf("channels: expected a positive integer, got %d", channels)
	}
	d := &Device{
		wipers: make([]*wiper.Wiper, channels),
		labels: make([]string, channels),
		log:    logutil.GetLogger("device"),
	}
	for i := 0; i < channels; i++ {
		w, err := factory(i)
		if err != nil {
			return nil, err
		}
		if w == nil {
			return nil, errors.Validationf("wiper factory returned nil for channel %d", i)
		}
		if err := w.SetChannel(i); err != nil {
			return nil, err
		}
		d.wipers[i] = w
		d.labels[i] = strconv.Itoa(i)
	}
	return d, nil
}

// Channels returns the number of channels.
func (d *Device) Channels() int { return len(d.wipers) }

// resolve maps a ChannelRef to a channel index. Unknown labels and
// out-of-range indices yield an address error; a negative index is a
// validation error (malformed input, not a lookup miss).
func (d *Device) resolve(ref ChannelRef) (int, error) {
	if ref.byLabel {
		for i, label := range d.labels {
			if label == ref.label {
				return i, nil
			}
		}
		return 0, errors.Addressf("channel %s not found", ref)
	}
	if ref.index < 0 {
		return 0, errors.Validationf("channel index must be non-negative, got %d", ref.index)
	}
	if ref.index >= len(d.wipers) {
		return 0, errors.Addressf("channel %s not found", ref)
	}
	return ref.index, nil
}

// Wiper returns the Wiper addressed by ref.
func (d *Device) Wiper(ref ChannelRef) (*wiper.Wiper, error) {
	i, err := d.resolve(ref)
	if err != nil {
		return nil, err
	}
	return d.wipers[i], nil
}

// ChannelLabel returns the label of the channel addressed by ref.
func (d *Device) ChannelLabel(ref ChannelRef) (string, error) {
	i, err := d.resolve(ref)
	if err != nil {
		return "", err
	}
	return d.labels[i], nil
}

// SetChannelLabel assigns a label to the channel addressed by ref.
// Labels must stay unique across channels; re-assigning a channel its
// own current label is a no-op success.
func (d *Device) SetChannelLabel(ref ChannelRef, label string) error {
	i, err := d.resolve(ref)
	if err != nil {
		return err
	}
	for j, existing := range d.labels {
		if existing == label && j != i {
			return errors.Addressf("label %q already assigned to channel %d", label, j).
				SetChannel(i)
		}
	}
	d.labels[i] = label
	d.log.WithField("channel", i).Debugf("label set to %q", label)
	return nil
}

// Value returns the register code of one channel.
func (d *Device) Value(ref ChannelRef) (int, error) {
	w, err := d.Wiper(ref)
	if err != nil {
		return 0, err
	}
	return w.Value(), nil
}

// SetValue programs the register code of one channel and returns the
// code actually set.
func (d *Device) SetValue(ref ChannelRef, value int) (int, error) {
	w, err := d.Wiper(ref)
	if err != nil {
		return 0, err
	}
	return w.SetValue(value)
}

// RelativeValue returns the [0, 1] register fraction of one channel.
func (d *Device) RelativeValue(ref ChannelRef) (float64, error) {
	w, err := d.Wiper(ref)
	if err != nil {
		return 0, err
	}
	return w.RelativeValue(), nil
}

// SetRelativeValue programs the register fraction of one channel.
func (d *Device) SetRelativeValue(ref ChannelRef, rel float64) (int, error) {
	w, err := d.Wiper(ref)
	if err != nil {
		return 0, err
	}
	return w.SetRelativeValue(rel)
}

// RWA returns the A-W resistance of one channel.
func (d *Device) RWA(ref ChannelRef) (float64, error) {
	w, err := d.Wiper(ref)
	if err != nil {
		return 0, err
	}
	return w.RWA(), nil
}

// SetRWA programs the A-W resistance of one channel.
func (d *Device) SetRWA(ref ChannelRef, r float64) (int, error) {
	w, err := d.Wiper(ref)
	if err != nil {
		return 0, err
	}
	return w.SetRWA(r)
}

// RWB returns the B-W resistance of one channel.
func (d *Device) RWB(ref ChannelRef) (float64, error) {
	w, err := d.Wiper(ref)
	if err != nil {
		return 0, err
	}
	return w.RWB(), nil
}

// SetRWB programs the B-W resistance of one channel.
func (d *Device) SetRWB(ref ChannelRef, r float64) (int, error) {
	w, err := d.Wiper(ref)
	if err != nil {
		return 0, err
	}
	return w.SetRWB(r)
}

// VW returns the wiper output voltage of one channel.
func (d *Device) VW(ref ChannelRef) (float64, error) {
	w, err := d.Wiper(ref)
	if err != nil {
		return 0, err
	}
	return w.VW(), nil
}

// SetVW programs the wiper output voltage of one channel.
func (d *Device) SetVW(ref ChannelRef, v float64) (int, error) {
	w, err := d.Wiper(ref)
	if err != nil {
		return 0, err
	}
	return w.SetVW(v)
}
