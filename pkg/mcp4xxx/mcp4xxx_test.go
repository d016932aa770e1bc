// Copyright (C) 2026 digipot-go authors
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package mcp4xxx

import (
	"math"
	"testing"

	"digipot-go/pkg/device"
	"digipot-go/pkg/errors"
)

func TestChipNoTransport(t *testing.T) {
	chip := NewChip(nil)
	if _, err := chip.ReadValue(0); !errors.IsConnection(err) {
		t.Errorf("ReadValue: expected connection error, got %v", err)
	}
	if err := chip.WriteValue(0, 10); !errors.IsConnection(err) {
		t.Errorf("WriteValue: expected connection error, got %v", err)
	}
	if _, err := chip.ShdnPinStatus(); !errors.IsConnection(err) {
		t.Errorf("ShdnPinStatus: expected connection error, got %v", err)
	}
}

func TestChipChannelValidation(t *testing.T) {
	chip := NewChip(NewSimulator())
	for _, ch := range []int{-1, 2, 7} {
		if _, err := chip.ReadValue(ch); !errors.IsAddress(err) {
			t.Errorf("ReadValue(%d): expected address error, got %v", ch, err)
		}
		if err := chip.WriteValue(ch, 0); !errors.IsAddress(err) {
			t.Errorf("WriteValue(%d): expected address error, got %v", ch, err)
		}
	}
}

func TestChipValueValidation(t *testing.T) {
	chip := NewChip(NewSimulator())
	for _, v := range []int{-1, 512, 1000} {
		if err := chip.WriteValue(0, v); !errors.IsValidation(err) {
			t.Errorf("WriteValue(0, %d): expected validation error, got %v", v, err)
		}
	}
}

func TestChipWiperRoundTrip(t *testing.T) {
	sim := NewSimulator()
	chip := NewChip(sim)
	for _, v := range []int{0, 1, 64, 255, 256, 511} {
		for ch := 0; ch < 2; ch++ {
			if err := chip.WriteValue(ch, v); err != nil {
				t.Fatalf("WriteValue(%d, %d) failed: %v", ch, v, err)
			}
			got, err := chip.ReadValue(ch)
			if err != nil {
				t.Fatalf("ReadValue(%d) failed: %v", ch, err)
			}
			if got != v {
				t.Errorf("channel %d: read %d, want %d", ch, got, v)
			}
		}
	}
}

func TestChipShdnPinStatus(t *testing.T) {
	sim := NewSimulator()
	chip := NewChip(sim)
	got, err := chip.ShdnPinStatus()
	if err != nil {
		t.Fatal(err)
	}
	if got {
		t.Error("SHDN pin reported asserted at power-on")
	}
	sim.SetShdnPin(true)
	if got, _ = chip.ShdnPinStatus(); !got {
		t.Error("SHDN pin assertion not reported")
	}
}

func TestChipTCONRoundTrip(t *testing.T) {
	chip := NewChip(NewSimulator())
	ch0, ch1, err := chip.ReadTCON()
	if err != nil {
		t.Fatal(err)
	}
	if ch0 != DefaultTCON() || ch1 != DefaultTCON() {
		t.Errorf("power-on tcon = %+v, %+v, want all terminals connected", ch0, ch1)
	}

	want0 := TCON{Shdn: true, A: true, W: true, B: true}
	want1 := TCON{A: true, B: true}
	if err := chip.WriteTCON(want0, want1); err != nil {
		t.Fatalf("WriteTCON failed: %v", err)
	}
	ch0, ch1, err = chip.ReadTCON()
	if err != nil {
		t.Fatal(err)
	}
	if ch0 != want0 || ch1 != want1 {
		t.Errorf("tcon = %+v, %+v, want %+v, %+v", ch0, ch1, want0, want1)
	}
}

func TestChipShdn(t *testing.T) {
	chip := NewChip(NewSimulator())
	if err := chip.Shdn(true, false); err != nil {
		t.Fatal(err)
	}
	ch0, ch1, err := chip.ReadTCON()
	if err != nil {
		t.Fatal(err)
	}
	if !ch0.Shdn || ch1.Shdn {
		t.Errorf("shdn = %v, %v, want true, false", ch0.Shdn, ch1.Shdn)
	}
	// Shutdown only touches the shutdown bit.
	if !ch0.A || !ch0.W || !ch0.B {
		t.Errorf("shutdown disconnected terminals: %+v", ch0)
	}
}

// flakyTransport corrupts the low data byte of every read response.
type flakyTransport struct {
	sim *Simulator
}

func (f *flakyTransport) Transfer(tx []byte) ([]byte, error) {
	resp, err := f.sim.Transfer(tx)
	if err != nil {
		return nil, err
	}
	if tx[0]&0x0C == cmdRead {
		resp[1] ^= 0x01
	}
	return resp, nil
}

func TestWriteTCONEchoMismatch(t *testing.T) {
	chip := NewChip(&flakyTransport{sim: NewSimulator()})
	err := chip.WriteTCON(DefaultTCON(), DefaultTCON())
	if !errors.IsProtocol(err) {
		t.Errorf("expected protocol error on echo mismatch, got %v", err)
	}
}

func TestDeviceNewValidation(t *testing.T) {
	sim := NewSimulator()
	if _, err := New("MCP0000", sim, DefaultConfig()); !errors.IsValidation(err) {
		t.Errorf("unknown model: expected validation error, got %v", err)
	}
	if _, err := New(MCP4251, sim, Config{RAB: 20e3}); !errors.IsValidation(err) {
		t.Errorf("off-ladder r_ab: expected validation error, got %v", err)
	}
	if _, err := New(MCP4251, nil, DefaultConfig()); !errors.IsConnection(err) {
		t.Errorf("nil transport: expected connection error, got %v", err)
	}
}

func TestDeviceVolatileDefaults(t *testing.T) {
	sim := NewSimulator()
	d, err := New(MCP4251, sim, DefaultConfig())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if d.Channels() != 2 {
		t.Fatalf("channels = %d, want 2", d.Channels())
	}
	for ch := 0; ch < 2; ch++ {
		v, err := d.Value(device.ByIndex(ch))
		if err != nil {
			t.Fatal(err)
		}
		if v != 64 {
			t.Errorf("channel %d value = %d, want default 64", ch, v)
		}
		if got := sim.WiperRegister(ch); got != 64 {
			t.Errorf("channel %d register = %d, want 64", ch, got)
		}
	}
}

func TestDeviceNonVolatileRestore(t *testing.T) {
	sim := NewSimulator()
	sim.SetWiper(0, 32)
	sim.SetWiper(1, 200)
	d, err := New(MCP4261, sim, DefaultConfig())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	// Stored values survive; the default is not programmed over them.
	if v, _ := d.Value(device.ByIndex(0)); v != 32 {
		t.Errorf("channel 0 value = %d, want restored 32", v)
	}
	if v, _ := d.Value(device.ByIndex(1)); v != 200 {
		t.Errorf("channel 1 value = %d, want restored 200", v)
	}
	if rel, _ := d.RelativeValue(device.ByIndex(0)); math.Abs(rel-32.0/256) > 1e-12 {
		t.Errorf("channel 0 relative value = %f, want %f", rel, 32.0/256)
	}
}

func TestDeviceAttachPreservesWiper(t *testing.T) {
	sim := NewSimulator()
	sim.SetWiper(0, 100)
	cfg := DefaultConfig()
	cfg.RestoreFromChip = true
	d, err := New(MCP4151, sim, cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if v, _ := d.Value(device.ByIndex(0)); v != 100 {
		t.Errorf("value = %d, want live 100", v)
	}
	if got := sim.WiperRegister(0); got != 100 {
		t.Errorf("register = %d, attach must not program the wiper", got)
	}
}

func TestDeviceFullScaleWrite(t *testing.T) {
	sim := NewSimulator()
	d, err := New(MCP4151, sim, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	set, err := d.SetValue(device.ByIndex(0), 256)
	if err != nil {
		t.Fatalf("SetValue failed: %v", err)
	}
	if set != 256 {
		t.Errorf("set = %d, want 256", set)
	}
	// Full scale needs the ninth data bit on the wire.
	if got := sim.WiperRegister(0); got != 0x100 {
		t.Errorf("register = 0x%03x, want 0x100", got)
	}
}

func TestDeviceSevenBitClamp(t *testing.T) {
	d, err := New(MCP4231, NewSimulator(), DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	set, err := d.SetValue(device.ByIndex(1), 500)
	if err != nil {
		t.Fatal(err)
	}
	if set != 128 {
		t.Errorf("set = %d, want clamp to 128", set)
	}
}

func TestDeviceResistanceControl(t *testing.T) {
	d, err := New(MCP4251, NewSimulator(), DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	code, err := d.SetRWB(device.ByIndex(0), 5075)
	if err != nil {
		t.Fatalf("SetRWB failed: %v", err)
	}
	if code != 128 {
		t.Errorf("code = %d, want 128", code)
	}
	rwb, err := d.RWB(device.ByIndex(0))
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(rwb-5075) > 10e3/256 {
		t.Errorf("r_wb = %f, want about 5075", rwb)
	}
}

func TestDeviceLockedParameters(t *testing.T) {
	d, err := New(MCP4251, NewSimulator(), DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	w, err := d.Wiper(device.ByIndex(0))
	if err != nil {
		t.Fatal(err)
	}
	if err := w.SetMaxValue(512); !errors.IsValidation(err) {
		t.Errorf("max_value change: expected validation error, got %v", err)
	}
	if err := w.Potentiometer().SetRAB(50e3); !errors.IsValidation(err) {
		t.Errorf("r_ab change: expected validation error, got %v", err)
	}
	// External wiring stays adjustable on a locked device.
	if err := w.Potentiometer().SetRLoad(1e6); err != nil {
		t.Errorf("r_load change failed: %v", err)
	}
}

func TestDeviceRefresh(t *testing.T) {
	sim := NewSimulator()
	d, err := New(MCP4251, sim, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	// Another bus master moved the wiper behind our back.
	sim.SetWiper(0, 10)
	if err := d.Refresh(); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	if v, _ := d.Value(device.ByIndex(0)); v != 10 {
		t.Errorf("value = %d, want 10 after refresh", v)
	}
}

func TestDeviceRheostatTCON(t *testing.T) {
	d, err := New(MCP4252, NewSimulator(), DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	ch0, ch1, err := d.ReadTCON()
	if err != nil {
		t.Fatal(err)
	}
	want := TCON{W: true, B: true}
	if ch0 != want || ch1 != want {
		t.Errorf("tcon = %+v, %+v, want A disconnected on both channels", ch0, ch1)
	}
}

func TestDeviceModelAccessors(t *testing.T) {
	d, err := New(MCP4162, NewSimulator(), DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	if d.Model() != MCP4162 {
		t.Errorf("model = %s, want MCP4162", d.Model())
	}
	spec := d.ModelSpec()
	if !spec.Rheostat || spec.Volatile || spec.MaxValue != 256 {
		t.Errorf("spec = %+v, want 8-bit non-volatile rheostat", spec)
	}
}

func TestDeviceAllModelsConstruct(t *testing.T) {
	for _, m := range Models() {
		t.Run(string(m), func(t *testing.T) {
			d, err := New(m, NewSimulator(), DefaultConfig())
			if err != nil {
				t.Fatalf("New(%s) failed: %v", m, err)
			}
			spec := d.ModelSpec()
			if d.Channels() != spec.Channels {
				t.Errorf("channels = %d, want %d", d.Channels(), spec.Channels)
			}
			w, err := d.Wiper(device.ByIndex(0))
			if err != nil {
				t.Fatal(err)
			}
			if w.MaxValue() != spec.MaxValue {
				t.Errorf("max_value = %d, want %d", w.MaxValue(), spec.MaxValue)
			}
		})
	}
}
