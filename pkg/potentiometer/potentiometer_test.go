// Copyright (C) 2026 digipot-go authors
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package potentiometer

import (
	"math"
	"testing"

	"digipot-go/pkg/errors"
)

func mustNew(t *testing.T, cfg Config) *Potentiometer {
	t.Helper()
	p, err := New(cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return p
}

func TestNewValidation(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
		ok   bool
	}{
		{"defaults", DefaultConfig(), true},
		{"zero r_ab", Config{RAB: 0}, false},
		{"negative r_ab", Config{RAB: -10}, false},
		{"negative r_w", Config{RAB: 10e3, RW: -1}, false},
		{"negative r_load", Config{RAB: 10e3, RLoad: -0.5}, false},
		{"nan voltage", Config{RAB: 10e3, VA: math.NaN()}, false},
		{"inf position", Config{RAB: 10e3, Position: math.Inf(1)}, false},
		{"full", Config{RAB: 10e3, RW: 75, RA: 100, RB: 200, RLoad: 1e6, VA: 5, VB: -5, Position: 0.3}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.cfg)
			if tc.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tc.ok {
				if err == nil {
					t.Fatalf("expected validation error")
				}
				if !errors.IsValidation(err) {
					t.Fatalf("expected validation error, got %v", err)
				}
			}
		})
	}
}

func TestResistanceSum(t *testing.T) {
	p := mustNew(t, Config{RAB: 10e3, RW: 75})
	for pos := 0.0; pos <= 1.0; pos += 0.01 {
		sum := p.RWAAt(pos) + p.RWBAt(pos)
		want := 2*p.RW() + p.RAB()
		if math.Abs(sum-want) > 1e-9 {
			t.Fatalf("pos %.2f: r_wa+r_wb = %f, want %f", pos, sum, want)
		}
	}
}

func TestMidpointScenario(t *testing.T) {
	p := mustNew(t, Config{RAB: 10000, RW: 75, Position: 0.5})
	if got := p.RWA(); got != 5075 {
		t.Errorf("r_wa = %f, want 5075", got)
	}
	if got := p.RWB(); got != 5075 {
		t.Errorf("r_wb = %f, want 5075", got)
	}
}

func TestPositionClampLaws(t *testing.T) {
	p := mustNew(t, Config{RAB: 10e3, RW: 75, RA: 120, RB: 60})
	if p.RWAAt(-0.1) != p.RWAAt(0) {
		t.Errorf("r_wa(-0.1) != r_wa(0)")
	}
	if p.RWAAt(1.1) != p.RWAAt(1) {
		t.Errorf("r_wa(1.1) != r_wa(1)")
	}
	if p.RWBAt(-0.1) != p.RWBAt(0) {
		t.Errorf("r_wb(-0.1) != r_wb(0)")
	}
	if p.RWBAt(1.1) != p.RWBAt(1) {
		t.Errorf("r_wb(1.1) != r_wb(1)")
	}

	if err := p.SetPosition(1.5); err != nil {
		t.Fatalf("SetPosition(1.5) failed: %v", err)
	}
	if p.Position() != 1 {
		t.Errorf("position = %f, want 1", p.Position())
	}
	if err := p.SetPosition(-0.5); err != nil {
		t.Fatalf("SetPosition(-0.5) failed: %v", err)
	}
	if p.Position() != 0 {
		t.Errorf("position = %f, want 0", p.Position())
	}
}

func TestResistanceRoundTrip(t *testing.T) {
	p := mustNew(t, Config{RAB: 10e3, RW: 75})
	for r := p.RW(); r <= p.RW()+p.RAB(); r += 250 {
		if err := p.SetRWB(r); err != nil {
			t.Fatalf("SetRWB(%f) failed: %v", r, err)
		}
		if got := p.RWB(); math.Abs(got-r) > 1e-6 {
			t.Errorf("r_wb round trip: set %f, got %f", r, got)
		}
		if err := p.SetRWA(r); err != nil {
			t.Fatalf("SetRWA(%f) failed: %v", r, err)
		}
		if got := p.RWA(); math.Abs(got-r) > 1e-6 {
			t.Errorf("r_wa round trip: set %f, got %f", r, got)
		}
	}
}

func TestResistanceTargetClamped(t *testing.T) {
	p := mustNew(t, Config{RAB: 10e3, RW: 75})
	if err := p.SetRWB(0); err != nil {
		t.Fatalf("SetRWB(0) failed: %v", err)
	}
	if p.Position() != 0 {
		t.Errorf("position = %f, want 0", p.Position())
	}
	if err := p.SetRWB(1e9); err != nil {
		t.Fatalf("SetRWB(1e9) failed: %v", err)
	}
	if p.Position() != 1 {
		t.Errorf("position = %f, want 1", p.Position())
	}
}

func TestVoltageDivider(t *testing.T) {
	// Nearly unloaded divider: v_w tracks v_a * pos.
	p := mustNew(t, Config{RAB: 10e3, RW: 75, RLoad: 1e10, VA: 5})
	for pos := 0.0; pos <= 1.0; pos += 0.05 {
		got := p.VWAt(pos)
		want := 5 * pos
		if math.Abs(got-want) > 1e-3 {
			t.Errorf("pos %.2f: v_w = %f, want %f", pos, got, want)
		}
	}
}

func TestVoltageZeroLoadResistance(t *testing.T) {
	// With the load shorted to its source the output is pinned to v_load.
	p := mustNew(t, Config{RAB: 10e3, RW: 75, RLoad: 0, VA: 5, VLoad: 1.5})
	for pos := 0.0; pos <= 1.0; pos += 0.25 {
		if got := p.VWAt(pos); got != 1.5 {
			t.Errorf("pos %.2f: v_w = %f, want 1.5", pos, got)
		}
	}
}

func TestVoltageRoundTrip(t *testing.T) {
	p := mustNew(t, Config{RAB: 10e3, RW: 75, RLoad: 1e10, VA: 5})
	for v := 0.0; v <= 5.0; v += 0.25 {
		if err := p.SetVW(v); err != nil {
			t.Fatalf("SetVW(%f) failed: %v", v, err)
		}
		if got := p.VW(); math.Abs(got-v) > 1e-3 {
			t.Errorf("v_w round trip: set %f, got %f (pos %f)", v, got, p.Position())
		}
	}
}

func TestVoltageInverseLoadedNetwork(t *testing.T) {
	// Full network with series resistors and a real load: the inverse
	// solve must reproduce the position that generated the voltage.
	p := mustNew(t, Config{
		RAB: 10e3, RW: 75, RA: 200, RB: 100,
		RLoad: 1e4, VA: 5, VB: -1, VLoad: 0.5,
	})
	for pos := 0.02; pos < 1.0; pos += 0.07 {
		v := p.VWAt(pos)
		if err := p.SetPosition(0.5); err != nil {
			t.Fatal(err)
		}
		if err := p.SetVW(v); err != nil {
			t.Fatalf("SetVW(%f) failed: %v", v, err)
		}
		if math.Abs(p.Position()-pos) > 1e-6 {
			t.Errorf("inverse solve: v_w %f gave position %f, want %f", v, p.Position(), pos)
		}
	}
}

func TestVoltageSaturation(t *testing.T) {
	p := mustNew(t, Config{RAB: 10e3, RW: 75, RLoad: 1e4, VA: 5, Position: 0.5})
	if err := p.SetVW(10); err != nil {
		t.Fatalf("SetVW(10) failed: %v", err)
	}
	if p.Position() != 1 {
		t.Errorf("overdriven target: position = %f, want 1", p.Position())
	}
	if err := p.SetVW(-10); err != nil {
		t.Fatalf("SetVW(-10) failed: %v", err)
	}
	if p.Position() != 0 {
		t.Errorf("underdriven target: position = %f, want 0", p.Position())
	}
}

func TestVoltageSymmetricSpanClamp(t *testing.T) {
	// With v_a == v_b and a real load the output is equal at both ends
	// and dips below that value mid-travel. Targets below the end span
	// clamp to an end position, even when a mid-travel position would
	// reach them.
	p := mustNew(t, Config{RAB: 10e3, RW: 75, RLoad: 1e4, VA: 5, VB: 5, Position: 0.5})
	vEnd := p.VWAt(0)
	if p.VWAt(1) != vEnd {
		t.Fatalf("end voltages differ: %f != %f", p.VWAt(1), vEnd)
	}
	vMid := p.VWAt(0.5)
	if vMid >= vEnd {
		t.Fatalf("no mid-travel dip: v(0.5)=%f, v(0)=%f", vMid, vEnd)
	}
	if err := p.SetVW(vMid); err != nil {
		t.Fatalf("SetVW failed: %v", err)
	}
	if p.Position() != 0 && p.Position() != 1 {
		t.Errorf("position = %f, want saturation at an end", p.Position())
	}
}

func TestVoltageNoLoadResistance(t *testing.T) {
	// r_load == 0 admits no unique solution: position parks at midpoint.
	p := mustNew(t, Config{RAB: 10e3, RW: 75, VA: 5, Position: 0.9})
	if err := p.SetVW(2); err != nil {
		t.Fatalf("SetVW failed: %v", err)
	}
	if p.Position() != 0.5 {
		t.Errorf("position = %f, want 0.5", p.Position())
	}
}

func TestVoltageZeroLoadCurrentCases(t *testing.T) {
	cases := []struct {
		name             string
		va, vb, vload, v float64
		want             float64
	}{
		{"all equal", 2, 2, 2, 2, 0.5},
		{"divider flat", 3, 3, 0, 0, 0.5},
		{"pinned to B", 5, 0, 0, 0, 0},
		{"pinned to A", 5, 2, 5, 5, 1},
		{"symmetric sources", 5, -5, 0, 0, 0.5},
		{"ratio formula", 5, 1, 2, 2, 0.25},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := mustNew(t, Config{
				RAB: 10e3, RW: 75, RLoad: 1e4,
				VA: tc.va, VB: tc.vb, VLoad: tc.vload,
				Position: 0.8,
			})
			if err := p.SetVW(tc.v); err != nil {
				t.Fatalf("SetVW failed: %v", err)
			}
			if math.Abs(p.Position()-tc.want) > 1e-9 {
				t.Errorf("position = %f, want %f", p.Position(), tc.want)
			}
		})
	}
}

func TestSettersRejectNonFinite(t *testing.T) {
	p := mustNew(t, Config{RAB: 10e3, RW: 75, VA: 5, Position: 0.25})
	bad := []float64{math.NaN(), math.Inf(1), math.Inf(-1)}
	for _, v := range bad {
		for name, set := range map[string]func(float64) error{
			"SetVA":       p.SetVA,
			"SetVB":       p.SetVB,
			"SetVLoad":    p.SetVLoad,
			"SetVW":       p.SetVW,
			"SetRLoad":    p.SetRLoad,
			"SetRA":       p.SetRA,
			"SetRB":       p.SetRB,
			"SetRWA":      p.SetRWA,
			"SetRWB":      p.SetRWB,
			"SetPosition": p.SetPosition,
		} {
			if err := set(v); !errors.IsValidation(err) {
				t.Errorf("%s(%v): expected validation error, got %v", name, v, err)
			}
		}
	}
	// No partial state after rejected writes.
	if p.Position() != 0.25 || p.VA() != 5 {
		t.Errorf("state changed after rejected writes: pos=%f v_a=%f", p.Position(), p.VA())
	}
}

func TestLockedParameters(t *testing.T) {
	p := mustNew(t, Config{RAB: 10e3, RW: 75, Locked: true})
	if err := p.SetRAB(50e3); !errors.IsValidation(err) {
		t.Errorf("SetRAB on locked instance: expected validation error, got %v", err)
	}
	if err := p.SetRW(100); !errors.IsValidation(err) {
		t.Errorf("SetRW on locked instance: expected validation error, got %v", err)
	}
	if p.RAB() != 10e3 || p.RW() != 75 {
		t.Errorf("locked parameters changed: r_ab=%f r_w=%f", p.RAB(), p.RW())
	}
	// External wiring stays adjustable on locked instances.
	if err := p.SetRA(100); err != nil {
		t.Errorf("SetRA on locked instance failed: %v", err)
	}
	if err := p.SetRLoad(1e6); err != nil {
		t.Errorf("SetRLoad on locked instance failed: %v", err)
	}
}
