// Analog model of a three-terminal potentiometer network
//
// The device is a resistor of total value r_ab between terminals A and B
// with a movable contact W subdividing it. The wiper itself has output
// resistance r_w, each end terminal may carry an external series resistor
// (r_a, r_b), and the wiper may drive a resistive load r_load returning to
// a source v_load. Terminals A and B sit at source voltages v_a and v_b.
//
//	      r_a        (1-pos)*r_ab   pos*r_ab       r_b
//	v_a o─────── A ──────────────o──────────── B ───────o v_b
//	                             │ r_w
//	                             o W
//	                             │ r_load
//	                             o v_load
//
// All computations are pure float arithmetic, no I/O.
//
// Copyright (C) 2026 digipot-go authors
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package potentiometer

import (
	"math"

	"digipot-go/pkg/errors"
)

// Config holds construction parameters for a Potentiometer.
type Config struct {
	// RAB is the total resistance between terminals A and B. Must be > 0.
	RAB float64

	// RW is the wiper contact resistance. Must be >= 0.
	RW float64

	// RA and RB are external series resistances at the A and B terminals.
	RA float64
	RB float64

	// RLoad is the resistive load at the wiper terminal. Must be >= 0.
	RLoad float64

	// VA, VB and VLoad are the source voltages at the respective terminals.
	VA    float64
	VB    float64
	VLoad float64

	// Position is the initial wiper position, clamped to [0, 1].
	Position float64

	// Locked makes RAB and RW read-only after construction.
	Locked bool
}

// DefaultConfig returns a Config for a bare 10k potentiometer with the
// wiper centered.
func DefaultConfig() Config {
	return Config{
		RAB:      10e3,
		Position: 0.5,
	}
}

// Potentiometer models the analog network. It performs no I/O and holds
// the wiper position as a normalized float in [0, 1], where 0 is terminal
// B and 1 is terminal A.
type Potentiometer struct {
	rAB    float64
	rW     float64
	rA     float64
	rB     float64
	rLoad  float64
	vA     float64
	vB     float64
	vLoad  float64
	pos    float64
	locked bool
}

// New validates cfg and creates a Potentiometer.
func New(cfg Config) (*Potentiometer, error) {
	if err := checkPositive("r_ab", cfg.RAB); err != nil {
		return nil, err
	}
	for _, r := range []struct {
		name  string
		value float64
	}{
		{"r_w", cfg.RW},
		{"r_a", cfg.RA},
		{"r_b", cfg.RB},
		{"r_load", cfg.RLoad},
	} {
		if err := checkNotNegative(r.name, r.value); err != nil {
			return nil, err
		}
	}
	for _, v := range []struct {
		name  string
		value float64
	}{
		{"v_a", cfg.VA},
		{"v_b", cfg.VB},
		{"v_load", cfg.VLoad},
		{"position", cfg.Position},
	} {
		if err := checkFinite(v.name, v.value); err != nil {
			return nil, err
		}
	}
	return &Potentiometer{
		rAB:    cfg.RAB,
		rW:     cfg.RW,
		rA:     cfg.RA,
		rB:     cfg.RB,
		rLoad:  cfg.RLoad,
		vA:     cfg.VA,
		vB:     cfg.VB,
		vLoad:  cfg.VLoad,
		pos:    clamp(cfg.Position, 0, 1),
		locked: cfg.Locked,
	}, nil
}

// Locked reports whether RAB and RW are read-only.
func (p *Potentiometer) Locked() bool { return p.locked }

// RAB returns the total resistance between terminals A and B.
func (p *Potentiometer) RAB() float64 { return p.rAB }

// SetRAB changes the total resistance. Rejected on locked instances.
func (p *Potentiometer) SetRAB(r float64) error {
	if p.locked {
		return errors.Validationf("potentiometer parameters are locked")
	}
	if err := checkPositive("r_ab", r); err != nil {
		return err
	}
	p.rAB = r
	return nil
}

// RW returns the wiper contact resistance.
func (p *Potentiometer) RW() float64 { return p.rW }

// SetRW changes the wiper contact resistance. Rejected on locked instances.
func (p *Potentiometer) SetRW(r float64) error {
	if p.locked {
		return errors.Validationf("potentiometer parameters are locked")
	}
	if err := checkNotNegative("r_w", r); err != nil {
		return err
	}
	p.rW = r
	return nil
}

// RA returns the series resistance at terminal A.
func (p *Potentiometer) RA() float64 { return p.rA }

// SetRA changes the series resistance at terminal A.
func (p *Potentiometer) SetRA(r float64) error {
	if err := checkNotNegative("r_a", r); err != nil {
		return err
	}
	p.rA = r
	return nil
}

// RB returns the series resistance at terminal B.
func (p *Potentiometer) RB() float64 { return p.rB }

// SetRB changes the series resistance at terminal B.
func (p *Potentiometer) SetRB(r float64) error {
	if err := checkNotNegative("r_b", r); err != nil {
		return err
	}
	p.rB = r
	return nil
}

// RLoad returns the load resistance at the wiper.
func (p *Potentiometer) RLoad() float64 { return p.rLoad }

// SetRLoad changes the load resistance at the wiper.
func (p *Potentiometer) SetRLoad(r float64) error {
	if err := checkNotNegative("r_load", r); err != nil {
		return err
	}
	p.rLoad = r
	return nil
}

// VA returns the source voltage at terminal A.
func (p *Potentiometer) VA() float64 { return p.vA }

// SetVA changes the source voltage at terminal A.
func (p *Potentiometer) SetVA(v float64) error {
	if err := checkFinite("v_a", v); err != nil {
		return err
	}
	p.vA = v
	return nil
}

// VB returns the source voltage at terminal B.
func (p *Potentiometer) VB() float64 { return p.vB }

// SetVB changes the source voltage at terminal B.
func (p *Potentiometer) SetVB(v float64) error {
	if err := checkFinite("v_b", v); err != nil {
		return err
	}
	p.vB = v
	return nil
}

// VLoad returns the source voltage behind the load resistor.
func (p *Potentiometer) VLoad() float64 { return p.vLoad }

// SetVLoad changes the source voltage behind the load resistor.
func (p *Potentiometer) SetVLoad(v float64) error {
	if err := checkFinite("v_load", v); err != nil {
		return err
	}
	p.vLoad = v
	return nil
}

// Position returns the normalized wiper position in [0, 1].
func (p *Potentiometer) Position() float64 { return p.pos }

// SetPosition moves the wiper. Out-of-range positions are clamped to
// [0, 1]; non-finite input is rejected.
func (p *Potentiometer) SetPosition(pos float64) error {
	if err := checkFinite("position", pos); err != nil {
		return err
	}
	p.pos = clamp(pos, 0, 1)
	return nil
}

// RWA returns the resistance between terminals A and W at the current
// wiper position, including r_w and the series resistor r_a.
func (p *Potentiometer) RWA() float64 {
	return p.RWAAt(p.pos)
}

// RWAAt returns the A-W resistance for an arbitrary position. Positions
// outside [0, 1] are clamped.
func (p *Potentiometer) RWAAt(pos float64) float64 {
	pos = clamp(pos, 0, 1)
	return p.rW + p.rA + (1-pos)*p.rAB
}

// RWB returns the resistance between terminals B and W at the current
// wiper position, including r_w and the series resistor r_b.
func (p *Potentiometer) RWB() float64 {
	return p.RWBAt(p.pos)
}

// RWBAt returns the B-W resistance for an arbitrary position. Positions
// outside [0, 1] are clamped.
func (p *Potentiometer) RWBAt(pos float64) float64 {
	pos = clamp(pos, 0, 1)
	return p.rW + p.rB + pos*p.rAB
}

// PositionForRWA converts a requested A-W resistance to a wiper position.
// The request is clamped into the achievable range first.
func (p *Potentiometer) PositionForRWA(r float64) float64 {
	r = clamp(r, p.rW+p.rA, p.rW+p.rA+p.rAB)
	return 1 - (r-p.rW-p.rA)/p.rAB
}

// PositionForRWB converts a requested B-W resistance to a wiper position.
// The request is clamped into the achievable range first.
func (p *Potentiometer) PositionForRWB(r float64) float64 {
	r = clamp(r, p.rW+p.rB, p.rW+p.rB+p.rAB)
	return (r - p.rW - p.rB) / p.rAB
}

// SetRWA moves the wiper so that the A-W resistance is as close as
// possible to r.
func (p *Potentiometer) SetRWA(r float64) error {
	if err := checkFinite("r_wa", r); err != nil {
		return err
	}
	p.pos = p.PositionForRWA(r)
	return nil
}

// SetRWB moves the wiper so that the B-W resistance is as close as
// possible to r.
func (p *Potentiometer) SetRWB(r float64) error {
	if err := checkFinite("r_wb", r); err != nil {
		return err
	}
	p.pos = p.PositionForRWB(r)
	return nil
}

// VW returns the voltage at the wiper output (the junction between r_w
// and r_load) at the current wiper position.
func (p *Potentiometer) VW() float64 {
	return p.VWAt(p.pos)
}

// VWAt returns the wiper output voltage for an arbitrary position.
// Positions outside [0, 1] are clamped.
func (p *Potentiometer) VWAt(pos float64) float64 {
	pos = clamp(pos, 0, 1)
	node := p.nodeVoltage(pos)
	rBottom := p.rW + p.rLoad
	if rBottom == 0 {
		return node
	}
	return p.vLoad + (node-p.vLoad)*p.rLoad/rBottom
}

// nodeVoltage computes the voltage of the internal wiper node (the top of
// r_w) by superposition over the three-branch star.
func (p *Potentiometer) nodeVoltage(pos float64) float64 {
	rLeft := p.rA + p.rAB*(1-pos)
	rRight := p.rB + p.rAB*pos
	rBottom := p.rW + p.rLoad
	// A zero-resistance branch pins the node to its source.
	switch {
	case rLeft == 0:
		return p.vA
	case rRight == 0:
		return p.vB
	case rBottom == 0:
		return p.vLoad
	}
	g := 1/rLeft + 1/rRight + 1/rBottom
	return (p.vA/rLeft + p.vB/rRight + p.vLoad/rBottom) / g
}

// SetVW moves the wiper so that the output voltage is as close as
// possible to v. Unreachable targets saturate the position at 0 or 1.
// When the circuit admits no unique solution the position is set to the
// midpoint; when the quadratic solve yields no real root the current
// position is kept.
func (p *Potentiometer) SetVW(v float64) error {
	if err := checkFinite("v_w", v); err != nil {
		return err
	}
	// With no load resistance the output is pinned to v_load and the
	// position does not influence it.
	if p.rLoad == 0 {
		p.pos = 0.5
		return nil
	}
	if v == p.vLoad {
		p.pos = p.positionForZeroLoadCurrent()
		return nil
	}
	p.pos = p.positionForLoadedTarget(v)
	return nil
}

// positionForZeroLoadCurrent handles the v == v_load family of targets,
// where no current flows through the load branch and the A-B divider
// alone must present v_load at the wiper node.
func (p *Potentiometer) positionForZeroLoadCurrent() float64 {
	switch {
	case p.vA == p.vB && p.vB == p.vLoad:
		// Every position satisfies the request.
		return 0.5
	case p.vA == p.vB:
		// The divider sits at v_a everywhere; no exact solution.
		return 0.5
	case p.vB == p.vLoad:
		return 0
	case p.vA == p.vLoad:
		return 1
	}
	// v_node(pos) = v_a - (v_a - v_b) * r_left / (r_a + r_ab + r_b)
	rTotal := p.rA + p.rAB + p.rB
	rLeft := (p.vA - p.vLoad) / (p.vA - p.vB) * rTotal
	return clamp(1-(rLeft-p.rA)/p.rAB, 0, 1)
}

// positionForLoadedTarget solves the general case with nonzero load
// current via the quadratic circuit equation.
func (p *Potentiometer) positionForLoadedTarget(v float64) float64 {
	// Saturate when the request lies outside the span of the two end
	// positions. With v_a == v_b the output dips below that span
	// mid-travel; such targets clamp to the nearest end rather than
	// holding the current position.
	v0 := p.VWAt(0)
	v1 := p.VWAt(1)
	lo, hi := math.Min(v0, v1), math.Max(v0, v1)
	switch {
	case v <= lo:
		if v0 <= v1 {
			return 0
		}
		return 1
	case v >= hi:
		if v1 >= v0 {
			return 1
		}
		return 0
	}

	iLoad := (v - p.vLoad) / p.rLoad
	vNode := v + iLoad*p.rW

	// KCL at the wiper node with r_left = L0 - r_ab*x and
	// r_right = R0 + r_ab*x gives a quadratic in x:
	//   iLoad*r_ab^2 * x^2
	//   + r_ab*((v_a - v_b) - iLoad*(L0 - R0)) * x
	//   + (v_a - v_node)*R0 + (v_b - v_node)*L0 - iLoad*L0*R0 = 0
	l0 := p.rA + p.rAB
	r0 := p.rB
	a := iLoad * p.rAB * p.rAB
	b := p.rAB * ((p.vA - p.vB) - iLoad*(l0-r0))
	c := (p.vA-vNode)*r0 + (p.vB-vNode)*l0 - iLoad*l0*r0

	d := b*b - 4*a*c
	if d < 0 {
		// Best-effort hold: keep the current position.
		return p.pos
	}
	sq := math.Sqrt(d)
	roots := [2]float64{(-b + sq) / (2 * a), (-b - sq) / (2 * a)}

	const eps = 1e-9
	best := math.NaN()
	for _, x := range roots {
		if x < -eps || x > 1+eps {
			continue
		}
		x = clamp(x, 0, 1)
		if math.IsNaN(best) || math.Abs(x-p.pos) < math.Abs(best-p.pos) {
			best = x
		}
	}
	if math.IsNaN(best) {
		return p.pos
	}
	return best
}
